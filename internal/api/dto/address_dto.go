package dto

type CreateAddressDTO struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

type AddressDTO struct {
	ID        string `json:"id"`
	Street    string `json:"street"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}
