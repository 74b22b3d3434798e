package dto

type CreateProductDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"` //十進位字串, 如"25.00"
	Image       string `json:"image"`
	Category    string `json:"category"`
	Stock       uint   `json:"stock"`
}

type ProductDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Stock       uint   `json:"stock"`
}
