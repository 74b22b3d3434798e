package dto

type AddCartItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartItemDTO struct {
	ID       string     `json:"id"`
	Product  ProductDTO `json:"product"`
	Quantity int        `json:"quantity"`
}

type CartDTO struct {
	ID     string        `json:"id"`
	UserID string        `json:"user_id"`
	Items  []CartItemDTO `json:"items"`
}
