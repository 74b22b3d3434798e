package dto

type PlaceOrderDTO struct {
	AddressID    string `json:"address_id"`
	DeliveryType string `json:"delivery_type"` //standard/express/overnight, 空值視為standard
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

type OrderItemDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"` //下單當下的商品價格
	Subtotal  string `json:"subtotal"`
}

type OrderDTO struct {
	ID               string         `json:"id"`
	Items            []OrderItemDTO `json:"items"`
	TotalAmount      string         `json:"total_amount"`
	DeliveryType     string         `json:"delivery_type"`
	Address          AddressDTO     `json:"address"`
	Status           string         `json:"status"`
	VerificationCode string         `json:"verification_code"` //base64 PNG QR code
	CreatedAt        string         `json:"created_at"`
}
