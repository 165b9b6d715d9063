package models

type Cart struct {
	UserID  string     `json:"user_id"`
	Items   []CartItem `json:"items"`
	Voucher *Voucher   `json:"voucher,omitempty"`
}

type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}
