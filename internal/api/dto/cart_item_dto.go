package dto

type CartItemUpsertDTO struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type CartItemDeleteDTO struct {
	ProductID string `json:"productId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
