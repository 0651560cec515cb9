package dto

type ProductCreateDTO struct {
	Type      string `json:"type"`
	UnitPrice int64  `json:"unitPrice"`
}

type ProductUpdateDTO struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	UnitPrice int64  `json:"unitPrice"`
}
