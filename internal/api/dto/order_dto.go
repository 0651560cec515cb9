package dto

// OrderCreateDTO 接受使用者本體 {id} 或 {userId}
type OrderCreateDTO struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

func (o OrderCreateDTO) GetUserID() string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.ID
}

type OrderPayDTO struct {
	OrderID string `json:"orderId"`
	IsPaid  *bool  `json:"isPaid"`
}
