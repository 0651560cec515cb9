package model

// Order 訂單
// 每個使用者同時最多只有一張未付款訂單(active order)
// 唯一會變動的欄位是 IsPaid
type Order struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);index;not null" json:"userId"`
	IsPaid bool   `gorm:"not null" json:"isPaid"`
}

func (o *Order) IsActive() bool {
	return !o.IsPaid
}
