package model

// CartItem 購物車項目
// 同一張訂單同一個商品 upsert 完成後只會留下一筆
type CartItem struct {
	BaseModel
	OrderID   string `gorm:"type:varchar(36);index;not null" json:"orderId"`
	ProductID string `gorm:"type:varchar(36);index;not null" json:"productId"`
	Quantity  int64  `gorm:"not null" json:"quantity"`
}

// CartLine 購物車項目與其商品, 商品已被刪除時 Product 為 nil
type CartLine struct {
	CartItem
	Product *Product `json:"product"`
}

// CartSummary active order 的購物車內容與總金額
type CartSummary struct {
	Items      []CartLine `json:"items"`
	TotalPrice int64      `json:"totalPrice"`
}
