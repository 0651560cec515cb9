package model

// User 帳號, 建立時會順帶建立一張未付款訂單
type User struct {
	BaseModel
	Name string `gorm:"type:varchar(255)" json:"name"`
}
