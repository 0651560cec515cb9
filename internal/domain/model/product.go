package model

type Product struct {
	BaseModel
	Type      string `gorm:"type:varchar(255)" json:"type"`
	UnitPrice int64  `gorm:"not null" json:"unitPrice"`
}
