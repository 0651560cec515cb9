package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 所有文件共用欄位, ID 於寫入時產生
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"null" json:"updatedAt"`
}

// BeforeCreate GORM 的 hook，沒有指定ID時產生uuid
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b *BaseModel) GetID() string {
	return b.ID
}

// Document 可被 Collection 保存的文件
type Document interface {
	GetID() string
}
