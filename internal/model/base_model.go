package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 共用欄位，軟刪除由 gorm.DeletedAt 處理
type BaseModel struct {
	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
