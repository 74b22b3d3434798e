package model

import (
	"github.com/google/uuid"
)

// Address 每個user最多一筆IsDefault=true, 由AddressService在同一個交易內維護
type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Street    string    `gorm:"not null;type:varchar(255)"`
	City      string    `gorm:"not null;type:varchar(100)"`
	ZipCode   string    `gorm:"not null;type:varchar(20)"`
	Country   string    `gorm:"not null;type:varchar(100)"`
	IsDefault bool      `gorm:"not null;default:false"`
	BaseModel
}
