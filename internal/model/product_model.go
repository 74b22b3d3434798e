package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"not null;type:varchar(100)"`
	Description string          `gorm:"not null;type:text"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Image       string          `gorm:"type:varchar(255)"`
	Category    string          `gorm:"not null;type:varchar(50)"`
	Stock       uint            `gorm:"not null;type:int"`
	BaseModel
}
