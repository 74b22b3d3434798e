package model

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"unique;not null;type:varchar(100)"`
	Name         string    `gorm:"not null;type:varchar(50)"`
	PasswordHash string    `gorm:"not null;type:varchar(100)"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	IsActive     bool      `gorm:"not null;default:true"`
	Addresses    []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BaseModel
}

type LoginResponseModel struct {
	AccessToken  string
	RefreshToken string
	User         User
}

type RegisterUserModel struct {
	Name     string
	Email    string
	Password string
}
