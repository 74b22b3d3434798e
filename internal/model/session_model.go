package model

import (
	"time"

	"github.com/google/uuid"
)

// UserSession 儲存refresh token, 一個user可同時存在多個session
type UserSession struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RefreshToken string    `gorm:"not null;type:text;index"`
	IsActive     bool      `gorm:"not null;default:true"`
	ExpiresAt    time.Time `gorm:"not null"`
	RevokedAt    *time.Time
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}
