package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	DisplayName   string    `gorm:"type:varchar(255);not null"`
	EmailVerified bool      `gorm:"not null;default:false"`
	Settings      JSONMap   `gorm:"type:jsonb"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Chats []Chat `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
