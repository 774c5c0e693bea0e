package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:150;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string     `gorm:"size:32;default:'user'" json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"lastLogin"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// LoginAttempt is an audit row written for every authentication try,
// successful or not.
type LoginAttempt struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    *string   `gorm:"column:user_id;size:64;index" json:"userId"`
	Email     string    `gorm:"size:150;not null" json:"email"`
	Success   bool      `gorm:"not null" json:"success"`
	Provider  string    `gorm:"size:32;not null" json:"provider"`
	IPAddress string    `gorm:"column:ip_address;size:64" json:"ipAddress"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (a *LoginAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
