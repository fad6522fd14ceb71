package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered user. The password hash is never exposed
// in JSON, so marshalling a User is always a safe public projection.
type User struct {
	ID                uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	Username          string            `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email             string            `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string            `json:"-" gorm:"size:255;not null"`
	FavoriteCountries []FavoriteCountry `json:"favoriteCountries" gorm:"foreignKey:UserID"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// BeforeCreate sets a UUID before the record is inserted.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
