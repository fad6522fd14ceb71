package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteCountry is one entry of a user's favorites list. The composite
// unique index enforces set semantics per user at the storage layer, which
// also makes a concurrent duplicate insert fail instead of racing. The
// auto-increment primary key preserves insertion order for display.
type FavoriteCountry struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UserID      uuid.UUID `json:"-" gorm:"type:char(36);uniqueIndex:idx_user_country;not null"`
	CountryCode string    `json:"countryCode" gorm:"size:8;uniqueIndex:idx_user_country;not null"`
	CountryName string    `json:"countryName" gorm:"size:255;not null"`
	FlagURL     string    `json:"flagUrl" gorm:"size:512"`
	CreatedAt   time.Time `json:"-"`
}
