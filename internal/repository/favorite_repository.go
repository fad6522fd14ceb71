package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "countryhub/internal/errors"
	"countryhub/internal/model"
)

// FavoriteRepository defines favorites persistence operations. Every
// mutation is a single statement, so two requests touching the same user's
// list concurrently can never lose each other's update: a duplicate add is
// rejected by the unique index and a remove is one conditional DELETE.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteCountry, error)
	Add(ctx context.Context, favorite *model.FavoriteCountry) error
	Remove(ctx context.Context, userID uuid.UUID, countryCode string) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository builds a GORM-backed repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// ListByUser returns the favorites sequence in insertion order.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteCountry, error) {
	favorites := make([]model.FavoriteCountry, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// Add appends one favorite. The (user_id, country_code) unique index makes
// this an atomic append-if-not-exists; a duplicate surfaces as ErrFavoriteExists.
func (r *favoriteRepository) Add(ctx context.Context, favorite *model.FavoriteCountry) error {
	err := r.db.WithContext(ctx).Create(favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrFavoriteExists
	}
	return err
}

// Remove deletes any entry matching the country code. Removing an absent
// favorite is a no-op, not an error.
func (r *favoriteRepository) Remove(ctx context.Context, userID uuid.UUID, countryCode string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND country_code = ?", userID, countryCode).
		Delete(&model.FavoriteCountry{}).Error
}
