package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"countryhub/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, username, email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID loads a user with the favorites list in insertion order.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("FavoriteCountries", func(db *gorm.DB) *gorm.DB {
			return db.Order("favorite_countries.id ASC")
		}).
		Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrUsername performs the single combined-OR lookup that backs
// registration conflicts: a match on either field is a conflict.
func (r *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile unconditionally overwrites username and email, then returns
// the fresh record.
func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, username, email string) (*model.User, error) {
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"username": username, "email": email}).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
