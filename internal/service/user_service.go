package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"countryhub/internal/cache"
	apperrors "countryhub/internal/errors"
	"countryhub/internal/model"
	"countryhub/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// UserService exposes profile operations.
type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(userRepo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{userRepo: userRepo, cache: cache}
}

func profileCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("profile:%s", userID)
}

// GetProfile returns the user projection including the favorites list.
// The password hash never marshals, so the cached payload is safe too.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if user.FavoriteCountries == nil {
		user.FavoriteCountries = []model.FavoriteCountry{}
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(userID), payload, profileCacheTTL)
	}
	return user, nil
}

// UpdateProfile overwrites username and email with whatever the caller
// provided. There is deliberately no partial-update handling and no
// cross-user uniqueness re-check here; see the registration path for the
// only uniqueness gate.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string) (*model.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, userID, username, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user.FavoriteCountries == nil {
		user.FavoriteCountries = []model.FavoriteCountry{}
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return user, nil
}
