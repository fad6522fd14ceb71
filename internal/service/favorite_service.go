package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"countryhub/internal/cache"
	apperrors "countryhub/internal/errors"
	"countryhub/internal/model"
	"countryhub/internal/repository"
)

// FavoriteService enforces per-user set semantics over favorite countries.
// Add is not idempotent (a duplicate is a user-visible Conflict) while
// Remove is (removing an absent code succeeds with the list unchanged).
// That asymmetry is part of the contract.
type FavoriteService interface {
	Add(ctx context.Context, userID uuid.UUID, countryCode, countryName, flagURL string) ([]model.FavoriteCountry, error)
	Remove(ctx context.Context, userID uuid.UUID, countryCode string) ([]model.FavoriteCountry, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.FavoriteCountry, error)
}

type favoriteService struct {
	userRepo     repository.UserRepository
	favoriteRepo repository.FavoriteRepository
	cache        *cache.Client
}

// NewFavoriteService builds a FavoriteService.
func NewFavoriteService(userRepo repository.UserRepository, favoriteRepo repository.FavoriteRepository, cache *cache.Client) FavoriteService {
	return &favoriteService{
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		cache:        cache,
	}
}

// Add appends a country to the user's favorites and returns the full
// updated sequence. The append is a single conditional insert, so two
// concurrent adds of different codes both land and a concurrent duplicate
// loses cleanly with a Conflict.
func (s *favoriteService) Add(ctx context.Context, userID uuid.UUID, countryCode, countryName, flagURL string) ([]model.FavoriteCountry, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	favorite := &model.FavoriteCountry{
		UserID:      userID,
		CountryCode: countryCode,
		CountryName: countryName,
		FlagURL:     flagURL,
	}
	if err := s.favoriteRepo.Add(ctx, favorite); err != nil {
		if errors.Is(err, apperrors.ErrFavoriteExists) {
			return nil, err
		}
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return s.favoriteRepo.ListByUser(ctx, userID)
}

// Remove filters the country out of the user's favorites and returns the
// updated sequence. Absent codes are a silent success.
func (s *favoriteService) Remove(ctx context.Context, userID uuid.UUID, countryCode string) ([]model.FavoriteCountry, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.favoriteRepo.Remove(ctx, userID, countryCode); err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return s.favoriteRepo.ListByUser(ctx, userID)
}

// List returns the current favorites sequence verbatim.
func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]model.FavoriteCountry, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.favoriteRepo.ListByUser(ctx, userID)
}

// ensureUser rejects operations for user records that no longer exist — a
// consistency anomaly when the session itself was valid.
func (s *favoriteService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}
	return nil
}
