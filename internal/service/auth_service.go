package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"countryhub/internal/auth"
	apperrors "countryhub/internal/errors"
	"countryhub/internal/model"
	"countryhub/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStore) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a hashed password and issues a session
// token. A user holding either the email or the username already exists
// under one combined-OR lookup, so both conflict flavors reject the same way.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:          username,
		Email:             email,
		PasswordHash:      string(hashedPassword),
		FavoriteCountries: []model.FavoriteCountry{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password fail identically so the response never leaks which field
// was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if user.FavoriteCountries == nil {
		user.FavoriteCountries = []model.FavoriteCountry{}
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}
	return user, token, nil
}

// Logout revokes the presented token for the rest of its lifetime. It
// always succeeds: a missing or invalid token means there is nothing to
// revoke, and the caller clears its cookie regardless.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.tokenStore.Revoke(ctx, claims.ID, ttl)
}
