package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"countryhub/internal/auth"
	apperrors "countryhub/internal/errors"
	"countryhub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, username, email string) (*model.User, error) {
	args := m.Called(ctx, id, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStore.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmailOrUsername", mock.Anything, "alice@example.com", "alice").
					Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = uuid.New()
					}).
					Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate email with different username",
			username: "newname",
			email:    "taken@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmailOrUsername", mock.Anything, "taken@example.com", "newname").
					Return(&model.User{Email: "taken@example.com", Username: "someoneelse"}, nil)
			},
			expectedError: apperrors.ErrUserExists,
		},
		{
			name:     "duplicate username with different email",
			username: "taken",
			email:    "new@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmailOrUsername", mock.Anything, "new@example.com", "taken").
					Return(&model.User{Email: "other@example.com", Username: "taken"}, nil)
			},
			expectedError: apperrors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			user, token, err := service.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.Empty(t, user.FavoriteCountries)

				// Issued token must resolve back to the created user.
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID.String(), claims.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:           uuid.New(),
					Username:     "alice",
					Email:        "alice@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "not-the-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "alice@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			user, token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				// Unknown email and wrong password must be indistinguishable.
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("missing token succeeds with no revocation", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)

		assert.NoError(t, service.Logout(context.Background(), ""))
		mockTokenStore.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("garbage token succeeds with no revocation", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)

		assert.NoError(t, service.Logout(context.Background(), "not-a-jwt"))
		mockTokenStore.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid token is revoked for its remaining lifetime", func(t *testing.T) {
		token, err := jwtService.GenerateSessionToken(uuid.New())
		assert.NoError(t, err)
		claims, err := jwtService.ValidateToken(token)
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("Revoke", mock.Anything, claims.ID, mock.AnythingOfType("time.Duration")).Return(nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		assert.NoError(t, service.Logout(context.Background(), token))
		mockTokenStore.AssertExpectations(t)
	})
}
