package auth

import (
	"errors"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "countryhub/internal/errors"
)

const sessionContextKey = "session"

// SessionGuard gates protected routes. It extracts the token (cookie first,
// bearer header second), verifies signature, expiry and the revocation list,
// and attaches the resolved claims to the request context. Any failure ends
// the request with Unauthorized before the handler runs.
func SessionGuard(jwtService *JWTService, tokenStore TokenStore) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  sessionContextKey,
		TokenLookup: "cookie:" + SessionCookieName + ",header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}
			revoked, _ := tokenStore.IsRevoked(c.Request().Context(), claims.ID)
			if revoked {
				return nil, errors.New("session revoked")
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrInvalidSession
		},
	})
}

// SessionUserID resolves the authenticated user ID from the request context.
// Only meaningful behind SessionGuard.
func SessionUserID(c echo.Context) (uuid.UUID, error) {
	claims, ok := c.Get(sessionContextKey).(*SessionClaims)
	if !ok {
		return uuid.Nil, apperrors.ErrInvalidSession
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidSession
	}
	return id, nil
}
