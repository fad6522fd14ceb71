package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"user not found", ErrUserNotFound, http.StatusNotFound},
		{"user exists", ErrUserExists, http.StatusConflict},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"favorite exists", ErrFavoriteExists, http.StatusConflict},
		{"invalid session", ErrInvalidSession, http.StatusUnauthorized},
		{"country not found", ErrCountryNotFound, http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("load profile: %w", ErrUserNotFound), http.StatusNotFound},
		{"unknown error", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, mapped.StatusCode)
			assert.NotEmpty(t, mapped.Message)
		})
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	e := echo.New()

	serve := func(err error) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		HTTPErrorHandler(err, e.NewContext(req, rec))
		return rec
	}

	t.Run("domain error becomes the envelope", func(t *testing.T) {
		rec := serve(ErrFavoriteExists)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Country already in favorites"}`, rec.Body.String())
	})

	t.Run("echo http error keeps its message", func(t *testing.T) {
		rec := serve(echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"invalid request body"}`, rec.Body.String())
	})

	t.Run("unknown error is an internal envelope with detail", func(t *testing.T) {
		rec := serve(fmt.Errorf("store unavailable"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"Server error"`)
		assert.Contains(t, rec.Body.String(), `"error":"store unavailable"`)
	})
}
