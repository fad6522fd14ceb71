package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"countryhub/internal/auth"
	"countryhub/internal/model"
	"countryhub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new auth handler. secureCookies marks the
// session cookie Secure (production only).
func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful register or login response.
type AuthResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
	Message string      `json:"message,omitempty"`
}

// LogoutResponse represents a logout response.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, AuthResponse{
		Success: true,
		User:    user,
		Token:   token,
		Message: "User registered successfully",
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		User:    user,
		Token:   token,
		Message: "Login successful",
	})
}

// Logout godoc
// @Summary Logout and clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} LogoutResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Logout succeeds even without a session. A presented token is
	// revoked for its remaining lifetime; the cookie is cleared regardless.
	token, _ := auth.ExtractToken(c)
	_ = h.authService.Logout(c.Request().Context(), token)

	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, LogoutResponse{
		Success: true,
		Message: "Logout successful",
	})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies,
	})
}
