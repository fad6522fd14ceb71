package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"countryhub/internal/auth"
	"countryhub/internal/model"
	"countryhub/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a profile update. Both fields are always
// written as provided; an omitted field is written as empty.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// ProfileResponse represents a profile response.
type ProfileResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
	Message string      `json:"message,omitempty"`
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := auth.SessionUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProfileResponse{Success: true, User: user})
}

// UpdateProfile godoc
// @Summary Update username and email
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := auth.SessionUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, req.Username, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProfileResponse{
		Success: true,
		User:    user,
		Message: "Profile updated successfully",
	})
}
