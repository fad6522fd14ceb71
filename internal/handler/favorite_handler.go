package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"countryhub/internal/auth"
	"countryhub/internal/model"
	"countryhub/internal/service"
)

// FavoriteHandler handles favorite-country endpoints.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorites handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// AddFavoriteRequest represents a favorite-country addition.
type AddFavoriteRequest struct {
	CountryCode string `json:"countryCode" validate:"required,min=2,max=8"`
	CountryName string `json:"countryName" validate:"required"`
	FlagURL     string `json:"flagUrl" validate:"omitempty,url"`
}

// FavoritesResponse carries the full updated favorites sequence.
type FavoritesResponse struct {
	Success           bool                    `json:"success"`
	FavoriteCountries []model.FavoriteCountry `json:"favoriteCountries"`
	Message           string                  `json:"message,omitempty"`
}

// List godoc
// @Summary List favorite countries
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FavoritesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/getall/favorite [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, err := auth.SessionUserID(c)
	if err != nil {
		return err
	}

	favorites, err := h.favoriteService.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, FavoritesResponse{
		Success:           true,
		FavoriteCountries: favorites,
	})
}

// Add godoc
// @Summary Add a country to favorites
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddFavoriteRequest true "Country to add"
// @Success 200 {object} FavoritesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /user/favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := auth.SessionUserID(c)
	if err != nil {
		return err
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	favorites, err := h.favoriteService.Add(c.Request().Context(), userID, req.CountryCode, req.CountryName, req.FlagURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, FavoritesResponse{
		Success:           true,
		FavoriteCountries: favorites,
		Message:           "Country added to favorites",
	})
}

// Remove godoc
// @Summary Remove a country from favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param countryCode path string true "Country alpha code"
// @Success 200 {object} FavoritesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/favorites/{countryCode} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := auth.SessionUserID(c)
	if err != nil {
		return err
	}

	countryCode := c.Param("countryCode")
	if countryCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing country code")
	}

	favorites, err := h.favoriteService.Remove(c.Request().Context(), userID, countryCode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, FavoritesResponse{
		Success:           true,
		FavoriteCountries: favorites,
		Message:           "Country removed from favorites",
	})
}
