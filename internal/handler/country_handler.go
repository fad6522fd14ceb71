package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"countryhub/internal/service"
)

// CountryHandler proxies the third-party country API. Payloads pass
// through verbatim so the SPA sees exactly the upstream snapshot.
type CountryHandler struct {
	countryService service.CountryService
}

// NewCountryHandler creates a new country handler.
func NewCountryHandler(countryService service.CountryService) *CountryHandler {
	return &CountryHandler{countryService: countryService}
}

// All godoc
// @Summary List all countries
// @Tags countries
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} errors.ErrorResponse
// @Router /countries [get]
func (h *CountryHandler) All(c echo.Context) error {
	data, err := h.countryService.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

// ByName godoc
// @Summary Search countries by name
// @Tags countries
// @Produce json
// @Param name path string true "Name fragment"
// @Success 200 {array} object
// @Failure 404 {object} errors.ErrorResponse
// @Router /countries/name/{name} [get]
func (h *CountryHandler) ByName(c echo.Context) error {
	data, err := h.countryService.ByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

// ByRegion godoc
// @Summary List countries in a region
// @Tags countries
// @Produce json
// @Param region path string true "Region"
// @Success 200 {array} object
// @Failure 404 {object} errors.ErrorResponse
// @Router /countries/region/{region} [get]
func (h *CountryHandler) ByRegion(c echo.Context) error {
	data, err := h.countryService.ByRegion(c.Request().Context(), c.Param("region"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

// ByCode godoc
// @Summary Look up a country by alpha code
// @Tags countries
// @Produce json
// @Param code path string true "Alpha code"
// @Success 200 {array} object
// @Failure 404 {object} errors.ErrorResponse
// @Router /countries/alpha/{code} [get]
func (h *CountryHandler) ByCode(c echo.Context) error {
	data, err := h.countryService.ByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}
