package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"countryhub/internal/config"
	"countryhub/internal/errors"
	"countryhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessionGuard echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	favoriteHandler *handler.FavoriteHandler,
	countryHandler *handler.CountryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errors.HTTPErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Country browsing needs no session
	api.GET("/countries", countryHandler.All)
	api.GET("/countries/name/:name", countryHandler.ByName)
	api.GET("/countries/region/:region", countryHandler.ByRegion)
	api.GET("/countries/alpha/:code", countryHandler.ByCode)

	// Session-protected routes
	user := api.Group("/user", sessionGuard)
	user.GET("/profile", userHandler.GetProfile)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.GET("/getall/favorite", favoriteHandler.List)
	user.POST("/favorites", favoriteHandler.Add)
	user.DELETE("/favorites/:countryCode", favoriteHandler.Remove)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
