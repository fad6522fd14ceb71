package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"countryhub/docs"

	"countryhub/internal/auth"
	"countryhub/internal/cache"
	"countryhub/internal/config"
	"countryhub/internal/countries"
	"countryhub/internal/db"
	"countryhub/internal/handler"
	"countryhub/internal/model"
	"countryhub/internal/repository"
	"countryhub/internal/router"
	"countryhub/internal/service"
)

// @title Country Hub API
// @version 1.0
// @description Country browsing API with favorites and JWT session authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. The session cookie works as well.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("database close: %v", err)
		}
	}()

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.FavoriteCountry{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.FavoriteCountry{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	favoriteService := service.NewFavoriteService(userRepo, favoriteRepo, cacheClient)
	countryService := service.NewCountryService(countries.NewClient(cfg.CountriesAPIURL), cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	countryHandler := handler.NewCountryHandler(countryService)

	router.Register(
		e,
		cfg,
		auth.SessionGuard(jwtService, tokenStore),
		authHandler,
		userHandler,
		favoriteHandler,
		countryHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
