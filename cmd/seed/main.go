package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"countryhub/internal/config"
	"countryhub/internal/db"
	"countryhub/internal/model"
	"countryhub/internal/repository"
)

type seedUser struct {
	Username  string
	Email     string
	Password  string
	Favorites []model.FavoriteCountry
}

var demoUsers = []seedUser{
	{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		Favorites: []model.FavoriteCountry{
			{CountryCode: "USA", CountryName: "United States", FlagURL: "https://flagcdn.com/us.svg"},
			{CountryCode: "JPN", CountryName: "Japan", FlagURL: "https://flagcdn.com/jp.svg"},
		},
	},
	{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
		Favorites: []model.FavoriteCountry{
			{CountryCode: "BRA", CountryName: "Brazil", FlagURL: "https://flagcdn.com/br.svg"},
		},
	},
	{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("database close: %v", err)
		}
	}()
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.FavoriteCountry{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, demo := range demoUsers {
		existing, err := userRepo.FindByEmailOrUsername(ctx, demo.Email, demo.Username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Error checking user %s: %v", demo.Email, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", demo.Email)
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", demo.Email, err)
		}

		user := &model.User{
			Username:     demo.Username,
			Email:        demo.Email,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", demo.Email, err)
		}

		for _, fav := range demo.Favorites {
			fav.UserID = user.ID
			if err := favoriteRepo.Add(ctx, &fav); err != nil {
				log.Fatalf("Failed to add favorite %s for %s: %v", fav.CountryCode, demo.Email, err)
			}
		}
		created++
	}

	log.Printf("Seed completed: %d users created, %d skipped", created, skipped)
}
