package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stockflow/internal/auth"
	"stockflow/internal/config"
	"stockflow/internal/httpserver"
	"stockflow/internal/logger"
	"stockflow/internal/models"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()
	if cfg.DatabaseURL == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		lg.Fatalw("JWT_SECRET is empty")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.StockItem{},
		&models.StockRequest{},
		&models.StockHistory{},
		&models.Session{},
		&models.AuditLog{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedDefaultAdmin(db, cfg, lg)
	router := httpserver.NewRouter(db, lg, cfg)
	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}

func seedDefaultAdmin(db *gorm.DB, cfg *config.Config, lg *zap.SugaredLogger) {
	var count int64
	db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return
	}
	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		lg.Fatalw("seed admin hash failed", "error", err)
	}
	u := models.User{
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		FirstName:    "Default",
		LastName:     "Admin",
		IsAdmin:      true,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(&u).Error; err != nil {
		lg.Fatalw("seed admin failed", "error", err)
	}
	lg.Infow("seeded default admin", "email", u.Email)
}
