package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"wildtrack-backend/internal/admins"
	"wildtrack-backend/internal/cache"
	"wildtrack-backend/internal/config"
	"wildtrack-backend/internal/db"
	"wildtrack-backend/internal/logger"
	"wildtrack-backend/internal/safaris"
)

const (
	defaultAdminUsername = "admin"
	devAdminPassword     = "admin123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New("", !cfg.IsProduction())
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zl.Fatal("mongo connection failed", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		zl.Fatal("index creation failed", zap.Error(err))
	}

	safariService := safaris.NewService(safaris.NewRepository(cols.SafariPackages), cache.NewNoop(), cfg.CacheTTL(), zl)
	created, err := safariService.EnsureDefaults(ctx)
	if err != nil {
		zl.Fatal("seed safari packages failed", zap.Error(err))
	}
	zl.Info("safari packages seeded", zap.Int("created", created))

	username := cfg.AdminUsername
	if username == "" {
		username = defaultAdminUsername
	}
	password := cfg.AdminPassword
	if password == "" {
		if cfg.IsProduction() {
			zl.Fatal("ADMIN_PASSWORD is required in production")
		}
		password = devAdminPassword
		zl.Warn("ADMIN_PASSWORD not set, using development default", zap.String("username", username))
	}

	adminRepo := admins.NewRepository(cols.Admins)
	adminService := admins.NewService(adminRepo, nil, nil, nil)
	admin, ok, err := adminService.EnsureDefault(ctx, admins.CreateRequest{
		Username: username,
		Password: password,
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
	})
	if err != nil {
		zl.Fatal("seed admin failed", zap.Error(err))
	}
	if ok {
		zl.Info("admin created", zap.String("username", admin.Username), zap.String("role", admin.Role))
	} else {
		zl.Info("admin already exists", zap.String("username", username))
	}
}
