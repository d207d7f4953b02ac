package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wildtrack-backend/internal/admins"
	"wildtrack-backend/internal/auth"
	"wildtrack-backend/internal/bookings"
	"wildtrack-backend/internal/cache"
	"wildtrack-backend/internal/config"
	"wildtrack-backend/internal/db"
	"wildtrack-backend/internal/handlers"
	"wildtrack-backend/internal/logger"
	"wildtrack-backend/internal/messages"
	"wildtrack-backend/internal/middleware"
	"wildtrack-backend/internal/notifications"
	"wildtrack-backend/internal/safaris"
	"wildtrack-backend/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.LogDir, !cfg.IsProduction())
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zl.Fatal("mongo connection failed", zap.Error(err))
	}
	zl.Info("mongo connected", zap.String("db", cfg.MongoDB))
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		zl.Fatal("index creation failed", zap.Error(err))
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err == nil {
			err = redisCache.Ping(ctx)
		}
		if err != nil {
			zl.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			zl.Info("redis connected")
			cacheStore = redisCache
			defer redisCache.Close()
		}
	}

	val := validation.New()
	safaris.RegisterValidations(val)
	bookings.RegisterValidations(val)

	tokens := &auth.Manager{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.JWTExpiresIn,
		Issuer: cfg.JWTIssuer,
	}

	var static *auth.StaticResolver
	if cfg.AdminUsername != "" {
		static = &auth.StaticResolver{
			Username:     cfg.AdminUsername,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
			Name:         cfg.AdminName,
			Email:        cfg.AdminEmail,
		}
		if !static.Enabled() {
			zl.Warn("ADMIN_USERNAME set without a password, env admin disabled")
		}
	}

	var dispatcher *notifications.Dispatcher
	if mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox); mailer != nil {
		dispatcher = notifications.NewDispatcher(mailer, cfg.NotifyEmail, zl)
		zl.Info("brevo mailer enabled", zap.String("sender", cfg.BrevoSenderEmail), zap.Bool("sandbox", cfg.BrevoSandbox))
	} else {
		zl.Info("brevo mailer disabled")
	}

	adminRepo := admins.NewRepository(cols.Admins)
	resolver := auth.Chain{static, admins.NewStoreResolver(adminRepo, zl)}
	adminService := admins.NewService(adminRepo, resolver, tokens, static)

	safariService := safaris.NewService(safaris.NewRepository(cols.SafariPackages), cacheStore, cfg.CacheTTL(), zl)
	bookingService := bookings.NewService(bookings.NewRepository(cols.Bookings), safariService, dispatcher, cfg.Timezone)
	messageService := messages.NewService(messages.NewRepository(cols.Messages), dispatcher)

	router := handlers.NewRouter(handlers.Deps{
		Env:            cfg.Env,
		Production:     cfg.IsProduction(),
		TrustProxy:     cfg.TrustProxy,
		CORSOrigins:    cfg.CORSOrigins,
		Log:            zl,
		Tokens:         tokens,
		Admins:         admins.NewHandler(adminService, val, zl),
		Bookings:       bookings.NewHandler(bookingService, val, zl),
		Messages:       messages.NewHandler(messageService, val, zl),
		Safaris:        safaris.NewHandler(safariService, val, zl),
		BookingLimiter: middleware.NewRateLimiter(cfg.RateLimitBookings, cfg.RateLimitWindow()),
		MessageLimiter: middleware.NewRateLimiter(cfg.RateLimitMessages, cfg.RateLimitWindow()),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server started", zap.String("addr", cfg.ServerAddr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Error("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown error", zap.Error(err))
	}
	dispatcher.Wait(shutdownCtx)
	zl.Info("server stopped")
}
