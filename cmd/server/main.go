package main

import (
	"context"

	"travlog/internal/api"     // HTTP routes and handlers
	"travlog/internal/config"  // Configuration
	"travlog/internal/store"   // Persistence layer
	"travlog/internal/uploads" // Photo storage

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

func main() {
	cfg := config.LoadConfig() // Load configuration

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Redis caches per-owner entry lists and stats. The service still works
	// without it, so a missing redis only costs the cache.
	var redisClient *redis.Client
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logrus.Warnf("redis unavailable, caching disabled: %v", err)
	} else {
		redisClient = rdb
	}

	storage, err := uploads.NewStorage(cfg.UploadDir)
	if err != nil {
		logrus.Fatalf("failed to prepare upload dir: %v", err)
	}

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Users:      store.NewUserStore(db),
		Entries:    store.NewEntryStore(db),
		Storage:    storage,
		Rdb:        redisClient,
		JWTSecret:  cfg.JWTSecret,
		GeocodeURL: cfg.GeocodeURL,
	})

	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
