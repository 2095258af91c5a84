package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"registrar_backend/internals/configs"
	database "registrar_backend/internals/databases"
	"registrar_backend/internals/features/registrar/repository"
	"registrar_backend/internals/features/registrar/service"
	"registrar_backend/internals/logger"
	"registrar_backend/internals/middlewares"
	routes "registrar_backend/internals/route"
	"registrar_backend/internals/seeds"
)

func main() {
	cfg := configs.LoadEnv()
	log := logger.Must(cfg.LogLevel, cfg.LogFormat, "registrar")
	defer func() { _ = log.Sync() }()

	// store
	var (
		db   *gorm.DB
		set  repository.Set
		ping func() error
	)
	switch cfg.StoreBackend {
	case configs.StoreMemory:
		log.Warn("using in-memory store, data is lost on exit")
		set = repository.NewMemorySet()
	default:
		var err error
		db, err = database.ConnectDB(cfg, log)
		if err != nil {
			log.Fatal("database", zap.Error(err))
		}
		database.TunePool(db, log)
		if err := database.Migrate(db); err != nil {
			log.Fatal("database", zap.Error(err))
		}
		set = repository.NewGormSet(db)
		ping = func() error { return database.Ping(db) }
	}
	reg := service.NewRegistry(set)

	if cfg.SeedFile != "" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if _, err := seeds.RunAllSeeds(ctx, reg, cfg.SeedFile, log); err != nil {
			log.Error("seeding failed", zap.Error(err))
		}
		cancel()
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          middlewares.ErrorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	metrics := middlewares.NewHTTPMetrics()
	middlewares.SetupMiddlewares(app, middlewares.Options{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitMax:   cfg.RateLimitMax,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        metrics,
	})

	routes.SetupRoutes(app, reg, routes.Options{
		Log:         log,
		APIPrefix:   cfg.APIPrefix,
		BaseURL:     publicBase(cfg),
		JWTSecret:   cfg.JWTSecret,
		WriteRoles:  cfg.JWTWriteRoles,
		Environment: cfg.Environment,
		Ping:        ping,
		Metrics:     metrics,
	})

	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// self links use PUBLIC_BASE_URL when set, else the request host
func publicBase(cfg configs.Config) string {
	if cfg.PublicBaseURL == "" {
		return ""
	}
	return cfg.PublicBaseURL + cfg.APIPrefix
}
