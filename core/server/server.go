package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/cache"
	"github.com/EngStrategy/arenahub-backend-sub000/core/config"
	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/core/queue"
	"github.com/EngStrategy/arenahub-backend-sub000/core/storage"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the whole service: configuration, storage, the HTTP server and
// the async notification worker. It blocks until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logger.Level, cfg.Logger.JSON)
	logger.Info("Server:Run:Start", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	redisCache, err := cache.Init(cfg.Redis)
	if err != nil {
		// Cache and queue are optional at boot; booking still works, only
		// slower and without notifications.
		logger.Warn("Server:Run:CacheUnavailable", "error", err)
	}
	defer redisCache.Close()

	tasks := queue.Init(cfg.Redis)
	defer tasks.Close()

	uploader := storage.Init(cfg.Storage)
	mw := middleware.New(cfg.Auth.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	workerMux := asynq.NewServeMux()

	account.Init(e, db, mw)
	court.Init(e, db, mw, redisCache, uploader)
	booking.Init(e, db, mw, tasks)
	notification.Init(e, db, mw, workerMux)

	worker := queue.NewServer(cfg.Redis)
	go func() {
		if err := worker.Run(workerMux); err != nil {
			logger.Error("Server:Run:Worker", "error", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server:Run:Listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Run:Shutdown")
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
