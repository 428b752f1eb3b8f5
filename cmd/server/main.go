package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cz4r/config"
	"cz4r/internal/api/handler"
	"cz4r/internal/api/middleware"
	"cz4r/internal/api/router"
	"cz4r/internal/repository"
	"cz4r/internal/service"
	"cz4r/internal/web"
	"cz4r/pkg/clock"
	"cz4r/pkg/database"
	"cz4r/pkg/jwt"
	applogger "cz4r/pkg/logger"
	"cz4r/pkg/redis"
)

func main() {
	// 1. config
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("timezone", cfg.Server.Timezone),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	// 4. redis is optional: without it logout only clears the cookie and
	// login is not throttled.
	var (
		revoker service.SessionRevoker
		limiter middleware.Limiter
	)
	checks := map[string]handler.HealthCheck{"database": sqlDB.PingContext}
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, session revocation and login throttling disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		revoker, limiter = rdb, rdb
		checks["redis"] = rdb.Ping
	}

	clk, err := clock.New(cfg.Server.Timezone)
	if err != nil {
		logger.Fatal("load timezone failed", zap.Error(err))
	}

	pages, err := web.Templates()
	if err != nil {
		logger.Fatal("parse templates failed", zap.Error(err))
	}

	// 5. repository → service → handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, revoker, clk, logger)
	h := handler.NewHandler(cfg, svc, checks)

	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(cfg, h, svc.Auth, limiter, pages, logger)

	// 6. serve until SIGINT/SIGTERM
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
