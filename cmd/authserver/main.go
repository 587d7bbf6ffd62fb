package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"handmade-market/internal/authapi"
	"handmade-market/internal/config"
	"handmade-market/internal/db"
	"handmade-market/internal/logger"
	"handmade-market/internal/metrics"
	"handmade-market/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.L().Fatal("JWT_SECRET is required")
	}

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	tokens := user.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	users := user.NewService(user.NewRepository(database), tokens)
	h := authapi.NewHandler(users, tokens, metrics.New("auth"))

	srv := &http.Server{
		Addr: ":" + cfg.AuthPort,
		Handler: h.Routes(authapi.Options{
			Origins:   cfg.CORSOrigins,
			RateLimit: cfg.RateLimitEnabled,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.L().Info("auth server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error("auth server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("auth server shutdown failed", zap.Error(err))
	}
}
