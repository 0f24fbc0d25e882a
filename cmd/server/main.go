package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"advisor_backend/internal/app/di"
	"advisor_backend/internal/app/router"
	statushandler "advisor_backend/internal/feature/status/transport/handler"
	transformhandler "advisor_backend/internal/feature/transform/transport/handler"
	"advisor_backend/internal/platform/db"
	platformhandler "advisor_backend/internal/platform/http/handler"
	jwtmw "advisor_backend/internal/platform/jwt"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := di.OpenInfra(ctx)
	if err != nil {
		slog.Error("failed to initialize infrastructure", "error", err)
		os.Exit(1)
	}
	defer infra.Close()

	// Usecase
	svc := di.NewServices(infra)

	// Handler
	checks := map[string]platformhandler.Check{
		"db":   db.Ping(infra.DB),
		"blob": infra.Store.Ping,
	}
	if infra.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return infra.Redis.Ping(ctx).Err() }
	}
	healthH := platformhandler.NewHealthHandler(checks)
	transformH := transformhandler.NewTransformHandler(svc.Transformer())
	statusH := statushandler.NewStatusHandler(svc.Tracker)

	// JWT_SECRETチェック（開発中の注意喚起）
	authRequired := os.Getenv("AUTH_REQUIRED") == "true"
	if authRequired && os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		slog.Warn("JWT_SECRET is not set. Every authenticated request will be rejected.")
	}

	// ルータ生成
	engine := router.NewRouter(healthH, transformH, statusH, router.Options{AuthRequired: authRequired})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "auth_required", authRequired)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
