package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jcmexdev/shoply-api/internal/auth"
	authmongo "github.com/jcmexdev/shoply-api/internal/auth/adapters/mongodb"
	"github.com/jcmexdev/shoply-api/internal/catalog"
	catalogmongo "github.com/jcmexdev/shoply-api/internal/catalog/adapters/mongodb"
	"github.com/jcmexdev/shoply-api/internal/config"
	"github.com/jcmexdev/shoply-api/internal/httpx"
	"github.com/jcmexdev/shoply-api/internal/orders"
	ordersmongo "github.com/jcmexdev/shoply-api/internal/orders/adapters/mongodb"
	"github.com/jcmexdev/shoply-api/internal/orders/orderlog"
	orderlogsqlite "github.com/jcmexdev/shoply-api/internal/orders/orderlog/sqlite"
	"github.com/jcmexdev/shoply-api/internal/pkg/cache"
	"github.com/jcmexdev/shoply-api/internal/pkg/mongodb"
	"github.com/jcmexdev/shoply-api/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	shutdown, err := telemetry.SetupTracer(ctx, "shoply-api")
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("failed to connect to mongodb", "uri", cfg.MongoURI, "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			slog.Error("mongodb disconnect error", "error", err)
		}
	}()
	db := client.Database(cfg.MongoDB)

	catalogRepo := catalogmongo.NewRepository(db)
	ordersRepo := ordersmongo.NewRepository(db)
	usersRepo := authmongo.NewRepository(db)
	for _, fn := range []func(context.Context) error{
		catalogRepo.EnsureIndexes,
		ordersRepo.EnsureIndexes,
		usersRepo.EnsureIndexes,
	} {
		if err := fn(ctx); err != nil {
			slog.Error("failed to ensure indexes", "error", err)
			os.Exit(1)
		}
	}

	redisCache := cache.NewRedisCache(cfg.RedisAddr, "shoply")

	// The order event log is best-effort: the API stays up without it.
	var eventLog orderlog.Repository
	if err := os.MkdirAll(filepath.Dir(cfg.OrderLogPath), 0o755); err != nil {
		slog.Warn("could not create order log directory", "path", cfg.OrderLogPath, "error", err)
	} else if repo, err := orderlogsqlite.Open(cfg.OrderLogPath); err != nil {
		slog.Warn("could not open order event log", "path", cfg.OrderLogPath, "error", err)
	} else {
		defer repo.Close()
		eventLog = repo
	}

	catalogSvc := catalog.NewService(catalogRepo, redisCache)
	ordersSvc := orders.NewService(ordersRepo, catalogSvc, eventLog, cfg.ShippingFee)
	authSvc := auth.NewService(usersRepo, auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL))

	handler := httpx.NewHandler(catalogSvc, ordersSvc, authSvc, cfg.Env)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("shoply API running", "addr", cfg.HTTPAddr, "env", cfg.Env)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}
}
