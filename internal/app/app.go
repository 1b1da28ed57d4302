package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"branches-api/internal/config"
	"branches-api/internal/database"
	"branches-api/internal/handler"
	"branches-api/internal/middleware"
	"branches-api/internal/repository"
	"branches-api/internal/router"
	"branches-api/internal/service"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var (
		userStore  service.UserStore
		boardStore service.BoardStore
		cleanup    []func()
	)

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := db.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}

		userStore = repository.NewUserRepository(db.Pool)
		boardStore = repository.NewBoardRepository(db.Pool)
		cleanup = append(cleanup, db.Close)
		slog.Info("database ready")
	case config.StoreBackendMemory:
		slog.Info("using in-memory stores")
		userStore = repository.NewMemoryUserStore()
		boardStore = repository.NewMemoryBoardStore()
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	authService := service.NewAuthService(userStore, tokenService, cfg.AuthRecheckUser)
	boardService := service.NewBoardService(boardStore)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		Board: handler.NewBoardHandler(boardService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: cleanup}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

// shutdown drains in-flight requests before releasing the stores, so a
// request already past the gate never loses its database mid-handler.
func (a *App) shutdown(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	return nil
}
