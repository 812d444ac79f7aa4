// Package matrimony собирает основное HTTP-приложение брачного сервиса.
package matrimony

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/kalyanamapp/matrimony-backend/internal/cache"
	"github.com/kalyanamapp/matrimony-backend/internal/config"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/jwt"
	"github.com/kalyanamapp/matrimony-backend/internal/migrations"
	authservice "github.com/kalyanamapp/matrimony-backend/internal/services/auth"
	membershipservice "github.com/kalyanamapp/matrimony-backend/internal/services/membership"
	profileservice "github.com/kalyanamapp/matrimony-backend/internal/services/profile"
	searchservice "github.com/kalyanamapp/matrimony-backend/internal/services/search"
	"github.com/kalyanamapp/matrimony-backend/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	searchService := searchservice.New(db, logger)
	profileService := profileservice.New(db, cacheRedis, logger)
	membershipService := membershipservice.New(db, cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker,
		authService, searchService, profileService, membershipService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
