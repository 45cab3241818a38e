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

	"github.com/spf13/cobra"

	"dashboard/internal/config"
	"dashboard/internal/database"
	"dashboard/internal/handler"
	"dashboard/internal/service"
	"dashboard/internal/session"
	"dashboard/internal/worker"
	logx "dashboard/pkg/logger"
	redisx "dashboard/pkg/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cfg)
	},
}

func serve(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	loader := service.NewDataLoader(src, service.LoaderOptions{
		CacheTTL: cfg.CacheTTL,
		Timeout:  cfg.FetchTimeout,
	})
	if fs, ok := src.(*service.FileSource); ok {
		go func() {
			if err := fs.Watch(ctx, loader.Invalidate); err != nil {
				logx.Error().Err(err).Msg("data file watch stopped")
			}
		}()
	}

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Services
	sessions := service.NewSessionService(store, service.NewTokens(cfg.JWTSecret, cfg.SessionTTL))
	spaces := service.NewWorkspaceService(loader, cfg.PageSize)
	auth := service.NewSimulatedAuthenticator(cfg.LoginDelay)

	// Worker
	sweepWorker := worker.NewSweepWorker(spaces, cfg.WorkspaceIdle, cfg.SweepInterval)
	if mem, ok := store.(*session.MemoryStore); ok {
		sweepWorker.PurgeSessions(mem)
	}

	srv := &http.Server{
		Addr: cfg.RunAddress,
		Handler: handler.NewRouter(handler.Deps{
			Auth:     auth,
			Sessions: sessions,
			Spaces:   spaces,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go sweepWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logx.Info().Str("addr", cfg.RunAddress).Str("source", src.Name()).Msg("starting server")

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}
	logx.Info().Msg("shutting down...")

	cancel() // stop worker and watcher
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		logx.Error().Err(err).Msg("server shutdown failed")
	}

	logx.Info().Msg("server stopped")
	return nil
}

func openSource(ctx context.Context, cfg *config.Config) (service.Source, func(), error) {
	switch cfg.DataSource {
	case config.SourceHTTP:
		return service.NewHTTPSource(cfg.DataURL), func() {}, nil
	case config.SourcePostgres:
		db, err := database.NewDB(ctx, cfg.DatabaseURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to DB: %w", err)
		}
		if err := database.InitSchema(ctx, db); err != nil {
			database.CloseDB(db)
			return nil, nil, fmt.Errorf("init DB schema: %w", err)
		}
		src := service.NewPostgresSource(database.NewDocuments(db), cfg.DataDocument)
		return src, func() { database.CloseDB(db) }, nil
	default:
		return service.NewFileSource(cfg.DataFile), func() {}, nil
	}
}

func openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	rc := redisx.DefaultConfig()
	rc.URL = cfg.RedisURL
	if !rc.Enabled() {
		logx.Info().Msg("sessions kept in memory")
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	client, err := rc.New(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	logx.Info().Msg("sessions kept in redis")
	return session.NewRedisStore(client, cfg.SessionTTL), func() {
		if err := client.Close(); err != nil {
			logx.Error().Err(err).Msg("close redis")
		}
	}, nil
}
