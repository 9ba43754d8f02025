package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/faciam-dev/formfields/internal/config"
	"github.com/faciam-dev/formfields/internal/fieldset"
	"github.com/faciam-dev/formfields/internal/logger"
	"github.com/faciam-dev/formfields/internal/server"
	"github.com/faciam-dev/formfields/internal/users"
)

func main() {
	cfgPath := flag.String("config", config.GetEnv(config.EnvConfig, "configs/fields.example.yaml"), "field-set file")
	addr := flag.String("addr", ":8080", "listen address")
	usersDSN := flag.String("users-dsn", "", "users database DSN (overrides the config file)")
	redisURL := flag.String("redis-url", "", "Redis URL for the lookup cache (overrides the config file)")
	openapi := flag.String("openapi", "", "write OpenAPI JSON and exit")
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	logFormat := flag.String("log-format", "text", "log format (text|json)")
	flag.Parse()

	logger.Set(logger.New(*logLevel, *logFormat))

	zl, err := zap.NewProduction()
	if err != nil {
		logger.L.Error("zap logger", "err", err)
		os.Exit(1)
	}
	defer func() { _ = zl.Sync() }()
	sugar := zl.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := config.Load(*cfgPath)
	if err != nil {
		logger.L.Error("load config", "path", *cfgPath, "err", err)
		os.Exit(1)
	}
	if *usersDSN != "" {
		f.Users.DSN = *usersDSN
	}
	if *redisURL != "" {
		f.Users.RedisURL = *redisURL
	}

	if err := checkUsersTable(ctx, f); err != nil {
		logger.L.Error("users table check", "err", err)
		os.Exit(1)
	}

	lookup, closeRegistry, err := fieldset.OpenRegistry(ctx, f, sugar)
	if err != nil {
		logger.L.Error("open user registry", "err", err)
		os.Exit(1)
	}
	defer func() { _ = closeRegistry(context.Background()) }()

	store, err := fieldset.NewStore(*cfgPath, lookup, sugar)
	if err != nil {
		logger.L.Error("build fields", "err", err)
		os.Exit(1)
	}
	api := server.New(fieldset.NewService(store, sugar))

	if *openapi != "" {
		data, err := json.MarshalIndent(api.OpenAPI(), "", "  ")
		if err != nil {
			logger.L.Error("marshal openapi", "err", err)
			os.Exit(1)
		}
		p := filepath.Clean(*openapi)
		if err := os.WriteFile(p, data, 0o600); err != nil {
			logger.L.Error("write openapi", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := store.Start(ctx); err != nil {
		logger.L.Warn("config hot reload disabled", "path", *cfgPath, "err", err)
	}

	logger.L.Info("listening", "addr", *addr, "fields", len(store.Catalog().Names()))
	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.Adapter(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.L.Error("server error", "err", err)
		os.Exit(1)
	}
}

// checkUsersTable fails early when a postgres or mysql registry lacks the
// users table.
func checkUsersTable(ctx context.Context, f *config.File) error {
	if f.Users.DSN == "" {
		return nil
	}
	driver := f.Users.Driver
	if driver == "" {
		d, err := users.DetectDriver(f.Users.DSN)
		if err != nil {
			return err
		}
		driver = d
	}
	dialect, ok := config.DialectFromDriver(driver)
	if !ok {
		return nil
	}
	db, err := users.OpenSQL(driver, f.Users.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	return config.CheckUsersTable(ctx, db, dialect, f.Users.TablePrefix)
}
