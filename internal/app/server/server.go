// Package server assembles the HR admin API from configuration and runs it until the
// process is signalled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"hradmin/internal/domain/attendance"
	"hradmin/internal/domain/crud"
	"hradmin/internal/domain/journal"
	"hradmin/internal/domain/payroll"
	"hradmin/internal/domain/roster"
	"hradmin/internal/domain/users"
	"hradmin/internal/platform/config"
	"hradmin/internal/platform/crypto"
	"hradmin/internal/platform/db"
	"hradmin/internal/platform/device"
	"hradmin/internal/platform/filestore"
	"hradmin/internal/platform/jobs"
	"hradmin/internal/platform/metrics"
	"hradmin/internal/transport/http/middleware"
	"hradmin/migrations"
)

const shutdownTimeout = 10 * time.Second

func Run() error {
	if err := config.LoadEnvFiles(".env", ".env.local"); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect failed: %w", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, migrations.FS); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
	}

	usersService := users.NewService(users.NewStore(pool), cfg.JWTSecret, cfg.JWTTTL)
	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		return err
	}
	if sealer != nil {
		usersService.Sealer = sealer
	}
	if cfg.RunSeed && cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		created, err := usersService.SeedAdmin(ctx, crud.NewID(), cfg.SeedAdminEmail, cfg.SeedAdminPassword)
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		if created {
			slog.Info("seeded admin user", "email", cfg.SeedAdminEmail)
		}
	}

	rdb, err := redisClient(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	loc := cfg.Location()
	var rosterCache *roster.HolidayCache
	var idempotency *middleware.IdempotencyStore
	if rdb != nil {
		rosterCache = roster.NewHolidayCache(rdb, cfg.HolidayCacheTTL)
		idempotency = middleware.NewIdempotencyStore(rdb, 24*time.Hour)
	}
	rosterService := roster.NewService(roster.NewStore(pool), rosterCache)
	payrollService := payroll.NewService(payroll.NewStore(pool), roster.NewStore(pool), loc)

	var gateway attendance.Gateway = device.Unconfigured{}
	if cfg.DeviceServiceURL != "" {
		client, err := device.New(cfg.DeviceServiceURL, cfg.DeviceTimeout)
		if err != nil {
			return err
		}
		gateway = client
	}
	var recorder attendance.SyncRecorder
	if collector != nil {
		recorder = collector
	}
	syncer := attendance.NewSyncer(&attendance.Store{DB: pool}, gateway, recorder, loc)
	jobsService := jobs.New(func(ctx context.Context) (any, error) {
		return syncer.SyncAll(ctx)
	}, cfg.DeviceSyncInterval)
	jobsService.Start(ctx)

	files, err := filestore.New(cfg.StorageDir, cfg.MaxUploadBytes)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	router := NewRouter(Deps{
		Config:   cfg,
		DB:       pool,
		Ready:    pool.Ping,
		Metrics:  collector,
		Users:    usersService,
		Roster:   rosterService,
		Payroll:  payrollService,
		Syncer:   syncer,
		Jobs:     jobsService,
		Articles: &journal.ArticleService{Store: &journal.Store{DB: pool}, Files: files},
		Covers:   files,

		Idempotency: idempotency,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HR admin server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// redisClient returns nil when url is empty; the holiday list is then read from the database
// on every call.
func redisClient(ctx context.Context, url string) (*redis.Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL is invalid: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unreachable, holiday cache degrades to database reads", "err", err)
	}
	return client, nil
}

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}
