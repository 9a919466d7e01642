// Command server runs the taskboard HTTP API.
//
// @title                       Taskboard API
// @version                     1.0
// @description                 Task, project and employee management with a single session gate.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/workboard/taskboard/internal/api"
	"github.com/workboard/taskboard/internal/api/handler"
	"github.com/workboard/taskboard/internal/api/metrics"
	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/loader"
	"github.com/workboard/taskboard/internal/core/ports"
	"github.com/workboard/taskboard/internal/core/query"
	"github.com/workboard/taskboard/internal/core/session"
	"github.com/workboard/taskboard/internal/core/store"
	"github.com/workboard/taskboard/internal/infrastructure/db/memory"
	mongodb "github.com/workboard/taskboard/internal/infrastructure/db/mongo"
	redisdb "github.com/workboard/taskboard/internal/infrastructure/db/redis"
	"github.com/workboard/taskboard/internal/infrastructure/db/sqlite"
	"github.com/workboard/taskboard/internal/infrastructure/seed"
	"github.com/workboard/taskboard/internal/pkg/config"
	"github.com/workboard/taskboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "taskboard",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("auth_mode", cfg.AuthMode).
		Str("dataset_source", cfg.DatasetSource).
		Str("session_backend", cfg.Session.Backend).
		Msg("starting taskboard")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checkers := map[string]handler.Checker{}
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// --- Store ---
	st := store.New(logger.Component("store"), store.WithObserver(func(a store.Action) {
		metrics.StoreActionsTotal.WithLabelValues(a.Kind()).Inc()
	}))

	// --- MongoDB (dataset source and credentials) ---
	var db *mongodb.DB
	if cfg.NeedsMongo() {
		var err error
		db, err = mongodb.Open(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("connect to MongoDB")
		}
		closers = append(closers, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Close(closeCtx)
		})
		checkers["mongodb"] = db.Ping
	}

	// --- Session persistence ---
	sessions, err := openSessionStore(ctx, cfg, checkers, &closers)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("open session store")
	}

	// --- Authentication strategy ---
	var (
		auth      ports.Authenticator
		registrar ports.Registrar
	)
	switch cfg.AuthMode {
	case config.AuthPassword:
		repo := mongodb.NewCredentialRepository(db.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure credential indexes")
		}
		pw := session.NewPasswordAuthenticator(repo, st)
		if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
			err := pw.Enroll(ctx, "", cfg.Admin.Email, cfg.Admin.Password, domain.RoleAdmin)
			if err != nil && !errors.Is(err, domain.ErrUserExists) {
				log.Fatal().Err(err).Msg("enrol bootstrap admin")
			}
		}
		auth, registrar = pw, pw
	default:
		auth = session.NewDemoAuthenticator(st)
	}

	gate, outcome := session.NewGate(ctx, st, auth, sessions, logger.Component("session"))
	metrics.SessionRestoresTotal.WithLabelValues(string(outcome)).Inc()

	// --- Initial load ---
	var source ports.DatasetSource = seed.NewSource()
	if cfg.DatasetSource == config.SourceMongo {
		mongoSource := mongodb.NewDatasetSource(db.Database())
		if err := mongoSource.Import(ctx, seed.Dataset()); err != nil {
			log.Fatal().Err(err).Msg("import seed dataset")
		}
		source = mongoSource
	}
	ld := loader.New(st, source, cfg.LoadDelay, logger.Component("loader"),
		loader.WithReport(func(err error, elapsed time.Duration) {
			metrics.ObserveLoad(loadOutcome(err), elapsed)
		}),
	)
	ld.Start(ctx)

	// --- HTTP ---
	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random secret for this process")
	}

	e := api.NewRouter(api.RouterDeps{
		Store:     st,
		Queries:   query.New(st),
		Gate:      gate,
		Tokens:    session.NewTokens(secret, cfg.TokenTTL),
		Registrar: registrar,
		Checkers:  checkers,
		Log:       logger.Component("http"),
	})
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	<-ld.Done()
}

// openSessionStore opens the configured backend and registers its readiness
// check and cleanup.
func openSessionStore(ctx context.Context, cfg *config.Config, checkers map[string]handler.Checker, closers *[]func()) (ports.SessionStore, error) {
	switch cfg.Session.Backend {
	case config.SessionRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = client.Close() })
		checkers["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return redisdb.NewSessionStore(client, cfg.Session.Key, 0), nil
	case config.SessionMemory:
		return memory.NewSessionStore(), nil
	default:
		s, err := sqlite.Open(ctx, cfg.Session.SQLitePath, cfg.Session.Key)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = s.Close() })
		checkers["sqlite"] = s.Ping
		return s, nil
	}
}

func loadOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "abandoned"
	default:
		return "error"
	}
}
