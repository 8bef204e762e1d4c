package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DoyleJ11/autochess-backend/internal/config"
	"github.com/DoyleJ11/autochess-backend/internal/engine"
	"github.com/DoyleJ11/autochess-backend/internal/httpapi"
	"github.com/DoyleJ11/autochess-backend/internal/hub"
	"github.com/DoyleJ11/autochess-backend/internal/session"
	"github.com/DoyleJ11/autochess-backend/internal/store"
	"github.com/DoyleJ11/autochess-backend/internal/ws"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultSession always exists so a client can play without creating one.
const defaultSession = "default"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, closeResults, err := openResults(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeResults()

	options, err := sessionOptions(cfg, results, log)
	if err != nil {
		return err
	}

	h := hub.NewHub(ctx, options, log.Named("hub"))
	h.Pin(defaultSession)

	var origins []string
	if cfg.Development() {
		origins = []string{"localhost:*", "127.0.0.1:*"}
	}
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.SetupRoutes(httpapi.Deps{
			Hub:     h,
			Results: results,
			Logger:  log,
			WS:      ws.Options{OriginPatterns: origins},
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openResults picks the Postgres ledger when DATABASE_URL is set and the
// in-memory one otherwise.
func openResults(ctx context.Context, cfg config.Config, log *zap.Logger) (store.Results, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("results kept in memory")
		return store.NewMemoryResults(), func() {}, nil
	}

	pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL, log.Named("store"))
	if err != nil {
		return nil, nil, fmt.Errorf("open results store: %w", err)
	}
	return pg, func() {
		if err := pg.Close(); err != nil {
			log.Warn("close results store", zap.Error(err))
		}
	}, nil
}

func sessionOptions(cfg config.Config, results store.Results, log *zap.Logger) (hub.OptionsFunc, error) {
	pools, err := cfg.Rules.PoolConfig()
	if err != nil {
		return nil, err
	}
	roster, err := cfg.Rules.StartingRoster()
	if err != nil {
		return nil, err
	}

	// With a seed every session draws its own seed from one master source,
	// so a run is reproducible as long as sessions are created in order.
	var master engine.Rand
	if cfg.Seed != 0 {
		master = engine.NewRand(cfg.Seed)
	}

	sessionLog := log.Named("session")
	return func(code string) session.Options {
		rng := engine.NewRandomRand()
		if master != nil {
			rng = engine.NewRand(uint64(master.IntN(math.MaxInt)))
		}
		return session.Options{
			Code:           code,
			StartingHealth: cfg.Rules.StartingHealth,
			StartingGold:   cfg.Rules.StartingGold,
			StartingTier:   cfg.Rules.StartingTier,
			StartingRoster: roster,
			Pools:          pools,
			MinPlayers:     cfg.Rules.MinPlayers,
			Simulator:      engine.Simulator{MaxTurns: cfg.Rules.MaxBattleTurns},
			OnDisconnect:   session.DisconnectPolicy(cfg.DisconnectPolicy),
			Rand:           rng,
			Results:        results,
			Logger:         sessionLog,
		}
	}, nil
}
