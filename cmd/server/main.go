// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

// Package main is the entry point for the PaperLens server.
//
// PaperLens computes truth-value scores over a citation graph and serves
// traversal, graph export, and recommendation queries for an academic
// paper portal.
//
// # Startup Order
//
//  1. Configuration: defaults, optional YAML file, PAPERLENS_ env vars (Koanf v2)
//  2. Logging: zerolog per the logging section
//  3. Graph store, truth scorer, traversal service, recommendation engine
//  4. Snapshot restore (when enabled): the readiness probe stays negative
//     until the restore finishes
//  5. Supervision tree: periodic snapshot saver and the HTTP server
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests, then a final snapshot is written.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/paperlens/paperlens/internal/api"
	"github.com/paperlens/paperlens/internal/config"
	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/logging"
	"github.com/paperlens/paperlens/internal/metrics"
	"github.com/paperlens/paperlens/internal/recommend"
	"github.com/paperlens/paperlens/internal/snapshot"
	"github.com/paperlens/paperlens/internal/supervisor"
	"github.com/paperlens/paperlens/internal/traverse"
	"github.com/paperlens/paperlens/internal/truth"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(cfg.Logging)
	logging.Info().
		Str("version", version).
		Int("port", cfg.Server.Port).
		Bool("snapshot_enabled", cfg.Snapshot.Enabled).
		Msg("starting paperlens")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
	logging.Info().Msg("shutdown complete")
}

func run(cfg *config.Config) error {
	store := graph.NewStore()

	scorer, err := truth.NewScorer(store, cfg.Truth, logging.Logger())
	if err != nil {
		return fmt.Errorf("initializing scorer: %w", err)
	}
	trav, err := traverse.NewService(store, scorer, cfg.Traverse, logging.Logger())
	if err != nil {
		return fmt.Errorf("initializing traversal: %w", err)
	}
	engine, err := recommend.NewEngine(store, trav, scorer, cfg.Recommend, logging.Logger())
	if err != nil {
		return fmt.Errorf("initializing recommendation engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ready atomic.Bool
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	if cfg.Snapshot.Enabled {
		snap, err := snapshot.Open(snapshot.Options{Path: cfg.Snapshot.Path}, logging.Logger())
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
		defer func() {
			if err := snap.Close(); err != nil {
				logging.Error().Err(err).Msg("error closing snapshot store")
			}
		}()

		if err := snap.Load(store); err != nil {
			return fmt.Errorf("restoring snapshot: %w", err)
		}
		tree.AddPersistenceService(supervisor.NewSnapshotService(
			supervisor.SaverFunc(func() error { return snap.Save(store) }),
			cfg.Snapshot.Interval,
			logging.Logger(),
		))
	}
	ready.Store(true)

	papers, authors, edges := store.Stats()
	metrics.UpdateGraphGauges(papers, authors, edges, store.PendingEdges())
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	router := api.NewRouter(store, scorer, trav, engine,
		api.MiddlewareConfig{
			AllowedOrigins:    cfg.API.CORSOrigins,
			RateLimitDisabled: cfg.API.RateLimitDisabled,
		},
		logging.Logger(),
		api.WithVersion(version),
		api.WithReadyCheck(ready.Load),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("listening")
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
