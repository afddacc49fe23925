// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Saver persists one snapshot of the current graph state.
type Saver interface {
	Save() error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func() error

// Save calls the function.
func (f SaverFunc) Save() error { return f() }

// SnapshotService saves the graph on a fixed interval and once more on
// shutdown, so at most one interval of ingestion is lost on a crash.
type SnapshotService struct {
	saver    Saver
	interval time.Duration
	logger   zerolog.Logger
}

// NewSnapshotService creates the periodic snapshot service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotService(saver Saver, interval time.Duration, logger zerolog.Logger) *SnapshotService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SnapshotService{
		saver:    saver,
		interval: interval,
		logger:   logger.With().Str("component", "snapshot-service").Logger(),
	}
}

// Serve implements suture.Service. A failed periodic save is logged and
// retried on the next tick rather than crashing the service.
func (s *SnapshotService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.saver.Save(); err != nil {
				s.logger.Error().Err(err).Msg("periodic snapshot failed")
			}

		case <-ctx.Done():
			if err := s.saver.Save(); err != nil {
				s.logger.Error().Err(err).Msg("final snapshot failed")
				return err
			}
			return nil
		}
	}
}

func (s *SnapshotService) String() string { return "snapshot-saver" }
