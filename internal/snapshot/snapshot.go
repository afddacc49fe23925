// PaperLens - Citation Graph Analytics and Recommendation Engine
// Copyright 2026 PaperLens Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/paperlens/paperlens

// Package snapshot persists the in-memory citation graph to BadgerDB so a
// restart does not wait for a full re-ingestion. Papers, authors, and
// citation edges are stored as individual keyed records; parked
// forward-reference edges round-trip through the same edge records and
// re-park themselves on load.
package snapshot

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/paperlens/paperlens/internal/graph"
	"github.com/paperlens/paperlens/internal/metrics"
)

// Key prefixes for BadgerDB storage.
const (
	paperKeyPrefix  = "paper:"
	authorKeyPrefix = "author:"
	edgeKeyPrefix   = "edge:"
)

// Store persists graph snapshots in a BadgerDB database.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Options configures the snapshot store.
type Options struct {
	// Path is the Badger database directory. Ignored when InMemory is set.
	Path string

	// InMemory backs the store with memory only, for tests.
	InMemory bool
}

// Open opens or creates the snapshot database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(opts Options, logger zerolog.Logger) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path).
		WithInMemory(opts.InMemory).
		WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "snapshot").Logger(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the full graph state, replacing any previous snapshot.
func (s *Store) Save(g *graph.Store) error {
	start := time.Now()
	err := s.save(g)
	metrics.RecordSnapshot("save", time.Since(start), err)
	if err != nil {
		return err
	}

	papers, authors, edges := g.Stats()
	s.logger.Info().
		Int("papers", papers).
		Int("authors", authors).
		Int("edges", edges).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot saved")
	return nil
}

func (s *Store) save(g *graph.Store) error {
	for _, prefix := range []string{paperKeyPrefix, authorKeyPrefix, edgeKeyPrefix} {
		if err := s.db.DropPrefix([]byte(prefix)); err != nil {
			return fmt.Errorf("clearing %s records: %w", prefix, err)
		}
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, id := range g.PaperIDs() {
		p, err := g.GetPaper(id)
		if err != nil {
			// Papers can vanish between listing and reading; skip.
			continue
		}
		if err := setJSON(wb, paperKeyPrefix+id, p); err != nil {
			return err
		}
	}

	for _, id := range g.AuthorIDs() {
		a, err := g.GetAuthor(id)
		if err != nil {
			continue
		}
		if err := setJSON(wb, authorKeyPrefix+id, a); err != nil {
			return err
		}
	}

	for _, e := range g.CitationEdges() {
		if err := setJSON(wb, edgeKeyPrefix+e.From+"|"+e.To, e); err != nil {
			return err
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flushing snapshot batch: %w", err)
	}
	return nil
}

func setJSON(wb *badger.WriteBatch, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := wb.Set([]byte(key), data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Load restores the snapshot into the graph store. Papers load before
// edges so most edges resolve immediately; edges whose endpoints were
// pending at save time park again.
func (s *Store) Load(g *graph.Store) error {
	start := time.Now()
	papers, authors, edges, err := s.load(g)
	metrics.RecordSnapshot("load", time.Since(start), err)
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("papers", papers).
		Int("authors", authors).
		Int("edges", edges).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot restored")
	return nil
}

func (s *Store) load(g *graph.Store) (papers, authors, edges int, err error) {
	err = s.iterate(paperKeyPrefix, func(val []byte) error {
		var p graph.Paper
		if err := json.Unmarshal(val, &p); err != nil {
			return fmt.Errorf("unmarshal paper: %w", err)
		}
		if err := g.UpsertPaper(&p); err != nil {
			return fmt.Errorf("restoring paper %s: %w", p.ID, err)
		}
		papers++
		return nil
	})
	if err != nil {
		return papers, authors, edges, err
	}

	err = s.iterate(authorKeyPrefix, func(val []byte) error {
		var a graph.Author
		if err := json.Unmarshal(val, &a); err != nil {
			return fmt.Errorf("unmarshal author: %w", err)
		}
		if err := g.UpsertAuthor(&a); err != nil {
			return fmt.Errorf("restoring author %s: %w", a.ID, err)
		}
		authors++
		return nil
	})
	if err != nil {
		return papers, authors, edges, err
	}

	err = s.iterate(edgeKeyPrefix, func(val []byte) error {
		var e graph.CitationEdge
		if err := json.Unmarshal(val, &e); err != nil {
			return fmt.Errorf("unmarshal edge: %w", err)
		}
		if err := g.AddCitationEdge(e.From, e.To); err != nil {
			return fmt.Errorf("restoring edge %s -> %s: %w", e.From, e.To, err)
		}
		edges++
		return nil
	})
	return papers, authors, edges, err
}

func (s *Store) iterate(prefix string, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				key := string(it.Item().Key())
				return fmt.Errorf("reading %s: %w", strings.TrimPrefix(key, prefix), err)
			}
		}
		return nil
	})
}
