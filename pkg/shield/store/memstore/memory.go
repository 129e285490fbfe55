// Package memstore is an in-memory store.Store implementation for tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
	"github.com/shieldsna/shield/pkg/shield/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu          sync.RWMutex
	runs        map[string]store.Run
	models      map[string][]byte
	keywords    map[string][]string
	centrality  map[string][]store.CentralityRow
	trend       map[string][]store.TrendRow
	correlation map[string][]store.CorrelationRow
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:        make(map[string]store.Run),
		models:      make(map[string][]byte),
		keywords:    make(map[string][]string),
		centrality:  make(map[string][]store.CentralityRow),
		trend:       make(map[string][]store.TrendRow),
		correlation: make(map[string][]store.CorrelationRow),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, internalerr.ErrNotFound
	}
	return r, nil
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *Store) SaveModel(ctx context.Context, runID string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.models[runID] = cp
	return nil
}

func (s *Store) GetModel(ctx context.Context, runID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.models[runID]
	if !ok {
		return nil, internalerr.ErrMissingArtifact
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, nil
}

func (s *Store) SaveKeywords(ctx context.Context, runID string, keywords []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords[runID] = append([]string(nil), keywords...)
	return nil
}

func (s *Store) GetKeywords(ctx context.Context, runID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.keywords[runID]...), nil
}

func (s *Store) SaveCentrality(ctx context.Context, runID string, rows []store.CentralityRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centrality[runID] = append([]store.CentralityRow(nil), rows...)
	return nil
}

func (s *Store) GetCentrality(ctx context.Context, runID string) ([]store.CentralityRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := append([]store.CentralityRow(nil), s.centrality[runID]...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].User < rows[j].User })
	return rows, nil
}

func (s *Store) SaveTrend(ctx context.Context, runID string, rows []store.TrendRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trend[runID] = append([]store.TrendRow(nil), rows...)
	return nil
}

func (s *Store) GetTrend(ctx context.Context, runID string) ([]store.TrendRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := append([]store.TrendRow(nil), s.trend[runID]...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Subreddit == rows[j].Subreddit {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Subreddit < rows[j].Subreddit
	})
	return rows, nil
}

func (s *Store) SaveCorrelation(ctx context.Context, runID string, rows []store.CorrelationRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.correlation[runID] = append([]store.CorrelationRow(nil), rows...)
	return nil
}

func (s *Store) GetCorrelation(ctx context.Context, runID string) ([]store.CorrelationRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := append([]store.CorrelationRow(nil), s.correlation[runID]...)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EventTime.Before(rows[j].EventTime)
	})
	return rows, nil
}
