// Package store defines persistence for analysis runs and their artifacts.
package store

import (
	"context"
	"time"
)

// Store persists analysis runs: summary rows, serialized classifier blobs,
// threat keyword sets, and the tabular outputs of the network and temporal
// stages.
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Classifier artifacts
	SaveModel(ctx context.Context, runID string, blob []byte) error
	GetModel(ctx context.Context, runID string) ([]byte, error)
	SaveKeywords(ctx context.Context, runID string, keywords []string) error
	GetKeywords(ctx context.Context, runID string) ([]string, error)

	// Network outputs
	SaveCentrality(ctx context.Context, runID string, rows []CentralityRow) error
	GetCentrality(ctx context.Context, runID string) ([]CentralityRow, error)

	// Temporal outputs
	SaveTrend(ctx context.Context, runID string, rows []TrendRow) error
	GetTrend(ctx context.Context, runID string) ([]TrendRow, error)
	SaveCorrelation(ctx context.Context, runID string, rows []CorrelationRow) error
	GetCorrelation(ctx context.Context, runID string) ([]CorrelationRow, error)
}

// Run is the summary record of one pipeline execution.
type Run struct {
	ID          string
	CreatedAt   time.Time
	Posts       int
	Excluded    int
	Accuracy    float64
	Communities int
}

// CentralityRow is one node's network-analysis output.
type CentralityRow struct {
	User        string
	Degree      float64
	Betweenness float64
	Community   int
}

// TrendRow is one (subreddit, month) hoax-volume bucket.
type TrendRow struct {
	Subreddit string
	Month     string
	HoaxPosts int
}

// CorrelationRow counts posts around one external event.
type CorrelationRow struct {
	EventID    string
	EventTime  time.Time
	TotalPosts int
	HoaxPosts  int
}
