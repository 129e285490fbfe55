// Package report assembles the summary record of one analysis run.
package report

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/shieldsna/shield/pkg/shield/classify"
	"github.com/shieldsna/shield/pkg/shield/store"
	"github.com/shieldsna/shield/pkg/shield/temporal"
)

// Builder mints run ids and assembles reports.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a report builder.
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// CommunitySize is one community's member count, for the report's
// largest-first community breakdown.
type CommunitySize struct {
	Community int `json:"community"`
	Members   int `json:"members"`
}

// Report is the run summary handed to the CLI and the store.
type Report struct {
	RunID          string                       `json:"run_id"`
	CreatedAt      time.Time                    `json:"created_at"`
	Posts          int                          `json:"posts"`
	Excluded       int                          `json:"excluded_rows"`
	Evaluation     classify.Evaluation          `json:"evaluation"`
	TopHoax        []classify.WeightedTerm      `json:"top_hoax_terms"`
	TopReal        []classify.WeightedTerm      `json:"top_real_terms"`
	Keywords       []string                     `json:"threat_keywords"`
	Nodes          int                          `json:"graph_nodes"`
	Edges          int                          `json:"graph_edges"`
	Communities    int                          `json:"communities"`
	CommunitySizes []CommunitySize              `json:"community_sizes"`
	TopCentral     []store.CentralityRow        `json:"top_central_users"`
	Trend          []store.TrendRow             `json:"trend"`
	Correlation    []temporal.CorrelationRecord `json:"correlation"`
	ThreatHits     int                          `json:"threat_flagged_posts"`
}

// NewReport starts a report with a fresh ULID and timestamp.
func (b *Builder) NewReport(now time.Time) *Report {
	return &Report{
		RunID:     ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		CreatedAt: now.UTC(),
	}
}

// Run converts the report into its store summary row.
func (r *Report) Run() store.Run {
	return store.Run{
		ID:          r.RunID,
		CreatedAt:   r.CreatedAt,
		Posts:       r.Posts,
		Excluded:    r.Excluded,
		Accuracy:    r.Evaluation.Accuracy,
		Communities: r.Communities,
	}
}
