// Package config loads analysis options and external event lists from YAML
// files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
	"github.com/shieldsna/shield/pkg/shield/temporal"
)

// Analysis holds the tunable knobs of one pipeline run. Zero values fall
// back to the documented defaults at the point of use.
type Analysis struct {
	Seed         int64   `yaml:"seed"`
	HoldoutRatio float64 `yaml:"holdout_ratio"`
	MaxFeatures  int     `yaml:"max_features"`
	MinDocFreq   int     `yaml:"min_doc_freq"`
	TopKeywords  int     `yaml:"top_keywords"`
	TopSubs      int     `yaml:"top_subreddits"`
	WindowDays   int     `yaml:"window_days"`
	Stages       int     `yaml:"stages"`
}

// DefaultAnalysis returns the default run configuration.
func DefaultAnalysis() Analysis {
	return Analysis{
		Seed:         42,
		HoldoutRatio: 0.1,
		MaxFeatures:  5000,
		MinDocFreq:   2,
		TopKeywords:  20,
		TopSubs:      5,
		WindowDays:   1,
		Stages:       4,
	}
}

// LoadAnalysis reads an Analysis config from a YAML file, filling omitted
// fields from the defaults.
func LoadAnalysis(path string) (Analysis, error) {
	cfg := DefaultAnalysis()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.HoldoutRatio < 0 || cfg.HoldoutRatio >= 1 {
		return cfg, fmt.Errorf("holdout_ratio %v: %w", cfg.HoldoutRatio, internalerr.ErrInvalidConfig)
	}
	if cfg.WindowDays < 0 || cfg.Stages < 0 {
		return cfg, fmt.Errorf("negative window/stages: %w", internalerr.ErrInvalidConfig)
	}
	return cfg, nil
}

// eventFile is the YAML shape of an external event list.
type eventFile struct {
	Events []eventEntry `yaml:"events"`
}

type eventEntry struct {
	ID   string `yaml:"id"`
	Time string `yaml:"time"` // RFC 3339 or "2006-01-02 15:04:05" (UTC)
}

// LoadEvents reads an external event list from a YAML file. Entries without
// an id get a generated UUID so downstream records stay addressable.
func LoadEvents(path string) ([]temporal.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	var ef eventFile
	if err := yaml.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}

	events := make([]temporal.Event, 0, len(ef.Events))
	for i, entry := range ef.Events {
		ts, err := parseEventTime(entry.Time)
		if err != nil {
			return nil, fmt.Errorf("event %d time %q: %w", i, entry.Time, err)
		}
		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}
		events = append(events, temporal.Event{ID: id, Time: ts})
	}
	return events, nil
}

func parseEventTime(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return ts, nil
}
