package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shieldsna/shield/internal/dataset"
	"github.com/shieldsna/shield/pkg/shield"
	"github.com/shieldsna/shield/pkg/shield/config"
	"github.com/shieldsna/shield/pkg/shield/graph"
	"github.com/shieldsna/shield/pkg/shield/logging"
	"github.com/shieldsna/shield/pkg/shield/store"
	"github.com/shieldsna/shield/pkg/shield/store/sqlite"
	"github.com/shieldsna/shield/pkg/shield/temporal"
)

func main() {
	var (
		input      = flag.String("input", "", "Path to dataset CSV (required)")
		configPath = flag.String("config", "", "Optional analysis config YAML")
		eventPath  = flag.String("events", "", "Optional external event list YAML")
		dbPath     = flag.String("db", "", "Optional SQLite database to persist the run")
		outDir     = flag.String("out", "", "Optional directory for CSV/GML exports")
	)
	flag.Parse()

	log := logging.New()

	if *input == "" {
		log.Fatal("--input required")
	}

	ctx := context.Background()

	cfg := config.DefaultAnalysis()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAnalysis(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load config")
		}
	}

	var events []temporal.Event
	if *eventPath != "" {
		var err error
		events, err = config.LoadEvents(*eventPath)
		if err != nil {
			log.WithError(err).Fatal("load events")
		}
	}

	var st store.Store
	if *dbPath != "" {
		var err error
		st, err = sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.WithError(err).Fatal("open store")
		}
	}

	data, err := dataset.LoadCSV(*input)
	if err != nil {
		log.WithError(err).Fatal("load dataset")
	}
	if data.Excluded > 0 {
		log.WithField("rows", data.Excluded).Warn("excluded malformed rows")
	}

	pipeline := shield.New(shield.Options{Config: cfg, Store: st})
	defer pipeline.Close()

	res, err := pipeline.Run(ctx, data.Posts, events, data.Excluded)
	if err != nil {
		log.WithError(err).Fatal("run pipeline")
	}
	if res.TrainErr != nil {
		log.WithError(res.TrainErr).Warn("classification unavailable")
	}
	log.WithFields(logging.Fields{
		"run":         res.Report.RunID,
		"nodes":       res.Report.Nodes,
		"edges":       res.Report.Edges,
		"communities": res.Report.Communities,
	}).Info("analysis complete")

	if *outDir != "" {
		if err := writeExports(*outDir, res); err != nil {
			log.WithError(err).Fatal("write exports")
		}
	}

	out, err := json.MarshalIndent(res.Report, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("marshal report")
	}
	fmt.Println(string(out))
}

func writeExports(dir string, res *shield.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	exports := []struct {
		name  string
		write func(*os.File) error
	}{
		{"network.gml", func(f *os.File) error {
			return graph.WriteGML(f, res.Graph, res.Partition, res.Centrality)
		}},
		{"centrality_scores.csv", func(f *os.File) error {
			return graph.WriteCentralityCSV(f, res.Graph, res.Partition, res.Centrality)
		}},
		{"communities.csv", func(f *os.File) error {
			return graph.WriteCommunityCSV(f, res.Graph, res.Partition)
		}},
		{"hoax_trends.csv", func(f *os.File) error {
			return temporal.WriteTrendCSV(f, res.Trend)
		}},
		{"event_correlation.csv", func(f *os.File) error {
			return temporal.WriteCorrelationCSV(f, res.Report.Correlation)
		}},
	}
	for _, ex := range exports {
		f, err := os.Create(filepath.Join(dir, ex.name))
		if err != nil {
			return err
		}
		if err := ex.write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if len(res.Keywords) > 0 {
		if err := res.Keywords.Save(filepath.Join(dir, "top_hoax_keywords.txt")); err != nil {
			return err
		}
	}
	return nil
}
