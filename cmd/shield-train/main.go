package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/shieldsna/shield/internal/dataset"
	"github.com/shieldsna/shield/pkg/shield/classify"
	"github.com/shieldsna/shield/pkg/shield/config"
	"github.com/shieldsna/shield/pkg/shield/keywords"
	"github.com/shieldsna/shield/pkg/shield/logging"
)

func main() {
	var (
		input       = flag.String("input", "", "Path to labeled dataset CSV (required)")
		configPath  = flag.String("config", "", "Optional analysis config YAML")
		modelPath   = flag.String("model", "hoax_model.json", "Output path for the trained model")
		keywordPath = flag.String("keywords", "top_hoax_keywords.txt", "Output path for the threat keyword list")
		topN        = flag.Int("top", 20, "Top terms per class to report")
	)
	flag.Parse()

	log := logging.New()

	if *input == "" {
		log.Fatal("--input required")
	}

	cfg := config.DefaultAnalysis()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAnalysis(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load config")
		}
	}

	res, err := dataset.LoadCSV(*input)
	if err != nil {
		log.WithError(err).Fatal("load dataset")
	}
	if res.Excluded > 0 {
		log.WithField("rows", res.Excluded).Warn("excluded malformed rows")
	}

	var corpus []classify.Document
	for _, p := range res.Posts {
		if p.HasLabel {
			corpus = append(corpus, classify.Document{Text: p.Text(), Label: p.Label})
		}
	}
	log.WithFields(logging.Fields{
		"posts":   len(res.Posts),
		"labeled": len(corpus),
	}).Info("training classifier")

	clf, heldOut, err := classify.Fit(corpus, classify.Options{
		Seed:         cfg.Seed,
		HoldoutRatio: cfg.HoldoutRatio,
		MaxFeatures:  cfg.MaxFeatures,
		MinDocFreq:   cfg.MinDocFreq,
	})
	if err != nil {
		log.WithError(err).Fatal("train")
	}

	eval := clf.Evaluate(heldOut)
	hoax, real := clf.TopTerms(*topN)

	if err := clf.Save(*modelPath); err != nil {
		log.WithError(err).Fatal("save model")
	}
	set := keywords.Extract(clf, *topN)
	if err := set.Save(*keywordPath); err != nil {
		log.WithError(err).Fatal("save keywords")
	}
	log.WithFields(logging.Fields{
		"model":    *modelPath,
		"keywords": *keywordPath,
		"accuracy": eval.Accuracy,
	}).Info("artifacts written")

	out, err := json.MarshalIndent(struct {
		Evaluation classify.Evaluation     `json:"evaluation"`
		TopHoax    []classify.WeightedTerm `json:"top_hoax_terms"`
		TopReal    []classify.WeightedTerm `json:"top_real_terms"`
	}{eval, hoax, real}, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("marshal report")
	}
	fmt.Println(string(out))
}
