// Command shield-classify scores posts against a previously trained model.
// It loads the classifier artifact written by shield-train, predicts a label
// and decision value per post, and attaches sentiment and threat signals.
// When the model artifact is missing the command degrades to sentiment-only
// output instead of failing.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"

	"github.com/shieldsna/shield/internal/dataset"
	"github.com/shieldsna/shield/pkg/shield/classify"
	"github.com/shieldsna/shield/pkg/shield/internalerr"
	"github.com/shieldsna/shield/pkg/shield/keywords"
	"github.com/shieldsna/shield/pkg/shield/logging"
	"github.com/shieldsna/shield/pkg/shield/post"
	"github.com/shieldsna/shield/pkg/shield/sentiment"
)

// row is the per-post output of a classification pass. Label is -1 when no
// model was available for the run.
type row struct {
	PostID    string                `json:"post_id"`
	Label     int                   `json:"label"`
	Decision  float64               `json:"decision"`
	Sentiment sentiment.Result      `json:"sentiment"`
	Level     sentiment.ThreatLevel `json:"threat_level"`
	Threat    bool                  `json:"threat_keyword"`
}

// classifyPosts scores every post. clf may be nil; labels then degrade to -1
// with a zero decision value while sentiment and keyword flags still apply.
func classifyPosts(posts []post.Post, clf *classify.Classifier, set keywords.Set, scorer *sentiment.Scorer) []row {
	rows := make([]row, 0, len(posts))
	for _, pt := range posts {
		text := pt.Text()
		r := row{PostID: pt.ID, Label: -1}
		if clf != nil {
			r.Label = clf.Predict(text)
			r.Decision = clf.Decision(text)
		}
		score := scorer.Score(text)
		r.Sentiment = score
		r.Level = sentiment.Grade(score.Raw)
		r.Threat = sentiment.FlagThreat(text, set)
		rows = append(rows, r)
	}
	return rows
}

func main() {
	var (
		input       = flag.String("input", "", "Path to dataset CSV (required)")
		modelPath   = flag.String("model", "hoax_model.json", "Path to the trained model artifact")
		keywordPath = flag.String("keywords", "top_hoax_keywords.txt", "Path to the threat keyword list")
	)
	flag.Parse()

	log := logging.New()

	if *input == "" {
		log.Fatal("--input required")
	}

	res, err := dataset.LoadCSV(*input)
	if err != nil {
		log.WithError(err).Fatal("load dataset")
	}
	if res.Excluded > 0 {
		log.WithField("rows", res.Excluded).Warn("excluded malformed rows")
	}

	clf, err := classify.Load(*modelPath)
	if err != nil {
		if !errors.Is(err, internalerr.ErrMissingArtifact) {
			log.WithError(err).Fatal("load model")
		}
		log.WithField("path", *modelPath).Warn("model unavailable, labels degrade to -1")
	}

	set, err := keywords.Load(*keywordPath)
	if err != nil {
		log.WithError(err).Fatal("load keywords")
	}

	scorer := sentiment.NewScorer(sentiment.DefaultLexicon())
	rows := classifyPosts(res.Posts, clf, set, scorer)

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("marshal rows")
	}
	fmt.Println(string(out))
}
