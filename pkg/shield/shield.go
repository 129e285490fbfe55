// Package shield wires the hoax-analysis stages into one batch pipeline:
// content classification, threat keyword extraction, sentiment scoring,
// interaction-network analysis, and temporal correlation.
package shield

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shieldsna/shield/pkg/shield/classify"
	"github.com/shieldsna/shield/pkg/shield/config"
	"github.com/shieldsna/shield/pkg/shield/graph"
	"github.com/shieldsna/shield/pkg/shield/keywords"
	"github.com/shieldsna/shield/pkg/shield/post"
	"github.com/shieldsna/shield/pkg/shield/report"
	"github.com/shieldsna/shield/pkg/shield/sentiment"
	"github.com/shieldsna/shield/pkg/shield/store"
	"github.com/shieldsna/shield/pkg/shield/temporal"
)

// Pipeline runs the full analysis over one post batch. The classifier model
// is an explicitly passed handle on the Result, never ambient process state.
type Pipeline struct {
	cfg     config.Analysis
	store   store.Store
	lexicon sentiment.Lexicon
	builder *report.Builder
}

// Options configures a Pipeline.
type Options struct {
	Config  config.Analysis
	Store   store.Store       // optional: persists runs when set
	Lexicon sentiment.Lexicon // optional: defaults to the built-in lexicon
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	return &Pipeline{
		cfg:     opts.Config,
		store:   opts.Store,
		lexicon: opts.Lexicon,
		builder: report.New(),
	}
}

// Close releases the underlying store, if any.
func (p *Pipeline) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// SentimentRow is the per-post sentiment outcome.
type SentimentRow struct {
	PostID string                `json:"post_id"`
	Score  sentiment.Result      `json:"score"`
	Level  sentiment.ThreatLevel `json:"threat_level"`
	Threat bool                  `json:"threat"`
}

// Result carries every stage's output for one run.
type Result struct {
	Report     *report.Report
	Classifier *classify.Classifier // nil when training failed
	TrainErr   error                // classification-stage failure, other stages unaffected
	Keywords   keywords.Set
	Sentiments []SentimentRow
	Graph      *graph.Graph
	Partition  graph.Partition
	Centrality graph.Scores
	Stages     []*graph.Graph
	Trend      map[temporal.Bucket]int
}

// Run executes the batch pipeline. The keyword set is fully derived before
// sentiment scoring begins; the network and temporal stages are independent
// of both. excluded is the loader's malformed-row count, carried into the
// report. A training failure (too few labels, empty vocabulary) is recorded
// on the Result and does not abort the remaining stages.
func (p *Pipeline) Run(ctx context.Context, posts []post.Post, events []temporal.Event, excluded int) (*Result, error) {
	rep := p.builder.NewReport(time.Now())
	rep.Posts = len(posts)
	rep.Excluded = excluded

	res := &Result{Report: rep}

	// Content classification + keyword extraction.
	var corpus []classify.Document
	for _, pt := range posts {
		if pt.HasLabel {
			corpus = append(corpus, classify.Document{Text: pt.Text(), Label: pt.Label})
		}
	}
	clf, heldOut, err := classify.Fit(corpus, classify.Options{
		Seed:         p.cfg.Seed,
		HoldoutRatio: p.cfg.HoldoutRatio,
		MaxFeatures:  p.cfg.MaxFeatures,
		MinDocFreq:   p.cfg.MinDocFreq,
	})
	if err != nil {
		res.TrainErr = err
	} else {
		res.Classifier = clf
		rep.Evaluation = clf.Evaluate(heldOut)
		rep.TopHoax, rep.TopReal = clf.TopTerms(p.cfg.TopKeywords)
		res.Keywords = keywords.Extract(clf, p.cfg.TopKeywords)
		rep.Keywords = res.Keywords
	}

	// Sentiment scoring; threat flags need the finished keyword set.
	scorer := sentiment.NewScorer(p.lexicon)
	res.Sentiments = make([]SentimentRow, 0, len(posts))
	for _, pt := range posts {
		score := scorer.Score(pt.Text())
		row := SentimentRow{
			PostID: pt.ID,
			Score:  score,
			Level:  sentiment.Grade(score.Raw),
			Threat: sentiment.FlagThreat(pt.Text(), res.Keywords),
		}
		if row.Threat {
			rep.ThreatHits++
		}
		res.Sentiments = append(res.Sentiments, row)
	}

	// Interaction network.
	res.Graph = graph.Build(posts)
	res.Partition = graph.Louvain(res.Graph, p.cfg.Seed)
	res.Centrality = graph.Centrality(res.Graph)
	if p.cfg.Stages > 0 {
		res.Stages = graph.Stage(posts, p.cfg.Stages)
	}
	rep.Nodes = res.Graph.NumNodes()
	rep.Edges = res.Graph.NumEdges()
	rep.Communities = res.Partition.NumCommunities()
	rep.CommunitySizes = communitySizes(res.Partition)
	rep.TopCentral = topCentral(res.Graph, res.Partition, res.Centrality, 5)

	// Temporal aggregation.
	res.Trend = temporal.Trend(posts, p.cfg.TopSubs)
	rep.Trend = trendRows(res.Trend)
	rep.Correlation = temporal.Correlate(posts, events, p.cfg.WindowDays)

	if p.store != nil {
		if err := p.persist(ctx, res); err != nil {
			return res, fmt.Errorf("persist run %s: %w", rep.RunID, err)
		}
	}
	return res, nil
}

func (p *Pipeline) persist(ctx context.Context, res *Result) error {
	rep := res.Report
	if err := p.store.SaveRun(ctx, rep.Run()); err != nil {
		return err
	}
	if res.Classifier != nil {
		blob, err := res.Classifier.Marshal()
		if err != nil {
			return err
		}
		if err := p.store.SaveModel(ctx, rep.RunID, blob); err != nil {
			return err
		}
		if err := p.store.SaveKeywords(ctx, rep.RunID, res.Keywords); err != nil {
			return err
		}
	}
	if err := p.store.SaveCentrality(ctx, rep.RunID, centralityRows(res.Graph, res.Partition, res.Centrality)); err != nil {
		return err
	}
	if err := p.store.SaveTrend(ctx, rep.RunID, rep.Trend); err != nil {
		return err
	}
	return p.store.SaveCorrelation(ctx, rep.RunID, correlationRows(rep.Correlation))
}

func centralityRows(g *graph.Graph, part graph.Partition, scores graph.Scores) []store.CentralityRow {
	rows := make([]store.CentralityRow, 0, g.NumNodes())
	for _, name := range g.Nodes() {
		s := scores[name]
		rows = append(rows, store.CentralityRow{
			User:        name,
			Degree:      s.Degree,
			Betweenness: s.Betweenness,
			Community:   part[name],
		})
	}
	return rows
}

func topCentral(g *graph.Graph, part graph.Partition, scores graph.Scores, n int) []store.CentralityRow {
	rows := centralityRows(g, part, scores)
	// Highest degree first, user name as tie-break.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Degree == rows[j].Degree {
			return rows[i].User < rows[j].User
		}
		return rows[i].Degree > rows[j].Degree
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func communitySizes(part graph.Partition) []report.CommunitySize {
	sizes := part.CommunitySizes()
	out := make([]report.CommunitySize, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, report.CommunitySize{Community: s[0], Members: s[1]})
	}
	return out
}

func trendRows(buckets map[temporal.Bucket]int) []store.TrendRow {
	rows := make([]store.TrendRow, 0, len(buckets))
	for b, count := range buckets {
		rows = append(rows, store.TrendRow{Subreddit: b.Subreddit, Month: b.Month, HoaxPosts: count})
	}
	// Stable output order for reports and persistence.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Subreddit == rows[j].Subreddit {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Subreddit < rows[j].Subreddit
	})
	return rows
}

func correlationRows(records []temporal.CorrelationRecord) []store.CorrelationRow {
	rows := make([]store.CorrelationRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, store.CorrelationRow{
			EventID:    rec.EventID,
			EventTime:  rec.EventTime,
			TotalPosts: rec.TotalPosts,
			HoaxPosts:  rec.HoaxPosts,
		})
	}
	return rows
}
