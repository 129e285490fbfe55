// Package temporal aggregates hoax-post volume over time and correlates it
// with external event timelines.
package temporal

import (
	"sort"
	"time"

	"github.com/shieldsna/shield/pkg/shield/post"
)

// Bucket is an aggregation key for hoax-post counts.
type Bucket struct {
	Subreddit string
	Month     string // UTC calendar month, "YYYY-MM"
}

// Trend counts hoax-labeled posts per (subreddit, month) for the topN
// subreddits by total hoax-post count. Subreddits outside the top N are
// excluded entirely, not zero-filled. Ties on total count break
// alphabetically for reproducibility.
func Trend(posts []post.Post, topN int) map[Bucket]int {
	counts := make(map[string]int)
	for _, p := range posts {
		if p.IsHoax() && p.Subreddit != "" {
			counts[p.Subreddit]++
		}
	}

	type subCount struct {
		name  string
		count int
	}
	ranked := make([]subCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, subCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count == ranked[j].count {
			return ranked[i].name < ranked[j].name
		}
		return ranked[i].count > ranked[j].count
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	selected := make(map[string]struct{}, len(ranked))
	for _, sc := range ranked {
		selected[sc.name] = struct{}{}
	}

	buckets := make(map[Bucket]int)
	for _, p := range posts {
		if !p.IsHoax() {
			continue
		}
		if _, ok := selected[p.Subreddit]; !ok {
			continue
		}
		buckets[Bucket{Subreddit: p.Subreddit, Month: p.Month()}]++
	}
	return buckets
}

// Event is an external real-world event to correlate post volume against.
type Event struct {
	ID   string
	Time time.Time
}

// CorrelationRecord counts posts whose timestamp falls within the window
// around one event.
type CorrelationRecord struct {
	EventID    string    `json:"event_id"`
	EventTime  time.Time `json:"event_time"`
	TotalPosts int       `json:"total_posts"`
	HoaxPosts  int       `json:"hoax_posts"`
}

// Correlate counts, for each event, the posts whose timestamp lies within
// [event-window, event+window] inclusive, plus the hoax-labeled subset.
// Events with no matching posts still produce a zero-count record. Records
// come back in input event order.
func Correlate(posts []post.Post, events []Event, windowDays int) []CorrelationRecord {
	window := time.Duration(windowDays) * 24 * time.Hour

	records := make([]CorrelationRecord, 0, len(events))
	for _, ev := range events {
		rec := CorrelationRecord{EventID: ev.ID, EventTime: ev.Time}
		for _, p := range posts {
			delta := p.Created().Sub(ev.Time)
			if delta < 0 {
				delta = -delta
			}
			if delta > window {
				continue
			}
			rec.TotalPosts++
			if p.IsHoax() {
				rec.HoaxPosts++
			}
		}
		records = append(records, rec)
	}
	return records
}
