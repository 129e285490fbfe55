package temporal

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"
)

// WriteCorrelationCSV writes one row per correlation record:
// event_id, event_time, total_posts, hoax_posts.
func WriteCorrelationCSV(w io.Writer, records []CorrelationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"event_id", "event_time", "total_posts", "hoax_posts"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.EventID,
			rec.EventTime.UTC().Format(time.RFC3339),
			strconv.Itoa(rec.TotalPosts),
			strconv.Itoa(rec.HoaxPosts),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrendCSV writes one row per bucket: subreddit, month, hoax_posts,
// sorted by subreddit then month.
func WriteTrendCSV(w io.Writer, buckets map[Bucket]int) error {
	keys := make([]Bucket, 0, len(buckets))
	for b := range buckets {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Subreddit == keys[j].Subreddit {
			return keys[i].Month < keys[j].Month
		}
		return keys[i].Subreddit < keys[j].Subreddit
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"subreddit", "month", "hoax_posts"}); err != nil {
		return err
	}
	for _, b := range keys {
		if err := cw.Write([]string{b.Subreddit, b.Month, strconv.Itoa(buckets[b])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
