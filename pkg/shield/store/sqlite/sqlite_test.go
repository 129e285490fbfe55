package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
	"github.com/shieldsna/shield/pkg/shield/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "shield.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func saveRun(t *testing.T, s store.Store, id string, at time.Time) {
	t.Helper()
	err := s.SaveRun(context.Background(), store.Run{
		ID:        id,
		CreatedAt: at,
		Posts:     100,
		Excluded:  2,
		Accuracy:  0.9,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	at := time.Date(2023, 5, 1, 10, 30, 0, 0, time.UTC)
	saveRun(t, s, "run-1", at)

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "run-1" || got.Posts != 100 || got.Excluded != 2 || got.Accuracy != 0.9 {
		t.Errorf("run = %+v", got)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, at)
	}
}

func TestSaveRunUpserts(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	at := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	saveRun(t, s, "run-1", at)

	if err := s.SaveRun(ctx, store.Run{ID: "run-1", CreatedAt: at, Posts: 500, Communities: 7}); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Posts != 500 || got.Communities != 7 {
		t.Errorf("run after upsert = %+v", got)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	saveRun(t, s, "old", base)
	saveRun(t, s, "new", base.Add(2*time.Hour))
	saveRun(t, s, "mid", base.Add(time.Hour))

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Errorf("runs = %+v, want [new mid]", runs)
	}
}

func TestModelRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	saveRun(t, s, "run-1", time.Now())

	if err := s.SaveModel(ctx, "run-1", []byte("model blob")); err != nil {
		t.Fatal(err)
	}
	blob, err := s.GetModel(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != "model blob" {
		t.Errorf("blob = %q", blob)
	}

	if _, err := s.GetModel(ctx, "other"); !errors.Is(err, internalerr.ErrMissingArtifact) {
		t.Errorf("err = %v, want ErrMissingArtifact", err)
	}
}

func TestKeywordsKeepPositionOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	saveRun(t, s, "run-1", time.Now())

	want := []string{"zulu", "alpha", "mike"} // deliberately unsorted
	if err := s.SaveKeywords(ctx, "run-1", want); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetKeywords(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d keywords, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q (extraction order, not alphabetical)", i, got[i], want[i])
		}
	}
}

func TestSaveKeywordsReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	saveRun(t, s, "run-1", time.Now())

	if err := s.SaveKeywords(ctx, "run-1", []string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveKeywords(ctx, "run-1", []string{"x"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetKeywords(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("keywords = %v, want [x]", got)
	}
}

func TestCentralityRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	saveRun(t, s, "run-1", time.Now())

	rows := []store.CentralityRow{
		{User: "zed", Degree: 0.5, Betweenness: 0.25, Community: 2},
		{User: "amy", Degree: 1.0, Betweenness: 0, Community: 0},
	}
	if err := s.SaveCentrality(ctx, "run-1", rows); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetCentrality(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].User != "amy" || got[1].User != "zed" {
		t.Fatalf("rows = %+v, want sorted by user", got)
	}
	if got[1].Degree != 0.5 || got[1].Betweenness != 0.25 || got[1].Community != 2 {
		t.Errorf("zed = %+v", got[1])
	}
}

func TestTrendAndCorrelationRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	saveRun(t, s, "run-1", time.Now())

	trend := []store.TrendRow{
		{Subreddit: "news", Month: "2023-02", HoaxPosts: 2},
		{Subreddit: "news", Month: "2023-01", HoaxPosts: 5},
	}
	if err := s.SaveTrend(ctx, "run-1", trend); err != nil {
		t.Fatal(err)
	}
	gotTrend, err := s.GetTrend(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(gotTrend) != 2 || gotTrend[0].Month != "2023-01" || gotTrend[0].HoaxPosts != 5 {
		t.Errorf("trend = %+v", gotTrend)
	}

	corr := []store.CorrelationRow{
		{EventID: "late", EventTime: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), TotalPosts: 1},
		{EventID: "early", EventTime: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), TotalPosts: 7, HoaxPosts: 2},
	}
	if err := s.SaveCorrelation(ctx, "run-1", corr); err != nil {
		t.Fatal(err)
	}
	gotCorr, err := s.GetCorrelation(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(gotCorr) != 2 || gotCorr[0].EventID != "early" {
		t.Fatalf("correlation = %+v, want sorted by event time", gotCorr)
	}
	if !gotCorr[0].EventTime.Equal(corr[1].EventTime) {
		t.Errorf("event time = %v, want %v", gotCorr[0].EventTime, corr[1].EventTime)
	}
}

func TestDeleteRunCascades(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	saveRun(t, s, "run-1", time.Now())
	if err := s.SaveKeywords(ctx, "run-1", []string{"bomb"}); err != nil {
		t.Fatal(err)
	}

	raw, ok := s.(*sqliteStore)
	if !ok {
		t.Fatal("unexpected store implementation")
	}
	if _, err := raw.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, "run-1"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetKeywords(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("keywords = %v, want cascade delete to empty them", got)
	}
}
