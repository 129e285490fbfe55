package classify

import (
	"errors"
	"math"
	"testing"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
)

func TestBuildFeatureSpaceMinDocFreq(t *testing.T) {
	docs := [][]string{
		{"bomb", "threat"},
		{"bomb", "rumor"},
		{"weather"},
	}
	fs, err := buildFeatureSpace(docs, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := fs.Index["bomb"]; !ok {
		t.Error("bomb appears in 2 docs, should survive")
	}
	if _, ok := fs.Index["weather"]; ok {
		t.Error("weather appears in 1 doc, should be filtered")
	}
}

func TestBuildFeatureSpaceIncludesBigrams(t *testing.T) {
	docs := [][]string{
		{"bomb", "threat"},
		{"bomb", "threat"},
	}
	fs, err := buildFeatureSpace(docs, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := fs.Index["bomb threat"]; !ok {
		t.Error("adjacent bigram should be in the vocabulary")
	}
}

func TestBuildFeatureSpaceCap(t *testing.T) {
	docs := [][]string{
		{"a", "b", "c", "d", "e"},
		{"a", "b", "c"},
		{"a", "b"},
	}
	fs, err := buildFeatureSpace(docs, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fs.Size() != 2 {
		t.Fatalf("vocabulary size = %d, want 2", fs.Size())
	}
	// DF ties break alphabetically: "a", "a b", and "b" all have DF 3,
	// so the cap keeps "a" and "a b".
	if _, ok := fs.Index["a"]; !ok {
		t.Error("a should survive the cap")
	}
	if _, ok := fs.Index["a b"]; !ok {
		t.Error("a b should survive the cap")
	}
}

func TestBuildFeatureSpaceEmptyVocabulary(t *testing.T) {
	docs := [][]string{{"one"}, {"two"}}
	_, err := buildFeatureSpace(docs, 3, 0)
	if !errors.Is(err, internalerr.ErrEmptyVocabulary) {
		t.Fatalf("err = %v, want ErrEmptyVocabulary", err)
	}
}

func TestVocabularyOrderIsDeterministic(t *testing.T) {
	docs := [][]string{
		{"zebra", "apple", "mango"},
		{"mango", "apple", "zebra"},
	}
	a, err := buildFeatureSpace(docs, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := buildFeatureSpace(docs, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Terms {
		if a.Terms[i] != b.Terms[i] {
			t.Fatalf("term order differs at %d: %q vs %q", i, a.Terms[i], b.Terms[i])
		}
	}
	// Alphabetical assignment.
	if a.Terms[0] > a.Terms[len(a.Terms)-1] {
		t.Error("vocabulary should be sorted")
	}
}

func TestVectorizeL2Normalized(t *testing.T) {
	docs := [][]string{
		{"bomb", "threat"},
		{"bomb", "city"},
	}
	fs, err := buildFeatureSpace(docs, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	vec := fs.Vectorize([]string{"bomb", "threat", "threat"})
	var norm float64
	for _, e := range vec {
		norm += e.value * e.value
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("squared norm = %f, want 1", norm)
	}
}

func TestVectorizeEntriesOrderedAndRepeatable(t *testing.T) {
	docs := [][]string{
		{"bomb", "threat", "city", "panic"},
		{"bomb", "threat", "city", "panic"},
	}
	fs, err := buildFeatureSpace(docs, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	tokens := []string{"panic", "bomb", "city", "threat"}
	a := fs.Vectorize(tokens)
	if len(a) == 0 {
		t.Fatal("empty vector")
	}
	for i := 1; i < len(a); i++ {
		if a[i].index <= a[i-1].index {
			t.Fatalf("entries not in ascending index order: %v", a)
		}
	}
	// Repeated calls must agree bit for bit, not just approximately.
	for run := 0; run < 10; run++ {
		b := fs.Vectorize(tokens)
		if len(b) != len(a) {
			t.Fatalf("length changed across calls: %d vs %d", len(b), len(a))
		}
		for i := range a {
			if b[i] != a[i] {
				t.Fatalf("entry %d differs across calls: %+v vs %+v", i, b[i], a[i])
			}
		}
	}
}

func TestVectorizeIgnoresUnknownTerms(t *testing.T) {
	docs := [][]string{{"bomb"}, {"bomb"}}
	fs, err := buildFeatureSpace(docs, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	vec := fs.Vectorize([]string{"unseen", "words"})
	if len(vec) != 0 {
		t.Errorf("got %d entries, want 0", len(vec))
	}
}
