package classify

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
)

// trainingCorpus builds a linearly separable corpus: hoax documents share a
// vocabulary of panic terms, real documents a vocabulary of mundane ones.
func trainingCorpus(perClass int) []Document {
	hoaxText := []string{
		"fake bomb threat spreading panic downtown",
		"unverified rumor claims explosion near station",
		"hoax alert shooter reported everywhere panic",
		"viral fake story about poisoned water supply",
	}
	realText := []string{
		"city council approves new budget for parks",
		"local weather forecast shows sunny weekend ahead",
		"official traffic report confirms road reopening today",
		"library announces extended opening hours next month",
	}
	var corpus []Document
	for i := 0; i < perClass; i++ {
		corpus = append(corpus, Document{
			Text:  fmt.Sprintf("%s case %d", hoaxText[i%len(hoaxText)], i),
			Label: 1,
		})
		corpus = append(corpus, Document{
			Text:  fmt.Sprintf("%s item %d", realText[i%len(realText)], i),
			Label: 0,
		})
	}
	return corpus
}

func TestFitDeterministic(t *testing.T) {
	corpus := trainingCorpus(40)
	opts := Options{Seed: 42}

	a, heldA, err := Fit(corpus, opts)
	if err != nil {
		t.Fatalf("first fit: %v", err)
	}
	b, heldB, err := Fit(corpus, opts)
	if err != nil {
		t.Fatalf("second fit: %v", err)
	}

	if len(a.Model.Weights) != len(b.Model.Weights) {
		t.Fatalf("weight dims differ: %d vs %d", len(a.Model.Weights), len(b.Model.Weights))
	}
	for i := range a.Model.Weights {
		if a.Model.Weights[i] != b.Model.Weights[i] {
			t.Fatalf("weight %d differs: %v vs %v", i, a.Model.Weights[i], b.Model.Weights[i])
		}
	}
	if a.Model.Bias != b.Model.Bias {
		t.Fatalf("bias differs: %v vs %v", a.Model.Bias, b.Model.Bias)
	}
	if len(heldA) != len(heldB) {
		t.Fatalf("holdout sizes differ: %d vs %d", len(heldA), len(heldB))
	}
	for i := range heldA {
		if heldA[i] != heldB[i] {
			t.Fatalf("holdout %d differs: %+v vs %+v", i, heldA[i], heldB[i])
		}
	}
}

func TestFitHoldoutFraction(t *testing.T) {
	corpus := trainingCorpus(40) // 80 documents
	_, heldOut, err := Fit(corpus, Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	if len(heldOut) != 8 {
		t.Errorf("held out %d documents, want 8 (10%% of 80)", len(heldOut))
	}
}

func TestFitSeparatesClasses(t *testing.T) {
	clf, heldOut, err := Fit(trainingCorpus(40), Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}

	if got := clf.Predict("fake bomb threat spreading panic downtown"); got != 1 {
		t.Errorf("hoax text predicted %d, want 1", got)
	}
	if got := clf.Predict("local weather forecast shows sunny weekend ahead"); got != 0 {
		t.Errorf("real text predicted %d, want 0", got)
	}

	eval := clf.Evaluate(heldOut)
	if eval.Accuracy < 0.5 {
		t.Errorf("held-out accuracy = %f, expected a separable corpus to score higher", eval.Accuracy)
	}
	if eval.Total != len(heldOut) {
		t.Errorf("evaluation total = %d, want %d", eval.Total, len(heldOut))
	}
}

func TestFitInsufficientData(t *testing.T) {
	var corpus []Document
	for i := 0; i < 30; i++ {
		corpus = append(corpus, Document{Text: fmt.Sprintf("hoax rumor panic %d", i), Label: 1})
	}
	_, _, err := Fit(corpus, Options{Seed: 42})
	if !errors.Is(err, internalerr.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestScoreMetrics(t *testing.T) {
	truth := []int{1, 1, 1, 0, 0, 0, 0, 0}
	predicted := []int{1, 1, 0, 0, 0, 0, 0, 1}
	eval := Score(truth, predicted)

	if eval.Accuracy != 0.75 {
		t.Errorf("accuracy = %f, want 0.75", eval.Accuracy)
	}
	if eval.Confusion[1][1] != 2 || eval.Confusion[1][0] != 1 {
		t.Errorf("hoax row = %v, want [1 2]", eval.Confusion[1])
	}
	if eval.Confusion[0][0] != 4 || eval.Confusion[0][1] != 1 {
		t.Errorf("real row = %v, want [4 1]", eval.Confusion[0])
	}

	hoax := eval.PerClass[1]
	if hoax.Precision != 2.0/3.0 {
		t.Errorf("hoax precision = %f, want 2/3", hoax.Precision)
	}
	if hoax.Recall != 2.0/3.0 {
		t.Errorf("hoax recall = %f, want 2/3", hoax.Recall)
	}
	if hoax.Support != 3 {
		t.Errorf("hoax support = %d, want 3", hoax.Support)
	}
	if eval.PerClass[0].Support != 5 {
		t.Errorf("real support = %d, want 5", eval.PerClass[0].Support)
	}
}

func TestScoreEmpty(t *testing.T) {
	eval := Score(nil, nil)
	if eval.Accuracy != 0 || eval.Total != 0 {
		t.Errorf("empty score = %+v, want zero values", eval)
	}
}

func TestTopTermsOrdering(t *testing.T) {
	clf, _, err := Fit(trainingCorpus(40), Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	hoax, real := clf.TopTerms(10)
	if len(hoax) == 0 || len(real) == 0 {
		t.Fatal("expected non-empty term lists")
	}
	for i := 1; i < len(hoax); i++ {
		if hoax[i].Weight > hoax[i-1].Weight {
			t.Errorf("hoax weights not descending at %d: %v after %v", i, hoax[i].Weight, hoax[i-1].Weight)
		}
	}
	for i := 1; i < len(real); i++ {
		if real[i].Weight < real[i-1].Weight {
			t.Errorf("real weights not ascending at %d: %v after %v", i, real[i].Weight, real[i-1].Weight)
		}
	}
	if hoax[0].Weight <= 0 {
		t.Errorf("top hoax weight = %v, want positive on a separable corpus", hoax[0].Weight)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	clf, _, err := Fit(trainingCorpus(40), Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}

	blob, err := clf.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Unmarshal(blob)
	if err != nil {
		t.Fatal(err)
	}

	samples := []string{
		"unverified rumor claims explosion near station",
		"city council approves new budget for parks",
		"something entirely unrelated to training",
	}
	for _, text := range samples {
		if got, want := restored.Decision(text), clf.Decision(text); got != want {
			t.Errorf("decision(%q) = %v after round trip, want %v", text, got, want)
		}
		if got, want := restored.Predict(text), clf.Predict(text); got != want {
			t.Errorf("predict(%q) = %d after round trip, want %d", text, got, want)
		}
	}
}

func TestSerializePreservesStopwords(t *testing.T) {
	// A near-empty stopword list keeps words like "about" in the
	// vocabulary; a reload that fell back to the default list would
	// tokenize them away and shift every decision value.
	opts := Options{Seed: 42, Stopwords: []string{"zzz"}}
	clf, _, err := Fit(trainingCorpus(40), opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := clf.Space.Index["about"]; !ok {
		t.Fatal("custom stopword list should keep 'about' in the vocabulary")
	}

	blob, err := clf.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Unmarshal(blob)
	if err != nil {
		t.Fatal(err)
	}

	text := "fake viral story about poisoned water spreading panic"
	if got, want := restored.Decision(text), clf.Decision(text); got != want {
		t.Errorf("decision = %v after round trip, want %v", got, want)
	}
}

func TestSaveLoad(t *testing.T) {
	clf, _, err := Fit(trainingCorpus(40), Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := clf.Save(path); err != nil {
		t.Fatal(err)
	}
	restored, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := restored.Predict("fake bomb threat spreading panic downtown"), clf.Predict("fake bomb threat spreading panic downtown"); got != want {
		t.Errorf("prediction changed after save/load: %d vs %d", got, want)
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, internalerr.ErrMissingArtifact) {
		t.Fatalf("err = %v, want ErrMissingArtifact", err)
	}
}

func TestUnmarshalRejectsPartialArtifact(t *testing.T) {
	_, err := Unmarshal([]byte(`{"model": null, "feature_space": null}`))
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
