package classify

import (
	"math"
	"sort"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
)

// FeatureSpace maps normalized unigram/bigram terms to weight indices with
// per-term inverse document frequencies. It is built once from a training
// corpus and never mutated after fit.
type FeatureSpace struct {
	Terms []string       `json:"terms"` // vocabulary order: index -> term
	Index map[string]int `json:"-"`
	IDF   []float64      `json:"idf"`
}

// Size returns the vocabulary size.
func (fs *FeatureSpace) Size() int {
	return len(fs.Terms)
}

// rebuildIndex restores the term -> index map after deserialization.
func (fs *FeatureSpace) rebuildIndex() {
	fs.Index = make(map[string]int, len(fs.Terms))
	for i, term := range fs.Terms {
		fs.Index[term] = i
	}
}

// buildFeatureSpace constructs a TF-IDF vocabulary from tokenized training
// documents. Terms below minDocFreq are excluded; when the surviving
// vocabulary exceeds maxFeatures it is capped to the terms with the highest
// document frequency, ties broken alphabetically for reproducibility.
func buildFeatureSpace(docs [][]string, minDocFreq, maxFeatures int) (*FeatureSpace, error) {
	if minDocFreq < 1 {
		minDocFreq = 1
	}

	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{})
		for _, term := range ngrams(tokens) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	type termDF struct {
		term string
		df   int
	}
	var survivors []termDF
	for term, count := range df {
		if count >= minDocFreq {
			survivors = append(survivors, termDF{term, count})
		}
	}
	if len(survivors) == 0 {
		return nil, internalerr.ErrEmptyVocabulary
	}

	if maxFeatures > 0 && len(survivors) > maxFeatures {
		sort.Slice(survivors, func(i, j int) bool {
			if survivors[i].df == survivors[j].df {
				return survivors[i].term < survivors[j].term
			}
			return survivors[i].df > survivors[j].df
		})
		survivors = survivors[:maxFeatures]
	}

	// Vocabulary order is alphabetical so that identical corpora always
	// produce identical index assignments.
	sort.Slice(survivors, func(i, j int) bool {
		return survivors[i].term < survivors[j].term
	})

	fs := &FeatureSpace{
		Terms: make([]string, len(survivors)),
		Index: make(map[string]int, len(survivors)),
		IDF:   make([]float64, len(survivors)),
	}
	n := float64(len(docs))
	for i, s := range survivors {
		fs.Terms[i] = s.term
		fs.Index[s.term] = i
		// Smoothed IDF: ln((1+N)/(1+df)) + 1.
		fs.IDF[i] = math.Log((1+n)/(1+float64(s.df))) + 1
	}
	return fs, nil
}

// ngrams expands a token sequence into unigrams plus adjacent bigrams
// (joined with a single space).
func ngrams(tokens []string) []string {
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// entry is one non-zero component of a sparse vector.
type entry struct {
	index int
	value float64
}

// vector is a sparse TF-IDF document representation. Entries are ordered by
// ascending vocabulary index; float accumulations over a vector always run
// in the same order, so identical inputs produce bit-identical results.
type vector []entry

// Vectorize converts tokenized text into an L2-normalized TF-IDF vector.
// Terms outside the vocabulary are ignored.
func (fs *FeatureSpace) Vectorize(tokens []string) vector {
	counts := make(map[int]float64)
	for _, term := range ngrams(tokens) {
		if idx, ok := fs.Index[term]; ok {
			counts[idx]++
		}
	}

	vec := make(vector, 0, len(counts))
	for idx, count := range counts {
		vec = append(vec, entry{index: idx, value: count * fs.IDF[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].index < vec[j].index })

	var norm float64
	for _, e := range vec {
		norm += e.value * e.value
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i].value /= norm
		}
	}
	return vec
}
