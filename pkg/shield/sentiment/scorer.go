// Package sentiment scores post text on a compound polarity scale and flags
// posts that mention threat keywords.
package sentiment

import (
	"math"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shieldsna/shield/pkg/shield/keywords"
	"github.com/shieldsna/shield/pkg/shield/textnorm"
)

// Category is the coarse sentiment band of a scaled score.
type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// ThreatLevel grades raw polarity into threat bands.
type ThreatLevel string

const (
	HighThreat   ThreatLevel = "high"
	MediumThreat ThreatLevel = "medium"
	LowThreat    ThreatLevel = "low"
)

// Result is the sentiment outcome for one text.
type Result struct {
	Raw      float64  `json:"raw_polarity"` // compound polarity in [-1, 1]
	Scaled   float64  `json:"scaled_score"` // (raw+1)*5 rounded to 2 decimals, in [0, 10]
	Category Category `json:"category"`
}

// normalization constant for the compound score, as in VADER.
const compoundAlpha = 15.0

// negation lookback window in tokens.
const negationScope = 3

const cacheSize = 4096

// Scorer computes valence-lexicon sentiment over normalized text. Scores
// for repeated texts are memoized in an LRU cache, which pays off on post
// tables full of reposts and duplicated titles.
type Scorer struct {
	lexicon Lexicon
	cache   *lru.Cache[string, Result]
}

// NewScorer creates a scorer over the given lexicon; nil means the built-in
// default lexicon.
func NewScorer(lex Lexicon) *Scorer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	cache, _ := lru.New[string, Result](cacheSize)
	return &Scorer{lexicon: lex, cache: cache}
}

// Score computes the compound polarity of text, the 0-10 scaled score, and
// the sentiment category. Categories use the fixed bands: positive for
// scaled >= 7, negative for scaled <= 3, neutral otherwise.
func (s *Scorer) Score(text string) Result {
	norm := textnorm.Normalize(text)
	if cached, ok := s.cache.Get(norm); ok {
		return cached
	}

	raw := s.compound(strings.Fields(norm))
	scaled := math.Round((raw+1)*5*100) / 100

	res := Result{Raw: raw, Scaled: scaled, Category: categorize(scaled)}
	s.cache.Add(norm, res)
	return res
}

// compound sums token valences with negation flipping and booster scaling,
// then squashes the sum onto [-1, 1] with s/sqrt(s^2+alpha).
func (s *Scorer) compound(tokens []string) float64 {
	var sum float64
	for i, tok := range tokens {
		valence, ok := s.lexicon[tok]
		if !ok {
			continue
		}

		for j := i - 1; j >= 0 && j >= i-negationScope; j-- {
			prev := tokens[j]
			if _, neg := negations[prev]; neg {
				valence *= -0.74
				break
			}
			if boost, ok := boosters[prev]; ok {
				if valence > 0 {
					valence += boost
				} else {
					valence -= boost
				}
			}
		}
		sum += valence
	}
	if sum == 0 {
		return 0
	}
	c := sum / math.Sqrt(sum*sum+compoundAlpha)
	return math.Max(-1, math.Min(1, c))
}

func categorize(scaled float64) Category {
	switch {
	case scaled >= 7:
		return Positive
	case scaled <= 3:
		return Negative
	default:
		return Neutral
	}
}

// Grade maps raw polarity to a threat level: high below -0.5, medium below
// 0, low otherwise.
func Grade(raw float64) ThreatLevel {
	switch {
	case raw < -0.5:
		return HighThreat
	case raw < 0:
		return MediumThreat
	default:
		return LowThreat
	}
}

// FlagThreat reports whether any keyword occurs in the normalized text as a
// case-insensitive substring. An empty keyword set flags nothing.
func FlagThreat(text string, set keywords.Set) bool {
	if len(set) == 0 {
		return false
	}
	norm := textnorm.Normalize(text)
	if norm == "" {
		return false
	}
	for _, kw := range set {
		if kw == "" {
			continue
		}
		if strings.Contains(norm, kw) {
			return true
		}
	}
	return false
}
