package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shieldsna/shield/pkg/shield/stopwords"
)

var (
	urlPattern     = regexp.MustCompile(`(?:https?://|www\.)\S+`)
	mentionPattern = regexp.MustCompile(`[@#]\w+`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// Normalize cleans raw post text into a canonical form.
// Steps, in order: lowercase, strip URLs, strip @mentions and #hashtags,
// strip punctuation, collapse whitespace runs, trim. The function is pure
// and idempotent; empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = stripPunct(text)
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// stripPunct removes punctuation and symbol runes, keeping letters,
// digits, and whitespace.
func stripPunct(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokenizer splits normalized text into tokens, removing stopwords.
type Tokenizer struct {
	stops stopwords.Set
}

// NewTokenizer creates a tokenizer with the given stopword list. The list
// is indexed with stopwords.NewSet, so contraction entries like "don't"
// match the apostrophe-stripped tokens Normalize produces.
func NewTokenizer(words []string) *Tokenizer {
	return &Tokenizer{stops: stopwords.NewSet(words)}
}

// Tokenize normalizes text and splits it into stopword-filtered tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	var tokens []string
	for _, word := range strings.Fields(norm) {
		if t.isStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func (t *Tokenizer) isStopword(word string) bool {
	return t.stops.IsStop(word)
}

// AddStopword adds a word to the stopword list.
func (t *Tokenizer) AddStopword(word string) {
	t.stops.Add(word)
}
