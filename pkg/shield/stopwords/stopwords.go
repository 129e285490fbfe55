// Package stopwords provides the English stopword list used when building
// classifier vocabularies and tokenizing post text.
package stopwords

import "strings"

// english is the built-in English stopword list.
var english = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't",
	"doing", "don't", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn't", "has", "hasn't", "have", "haven't", "having",
	"he", "he'd", "he'll", "he's", "her", "here", "here's", "hers", "herself",
	"him", "himself", "his", "how", "how's", "i", "i'd", "i'll", "i'm",
	"i've", "if", "in", "into", "is", "isn't", "it", "it's", "its", "itself",
	"just", "let's", "me", "more", "most", "mustn't", "my", "myself", "no",
	"nor", "not", "now", "of", "off", "on", "once", "only", "or", "other",
	"ought", "our", "ours", "ourselves", "out", "over", "own", "same",
	"shan't", "she", "she'd", "she'll", "she's", "should", "shouldn't", "so",
	"some", "such", "than", "that", "that's", "the", "their", "theirs",
	"them", "themselves", "then", "there", "there's", "these", "they",
	"they'd", "they'll", "they're", "they've", "this", "those", "through",
	"to", "too", "under", "until", "up", "very", "was", "wasn't", "we",
	"we'd", "we'll", "we're", "we've", "were", "weren't", "what", "what's",
	"when", "when's", "where", "where's", "which", "while", "who", "who's",
	"whom", "why", "why's", "will", "with", "won't", "would", "wouldn't",
	"you", "you'd", "you'll", "you're", "you've", "your", "yours",
	"yourself", "yourselves",
}

// English returns a copy of the built-in English stopword list.
func English() []string {
	out := make([]string, len(english))
	copy(out, english)
	return out
}

// Set is a fast membership view over a stopword list.
type Set map[string]struct{}

// NewSet builds a Set from the given words, lower-casing each. Contractions
// are also indexed with the apostrophe removed so that punctuation-stripped
// tokens like "dont" still match.
func NewSet(words []string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts word into the set, lower-cased, along with its
// apostrophe-stripped form when it is a contraction.
func (s Set) Add(word string) {
	word = strings.ToLower(word)
	s[word] = struct{}{}
	if strings.Contains(word, "'") {
		s[strings.ReplaceAll(word, "'", "")] = struct{}{}
	}
}

// EnglishSet returns a Set over the built-in English list.
func EnglishSet() Set {
	return NewSet(english)
}

// IsStop reports whether word is in the set. Matching is exact; callers
// lower-case input first.
func (s Set) IsStop(word string) bool {
	_, ok := s[word]
	return ok
}
