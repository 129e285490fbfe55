// Package keywords derives threat keyword lists from a trained classifier
// and persists them for reuse by the sentiment stage.
package keywords

import (
	"fmt"
	"os"
	"strings"

	"github.com/shieldsna/shield/pkg/shield/classify"
)

// Set is an ordered list of threat keywords, most hoax-indicative first.
type Set []string

// Extract derives the top-n hoax-indicative terms from a trained
// classifier, lower-cased and deduplicated while preserving weight order.
func Extract(clf *classify.Classifier, n int) Set {
	hoax, _ := clf.TopTerms(n)
	seen := make(map[string]struct{}, len(hoax))
	set := make(Set, 0, len(hoax))
	for _, wt := range hoax {
		term := strings.ToLower(wt.Term)
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		set = append(set, term)
	}
	return set
}

// Save writes the set to path as plain UTF-8 text, one keyword per line, no
// header.
func (s Set) Save(path string) error {
	var b strings.Builder
	for _, kw := range s {
		b.WriteString(kw)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write keywords: %w", err)
	}
	return nil
}

// Load reads a keyword file written by Save. A missing file yields an empty
// set rather than an error; scoring then flags nothing.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read keywords: %w", err)
	}
	var set Set
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		set = append(set, strings.ToLower(line))
	}
	return set, nil
}
