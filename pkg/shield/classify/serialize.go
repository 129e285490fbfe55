package classify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
	"github.com/shieldsna/shield/pkg/shield/textnorm"
)

// artifact is the on-disk representation of a trained classifier. The
// stopword list is part of the artifact: predictions depend on it, so a
// round trip must restore the exact tokenizer.
type artifact struct {
	Model     *Model        `json:"model"`
	Space     *FeatureSpace `json:"feature_space"`
	Stopwords []string      `json:"stopwords,omitempty"`
}

// Save writes the classifier to path as JSON. The artifact round-trips:
// loading it back produces identical predictions.
func (c *Classifier) Save(path string) error {
	data, err := json.Marshal(artifact{Model: c.Model, Space: c.Space, Stopwords: c.stopwords})
	if err != nil {
		return fmt.Errorf("marshal classifier: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write classifier: %w", err)
	}
	return nil
}

// Load reads a classifier artifact from path. A missing file is reported as
// ErrMissingArtifact so callers can degrade to "model unavailable" instead
// of failing the whole run.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("classifier %s: %w", path, internalerr.ErrMissingArtifact)
		}
		return nil, fmt.Errorf("read classifier: %w", err)
	}
	return Unmarshal(data)
}

// Marshal serializes the classifier to an opaque blob.
func (c *Classifier) Marshal() ([]byte, error) {
	return json.Marshal(artifact{Model: c.Model, Space: c.Space, Stopwords: c.stopwords})
}

// Unmarshal restores a classifier from a blob produced by Marshal or Save.
func Unmarshal(data []byte) (*Classifier, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode classifier: %w", err)
	}
	if a.Model == nil || a.Space == nil {
		return nil, fmt.Errorf("decode classifier: %w", internalerr.ErrInvalidInput)
	}
	a.Space.rebuildIndex()
	c := &Classifier{Model: a.Model, Space: a.Space, stopwords: a.Stopwords}
	if len(a.Stopwords) > 0 {
		c.tok = textnorm.NewTokenizer(a.Stopwords)
	}
	return c, nil
}
