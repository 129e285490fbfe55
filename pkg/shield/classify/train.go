package classify

import (
	"math/rand"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
	"github.com/shieldsna/shield/pkg/shield/stopwords"
	"github.com/shieldsna/shield/pkg/shield/textnorm"
)

// Document is one labeled training example. Label is 1 for hoax, 0 for real.
type Document struct {
	Text  string
	Label int
}

// Options configures a training run. Every randomized step (holdout split,
// per-epoch sample order) is driven by Seed so identical inputs produce
// identical models.
type Options struct {
	Seed         int64
	HoldoutRatio float64 // fraction held out for evaluation (default 0.1)
	MaxFeatures  int     // vocabulary cap (default 5000)
	MinDocFreq   int     // minimum document frequency (default 2)
	Epochs       int     // SGD passes over the training partition (default 20)
	Lambda       float64 // L2 regularization strength (default 1e-4)
	Stopwords    []string
}

func (o Options) withDefaults() Options {
	if o.HoldoutRatio <= 0 || o.HoldoutRatio >= 1 {
		o.HoldoutRatio = 0.1
	}
	if o.MaxFeatures == 0 {
		o.MaxFeatures = 5000
	}
	if o.MinDocFreq == 0 {
		o.MinDocFreq = 2
	}
	if o.Epochs == 0 {
		o.Epochs = 20
	}
	if o.Lambda == 0 {
		o.Lambda = 1e-4
	}
	if o.Stopwords == nil {
		o.Stopwords = stopwords.English()
	}
	return o
}

// Classifier bundles a trained model with its feature space and tokenizer.
// The stopword list travels with the model so a deserialized classifier
// tokenizes exactly as the one that was trained.
type Classifier struct {
	Model *Model
	Space *FeatureSpace

	stopwords []string
	tok       *textnorm.Tokenizer
}

// Fit trains a linear hoax/real classifier on the corpus. The corpus is
// shuffled and split into training and held-out partitions with the
// configured seed and ratio; the feature space is built from the training
// partition only. Returns the classifier and the held-out documents for
// evaluation.
//
// Fails with ErrInsufficientData when fewer than two distinct labels are
// present in the training partition, and with ErrEmptyVocabulary when no
// term survives frequency filtering.
func Fit(corpus []Document, opts Options) (*Classifier, []Document, error) {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))

	shuffled := make([]Document, len(corpus))
	copy(shuffled, corpus)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	holdout := int(float64(len(shuffled)) * opts.HoldoutRatio)
	train := shuffled[:len(shuffled)-holdout]
	heldOut := shuffled[len(shuffled)-holdout:]

	labels := make(map[int]struct{})
	for _, d := range train {
		labels[d.Label] = struct{}{}
	}
	if len(labels) < 2 {
		return nil, nil, internalerr.ErrInsufficientData
	}

	tok := textnorm.NewTokenizer(opts.Stopwords)
	tokenized := make([][]string, len(train))
	for i, d := range train {
		tokenized[i] = tok.Tokenize(d.Text)
	}

	space, err := buildFeatureSpace(tokenized, opts.MinDocFreq, opts.MaxFeatures)
	if err != nil {
		return nil, nil, err
	}

	vectors := make([]vector, len(train))
	targets := make([]float64, len(train))
	for i, d := range train {
		vectors[i] = space.Vectorize(tokenized[i])
		if d.Label == 1 {
			targets[i] = 1
		} else {
			targets[i] = -1
		}
	}

	model := sgdHinge(vectors, targets, space.Size(), opts, rng)
	return &Classifier{Model: model, Space: space, stopwords: opts.Stopwords, tok: tok}, heldOut, nil
}

// sgdHinge trains a linear SVM by stochastic gradient descent on the hinge
// loss with L2 regularization, mirroring SGDClassifier(loss="hinge",
// penalty="l2"). The learning rate follows the eta_t = 1/(lambda*(t+t0))
// schedule; sample order is reshuffled each epoch from the shared rng.
func sgdHinge(vectors []vector, targets []float64, dim int, opts Options, rng *rand.Rand) *Model {
	w := make([]float64, dim)
	var bias float64

	order := make([]int, len(vectors))
	for i := range order {
		order[i] = i
	}

	t := 1.0
	t0 := 1.0 / opts.Lambda
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for _, i := range order {
			eta := 1.0 / (opts.Lambda * (t + t0))
			t++

			vec, y := vectors[i], targets[i]
			score := bias
			for _, e := range vec {
				score += w[e.index] * e.value
			}

			// L2 shrink applies to every step; the hinge gradient
			// only when the margin is violated.
			shrink := 1 - eta*opts.Lambda
			for idx := range w {
				w[idx] *= shrink
			}
			if y*score < 1 {
				for _, e := range vec {
					w[e.index] += eta * y * e.value
				}
				bias += eta * y
			}
		}
	}
	return &Model{Weights: w, Bias: bias}
}

// Predict classifies raw text: 1 for hoax, 0 for real.
func (c *Classifier) Predict(text string) int {
	return c.Model.predictVec(c.Space.Vectorize(c.tokenize(text)))
}

// Decision returns the raw decision value w·x + b for text.
func (c *Classifier) Decision(text string) float64 {
	return c.Model.decision(c.Space.Vectorize(c.tokenize(text)))
}

// TopTerms exposes the model's highest-weighted terms per class.
func (c *Classifier) TopTerms(n int) (hoax, real []WeightedTerm) {
	return c.Model.TopTerms(c.Space, n)
}

func (c *Classifier) tokenize(text string) []string {
	if c.tok == nil {
		c.tok = textnorm.NewTokenizer(stopwords.English())
	}
	return c.tok.Tokenize(text)
}
