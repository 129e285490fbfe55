package classify

import "sort"

// Model is a linear decision function over a FeatureSpace: a signed weight
// per vocabulary term plus a bias. Immutable once training completes.
type Model struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// decision computes w·x + b for a sparse vector.
func (m *Model) decision(vec vector) float64 {
	score := m.Bias
	for _, e := range vec {
		score += m.Weights[e.index] * e.value
	}
	return score
}

// predictVec maps the decision value to a binary label: 1 (hoax) when the
// decision value is positive, 0 (real) otherwise.
func (m *Model) predictVec(vec vector) int {
	if m.decision(vec) > 0 {
		return 1
	}
	return 0
}

// WeightedTerm pairs a vocabulary term with its learned weight.
type WeightedTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// TopTerms returns the n highest-positive-weight (hoax-indicative) and the n
// most-negative-weight (real-indicative) terms. Ties are broken by
// vocabulary index so repeated runs over the same model produce the same
// ordering. Lists are shorter than n when the vocabulary is smaller.
func (m *Model) TopTerms(space *FeatureSpace, n int) (hoax, real []WeightedTerm) {
	indices := make([]int, len(m.Weights))
	for i := range indices {
		indices[i] = i
	}

	byWeightDesc := make([]int, len(indices))
	copy(byWeightDesc, indices)
	sort.SliceStable(byWeightDesc, func(i, j int) bool {
		return m.Weights[byWeightDesc[i]] > m.Weights[byWeightDesc[j]]
	})

	byWeightAsc := make([]int, len(indices))
	copy(byWeightAsc, indices)
	sort.SliceStable(byWeightAsc, func(i, j int) bool {
		return m.Weights[byWeightAsc[i]] < m.Weights[byWeightAsc[j]]
	})

	if n > len(indices) {
		n = len(indices)
	}
	for _, idx := range byWeightDesc[:n] {
		hoax = append(hoax, WeightedTerm{Term: space.Terms[idx], Weight: m.Weights[idx]})
	}
	for _, idx := range byWeightAsc[:n] {
		real = append(real, WeightedTerm{Term: space.Terms[idx], Weight: m.Weights[idx]})
	}
	return hoax, real
}
