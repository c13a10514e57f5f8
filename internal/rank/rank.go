// Package rank orders candidates by weighted Euclidean distance to the subject.
package rank

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// Distance is one candidate's distance to the subject.
type Distance struct {
	// Index is the candidate's position in the input pool.
	Index    int
	Identity string
	Value    float64
}

// Rank weights every column of the subject and candidate vectors, computes
// the Euclidean distance from the subject to each candidate and sorts
// ascending. Equal distances keep input order. No candidates yields an
// empty, non-nil result.
func Rank(subject []float64, candidates [][]float64, identities []string, columns []string, w Weights) ([]Distance, error) {
	if len(subject) != len(columns) {
		return nil, eris.Errorf("rank: subject has %d components for %d columns", len(subject), len(columns))
	}
	if len(identities) != len(candidates) {
		return nil, eris.Errorf("rank: %d identities for %d candidates", len(identities), len(candidates))
	}

	weights := w.Vector(columns)
	ws := applyWeights(subject, weights)

	out := make([]Distance, len(candidates))
	for i, c := range candidates {
		if len(c) != len(columns) {
			return nil, eris.Errorf("rank: candidate %q has %d components for %d columns", identities[i], len(c), len(columns))
		}
		out[i] = Distance{
			Index:    i,
			Identity: identities[i],
			Value:    euclidean(ws, applyWeights(c, weights)),
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}

func applyWeights(v, weights []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * weights[i]
	}
	return out
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
