// Package featstore implements the hashed feature store shared by the
// POS tagger and the dependency parser (spec §4.4): feature strings are
// hashed to fixed-size buckets with FNV-1a when numBuckets > 0,
// otherwise used verbatim. Weights map a bucket id (or raw feature
// string) to a mapping from label/transition name to a numeric weight.
// Unknown features contribute zero score.
package featstore

import (
	"hash/fnv"
	"strconv"
)

// Store holds one weight table plus the hashing configuration used to
// address it.
type Store struct {
	NumBuckets int
	Weights    map[string]map[string]float64
}

// New returns a Store over the given weight table. A nil table behaves
// as an all-zero store.
func New(numBuckets int, weights map[string]map[string]float64) *Store {
	if weights == nil {
		weights = make(map[string]map[string]float64)
	}
	return &Store{NumBuckets: numBuckets, Weights: weights}
}

// FNV1a hashes s with the 32-bit FNV-1a algorithm, exported so callers
// (and tests) can verify bucket assignment independently of Store.
func FNV1a(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// FeatureKey returns the table key a feature string resolves to: its
// FNV-1a bucket id (as a decimal string) when NumBuckets > 0, or the
// feature string itself otherwise.
func (s *Store) FeatureKey(feature string) string {
	if s == nil || s.NumBuckets <= 0 {
		return feature
	}
	bucket := FNV1a(feature) % uint32(s.NumBuckets)
	return strconv.FormatUint(uint64(bucket), 10)
}

// Score returns the weight a single feature contributes toward label.
// Unknown features or labels contribute 0.
func (s *Store) Score(feature, label string) float64 {
	if s == nil {
		return 0
	}
	row, ok := s.Weights[s.FeatureKey(feature)]
	if !ok {
		return 0
	}
	return row[label]
}

// ScoreLabels sums, for every candidate label, the weights contributed
// by every feature — the perceptron dot-product used both by the POS
// tagger (candidate tags) and the dependency parser (candidate
// transitions).
func (s *Store) ScoreLabels(features []string, candidates []string) map[string]float64 {
	scores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		scores[c] = 0
	}
	if s == nil {
		return scores
	}
	for _, f := range features {
		row, ok := s.Weights[s.FeatureKey(f)]
		if !ok {
			continue
		}
		for _, c := range candidates {
			scores[c] += row[c]
		}
	}
	return scores
}

// ArgMax returns the candidate with the highest score and the margin
// between it and the runner-up. If there is only one candidate, the
// margin equals its own score (spec §4.5 step 4). ArgMax is
// deterministic for ties: the first candidate (in iteration order over
// order) wins.
func ArgMax(scores map[string]float64, order []string) (best string, margin float64) {
	if len(order) == 0 {
		return "", 0
	}
	bestScore := scores[order[0]]
	best = order[0]
	second := negInf

	for _, c := range order[1:] {
		sc := scores[c]
		if sc > bestScore {
			second = bestScore
			bestScore = sc
			best = c
		} else if sc > second {
			second = sc
		}
	}

	if len(order) == 1 {
		return best, bestScore
	}
	if second == negInf {
		second = bestScore
	}
	return best, bestScore - second
}

const negInf = -1e308
