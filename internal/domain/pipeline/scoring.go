package pipeline

import (
	"math"
	"regexp"
	"strings"
)

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// These mirror resultbuilder's confidence-formula constants (base
// confidence, sparse-accept penalty, energy-bonus weight). Stage 2 needs its
// own projection of that formula ahead of time to decide whether a
// conversion is implausible enough to fall through rather than be reported;
// resultbuilder can't be imported here since it already imports pipeline.
const (
	baseConfidenceEstimate               = 0.85
	sparseAcceptConfidencePenalty        = -0.10
	energyBonusWeightEstimate            = 0.10
	conversionImplausibleConfidenceFloor = 0.10
)

// tokens lowercases, strips punctuation, splits, and dedupes s (spec.md
// §4.4's "Scoring detail").
func tokens(s string) map[string]bool {
	out := map[string]bool{}
	for _, t := range tokenSplit.Split(strings.ToLower(s), -1) {
		if t != "" {
			out[t] = true
		}
	}
	return out
}

func tokenSet(words []string) map[string]bool {
	out := map[string]bool{}
	for _, w := range words {
		for t := range tokens(w) {
			out[t] = true
		}
	}
	return out
}

// tokenOverlap counts tokens shared between a and b.
func tokenOverlap(a, b map[string]bool) int {
	n := 0
	for t := range a {
		if b[t] {
			n++
		}
	}
	return n
}

// jaccard is |A∩B| / |A∪B|.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := tokenOverlap(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// energySimilarity uses a 60 kcal/100g bandwidth (spec.md §4.4).
func energySimilarity(predicted, candidate float64) float64 {
	delta := math.Abs(predicted - candidate)
	sim := 1 - math.Min(1, delta/60)
	if sim < 0 {
		return 0
	}
	return sim
}

// withinPercent reports whether candidate is within pct of predicted.
func withinPercent(predicted, candidate, pct float64) bool {
	if predicted == 0 {
		return candidate == 0
	}
	return math.Abs(candidate-predicted)/predicted <= pct
}
