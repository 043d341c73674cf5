package pipeline

import (
	"context"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

type stage3 struct{}

func (stage3) name() string { return "stage3" }

// evaluate implements Stage 3 — Branded cooked exact (spec.md §4.4).
func (stage3) evaluate(_ context.Context, in Input) Outcome {
	if len(in.Pool.Branded) == 0 {
		return Outcome{}
	}

	classTokens := tokenSet(in.Store.ExpandTokens(in.Class))
	predicted := predictedKcal(in)

	type scored struct {
		entry   entities.CatalogEntry
		score   float64
		overlap int
	}
	var best *scored

	for _, c := range in.Pool.Branded {
		if !methodCompatible(in.Store, in.Method.Method, string(c.Form)) {
			continue
		}
		overlap := tokenOverlap(classTokens, tokens(c.Name))
		if overlap < 2 {
			continue
		}
		bonus := 0.0
		if string(c.Form) == in.Method.Method {
			bonus = 0.5
		}
		score := float64(overlap) + bonus
		if score < 2.0 {
			continue
		}
		cand := scored{entry: c, score: score, overlap: overlap}
		if best == nil || better(cand.entry, best.entry, cand.score, best.score, predicted) {
			best = &cand
		}
	}

	if best == nil {
		return Outcome{}
	}

	m := macrosFromEntry(best.entry)
	return Outcome{Handled: true, Decision: &Decision{
		Stage:        entities.Stage3BrandedCooked,
		Entry:        best.entry,
		Macros:       &m,
		AtwaterOK:    true,
		StagePenalty: -0.20,
	}}
}
