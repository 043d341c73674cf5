package pipeline

import (
	"context"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

type stage1 struct{}

func (stage1) name() string { return "stage1" }

// evaluate implements Stage 1 — Cooked exact (spec.md §4.4).
func (stage1) evaluate(_ context.Context, in Input) Outcome {
	if len(in.Pool.CookedFoundationSR) == 0 {
		return Outcome{}
	}

	classTokens := tokenSet(in.Store.ExpandTokens(in.Class))

	type scored struct {
		entry entities.CatalogEntry
		score float64
	}
	var best *scored

	for _, c := range in.Pool.CookedFoundationSR {
		if !methodCompatible(in.Store, in.Method.Method, string(c.Form)) {
			continue
		}
		// strict_cooked_exact_gate (spec.md §6): when true, cooked-exact also
		// requires the candidate's energy within ±20% of predicted; when
		// false, method compatibility alone is enough to be scored.
		if in.Store.Flags.StrictCookedExactGate && !withinPercent(predictedKcal(in), c.KcalPer100g, 0.20) {
			continue
		}
		overlap := tokenOverlap(classTokens, tokens(c.Name))
		compatBonus := 0.0
		if string(c.Form) == in.Method.Method {
			compatBonus = 1.0
		} else {
			compatBonus = 0.5
		}
		score := float64(overlap)*1.0 + compatBonus*0.5
		if score < 1.6 {
			continue
		}
		cand := scored{entry: c, score: score}
		if best == nil || better(cand.entry, best.entry, cand.score, best.score, predictedKcal(in)) {
			best = &cand
		}
	}

	if best == nil {
		return Outcome{}
	}

	m := macrosFromEntry(best.entry)
	return Outcome{Handled: true, Decision: &Decision{
		Stage:     entities.Stage1CookedExact,
		Entry:     best.entry,
		Macros:    &m,
		AtwaterOK: true,
	}}
}
