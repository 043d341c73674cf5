package pipeline

import (
	"context"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

type stage1b struct{}

func (stage1b) name() string { return "stage1b" }

// evaluate implements Stage 1b — Raw Foundation direct (spec.md §4.4, new).
func (stage1b) evaluate(_ context.Context, in Input) Outcome {
	if in.Prediction.Form != entities.FormRaw && in.Prediction.Form != entities.FormEmpty {
		return Outcome{}
	}
	if len(in.Pool.RawFoundation) == 0 {
		return Outcome{}
	}

	threshold := 0.55
	if in.Store.Stage1bLooseClasses[in.Class] {
		threshold = 0.50
	}

	classTokens := tokenSet(in.Store.ExpandTokens(in.Class))
	predicted := predictedKcal(in)

	type scored struct {
		entry entities.CatalogEntry
		score float64
	}
	var best *scored

	for _, c := range in.Pool.RawFoundation {
		j := jaccard(classTokens, tokens(c.Name))
		e := energySimilarity(predicted, c.KcalPer100g)
		score := 0.7*j + 0.3*e
		if score < threshold {
			continue
		}
		cand := scored{entry: c, score: score}
		if best == nil || better(cand.entry, best.entry, cand.score, best.score, predicted) {
			best = &cand
		}
	}

	if best == nil {
		return Outcome{}
	}

	m := macrosFromEntry(best.entry)
	score := best.score
	return Outcome{Handled: true, Decision: &Decision{
		Stage:        entities.Stage1bRawFoundationDirect,
		Entry:        best.entry,
		Macros:       &m,
		AtwaterOK:    true,
		Stage1bScore: &score,
	}}
}
