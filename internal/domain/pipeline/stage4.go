package pipeline

import (
	"context"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

type stage4 struct{}

func (stage4) name() string { return "stage4" }

// productNouns are tokens Stage 4 treats as "a product noun" for the cured/
// processed-meat floor bump (spec.md §4.4).
var productNouns = map[string]bool{
	"bacon": true, "sausage": true, "ham": true, "jerky": true, "salami": true, "hot dog": true,
}

// evaluate implements Stage 4 — Branded energy fallback (spec.md §4.4).
func (stage4) evaluate(_ context.Context, in Input) Outcome {
	if len(in.Pool.Branded) == 0 {
		return Outcome{}
	}

	classTokens := tokenSet(in.Store.ExpandTokens(in.Class))
	predicted := predictedKcal(in)
	category := in.Store.CategoryOf[in.Class]

	type scored struct {
		entry entities.CatalogEntry
	}
	var best *scored
	var bestEnergyDelta float64

	for _, c := range in.Pool.Branded {
		overlap := tokenOverlap(classTokens, tokens(c.Name))

		floor := 2.0
		if in.Store.Flags.BrandedTwoTokenFloor25 && category == entities.CategoryMeatPoultry && overlap == 2 {
			hasProductNoun := false
			for t := range tokens(c.Name) {
				if productNouns[t] {
					hasProductNoun = true
					break
				}
			}
			if hasProductNoun {
				floor = 2.5
			}
		}

		if float64(overlap) < floor {
			continue
		}

		delta := abs(c.KcalPer100g - predicted)
		if best == nil || delta < bestEnergyDelta ||
			(delta == bestEnergyDelta && c.Source.SourcePriority() > best.entry.Source.SourcePriority()) ||
			(delta == bestEnergyDelta && c.FDCID < best.entry.FDCID) {
			best = &scored{entry: c}
			bestEnergyDelta = delta
		}
	}

	if best == nil {
		return Outcome{}
	}

	m := macrosFromEntry(best.entry)
	return Outcome{Handled: true, Decision: &Decision{
		Stage:        entities.Stage4BrandedEnergy,
		Entry:        best.entry,
		Macros:       &m,
		AtwaterOK:    true,
		StagePenalty: -0.40,
	}}
}
