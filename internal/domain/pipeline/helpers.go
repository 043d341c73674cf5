package pipeline

import (
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/conversion"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// predictedKcal is a placeholder energy reference for candidates when the
// prediction itself carries no macro estimate (vision_mass_only mode):
// derived from the resolved plausibility/category band's midpoint so Stage
// 1/1b/2 energy checks have something principled to compare against. When
// the prediction does carry a confidence-backed estimate, callers should
// prefer that instead; mass-only is the spec's default mode (spec.md §6).
// PredictedKcal exposes predictedKcal to other domain packages (resultbuilder's
// confidence formula needs the same reference energy the stages scored against).
func PredictedKcal(in Input) float64 {
	return predictedKcal(in)
}

func predictedKcal(in Input) float64 {
	if band, ok := in.Store.PlausibilityBandFor(in.Class); ok {
		return (band.MinKcal100g + band.MaxKcal100g) / 2
	}
	return 150
}

func macrosFromEntry(e entities.CatalogEntry) conversion.Macros {
	return conversion.Macros{
		KcalPer100g: e.KcalPer100g,
		ProteinG:    e.ProteinPer100,
		CarbsG:      e.CarbsPer100,
		FatG:        e.FatPer100,
	}
}

// methodCompatible reports whether entryForm belongs to the same
// compatibility group as method (spec.md §4.4 Stage 1).
func methodCompatible(store *config.Store, method, entryForm string) bool {
	if method == entryForm {
		return true
	}
	for _, group := range store.MethodCompatibilityGroups {
		inGroup := func(v string) bool {
			for _, g := range group {
				if g == v {
					return true
				}
			}
			return false
		}
		if inGroup(method) && inGroup(entryForm) {
			return true
		}
	}
	return false
}

// better applies the pipeline-wide tie-break rule (spec.md §4.4): higher
// source priority, then closer energy to predicted, then lower fdc_id.
func better(a, b entities.CatalogEntry, scoreA, scoreB, predictedKcal float64) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	if a.Source.SourcePriority() != b.Source.SourcePriority() {
		return a.Source.SourcePriority() > b.Source.SourcePriority()
	}
	da := abs(a.KcalPer100g - predictedKcal)
	db := abs(b.KcalPer100g - predictedKcal)
	if da != db {
		return da < db
	}
	return a.FDCID < b.FDCID
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
