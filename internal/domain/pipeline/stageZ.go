package pipeline

import (
	"context"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

type stageZ struct{}

func (stageZ) name() string { return "stageZ" }

// evaluate implements Stage Z — Energy-only last resort (spec.md §4.4): fires
// only for a Stage-Z-eligible category with zero raw Foundation candidates,
// synthesizing an energy-only proxy entry clamped to the category's kcal
// band. Macros are left null; nothing downstream may scale them.
func (stageZ) evaluate(_ context.Context, in Input) Outcome {
	if !in.Store.Flags.StageZBrandedFallback {
		return Outcome{}
	}
	category := in.Store.CategoryOf[in.Class]
	if !category.StageZEligible() {
		return Outcome{}
	}
	if len(in.Pool.RawFoundation) != 0 {
		return Outcome{}
	}

	band, ok := in.Store.StageZCategoryBands[category]
	if !ok {
		return Outcome{}
	}

	kcal := predictedKcal(in)
	clamped := false
	switch {
	case kcal < band.MinKcal100g:
		kcal = band.MinKcal100g
		clamped = true
	case kcal > band.MaxKcal100g:
		kcal = band.MaxKcal100g
		clamped = true
	}

	entry := entities.CatalogEntry{
		Name:        string(in.Class) + " (energy-only proxy)",
		Source:      entities.SourceStageZProxy,
		Form:        entities.FormEnergyOnly,
		KcalPer100g: kcal,
	}

	return Outcome{Handled: true, Decision: &Decision{
		Stage:             entities.StageZEnergyOnly,
		Entry:             entry,
		Macros:            nil,
		AtwaterOK:         true,
		StagePenalty:      -0.50,
		StageZCategory:    string(category),
		StageZKcalClamped: clamped,
	}}
}
