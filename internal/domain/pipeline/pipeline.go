// Package pipeline implements the six-stage alignment state machine of
// spec.md §4.4: Stage 1 → Stage 1b → Stage 2 → Stage 3/4 → Stage 5 → Stage Z
// → Stage 0. Each stage either produces a result (terminal) or declines.
package pipeline

import (
	"context"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/classify"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// Input is everything a stage needs: the prediction, its resolved core
// class and method, the filtered candidate pool, and the config store.
type Input struct {
	Store      *config.Store
	Prediction entities.Prediction
	Class      entities.CoreClass
	Method     entities.MethodResolution
	Pool       classify.Pool
	Gates      classify.GateCounters

	NormalizedQuery string
	VariantsTried   int

	// Stage1Blocked records whether the pre-gate suppressed Stage 1 because
	// a raw Foundation entry exists and conversion is viable.
	Stage1Blocked bool

	// Stage5Lookups holds auxiliary catalog search results the engine
	// fetched ahead of time for whitelisted classes' composite-blend
	// components and name_lookup query, keyed by the query string used.
	// Populated only when Class is Stage-5 eligible; the pipeline itself
	// performs no I/O (spec.md §5's only suspension points are catalog
	// searches at the engine boundary).
	Stage5Lookups map[string][]entities.CatalogEntry
}

// Outcome is what a stage produces: either a terminal Decision, or a
// decline signal letting the pipeline advance to the next stage.
type Outcome struct {
	Decision *Decision
	Handled  bool
}

// stage is the closed variant from spec.md's design notes: a single
// evaluate(state) -> Result | decline function per stage.
type stage interface {
	name() string
	evaluate(ctx context.Context, in Input) Outcome
}

// Run walks the stage cascade in strict order and returns the first
// terminal decision. The pre-gate of spec.md §4.4 is applied by the caller
// (engine package) before Run is invoked, by setting in.Stage1Blocked.
func Run(ctx context.Context, in Input) *Decision {
	stages := []stage{
		stage1{}, stage1b{}, stage2{}, stage3{}, stage4{}, stage5{}, stageZ{}, stage0{},
	}
	for _, st := range stages {
		if st.name() == "stage1" && in.Stage1Blocked {
			continue
		}
		if out := st.evaluate(ctx, in); out.Handled {
			return out.Decision
		}
	}
	// Unreachable: stage0 always handles. Defensive fallback keeps Run total.
	return stage0{}.evaluate(ctx, in).Decision
}
