package pipeline

import (
	"context"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

type stage0 struct{}

func (stage0) name() string { return "stage0" }

// evaluate implements Stage 0 — No candidates (spec.md §4.4): the terminal
// fallback when every prior stage declined. Always handles; the method
// resolution carried on Input.Method still applies, since method must never
// be reported as "unknown" even when nothing was aligned.
func (stage0) evaluate(_ context.Context, in Input) Outcome {
	entry := entities.CatalogEntry{
		Name: string(in.Class) + " (no candidates)",
	}
	return Outcome{Handled: true, Decision: &Decision{
		Stage:        entities.Stage0NoCandidates,
		Entry:        entry,
		Macros:       nil,
		AtwaterOK:    true,
		StagePenalty: -0.80,
	}}
}
