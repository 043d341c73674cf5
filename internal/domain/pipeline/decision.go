package pipeline

import (
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/conversion"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// Decision is a stage's terminal answer: enough for resultbuilder to scale,
// score, and assert — but not itself an AlignmentResult. Keeping the two
// separate means resultbuilder.Build is the single place an AlignmentResult
// is constructed (spec.md §4.7, §9 "Telemetry as a contract").
type Decision struct {
	Stage entities.AlignmentStage
	Entry entities.CatalogEntry

	// Macros is the per-100g macro set to scale, already converted if this
	// stage applied the conversion engine. Nil for Stage Z (macro-less).
	Macros *conversion.Macros

	ConversionApplied bool
	ConversionSteps   []string
	EnergyClamped     bool
	AtwaterOK         bool

	StagePenalty float64
	SparseAccept bool

	Stage1bScore *float64

	ProxyUsed     bool
	ProxyFormula  string

	StageZCategory     string
	StageZKcalClamped  bool
}
