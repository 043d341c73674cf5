package pipeline

import (
	"context"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/conversion"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

type stage2 struct{}

func (stage2) name() string { return "stage2" }

// evaluate implements Stage 2 — Raw + Convert (spec.md §4.4).
func (stage2) evaluate(_ context.Context, in Input) Outcome {
	if len(in.Pool.RawFoundation) == 0 {
		return Outcome{}
	}

	classTokens := tokenSet(in.Store.ExpandTokens(in.Class))
	predicted := predictedKcal(in)

	type scored struct {
		entry   entities.CatalogEntry
		overlap int
		score   float64
	}
	var best *scored

	for _, c := range in.Pool.RawFoundation {
		overlap := tokenOverlap(classTokens, tokens(c.Name))
		score := float64(overlap) + energySimilarity(predicted, c.KcalPer100g)
		cand := scored{entry: c, overlap: overlap, score: score}
		if best == nil || better(cand.entry, best.entry, cand.score, best.score, predicted) {
			best = &cand
		}
	}

	if best == nil {
		return Outcome{}
	}

	sparse := false
	switch {
	case best.score >= 1.6:
		// normal accept
	case in.Store.Flags.AcceptSparseStage2OnFloor && in.Store.Flags.VisionMassOnly &&
		best.score >= 1.3 && best.overlap >= 1:
		sparse = true
	default:
		return Outcome{}
	}

	raw := macrosFromEntry(best.entry)
	converted := conversion.Convert(in.Store, in.Class, in.Method.Method, raw)

	// ConversionImplausible (spec.md §7): an Atwater failure combined with a
	// binding energy clamp means the kernel had to force the result into
	// band, and do so against a macro balance it couldn't reconcile. If that
	// combination would also project a near-zero confidence, the candidate is
	// not worth reporting — fall through and let Stage 3/4 try instead of
	// handling it here.
	if converted.EnergyClamped && !converted.AtwaterOK {
		sparseBonus := 0.0
		if sparse {
			sparseBonus = sparseAcceptConfidencePenalty
		}
		projected := baseConfidenceEstimate + in.Method.ConfidencePenalty + sparseBonus +
			energySimilarity(predicted, converted.Macros.KcalPer100g)*energyBonusWeightEstimate
		if projected < conversionImplausibleConfidenceFloor {
			return Outcome{}
		}
	}

	return Outcome{Handled: true, Decision: &Decision{
		Stage:             entities.Stage2RawConvert,
		Entry:             best.entry,
		Macros:            &converted.Macros,
		ConversionApplied: true,
		ConversionSteps:   converted.Steps,
		EnergyClamped:     converted.EnergyClamped,
		AtwaterOK:         converted.AtwaterOK,
		SparseAccept:      sparse,
	}}
}
