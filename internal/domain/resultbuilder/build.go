// Package resultbuilder is the single place an entities.AlignmentResult is
// constructed (spec.md §9 "Telemetry as a contract"). It scales the stage
// pipeline's Decision to the prediction's mass, computes confidence, fills
// in the full Telemetry record, and runs the §4.7 assertion block before
// handing back a result — or an *entities.InvariantViolation if the
// assertions fail.
package resultbuilder

import (
	"strconv"
	"strings"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/classify"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/pipeline"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/rails"
)

// baseConfidence is the starting point before any penalty or bonus is
// applied (spec.md §4.7's confidence formula).
const baseConfidence = 0.85

// sparseAcceptPenalty is subtracted once when Stage 2 accepted on its
// lowered floor (spec.md §4.4).
const sparseAcceptPenalty = -0.10

// energyBonusWeight scales the [0,1] energy-similarity term into the
// confidence formula's bonus component.
const energyBonusWeight = 0.10

// Build scales decision.Macros by massResult.MassG, derives confidence, and
// assembles the telemetry-bearing AlignmentResult. It returns
// *entities.InvariantViolation if any §4.7 assertion fails.
func Build(in pipeline.Input, decision *pipeline.Decision, massResult rails.Result, gates classify.GateCounters, massClampsApplied int) (*entities.AlignmentResult, error) {
	perHundred := entities.NutrientSet{}
	scaled := entities.ScaledNutrients{}

	if decision.Macros != nil {
		perHundred = entities.NutrientSet{
			KcalPer100g:   ptr(round3(decision.Macros.KcalPer100g)),
			ProteinPer100: ptr(round3(decision.Macros.ProteinG)),
			CarbsPer100:   ptr(round3(decision.Macros.CarbsG)),
			FatPer100:     ptr(round3(decision.Macros.FatG)),
		}
		factor := massResult.MassG / 100.0
		scaled = entities.ScaledNutrients{
			Calories: ptr(round3(decision.Macros.KcalPer100g * factor)),
			ProteinG: ptr(round3(decision.Macros.ProteinG * factor)),
			CarbsG:   ptr(round3(decision.Macros.CarbsG * factor)),
			FatG:     ptr(round3(decision.Macros.FatG * factor)),
		}
	} else if decision.Stage == entities.StageZEnergyOnly {
		// Energy-only proxy: kcal is known, macros are never estimated.
		factor := massResult.MassG / 100.0
		perHundred.KcalPer100g = ptr(round3(decision.Entry.KcalPer100g))
		scaled.Calories = ptr(round3(decision.Entry.KcalPer100g * factor))
	}

	confidence := clampConfidence(baseConfidence +
		in.Method.ConfidencePenalty +
		decision.StagePenalty +
		sparseBonus(decision) +
		energyBonus(in, decision))

	telemetry := entities.Telemetry{
		AlignmentStage: decision.Stage,

		Method:         in.Method.Method,
		MethodReason:   in.Method.Reason,
		MethodInferred: in.Method.Inferred(),

		ConversionApplied: decision.ConversionApplied,
		ConversionSteps:   decision.ConversionSteps,
		EnergyClamped:     decision.EnergyClamped,
		AtwaterOK:         decision.AtwaterOK,

		CandidatePoolTotal:          in.Pool.Total(),
		CandidatePoolRawFoundation:  len(in.Pool.RawFoundation),
		CandidatePoolCookedSRLegacy: len(in.Pool.CookedFoundationSR),
		CandidatePoolBranded:        len(in.Pool.Branded),

		SearchNormalizedQuery: in.NormalizedQuery,
		SearchVariantsTried:   in.VariantsTried,

		Stage1bScore:       decision.Stage1bScore,
		ProxyUsed:          decision.ProxyUsed,
		ProxyFormula:       decision.ProxyFormula,
		StageZCategory:     decision.StageZCategory,
		StageZKcalClamped:  decision.StageZKcalClamped,

		SodiumGateBlocks:                 gates.SodiumGateBlocks,
		SodiumGatePasses:                 gates.SodiumGatePasses,
		NegativeVocabBlocks:              gates.NegativeVocabBlocks,
		Stage1BlockedRawFoundationExists: in.Stage1Blocked,
		MassClampsApplied:                massClampsApplied,

		SparseAccept: decision.SparseAccept,
	}

	if err := checkInvariants(telemetry, decision, in.Store); err != nil {
		return nil, err
	}

	return &entities.AlignmentResult{
		FDCID:           decision.Entry.FDCID,
		FDCName:         decision.Entry.Name,
		PerHundredGrams: perHundred,
		Scaled:          scaled,
		Confidence:      confidence,
		Telemetry:       telemetry,
	}, nil
}

// checkInvariants runs the §4.7 assertion block. Telemetry.Valid covers the
// two universal invariants; the rest are specific enough to this package's
// inputs that they live here instead.
func checkInvariants(t entities.Telemetry, d *pipeline.Decision, store *config.Store) error {
	if err := t.Valid(); err != nil {
		return err
	}
	if t.ConversionApplied && !(d.Entry.Source == entities.SourceFoundation || d.Entry.Source == entities.SourceSRLegacy || d.Entry.Source == "") {
		return entities.NewInvariantViolation("conversion_applied requires a foundation/sr_legacy source, got %q", d.Entry.Source)
	}
	if d.Entry.Source == entities.SourceStageZProxy && t.AlignmentStage != entities.StageZEnergyOnly {
		return entities.NewInvariantViolation("stagez_proxy source requires alignment_stage stageZ_energy_only, got %q", t.AlignmentStage)
	}
	if t.AlignmentStage == entities.Stage5ProxyAlignment {
		if !proxyFormulaMatchesKeyword(t.ProxyFormula, store.Stage5WhitelistKeywords) {
			return entities.NewInvariantViolation("stage5 proxy_formula %q names no STAGE5_WHITELIST_KEYWORDS entry", t.ProxyFormula)
		}
	}
	return nil
}

// proxyFormulaMatchesKeyword reports whether formula names at least one of
// the catalog's Stage-5 whitelist keywords (spec.md §4.7's invariant), not
// merely one of the three strategy names.
func proxyFormulaMatchesKeyword(formula string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(formula, k) {
			return true
		}
	}
	return false
}

func sparseBonus(d *pipeline.Decision) float64 {
	if d.SparseAccept {
		return sparseAcceptPenalty
	}
	return 0
}

// energyBonus rewards decisions whose chosen entry's energy landed close to
// the predicted reference, using the same bandwidth as the scoring package.
// It compares against the post-conversion macros when conversion produced
// them, since that's the energy the decision actually settled on — the raw
// candidate entry's kcal is pre-conversion and can differ widely (e.g. raw
// vs. cooked-and-rendered) from what was ultimately reported.
func energyBonus(in pipeline.Input, d *pipeline.Decision) float64 {
	actual := d.Entry.KcalPer100g
	if d.Macros != nil {
		actual = d.Macros.KcalPer100g
	}
	if actual == 0 {
		return 0
	}
	predicted := pipeline.PredictedKcal(in)
	delta := predicted - actual
	if delta < 0 {
		delta = -delta
	}
	sim := 1 - delta/60
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim * energyBonusWeight
}

func clampConfidence(c float64) float64 {
	if c < 0.05 {
		return 0.05
	}
	if c > 0.99 {
		return 0.99
	}
	return c
}

func ptr(v float64) *float64 { return &v }

// round3 rounds v to 3 significant figures, half-to-even, for reporting;
// full precision is retained in the unrounded Decision/Macros upstream.
func round3(v float64) float64 {
	if v == 0 {
		return 0
	}
	s := strconv.FormatFloat(v, 'g', 3, 64)
	out, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return v
	}
	return out
}
