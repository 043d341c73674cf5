// Package conversion implements the stackable cooking-conversion kernels of
// spec.md §4.5: hydration, shrinkage, fat rendering, oil uptake, macro
// retention, energy clamp, and the Atwater check.
package conversion

import (
	"fmt"
	"math"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// Macros is a mutable per-100g macro set the kernels transform in place.
type Macros struct {
	KcalPer100g float64
	ProteinG    float64
	CarbsG      float64
	FatG        float64
}

// Result carries the converted macros plus the provenance trail and the two
// booleans the telemetry contract requires (spec.md §3).
type Result struct {
	Macros        Macros
	Steps         []string
	EnergyClamped bool
	AtwaterOK     bool
}

// Convert applies the profile's kernels, in the fixed order spec.md §4.5
// prescribes, to a raw entry's per-100g macros for the resolved method.
func Convert(store *config.Store, class entities.CoreClass, method string, raw Macros) Result {
	profile, ok := store.ConversionProfileFor(class, method)
	if !ok {
		return Result{Macros: raw, AtwaterOK: true}
	}

	m := raw
	var steps []string

	if profile.HydrationFactor != nil && *profile.HydrationFactor > 0 {
		factor := *profile.HydrationFactor
		m.KcalPer100g /= factor
		m.ProteinG /= factor
		m.CarbsG /= factor
		m.FatG /= factor
		steps = append(steps, fmt.Sprintf("hydration_x%.2f", factor))
	}

	if profile.ShrinkageFraction != nil && *profile.ShrinkageFraction > 0 {
		frac := *profile.ShrinkageFraction
		divisor := 1 - frac
		m.KcalPer100g /= divisor
		m.ProteinG /= divisor
		m.CarbsG /= divisor
		m.FatG /= divisor
		steps = append(steps, fmt.Sprintf("shrinkage_%.0f%%", frac*100))
	}

	if profile.FatRenderFraction != nil && *profile.FatRenderFraction > 0 {
		frac := *profile.FatRenderFraction
		renderedFat := m.FatG * frac
		m.FatG -= renderedFat
		m.KcalPer100g -= renderedFat * 9
		steps = append(steps, fmt.Sprintf("fat_render_%.0f%%", frac*100))
	}

	if profile.OilUptakeG != nil && *profile.OilUptakeG > 0 {
		uptake := *profile.OilUptakeG
		m.FatG += uptake
		m.KcalPer100g += 9 * uptake
		steps = append(steps, fmt.Sprintf("oil_uptake_%.1fg", uptake))
	}

	if len(profile.Retention) > 0 {
		if r, ok := profile.Retention["protein"]; ok {
			m.ProteinG *= r
		}
		if r, ok := profile.Retention["carbs"]; ok {
			m.CarbsG *= r
		}
		if r, ok := profile.Retention["fat"]; ok {
			m.FatG *= r
		}
	}

	energyClamped := false
	if band, ok := store.EnergyBandFor(class, method); ok {
		if m.KcalPer100g < band.MinKcal100g {
			m.KcalPer100g = band.MinKcal100g
			energyClamped = true
		} else if m.KcalPer100g > band.MaxKcal100g {
			m.KcalPer100g = band.MaxKcal100g
			energyClamped = true
		}
	}

	atwaterOK := true
	if !(store.Flags.StarchAtwaterProteinFloor && m.ProteinG < 12) {
		atwater := 4*m.ProteinG + 4*m.CarbsG + 9*m.FatG
		if atwater > 0 && math.Abs(m.KcalPer100g-atwater)/atwater > 0.12 {
			atwaterOK = false
			m.KcalPer100g = 0.7*atwater + 0.3*m.KcalPer100g
		}
	}

	return Result{
		Macros:        m,
		Steps:         steps,
		EnergyClamped: energyClamped,
		AtwaterOK:     atwaterOK,
	}
}

// ScaleThenMass exists only to let tests assert the
// idempotence law of spec.md §8: converting at mass_g=100 then scaling
// equals converting then scaling directly, within 1e-6.
func ScaleThenMass(m Macros, massG float64) Macros {
	factor := massG / 100.0
	return Macros{
		KcalPer100g: m.KcalPer100g * factor,
		ProteinG:    m.ProteinG * factor,
		CarbsG:      m.CarbsG * factor,
		FatG:        m.FatG * factor,
	}
}
