// Package config holds the engine's read-only, process-lifetime config
// stores: class synonyms, cooking-conversion profiles, energy plausibility
// bands, disallowed-alias lists, sodium gate thresholds, mass rails, the
// Stage-5 whitelist, and Stage-Z category rules. All of it is data, built
// once by NewStore (only Flags are then replaced from
// internal/infrastructure/config) and never mutated afterward.
package config

import "github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"

// Flags is the configuration surface enumerated in spec.md §6.
type Flags struct {
	VisionMassOnly               bool `yaml:"vision_mass_only"`
	PreferRawFoundationConvert   bool `yaml:"prefer_raw_foundation_convert"`
	EnableProxyAlignment         bool `yaml:"enable_proxy_alignment"`
	StageZBrandedFallback        bool `yaml:"stagez_branded_fallback"`
	StrictCookedExactGate        bool `yaml:"strict_cooked_exact_gate"`
	MassSoftClamps               bool `yaml:"mass_soft_clamps"`
	StarchAtwaterProteinFloor    bool `yaml:"starch_atwater_protein_floor"`
	BrandedTwoTokenFloor25       bool `yaml:"branded_two_token_floor_25"`
	AcceptSparseStage2OnFloor    bool `yaml:"accept_sparse_stage2_on_floor"`
	UseColorTokensForProduce     bool `yaml:"use_color_tokens_for_produce"`
}

// DefaultFlags mirrors the defaults spelled out in spec.md §6 — all true.
func DefaultFlags() Flags {
	return Flags{
		VisionMassOnly:             true,
		PreferRawFoundationConvert: true,
		EnableProxyAlignment:       true,
		StageZBrandedFallback:      true,
		StrictCookedExactGate:      true,
		MassSoftClamps:             true,
		StarchAtwaterProteinFloor:  true,
		BrandedTwoTokenFloor25:     true,
		AcceptSparseStage2OnFloor:  true,
		UseColorTokensForProduce:   true,
	}
}

// Band is an inclusive-bounds kcal/100g range.
type Band struct {
	MinKcal100g float64 `yaml:"min_kcal_100g"`
	MaxKcal100g float64 `yaml:"max_kcal_100g"`
}

// Contains reports whether v lies within the band widened by tolerance on
// each side (e.g. tolerance=0.2 for the classifier's "band × 1.2" rule).
func (b Band) Contains(v, tolerance float64) bool {
	lo := b.MinKcal100g * (1 - tolerance)
	hi := b.MaxKcal100g * (1 + tolerance)
	return v >= lo && v <= hi
}

// Rail is a soft per-class mass bound (spec.md §4.6).
type Rail struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// ConversionProfile is the per-(core_class, method) cooking transformation
// (spec.md §3 ConversionProfile).
type ConversionProfile struct {
	HydrationFactor   *float64           `yaml:"hydration_factor,omitempty"`
	ShrinkageFraction *float64           `yaml:"shrinkage_fraction,omitempty"`
	FatRenderFraction *float64           `yaml:"fat_render_fraction,omitempty"`
	OilUptakeG        *float64           `yaml:"oil_uptake_g,omitempty"`
	Retention         map[string]float64 `yaml:"retention,omitempty"` // protein/carbs/fat -> factor
	EnergyBand        *Band              `yaml:"energy_band,omitempty"`
}

// classMethodKey joins a core class and a method into a map key.
func classMethodKey(class entities.CoreClass, method string) string {
	return string(class) + "::" + method
}
