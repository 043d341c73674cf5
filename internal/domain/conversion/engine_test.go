package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
)

func TestConvertChickenBreastGrilled(t *testing.T) {
	store := config.NewStore()
	raw := Macros{KcalPer100g: 120, ProteinG: 22.5, CarbsG: 0, FatG: 2.6}

	result := Convert(store, "chicken_breast", "grilled", raw)

	require.Len(t, result.Steps, 2)
	assert.Contains(t, result.Steps[0], "shrinkage_29%")
	assert.Contains(t, result.Steps[1], "fat_render_5%")
	assert.InDelta(t, 167.37, result.Macros.KcalPer100g, 0.1)
	assert.InDelta(t, 30.74, result.Macros.ProteinG, 0.1)
	assert.InDelta(t, 3.13, result.Macros.FatG, 0.05)
	assert.False(t, result.EnergyClamped, "167 kcal is inside the [160,220] clamp band")
	assert.True(t, result.AtwaterOK)
}

func TestConvertWithoutProfileIsPassthrough(t *testing.T) {
	store := config.NewStore()
	raw := Macros{KcalPer100g: 100, ProteinG: 10, CarbsG: 5, FatG: 2}

	result := Convert(store, "unknown_class", "raw", raw)

	assert.Equal(t, raw, result.Macros)
	assert.Empty(t, result.Steps)
	assert.False(t, result.EnergyClamped)
	assert.True(t, result.AtwaterOK)
}

func TestConvertHydrationKernel(t *testing.T) {
	store := config.NewStore()
	raw := Macros{KcalPer100g: 365, ProteinG: 7.1, CarbsG: 80, FatG: 0.7}

	result := Convert(store, "rice_white", "boiled", raw)

	require.Len(t, result.Steps, 1)
	assert.Contains(t, result.Steps[0], "hydration_x2.80")
	assert.InDelta(t, 130.36, result.Macros.KcalPer100g, 0.1)
}

func TestConvertEnergyClampAppliesAtBand(t *testing.T) {
	store := config.NewStore()
	// An implausibly energy-dense raw input should clamp to the
	// hash_browns conversion profile's configured max (200 kcal/100g).
	raw := Macros{KcalPer100g: 500, ProteinG: 2, CarbsG: 17.5, FatG: 0.1}

	result := Convert(store, "potato_russet", "hash_browns", raw)

	assert.True(t, result.EnergyClamped)
	assert.Equal(t, 200.0, result.Macros.KcalPer100g)
}

func TestConvertOilUptakeKernel(t *testing.T) {
	store := config.NewStore()
	raw := Macros{KcalPer100g: 77, ProteinG: 2.0, CarbsG: 17.5, FatG: 0.1}

	result := Convert(store, "potato_russet", "hash_browns", raw)

	found := false
	for _, s := range result.Steps {
		if s == "oil_uptake_11.5g" {
			found = true
		}
	}
	assert.True(t, found, "expected an oil_uptake step, got %v", result.Steps)
}

func TestScaleThenMassIdempotentWithMassThenScale(t *testing.T) {
	m := Macros{KcalPer100g: 167.37, ProteinG: 30.74, CarbsG: 0, FatG: 3.13}
	massG := 150.0

	scaled := ScaleThenMass(m, massG)

	factor := massG / 100.0
	assert.InDelta(t, m.KcalPer100g*factor, scaled.KcalPer100g, 1e-6)
	assert.InDelta(t, m.ProteinG*factor, scaled.ProteinG, 1e-6)
	assert.InDelta(t, m.FatG*factor, scaled.FatG, 1e-6)
}

func TestConvertAtwaterAdjustmentWhenFarOff(t *testing.T) {
	store := config.NewStore()
	// 22.5g protein pushes past the starch protein-floor exemption (>=12g),
	// so the Atwater check runs; kcal is wildly inconsistent with 4/4/9.
	raw := Macros{KcalPer100g: 900, ProteinG: 22.5, CarbsG: 0, FatG: 2.6}

	result := Convert(store, "chicken_breast", "roasted", raw)

	assert.False(t, result.AtwaterOK)
}
