package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

func TestClassForPrefersModifierCombination(t *testing.T) {
	store := NewStore()

	assert.Equal(t, entities.CoreClass("egg_white"), store.ClassFor("egg", []string{"white"}))
	assert.Equal(t, entities.CoreClass("egg_whole"), store.ClassFor("egg", nil))
}

func TestClassForFallsBackToSnakeCase(t *testing.T) {
	store := NewStore()

	assert.Equal(t, entities.CoreClass("some_unseen_food"), store.ClassFor("Some Unseen Food", nil))
}

func TestEnergyBandForFallsBackToCategory(t *testing.T) {
	store := NewStore()

	// chicken_breast::grilled has its own band.
	direct, ok := store.EnergyBandFor("chicken_breast", "grilled")
	assert.True(t, ok)
	assert.Equal(t, Band{MinKcal100g: 160, MaxKcal100g: 220}, direct)

	// chicken_breast::roasted has no specific band; falls back to the
	// meat_poultry category band.
	fallback, ok := store.EnergyBandFor("chicken_breast", "roasted")
	assert.True(t, ok)
	assert.Equal(t, Band{MinKcal100g: 100, MaxKcal100g: 300}, fallback)
}

func TestPlausibilityBandForFallsBackToCategory(t *testing.T) {
	store := NewStore()

	direct, ok := store.PlausibilityBandFor("chicken_breast")
	assert.True(t, ok)
	assert.Equal(t, Band{MinKcal100g: 110, MaxKcal100g: 280}, direct)

	fallback, ok := store.PlausibilityBandFor("bell_pepper_green")
	assert.True(t, ok)
	assert.Equal(t, store.CategoryPlausibilityBands[entities.CategoryVegetable], fallback)
}

func TestFirstAvailableMethodIsStable(t *testing.T) {
	store := NewStore()

	method, ok := store.FirstAvailableMethod("chicken_breast")
	assert.True(t, ok)
	assert.Equal(t, "grilled", method, "grilled sorts before roasted")
}

func TestHasConversionProfile(t *testing.T) {
	store := NewStore()

	assert.True(t, store.HasConversionProfile("chicken_breast", "grilled"))
	assert.False(t, store.HasConversionProfile("chicken_breast", "smoked"))
}

func TestExpandTokensIncludesSynonyms(t *testing.T) {
	store := NewStore()

	tokens := store.ExpandTokens("bell_pepper_green")
	assert.Contains(t, tokens, "bell")
	assert.Contains(t, tokens, "pepper")
	assert.Contains(t, tokens, "green")
	assert.Contains(t, tokens, "capsicum")
}

func TestBandContainsBoundary(t *testing.T) {
	band := Band{MinKcal100g: 100, MaxKcal100g: 200}

	assert.True(t, band.Contains(240, 0.2), "exactly max*1.2 must be inclusive")
	assert.False(t, band.Contains(240.01, 0.2))
	assert.True(t, band.Contains(80, 0.2), "exactly min*0.8 must be inclusive")
	assert.False(t, band.Contains(79.99, 0.2))
}
