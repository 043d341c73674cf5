package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

func f(v float64) *float64 { return &v }

func TestPartitionBucketsBySourceAndForm(t *testing.T) {
	store := config.NewStore()
	candidates := []entities.CatalogEntry{
		{FDCID: 1, Name: "Chicken, breast, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 120},
		{FDCID: 2, Name: "Chicken, breast, grilled", Source: entities.SourceFoundation, Form: entities.FormGrilled, KcalPer100g: 165},
		{FDCID: 3, Name: "Chicken breast, branded", Source: entities.SourceBranded, Form: entities.FormGrilled, KcalPer100g: 170},
	}
	pred := entities.Prediction{Name: "chicken breast", Form: entities.FormGrilled}

	pool, gates := Partition(store, "chicken_breast", pred, candidates)

	assert.Len(t, pool.RawFoundation, 1)
	assert.Len(t, pool.CookedFoundationSR, 1)
	assert.Len(t, pool.Branded, 1)
	assert.Equal(t, 3, pool.Total())
	assert.Zero(t, gates.SodiumGateBlocks)
	assert.Zero(t, gates.NegativeVocabBlocks)
}

func TestRejectDisallowedAlias(t *testing.T) {
	store := config.NewStore()
	candidates := []entities.CatalogEntry{
		{FDCID: 1, Name: "Egg, white, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 52},
		{FDCID: 2, Name: "Egg, yolk, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 322},
	}
	pred := entities.Prediction{Name: "egg whites", Form: entities.FormRaw}

	pool, gates := Partition(store, "egg_white", pred, candidates)

	require.Len(t, pool.RawFoundation, 1)
	assert.Equal(t, int64(1), pool.RawFoundation[0].FDCID)
	assert.Equal(t, 1, gates.NegativeVocabBlocks)
}

func TestRejectSodiumGate(t *testing.T) {
	store := config.NewStore()
	candidates := []entities.CatalogEntry{
		{FDCID: 1, Name: "Pickles, cucumber, sour", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 11, SodiumMgPer100: f(1208)},
		{FDCID: 2, Name: "Pickles, cucumber, low sodium", Source: entities.SourceBranded, Form: entities.FormRaw, KcalPer100g: 12, SodiumMgPer100: f(45)},
	}
	pred := entities.Prediction{Name: "pickles", Form: entities.FormRaw}

	pool, gates := Partition(store, "pickles", pred, candidates)

	assert.Empty(t, pool.Branded)
	assert.Equal(t, 1, gates.SodiumGateBlocks)
}

func TestSodiumGateCannotRejectWithoutData(t *testing.T) {
	store := config.NewStore()
	candidates := []entities.CatalogEntry{
		{FDCID: 1, Name: "Pickles, cucumber, sour", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 11},
	}
	pred := entities.Prediction{Name: "pickles", Form: entities.FormRaw}

	pool, gates := Partition(store, "pickles", pred, candidates)

	assert.Len(t, pool.RawFoundation, 1)
	assert.Zero(t, gates.SodiumGateBlocks)
}

func TestRejectColorSpeciesMismatch(t *testing.T) {
	store := config.NewStore()
	candidates := []entities.CatalogEntry{
		{FDCID: 1, Name: "Bell pepper, green, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 20},
		{FDCID: 2, Name: "Bell pepper, red, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 31},
	}
	pred := entities.Prediction{Name: "bell pepper", Form: entities.FormRaw, Modifiers: []string{"green"}}

	pool, _ := Partition(store, "bell_pepper_green", pred, candidates)

	require.Len(t, pool.RawFoundation, 1)
	assert.Equal(t, int64(1), pool.RawFoundation[0].FDCID)
}

func TestRejectFormMismatchOnlyAppliesWhenPredictedRaw(t *testing.T) {
	store := config.NewStore()
	candidates := []entities.CatalogEntry{
		{FDCID: 1, Name: "Bell pepper, breaded, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 40},
	}

	rawPred := entities.Prediction{Name: "bell pepper", Form: entities.FormRaw}
	pool, _ := Partition(store, "bell_pepper_green", rawPred, candidates)
	assert.Empty(t, pool.RawFoundation, "a 'breaded' raw-tagged entry should be rejected when the prediction itself is raw")

	cookedPred := entities.Prediction{Name: "bell pepper", Form: entities.FormGrilled}
	pool2, _ := Partition(store, "bell_pepper_green", cookedPred, candidates)
	assert.Len(t, pool2.RawFoundation, 1, "the form-mismatch gate only fires for raw predictions")
}

func TestRejectPlausibilityBoundary(t *testing.T) {
	store := config.NewStore()
	pred := entities.Prediction{Name: "chicken breast", Form: entities.FormRaw}
	// chicken_breast band is [110, 280]; ×1.2 widens the max to 336.
	atBoundary := []entities.CatalogEntry{
		{FDCID: 1, Name: "Chicken, breast, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 336},
	}
	pool, _ := Partition(store, "chicken_breast", pred, atBoundary)
	assert.Len(t, pool.RawFoundation, 1, "exactly max*1.2 must be accepted (inclusive boundary)")

	overBoundary := []entities.CatalogEntry{
		{FDCID: 2, Name: "Chicken, breast, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 336.01},
	}
	pool2, _ := Partition(store, "chicken_breast", pred, overBoundary)
	assert.Empty(t, pool2.RawFoundation, "above max*1.2 must be rejected")
}
