package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/classify"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

func TestStageZFiresForEligibleCategoryWithEmptyRawPool(t *testing.T) {
	store := config.NewStore()
	in := Input{
		Store: store,
		Class: "bacon_strip",
	}

	out := stageZ{}.evaluate(context.Background(), in)

	require.True(t, out.Handled)
	assert.Equal(t, entities.StageZEnergyOnly, out.Decision.Stage)
	assert.Equal(t, entities.SourceStageZProxy, out.Decision.Entry.Source)
	assert.Equal(t, entities.FormEnergyOnly, out.Decision.Entry.Form)
	assert.Nil(t, out.Decision.Macros)
	assert.Equal(t, -0.50, out.Decision.StagePenalty)
	assert.Equal(t, "meat_poultry", out.Decision.StageZCategory)
	assert.False(t, out.Decision.StageZKcalClamped, "bacon_strip's 200 kcal/100g midpoint sits inside the [100,300] category band")
}

func TestStageZClampsToCategoryBand(t *testing.T) {
	store := config.NewStore()
	// Overriding bacon_strip's plausibility band to a midpoint (450) above
	// the meat_poultry StageZ band's ceiling (300) exercises the clamp.
	store.PlausibilityBands["bacon_strip"] = config.Band{MinKcal100g: 400, MaxKcal100g: 500}

	in := Input{Store: store, Class: "bacon_strip"}

	out := stageZ{}.evaluate(context.Background(), in)

	require.True(t, out.Handled)
	assert.True(t, out.Decision.StageZKcalClamped)
	assert.Equal(t, 300.0, out.Decision.Entry.KcalPer100g)
}

func TestStageZDeclinesWhenCategoryNotEligible(t *testing.T) {
	store := config.NewStore()
	// grape's category (fruit) is not StageZEligible.
	in := Input{Store: store, Class: "grape"}

	out := stageZ{}.evaluate(context.Background(), in)

	assert.False(t, out.Handled)
}

func TestStageZDeclinesWhenRawFoundationPresent(t *testing.T) {
	store := config.NewStore()
	in := Input{
		Store: store,
		Class: "bacon_strip",
		Pool: classify.Pool{
			RawFoundation: []entities.CatalogEntry{
				{FDCID: 4001, Name: "Pork, bacon, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 220},
			},
		},
	}

	out := stageZ{}.evaluate(context.Background(), in)

	assert.False(t, out.Handled)
}

func TestStageZDeclinesWhenFlagDisabled(t *testing.T) {
	store := config.NewStore()
	store.Flags.StageZBrandedFallback = false
	in := Input{Store: store, Class: "bacon_strip"}

	out := stageZ{}.evaluate(context.Background(), in)

	assert.False(t, out.Handled)
}
