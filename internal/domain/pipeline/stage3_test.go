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

func TestStage3AcceptsMethodCompatibleBrandedEntry(t *testing.T) {
	store := config.NewStore()
	in := Input{
		Store:      store,
		Class:      "chicken_breast",
		Prediction: entities.Prediction{Name: "chicken breast", Form: entities.FormFried, MassG: 150},
		Method:     entities.MethodResolution{Method: "roasted_oven", Reason: entities.ReasonAlias},
		Pool: classify.Pool{
			Branded: []entities.CatalogEntry{
				{FDCID: 1010, Name: "Chicken breast, breaded, roasted_oven, branded", Source: entities.SourceBranded, Form: entities.Form("roasted_oven"), KcalPer100g: 260, ProteinPer100: 17, CarbsPer100: 14, FatPer100: 15},
			},
		},
	}

	out := stage3{}.evaluate(context.Background(), in)

	require.True(t, out.Handled)
	assert.Equal(t, entities.Stage3BrandedCooked, out.Decision.Stage)
	assert.Equal(t, -0.20, out.Decision.StagePenalty)
}

func TestStage3DeclinesWhenMethodIncompatible(t *testing.T) {
	store := config.NewStore()
	in := Input{
		Store:      store,
		Class:      "chicken_breast",
		Prediction: entities.Prediction{Name: "chicken breast", Form: entities.FormBoiled, MassG: 150},
		Method:     entities.MethodResolution{Method: "boiled"},
		Pool: classify.Pool{
			Branded: []entities.CatalogEntry{
				{FDCID: 1010, Name: "Chicken breast, breaded, grilled, branded", Source: entities.SourceBranded, Form: entities.FormGrilled, KcalPer100g: 260},
			},
		},
	}

	out := stage3{}.evaluate(context.Background(), in)

	assert.False(t, out.Handled)
}

func TestStage3DeclinesOnLowTokenOverlap(t *testing.T) {
	store := config.NewStore()
	in := Input{
		Store:      store,
		Class:      "chicken_breast",
		Prediction: entities.Prediction{Name: "chicken breast", Form: entities.FormGrilled, MassG: 150},
		Method:     entities.MethodResolution{Method: "grilled"},
		Pool: classify.Pool{
			Branded: []entities.CatalogEntry{
				{FDCID: 9999, Name: "Generic grilled product", Source: entities.SourceBranded, Form: entities.FormGrilled, KcalPer100g: 200},
			},
		},
	}

	out := stage3{}.evaluate(context.Background(), in)

	assert.False(t, out.Handled)
}
