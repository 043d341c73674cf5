package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcePriorityOrdering(t *testing.T) {
	assert.Greater(t, SourceFoundation.SourcePriority(), SourceSRLegacy.SourcePriority())
	assert.Greater(t, SourceSRLegacy.SourcePriority(), SourceBranded.SourcePriority())
	assert.Greater(t, SourceBranded.SourcePriority(), Source("unknown").SourcePriority())
}

func TestIsAuthoritative(t *testing.T) {
	assert.True(t, SourceFoundation.IsAuthoritative())
	assert.True(t, SourceSRLegacy.IsAuthoritative())
	assert.False(t, SourceBranded.IsAuthoritative())
	assert.False(t, SourceStageZProxy.IsAuthoritative())
}

func TestIsMacroNull(t *testing.T) {
	assert.True(t, CatalogEntry{Source: SourceStageZProxy}.IsMacroNull())
	assert.False(t, CatalogEntry{Source: SourceFoundation}.IsMacroNull())
}

func TestCategoryStageZEligible(t *testing.T) {
	eligible := []Category{CategoryMeatPoultry, CategoryFishSeafood, CategoryStarchGrain, CategoryEgg}
	for _, c := range eligible {
		assert.Truef(t, c.StageZEligible(), "%q should be stageZ-eligible", c)
	}
	ineligible := []Category{CategoryFruit, CategoryVegetable, CategoryNutsSeeds, CategoryDairy, CategoryUnknown}
	for _, c := range ineligible {
		assert.Falsef(t, c.StageZEligible(), "%q must not be stageZ-eligible", c)
	}
}
