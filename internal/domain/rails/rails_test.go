package rails

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
)

func TestApplyClampsLowWhenConfidenceLow(t *testing.T) {
	store := config.NewStore()

	result := Apply(store, "bacon_strip", 3.0, 0.5)

	assert.True(t, result.Applied)
	assert.InDelta(t, 5.0, result.MassG, 1e-9) // 3 + 0.5*(7-3) = 5
	assert.Contains(t, result.Tag, "mass_clamp_lo")
}

func TestApplyClampsHighWhenConfidenceLow(t *testing.T) {
	store := config.NewStore()

	result := Apply(store, "bacon_strip", 20.0, 0.5)

	assert.True(t, result.Applied)
	assert.InDelta(t, 16.5, result.MassG, 1e-9) // 20 - 0.5*(20-13) = 16.5
	assert.Contains(t, result.Tag, "mass_clamp_hi")
}

func TestApplyNoopWhenConfidenceAtOrAboveGate(t *testing.T) {
	store := config.NewStore()

	result := Apply(store, "bacon_strip", 3.0, 0.75)

	assert.False(t, result.Applied)
	assert.Equal(t, 3.0, result.MassG)
}

func TestApplyNoopExactlyAtRailBounds(t *testing.T) {
	store := config.NewStore()

	lo := Apply(store, "bacon_strip", 7.0, 0.5)
	assert.False(t, lo.Applied, "exactly at lo must be a no-op")
	assert.Equal(t, 7.0, lo.MassG)

	hi := Apply(store, "bacon_strip", 13.0, 0.5)
	assert.False(t, hi.Applied, "exactly at hi must be a no-op")
	assert.Equal(t, 13.0, hi.MassG)
}

func TestApplyNoopWithoutRailForClass(t *testing.T) {
	store := config.NewStore()

	result := Apply(store, "grape", 3.0, 0.1)

	assert.False(t, result.Applied)
	assert.Equal(t, 3.0, result.MassG)
}

func TestApplyNoopWhenFlagDisabled(t *testing.T) {
	store := config.NewStore()
	store.Flags.MassSoftClamps = false

	result := Apply(store, "bacon_strip", 3.0, 0.1)

	assert.False(t, result.Applied)
	assert.Equal(t, 3.0, result.MassG)
}
