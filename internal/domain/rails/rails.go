// Package rails implements the soft per-class mass clamp of spec.md §4.6.
package rails

import (
	"fmt"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// Result is the (possibly) clamped mass plus its provenance tag.
type Result struct {
	MassG   float64
	Applied bool
	Tag     string
}

// Apply clamps massG toward the class's (lo, hi) rail by half the distance
// whenever confidence is below 0.75, per spec.md §4.6. Exactly at lo or hi
// is a no-op (spec.md §8 boundary behavior).
func Apply(store *config.Store, class entities.CoreClass, massG, confidence float64) Result {
	if !store.Flags.MassSoftClamps || confidence >= 0.75 {
		return Result{MassG: massG}
	}
	rail, ok := store.MassRails[class]
	if !ok {
		return Result{MassG: massG}
	}

	switch {
	case massG < rail.Lo:
		adjusted := massG + 0.5*(rail.Lo-massG)
		return Result{MassG: adjusted, Applied: true, Tag: fmt.Sprintf("mass_clamp_lo_%.1fg->%.1fg", massG, adjusted)}
	case massG > rail.Hi:
		adjusted := massG - 0.5*(massG-rail.Hi)
		return Result{MassG: adjusted, Applied: true, Tag: fmt.Sprintf("mass_clamp_hi_%.1fg->%.1fg", massG, adjusted)}
	default:
		return Result{MassG: massG}
	}
}
