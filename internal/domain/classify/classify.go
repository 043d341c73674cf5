// Package classify partitions a raw candidate pool into {raw foundation,
// cooked foundation/legacy, branded} and applies the hard-reject filter
// chain from spec.md §4.2.
package classify

import (
	"strings"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// Pool is the disjoint partition of a candidate list, post-filtering.
type Pool struct {
	RawFoundation   []entities.CatalogEntry
	CookedFoundationSR []entities.CatalogEntry
	Branded         []entities.CatalogEntry
}

// Total is the combined surviving candidate count across all three buckets.
func (p Pool) Total() int {
	return len(p.RawFoundation) + len(p.CookedFoundationSR) + len(p.Branded)
}

// GateCounters tallies the hard-reject filter chain's rejections, mirroring
// the telemetry fields of the same name in spec.md §3.
type GateCounters struct {
	SodiumGateBlocks    int
	SodiumGatePasses    int
	NegativeVocabBlocks int
}

// Partition classifies and filters raw candidates for a single prediction.
// Each hard-reject predicate in spec.md §4.2 runs left-to-right and
// short-circuits on the first rejection. Only the disallowed-alias and
// sodium-gate rejections are counted in GateCounters; the other rejections
// have no counter.
func Partition(store *config.Store, class entities.CoreClass, pred entities.Prediction, candidates []entities.CatalogEntry) (Pool, GateCounters) {
	var pool Pool
	var gates GateCounters

	for _, c := range candidates {
		if rejected, counter := reject(store, class, pred, c); rejected {
			switch counter {
			case counterSodium:
				gates.SodiumGateBlocks++
			case counterNegativeVocab:
				gates.NegativeVocabBlocks++
			}
			continue
		}
		if isSodiumGated(store, class) {
			gates.SodiumGatePasses++
		}

		switch {
		case c.Source.IsAuthoritative() && c.Form == entities.FormRaw:
			pool.RawFoundation = append(pool.RawFoundation, c)
		case c.Source.IsAuthoritative() && c.Form != entities.FormRaw:
			pool.CookedFoundationSR = append(pool.CookedFoundationSR, c)
		case c.Source == entities.SourceBranded:
			pool.Branded = append(pool.Branded, c)
		}
	}

	return pool, gates
}

type rejectCounter int

const (
	counterNone rejectCounter = iota
	counterNegativeVocab
	counterSodium
	counterColorSpecies
	counterFormMismatch
	counterPlausibility
)

// reject runs the full predicate chain (spec.md §4.2, items 1-5) against a
// single candidate, returning the first rejection reason if any.
func reject(store *config.Store, class entities.CoreClass, pred entities.Prediction, c entities.CatalogEntry) (bool, rejectCounter) {
	name := strings.ToLower(c.Name)

	if rejectDisallowedAlias(store, class, name) {
		return true, counterNegativeVocab
	}
	if rejectSodiumGate(store, class, c) {
		return true, counterSodium
	}
	if rejectColorSpecies(store, class, pred, name) {
		return true, counterColorSpecies
	}
	if rejectFormMismatch(pred, name) {
		return true, counterFormMismatch
	}
	if rejectPlausibility(store, class, c) {
		return true, counterPlausibility
	}
	return false, counterNone
}

// rejectDisallowedAlias is spec.md §4.2.1.
func rejectDisallowedAlias(store *config.Store, class entities.CoreClass, name string) bool {
	for _, tok := range store.DisallowedAliases[class] {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

func isSodiumGated(store *config.Store, class entities.CoreClass) bool {
	_, ok := store.SodiumGateThresholds[class]
	return ok || isGenericFermented(class)
}

func isGenericFermented(class entities.CoreClass) bool {
	switch class {
	case "fermented_generic":
		return true
	default:
		return false
	}
}

// rejectSodiumGate is spec.md §4.2.2.
func rejectSodiumGate(store *config.Store, class entities.CoreClass, c entities.CatalogEntry) bool {
	threshold, ok := store.SodiumGateThresholds[class]
	if !ok {
		if !isGenericFermented(class) {
			return false
		}
		threshold = config.GenericFermentedThreshold
	}
	if c.SodiumMgPer100 == nil {
		// No sodium data: cannot confirm the gate, so it cannot reject.
		return false
	}
	return *c.SodiumMgPer100 < threshold
}

// rejectColorSpecies is spec.md §4.2.3.
func rejectColorSpecies(store *config.Store, class entities.CoreClass, pred entities.Prediction, name string) bool {
	dims, ok := store.ColorSpeciesTokens[class]
	if !ok {
		return false
	}
	for dimension, tokens := range dims {
		predictedValue := ""
		for _, tok := range tokens {
			if pred.HasModifier(tok) {
				predictedValue = tok
				break
			}
		}
		if predictedValue == "" {
			continue
		}
		_ = dimension
		entryValue := ""
		for _, tok := range tokens {
			if strings.Contains(name, tok) {
				entryValue = tok
				break
			}
		}
		if entryValue != "" && entryValue != predictedValue {
			return true
		}
	}
	return false
}

var processedTokens = []string{"canned", "pickled", "seasoned", "breaded", "in syrup", "in brine"}

// rejectFormMismatch is spec.md §4.2.4.
func rejectFormMismatch(pred entities.Prediction, name string) bool {
	if pred.Form != entities.FormRaw {
		return false
	}
	for _, tok := range processedTokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}

// rejectPlausibility is spec.md §4.2.5. The classifier's tolerance is a
// fixed ×1.2 widening of the configured band, inclusive at the boundary
// (spec.md §8: "Plausibility band at exactly max × 1.2 is accepted").
func rejectPlausibility(store *config.Store, class entities.CoreClass, c entities.CatalogEntry) bool {
	band, ok := store.PlausibilityBandFor(class)
	if !ok {
		return false
	}
	return !band.Contains(c.KcalPer100g, 0.2)
}
