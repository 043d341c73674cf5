package pipeline

import (
	"context"
	"strings"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/conversion"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

type stage5 struct{}

func (stage5) name() string { return "stage5" }

// stage5EnergyTolerance is the ≤20% inclusive band a proxy's kcal must land
// within of the predicted reference energy (SPEC_FULL.md Open Question #3).
const stage5EnergyTolerance = 0.20

// evaluate implements Stage 5 — Proxy alignment (spec.md §4.4): a whitelisted
// class with no Stage 1-4 match gets one of three proxy strategies, tried in
// order, each gated on landing within stage5EnergyTolerance of the predicted
// energy. The auxiliary catalog entries each strategy needs were fetched by
// the engine ahead of the pipeline run and handed in via in.Stage5Lookups,
// since the pipeline itself performs no catalog I/O.
func (stage5) evaluate(_ context.Context, in Input) Outcome {
	if !in.Store.Flags.EnableProxyAlignment {
		return Outcome{}
	}
	if !in.Store.Stage5Whitelist[in.Class] {
		return Outcome{}
	}

	predicted := predictedKcal(in)

	if d, ok := compositeBlend(in, predicted); ok {
		return Outcome{Handled: true, Decision: d}
	}
	if d, ok := nameLookup(in, predicted); ok {
		return Outcome{Handled: true, Decision: d}
	}
	if d, ok := macroDefaults(in, predicted); ok {
		return Outcome{Handled: true, Decision: d}
	}
	return Outcome{}
}

// compositeBlend averages the per-100g macros of the class's configured
// component lookups (e.g. leafy_mixed_salad -> romaine, green_leaf).
func compositeBlend(in Input, predicted float64) (*Decision, bool) {
	components := in.Store.Stage5CompositeBlends[in.Class]
	if len(components) == 0 {
		return nil, false
	}

	var sum conversion.Macros
	found := 0
	for _, component := range components {
		best, ok := bestAuthoritative(in.Stage5Lookups[component])
		if !ok {
			continue
		}
		m := macrosFromEntry(best)
		sum.KcalPer100g += m.KcalPer100g
		sum.ProteinG += m.ProteinG
		sum.CarbsG += m.CarbsG
		sum.FatG += m.FatG
		found++
	}
	if found != len(components) {
		return nil, false
	}

	blended := sum
	n := float64(found)
	blended.KcalPer100g /= n
	blended.ProteinG /= n
	blended.CarbsG /= n
	blended.FatG /= n

	if !withinPercent(predicted, blended.KcalPer100g, stage5EnergyTolerance) {
		return nil, false
	}

	return &Decision{
		Stage:        entities.Stage5ProxyAlignment,
		Entry:        proxyEntry(in.Class, blended.KcalPer100g),
		Macros:       &blended,
		AtwaterOK:    true,
		StagePenalty: -0.40,
		ProxyUsed:    true,
		ProxyFormula: "composite_blend:" + strings.Join(components, "+"),
	}, true
}

// nameLookup takes the best authoritative entry the engine fetched for the
// class's configured related-raw-Foundation query.
func nameLookup(in Input, predicted float64) (*Decision, bool) {
	query, ok := in.Store.Stage5NameLookup[in.Class]
	if !ok {
		return nil, false
	}
	best, ok := bestAuthoritative(in.Stage5Lookups[query])
	if !ok {
		return nil, false
	}
	if !withinPercent(predicted, best.KcalPer100g, stage5EnergyTolerance) {
		return nil, false
	}
	m := macrosFromEntry(best)
	return &Decision{
		Stage:        entities.Stage5ProxyAlignment,
		Entry:        best,
		Macros:       &m,
		AtwaterOK:    true,
		StagePenalty: -0.40,
		ProxyUsed:    true,
		ProxyFormula: "name_lookup:" + query,
	}, true
}

// macroDefaults falls back to the class's hard-coded macro table when
// neither catalog-backed strategy above produced a usable entry.
func macroDefaults(in Input, predicted float64) (*Decision, bool) {
	defaults, ok := in.Store.Stage5MacroDefaults[in.Class]
	if !ok || defaults.KcalPer100g == nil {
		return nil, false
	}
	kcal := *defaults.KcalPer100g
	if !withinPercent(predicted, kcal, stage5EnergyTolerance) {
		return nil, false
	}

	m := conversion.Macros{KcalPer100g: kcal}
	if defaults.ProteinPer100 != nil {
		m.ProteinG = *defaults.ProteinPer100
	}
	if defaults.CarbsPer100 != nil {
		m.CarbsG = *defaults.CarbsPer100
	}
	if defaults.FatPer100 != nil {
		m.FatG = *defaults.FatPer100
	}

	return &Decision{
		Stage:        entities.Stage5ProxyAlignment,
		Entry:        proxyEntry(in.Class, kcal),
		Macros:       &m,
		AtwaterOK:    true,
		StagePenalty: -0.40,
		ProxyUsed:    true,
		ProxyFormula: "macro_defaults:" + string(in.Class),
	}, true
}

// bestAuthoritative picks the highest source-priority entry from a lookup
// result set, preferring raw Foundation/SR Legacy over branded.
func bestAuthoritative(entries []entities.CatalogEntry) (entities.CatalogEntry, bool) {
	var best entities.CatalogEntry
	found := false
	for _, e := range entries {
		if !found || e.Source.SourcePriority() > best.Source.SourcePriority() ||
			(e.Source.SourcePriority() == best.Source.SourcePriority() && e.FDCID < best.FDCID) {
			best = e
			found = true
		}
	}
	return best, found
}

// proxyEntry synthesizes a CatalogEntry for a proxy strategy that has no
// single backing catalog row (composite_blend, macro_defaults).
func proxyEntry(class entities.CoreClass, kcal float64) entities.CatalogEntry {
	return entities.CatalogEntry{
		Name:        string(class) + " (proxy)",
		Source:      entities.Source("stage5_proxy"),
		Form:        entities.FormRaw,
		KcalPer100g: kcal,
	}
}
