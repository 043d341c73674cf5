// Package engine wires the domain packages into the single entry point,
// Align: Prediction -> normalize -> search -> classify -> resolve method ->
// run the stage pipeline -> build the result. It is the only place that
// calls out to a CatalogGateway, keeping every other domain package a pure
// function of its inputs (spec.md §5).
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/classify"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/method"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/normalizer"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/pipeline"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/rails"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/resultbuilder"
)

// CatalogGateway is the one collaborator the domain layer depends on but
// does not implement. infrastructure/catalog provides the mock, Postgres,
// and Redis-cached implementations (SPEC_FULL.md §4.8).
type CatalogGateway interface {
	Search(ctx context.Context, query string, limit int) ([]entities.CatalogEntry, error)
	Reconnect(ctx context.Context) error
	IsConnected() bool
}

// searchLimit bounds how many rows a single search() call returns; the
// classifier filters from there.
const searchLimit = 25

// maxVariantsTried caps how many normalizer variants a search will try
// before giving up and handing the pipeline an empty pool.
const maxVariantsTried = 4

// Align runs a single prediction through the full alignment pipeline and
// returns the one AlignmentResult the engine ever produces for it.
func Align(ctx context.Context, store *config.Store, gateway CatalogGateway, pred entities.Prediction) (*entities.AlignmentResult, error) {
	class := store.ClassFor(pred.Name, pred.Modifiers)
	methodRes := method.Resolve(store, class, pred)

	candidates, normalizedQuery, variantsTried, err := search(ctx, gateway, store, pred.Name)
	catalogDown := false
	if err != nil {
		if !errors.Is(err, entities.ErrCatalogUnavailable) {
			return nil, fmt.Errorf("catalog search for %q: %w", pred.Name, err)
		}
		// Catalog stayed down through the reconnect-and-retry in search();
		// fall through with an empty pool so the pipeline still lands on
		// Stage 0 with a complete telemetry record, per spec.md §7.
		catalogDown = true
	}

	pool, gates := classify.Partition(store, class, pred, candidates)

	stage1Blocked := store.Flags.PreferRawFoundationConvert &&
		pred.Form.SuggestsConversion() &&
		len(pool.RawFoundation) > 0 &&
		store.HasConversionProfile(class, methodRes.Method)

	var stage5Lookups map[string][]entities.CatalogEntry
	if !catalogDown && store.Flags.EnableProxyAlignment && store.Stage5Whitelist[class] {
		stage5Lookups, err = fetchStage5Lookups(ctx, gateway, store, class)
		if err != nil {
			if !errors.Is(err, entities.ErrCatalogUnavailable) {
				return nil, fmt.Errorf("stage5 auxiliary search for %q: %w", pred.Name, err)
			}
			// Same degrade-gracefully treatment: Stage 5 just finds nothing
			// and declines rather than failing the whole alignment.
			stage5Lookups = nil
		}
	}

	input := pipeline.Input{
		Store:           store,
		Prediction:      pred,
		Class:           class,
		Method:          methodRes,
		Pool:            pool,
		Gates:           gates,
		NormalizedQuery: normalizedQuery,
		VariantsTried:   variantsTried,
		Stage1Blocked:   stage1Blocked,
		Stage5Lookups:   stage5Lookups,
	}

	decision := pipeline.Run(ctx, input)

	visionConfidence := 1.0
	if pred.Confidence != nil {
		visionConfidence = *pred.Confidence
	}
	massResult := rails.Apply(store, class, pred.MassG, visionConfidence)
	massClampsApplied := 0
	if massResult.Applied {
		massClampsApplied = 1
	}

	result, err := resultbuilder.Build(input, decision, massResult, gates, massClampsApplied)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// search tries normalizer.Variants in order against the catalog, stopping at
// the first variant that returns at least one candidate, or after
// maxVariantsTried attempts.
func search(ctx context.Context, gateway CatalogGateway, store *config.Store, name string) ([]entities.CatalogEntry, string, int, error) {
	variants := normalizer.Variants(store, name)
	tried := 0
	for _, v := range variants {
		if tried >= maxVariantsTried {
			break
		}
		tried++
		results, err := searchResilient(ctx, gateway, v, searchLimit)
		if err != nil {
			return nil, v, tried, err
		}
		if len(results) > 0 {
			return results, v, tried, nil
		}
	}
	last := ""
	if len(variants) > 0 {
		last = variants[len(variants)-1]
	}
	return nil, last, tried, nil
}

// searchResilient calls the gateway once, and on error attempts a single
// reconnect-then-retry before giving up (spec.md §7's CatalogUnavailable
// recovery: "one reconnect(), retry once; on second failure, return Stage
// 0"). A persistent failure is wrapped in entities.ErrCatalogUnavailable so
// callers can tell it apart from a genuine, non-recoverable gateway error.
func searchResilient(ctx context.Context, gateway CatalogGateway, query string, limit int) ([]entities.CatalogEntry, error) {
	results, err := gateway.Search(ctx, query, limit)
	if err == nil {
		return results, nil
	}

	if rerr := gateway.Reconnect(ctx); rerr != nil {
		return nil, fmt.Errorf("%w: reconnect failed: %v", entities.ErrCatalogUnavailable, rerr)
	}
	results, err = gateway.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: retry after reconnect failed: %v", entities.ErrCatalogUnavailable, err)
	}
	return results, nil
}

// fetchStage5Lookups performs the engine's own searches for a whitelisted
// class's composite-blend components and name_lookup query, so the pipeline
// package stays free of catalog I/O.
func fetchStage5Lookups(ctx context.Context, gateway CatalogGateway, store *config.Store, class entities.CoreClass) (map[string][]entities.CatalogEntry, error) {
	queries := map[string]bool{}
	for _, c := range store.Stage5CompositeBlends[class] {
		queries[c] = true
	}
	if q, ok := store.Stage5NameLookup[class]; ok {
		queries[q] = true
	}
	if len(queries) == 0 {
		return nil, nil
	}

	out := map[string][]entities.CatalogEntry{}
	for q := range queries {
		results, err := searchResilient(ctx, gateway, q, searchLimit)
		if err != nil {
			return nil, err
		}
		out[q] = results
	}
	return out, nil
}
