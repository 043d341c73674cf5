// Package batch implements the bounded-concurrency fan-out driver of
// SPEC_FULL.md §4.9/§5: one engine.Align call per prediction, capped at a
// configurable concurrency ceiling, with a single-owner reducer folding
// telemetry into a metrics.Registry after fan-in.
package batch

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/engine"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
	"github.com/DimaJoyti/food-alignment-engine/internal/infrastructure/metrics"
)

// DefaultConcurrencyCeiling is the batch driver's default bound on
// simultaneous in-flight alignments (SPEC_FULL.md §4.9).
const DefaultConcurrencyCeiling = 5

// Driver fans a slice of predictions out across a bounded worker pool,
// calling engine.Align for each, and optionally publishing each result to a
// Kafka output topic.
type Driver struct {
	Store       *config.Store
	Gateway     engine.CatalogGateway
	Metrics     *metrics.Registry
	Producer    *ResultProducer
	Concurrency int64
}

// NewDriver builds a Driver with DefaultConcurrencyCeiling unless overridden
// by the caller afterward.
func NewDriver(store *config.Store, gateway engine.CatalogGateway, reg *metrics.Registry) *Driver {
	return &Driver{
		Store:       store,
		Gateway:     gateway,
		Metrics:     reg,
		Concurrency: DefaultConcurrencyCeiling,
	}
}

// item pairs a prediction with its index so RunBatch can return results in
// input order despite out-of-order completion.
type item struct {
	index  int
	result *entities.AlignmentResult
	err    error
}

// Summary aggregates a batch's outcomes. Counters here are folded from the
// single reducer goroutine in RunBatch, so they're race-free without the
// caller needing its own lock even though the prometheus counter vectors in
// metrics.Registry would tolerate concurrent access regardless.
type Summary struct {
	Total          int
	Succeeded      int
	Failed         int
	StageBreakdown map[entities.AlignmentStage]int
}

// RunBatch runs every prediction through engine.Align, at most d.Concurrency
// at a time, and returns both the per-prediction results (nil entries mark a
// failed alignment) and the batch summary.
func (d *Driver) RunBatch(ctx context.Context, predictions []entities.Prediction) (Summary, []*entities.AlignmentResult) {
	ceiling := d.Concurrency
	if ceiling <= 0 {
		ceiling = DefaultConcurrencyCeiling
	}
	sem := semaphore.NewWeighted(ceiling)

	results := make([]*entities.AlignmentResult, len(predictions))
	items := make(chan item, len(predictions))

	var wg sync.WaitGroup
	for i, pred := range predictions {
		if err := sem.Acquire(ctx, 1); err != nil {
			items <- item{index: i, err: err}
			continue
		}
		wg.Add(1)
		go func(i int, pred entities.Prediction) {
			defer wg.Done()
			defer sem.Release(1)
			result, err := engine.Align(ctx, d.Store, d.Gateway, pred)
			items <- item{index: i, result: result, err: err}
		}(i, pred)
	}

	go func() {
		wg.Wait()
		close(items)
	}()

	summary := Summary{Total: len(predictions), StageBreakdown: map[entities.AlignmentStage]int{}}
	for it := range items {
		if it.err != nil || it.result == nil {
			summary.Failed++
			var violation *entities.InvariantViolation
			if d.Metrics != nil && errors.As(it.err, &violation) {
				d.Metrics.InvariantErrors.Inc()
			}
			continue
		}
		results[it.index] = it.result
		summary.Succeeded++
		summary.StageBreakdown[it.result.Telemetry.AlignmentStage]++

		if d.Metrics != nil {
			d.Metrics.StageOutcomes.WithLabelValues(string(it.result.Telemetry.AlignmentStage)).Inc()
			d.Metrics.SodiumBlocks.Add(float64(it.result.Telemetry.SodiumGateBlocks))
			d.Metrics.NegativeVocab.Add(float64(it.result.Telemetry.NegativeVocabBlocks))
			d.Metrics.MassClamps.Add(float64(it.result.Telemetry.MassClampsApplied))
		}

		if d.Producer != nil {
			_ = d.Producer.Publish(ctx, it.result)
		}
	}

	if d.Metrics != nil {
		d.Metrics.BatchSize.Observe(float64(summary.Total))
	}

	return summary, results
}

// RunKafka pulls predictions off consumer until ctx is cancelled, calling
// engine.Align synchronously per message (the bounded fan-out of RunBatch
// is for the HTTP/offline path; Kafka consumption is already rate-limited
// by broker delivery, so one in-flight alignment at a time is enough).
func (d *Driver) RunKafka(ctx context.Context, consumer *PredictionConsumer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pred, err := consumer.Next(ctx)
		if err != nil {
			return err
		}

		result, err := engine.Align(ctx, d.Store, d.Gateway, pred)
		if err != nil {
			continue
		}
		if d.Metrics != nil {
			d.Metrics.StageOutcomes.WithLabelValues(string(result.Telemetry.AlignmentStage)).Inc()
		}
		if d.Producer != nil {
			_ = d.Producer.Publish(ctx, result)
		}
	}
}
