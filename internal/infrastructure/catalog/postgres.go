package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/time/rate"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
	"github.com/DimaJoyti/food-alignment-engine/internal/infrastructure/metrics"
)

// row mirrors food_catalog's columns for sqlx's StructScan.
type row struct {
	FDCID          int64           `db:"fdc_id"`
	Name           string          `db:"name"`
	Source         string          `db:"source"`
	Form           string          `db:"form"`
	KcalPer100g    float64         `db:"kcal_100g"`
	ProteinPer100  float64         `db:"protein_100g"`
	CarbsPer100    float64         `db:"carbs_100g"`
	FatPer100      float64         `db:"fat_100g"`
	SodiumMgPer100 sql.NullFloat64 `db:"sodium_mg_100g"`
	SugarGPer100   sql.NullFloat64 `db:"sugar_g_100g"`
}

func (r row) toEntry() entities.CatalogEntry {
	e := entities.CatalogEntry{
		FDCID:         r.FDCID,
		Name:          r.Name,
		Source:        entities.Source(r.Source),
		Form:          entities.Form(r.Form),
		KcalPer100g:   r.KcalPer100g,
		ProteinPer100: r.ProteinPer100,
		CarbsPer100:   r.CarbsPer100,
		FatPer100:     r.FatPer100,
	}
	if r.SodiumMgPer100.Valid {
		v := r.SodiumMgPer100.Float64
		e.SodiumMgPer100 = &v
	}
	if r.SugarGPer100.Valid {
		v := r.SugarGPer100.Float64
		e.SugarGPer100 = &v
	}
	return e
}

// PostgresGateway backs Search with a `food_catalog` table shaped like
// CatalogEntry, over jmoiron/sqlx and lib/pq.
type PostgresGateway struct {
	dsn     string
	db      *sqlx.DB
	limiter *rate.Limiter
	metrics *metrics.Registry
}

// NewPostgresGateway dials dsn immediately so IsConnected reflects a real
// ping from construction.
func NewPostgresGateway(dsn string) (*PostgresGateway, error) {
	g := &PostgresGateway{dsn: dsn}
	if err := g.connect(); err != nil {
		return nil, err
	}
	return g, nil
}

// WithRateLimit caps outgoing search() calls at rps queries/sec with a burst
// of burst, per SPEC_FULL.md §4.10's golang.org/x/time/rate-limited search
// path. Returns g for chaining at construction time.
func (g *PostgresGateway) WithRateLimit(rps float64, burst int) *PostgresGateway {
	g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return g
}

// WithMetrics records each search() call's wait-plus-query latency (the time
// the rate limiter holds the caller, plus the query itself) into reg.
func (g *PostgresGateway) WithMetrics(reg *metrics.Registry) *PostgresGateway {
	g.metrics = reg
	return g
}

func (g *PostgresGateway) connect() error {
	db, err := sqlx.Connect("postgres", g.dsn)
	if err != nil {
		return fmt.Errorf("connect to catalog database: %w", err)
	}
	g.db = db
	return nil
}

// Search matches the whole query as one substring of name via an ILIKE scan,
// ordered so authoritative sources sort first (mirrors the tie-break rule's
// source-priority ordering, applied as a SQL hint rather than re-derived).
func (g *PostgresGateway) Search(ctx context.Context, query string, limit int) ([]entities.CatalogEntry, error) {
	start := time.Now()
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	if g.metrics != nil {
		defer g.metrics.ObserveSearchLatency(start)
	}

	const q = `
		SELECT fdc_id, name, source, form, kcal_100g, protein_100g, carbs_100g, fat_100g,
		       sodium_mg_100g, sugar_g_100g
		FROM food_catalog
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY CASE source
			WHEN 'foundation' THEN 0
			WHEN 'sr_legacy' THEN 1
			ELSE 2
		END, fdc_id
		LIMIT $2`

	var rows []row
	if err := g.db.SelectContext(ctx, &rows, q, query, limit); err != nil {
		return nil, fmt.Errorf("search food_catalog: %w", err)
	}

	out := make([]entities.CatalogEntry, len(rows))
	for i, r := range rows {
		out[i] = r.toEntry()
	}
	return out, nil
}

// Reconnect rebuilds the pooled *sqlx.DB after a connection error
// (SPEC_FULL.md's "Reconnect-on-error for the Postgres gateway").
func (g *PostgresGateway) Reconnect(_ context.Context) error {
	if g.db != nil {
		_ = g.db.Close()
	}
	return g.connect()
}

// IsConnected pings the pool.
func (g *PostgresGateway) IsConnected() bool {
	if g.db == nil {
		return false
	}
	return g.db.Ping() == nil
}
