// Package catalog provides the engine.CatalogGateway implementations: an
// in-memory seed catalog for tests and local runs, a Postgres-backed
// gateway, and a Redis read-through cache decorator.
package catalog

import (
	"context"
	"strings"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// MockGateway is an in-memory FDC-shaped catalog, grounded on the teacher's
// MockNutritionDatabase.initializeData() idiom: a constructor that seeds a
// slice of entries up front, searched by matching every query token as a
// substring of the entry name.
type MockGateway struct {
	entries []entities.CatalogEntry
}

// NewMockGateway builds a mock catalog seeded with the entries spec.md's
// worked examples reference (chicken breast, rice, potato, bacon, egg,
// grape, and a scattering of branded rows for Stage 3/4/5 testing).
func NewMockGateway() *MockGateway {
	g := &MockGateway{}
	g.seed()
	return g
}

// Search returns entries whose name contains every token of the query,
// case-insensitively, capped at limit.
func (g *MockGateway) Search(_ context.Context, query string, limit int) ([]entities.CatalogEntry, error) {
	tokens := strings.Fields(strings.ToLower(query))
	var out []entities.CatalogEntry
	for _, e := range g.entries {
		name := strings.ToLower(e.Name)
		matched := true
		for _, t := range tokens {
			if !strings.Contains(name, t) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// Reconnect is a no-op: there is nothing to reconnect for an in-memory seed.
func (g *MockGateway) Reconnect(_ context.Context) error { return nil }

// IsConnected is always true for the mock gateway.
func (g *MockGateway) IsConnected() bool { return true }

func f(v float64) *float64 { return &v }

func (g *MockGateway) seed() {
	g.entries = []entities.CatalogEntry{
		{FDCID: 1001, Name: "Chicken, breast, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 120, ProteinPer100: 22.5, CarbsPer100: 0, FatPer100: 2.6},
		{FDCID: 1002, Name: "Chicken, breast, grilled", Source: entities.SourceFoundation, Form: entities.FormGrilled, KcalPer100g: 165, ProteinPer100: 31.0, CarbsPer100: 0, FatPer100: 3.6},
		{FDCID: 1003, Name: "Chicken, breast, roasted", Source: entities.SourceSRLegacy, Form: entities.FormRoasted, KcalPer100g: 172, ProteinPer100: 30.9, CarbsPer100: 0, FatPer100: 4.5},
		{FDCID: 1010, Name: "Chicken breast, breaded, fried, branded", Source: entities.SourceBranded, Form: entities.FormBreaded, KcalPer100g: 260, ProteinPer100: 17.0, CarbsPer100: 14.0, FatPer100: 15.0},

		{FDCID: 2001, Name: "Rice, white, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 365, ProteinPer100: 7.1, CarbsPer100: 80.0, FatPer100: 0.7},
		{FDCID: 2002, Name: "Rice, white, boiled", Source: entities.SourceFoundation, Form: entities.FormBoiled, KcalPer100g: 130, ProteinPer100: 2.7, CarbsPer100: 28.2, FatPer100: 0.3},

		{FDCID: 3001, Name: "Potato, russet, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 77, ProteinPer100: 2.0, CarbsPer100: 17.5, FatPer100: 0.1},
		{FDCID: 3010, Name: "Potato, hash browns, branded, frozen", Source: entities.SourceBranded, Form: entities.Form("hash_browns"), KcalPer100g: 175, ProteinPer100: 2.2, CarbsPer100: 22.0, FatPer100: 8.8},

		{FDCID: 4001, Name: "Pork, bacon strip, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 417, ProteinPer100: 12.0, CarbsPer100: 1.4, FatPer100: 42.0},
		{FDCID: 4002, Name: "Pork, bacon strip, fried", Source: entities.SourceFoundation, Form: entities.FormFried, KcalPer100g: 541, ProteinPer100: 37.0, CarbsPer100: 1.3, FatPer100: 42.0},
		{FDCID: 4010, Name: "Bacon, thick cut, branded", Source: entities.SourceBranded, Form: entities.FormFried, KcalPer100g: 500, ProteinPer100: 33.0, CarbsPer100: 1.0, FatPer100: 40.0},

		{FDCID: 5001, Name: "Egg, whole, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 143, ProteinPer100: 12.6, CarbsPer100: 0.7, FatPer100: 9.5},
		{FDCID: 5002, Name: "Egg, whole, scrambled", Source: entities.SourceFoundation, Form: entities.Form("scrambled"), KcalPer100g: 148, ProteinPer100: 10.0, CarbsPer100: 1.6, FatPer100: 11.0},

		{FDCID: 6001, Name: "Grape, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 69, ProteinPer100: 0.7, CarbsPer100: 18.1, FatPer100: 0.2, SugarGPer100: f(15.5)},
		{FDCID: 6010, Name: "Grape juice, branded", Source: entities.SourceBranded, Form: entities.FormRaw, KcalPer100g: 60, ProteinPer100: 0.3, CarbsPer100: 14.8, FatPer100: 0.1},

		{FDCID: 7001, Name: "Romaine, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 17, ProteinPer100: 1.2, CarbsPer100: 3.3, FatPer100: 0.3},
		{FDCID: 7002, Name: "Lettuce, green leaf, raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 15, ProteinPer100: 1.4, CarbsPer100: 2.9, FatPer100: 0.2},
		{FDCID: 7003, Name: "Zucchini raw", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 17, ProteinPer100: 1.2, CarbsPer100: 3.1, FatPer100: 0.3},

		{FDCID: 8001, Name: "Pickles, cucumber, sour", Source: entities.SourceFoundation, Form: entities.FormRaw, KcalPer100g: 11, ProteinPer100: 0.3, CarbsPer100: 2.3, FatPer100: 0.2, SodiumMgPer100: f(1208)},
		{FDCID: 8002, Name: "Pickles, cucumber, low sodium", Source: entities.SourceBranded, Form: entities.FormRaw, KcalPer100g: 12, ProteinPer100: 0.3, CarbsPer100: 2.6, FatPer100: 0.2, SodiumMgPer100: f(45)},
	}
}
