// Package normalizer bridges vocabulary differences between a vision
// prediction's free-text name and the catalog's search index (spec.md §4.1).
package normalizer

import (
	"strings"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
)

// Variants produces an ordered, deduplicated list of search query variants
// for a single predicted food name.
func Variants(store *config.Store, name string) []string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = collapseWhitespace(base)

	out := []string{base}
	seen := map[string]bool{base: true}

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	if rewritten, ok := store.Synonyms[base]; ok {
		add(rewritten)
	}

	if flipped, ok := store.PluralMap[base]; ok {
		add(flipped)
		add(flipped + " raw")
	}

	add(base + " raw")
	if flipped, ok := store.PluralMap[base]; ok {
		add(flipped + " raw")
	}

	return out
}

// Idempotent reports whether re-running Variants on its own first element
// yields the same set — the round-trip law from spec.md §8. It's exposed so
// callers/tests can assert it directly rather than re-deriving the check.
func Idempotent(store *config.Store, name string) bool {
	first := Variants(store, name)
	if len(first) == 0 {
		return true
	}
	second := Variants(store, first[0])
	return sameSet(first, second)
}

func sameSet(a, b []string) bool {
	am := map[string]bool{}
	for _, v := range a {
		am[v] = true
	}
	bm := map[string]bool{}
	for _, v := range b {
		bm[v] = true
	}
	if len(am) != len(bm) {
		return false
	}
	for k := range am {
		if !bm[k] {
			return false
		}
	}
	return true
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
