package config

import (
	"strings"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// Store is the process-lifetime immutable bundle of config data the engine
// consumes. It is constructed once by NewStore (cmd/aligner then replaces
// Flags with the loaded AppConfig flags) and passed by pointer; nothing in
// the domain layer mutates it.
type Store struct {
	Flags Flags

	// Synonyms maps an exact lowercase query key to a rewritten search query.
	Synonyms map[string]string
	// PluralMap maps a word to its singular/plural counterpart.
	PluralMap map[string]string

	// CoreClassOf maps a lowercase name/modifier token to a CoreClass.
	CoreClassOf map[string]entities.CoreClass
	// CategoryOf maps a CoreClass to its Category.
	CategoryOf map[entities.CoreClass]entities.Category

	// DisallowedAliases is DISALLOWED[core_class] from spec.md §4.2.
	DisallowedAliases map[entities.CoreClass][]string
	// SodiumGateThresholds is the per-class sodium mg/100g floor.
	SodiumGateThresholds map[entities.CoreClass]float64
	// ColorSpeciesTokens groups tokens for a core class by dimension
	// ("color" or "species") so a mismatch can be detected.
	ColorSpeciesTokens map[entities.CoreClass]map[string][]string

	// PlausibilityBands is the per-class kcal band used by the classifier.
	PlausibilityBands map[entities.CoreClass]Band
	// CategoryPlausibilityBands is the generic category fallback band.
	CategoryPlausibilityBands map[entities.Category]Band

	// MethodAliases normalizes a predicted/alias form to a canonical method.
	MethodAliases map[string]string
	// MethodCompatibilityGroups groups canonical methods considered
	// interchangeable for Stage 1's "method-compatible form" check.
	MethodCompatibilityGroups [][]string
	// ClassDefaultMethod is the per-class default cooking method.
	ClassDefaultMethod map[entities.CoreClass]string
	// CategoryDefaultMethod is the per-category default cooking method.
	CategoryDefaultMethod map[entities.Category]string

	// ConversionProfiles is keyed by "core_class::method".
	ConversionProfiles map[string]ConversionProfile
	// ConversionFormMethod maps a "core_class::predicted_form" key to the
	// canonical method that predicted form should resolve to when that form
	// isn't itself a profile key (e.g. potato_russet's "fried" prediction
	// resolves to the "hash_browns" profile). Distinct from ConversionProfiles,
	// which is keyed by the canonical method itself.
	ConversionFormMethod map[string]string
	// ConversionEnergyBands is keyed by "core_class::method"; falls back to
	// CategoryConversionEnergyBands when absent.
	ConversionEnergyBands map[string]Band
	CategoryConversionEnergyBands map[entities.Category]Band

	// MassRails is the per-class soft mass clamp.
	MassRails map[entities.CoreClass]Rail

	// Stage5Whitelist is STAGE5_WHITELIST from spec.md §4.4.
	Stage5Whitelist map[entities.CoreClass]bool
	// Stage5WhitelistKeywords is STAGE5_WHITELIST_KEYWORDS from spec.md §4.7.
	Stage5WhitelistKeywords []string
	// Stage5CompositeBlends lists the named composite-blend components for a
	// whitelisted class, e.g. leafy_mixed_salad -> [romaine, green_leaf].
	Stage5CompositeBlends map[entities.CoreClass][]string
	// Stage5NameLookup maps a whitelisted class to a raw Foundation search
	// query to try under the name_lookup strategy.
	Stage5NameLookup map[entities.CoreClass]string
	// Stage5MacroDefaults is the hard-coded per-100g macro fallback.
	Stage5MacroDefaults map[entities.CoreClass]entities.NutrientSet

	// Stage1bLooseClasses is the set of fruit/vegetable classes tolerant of
	// the looser 0.50 Stage-1b threshold (Open Question #2, SPEC_FULL.md).
	Stage1bLooseClasses map[entities.CoreClass]bool

	// StageZCategoryBands is the category kcal clamp band for Stage Z.
	StageZCategoryBands map[entities.Category]Band

	// TokenSynonymExpansion expands a core class's canonical name tokens to
	// the wider set matched during scoring (e.g. bell_pepper -> capsicum).
	TokenSynonymExpansion map[entities.CoreClass][]string
}

// ConversionProfileFor looks up the conversion profile for (class, method),
// returning (profile, true) if present.
func (s *Store) ConversionProfileFor(class entities.CoreClass, method string) (ConversionProfile, bool) {
	p, ok := s.ConversionProfiles[classMethodKey(class, method)]
	return p, ok
}

// HasConversionProfile reports whether a profile is configured for exactly
// this (class, method) pair (used by the method resolver's "explicit" step
// and the engine's Stage-1 pre-gate).
func (s *Store) HasConversionProfile(class entities.CoreClass, method string) bool {
	_, ok := s.ConversionProfiles[classMethodKey(class, method)]
	return ok
}

// ConversionMethodForForm looks up the canonical method a predicted form
// maps to for this class under ConversionFormMethod (the resolver's step 3,
// "conversion config" — distinct from the exact-form-keyed profile check in
// step 1).
func (s *Store) ConversionMethodForForm(class entities.CoreClass, form string) (string, bool) {
	m, ok := s.ConversionFormMethod[classMethodKey(class, form)]
	return m, ok
}

// FirstAvailableMethod returns the first method with a configured profile
// for the class, in a stable (sorted) order, for the resolver's last resort.
func (s *Store) FirstAvailableMethod(class entities.CoreClass) (string, bool) {
	best := ""
	found := false
	for key := range s.ConversionProfiles {
		parts := strings.SplitN(key, "::", 2)
		if len(parts) != 2 || entities.CoreClass(parts[0]) != class {
			continue
		}
		if !found || parts[1] < best {
			best = parts[1]
			found = true
		}
	}
	return best, found
}

// EnergyBandFor looks up the conversion-clamp energy band for (class,
// method), falling back to the category band, per spec.md §3's "generic
// category fallback".
func (s *Store) EnergyBandFor(class entities.CoreClass, method string) (Band, bool) {
	if b, ok := s.ConversionEnergyBands[classMethodKey(class, method)]; ok {
		return b, true
	}
	if cat, ok := s.CategoryOf[class]; ok {
		if b, ok := s.CategoryConversionEnergyBands[cat]; ok {
			return b, true
		}
	}
	return Band{}, false
}

// PlausibilityBandFor looks up the classifier's kcal plausibility band,
// falling back to the category band.
func (s *Store) PlausibilityBandFor(class entities.CoreClass) (Band, bool) {
	if b, ok := s.PlausibilityBands[class]; ok {
		return b, true
	}
	if cat, ok := s.CategoryOf[class]; ok {
		if b, ok := s.CategoryPlausibilityBands[cat]; ok {
			return b, true
		}
	}
	return Band{}, false
}

// ClassFor derives a CoreClass from a prediction's name (modifiers are
// consulted first, joined to the name in either order, so e.g. "egg" +
// modifier "white" resolves to egg_white).
func (s *Store) ClassFor(name string, modifiers []string) entities.CoreClass {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range modifiers {
		mod := strings.ToLower(strings.TrimSpace(m))
		for _, combined := range []string{mod + " " + key, key + " " + mod} {
			if c, ok := s.CoreClassOf[combined]; ok {
				return c
			}
		}
	}
	if c, ok := s.CoreClassOf[key]; ok {
		return c
	}
	// Fall back to a normalized snake_case identifier so the engine always
	// has a stable class even for unseen foods.
	return entities.CoreClass(strings.ReplaceAll(key, " ", "_"))
}

// ExpandTokens returns the synonym-expanded token set for a core class's
// canonical name, used by Stage 1/1b/3/4 scoring.
func (s *Store) ExpandTokens(class entities.CoreClass) []string {
	base := strings.Split(strings.ReplaceAll(string(class), "_", " "), " ")
	if extra, ok := s.TokenSynonymExpansion[class]; ok {
		base = append(base, extra...)
	}
	return base
}
