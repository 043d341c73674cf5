// Package method resolves exactly one (method, reason) pair per prediction,
// once, before stage dispatch (spec.md §4.3).
package method

import (
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// penalties mirrors the confidence penalty applied once, per reason
// (spec.md §4.3).
var penalties = map[entities.MethodReason]float64{
	entities.ReasonExplicit:         0.00,
	entities.ReasonAlias:            -0.05,
	entities.ReasonConversionConfig: -0.10,
	entities.ReasonClassDefault:     -0.10,
	entities.ReasonCategoryDefault:  -0.15,
	entities.ReasonFirstAvailable:   -0.20,
}

// Resolve runs the cascade from spec.md §4.3 and returns the first match.
// Downstream stages must not re-infer the method.
func Resolve(store *config.Store, class entities.CoreClass, pred entities.Prediction) entities.MethodResolution {
	form := string(pred.Form)

	// 1. Explicit: predicted form has a conversion profile for this class.
	if form != "" && store.HasConversionProfile(class, form) {
		return resolution(form, entities.ReasonExplicit)
	}

	// 2. Alias: normalize via METHOD_ALIASES.
	if alias, ok := store.MethodAliases[form]; ok {
		return resolution(alias, entities.ReasonAlias)
	}

	// 3. Conversion config: the predicted form itself has no profile, but the
	// class has a configured form -> method mapping to a differently-keyed
	// profile (e.g. potato_russet's "fried" prediction resolves to the
	// "hash_browns" profile).
	if form != "" {
		if m, ok := store.ConversionMethodForForm(class, form); ok {
			return resolution(m, entities.ReasonConversionConfig)
		}
	}

	// 4. Class default.
	if m, ok := store.ClassDefaultMethod[class]; ok {
		return resolution(m, entities.ReasonClassDefault)
	}

	// 5. Category default.
	if cat, ok := store.CategoryOf[class]; ok {
		if m, ok := store.CategoryDefaultMethod[cat]; ok {
			return resolution(m, entities.ReasonCategoryDefault)
		}
	}

	// 6. First available in the class's profile.
	if m, ok := store.FirstAvailableMethod(class); ok {
		return resolution(m, entities.ReasonFirstAvailable)
	}

	// Nothing resolved: fall back to raw, which is always a legal method and
	// never "unknown" (spec.md's hard invariant).
	return resolution("raw", entities.ReasonFirstAvailable)
}

func resolution(m string, reason entities.MethodReason) entities.MethodResolution {
	return entities.MethodResolution{
		Method:            m,
		Reason:            reason,
		ConfidencePenalty: penalties[reason],
	}
}

// Idempotent reports whether re-resolving from the already-resolved method
// as if it were the predicted form yields the same resolution (spec.md §8's
// round-trip law: resolve(resolve(form)) == resolve(form)).
func Idempotent(store *config.Store, class entities.CoreClass, pred entities.Prediction) bool {
	first := Resolve(store, class, pred)
	second := Resolve(store, class, entities.Prediction{Name: pred.Name, Form: entities.Form(first.Method), MassG: pred.MassG, Modifiers: pred.Modifiers})
	return first.Method == second.Method
}
