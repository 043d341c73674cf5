package entities

// CoreClass is a stable, snake_case food identifier derived from a
// prediction's name and modifiers (e.g. "chicken_breast", "potato_russet").
type CoreClass string

// Category buckets core classes for Stage-Z eligibility and category-level
// defaults/bands.
type Category string

const (
	CategoryMeatPoultry  Category = "meat_poultry"
	CategoryFishSeafood  Category = "fish_seafood"
	CategoryStarchGrain  Category = "starch_grain"
	CategoryEgg          Category = "egg"
	CategoryFruit        Category = "fruit"
	CategoryVegetable    Category = "vegetable"
	CategoryNutsSeeds    Category = "nuts_seeds"
	CategoryDairy        Category = "dairy"
	CategoryUnknown      Category = ""
)

// StageZEligible reports whether a category is one of the categories Stage Z
// is allowed to fire for (meat_poultry, fish_seafood, starch_grain, egg) and
// is never one of the excluded categories (fruit, nuts_seeds, vegetable).
func (c Category) StageZEligible() bool {
	switch c {
	case CategoryMeatPoultry, CategoryFishSeafood, CategoryStarchGrain, CategoryEgg:
		return true
	default:
		return false
	}
}
