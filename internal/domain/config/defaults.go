package config

import "github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"

// NewStore builds the default config store. It mirrors the teacher's
// MockNutritionDatabase.initializeData() idiom: a constructor that seeds an
// in-memory table, here with the food classes and rules spec.md calls out
// literally (§4.2, §4.3, §4.4, §6, §8 examples). Only Flags are replaced at
// startup (cmd/aligner copies them from infrastructure/config.Load's
// AppConfig); the tables seeded here are not read from YAML.
func NewStore() *Store {
	s := &Store{
		Flags:                         DefaultFlags(),
		Synonyms:                      map[string]string{},
		PluralMap:                     map[string]string{},
		CoreClassOf:                   map[string]entities.CoreClass{},
		CategoryOf:                    map[entities.CoreClass]entities.Category{},
		DisallowedAliases:             map[entities.CoreClass][]string{},
		SodiumGateThresholds:          map[entities.CoreClass]float64{},
		ColorSpeciesTokens:            map[entities.CoreClass]map[string][]string{},
		PlausibilityBands:             map[entities.CoreClass]Band{},
		CategoryPlausibilityBands:     map[entities.Category]Band{},
		MethodAliases:                 map[string]string{},
		ClassDefaultMethod:            map[entities.CoreClass]string{},
		CategoryDefaultMethod:         map[entities.Category]string{},
		ConversionProfiles:            map[string]ConversionProfile{},
		ConversionFormMethod:          map[string]string{},
		ConversionEnergyBands:         map[string]Band{},
		CategoryConversionEnergyBands: map[entities.Category]Band{},
		MassRails:                     map[entities.CoreClass]Rail{},
		Stage5Whitelist:               map[entities.CoreClass]bool{},
		Stage5CompositeBlends:         map[entities.CoreClass][]string{},
		Stage5NameLookup:              map[entities.CoreClass]string{},
		Stage5MacroDefaults:           map[entities.CoreClass]entities.NutrientSet{},
		Stage1bLooseClasses:           map[entities.CoreClass]bool{},
		StageZCategoryBands:           map[entities.Category]Band{},
		TokenSynonymExpansion:         map[entities.CoreClass][]string{},
	}

	s.seedSynonyms()
	s.seedCoreClasses()
	s.seedDisallowedAliases()
	s.seedSodiumGates()
	s.seedColorSpecies()
	s.seedPlausibilityBands()
	s.seedMethodResolution()
	s.seedConversionProfiles()
	s.seedMassRails()
	s.seedStage5()
	s.seedStageZ()
	s.seedTokenExpansion()

	return s
}

func f(v float64) *float64 { return &v }

func (s *Store) seedSynonyms() {
	s.Synonyms["cantaloupe"] = "melons cantaloupe raw"
	s.Synonyms["hash browns"] = "potato hash browns"
	s.Synonyms["mixed salad greens"] = "lettuce mixed greens raw"
	s.Synonyms["egg whites"] = "egg white raw"

	s.PluralMap["grapes"] = "grape"
	s.PluralMap["grape"] = "grapes"
	s.PluralMap["almonds"] = "almond"
	s.PluralMap["almond"] = "almonds"
	s.PluralMap["tomatoes"] = "tomato"
	s.PluralMap["tomato"] = "tomatoes"
}

func (s *Store) seedCoreClasses() {
	classes := map[string]entities.CoreClass{
		"chicken breast":       "chicken_breast",
		"chicken":              "chicken_breast",
		"potato":               "potato_russet",
		"russet potato":        "potato_russet",
		"hash browns":          "potato_russet",
		"bell pepper":          "bell_pepper_green",
		"bell pepper green":    "bell_pepper_green",
		"squash summer yellow": "squash_summer_yellow",
		"yellow squash":        "squash_summer_yellow",
		"summer squash":        "squash_summer_yellow",
		"grapes":               "grape",
		"grape":                "grape",
		"egg whites":           "egg_white",
		"egg white":            "egg_white",
		"egg yolk":             "egg_yolk",
		"egg":                  "egg_whole",
		"bacon":                "bacon_strip",
		"sausage":              "sausage_link",
		"rice":                 "rice_white",
		"white rice":           "rice_white",
		"corn":                 "corn",
		"sweet potato":         "sweet_potato",
		"pumpkin":              "pumpkin",
		"pickles":              "pickles",
		"olives":               "olives",
		"capers":               "capers",
		"kimchi":               "kimchi",
		"sauerkraut":           "sauerkraut",
		"mixed salad greens":   "leafy_mixed_salad",
		"salad greens":         "leafy_mixed_salad",
		"tofu":                 "tofu_plain_raw",
	}
	for k, v := range classes {
		s.CoreClassOf[k] = v
	}

	categories := map[entities.CoreClass]entities.Category{
		"chicken_breast":        entities.CategoryMeatPoultry,
		"bacon_strip":           entities.CategoryMeatPoultry,
		"sausage_link":          entities.CategoryMeatPoultry,
		"salmon_fillet":         entities.CategoryFishSeafood,
		"rice_white":            entities.CategoryStarchGrain,
		"potato_russet":         entities.CategoryStarchGrain,
		"egg_whole":             entities.CategoryEgg,
		"egg_white":             entities.CategoryEgg,
		"egg_yolk":              entities.CategoryEgg,
		"grape":                 entities.CategoryFruit,
		"bell_pepper_green":     entities.CategoryVegetable,
		"squash_summer_yellow":  entities.CategoryVegetable,
		"sweet_potato":          entities.CategoryVegetable,
		"corn":                  entities.CategoryStarchGrain,
		"pumpkin":               entities.CategoryVegetable,
		"pickles":               entities.CategoryVegetable,
		"olives":                entities.CategoryFruit,
		"capers":                entities.CategoryVegetable,
		"kimchi":                entities.CategoryVegetable,
		"sauerkraut":            entities.CategoryVegetable,
		"leafy_mixed_salad":     entities.CategoryVegetable,
		"tofu_plain_raw":        entities.CategoryNutsSeeds,
	}
	for k, v := range categories {
		s.CategoryOf[k] = v
	}
}

func (s *Store) seedDisallowedAliases() {
	s.DisallowedAliases["egg_white"] = []string{"yolk"}
	s.DisallowedAliases["corn"] = []string{"flour", "meal", "grits", "polenta", "starch", "masa"}
	s.DisallowedAliases["sweet_potato"] = []string{"leaves", "tops"}
	s.DisallowedAliases["rice_white"] = []string{"cracker", "chips"}
	s.DisallowedAliases["grape"] = []string{"juice", "raisin", "jam"}
	s.DisallowedAliases["pumpkin"] = []string{"seeds", "pepitas", "pie"}
}

func (s *Store) seedSodiumGates() {
	s.SodiumGateThresholds["pickles"] = 600
	s.SodiumGateThresholds["olives"] = 600
	s.SodiumGateThresholds["capers"] = 1500
	s.SodiumGateThresholds["kimchi"] = 500
	s.SodiumGateThresholds["sauerkraut"] = 500
	// generic fermented classes not otherwise listed use 400 via GenericFermentedThreshold.
}

// GenericFermentedThreshold is the ≥400mg floor for fermented classes not in
// SodiumGateThresholds (spec.md §4.2.2).
const GenericFermentedThreshold = 400

func (s *Store) seedColorSpecies() {
	s.ColorSpeciesTokens["bell_pepper_green"] = map[string][]string{
		"color": {"green", "red", "yellow", "orange"},
	}
	s.ColorSpeciesTokens["squash_summer_yellow"] = map[string][]string{
		"color": {"yellow", "green", "zucchini"},
	}
}

func (s *Store) seedPlausibilityBands() {
	s.PlausibilityBands["chicken_breast"] = Band{MinKcal100g: 110, MaxKcal100g: 280}
	s.PlausibilityBands["grape"] = Band{MinKcal100g: 55, MaxKcal100g: 80}
	s.PlausibilityBands["egg_white"] = Band{MinKcal100g: 40, MaxKcal100g: 60}
	s.PlausibilityBands["potato_russet"] = Band{MinKcal100g: 60, MaxKcal100g: 200}
	s.PlausibilityBands["bacon_strip"] = Band{MinKcal100g: 80, MaxKcal100g: 320}
	// Stage 5's whitelist runs its own ±20% energy-tolerance check against
	// this same band; without a class-specific entry here it would fall
	// back to the vegetable category's much wider band and could never
	// realistically clear that check for leafy greens or summer squash.
	s.PlausibilityBands["leafy_mixed_salad"] = Band{MinKcal100g: 12, MaxKcal100g: 20}
	s.PlausibilityBands["squash_summer_yellow"] = Band{MinKcal100g: 12, MaxKcal100g: 22}
	s.PlausibilityBands["tofu_plain_raw"] = Band{MinKcal100g: 60, MaxKcal100g: 92}

	s.CategoryPlausibilityBands[entities.CategoryMeatPoultry] = Band{MinKcal100g: 90, MaxKcal100g: 320}
	s.CategoryPlausibilityBands[entities.CategoryFishSeafood] = Band{MinKcal100g: 60, MaxKcal100g: 260}
	s.CategoryPlausibilityBands[entities.CategoryStarchGrain] = Band{MinKcal100g: 60, MaxKcal100g: 210}
	s.CategoryPlausibilityBands[entities.CategoryEgg] = Band{MinKcal100g: 35, MaxKcal100g: 170}
	s.CategoryPlausibilityBands[entities.CategoryFruit] = Band{MinKcal100g: 30, MaxKcal100g: 110}
	s.CategoryPlausibilityBands[entities.CategoryVegetable] = Band{MinKcal100g: 10, MaxKcal100g: 120}
}

func (s *Store) seedMethodResolution() {
	s.MethodAliases["sauteed"] = "pan_seared"
	s.MethodAliases["baked"] = "roasted_oven"
	s.MethodAliases["broiled"] = "grilled"
	s.MethodAliases["air-fried"] = "roasted_oven"
	s.MethodAliases["air_fried"] = "roasted_oven"
	s.MethodAliases["charred"] = "grilled"
	s.MethodAliases["toasted"] = "roasted_oven"

	s.MethodCompatibilityGroups = [][]string{
		{"roasted_oven", "baked", "roasted", "toasted", "air-fried"},
		{"grilled", "broiled", "charred"},
		{"boiled", "poached"},
	}

	s.ClassDefaultMethod["rice_white"] = "boiled"
	s.ClassDefaultMethod["chicken_breast"] = "grilled"
	s.ClassDefaultMethod["bell_pepper_green"] = "raw"
	s.ClassDefaultMethod["potato_russet"] = "hash_browns"
	s.ClassDefaultMethod["egg_whole"] = "scrambled"

	// potato_russet has no "fried"-keyed profile of its own — "fried" resolves
	// to the hash_browns profile, one step ahead of falling through to the
	// class default so the resolver reports the more specific reason.
	s.ConversionFormMethod[classMethodKey("potato_russet", "fried")] = "hash_browns"

	s.CategoryDefaultMethod[entities.CategoryVegetable] = "raw"
	s.CategoryDefaultMethod[entities.CategoryStarchGrain] = "boiled"
	s.CategoryDefaultMethod[entities.CategoryMeatPoultry] = "grilled"
	s.CategoryDefaultMethod[entities.CategoryFishSeafood] = "pan_seared"
	s.CategoryDefaultMethod[entities.CategoryEgg] = "scrambled"
}

func (s *Store) seedConversionProfiles() {
	s.ConversionProfiles[classMethodKey("chicken_breast", "grilled")] = ConversionProfile{
		ShrinkageFraction: f(0.29),
		FatRenderFraction: f(0.05),
		Retention:         map[string]float64{"protein": 0.97, "carbs": 1.0, "fat": 0.9},
		EnergyBand:        &Band{MinKcal100g: 160, MaxKcal100g: 220},
	}
	s.ConversionProfiles[classMethodKey("chicken_breast", "roasted")] = ConversionProfile{
		ShrinkageFraction: f(0.25),
		FatRenderFraction: f(0.04),
		Retention:         map[string]float64{"protein": 0.97, "carbs": 1.0, "fat": 0.9},
	}
	s.ConversionProfiles[classMethodKey("rice_white", "boiled")] = ConversionProfile{
		HydrationFactor: f(2.80),
		Retention:       map[string]float64{"protein": 1.0, "carbs": 1.0, "fat": 1.0},
	}
	s.ConversionProfiles[classMethodKey("potato_russet", "hash_browns")] = ConversionProfile{
		ShrinkageFraction: f(0.24),
		OilUptakeG:        f(11.5),
		Retention:         map[string]float64{"protein": 1.0, "carbs": 1.0, "fat": 1.0},
		EnergyBand:        &Band{MinKcal100g: 150, MaxKcal100g: 200},
	}
	s.ConversionProfiles[classMethodKey("egg_whole", "scrambled")] = ConversionProfile{
		ShrinkageFraction: f(0.10),
		FatRenderFraction: f(0.0),
		Retention:         map[string]float64{"protein": 1.0, "carbs": 1.0, "fat": 1.0},
	}
	s.ConversionProfiles[classMethodKey("bacon_strip", "fried")] = ConversionProfile{
		ShrinkageFraction: f(0.55),
		FatRenderFraction: f(0.35),
		Retention:         map[string]float64{"protein": 0.95, "carbs": 1.0, "fat": 0.65},
	}

	s.ConversionEnergyBands[classMethodKey("chicken_breast", "grilled")] = Band{MinKcal100g: 160, MaxKcal100g: 220}
	s.ConversionEnergyBands[classMethodKey("potato_russet", "hash_browns")] = Band{MinKcal100g: 150, MaxKcal100g: 200}

	s.CategoryConversionEnergyBands[entities.CategoryMeatPoultry] = Band{MinKcal100g: 100, MaxKcal100g: 300}
	s.CategoryConversionEnergyBands[entities.CategoryFishSeafood] = Band{MinKcal100g: 70, MaxKcal100g: 250}
	s.CategoryConversionEnergyBands[entities.CategoryStarchGrain] = Band{MinKcal100g: 70, MaxKcal100g: 200}
	s.CategoryConversionEnergyBands[entities.CategoryEgg] = Band{MinKcal100g: 130, MaxKcal100g: 160}
}

func (s *Store) seedMassRails() {
	s.MassRails["bacon_strip"] = Rail{Lo: 7, Hi: 13}
	s.MassRails["sausage_link"] = Rail{Lo: 20, Hi: 45}
	s.MassRails["egg_whole"] = Rail{Lo: 46, Hi: 55}
	s.MassRails["chicken_breast"] = Rail{Lo: 100, Hi: 200}
	s.MassRails["potato_cube"] = Rail{Lo: 6, Hi: 12}
}

func (s *Store) seedStage5() {
	for _, c := range []entities.CoreClass{"leafy_mixed_salad", "squash_summer_yellow", "tofu_plain_raw"} {
		s.Stage5Whitelist[c] = true
	}
	s.Stage5WhitelistKeywords = []string{"romaine", "green_leaf", "zucchini", "tofu"}

	s.Stage5CompositeBlends["leafy_mixed_salad"] = []string{"romaine", "green_leaf"}
	s.Stage5NameLookup["squash_summer_yellow"] = "zucchini raw"
	s.Stage5MacroDefaults["tofu_plain_raw"] = entities.NutrientSet{
		KcalPer100g:   f(76),
		ProteinPer100: f(8),
		CarbsPer100:   f(1.9),
		FatPer100:     f(4.8),
	}

	looseClasses := []entities.CoreClass{
		"grape", "melon", "cucumber", "carrot", "spinach", "lettuce",
		"tomato", "bell_pepper_green", "berry", "apple",
	}
	for _, c := range looseClasses {
		s.Stage1bLooseClasses[c] = true
	}
}

func (s *Store) seedStageZ() {
	s.StageZCategoryBands[entities.CategoryMeatPoultry] = Band{MinKcal100g: 100, MaxKcal100g: 300}
	s.StageZCategoryBands[entities.CategoryFishSeafood] = Band{MinKcal100g: 70, MaxKcal100g: 250}
	s.StageZCategoryBands[entities.CategoryStarchGrain] = Band{MinKcal100g: 70, MaxKcal100g: 200}
	s.StageZCategoryBands[entities.CategoryEgg] = Band{MinKcal100g: 130, MaxKcal100g: 160}
}

func (s *Store) seedTokenExpansion() {
	s.TokenSynonymExpansion["bell_pepper_green"] = []string{"capsicum", "sweet"}
	s.TokenSynonymExpansion["egg_white"] = []string{"white"}
	s.TokenSynonymExpansion["grape"] = []string{"grapes"}
}
