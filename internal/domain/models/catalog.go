package models

// Breed identifies a chicken breed.
type Breed string

const (
	BreedEgg      Breed = "egg"
	BreedMeat     Breed = "meat"
	BreedFighting Breed = "fighting"
	BreedBantam   Breed = "bantam"
)

// FoodKind separates regular feed from the two potions.
type FoodKind string

const (
	FoodKindRegular      FoodKind = "food"
	FoodKindGrowthPotion FoodKind = "growth-potion"
	FoodKindEggPotion    FoodKind = "egg-potion"
)

const (
	ChickenPrice  = 100
	StartingMoney = 1000
	// GameDuration is the length of one session in seconds of timeRemaining.
	GameDuration = 10 * 60

	MaxLevel      = 3
	MaxHunger     = 100.0
	MinEggQuality = 0.1
	ProgressFull  = 100.0
)

// BreedInfo holds the multipliers a breed applies to the simulation.
type BreedInfo struct {
	Breed                 Breed   `json:"breed"`
	DisplayName           string  `json:"displayName"`
	EggSpeedMultiplier    float64 `json:"eggSpeedMultiplier"`
	HungerRateMultiplier  float64 `json:"hungerRateMultiplier"`
	BaseQualityMultiplier float64 `json:"baseQualityMultiplier"`
}

// FoodItem describes something the player can buy and feed.
type FoodItem struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Price                 int      `json:"price"`
	HungerBoost           float64  `json:"hungerBoost"`
	QualityBoost          float64  `json:"qualityBoost"`
	GrowthBoost           float64  `json:"growthBoost"`
	HungerSlowdownSeconds int      `json:"hungerSlowdownSeconds"`
	Kind                  FoodKind `json:"kind"`
}

var breedTable = []BreedInfo{
	{Breed: BreedEgg, DisplayName: "Layer", EggSpeedMultiplier: 2, HungerRateMultiplier: 1.6, BaseQualityMultiplier: 2},
	{Breed: BreedMeat, DisplayName: "Broiler", EggSpeedMultiplier: 1.6, HungerRateMultiplier: 0.5, BaseQualityMultiplier: 1.2},
	{Breed: BreedFighting, DisplayName: "Gamecock", EggSpeedMultiplier: 1.2, HungerRateMultiplier: 1, BaseQualityMultiplier: 1.5},
	{Breed: BreedBantam, DisplayName: "Bantam", EggSpeedMultiplier: 1, HungerRateMultiplier: 0.3, BaseQualityMultiplier: 5},
}

var foodTable = []FoodItem{
	{ID: "grass", Name: "Fresh grass", Price: 20, HungerBoost: 35, QualityBoost: 0.3, GrowthBoost: 18, HungerSlowdownSeconds: 20, Kind: FoodKindRegular},
	{ID: "food-good", Name: "Good feed", Price: 40, HungerBoost: 50, QualityBoost: 0.3, GrowthBoost: 20, HungerSlowdownSeconds: 30, Kind: FoodKindRegular},
	{ID: "food-great", Name: "Great feed", Price: 60, HungerBoost: 50, QualityBoost: 0.5, GrowthBoost: 20, HungerSlowdownSeconds: 45, Kind: FoodKindRegular},
	{ID: "food-premium", Name: "Premium feed", Price: 90, HungerBoost: 60, QualityBoost: 0.8, GrowthBoost: 30, HungerSlowdownSeconds: 60, Kind: FoodKindRegular},
	{ID: "growth-potion", Name: "Growth potion", Price: 100, QualityBoost: -0.3, Kind: FoodKindGrowthPotion},
	{ID: "egg-potion", Name: "Egg potion", Price: 100, QualityBoost: -0.3, Kind: FoodKindEggPotion},
}

var levelNames = map[int]string{
	1: "chick",
	2: "juvenile",
	3: "laying",
}

// Breeds returns the breed table in display order.
func Breeds() []BreedInfo {
	out := make([]BreedInfo, len(breedTable))
	copy(out, breedTable)
	return out
}

// FoodItems returns the food table in display order.
func FoodItems() []FoodItem {
	out := make([]FoodItem, len(foodTable))
	copy(out, foodTable)
	return out
}

// LookupBreed returns the catalog entry for a breed.
func LookupBreed(b Breed) (BreedInfo, bool) {
	for _, info := range breedTable {
		if info.Breed == b {
			return info, true
		}
	}
	return BreedInfo{}, false
}

// LookupFood returns the catalog entry for a food id.
func LookupFood(id string) (FoodItem, bool) {
	for _, item := range foodTable {
		if item.ID == id {
			return item, true
		}
	}
	return FoodItem{}, false
}

// LevelName returns the display name of a maturity level.
func LevelName(level int) string {
	return levelNames[level]
}

// EggPriceFor maps an egg quality to its sale price. Upper bounds are inclusive.
func EggPriceFor(quality float64) int {
	switch {
	case quality <= 1:
		return 80
	case quality <= 2:
		return 120
	case quality <= 3:
		return 170
	case quality <= 4:
		return 240
	case quality <= 5:
		return 270
	default:
		return 310
	}
}

// Catalog is the read-only catalog surface served to presentation.
type Catalog struct {
	Breeds        []BreedInfo    `json:"breeds"`
	Foods         []FoodItem     `json:"foods"`
	Levels        map[int]string `json:"levels"`
	ChickenPrice  int            `json:"chickenPrice"`
	StartingMoney int            `json:"startingMoney"`
	GameDuration  int            `json:"gameDuration"`
	EggPriceTiers []EggPriceTier `json:"eggPriceTiers"`
}

// EggPriceTier is one step of EggPriceFor. MaxQuality 0 marks the unbounded last tier.
type EggPriceTier struct {
	MaxQuality float64 `json:"maxQuality"`
	Price      int     `json:"price"`
}

// CatalogView assembles the full catalog.
func CatalogView() Catalog {
	levels := make(map[int]string, len(levelNames))
	for k, v := range levelNames {
		levels[k] = v
	}
	return Catalog{
		Breeds:        Breeds(),
		Foods:         FoodItems(),
		Levels:        levels,
		ChickenPrice:  ChickenPrice,
		StartingMoney: StartingMoney,
		GameDuration:  GameDuration,
		EggPriceTiers: []EggPriceTier{
			{MaxQuality: 1, Price: 80},
			{MaxQuality: 2, Price: 120},
			{MaxQuality: 3, Price: 170},
			{MaxQuality: 4, Price: 240},
			{MaxQuality: 5, Price: 270},
			{Price: 310},
		},
	}
}
