package engine

import (
	"math"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

// eggPotionBoost is the egg progress an egg potion adds.
const eggPotionBoost = 50.0

// feedChicken consumes one unit of food even when a potion has no effect on the chicken.
func feedChicken(state models.GameState, a models.FeedChicken) models.GameState {
	food, ok := models.LookupFood(a.FoodID)
	if !ok || state.Inventory[food.ID] <= 0 {
		return state
	}

	idx := state.ChickenIndex(a.ChickenID)
	if idx < 0 || state.Chickens[idx].IsDead {
		return state
	}

	next := state.Clone()
	chicken := &next.Chickens[idx]

	switch food.Kind {
	case models.FoodKindGrowthPotion:
		if chicken.Level < models.MaxLevel {
			chicken.Level++
			chicken.GrowthProgress = 0
			chicken.EggQuality = adjustQuality(chicken.EggQuality, food.QualityBoost)
		}
	case models.FoodKindEggPotion:
		if chicken.Level == models.MaxLevel {
			chicken.EggProgress = math.Min(models.ProgressFull, chicken.EggProgress+eggPotionBoost)
			chicken.EggQuality = adjustQuality(chicken.EggQuality, food.QualityBoost)
		}
	default:
		feedRegular(chicken, food, state.TimeRemaining)
	}

	next.Inventory[food.ID]--
	return next
}

func feedRegular(chicken *models.Chicken, food models.FoodItem, timeRemaining int) {
	chicken.Hunger = math.Min(models.MaxHunger, chicken.Hunger+food.HungerBoost)
	chicken.EggQuality = adjustQuality(chicken.EggQuality, food.QualityBoost)

	if chicken.Level < models.MaxLevel && food.GrowthBoost > 0 {
		chicken.GrowthProgress = math.Min(models.ProgressFull, chicken.GrowthProgress+food.GrowthBoost)
		if chicken.GrowthProgress >= models.ProgressFull {
			chicken.Level++
			chicken.GrowthProgress = 0
		}
	}

	if food.HungerSlowdownSeconds > 0 {
		// A slowdown longer than the time left lasts until the end of the game.
		candidate := max(1, timeRemaining-food.HungerSlowdownSeconds)
		chicken.HungerSlowdownUntil = slowdownExpiry(chicken.HungerSlowdownUntil, candidate)
	}
}

// slowdownExpiry picks the expiry that protects the chicken longer. Expiries are
// timeRemaining values and time counts down, so a lower positive value lasts longer.
func slowdownExpiry(current, candidate int) int {
	if current > 0 && current < candidate {
		return current
	}
	return candidate
}
