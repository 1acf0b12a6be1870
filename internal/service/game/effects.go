package game

import "github.com/mamadbah2/henhouse/internal/domain/models"

// deriveEffects names the cues a transition produced. Nothing is emitted while sound is off.
func deriveEffects(action models.Action, prev, next models.GameState) []models.Effect {
	if !next.SoundEnabled {
		return nil
	}

	var effects []models.Effect

	switch a := action.(type) {
	case models.BuyChicken:
		if next.TotalChickensBought > prev.TotalChickensBought {
			effects = append(effects, models.EffectBuy)
		}
	case models.BuyFood:
		if next.TotalFoodSpent > prev.TotalFoodSpent {
			effects = append(effects, models.EffectBuy)
		}
	case models.SellFood:
		if next.Money > prev.Money {
			effects = append(effects, models.EffectBuy)
		}
	case models.SellEggs:
		if len(prev.Eggs) > 0 {
			effects = append(effects, models.EffectBuy)
		}
	case models.FeedChicken:
		if next.Inventory[a.FoodID] < prev.Inventory[a.FoodID] {
			effects = append(effects, models.EffectClick)
		}
	case models.CollectEgg:
		if next.TotalEggsProduced > prev.TotalEggsProduced {
			effects = append(effects, models.EffectEgg)
		}
	}

	if len(prev.Chickens) != len(next.Chickens) {
		return effects
	}

	died, grew := false, false
	for i := range next.Chickens {
		before, after := prev.Chickens[i], next.Chickens[i]
		if after.IsDead && !before.IsDead {
			died = true
		}
		if after.Level > before.Level {
			grew = true
		}
	}
	if died {
		effects = append(effects, models.EffectDeath)
	}
	if grew {
		effects = append(effects, models.EffectLevelUp)
	}

	return effects
}
