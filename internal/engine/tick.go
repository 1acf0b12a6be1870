package engine

import "github.com/mamadbah2/henhouse/internal/domain/models"

const (
	hungerBaseRate       = 0.5
	hungerNormalFactor   = 1.2
	hungerSlowdownFactor = 0.5
	growthPerTick        = 1.5
	eggRatePerTick       = 1.5
)

// tick advances the clock by one second and every living chicken by one step.
func tick(state models.GameState) models.GameState {
	if !state.Active() {
		return state
	}

	timeRemaining := state.TimeRemaining - 1
	if timeRemaining <= 0 {
		next := state.Clone()
		next.TimeRemaining = 0
		next.GameEnded = true
		return next
	}

	next := state.Clone()
	for i := range next.Chickens {
		stepChicken(&next.Chickens[i], timeRemaining)
	}

	if len(state.Chickens) > 0 && next.AliveChickens() == 0 {
		// The flock is gone; the clock is not advanced on this tick.
		next.GameOver = true
		next.GameEnded = true
		return next
	}

	next.TimeRemaining = timeRemaining
	return next
}

// stepChicken applies hunger and then either growth or egg progress, never both.
func stepChicken(c *models.Chicken, timeRemaining int) {
	if c.IsDead {
		return
	}

	breed, ok := models.LookupBreed(c.Breed)
	if !ok {
		return
	}

	factor := hungerNormalFactor
	if c.HungerSlowdownUntil > 0 && timeRemaining >= c.HungerSlowdownUntil {
		factor = hungerSlowdownFactor
	}

	hunger := c.Hunger - breed.HungerRateMultiplier*factor*hungerBaseRate
	if hunger <= 0 {
		c.Hunger = 0
		c.IsDead = true
		return
	}
	c.Hunger = hunger

	switch {
	case c.Level < models.MaxLevel:
		c.GrowthProgress += growthPerTick
		if c.GrowthProgress >= models.ProgressFull {
			c.Level++
			c.GrowthProgress = 0
		}
	case !c.HasEgg:
		c.EggProgress += breed.EggSpeedMultiplier * eggRatePerTick
		if c.EggProgress >= models.ProgressFull {
			c.HasEgg = true
			c.EggProgress = models.ProgressFull
		}
	}
}
