package engine

import (
	"math/rand"
	"testing"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

func stateWithChicken(c models.Chicken, food string, qty int) models.GameState {
	s := activeState()
	s.Chickens = []models.Chicken{c}
	s.Inventory[food] = qty
	return s
}

func TestGrowthPotionQualityFloor(t *testing.T) {
	e := newTestEngine(t)
	chick := models.Chicken{ID: "c", Breed: models.BreedMeat, Level: 1, Hunger: 80, EggQuality: 0.2, GrowthProgress: 40}
	s := e.Apply(stateWithChicken(chick, "growth-potion", 1), models.FeedChicken{ChickenID: "c", FoodID: "growth-potion"})

	got := s.Chickens[0]
	if got.EggQuality != 0.1 {
		t.Errorf("expected quality floor 0.1, got %v", got.EggQuality)
	}
	if got.Level != 2 || got.GrowthProgress != 0 {
		t.Errorf("expected level 2 with progress reset, got level %d progress %v", got.Level, got.GrowthProgress)
	}
	if s.Inventory["growth-potion"] != 0 {
		t.Errorf("expected potion consumed, got %d", s.Inventory["growth-potion"])
	}
}

func TestGrowthPotionOnMatureChickenIsWasted(t *testing.T) {
	e := newTestEngine(t)
	hen := layingHen("hen", models.BreedEgg)
	s := e.Apply(stateWithChicken(hen, "growth-potion", 2), models.FeedChicken{ChickenID: "hen", FoodID: "growth-potion"})

	if s.Chickens[0] != hen {
		t.Errorf("expected chicken unchanged, got %+v", s.Chickens[0])
	}
	if s.Inventory["growth-potion"] != 1 {
		t.Errorf("expected potion consumed anyway, got %d", s.Inventory["growth-potion"])
	}
}

func TestEggPotion(t *testing.T) {
	e := newTestEngine(t)

	hen := layingHen("hen", models.BreedEgg)
	hen.EggProgress = 70
	s := e.Apply(stateWithChicken(hen, "egg-potion", 1), models.FeedChicken{ChickenID: "hen", FoodID: "egg-potion"})
	got := s.Chickens[0]
	if got.EggProgress != 100 {
		t.Errorf("expected egg progress capped at 100, got %v", got.EggProgress)
	}
	if !almostEqual(got.EggQuality, 1.7) {
		t.Errorf("expected quality 1.7, got %v", got.EggQuality)
	}
	if got.HasEgg {
		t.Errorf("potion must not lay the egg itself; the next tick does")
	}

	chick := models.Chicken{ID: "c", Breed: models.BreedEgg, Level: 2, Hunger: 90, EggQuality: 2}
	s = e.Apply(stateWithChicken(chick, "egg-potion", 1), models.FeedChicken{ChickenID: "c", FoodID: "egg-potion"})
	if s.Chickens[0] != chick {
		t.Errorf("egg potion on a juvenile should do nothing, got %+v", s.Chickens[0])
	}
	if s.Inventory["egg-potion"] != 0 {
		t.Errorf("expected potion consumed anyway, got %d", s.Inventory["egg-potion"])
	}
}

func TestRegularFoodGrowsAndLevelsUp(t *testing.T) {
	e := newTestEngine(t)
	chick := models.Chicken{ID: "c", Breed: models.BreedMeat, Level: 1, Hunger: 90, EggQuality: 1.2, GrowthProgress: 90}
	s := stateWithChicken(chick, "grass", 1)
	s.TimeRemaining = 500

	s = e.Apply(s, models.FeedChicken{ChickenID: "c", FoodID: "grass"})
	got := s.Chickens[0]

	if got.Hunger != 100 {
		t.Errorf("expected hunger capped at 100, got %v", got.Hunger)
	}
	if got.Level != 2 || got.GrowthProgress != 0 {
		t.Errorf("expected level up with progress reset, got level %d progress %v", got.Level, got.GrowthProgress)
	}
	if !almostEqual(got.EggQuality, 1.5) {
		t.Errorf("expected quality 1.5, got %v", got.EggQuality)
	}
	if got.HungerSlowdownUntil != 480 {
		t.Errorf("expected slowdown until 480, got %d", got.HungerSlowdownUntil)
	}
}

func TestRegularFoodDoesNotGrowMatureChicken(t *testing.T) {
	e := newTestEngine(t)
	hen := layingHen("hen", models.BreedEgg)
	hen.Hunger = 20
	hen.EggProgress = 30

	s := e.Apply(stateWithChicken(hen, "food-premium", 1), models.FeedChicken{ChickenID: "hen", FoodID: "food-premium"})
	got := s.Chickens[0]
	if got.Level != 3 || got.GrowthProgress != 0 || got.EggProgress != 30 {
		t.Errorf("unexpected progress change: %+v", got)
	}
	if got.Hunger != 80 {
		t.Errorf("expected hunger 80, got %v", got.Hunger)
	}
}

func TestSlowdownKeepsTheLongerProtection(t *testing.T) {
	cases := []struct {
		name          string
		current       int
		timeRemaining int
		food          string
		want          int
	}{
		{"no slowdown yet", 0, 500, "grass", 480},
		{"new food lasts longer", 480, 490, "food-premium", 430},
		{"existing lasts longer", 400, 490, "grass", 400},
		{"existing already expired", 495, 490, "grass", 470},
		{"equal expiries", 470, 490, "grass", 470},
		{"late feed keeps active slowdown", 5, 15, "grass", 1},
		{"late feed outlasts the game", 0, 15, "grass", 1},
		{"late feed after expiry", 20, 15, "food-premium", 1},
	}

	e := newTestEngine(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := models.Chicken{ID: "c", Breed: models.BreedMeat, Level: 1, Hunger: 50, EggQuality: 1.2, HungerSlowdownUntil: tc.current}
			s := stateWithChicken(c, tc.food, 1)
			s.TimeRemaining = tc.timeRemaining

			s = e.Apply(s, models.FeedChicken{ChickenID: "c", FoodID: tc.food})
			if got := s.Chickens[0].HungerSlowdownUntil; got != tc.want {
				t.Errorf("expected slowdown until %d, got %d", tc.want, got)
			}
		})
	}
}

func TestLateFeedKeepsHungerSlowed(t *testing.T) {
	e := newTestEngine(t)
	c := models.Chicken{ID: "c", Breed: models.BreedMeat, Level: 3, Hunger: 50, EggQuality: 1.2, HungerSlowdownUntil: 5}
	s := stateWithChicken(c, "grass", 1)
	s.TimeRemaining = 15

	s = e.Apply(s, models.FeedChicken{ChickenID: "c", FoodID: "grass"})
	fed := s.Chickens[0].Hunger
	s = e.Apply(s, models.Tick{})

	if got := fed - s.Chickens[0].Hunger; !almostEqual(got, 0.5*0.5*0.5) {
		t.Errorf("expected slowed hunger decay after a late feed, got %v", got)
	}
}

func TestQualityFloorHoldsForAnyFeedSequence(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(7))
	foods := models.FoodItems()

	s := activeState()
	s.Chickens = []models.Chicken{
		{ID: "a", Breed: models.BreedMeat, Level: 1, Hunger: 100, EggQuality: 0.4},
		{ID: "b", Breed: models.BreedEgg, Level: 3, Hunger: 100, EggQuality: 0.3},
	}

	for i := 0; i < 500; i++ {
		food := foods[rng.Intn(len(foods))]
		// Potions are overrepresented to keep pushing quality down.
		if rng.Intn(3) > 0 {
			food, _ = models.LookupFood("growth-potion")
			if rng.Intn(2) == 0 {
				food, _ = models.LookupFood("egg-potion")
			}
		}
		s.Inventory[food.ID] = 1
		target := s.Chickens[rng.Intn(len(s.Chickens))].ID
		s = e.Apply(s, models.FeedChicken{ChickenID: target, FoodID: food.ID})

		for _, c := range s.Chickens {
			if c.EggQuality < models.MinEggQuality {
				t.Fatalf("step %d: quality %v below floor on %s", i, c.EggQuality, c.ID)
			}
			if c.Hunger < 0 || c.Hunger > 100 {
				t.Fatalf("step %d: hunger %v out of bounds on %s", i, c.Hunger, c.ID)
			}
		}
	}
}
