package engine

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	n := 0
	return NewWithIDs(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func activeState() models.GameState {
	s := models.NewGameState()
	s.GameStarted = true
	return s
}

func layingHen(id string, breed models.Breed) models.Chicken {
	info, _ := models.LookupBreed(breed)
	return models.Chicken{
		ID:         id,
		Breed:      breed,
		Level:      3,
		Hunger:     100,
		EggQuality: info.BaseQualityMultiplier,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuyChicken(t *testing.T) {
	e := newTestEngine(t)
	s := e.Apply(models.NewGameState(), models.BuyChicken{Breed: models.BreedMeat})

	if s.Money != 900 {
		t.Errorf("expected money 900, got %d", s.Money)
	}
	if len(s.Chickens) != 1 {
		t.Fatalf("expected 1 chicken, got %d", len(s.Chickens))
	}
	c := s.Chickens[0]
	if c.Level != 1 || c.Hunger != 100 {
		t.Errorf("expected level 1 hunger 100, got level %d hunger %v", c.Level, c.Hunger)
	}
	if c.EggQuality != 1.2 {
		t.Errorf("expected base quality 1.2, got %v", c.EggQuality)
	}
	if c.ID != "id-1" || c.IsDead || c.HasEgg || c.HungerSlowdownUntil != 0 {
		t.Errorf("unexpected new chicken: %+v", c)
	}
	if s.TotalChickensBought != 1 {
		t.Errorf("expected 1 chicken bought, got %d", s.TotalChickensBought)
	}
}

func TestNoOpActions(t *testing.T) {
	e := newTestEngine(t)

	poor := models.NewGameState()
	poor.Money = 10

	withHen := activeState()
	withHen.Chickens = []models.Chicken{layingHen("hen", models.BreedEgg)}

	withDead := activeState()
	dead := layingHen("dead", models.BreedEgg)
	dead.IsDead = true
	dead.Hunger = 0
	withDead.Chickens = []models.Chicken{dead}
	withDead.Inventory["grass"] = 2

	fed := withHen.Clone()
	fed.Inventory["grass"] = 0

	cases := []struct {
		name   string
		state  models.GameState
		action models.Action
	}{
		{"buy chicken without money", poor, models.BuyChicken{Breed: models.BreedEgg}},
		{"buy unknown breed", models.NewGameState(), models.BuyChicken{Breed: "dodo"}},
		{"buy food without money", poor, models.BuyFood{FoodID: "food-good"}},
		{"buy unknown food", models.NewGameState(), models.BuyFood{FoodID: "cake"}},
		{"sell absent food", models.NewGameState(), models.SellFood{FoodID: "grass"}},
		{"feed with empty inventory", fed, models.FeedChicken{ChickenID: "hen", FoodID: "grass"}},
		{"feed unknown chicken", withDead, models.FeedChicken{ChickenID: "ghost", FoodID: "grass"}},
		{"feed dead chicken", withDead, models.FeedChicken{ChickenID: "dead", FoodID: "grass"}},
		{"collect without egg", withHen, models.CollectEgg{ChickenID: "hen"}},
		{"collect unknown chicken", withHen, models.CollectEgg{ChickenID: "ghost"}},
		{"tick before start", models.NewGameState(), models.Tick{}},
		{"nil action", withHen, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.state.Clone()
			got := e.Apply(tc.state, tc.action)
			if !reflect.DeepEqual(got, before) {
				t.Errorf("expected unchanged state\n got: %+v\nwant: %+v", got, before)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewGameState()
	s.Inventory["grass"] = 1
	s.Chickens = []models.Chicken{{ID: "c1", Breed: models.BreedMeat, Level: 1, Hunger: 50, EggQuality: 1.2}}
	before := s.Clone()

	_ = e.Apply(s, models.BuyFood{FoodID: "grass"})
	_ = e.Apply(s, models.FeedChicken{ChickenID: "c1", FoodID: "grass"})
	_ = e.Apply(s, models.BuyChicken{Breed: models.BreedEgg})

	if !reflect.DeepEqual(s, before) {
		t.Errorf("input state was mutated: %+v", s)
	}
}

func TestBuyAndSellFood(t *testing.T) {
	e := newTestEngine(t)
	s := e.Apply(models.NewGameState(), models.BuyFood{FoodID: "food-great"})

	if s.Money != 940 || s.Inventory["food-great"] != 1 || s.TotalFoodSpent != 60 {
		t.Fatalf("unexpected state after buy: money=%d inv=%d spent=%d", s.Money, s.Inventory["food-great"], s.TotalFoodSpent)
	}

	s = e.Apply(s, models.SellFood{FoodID: "food-great"})
	if s.Money != 1000 {
		t.Errorf("expected full refund to 1000, got %d", s.Money)
	}
	if s.Inventory["food-great"] != 0 {
		t.Errorf("expected inventory 0, got %d", s.Inventory["food-great"])
	}
	if s.TotalFoodSpent != 60 {
		t.Errorf("selling must not change total food spent, got %d", s.TotalFoodSpent)
	}
}

func TestCollectEgg(t *testing.T) {
	e := newTestEngine(t)
	s := activeState()
	hen := layingHen("hen", models.BreedBantam)
	hen.HasEgg = true
	hen.EggProgress = 100
	hen.EggQuality = 4.2
	s.Chickens = []models.Chicken{hen}

	s = e.Apply(s, models.CollectEgg{ChickenID: "hen"})

	if len(s.Eggs) != 1 {
		t.Fatalf("expected 1 egg, got %d", len(s.Eggs))
	}
	egg := s.Eggs[0]
	if egg.Quality != 4.2 || egg.ChickenID != "hen" || egg.ID == "" {
		t.Errorf("unexpected egg: %+v", egg)
	}
	if s.Chickens[0].HasEgg || s.Chickens[0].EggProgress != 0 {
		t.Errorf("expected egg cleared and progress reset, got %+v", s.Chickens[0])
	}
	if s.TotalEggsProduced != 1 {
		t.Errorf("expected 1 egg produced, got %d", s.TotalEggsProduced)
	}

	// Later quality changes must not reach the collected egg.
	s.Chickens[0].EggQuality = 0.5
	if s.Eggs[0].Quality != 4.2 {
		t.Errorf("egg quality should be a snapshot, got %v", s.Eggs[0].Quality)
	}
}

func TestSellEggs(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewGameState()
	s.Eggs = []models.Egg{
		{ID: "e1", Quality: 0.5},
		{ID: "e2", Quality: 2.5},
		{ID: "e3", Quality: 4.5},
	}

	s = e.Apply(s, models.SellEggs{})

	if s.Money != 1520 {
		t.Errorf("expected money 1520, got %d", s.Money)
	}
	if len(s.Eggs) != 0 {
		t.Errorf("expected no eggs left, got %d", len(s.Eggs))
	}
	if s.TotalEggsSold != 3 {
		t.Errorf("expected 3 eggs sold, got %d", s.TotalEggsSold)
	}
	if s.TotalEggsSoldValue != 520 {
		t.Errorf("expected sold value 520, got %d", s.TotalEggsSoldValue)
	}

	s = e.Apply(s, models.SellEggs{})
	if s.TotalEggsSold != 3 || s.Money != 1520 {
		t.Errorf("selling nothing should change nothing, got sold=%d money=%d", s.TotalEggsSold, s.Money)
	}
}

func TestSimpleFlags(t *testing.T) {
	e := newTestEngine(t)
	s := models.NewGameState()

	s = e.Apply(s, models.SetPlayerName{Name: "Aminata"})
	s = e.Apply(s, models.StartGame{})
	s = e.Apply(s, models.ToggleSound{})

	if s.PlayerName != "Aminata" || !s.GameStarted || s.SoundEnabled {
		t.Fatalf("unexpected flags: %+v", s)
	}

	s = e.Apply(s, models.EndGame{})
	if !s.GameEnded || s.GameOver {
		t.Errorf("end game should set gameEnded only, got ended=%v over=%v", s.GameEnded, s.GameOver)
	}
}

func TestResetGame(t *testing.T) {
	e := newTestEngine(t)
	s := activeState()
	s.PlayerName = "Ibrahima"
	s.Money = 12
	s.Chickens = []models.Chicken{layingHen("hen", models.BreedEgg)}
	s.GameEnded = true

	s = e.Apply(s, models.ResetGame{})

	if !reflect.DeepEqual(s, models.NewGameState()) {
		t.Errorf("expected fresh state, got %+v", s)
	}
}
