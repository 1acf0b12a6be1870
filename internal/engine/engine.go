// Package engine holds the farm simulation rules. Apply is pure: it never mutates the
// state it is given and never fails. Actions whose preconditions do not hold return the
// input state unchanged.
package engine

import (
	"math"

	"github.com/oklog/ulid/v2"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

// IDFunc generates identifiers for new chickens and eggs.
type IDFunc func() string

// Engine applies actions to game states.
type Engine struct {
	newID IDFunc
}

// New returns an engine that identifies entities with ULIDs.
func New() *Engine {
	return NewWithIDs(func() string { return ulid.Make().String() })
}

// NewWithIDs returns an engine using the supplied id generator.
func NewWithIDs(newID IDFunc) *Engine {
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	return &Engine{newID: newID}
}

// Apply computes the state that follows action.
func (e *Engine) Apply(state models.GameState, action models.Action) models.GameState {
	switch a := action.(type) {
	case models.SetPlayerName:
		next := state.Clone()
		next.PlayerName = a.Name
		return next
	case models.StartGame:
		next := state.Clone()
		next.GameStarted = true
		return next
	case models.EndGame:
		next := state.Clone()
		next.GameEnded = true
		return next
	case models.ToggleSound:
		next := state.Clone()
		next.SoundEnabled = !state.SoundEnabled
		return next
	case models.BuyChicken:
		return e.buyChicken(state, a)
	case models.BuyFood:
		return buyFood(state, a)
	case models.SellFood:
		return sellFood(state, a)
	case models.FeedChicken:
		return feedChicken(state, a)
	case models.CollectEgg:
		return e.collectEgg(state, a)
	case models.SellEggs:
		return sellEggs(state)
	case models.Tick:
		return tick(state)
	case models.ResetGame:
		return models.NewGameState()
	default:
		return state
	}
}

func (e *Engine) buyChicken(state models.GameState, a models.BuyChicken) models.GameState {
	breed, ok := models.LookupBreed(a.Breed)
	if !ok || state.Money < models.ChickenPrice {
		return state
	}

	next := state.Clone()
	next.Money -= models.ChickenPrice
	next.Chickens = append(next.Chickens, models.Chicken{
		ID:         e.newID(),
		Breed:      breed.Breed,
		Level:      1,
		Hunger:     models.MaxHunger,
		EggQuality: breed.BaseQualityMultiplier,
	})
	next.TotalChickensBought++
	return next
}

func buyFood(state models.GameState, a models.BuyFood) models.GameState {
	food, ok := models.LookupFood(a.FoodID)
	if !ok || state.Money < food.Price {
		return state
	}

	next := state.Clone()
	next.Money -= food.Price
	next.Inventory[food.ID]++
	next.TotalFoodSpent += food.Price
	return next
}

// sellFood refunds the full purchase price.
func sellFood(state models.GameState, a models.SellFood) models.GameState {
	food, ok := models.LookupFood(a.FoodID)
	if !ok || state.Inventory[food.ID] <= 0 {
		return state
	}

	next := state.Clone()
	next.Money += food.Price
	next.Inventory[food.ID]--
	return next
}

func (e *Engine) collectEgg(state models.GameState, a models.CollectEgg) models.GameState {
	idx := state.ChickenIndex(a.ChickenID)
	if idx < 0 || !state.Chickens[idx].HasEgg {
		return state
	}

	next := state.Clone()
	chicken := &next.Chickens[idx]
	next.Eggs = append(next.Eggs, models.Egg{
		ID:        e.newID(),
		Quality:   chicken.EggQuality,
		ChickenID: chicken.ID,
	})
	chicken.HasEgg = false
	chicken.EggProgress = 0
	next.TotalEggsProduced++
	return next
}

func sellEggs(state models.GameState) models.GameState {
	sold := len(state.Eggs)
	value := state.UnsoldEggValue()

	next := state.Clone()
	next.Money += value
	next.Eggs = []models.Egg{}
	next.TotalEggsSold += sold
	next.TotalEggsSoldValue += value
	return next
}

// adjustQuality applies an additive quality change with the floor enforced.
func adjustQuality(quality, delta float64) float64 {
	return math.Max(models.MinEggQuality, quality+delta)
}
