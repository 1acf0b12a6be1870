package game

import (
	"context"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

// SetPlayerName names the player of the current session.
func (s *Service) SetPlayerName(ctx context.Context, name string) (models.GameState, error) {
	return s.Dispatch(ctx, models.SetPlayerName{Name: name})
}

// StartGame starts the clock.
func (s *Service) StartGame(ctx context.Context) (models.GameState, error) {
	return s.Dispatch(ctx, models.StartGame{})
}

// EndGame ends the session early.
func (s *Service) EndGame(ctx context.Context) (models.GameState, error) {
	return s.Dispatch(ctx, models.EndGame{})
}

func (s *Service) ToggleSound(ctx context.Context) (models.GameState, error) {
	return s.Dispatch(ctx, models.ToggleSound{})
}

func (s *Service) BuyChicken(ctx context.Context, breed models.Breed) (models.GameState, error) {
	return s.Dispatch(ctx, models.BuyChicken{Breed: breed})
}

func (s *Service) BuyFood(ctx context.Context, foodID string) (models.GameState, error) {
	return s.Dispatch(ctx, models.BuyFood{FoodID: foodID})
}

func (s *Service) SellFood(ctx context.Context, foodID string) (models.GameState, error) {
	return s.Dispatch(ctx, models.SellFood{FoodID: foodID})
}

func (s *Service) FeedChicken(ctx context.Context, chickenID, foodID string) (models.GameState, error) {
	return s.Dispatch(ctx, models.FeedChicken{ChickenID: chickenID, FoodID: foodID})
}

func (s *Service) CollectEgg(ctx context.Context, chickenID string) (models.GameState, error) {
	return s.Dispatch(ctx, models.CollectEgg{ChickenID: chickenID})
}

// SellEggs sells every collected egg.
func (s *Service) SellEggs(ctx context.Context) (models.GameState, error) {
	return s.Dispatch(ctx, models.SellEggs{})
}

// ResetGame discards the session and stops ticking.
func (s *Service) ResetGame(ctx context.Context) (models.GameState, error) {
	return s.Dispatch(ctx, models.ResetGame{})
}
