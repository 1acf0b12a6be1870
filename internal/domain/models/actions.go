package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction indicates an action request names no known action.
var ErrUnknownAction = errors.New("unknown action")

// ActionType enumerates every state transition.
type ActionType string

const (
	ActionSetPlayerName ActionType = "set_player_name"
	ActionStartGame     ActionType = "start_game"
	ActionEndGame       ActionType = "end_game"
	ActionToggleSound   ActionType = "toggle_sound"
	ActionBuyChicken    ActionType = "buy_chicken"
	ActionBuyFood       ActionType = "buy_food"
	ActionSellFood      ActionType = "sell_food"
	ActionFeedChicken   ActionType = "feed_chicken"
	ActionCollectEgg    ActionType = "collect_egg"
	ActionSellEggs      ActionType = "sell_eggs"
	ActionTick          ActionType = "tick"
	ActionResetGame     ActionType = "reset_game"
)

// Action is one of the variants below. The engine matches on the concrete type.
type Action interface {
	Type() ActionType
}

type (
	SetPlayerName struct{ Name string }
	StartGame     struct{}
	EndGame       struct{}
	ToggleSound   struct{}
	BuyChicken    struct{ Breed Breed }
	BuyFood       struct{ FoodID string }
	SellFood      struct{ FoodID string }
	FeedChicken   struct {
		ChickenID string
		FoodID    string
	}
	CollectEgg struct{ ChickenID string }
	SellEggs   struct{}
	Tick       struct{}
	ResetGame  struct{}
)

func (SetPlayerName) Type() ActionType { return ActionSetPlayerName }
func (StartGame) Type() ActionType     { return ActionStartGame }
func (EndGame) Type() ActionType       { return ActionEndGame }
func (ToggleSound) Type() ActionType   { return ActionToggleSound }
func (BuyChicken) Type() ActionType    { return ActionBuyChicken }
func (BuyFood) Type() ActionType       { return ActionBuyFood }
func (SellFood) Type() ActionType      { return ActionSellFood }
func (FeedChicken) Type() ActionType   { return ActionFeedChicken }
func (CollectEgg) Type() ActionType    { return ActionCollectEgg }
func (SellEggs) Type() ActionType      { return ActionSellEggs }
func (Tick) Type() ActionType          { return ActionTick }
func (ResetGame) Type() ActionType     { return ActionResetGame }

// ActionRequest is the wire form of a player action used by the HTTP and websocket surfaces.
type ActionRequest struct {
	Type      ActionType `json:"type" binding:"required"`
	Name      string     `json:"name,omitempty"`
	Breed     Breed      `json:"breed,omitempty"`
	FoodID    string     `json:"foodId,omitempty"`
	ChickenID string     `json:"chickenId,omitempty"`
}

// Action converts the request into its action variant. Ticks cannot be requested.
func (r ActionRequest) Action() (Action, error) {
	switch ActionType(strings.ToLower(string(r.Type))) {
	case ActionSetPlayerName:
		return SetPlayerName{Name: strings.TrimSpace(r.Name)}, nil
	case ActionStartGame:
		return StartGame{}, nil
	case ActionEndGame:
		return EndGame{}, nil
	case ActionToggleSound:
		return ToggleSound{}, nil
	case ActionBuyChicken:
		return BuyChicken{Breed: r.Breed}, nil
	case ActionBuyFood:
		return BuyFood{FoodID: r.FoodID}, nil
	case ActionSellFood:
		return SellFood{FoodID: r.FoodID}, nil
	case ActionFeedChicken:
		return FeedChicken{ChickenID: r.ChickenID, FoodID: r.FoodID}, nil
	case ActionCollectEgg:
		return CollectEgg{ChickenID: r.ChickenID}, nil
	case ActionSellEggs:
		return SellEggs{}, nil
	case ActionResetGame:
		return ResetGame{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, r.Type)
	}
}
