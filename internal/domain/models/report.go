package models

import "time"

// SessionResult is the profit/loss outcome of a finished game.
type SessionResult struct {
	ID                string    `bson:"_id,omitempty" json:"id,omitempty"`
	PlayerName        string    `bson:"player_name" json:"playerName"`
	StartingMoney     int       `bson:"starting_money" json:"startingMoney"`
	FinalMoney        int       `bson:"final_money" json:"finalMoney"`
	EggIncome         int       `bson:"egg_income" json:"eggIncome"`
	ChickenCost       int       `bson:"chicken_cost" json:"chickenCost"`
	FoodCost          int       `bson:"food_cost" json:"foodCost"`
	Profit            int       `bson:"profit" json:"profit"`
	AliveChickens     int       `bson:"alive_chickens" json:"aliveChickens"`
	DeadChickens      int       `bson:"dead_chickens" json:"deadChickens"`
	TotalEggsProduced int       `bson:"total_eggs_produced" json:"totalEggsProduced"`
	TotalEggsSold     int       `bson:"total_eggs_sold" json:"totalEggsSold"`
	GameOver          bool      `bson:"game_over" json:"gameOver"`
	FinishedAt        time.Time `bson:"finished_at" json:"finishedAt"`
}

// IsProfit reports whether the session made money.
func (r SessionResult) IsProfit() bool {
	return r.Profit >= 0
}

// Summarize derives the end-of-game outcome. Unsold eggs count at their current price.
func Summarize(s GameState, finishedAt time.Time) SessionResult {
	unsold := s.UnsoldEggValue()
	eggIncome := s.TotalEggsSoldValue + unsold
	chickenCost := s.TotalChickensBought * ChickenPrice
	alive := s.AliveChickens()

	return SessionResult{
		PlayerName:        s.PlayerName,
		StartingMoney:     StartingMoney,
		FinalMoney:        s.Money + unsold,
		EggIncome:         eggIncome,
		ChickenCost:       chickenCost,
		FoodCost:          s.TotalFoodSpent,
		Profit:            eggIncome - (chickenCost + s.TotalFoodSpent),
		AliveChickens:     alive,
		DeadChickens:      len(s.Chickens) - alive,
		TotalEggsProduced: s.TotalEggsProduced,
		TotalEggsSold:     s.TotalEggsSold,
		GameOver:          s.GameOver,
		FinishedAt:        finishedAt,
	}
}
