package sheets

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

const (
	headerRange  = "Results!A1:N1"
	resultsRange = "Results!A:N"
	columnCount  = 14
)

var header = []interface{}{
	"id", "finished_at", "player", "starting_money", "final_money", "egg_income", "chicken_cost",
	"food_cost", "profit", "alive_chickens", "dead_chickens", "eggs_produced", "eggs_sold", "game_over",
}

// ResultSheet keeps one row per finished session on the "Results" tab.
type ResultSheet struct {
	repo   Repository
	logger *zap.Logger
}

// NewResultSheet wraps repo and writes the header row when the tab is empty.
func NewResultSheet(ctx context.Context, repo Repository, logger *zap.Logger) (*ResultSheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows, err := repo.ReadRange(ctx, headerRange)
	if err != nil {
		return nil, fmt.Errorf("read results header: %w", err)
	}
	if len(rows) == 0 {
		if err := repo.WriteRow(ctx, resultsRange, header); err != nil {
			return nil, fmt.Errorf("write results header: %w", err)
		}
		logger.Info("results sheet header created")
	}

	return &ResultSheet{repo: repo, logger: logger}, nil
}

// AppendResult adds a session as a new row.
func (s *ResultSheet) AppendResult(ctx context.Context, result models.SessionResult) error {
	row := []interface{}{
		result.ID,
		result.FinishedAt.UTC().Format(time.RFC3339),
		result.PlayerName,
		result.StartingMoney,
		result.FinalMoney,
		result.EggIncome,
		result.ChickenCost,
		result.FoodCost,
		result.Profit,
		result.AliveChickens,
		result.DeadChickens,
		result.TotalEggsProduced,
		result.TotalEggsSold,
		strconv.FormatBool(result.GameOver),
	}
	return s.repo.WriteRow(ctx, resultsRange, row)
}

// SaveSessionResult lets the sheet act as the primary results store.
func (s *ResultSheet) SaveSessionResult(ctx context.Context, result models.SessionResult) error {
	return s.AppendResult(ctx, result)
}

// TopSessionResults reads every row and ranks them by profit. Malformed rows are skipped.
func (s *ResultSheet) TopSessionResults(ctx context.Context, limit int) ([]models.SessionResult, error) {
	rows, err := s.repo.ReadRange(ctx, resultsRange)
	if err != nil {
		return nil, fmt.Errorf("load results range: %w", err)
	}

	results := make([]models.SessionResult, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && fmt.Sprint(row[0]) == "id" {
			continue
		}
		res, err := parseRow(row)
		if err != nil {
			s.logger.Debug("skip malformed results row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		results = append(results, res)
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Profit != results[b].Profit {
			return results[a].Profit > results[b].Profit
		}
		return results[a].FinishedAt.Before(results[b].FinishedAt)
	})

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func parseRow(row []interface{}) (models.SessionResult, error) {
	if len(row) < columnCount {
		return models.SessionResult{}, fmt.Errorf("expected %d columns, got %d", columnCount, len(row))
	}

	finished, err := time.Parse(time.RFC3339, fmt.Sprint(row[1]))
	if err != nil {
		return models.SessionResult{}, fmt.Errorf("finished_at: %w", err)
	}

	ints := make([]int, 0, 10)
	for col := 3; col <= 12; col++ {
		v, err := parseInt(row[col])
		if err != nil {
			return models.SessionResult{}, fmt.Errorf("column %s: %w", header[col], err)
		}
		ints = append(ints, v)
	}

	gameOver, err := strconv.ParseBool(strings.ToLower(fmt.Sprint(row[13])))
	if err != nil {
		return models.SessionResult{}, fmt.Errorf("game_over: %w", err)
	}

	return models.SessionResult{
		ID:                fmt.Sprint(row[0]),
		FinishedAt:        finished,
		PlayerName:        fmt.Sprint(row[2]),
		StartingMoney:     ints[0],
		FinalMoney:        ints[1],
		EggIncome:         ints[2],
		ChickenCost:       ints[3],
		FoodCost:          ints[4],
		Profit:            ints[5],
		AliveChickens:     ints[6],
		DeadChickens:      ints[7],
		TotalEggsProduced: ints[8],
		TotalEggsSold:     ints[9],
		GameOver:          gameOver,
	}, nil
}

// parseInt accepts the string or float64 values the Sheets API returns for numbers.
func parseInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	}

	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.Atoi(str)
}
