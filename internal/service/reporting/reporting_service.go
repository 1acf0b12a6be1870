package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

const (
	dateLayout          = "2006-01-02"
	defaultLeaderboard  = 10
	maxLeaderboard      = 100
	reportLeaderboardSz = 5
)

// ErrResultsDisabled is returned by reads when no result store is configured.
var ErrResultsDisabled = errors.New("session results are not stored")

// ResultStore persists finished sessions and ranks them by profit.
type ResultStore interface {
	SaveSessionResult(ctx context.Context, result models.SessionResult) error
	TopSessionResults(ctx context.Context, limit int) ([]models.SessionResult, error)
}

// ResultExporter mirrors finished sessions to a secondary destination.
type ResultExporter interface {
	AppendResult(ctx context.Context, result models.SessionResult) error
}

// Service records session outcomes and renders leaderboard text.
type Service struct {
	store    ResultStore
	exporter ResultExporter
	logger   *zap.Logger
	newID    func() string
}

// NewService wires a new reporting service instance. store and exporter are optional.
func NewService(store ResultStore, exporter ResultExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		exporter: exporter,
		logger:   logger,
		newID:    func() string { return ulid.Make().String() },
	}
}

// RecordResult stores result and exports it. Both destinations are attempted even when
// one fails.
func (s *Service) RecordResult(ctx context.Context, result models.SessionResult) error {
	if result.ID == "" {
		result.ID = s.newID()
	}

	var errs []error
	if s.store != nil {
		if err := s.store.SaveSessionResult(ctx, result); err != nil {
			errs = append(errs, fmt.Errorf("save session result: %w", err))
		}
	}
	if s.exporter != nil {
		if err := s.exporter.AppendResult(ctx, result); err != nil {
			errs = append(errs, fmt.Errorf("export session result: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Leaderboard returns the most profitable sessions. limit <= 0 means the default size.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]models.SessionResult, error) {
	if s.store == nil {
		return nil, ErrResultsDisabled
	}

	switch {
	case limit <= 0:
		limit = defaultLeaderboard
	case limit > maxLeaderboard:
		limit = maxLeaderboard
	}

	results, err := s.store.TopSessionResults(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return results, nil
}

// GenerateLeaderboardReport renders the periodic leaderboard message.
func (s *Service) GenerateLeaderboardReport(ctx context.Context, now time.Time) (string, error) {
	results, err := s.Leaderboard(ctx, reportLeaderboardSz)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🐔 Henhouse leaderboard (%s)\n", now.Format(dateLayout))

	if len(results) == 0 {
		b.WriteString("No finished games yet.")
		return b.String(), nil
	}

	b.WriteString(FormatLeaderboard(results))
	return b.String(), nil
}

// FormatLeaderboard renders one line per ranked session.
func FormatLeaderboard(results []models.SessionResult) string {
	var b strings.Builder
	for i, r := range results {
		name := r.PlayerName
		if name == "" {
			name = "anonymous"
		}
		status := ""
		if r.GameOver {
			status = " 💀"
		}
		fmt.Fprintf(&b, "%d. %s %s (%d eggs sold)%s\n", i+1, name, signed(r.Profit), r.TotalEggsSold, status)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSummary renders the end-of-game summary.
func FormatSummary(r models.SessionResult) string {
	var b strings.Builder

	title := "Game summary"
	if r.PlayerName != "" {
		title = fmt.Sprintf("Game summary for %s", r.PlayerName)
	}
	b.WriteString(title)
	b.WriteString("\n")
	if r.GameOver {
		b.WriteString("All chickens died.\n")
	}

	fmt.Fprintf(&b, "Final money: %d (started with %d)\n", r.FinalMoney, r.StartingMoney)
	fmt.Fprintf(&b, "Egg income: %d\n", r.EggIncome)
	fmt.Fprintf(&b, "Chicken cost: %d\n", r.ChickenCost)
	fmt.Fprintf(&b, "Food cost: %d\n", r.FoodCost)
	fmt.Fprintf(&b, "Chickens: %d alive, %d dead\n", r.AliveChickens, r.DeadChickens)
	fmt.Fprintf(&b, "Eggs: %d produced, %d sold\n", r.TotalEggsProduced, r.TotalEggsSold)

	verdict := "Profit"
	if !r.IsProfit() {
		verdict = "Loss"
	}
	fmt.Fprintf(&b, "%s: %s", verdict, signed(r.Profit))

	return b.String()
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}
