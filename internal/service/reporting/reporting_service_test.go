package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

type memoryStore struct {
	saved   []models.SessionResult
	saveErr error
	limit   int
}

func (m *memoryStore) SaveSessionResult(ctx context.Context, result models.SessionResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, result)
	return nil
}

func (m *memoryStore) TopSessionResults(ctx context.Context, limit int) ([]models.SessionResult, error) {
	m.limit = limit
	if len(m.saved) > limit {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}

type memoryExporter struct {
	rows []models.SessionResult
	err  error
}

func (m *memoryExporter) AppendResult(ctx context.Context, result models.SessionResult) error {
	m.rows = append(m.rows, result)
	return m.err
}

func TestRecordResultAssignsIDAndExports(t *testing.T) {
	store := &memoryStore{}
	exporter := &memoryExporter{}
	svc := NewService(store, exporter, nil)

	if err := svc.RecordResult(context.Background(), models.SessionResult{PlayerName: "Awa", Profit: 40}); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	if len(store.saved) != 1 || len(exporter.rows) != 1 {
		t.Fatalf("expected one stored and one exported row, got %d/%d", len(store.saved), len(exporter.rows))
	}
	if store.saved[0].ID == "" || store.saved[0].ID != exporter.rows[0].ID {
		t.Errorf("expected a shared generated id, got %q and %q", store.saved[0].ID, exporter.rows[0].ID)
	}
}

func TestRecordResultTriesEveryDestination(t *testing.T) {
	storeErr := errors.New("disk full")
	store := &memoryStore{saveErr: storeErr}
	exporter := &memoryExporter{}
	svc := NewService(store, exporter, nil)

	err := svc.RecordResult(context.Background(), models.SessionResult{ID: "fixed"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(exporter.rows) != 1 || exporter.rows[0].ID != "fixed" {
		t.Errorf("export must still run after a store failure")
	}
}

func TestLeaderboardLimits(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	cases := map[int]int{0: defaultLeaderboard, -3: defaultLeaderboard, 7: 7, 5000: maxLeaderboard}
	for in, want := range cases {
		if _, err := svc.Leaderboard(ctx, in); err != nil {
			t.Fatalf("Leaderboard(%d): %v", in, err)
		}
		if store.limit != want {
			t.Errorf("Leaderboard(%d): expected store limit %d, got %d", in, want, store.limit)
		}
	}
}

func TestLeaderboardWithoutStore(t *testing.T) {
	svc := NewService(nil, &memoryExporter{}, nil)
	if _, err := svc.Leaderboard(context.Background(), 5); !errors.Is(err, ErrResultsDisabled) {
		t.Fatalf("expected ErrResultsDisabled, got %v", err)
	}
	if err := svc.RecordResult(context.Background(), models.SessionResult{}); err != nil {
		t.Errorf("recording without a store should only export, got %v", err)
	}
}

func TestGenerateLeaderboardReport(t *testing.T) {
	store := &memoryStore{saved: []models.SessionResult{
		{PlayerName: "Binta", Profit: 480, TotalEggsSold: 20},
		{PlayerName: "", Profit: -200, GameOver: true},
	}}
	svc := NewService(store, nil, nil)
	now := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)

	report, err := svc.GenerateLeaderboardReport(context.Background(), now)
	if err != nil {
		t.Fatalf("GenerateLeaderboardReport: %v", err)
	}

	for _, want := range []string{"2026-10-16", "1. Binta +480 (20 eggs sold)", "2. anonymous -200 (0 eggs sold) 💀"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	empty, err := NewService(&memoryStore{}, nil, nil).GenerateLeaderboardReport(context.Background(), now)
	if err != nil {
		t.Fatalf("GenerateLeaderboardReport: %v", err)
	}
	if !strings.Contains(empty, "No finished games yet.") {
		t.Errorf("unexpected empty report %q", empty)
	}
}

func TestFormatSummary(t *testing.T) {
	text := FormatSummary(models.SessionResult{
		PlayerName:    "Awa",
		StartingMoney: 1000,
		FinalMoney:    1120,
		EggIncome:     420,
		ChickenCost:   200,
		FoodCost:      100,
		Profit:        120,
		AliveChickens: 2,
	})

	for _, want := range []string{"Game summary for Awa", "Final money: 1120 (started with 1000)", "Profit: +120"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}

	loss := FormatSummary(models.SessionResult{Profit: -50, GameOver: true})
	if !strings.Contains(loss, "Loss: -50") || !strings.Contains(loss, "All chickens died.") {
		t.Errorf("unexpected loss summary:\n%s", loss)
	}
}
