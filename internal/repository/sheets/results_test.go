package sheets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

// memorySheet mimics Values.Append and Values.Get over one tab.
type memorySheet struct {
	rows    [][]interface{}
	readErr error
}

func (m *memorySheet) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if !strings.HasPrefix(sheetRange, "Results!") {
		return errors.New("unexpected range " + sheetRange)
	}
	m.rows = append(m.rows, values)
	return nil
}

func (m *memorySheet) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if sheetRange == headerRange {
		if len(m.rows) == 0 {
			return nil, nil
		}
		return m.rows[:1], nil
	}
	return m.rows, nil
}

func TestNewResultSheetWritesHeaderOnce(t *testing.T) {
	ctx := context.Background()
	mem := &memorySheet{}

	if _, err := NewResultSheet(ctx, mem, nil); err != nil {
		t.Fatalf("NewResultSheet: %v", err)
	}
	if _, err := NewResultSheet(ctx, mem, nil); err != nil {
		t.Fatalf("NewResultSheet: %v", err)
	}

	if len(mem.rows) != 1 || mem.rows[0][0] != "id" {
		t.Errorf("expected a single header row, got %v", mem.rows)
	}
}

func TestNewResultSheetPropagatesReadError(t *testing.T) {
	mem := &memorySheet{readErr: errors.New("quota exceeded")}
	if _, err := NewResultSheet(context.Background(), mem, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAppendAndRankResults(t *testing.T) {
	ctx := context.Background()
	mem := &memorySheet{}
	sheet, err := NewResultSheet(ctx, mem, nil)
	if err != nil {
		t.Fatalf("NewResultSheet: %v", err)
	}

	base := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)
	for i, r := range []models.SessionResult{
		{ID: "a", PlayerName: "Awa", Profit: 50, FinishedAt: base},
		{ID: "b", PlayerName: "Binta", Profit: 300, TotalEggsSold: 12, FinishedAt: base.Add(time.Minute)},
		{ID: "c", PlayerName: "Cheick", Profit: -100, GameOver: true, FinishedAt: base.Add(2 * time.Minute)},
	} {
		if err := sheet.AppendResult(ctx, r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	// Numbers read back unformatted arrive as float64.
	mem.rows = append(mem.rows, []interface{}{"d", base.Format(time.RFC3339), "Djenab", float64(1000), float64(1100),
		float64(300), float64(200), float64(0), float64(100), float64(2), float64(0), float64(4), float64(3), "FALSE"})
	mem.rows = append(mem.rows, []interface{}{"broken", "yesterday"})

	top, err := sheet.TopSessionResults(ctx, 3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 results, got %d", len(top))
	}
	if top[0].PlayerName != "Binta" || top[0].TotalEggsSold != 12 {
		t.Errorf("unexpected leader %+v", top[0])
	}
	if top[1].PlayerName != "Djenab" || top[1].FinalMoney != 1100 {
		t.Errorf("unexpected second place %+v", top[1])
	}
	if top[2].PlayerName != "Awa" {
		t.Errorf("unexpected third place %+v", top[2])
	}

	all, _ := sheet.TopSessionResults(ctx, 10)
	if last := all[len(all)-1]; !last.GameOver || last.Profit != -100 {
		t.Errorf("expected losing session last, got %+v", last)
	}
}
