package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

const timeLayout = time.RFC3339Nano

// SQLiteRepository stores finished sessions in a local SQLite file.
type SQLiteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteRepository opens or creates the database at dbPath.
func NewSQLiteRepository(dbPath string, logger *zap.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	r := &SQLiteRepository{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session_results (
		id                  TEXT PRIMARY KEY,
		player_name         TEXT NOT NULL,
		starting_money      INTEGER NOT NULL,
		final_money         INTEGER NOT NULL,
		egg_income          INTEGER NOT NULL,
		chicken_cost        INTEGER NOT NULL,
		food_cost           INTEGER NOT NULL,
		profit              INTEGER NOT NULL,
		alive_chickens      INTEGER NOT NULL,
		dead_chickens       INTEGER NOT NULL,
		total_eggs_produced INTEGER NOT NULL,
		total_eggs_sold     INTEGER NOT NULL,
		game_over           INTEGER NOT NULL DEFAULT 0,
		finished_at         TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_session_results_profit ON session_results(profit DESC, finished_at);
	`
	_, err := r.db.Exec(schema)
	return err
}

// SaveSessionResult inserts a finished session. The result must carry an ID.
func (r *SQLiteRepository) SaveSessionResult(ctx context.Context, result models.SessionResult) error {
	if result.ID == "" {
		return fmt.Errorf("session result id must not be empty")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_results (
			id, player_name, starting_money, final_money, egg_income, chicken_cost, food_cost,
			profit, alive_chickens, dead_chickens, total_eggs_produced, total_eggs_sold,
			game_over, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.PlayerName, result.StartingMoney, result.FinalMoney, result.EggIncome,
		result.ChickenCost, result.FoodCost, result.Profit, result.AliveChickens, result.DeadChickens,
		result.TotalEggsProduced, result.TotalEggsSold, result.GameOver,
		result.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert session result: %w", err)
	}

	r.logger.Debug("session result stored", zap.String("id", result.ID))
	return nil
}

// TopSessionResults returns up to limit results, most profitable first. Ties go to the
// earlier finish.
func (r *SQLiteRepository) TopSessionResults(ctx context.Context, limit int) ([]models.SessionResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_name, starting_money, final_money, egg_income, chicken_cost, food_cost,
			profit, alive_chickens, dead_chickens, total_eggs_produced, total_eggs_sold,
			game_over, finished_at
		FROM session_results
		ORDER BY profit DESC, finished_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query session results: %w", err)
	}
	defer rows.Close()

	results := make([]models.SessionResult, 0, limit)
	for rows.Next() {
		var (
			res      models.SessionResult
			finished string
		)
		if err := rows.Scan(
			&res.ID, &res.PlayerName, &res.StartingMoney, &res.FinalMoney, &res.EggIncome,
			&res.ChickenCost, &res.FoodCost, &res.Profit, &res.AliveChickens, &res.DeadChickens,
			&res.TotalEggsProduced, &res.TotalEggsSold, &res.GameOver, &finished,
		); err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}

		res.FinishedAt, err = time.Parse(timeLayout, finished)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", finished, err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
