package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lottostore/database"
	"lottostore/domain/entities"

	"github.com/jackc/pgx/v5"
)

// WinningNumberRepository implements the WinningNumberRepository interface
type WinningNumberRepository struct {
	q Queryable
}

// NewWinningNumberRepository creates a new winning number repository
func NewWinningNumberRepository(db *database.DB) *WinningNumberRepository {
	return &WinningNumberRepository{q: db.Pool}
}

func newWinningNumberRepository(tx Queryable) *WinningNumberRepository {
	return &WinningNumberRepository{q: tx}
}

const winningSetColumns = `id, game_id, draw_date, numbers, source, created_at`

// Create records a winning-number set. The unique index on (game_id, draw_date)
// rejects a second set for the same draw.
func (r *WinningNumberRepository) Create(ctx context.Context, set *entities.WinningNumberSet) error {
	numbersJSON, err := json.Marshal(set.Numbers)
	if err != nil {
		return fmt.Errorf("failed to marshal winning numbers: %w", err)
	}

	query := `
		INSERT INTO winning_number_sets (game_id, draw_date, numbers, source)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		set.GameID,
		set.DrawDate,
		numbersJSON,
		set.Source,
	).Scan(&set.ID, &set.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create winning number set for %s on %s: %w",
			set.GameID, entities.FormatDrawDate(set.DrawDate), err)
	}

	return nil
}

func scanWinningSet(row pgx.Row) (*entities.WinningNumberSet, error) {
	var set entities.WinningNumberSet
	var numbersJSON []byte
	err := row.Scan(
		&set.ID,
		&set.GameID,
		&set.DrawDate,
		&numbersJSON,
		&set.Source,
		&set.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(numbersJSON, &set.Numbers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal winning numbers: %w", err)
	}

	return &set, nil
}

// GetByGameAndDate retrieves the set for a game on a date, or nil if no draw
// has been recorded yet
func (r *WinningNumberRepository) GetByGameAndDate(ctx context.Context, gameID string, date time.Time) (*entities.WinningNumberSet, error) {
	query := `SELECT ` + winningSetColumns + ` FROM winning_number_sets WHERE game_id = $1 AND draw_date = $2`

	set, err := scanWinningSet(r.q.QueryRow(ctx, query, gameID, date))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get winning number set for %s on %s: %w",
			gameID, entities.FormatDrawDate(date), err)
	}
	return set, nil
}

// GetByDate returns all sets recorded for a draw date
func (r *WinningNumberRepository) GetByDate(ctx context.Context, date time.Time) ([]*entities.WinningNumberSet, error) {
	query := `
		SELECT ` + winningSetColumns + `
		FROM winning_number_sets
		WHERE draw_date = $1
		ORDER BY game_id ASC
	`

	rows, err := r.q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get winning number sets for %s: %w",
			entities.FormatDrawDate(date), err)
	}
	defer rows.Close()

	return collectWinningSets(rows)
}

// GetHistory returns the most recent sets for a game, newest first
func (r *WinningNumberRepository) GetHistory(ctx context.Context, gameID string, limit int) ([]*entities.WinningNumberSet, error) {
	query := `
		SELECT ` + winningSetColumns + `
		FROM winning_number_sets
		WHERE game_id = $1
		ORDER BY draw_date DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get winning number history for %s: %w", gameID, err)
	}
	defer rows.Close()

	return collectWinningSets(rows)
}

func collectWinningSets(rows pgx.Rows) ([]*entities.WinningNumberSet, error) {
	var sets []*entities.WinningNumberSet
	for rows.Next() {
		set, err := scanWinningSet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan winning number set: %w", err)
		}
		sets = append(sets, set)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate winning number sets: %w", err)
	}

	return sets, nil
}
