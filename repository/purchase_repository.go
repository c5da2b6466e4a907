package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"lottostore/database"
	"lottostore/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PurchaseRepository implements the PurchaseRepository interface
type PurchaseRepository struct {
	q Queryable
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *database.DB) *PurchaseRepository {
	return &PurchaseRepository{q: db.Pool}
}

func newPurchaseRepository(tx Queryable) *PurchaseRepository {
	return &PurchaseRepository{q: tx}
}

// Create appends a new purchase record
func (r *PurchaseRepository) Create(ctx context.Context, purchase *entities.Purchase) error {
	linesJSON, err := json.Marshal(purchase.Lines)
	if err != nil {
		return fmt.Errorf("failed to marshal purchase lines: %w", err)
	}

	query := `
		INSERT INTO purchases (public_id, user_id, game_id, lines, status, win_amount, is_processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		purchase.PublicID,
		purchase.UserID,
		purchase.GameID,
		linesJSON,
		purchase.Status,
		purchase.WinAmount,
		purchase.IsProcessed,
	).Scan(&purchase.ID, &purchase.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create purchase for user %d: %w", purchase.UserID, err)
	}

	return nil
}

func scanPurchase(row pgx.Row) (*entities.Purchase, error) {
	var purchase entities.Purchase
	var linesJSON []byte
	err := row.Scan(
		&purchase.ID,
		&purchase.PublicID,
		&purchase.UserID,
		&purchase.GameID,
		&linesJSON,
		&purchase.Status,
		&purchase.WinAmount,
		&purchase.IsProcessed,
		&purchase.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(linesJSON, &purchase.Lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal purchase lines: %w", err)
	}

	return &purchase, nil
}

const purchaseColumns = `id, public_id, user_id, game_id, lines, status, win_amount, is_processed, created_at`

// GetByID retrieves a purchase by its ID
func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*entities.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`

	purchase, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase %d: %w", id, err)
	}
	return purchase, nil
}

// GetByUser returns purchases for a user, newest first
func (r *PurchaseRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases for user %d: %w", userID, err)
	}
	defer rows.Close()

	return collectPurchases(rows)
}

// GetAllPending returns every unsettled purchase across all users. The rows
// are locked for the transaction, so two settlement passes over the same
// draw serialize instead of paying the same purchase twice.
func (r *PurchaseRepository) GetAllPending(ctx context.Context) ([]*entities.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE status = $1
		ORDER BY created_at ASC
		FOR UPDATE
	`

	rows, err := r.q.Query(ctx, query, entities.PurchaseStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending purchases: %w", err)
	}
	defer rows.Close()

	return collectPurchases(rows)
}

// UpdateSettlement persists a purchase's settled status, win amount and
// processed flag. Only pending purchases can transition; a purchase that was
// already settled elsewhere is rejected rather than settled again.
func (r *PurchaseRepository) UpdateSettlement(ctx context.Context, purchase *entities.Purchase) error {
	query := `
		UPDATE purchases
		SET status = $1, win_amount = $2, is_processed = $3
		WHERE id = $4 AND status = $5
	`
	result, err := r.q.Exec(ctx, query, purchase.Status, purchase.WinAmount, purchase.IsProcessed, purchase.ID, entities.PurchaseStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update settlement for purchase %d: %w", purchase.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("purchase with ID %d not found or already settled", purchase.ID)
	}

	return nil
}

func collectPurchases(rows pgx.Rows) ([]*entities.Purchase, error) {
	var purchases []*entities.Purchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, purchase)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchases: %w", err)
	}

	return purchases, nil
}
