package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"lottostore/database"
	"lottostore/domain/entities"

	"github.com/jackc/pgx/v5"
)

// TransactionRepository implements the TransactionRepository interface
type TransactionRepository struct {
	q Queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

func newTransactionRepository(tx Queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

const transactionColumns = `id, public_id, user_id, kind, amount, status, bank_details, created_at, processed_at`

// Create records a new pending deposit or withdrawal request
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	var bankJSON []byte
	if tx.BankDetails != nil {
		var err error
		bankJSON, err = json.Marshal(tx.BankDetails)
		if err != nil {
			return fmt.Errorf("failed to marshal bank details: %w", err)
		}
	}

	query := `
		INSERT INTO transactions (public_id, user_id, kind, amount, status, bank_details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		tx.PublicID,
		tx.UserID,
		tx.Kind,
		tx.Amount,
		tx.Status,
		bankJSON,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create %s request for user %d: %w", tx.Kind, tx.UserID, err)
	}

	return nil
}

func scanTransaction(row pgx.Row) (*entities.Transaction, error) {
	var tx entities.Transaction
	var bankJSON []byte
	err := row.Scan(
		&tx.ID,
		&tx.PublicID,
		&tx.UserID,
		&tx.Kind,
		&tx.Amount,
		&tx.Status,
		&bankJSON,
		&tx.CreatedAt,
		&tx.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(bankJSON) > 0 {
		var info entities.BankInfo
		if err := json.Unmarshal(bankJSON, &info); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bank details: %w", err)
		}
		tx.BankDetails = &info
	}

	return &tx, nil
}

// GetByID retrieves a request by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*entities.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return tx, nil
}

// GetByIDForUpdate retrieves a request by its ID with a row lock, so
// concurrent reviews of the same request serialize
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d for update: %w", id, err)
	}
	return tx, nil
}

// GetByUser returns requests for a user, newest first
func (r *TransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// GetByStatus returns all requests in the given state, oldest first
func (r *TransactionRepository) GetByStatus(ctx context.Context, status entities.TransactionStatus) ([]*entities.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = $1
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions with status %s: %w", status, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// UpdateStatus persists a request's review outcome
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx *entities.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $1, processed_at = $2
		WHERE id = $3
	`
	result, err := r.q.Exec(ctx, query, tx.Status, tx.ProcessedAt, tx.ID)
	if err != nil {
		return fmt.Errorf("failed to update status for transaction %d: %w", tx.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction with ID %d not found", tx.ID)
	}

	return nil
}

func collectTransactions(rows pgx.Rows) ([]*entities.Transaction, error) {
	var txs []*entities.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}
