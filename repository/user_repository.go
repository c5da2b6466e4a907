package repository

import (
	"context"
	"fmt"

	"lottostore/database"
	"lottostore/domain/entities"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

func newUserRepository(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `
	id,
	email,
	username,
	password_hash,
	balance,
	is_admin,
	COALESCE(bank_name, ''),
	COALESCE(branch_name, ''),
	COALESCE(account_number, ''),
	COALESCE(account_name, ''),
	created_at,
	updated_at
`

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Balance,
		&user.IsAdmin,
		&user.BankInfo.BankName,
		&user.BankInfo.BranchName,
		&user.BankInfo.AccountNumber,
		&user.BankInfo.AccountName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %d: %w", userID, err)
	}
	return user, nil
}

// GetByIDForUpdate retrieves a user by their ID with a row lock. Every flow
// that writes the balance back as an absolute value reads through this, so
// concurrent debits and credits on the same user serialize instead of
// overwriting each other.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, userID int64) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	user, err := scanUser(r.q.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d for update: %w", userID, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by their email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, email, username, passwordHash string, initialBalance int64) (*entities.User, error) {
	query := `
		INSERT INTO users (email, username, password_hash, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_admin, created_at, updated_at
	`

	user := &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      initialBalance,
	}
	err := r.q.QueryRow(ctx, query, email, username, passwordHash, initialBalance).Scan(
		&user.ID,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", email, err)
	}

	return user, nil
}

// UpdateBalance updates a user's balance atomically
func (r *UserRepository) UpdateBalance(ctx context.Context, userID int64, newBalance int64) error {
	query := `
		UPDATE users
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.q.Exec(ctx, query, newBalance, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with ID %d not found", userID)
	}

	return nil
}

// UpdateBankInfo updates a user's payout bank details
func (r *UserRepository) UpdateBankInfo(ctx context.Context, userID int64, info entities.BankInfo) error {
	query := `
		UPDATE users
		SET bank_name = $1, branch_name = $2, account_number = $3, account_name = $4, updated_at = NOW()
		WHERE id = $5
	`
	result, err := r.q.Exec(ctx, query, info.BankName, info.BranchName, info.AccountNumber, info.AccountName, userID)
	if err != nil {
		return fmt.Errorf("failed to update bank info for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with ID %d not found", userID)
	}

	return nil
}

// GetAll returns all users ordered by creation time
func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
