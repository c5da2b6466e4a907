package interfaces

import (
	"context"
	"time"

	"lottostore/domain/entities"
	"lottostore/domain/events"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByIDForUpdate retrieves a user by their ID with a row lock
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, email, username, passwordHash string, initialBalance int64) (*entities.User, error)

	// UpdateBalance updates a user's balance atomically
	UpdateBalance(ctx context.Context, userID int64, newBalance int64) error

	// UpdateBankInfo replaces a user's registered bank details
	UpdateBankInfo(ctx context.Context, userID int64, info entities.BankInfo) error

	// GetAll returns all users, newest first
	GetAll(ctx context.Context) ([]*entities.User, error)
}

// PurchaseRepository defines the interface for ticket purchase data access
type PurchaseRepository interface {
	// Create appends a new purchase record
	Create(ctx context.Context, purchase *entities.Purchase) error

	// GetByID retrieves a purchase by its ID
	GetByID(ctx context.Context, id int64) (*entities.Purchase, error)

	// GetByUser returns purchases for a user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Purchase, error)

	// GetAllPending returns every unsettled purchase across all users
	GetAllPending(ctx context.Context) ([]*entities.Purchase, error)

	// UpdateSettlement persists a purchase's settled status, win amount and
	// processed flag
	UpdateSettlement(ctx context.Context, purchase *entities.Purchase) error
}

// WinningNumberRepository defines the interface for winning-number set access
type WinningNumberRepository interface {
	// Create records a winning-number set; fails if one already exists for
	// the same (game, date) pair
	Create(ctx context.Context, set *entities.WinningNumberSet) error

	// GetByGameAndDate retrieves the set for a game on a date, or nil
	GetByGameAndDate(ctx context.Context, gameID string, date time.Time) (*entities.WinningNumberSet, error)

	// GetByDate returns all sets recorded for a draw date
	GetByDate(ctx context.Context, date time.Time) ([]*entities.WinningNumberSet, error)

	// GetHistory returns the most recent sets for a game, newest first
	GetHistory(ctx context.Context, gameID string, limit int) ([]*entities.WinningNumberSet, error)
}

// TransactionRepository defines the interface for deposit/withdrawal requests
type TransactionRepository interface {
	// Create records a new pending request
	Create(ctx context.Context, tx *entities.Transaction) error

	// GetByID retrieves a request by its ID
	GetByID(ctx context.Context, id int64) (*entities.Transaction, error)

	// GetByIDForUpdate retrieves a request by its ID with a row lock
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Transaction, error)

	// GetByUser returns requests for a user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error)

	// GetByStatus returns all requests in the given state, oldest first
	GetByStatus(ctx context.Context, status entities.TransactionStatus) ([]*entities.Transaction, error)

	// UpdateStatus persists a request's review outcome
	UpdateStatus(ctx context.Context, tx *entities.Transaction) error
}

// BalanceHistoryRepository defines the interface for the balance ledger
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns balance history for a specific user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.BalanceHistory, error)

	// GetByDateRange returns balance history within a date range
	GetByDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.BalanceHistory, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
