package interfaces

import (
	"context"
	"time"

	"lottostore/domain/entities"
)

// SettlementResult summarizes one settlement pass for a draw date.
type SettlementResult struct {
	DrawDate    time.Time
	WinningSets []*entities.WinningNumberSet // Sets in effect for the date, per game
	Settled     int                          // Purchases transitioned out of pending
	Won         int                          // Purchases that hit the jackpot
	TotalPayout int64                        // Sum of win amounts credited this pass
}

// SettlementService resolves pending purchases against winning numbers.
type SettlementService interface {
	// Settle runs the draw for a date: ensures each listed game has a
	// winning-number set, partitions those games' pending purchases into
	// won/lost and credits payouts. Purchases for games outside the list
	// stay pending. Re-running for an already-drawn date is a no-op.
	Settle(ctx context.Context, date time.Time, games []*entities.Game) (*SettlementResult, error)

	// SetWinningNumbers records a manually entered winning set for a game
	// and date. Fails if a set already exists for the pair.
	SetWinningNumbers(ctx context.Context, gameID string, date time.Time, numbers []int) (*entities.WinningNumberSet, error)
}

// PurchaseResult is returned after a successful ticket purchase.
type PurchaseResult struct {
	Purchase   *entities.Purchase
	TotalCost  int64
	NewBalance int64
}

// PurchaseService handles ticket purchases against stored balances.
type PurchaseService interface {
	// Purchase validates the ticket lines, debits the cost and appends a
	// pending purchase, atomically.
	Purchase(ctx context.Context, userID int64, gameID string, lines [][]int) (*PurchaseResult, error)

	// GetUserPurchases returns a user's purchases, newest first.
	GetUserPurchases(ctx context.Context, userID int64, limit int) ([]*entities.Purchase, error)
}

// WalletService handles deposit/withdrawal requests and their review.
type WalletService interface {
	// RequestDeposit creates a pending deposit request.
	RequestDeposit(ctx context.Context, userID int64, amount int64) (*entities.Transaction, error)

	// RequestWithdrawal creates a pending withdrawal request, snapshotting
	// the user's registered bank details.
	RequestWithdrawal(ctx context.Context, userID int64, amount int64) (*entities.Transaction, error)

	// ProcessTransaction approves or rejects a pending request; approval
	// applies the balance effect.
	ProcessTransaction(ctx context.Context, transactionID int64, approve bool) (*entities.Transaction, error)

	// GetUserTransactions returns a user's requests, newest first.
	GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error)

	// GetPendingTransactions returns all requests awaiting review.
	GetPendingTransactions(ctx context.Context) ([]*entities.Transaction, error)
}

// AccountService handles registration, login and account maintenance.
type AccountService interface {
	// Register creates a new account with a hashed password.
	Register(ctx context.Context, email, password, username string) (*entities.User, error)

	// Authenticate verifies credentials and returns the account.
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)

	// GetUser retrieves an account by ID.
	GetUser(ctx context.Context, userID int64) (*entities.User, error)

	// UpdateBankInfo replaces the account's registered bank details.
	UpdateBankInfo(ctx context.Context, userID int64, info entities.BankInfo) error

	// AdjustBalance sets an account's balance to an explicit value and
	// records the change in the ledger (admin panel operation).
	AdjustBalance(ctx context.Context, userID int64, newBalance int64) (*entities.User, error)

	// ListUsers returns all accounts for the admin panel.
	ListUsers(ctx context.Context) ([]*entities.User, error)
}
