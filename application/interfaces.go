package application

import (
	"context"

	"lottostore/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations.
// purchase, settle and transaction review all mutate balances and must be
// linearized relative to each other; each runs as one unit of work.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() interfaces.UserRepository
	PurchaseRepository() interfaces.PurchaseRepository
	WinningNumberRepository() interfaces.WinningNumberRepository
	TransactionRepository() interfaces.TransactionRepository
	BalanceHistoryRepository() interfaces.BalanceHistoryRepository

	// EventBus returns the transaction-scoped event publisher; events are
	// buffered and only delivered after a successful commit
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TransactionalEventPublisher buffers events during a transaction and
// delivers them on commit (or discards them on rollback)
type TransactionalEventPublisher interface {
	interfaces.EventPublisher

	// Flush delivers all buffered events; called after commit
	Flush(ctx context.Context) error

	// Discard drops all buffered events; called on rollback
	Discard()
}
