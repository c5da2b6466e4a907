package events

import "lottostore/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange        EventType = "balance_change"
	EventTypeUserCreated          EventType = "user_created"
	EventTypePurchasePlaced       EventType = "purchase_placed"
	EventTypeDrawCompleted        EventType = "draw_completed"
	EventTypeTransactionProcessed EventType = "transaction_processed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	TransactionType entities.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new account registration
type UserCreatedEvent struct {
	UserID         int64
	Email          string
	Username       string
	InitialBalance int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// PurchasePlacedEvent represents a ticket purchase that was recorded
type PurchasePlacedEvent struct {
	UserID     int64
	PurchaseID int64
	GameID     string
	LineCount  int
	TotalCost  int64
}

func (e PurchasePlacedEvent) Type() EventType {
	return EventTypePurchasePlaced
}

// DrawCompletedEvent represents a settlement pass that finished
type DrawCompletedEvent struct {
	DrawDate     string // YYYY-MM-DD
	GameIDs      []string
	SettledCount int
	WonCount     int
	TotalPayout  int64
}

func (e DrawCompletedEvent) Type() EventType {
	return EventTypeDrawCompleted
}

// TransactionProcessedEvent represents an admin decision on a deposit or
// withdrawal request
type TransactionProcessedEvent struct {
	TransactionID int64
	UserID        int64
	Kind          entities.TransactionKind
	Amount        int64
	Status        entities.TransactionStatus
}

func (e TransactionProcessedEvent) Type() EventType {
	return EventTypeTransactionProcessed
}
