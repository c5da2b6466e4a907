package entities

import "time"

// TransactionKind distinguishes deposit from withdrawal requests.
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
)

// TransactionStatus represents the review state of a money movement request.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// Transaction is a user's deposit or withdrawal request. It is created
// pending and transitions to approved or rejected exactly once, by an admin;
// only approval touches the owning user's balance.
type Transaction struct {
	ID          int64             `db:"id"`
	PublicID    string            `db:"public_id"` // External reference (UUID)
	UserID      int64             `db:"user_id"`
	Kind        TransactionKind   `db:"kind"`
	Amount      int64             `db:"amount"`
	Status      TransactionStatus `db:"status"`
	BankDetails *BankInfo         `db:"bank_details"` // Snapshot, withdrawals only
	CreatedAt   time.Time         `db:"created_at"`
	ProcessedAt *time.Time        `db:"processed_at"` // NULL while pending
}

// IsPending returns true if the request has not been reviewed yet.
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}

// BalanceEffect returns the signed balance change an approval applies.
func (t *Transaction) BalanceEffect() int64 {
	if t.Kind == TransactionKindWithdraw {
		return -t.Amount
	}
	return t.Amount
}

// Process marks the request as reviewed with the given outcome.
func (t *Transaction) Process(status TransactionStatus, at time.Time) {
	t.Status = status
	t.ProcessedAt = &at
}
