package entities

import (
	"errors"
	"time"
)

// RelatedType represents what kind of entity a ledger row refers to.
type RelatedType string

const (
	RelatedTypePurchase    RelatedType = "purchase"
	RelatedTypeTransaction RelatedType = "transaction"
	RelatedTypeWinningSet  RelatedType = "winning_set"
)

// BalanceHistory is one row of the balance ledger. Every balance mutation
// in the system writes exactly one row here, in the same transaction.
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	UserID              int64           `db:"user_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	RelatedID           *int64          `db:"related_id"`
	RelatedType         *RelatedType    `db:"related_type"`
	CreatedAt           time.Time       `db:"created_at"`
}

// IsPositiveChange returns true if the change amount is positive.
func (bh *BalanceHistory) IsPositiveChange() bool {
	return bh.ChangeAmount > 0
}

// ValidateTransaction performs basic validation on the ledger row.
func (bh *BalanceHistory) ValidateTransaction() error {
	if bh.ChangeAmount == 0 {
		return errors.New("change amount cannot be zero")
	}
	if bh.BalanceAfter != bh.BalanceBefore+bh.ChangeAmount {
		return errors.New("balance calculation is inconsistent")
	}
	if bh.BalanceAfter < 0 {
		return errors.New("balance cannot go negative")
	}
	return nil
}
