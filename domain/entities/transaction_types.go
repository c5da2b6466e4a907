package entities

// TransactionType represents the type of balance change in the ledger.
type TransactionType string

// All transaction types recorded in balance history
const (
	TransactionTypeTicketPurchase TransactionType = "ticket_purchase"
	TransactionTypeLotteryWin     TransactionType = "lottery_win"
	TransactionTypeDeposit        TransactionType = "deposit"
	TransactionTypeWithdrawal     TransactionType = "withdrawal"
	TransactionTypeAdminAdjust    TransactionType = "admin_adjust"
	TransactionTypeInitial        TransactionType = "initial"
)

// IsCredit returns true if the transaction type normally increases balance.
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypeLotteryWin ||
		tt == TransactionTypeDeposit ||
		tt == TransactionTypeInitial
}

// IsDebit returns true if the transaction type normally decreases balance.
func (tt TransactionType) IsDebit() bool {
	return tt == TransactionTypeTicketPurchase ||
		tt == TransactionTypeWithdrawal
}

// String returns the string representation of the transaction type.
func (tt TransactionType) String() string {
	return string(tt)
}
