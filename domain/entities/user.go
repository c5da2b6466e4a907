package entities

import (
	"errors"
	"time"
)

// BankInfo holds the payout destination a user registered for withdrawals.
type BankInfo struct {
	BankName      string `json:"bank_name"`
	BranchName    string `json:"branch_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// IsComplete reports whether every bank detail has been filled in.
func (b BankInfo) IsComplete() bool {
	return b.BankName != "" && b.BranchName != "" && b.AccountNumber != "" && b.AccountName != ""
}

// User represents a storefront account with a stored balance.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Balance      int64     `db:"balance"` // Currency units, never negative
	IsAdmin      bool      `db:"is_admin"`
	BankInfo     BankInfo  `db:"-"` // Populated from bank_* columns
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// HasSufficientBalance checks if the user can cover an amount.
func (u *User) HasSufficientBalance(amount int64) bool {
	return u.Balance >= amount
}

// ValidateAmount checks if an amount is valid (positive and affordable).
func (u *User) ValidateAmount(amount int64) error {
	if amount <= 0 {
		return errors.New("amount must be positive")
	}
	if !u.HasSufficientBalance(amount) {
		return errors.New("insufficient balance")
	}
	return nil
}

// CalculateNewBalance calculates what the balance would be after a change.
func (u *User) CalculateNewBalance(changeAmount int64) int64 {
	return u.Balance + changeAmount
}
