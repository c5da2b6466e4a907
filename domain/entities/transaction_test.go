package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_BalanceEffect(t *testing.T) {
	deposit := &Transaction{Kind: TransactionKindDeposit, Amount: 5000}
	assert.Equal(t, int64(5000), deposit.BalanceEffect())

	withdrawal := &Transaction{Kind: TransactionKindWithdraw, Amount: 3000}
	assert.Equal(t, int64(-3000), withdrawal.BalanceEffect())
}

func TestTransaction_Process(t *testing.T) {
	tx := &Transaction{Status: TransactionStatusPending}
	assert.True(t, tx.IsPending())

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tx.Process(TransactionStatusApproved, at)

	assert.Equal(t, TransactionStatusApproved, tx.Status)
	assert.False(t, tx.IsPending())
	require.NotNil(t, tx.ProcessedAt)
	assert.Equal(t, at, *tx.ProcessedAt)
}

func TestBalanceHistory_ValidateTransaction(t *testing.T) {
	tests := []struct {
		name        string
		history     BalanceHistory
		expectError bool
		errorMsg    string
	}{
		{
			name:    "valid credit",
			history: BalanceHistory{BalanceBefore: 100, BalanceAfter: 600, ChangeAmount: 500},
		},
		{
			name:    "valid debit to zero",
			history: BalanceHistory{BalanceBefore: 500, BalanceAfter: 0, ChangeAmount: -500},
		},
		{
			name:        "zero change",
			history:     BalanceHistory{BalanceBefore: 100, BalanceAfter: 100, ChangeAmount: 0},
			expectError: true,
			errorMsg:    "change amount cannot be zero",
		},
		{
			name:        "inconsistent arithmetic",
			history:     BalanceHistory{BalanceBefore: 100, BalanceAfter: 700, ChangeAmount: 500},
			expectError: true,
			errorMsg:    "balance calculation is inconsistent",
		},
		{
			name:        "negative result",
			history:     BalanceHistory{BalanceBefore: 100, BalanceAfter: -400, ChangeAmount: -500},
			expectError: true,
			errorMsg:    "balance cannot go negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.history.ValidateTransaction()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBankInfo_IsComplete(t *testing.T) {
	complete := BankInfo{
		BankName:      "みずほ銀行",
		BranchName:    "渋谷支店",
		AccountNumber: "1234567",
		AccountName:   "ヤマダ タロウ",
	}
	assert.True(t, complete.IsComplete())

	assert.False(t, BankInfo{}.IsComplete())

	partial := complete
	partial.AccountNumber = ""
	assert.False(t, partial.IsComplete())
}
