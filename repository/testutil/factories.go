package testutil

import (
	"time"

	"lottostore/domain/entities"

	"github.com/google/uuid"
)

// CreateTestPurchase creates a pending purchase with default values
func CreateTestPurchase(userID int64, gameID string, lines [][]int) *entities.Purchase {
	return &entities.Purchase{
		PublicID: uuid.New().String(),
		UserID:   userID,
		GameID:   gameID,
		Lines:    lines,
		Status:   entities.PurchaseStatusPending,
	}
}

// CreateTestWinningSet creates a winning-number set for a game and date
func CreateTestWinningSet(gameID string, date time.Time, numbers []int) *entities.WinningNumberSet {
	return &entities.WinningNumberSet{
		GameID:   gameID,
		DrawDate: entities.TruncateToDrawDate(date),
		Numbers:  numbers,
		Source:   entities.WinningSetSourceDraw,
	}
}

// CreateTestTransaction creates a pending deposit request
func CreateTestTransaction(userID int64, kind entities.TransactionKind, amount int64) *entities.Transaction {
	return &entities.Transaction{
		PublicID: uuid.New().String(),
		UserID:   userID,
		Kind:     kind,
		Amount:   amount,
		Status:   entities.TransactionStatusPending,
	}
}

// CreateTestBalanceHistory creates a ledger row with consistent amounts
func CreateTestBalanceHistory(userID int64, before, change int64, transactionType entities.TransactionType) *entities.BalanceHistory {
	return &entities.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   before,
		BalanceAfter:    before + change,
		ChangeAmount:    change,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}

// CompleteBankInfo returns bank details that pass IsComplete
func CompleteBankInfo() entities.BankInfo {
	return entities.BankInfo{
		BankName:      "みずほ銀行",
		BranchName:    "本店",
		AccountNumber: "1234567",
		AccountName:   "ヤマダ タロウ",
	}
}
