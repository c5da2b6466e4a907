package services

import (
	"context"
	"fmt"
	"time"

	"lottostore/domain/entities"
	"lottostore/domain/events"
	"lottostore/domain/interfaces"
	"lottostore/domain/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// walletService implements deposit/withdrawal requests and admin review.
type walletService struct {
	userRepo           interfaces.UserRepository
	transactionRepo    interfaces.TransactionRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
}

// NewWalletService creates a new wallet service
func NewWalletService(
	userRepo interfaces.UserRepository,
	transactionRepo interfaces.TransactionRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.WalletService {
	return &walletService{
		userRepo:           userRepo,
		transactionRepo:    transactionRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
	}
}

// RequestDeposit creates a pending deposit request. Nothing is credited
// until an admin approves it.
func (s *walletService) RequestDeposit(ctx context.Context, userID int64, amount int64) (*entities.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidSelection)
	}
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	tx := &entities.Transaction{
		PublicID: uuid.New().String(),
		UserID:   userID,
		Kind:     entities.TransactionKindDeposit,
		Amount:   amount,
		Status:   entities.TransactionStatusPending,
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create deposit request: %w", err)
	}
	return tx, nil
}

// RequestWithdrawal creates a pending withdrawal request with a snapshot of
// the user's registered bank details. The balance check happens at approval
// time; the request itself reserves nothing.
func (s *walletService) RequestWithdrawal(ctx context.Context, userID int64, amount int64) (*entities.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidSelection)
	}
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.BankInfo.IsComplete() {
		return nil, ErrBankInfoIncomplete
	}

	bankDetails := user.BankInfo
	tx := &entities.Transaction{
		PublicID:    uuid.New().String(),
		UserID:      userID,
		Kind:        entities.TransactionKindWithdraw,
		Amount:      amount,
		Status:      entities.TransactionStatusPending,
		BankDetails: &bankDetails,
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create withdrawal request: %w", err)
	}
	return tx, nil
}

// ProcessTransaction approves or rejects a pending request. The row is
// locked so a request transitions exactly once; approval applies the balance
// effect and a withdrawal that would overdraw fails instead of going through.
func (s *walletService) ProcessTransaction(ctx context.Context, transactionID int64, approve bool) (*entities.Transaction, error) {
	tx, err := s.transactionRepo.GetByIDForUpdate(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction %d not found", transactionID)
	}
	if !tx.IsPending() {
		return nil, fmt.Errorf("%w: %d is %s", ErrTransactionProcessed, transactionID, tx.Status)
	}

	status := entities.TransactionStatusRejected
	if approve {
		status = entities.TransactionStatusApproved

		// Locked read: the balance write below is absolute, so the user
		// row is held against concurrent debits and credits.
		user, err := s.userRepo.GetByIDForUpdate(ctx, tx.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock user: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, tx.UserID)
		}
		effect := tx.BalanceEffect()
		newBalance := user.CalculateNewBalance(effect)
		if newBalance < 0 {
			return nil, fmt.Errorf("%w: withdrawal of %d exceeds balance %d", ErrInsufficientBalance, tx.Amount, user.Balance)
		}
		if err := s.userRepo.UpdateBalance(ctx, tx.UserID, newBalance); err != nil {
			return nil, fmt.Errorf("failed to update balance: %w", err)
		}

		transactionType := entities.TransactionTypeDeposit
		if tx.Kind == entities.TransactionKindWithdraw {
			transactionType = entities.TransactionTypeWithdrawal
		}
		relatedType := entities.RelatedTypeTransaction
		history := &entities.BalanceHistory{
			UserID:          tx.UserID,
			BalanceBefore:   user.Balance,
			BalanceAfter:    newBalance,
			ChangeAmount:    effect,
			TransactionType: transactionType,
			TransactionMetadata: map[string]any{
				"transaction_public_id": tx.PublicID,
			},
			RelatedID:   &tx.ID,
			RelatedType: &relatedType,
		}
		if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
			return nil, fmt.Errorf("failed to record balance change: %w", err)
		}
	}

	tx.Process(status, time.Now().UTC())
	if err := s.transactionRepo.UpdateStatus(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	if err := s.eventPublisher.Publish(events.TransactionProcessedEvent{
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		Status:        tx.Status,
	}); err != nil {
		log.WithError(err).Error("Failed to publish transaction processed event")
	}

	return tx, nil
}

// GetUserTransactions returns a user's requests, newest first.
func (s *walletService) GetUserTransactions(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	txs, err := s.transactionRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, nil
}

// GetPendingTransactions returns all requests awaiting review, oldest first.
func (s *walletService) GetPendingTransactions(ctx context.Context) ([]*entities.Transaction, error) {
	txs, err := s.transactionRepo.GetByStatus(ctx, entities.TransactionStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transactions: %w", err)
	}
	return txs, nil
}

func (s *walletService) requireUser(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	return user, nil
}
