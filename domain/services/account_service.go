package services

import (
	"context"
	"fmt"
	"strings"

	"lottostore/domain/entities"
	"lottostore/domain/events"
	"lottostore/domain/interfaces"
	"lottostore/domain/utils"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// accountService implements registration, login and account maintenance.
type accountService struct {
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
	startingBalance    int64
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
	startingBalance int64,
) interfaces.AccountService {
	return &accountService{
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		startingBalance:    startingBalance,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *accountService) Register(ctx context.Context, email, password, username string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || username == "" {
		return nil, fmt.Errorf("%w: email, password and username are required", ErrInvalidSelection)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, email, username, string(hash), s.startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.startingBalance > 0 {
		history := &entities.BalanceHistory{
			UserID:          user.ID,
			BalanceBefore:   0,
			BalanceAfter:    s.startingBalance,
			ChangeAmount:    s.startingBalance,
			TransactionType: entities.TransactionTypeInitial,
			TransactionMetadata: map[string]any{
				"username": username,
			},
		}
		if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	if err := s.eventPublisher.Publish(events.UserCreatedEvent{
		UserID:         user.ID,
		Email:          user.Email,
		Username:       user.Username,
		InitialBalance: user.Balance,
	}); err != nil {
		log.WithError(err).Error("Failed to publish user created event")
	}

	return user, nil
}

// Authenticate verifies credentials and returns the account.
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser retrieves an account by ID.
func (s *accountService) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	return user, nil
}

// UpdateBankInfo replaces the account's registered bank details.
func (s *accountService) UpdateBankInfo(ctx context.Context, userID int64, info entities.BankInfo) error {
	if !info.IsComplete() {
		return ErrBankInfoIncomplete
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.UpdateBankInfo(ctx, userID, info); err != nil {
		return fmt.Errorf("failed to update bank info: %w", err)
	}
	return nil
}

// AdjustBalance sets an account's balance to an explicit value (admin panel
// operation) and records the change in the ledger.
func (s *accountService) AdjustBalance(ctx context.Context, userID int64, newBalance int64) (*entities.User, error) {
	if newBalance < 0 {
		return nil, fmt.Errorf("%w: balance cannot be negative", ErrInvalidSelection)
	}
	// Locked read so the adjustment serializes with purchases and credits
	// on the same account.
	user, err := s.userRepo.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	if newBalance == user.Balance {
		return user, nil
	}

	if err := s.userRepo.UpdateBalance(ctx, userID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	history := &entities.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   user.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    newBalance - user.Balance,
		TransactionType: entities.TransactionTypeAdminAdjust,
		TransactionMetadata: map[string]any{
			"admin": true,
		},
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return nil, fmt.Errorf("failed to record balance adjustment: %w", err)
	}

	user.Balance = newBalance
	return user, nil
}

// ListUsers returns all accounts for the admin panel.
func (s *accountService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
