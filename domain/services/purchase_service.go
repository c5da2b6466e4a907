package services

import (
	"context"
	"fmt"
	"sort"

	"lottostore/domain/entities"
	"lottostore/domain/events"
	"lottostore/domain/interfaces"
	"lottostore/domain/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// purchaseService implements ticket purchasing against stored balances.
type purchaseService struct {
	userRepo           interfaces.UserRepository
	purchaseRepo       interfaces.PurchaseRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	userRepo interfaces.UserRepository,
	purchaseRepo interfaces.PurchaseRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.PurchaseService {
	return &purchaseService{
		userRepo:           userRepo,
		purchaseRepo:       purchaseRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
	}
}

// Purchase validates the ticket lines, debits the cost and appends a pending
// purchase. Runs inside the caller's unit-of-work transaction, so a failure
// at any step leaves balance and purchase list untouched.
func (s *purchaseService) Purchase(ctx context.Context, userID int64, gameID string, lines [][]int) (*interfaces.PurchaseResult, error) {
	game := entities.GameByID(gameID)
	if game == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
	}

	// Empty slots from the picker are dropped; what remains must each be a
	// complete line for the game.
	normalized := make([][]int, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		sorted := make([]int, len(line))
		copy(sorted, line)
		sort.Ints(sorted)
		if !game.ValidLine(sorted) {
			return nil, fmt.Errorf("%w: each %s line needs %d distinct numbers in [1, %d]",
				ErrInvalidSelection, game.ID, game.PickCount, game.MaxNumber)
		}
		normalized = append(normalized, sorted)
	}
	if len(normalized) == 0 {
		return nil, fmt.Errorf("%w: no completed lines", ErrInvalidSelection)
	}

	// Locked read: a concurrent purchase, settlement credit or approved
	// deposit on the same user must not overwrite this debit.
	user, err := s.userRepo.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}

	totalCost := game.CostFor(len(normalized))
	if !user.HasSufficientBalance(totalCost) {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, user.Balance, totalCost)
	}

	newBalance := user.Balance - totalCost
	if err := s.userRepo.UpdateBalance(ctx, userID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to debit balance: %w", err)
	}

	purchase := &entities.Purchase{
		PublicID:  uuid.New().String(),
		UserID:    userID,
		GameID:    game.ID,
		Lines:     normalized,
		Status:    entities.PurchaseStatusPending,
		WinAmount: 0,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	relatedType := entities.RelatedTypePurchase
	history := &entities.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   user.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    -totalCost,
		TransactionType: entities.TransactionTypeTicketPurchase,
		TransactionMetadata: map[string]any{
			"game_id":    game.ID,
			"line_count": len(normalized),
			"price":      game.Price,
		},
		RelatedID:   &purchase.ID,
		RelatedType: &relatedType,
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	if err := s.eventPublisher.Publish(events.PurchasePlacedEvent{
		UserID:     userID,
		PurchaseID: purchase.ID,
		GameID:     game.ID,
		LineCount:  len(normalized),
		TotalCost:  totalCost,
	}); err != nil {
		log.WithError(err).Error("Failed to publish purchase placed event")
	}

	return &interfaces.PurchaseResult{
		Purchase:   purchase,
		TotalCost:  totalCost,
		NewBalance: newBalance,
	}, nil
}

// GetUserPurchases returns a user's purchases, newest first.
func (s *purchaseService) GetUserPurchases(ctx context.Context, userID int64, limit int) ([]*entities.Purchase, error) {
	purchases, err := s.purchaseRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, nil
}
