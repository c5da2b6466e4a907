package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lottostore/domain/entities"
	"lottostore/domain/events"
	"lottostore/domain/interfaces"
	"lottostore/domain/utils"

	log "github.com/sirupsen/logrus"
)

// settlementService implements the draw-settlement and balance-reconciliation
// routine. All of its methods are expected to run inside a single unit-of-work
// transaction; the repositories it holds are bound to that transaction.
type settlementService struct {
	generator          *NumberGenerator
	winningNumberRepo  interfaces.WinningNumberRepository
	purchaseRepo       interfaces.PurchaseRepository
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	generator *NumberGenerator,
	winningNumberRepo interfaces.WinningNumberRepository,
	purchaseRepo interfaces.PurchaseRepository,
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.SettlementService {
	return &settlementService{
		generator:          generator,
		winningNumberRepo:  winningNumberRepo,
		purchaseRepo:       purchaseRepo,
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
	}
}

// Settle runs the draw for a date across the given games.
func (s *settlementService) Settle(ctx context.Context, date time.Time, games []*entities.Game) (*interfaces.SettlementResult, error) {
	date = entities.TruncateToDrawDate(date)

	// Step 1: ensure every game in this pass has winning numbers for the
	// date. Existing sets are left untouched, which makes re-running the
	// same draw a no-op.
	sets := make(map[string]*entities.WinningNumberSet, len(games))
	var orderedSets []*entities.WinningNumberSet
	for _, game := range games {
		set, err := s.winningNumberRepo.GetByGameAndDate(ctx, game.ID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to get winning numbers for %s: %w", game.ID, err)
		}
		if set == nil {
			numbers, err := s.generator.Generate(game.PickCount, game.MaxNumber)
			if err != nil {
				return nil, fmt.Errorf("failed to generate winning numbers for %s: %w", game.ID, err)
			}
			set = &entities.WinningNumberSet{
				GameID:   game.ID,
				DrawDate: date,
				Numbers:  numbers,
				Source:   entities.WinningSetSourceDraw,
			}
			if err := s.winningNumberRepo.Create(ctx, set); err != nil {
				return nil, fmt.Errorf("failed to record winning numbers for %s: %w", game.ID, err)
			}
			log.WithFields(log.Fields{
				"gameID":   game.ID,
				"drawDate": entities.FormatDrawDate(date),
				"numbers":  numbers,
			}).Info("Generated winning numbers")
		}
		sets[game.ID] = set
		orderedSets = append(orderedSets, set)
	}

	// Step 2+3: partition pending purchases for the drawn games into
	// won/lost, accumulating a payout delta per user. Purchases for games
	// without a resolved set stay pending.
	pending, err := s.purchaseRepo.GetAllPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending purchases: %w", err)
	}

	result := &interfaces.SettlementResult{
		DrawDate:    date,
		WinningSets: orderedSets,
	}
	deltas := make(map[int64]int64)
	wonByUser := make(map[int64]int)

	for _, purchase := range pending {
		set, drawn := sets[purchase.GameID]
		if !drawn {
			continue
		}
		game := entities.GameByID(purchase.GameID)
		if game == nil {
			return nil, fmt.Errorf("%w: purchase %d references unknown game %q", ErrDataIntegrity, purchase.ID, purchase.GameID)
		}

		won := false
		for _, line := range purchase.Lines {
			if len(line) != game.PickCount {
				return nil, fmt.Errorf("%w: purchase %d line has %d numbers, game %s requires %d",
					ErrDataIntegrity, purchase.ID, len(line), game.ID, game.PickCount)
			}
			if set.IsFullMatch(line) {
				won = true
			}
		}

		// A multi-line purchase pays exactly one flat jackpot even when
		// several lines hit.
		if won {
			purchase.MarkWon(game.Jackpot)
			deltas[purchase.UserID] += game.Jackpot
			wonByUser[purchase.UserID]++
			result.Won++
			result.TotalPayout += game.Jackpot
		} else {
			purchase.MarkLost()
		}
		if err := s.purchaseRepo.UpdateSettlement(ctx, purchase); err != nil {
			return nil, fmt.Errorf("failed to settle purchase %d: %w", purchase.ID, err)
		}
		result.Settled++
	}

	// Step 4: apply each winner's accumulated delta once. Losing users'
	// balances are never touched by settlement.
	if err := s.creditWinners(ctx, date, deltas, wonByUser); err != nil {
		return nil, err
	}

	gameIDs := make([]string, 0, len(games))
	for _, g := range games {
		gameIDs = append(gameIDs, g.ID)
	}
	if err := s.eventPublisher.Publish(events.DrawCompletedEvent{
		DrawDate:     entities.FormatDrawDate(date),
		GameIDs:      gameIDs,
		SettledCount: result.Settled,
		WonCount:     result.Won,
		TotalPayout:  result.TotalPayout,
	}); err != nil {
		log.WithError(err).Error("Failed to publish draw completed event")
	}

	log.WithFields(log.Fields{
		"drawDate":    entities.FormatDrawDate(date),
		"games":       gameIDs,
		"settled":     result.Settled,
		"won":         result.Won,
		"totalPayout": result.TotalPayout,
	}).Info("Settlement pass completed")

	return result, nil
}

// creditWinners applies accumulated payout deltas and writes one ledger row
// per credited user.
func (s *settlementService) creditWinners(ctx context.Context, date time.Time, deltas map[int64]int64, wonByUser map[int64]int) error {
	// Deterministic application order for reproducible ledgers.
	userIDs := make([]int64, 0, len(deltas))
	for userID := range deltas {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	for _, userID := range userIDs {
		delta := deltas[userID]
		if delta == 0 {
			continue
		}
		// Locked read so a purchase or deposit approval racing this
		// credit cannot overwrite it.
		user, err := s.userRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get winner %d: %w", userID, err)
		}
		if user == nil {
			return fmt.Errorf("%w: purchase owner %d missing", ErrDataIntegrity, userID)
		}

		newBalance := user.CalculateNewBalance(delta)
		if err := s.userRepo.UpdateBalance(ctx, userID, newBalance); err != nil {
			return fmt.Errorf("failed to credit winner %d: %w", userID, err)
		}

		history := &entities.BalanceHistory{
			UserID:          userID,
			BalanceBefore:   user.Balance,
			BalanceAfter:    newBalance,
			ChangeAmount:    delta,
			TransactionType: entities.TransactionTypeLotteryWin,
			TransactionMetadata: map[string]any{
				"draw_date":     entities.FormatDrawDate(date),
				"won_purchases": wonByUser[userID],
			},
		}
		if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
			return fmt.Errorf("failed to record winner balance change: %w", err)
		}
	}
	return nil
}

// SetWinningNumbers records a manually entered winning set.
func (s *settlementService) SetWinningNumbers(ctx context.Context, gameID string, date time.Time, numbers []int) (*entities.WinningNumberSet, error) {
	game := entities.GameByID(gameID)
	if game == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
	}
	date = entities.TruncateToDrawDate(date)

	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)
	if !game.ValidLine(sorted) {
		return nil, fmt.Errorf("%w: %s requires %d distinct numbers in [1, %d]",
			ErrInvalidSelection, game.ID, game.PickCount, game.MaxNumber)
	}

	existing, err := s.winningNumberRepo.GetByGameAndDate(ctx, gameID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing winning numbers: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s on %s", ErrAlreadyDrawn, gameID, entities.FormatDrawDate(date))
	}

	set := &entities.WinningNumberSet{
		GameID:   gameID,
		DrawDate: date,
		Numbers:  sorted,
		Source:   entities.WinningSetSourceAdmin,
	}
	if err := s.winningNumberRepo.Create(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to record winning numbers: %w", err)
	}
	return set, nil
}
