package application

import (
	"context"
	"testing"
	"time"

	"lottostore/domain/entities"
	"lottostore/domain/interfaces"
	"lottostore/domain/services"
	"lottostore/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubUnitOfWork wires mock repositories into the worker without a database.
type stubUnitOfWork struct {
	userRepo           *testhelpers.MockUserRepository
	purchaseRepo       *testhelpers.MockPurchaseRepository
	winningNumberRepo  *testhelpers.MockWinningNumberRepository
	transactionRepo    *testhelpers.MockTransactionRepository
	balanceHistoryRepo *testhelpers.MockBalanceHistoryRepository
	eventPublisher     *testhelpers.MockEventPublisher

	began      bool
	committed  bool
	rolledBack bool
}

func newStubUnitOfWork() *stubUnitOfWork {
	return &stubUnitOfWork{
		userRepo:           new(testhelpers.MockUserRepository),
		purchaseRepo:       new(testhelpers.MockPurchaseRepository),
		winningNumberRepo:  new(testhelpers.MockWinningNumberRepository),
		transactionRepo:    new(testhelpers.MockTransactionRepository),
		balanceHistoryRepo: new(testhelpers.MockBalanceHistoryRepository),
		eventPublisher:     new(testhelpers.MockEventPublisher),
	}
}

func (u *stubUnitOfWork) Begin(ctx context.Context) error { u.began = true; return nil }
func (u *stubUnitOfWork) Commit() error                   { u.committed = true; return nil }
func (u *stubUnitOfWork) Rollback() error                 { u.rolledBack = true; return nil }

func (u *stubUnitOfWork) UserRepository() interfaces.UserRepository         { return u.userRepo }
func (u *stubUnitOfWork) PurchaseRepository() interfaces.PurchaseRepository { return u.purchaseRepo }
func (u *stubUnitOfWork) WinningNumberRepository() interfaces.WinningNumberRepository {
	return u.winningNumberRepo
}
func (u *stubUnitOfWork) TransactionRepository() interfaces.TransactionRepository {
	return u.transactionRepo
}
func (u *stubUnitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	return u.balanceHistoryRepo
}
func (u *stubUnitOfWork) EventBus() interfaces.EventPublisher { return u.eventPublisher }

type stubUnitOfWorkFactory struct {
	uow *stubUnitOfWork
}

func (f *stubUnitOfWorkFactory) Create() UnitOfWork { return f.uow }

func TestSettlementWorker_NextDrawTime(t *testing.T) {
	worker := NewSettlementWorker(&stubUnitOfWorkFactory{uow: newStubUnitOfWork()}, services.NewNumberGenerator())

	at := func(day, hour, minute int) time.Time {
		return time.Date(2026, 8, day, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		// 2026-08-31 is a Monday (loto6 draws).
		{"before the draw hour, same day", at(31, 10, 0), at(31, 20, 0)},
		{"exactly at the draw hour, next draw day", at(31, 20, 0), time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)},
		{"after the draw hour, next draw day", at(31, 21, 30), time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)},
		// Wednesday has no games, so a Wednesday morning waits for Thursday.
		{"skips days without draws", time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC), time.Date(2026, 9, 3, 20, 0, 0, 0, time.UTC)},
		// The weekend waits for Monday's loto6 draw.
		{"weekend waits for monday", time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC), time.Date(2026, 9, 7, 20, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := worker.NextDrawTime(tt.now)
			assert.Equal(t, tt.expected, next)
			assert.NotEmpty(t, entities.DrawsOn(next.Weekday()))
		})
	}
}

func TestSettlementWorker_SettleDue(t *testing.T) {
	ctx := context.Background()

	t.Run("settles the games due that weekday in one transaction", func(t *testing.T) {
		uow := newStubUnitOfWork()
		worker := NewSettlementWorker(&stubUnitOfWorkFactory{uow: uow}, services.NewNumberGenerator())

		// Monday: only loto6 draws.
		drawTime := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)
		drawDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		existing := &entities.WinningNumberSet{
			GameID:   "loto6",
			DrawDate: drawDate,
			Numbers:  []int{1, 2, 3, 4, 5, 6},
			Source:   entities.WinningSetSourceAdmin,
		}
		uow.winningNumberRepo.On("GetByGameAndDate", ctx, "loto6", drawDate).Return(existing, nil)
		uow.purchaseRepo.On("GetAllPending", ctx).Return([]*entities.Purchase{}, nil)
		uow.eventPublisher.On("Publish", mock.AnythingOfType("events.DrawCompletedEvent")).Return(nil)

		require.NoError(t, worker.SettleDue(ctx, drawTime))

		assert.True(t, uow.began)
		assert.True(t, uow.committed)
		uow.winningNumberRepo.AssertExpectations(t)
	})

	t.Run("no games due means no transaction", func(t *testing.T) {
		uow := newStubUnitOfWork()
		worker := NewSettlementWorker(&stubUnitOfWorkFactory{uow: uow}, services.NewNumberGenerator())

		// Saturday: nothing draws.
		saturday := time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC)
		require.NoError(t, worker.SettleDue(ctx, saturday))
		assert.False(t, uow.began)
	})
}
