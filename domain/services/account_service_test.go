package services

import (
	"context"
	"testing"

	"lottostore/domain/entities"
	"lottostore/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type accountFixture struct {
	userRepo           *testhelpers.MockUserRepository
	balanceHistoryRepo *testhelpers.MockBalanceHistoryRepository
	eventPublisher     *testhelpers.MockEventPublisher
}

func newAccountFixture() *accountFixture {
	return &accountFixture{
		userRepo:           new(testhelpers.MockUserRepository),
		balanceHistoryRepo: new(testhelpers.MockBalanceHistoryRepository),
		eventPublisher:     new(testhelpers.MockEventPublisher),
	}
}

func (f *accountFixture) service(startingBalance int64) *accountService {
	return NewAccountService(f.userRepo, f.balanceHistoryRepo, f.eventPublisher, startingBalance).(*accountService)
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user with a hashed password and initial balance", func(t *testing.T) {
		f := newAccountFixture()

		f.userRepo.On("GetByEmail", ctx, "taro@example.com").Return(nil, nil)

		var storedHash string
		f.userRepo.On("Create", ctx, "taro@example.com", "taro", mock.AnythingOfType("string"), int64(10000)).
			Run(func(args mock.Arguments) {
				storedHash = args.Get(3).(string)
			}).
			Return(&entities.User{ID: 1, Email: "taro@example.com", Username: "taro", Balance: 10000}, nil)

		var ledger *entities.BalanceHistory
		f.balanceHistoryRepo.On("Record", ctx, mock.AnythingOfType("*entities.BalanceHistory")).
			Run(func(args mock.Arguments) {
				ledger = args.Get(1).(*entities.BalanceHistory)
			}).Return(nil)
		f.eventPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)
		f.eventPublisher.On("Publish", mock.AnythingOfType("events.UserCreatedEvent")).Return(nil)

		user, err := f.service(10000).Register(ctx, " Taro@Example.com ", "s3cret", "taro")
		require.NoError(t, err)
		assert.Equal(t, int64(10000), user.Balance)

		// Password is stored hashed and verifiable, never in the clear.
		assert.NotEqual(t, "s3cret", storedHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("s3cret")))

		require.NotNil(t, ledger)
		assert.Equal(t, entities.TransactionTypeInitial, ledger.TransactionType)
		assert.Equal(t, int64(10000), ledger.ChangeAmount)
		assert.NoError(t, ledger.ValidateTransaction())
	})

	t.Run("no ledger row when starting balance is zero", func(t *testing.T) {
		f := newAccountFixture()

		f.userRepo.On("GetByEmail", ctx, "taro@example.com").Return(nil, nil)
		f.userRepo.On("Create", ctx, "taro@example.com", "taro", mock.AnythingOfType("string"), int64(0)).
			Return(&entities.User{ID: 1, Email: "taro@example.com", Username: "taro"}, nil)
		f.eventPublisher.On("Publish", mock.AnythingOfType("events.UserCreatedEvent")).Return(nil)

		_, err := f.service(0).Register(ctx, "taro@example.com", "s3cret", "taro")
		require.NoError(t, err)
		f.balanceHistoryRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		f := newAccountFixture()

		f.userRepo.On("GetByEmail", ctx, "taro@example.com").
			Return(&entities.User{ID: 1, Email: "taro@example.com"}, nil)

		_, err := f.service(0).Register(ctx, "taro@example.com", "s3cret", "taro")
		assert.ErrorIs(t, err, ErrEmailTaken)
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		f := newAccountFixture()

		tests := []struct {
			name, email, password, username string
		}{
			{"no email", "", "s3cret", "taro"},
			{"no password", "taro@example.com", "", "taro"},
			{"no username", "taro@example.com", "s3cret", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.service(0).Register(ctx, tt.email, tt.password, tt.username)
				assert.ErrorIs(t, err, ErrInvalidSelection)
			})
		}
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &entities.User{ID: 1, Email: "taro@example.com", PasswordHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		f := newAccountFixture()
		f.userRepo.On("GetByEmail", ctx, "taro@example.com").Return(stored, nil)

		user, err := f.service(0).Authenticate(ctx, "TARO@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAccountFixture()
		f.userRepo.On("GetByEmail", ctx, "taro@example.com").Return(stored, nil)

		_, err := f.service(0).Authenticate(ctx, "taro@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gives the same error as a wrong password", func(t *testing.T) {
		f := newAccountFixture()
		f.userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

		_, err := f.service(0).Authenticate(ctx, "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAccountService_UpdateBankInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("stores complete details", func(t *testing.T) {
		f := newAccountFixture()

		info := completeBankInfo()
		f.userRepo.On("GetByID", ctx, int64(1)).Return(&entities.User{ID: 1}, nil)
		f.userRepo.On("UpdateBankInfo", ctx, int64(1), info).Return(nil)

		assert.NoError(t, f.service(0).UpdateBankInfo(ctx, 1, info))
	})

	t.Run("rejects partial details", func(t *testing.T) {
		f := newAccountFixture()

		err := f.service(0).UpdateBankInfo(ctx, 1, entities.BankInfo{BankName: "みずほ銀行"})
		assert.ErrorIs(t, err, ErrBankInfoIncomplete)
		f.userRepo.AssertNotCalled(t, "UpdateBankInfo", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAccountService_AdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the balance and records the delta", func(t *testing.T) {
		f := newAccountFixture()

		f.userRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&entities.User{ID: 1, Balance: 1000}, nil)
		f.userRepo.On("UpdateBalance", ctx, int64(1), int64(250)).Return(nil)

		var ledger *entities.BalanceHistory
		f.balanceHistoryRepo.On("Record", ctx, mock.AnythingOfType("*entities.BalanceHistory")).
			Run(func(args mock.Arguments) {
				ledger = args.Get(1).(*entities.BalanceHistory)
			}).Return(nil)
		f.eventPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)

		user, err := f.service(0).AdjustBalance(ctx, 1, 250)
		require.NoError(t, err)
		assert.Equal(t, int64(250), user.Balance)

		require.NotNil(t, ledger)
		assert.Equal(t, int64(-750), ledger.ChangeAmount)
		assert.Equal(t, entities.TransactionTypeAdminAdjust, ledger.TransactionType)
		assert.NoError(t, ledger.ValidateTransaction())
	})

	t.Run("setting the current balance is a no-op", func(t *testing.T) {
		f := newAccountFixture()

		f.userRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(&entities.User{ID: 1, Balance: 1000}, nil)

		_, err := f.service(0).AdjustBalance(ctx, 1, 1000)
		require.NoError(t, err)
		f.userRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
		f.balanceHistoryRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("rejects a negative balance", func(t *testing.T) {
		f := newAccountFixture()

		_, err := f.service(0).AdjustBalance(ctx, 1, -1)
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})
}
