package repository

import (
	"context"
	"fmt"
	"testing"

	"lottostore/domain/entities"
	"lottostore/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, repo *UserRepository, tag string) *entities.User {
	t.Helper()
	user, err := repo.Create(context.Background(), fmt.Sprintf("%s@example.com", tag), tag, "hash", 100000)
	require.NoError(t, err)
	return user
}

func TestPurchaseRepository(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	repo := NewPurchaseRepository(testDB.DB)
	userRepo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Create and GetByID round-trips lines", func(t *testing.T) {
		user := createUser(t, userRepo, "purchase-roundtrip")

		lines := [][]int{{3, 9, 15, 21, 33, 41}, {1, 2, 3, 4, 5, 6}}
		purchase := testutil.CreateTestPurchase(user.ID, "loto6", lines)
		require.NoError(t, repo.Create(ctx, purchase))
		assert.NotZero(t, purchase.ID)
		assert.False(t, purchase.CreatedAt.IsZero())

		fetched, err := repo.GetByID(ctx, purchase.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, purchase.PublicID, fetched.PublicID)
		assert.Equal(t, "loto6", fetched.GameID)
		assert.Equal(t, lines, fetched.Lines)
		assert.Equal(t, entities.PurchaseStatusPending, fetched.Status)
		assert.False(t, fetched.IsProcessed)
	})

	t.Run("GetByID returns nil for missing purchase", func(t *testing.T) {
		purchase, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, purchase)
	})

	t.Run("GetByUser is scoped and newest first", func(t *testing.T) {
		owner := createUser(t, userRepo, "purchase-owner")
		other := createUser(t, userRepo, "purchase-other")

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Create(ctx, testutil.CreateTestPurchase(owner.ID, "miniloto", [][]int{{1, 2, 3, 4, 5}})))
		}
		require.NoError(t, repo.Create(ctx, testutil.CreateTestPurchase(other.ID, "miniloto", [][]int{{1, 2, 3, 4, 5}})))

		purchases, err := repo.GetByUser(ctx, owner.ID, 10)
		require.NoError(t, err)
		assert.Len(t, purchases, 3)
		for _, p := range purchases {
			assert.Equal(t, owner.ID, p.UserID)
		}

		limited, err := repo.GetByUser(ctx, owner.ID, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})

	t.Run("settlement lifecycle", func(t *testing.T) {
		user := createUser(t, userRepo, "purchase-settle")

		purchase := testutil.CreateTestPurchase(user.ID, "loto6", [][]int{{1, 2, 3, 4, 5, 6}})
		require.NoError(t, repo.Create(ctx, purchase))

		pending, err := repo.GetAllPending(ctx)
		require.NoError(t, err)
		ids := make(map[int64]bool)
		for _, p := range pending {
			ids[p.ID] = true
		}
		assert.True(t, ids[purchase.ID])

		purchase.MarkWon(600000000)
		require.NoError(t, repo.UpdateSettlement(ctx, purchase))

		fetched, err := repo.GetByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.PurchaseStatusWon, fetched.Status)
		assert.Equal(t, int64(600000000), fetched.WinAmount)
		assert.True(t, fetched.IsProcessed)

		// Settled purchases drop out of the pending list.
		pending, err = repo.GetAllPending(ctx)
		require.NoError(t, err)
		for _, p := range pending {
			assert.NotEqual(t, purchase.ID, p.ID)
		}
	})

	t.Run("UpdateSettlement fails for missing purchase", func(t *testing.T) {
		ghost := &entities.Purchase{ID: 999999, Status: entities.PurchaseStatusLost}
		assert.Error(t, repo.UpdateSettlement(ctx, ghost))
	})

	t.Run("UpdateSettlement rejects an already-settled purchase", func(t *testing.T) {
		user := createUser(t, userRepo, "purchase-double-settle")

		purchase := testutil.CreateTestPurchase(user.ID, "loto6", [][]int{{1, 2, 3, 4, 5, 6}})
		require.NoError(t, repo.Create(ctx, purchase))

		purchase.MarkWon(600000000)
		require.NoError(t, repo.UpdateSettlement(ctx, purchase))

		// A second pass that raced past the pending check must not pay again.
		err := repo.UpdateSettlement(ctx, purchase)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already settled")

		fetched, err := repo.GetByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.PurchaseStatusWon, fetched.Status)
		assert.Equal(t, int64(600000000), fetched.WinAmount)
	})
}
