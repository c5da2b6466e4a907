package repository

import (
	"context"
	"testing"

	"lottostore/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Create and GetByID", func(t *testing.T) {
		created, err := repo.Create(ctx, "taro@example.com", "taro", "hashed-password", 10000)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.IsAdmin)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, "taro@example.com", fetched.Email)
		assert.Equal(t, "taro", fetched.Username)
		assert.Equal(t, "hashed-password", fetched.PasswordHash)
		assert.Equal(t, int64(10000), fetched.Balance)
		assert.False(t, fetched.BankInfo.IsComplete())
	})

	t.Run("GetByID returns nil for missing user", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByIDForUpdate reads the same row", func(t *testing.T) {
		created, err := repo.Create(ctx, "locked@example.com", "locked", "hash", 5000)
		require.NoError(t, err)

		fetched, err := repo.GetByIDForUpdate(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, int64(5000), fetched.Balance)

		missing, err := repo.GetByIDForUpdate(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("GetByEmail", func(t *testing.T) {
		created, err := repo.Create(ctx, "hanako@example.com", "hanako", "hash", 0)
		require.NoError(t, err)

		fetched, err := repo.GetByEmail(ctx, "hanako@example.com")
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, created.ID, fetched.ID)

		missing, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Create rejects a duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, "dup@example.com", "first", "hash", 0)
		require.NoError(t, err)

		_, err = repo.Create(ctx, "dup@example.com", "second", "hash", 0)
		assert.Error(t, err)
	})

	t.Run("UpdateBalance", func(t *testing.T) {
		user, err := repo.Create(ctx, "balance@example.com", "balance", "hash", 1000)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateBalance(ctx, user.ID, 2500))

		fetched, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), fetched.Balance)
	})

	t.Run("UpdateBalance fails for missing user", func(t *testing.T) {
		err := repo.UpdateBalance(ctx, 999999, 100)
		assert.Error(t, err)
	})

	t.Run("UpdateBankInfo round-trips", func(t *testing.T) {
		user, err := repo.Create(ctx, "bank@example.com", "bank", "hash", 0)
		require.NoError(t, err)

		info := testutil.CompleteBankInfo()
		require.NoError(t, repo.UpdateBankInfo(ctx, user.ID, info))

		fetched, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, info, fetched.BankInfo)
		assert.True(t, fetched.BankInfo.IsComplete())
	})

	t.Run("GetAll includes every account", func(t *testing.T) {
		_, err := repo.Create(ctx, "all@example.com", "all", "hash", 0)
		require.NoError(t, err)

		users, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(users), 1)
	})
}
