package repository

import (
	"context"
	"testing"
	"time"

	"lottostore/domain/entities"
	"lottostore/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinningNumberRepository(t *testing.T) {
	t.Parallel()

	testDB := testutil.SetupTestDatabase(t)
	repo := NewWinningNumberRepository(testDB.DB)
	ctx := context.Background()

	date := func(day int) time.Time {
		return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
	}

	t.Run("Create and GetByGameAndDate", func(t *testing.T) {
		set := testutil.CreateTestWinningSet("loto6", date(3), []int{3, 9, 15, 21, 33, 41})
		require.NoError(t, repo.Create(ctx, set))
		assert.NotZero(t, set.ID)

		fetched, err := repo.GetByGameAndDate(ctx, "loto6", date(3))
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, []int{3, 9, 15, 21, 33, 41}, fetched.Numbers)
		assert.Equal(t, entities.WinningSetSourceDraw, fetched.Source)
		assert.Equal(t, date(3), fetched.DrawDate.UTC())
	})

	t.Run("GetByGameAndDate returns nil when no draw happened", func(t *testing.T) {
		set, err := repo.GetByGameAndDate(ctx, "loto6", date(4))
		require.NoError(t, err)
		assert.Nil(t, set)
	})

	t.Run("a second set for the same game and date is rejected", func(t *testing.T) {
		first := testutil.CreateTestWinningSet("miniloto", date(4), []int{1, 2, 3, 4, 5})
		require.NoError(t, repo.Create(ctx, first))

		second := testutil.CreateTestWinningSet("miniloto", date(4), []int{6, 7, 8, 9, 10})
		assert.Error(t, repo.Create(ctx, second))

		// The original set survives untouched.
		fetched, err := repo.GetByGameAndDate(ctx, "miniloto", date(4))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, fetched.Numbers)
	})

	t.Run("GetByDate returns every game drawn that day", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, testutil.CreateTestWinningSet("loto6", date(10), []int{1, 2, 3, 4, 5, 6})))
		require.NoError(t, repo.Create(ctx, testutil.CreateTestWinningSet("loto7", date(10), []int{1, 2, 3, 4, 5, 6, 7})))

		sets, err := repo.GetByDate(ctx, date(10))
		require.NoError(t, err)
		require.Len(t, sets, 2)
		assert.Equal(t, "loto6", sets[0].GameID)
		assert.Equal(t, "loto7", sets[1].GameID)
	})

	t.Run("GetHistory is newest first and limited", func(t *testing.T) {
		for day := 17; day <= 21; day++ {
			require.NoError(t, repo.Create(ctx, testutil.CreateTestWinningSet("loto7", date(day), []int{1, 2, 3, 4, 5, 6, 7})))
		}

		history, err := repo.GetHistory(ctx, "loto7", 3)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, date(21), history[0].DrawDate.UTC())
		assert.Equal(t, date(20), history[1].DrawDate.UTC())
		assert.Equal(t, date(19), history[2].DrawDate.UTC())
	})
}
