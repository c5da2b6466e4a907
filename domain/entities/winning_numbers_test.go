package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinningNumberSet_Matching(t *testing.T) {
	set := &WinningNumberSet{
		GameID:  "loto6",
		Numbers: []int{3, 9, 15, 21, 33, 41},
	}

	tests := []struct {
		name      string
		line      []int
		matches   int
		fullMatch bool
	}{
		{"full match", []int{3, 9, 15, 21, 33, 41}, 6, true},
		{"five of six", []int{3, 9, 15, 21, 33, 42}, 5, false},
		{"one of six", []int{3, 10, 16, 22, 34, 42}, 1, false},
		{"no match", []int{1, 2, 4, 5, 6, 7}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, set.MatchCount(tt.line))
			assert.Equal(t, tt.fullMatch, set.IsFullMatch(tt.line))
		})
	}
}

func TestPurchase_Settlement(t *testing.T) {
	t.Run("mark won", func(t *testing.T) {
		p := &Purchase{Status: PurchaseStatusPending}
		p.MarkWon(600000000)

		assert.Equal(t, PurchaseStatusWon, p.Status)
		assert.Equal(t, int64(600000000), p.WinAmount)
		assert.True(t, p.IsProcessed)
		assert.False(t, p.IsPending())
	})

	t.Run("mark lost", func(t *testing.T) {
		p := &Purchase{Status: PurchaseStatusPending}
		p.MarkLost()

		assert.Equal(t, PurchaseStatusLost, p.Status)
		assert.Zero(t, p.WinAmount)
		assert.True(t, p.IsProcessed)
	})

	t.Run("total cost", func(t *testing.T) {
		p := &Purchase{Lines: [][]int{{1, 2, 3, 4, 5, 6}, {7, 8, 9, 10, 11, 12}}}
		assert.Equal(t, int64(400), p.TotalCost(200))
	})
}
