package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameCatalog(t *testing.T) {
	t.Run("catalog entries", func(t *testing.T) {
		require.Len(t, Games(), 3)

		loto7 := GameByID("loto7")
		require.NotNil(t, loto7)
		assert.Equal(t, int64(300), loto7.Price)
		assert.Equal(t, 37, loto7.MaxNumber)
		assert.Equal(t, 7, loto7.PickCount)
		assert.Equal(t, int64(1200000000), loto7.Jackpot)

		loto6 := GameByID("loto6")
		require.NotNil(t, loto6)
		assert.Equal(t, int64(200), loto6.Price)
		assert.Equal(t, 43, loto6.MaxNumber)
		assert.Equal(t, 6, loto6.PickCount)
		assert.Equal(t, int64(600000000), loto6.Jackpot)

		miniloto := GameByID("miniloto")
		require.NotNil(t, miniloto)
		assert.Equal(t, int64(200), miniloto.Price)
		assert.Equal(t, 31, miniloto.MaxNumber)
		assert.Equal(t, 5, miniloto.PickCount)
		assert.Equal(t, int64(10000000), miniloto.Jackpot)

		assert.Nil(t, GameByID("numbers4"))
	})

	t.Run("draw schedule", func(t *testing.T) {
		tests := []struct {
			day      time.Weekday
			expected []string
		}{
			{time.Monday, []string{"loto6"}},
			{time.Tuesday, []string{"miniloto"}},
			{time.Wednesday, nil},
			{time.Thursday, []string{"loto6"}},
			{time.Friday, []string{"loto7"}},
			{time.Saturday, nil},
			{time.Sunday, nil},
		}

		for _, tt := range tests {
			var ids []string
			for _, g := range DrawsOn(tt.day) {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tt.expected, ids, "weekday %s", tt.day)
		}
	})

	t.Run("cost", func(t *testing.T) {
		loto6 := GameByID("loto6")
		assert.Equal(t, int64(0), loto6.CostFor(0))
		assert.Equal(t, int64(200), loto6.CostFor(1))
		assert.Equal(t, int64(1000), loto6.CostFor(5))
	})
}

func TestGame_ValidLine(t *testing.T) {
	miniloto := GameByID("miniloto")
	require.NotNil(t, miniloto)

	tests := []struct {
		name  string
		line  []int
		valid bool
	}{
		{"valid line", []int{1, 7, 15, 22, 31}, true},
		{"lowest possible", []int{1, 2, 3, 4, 5}, true},
		{"highest possible", []int{27, 28, 29, 30, 31}, true},
		{"too few", []int{1, 2, 3, 4}, false},
		{"too many", []int{1, 2, 3, 4, 5, 6}, false},
		{"empty", nil, false},
		{"duplicate", []int{1, 2, 2, 4, 5}, false},
		{"unsorted", []int{5, 4, 3, 2, 1}, false},
		{"zero", []int{0, 2, 3, 4, 5}, false},
		{"above max", []int{1, 2, 3, 4, 32}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, miniloto.ValidLine(tt.line))
		})
	}
}
