package entities

import "time"

// WinningSetSource records how a winning-number set came to exist.
type WinningSetSource string

const (
	WinningSetSourceAdmin WinningSetSource = "admin" // Entered manually in the admin panel
	WinningSetSourceDraw  WinningSetSource = "draw"  // Generated by the settlement engine
)

// WinningNumberSet is the drawn numbers for one game on one draw date.
// A set is created exactly once per (game, date) pair and never overwritten;
// this is the idempotency guard for repeated draw execution.
type WinningNumberSet struct {
	ID        int64            `db:"id"`
	GameID    string           `db:"game_id"`
	DrawDate  time.Time        `db:"draw_date"` // UTC midnight
	Numbers   []int            `db:"numbers"`   // Ascending, distinct
	Source    WinningSetSource `db:"source"`
	CreatedAt time.Time        `db:"created_at"`
}

// MatchCount returns how many numbers of a ticket line appear in the set.
func (w *WinningNumberSet) MatchCount(line []int) int {
	drawn := make(map[int]bool, len(w.Numbers))
	for _, n := range w.Numbers {
		drawn[n] = true
	}
	count := 0
	for _, n := range line {
		if drawn[n] {
			count++
		}
	}
	return count
}

// IsFullMatch reports whether a ticket line matches every drawn number.
// This is the only win condition; there are no partial-match prize tiers.
func (w *WinningNumberSet) IsFullMatch(line []int) bool {
	return w.MatchCount(line) == len(w.Numbers)
}
