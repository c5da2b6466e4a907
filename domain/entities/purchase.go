package entities

import "time"

// PurchaseStatus represents the settlement state of a purchase.
type PurchaseStatus string

const (
	PurchaseStatusPending PurchaseStatus = "pending"
	PurchaseStatusWon     PurchaseStatus = "won"
	PurchaseStatusLost    PurchaseStatus = "lost"
)

// Purchase represents a single ticket purchase: one or more ticket lines
// bought for one game in one transaction. A purchase is created pending and
// transitions exactly once, at settlement, to won or lost.
type Purchase struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"` // External reference (UUID)
	UserID      int64          `db:"user_id"`
	GameID      string         `db:"game_id"`
	Lines       [][]int        `db:"lines"` // Each line: PickCount ascending distinct numbers
	Status      PurchaseStatus `db:"status"`
	WinAmount   int64          `db:"win_amount"`
	IsProcessed bool           `db:"is_processed"`
	CreatedAt   time.Time      `db:"created_at"`
}

// IsPending returns true if the purchase has not been settled yet.
func (p *Purchase) IsPending() bool {
	return p.Status == PurchaseStatusPending
}

// MarkWon settles the purchase as a win with the given flat payout.
func (p *Purchase) MarkWon(amount int64) {
	p.Status = PurchaseStatusWon
	p.WinAmount = amount
	p.IsProcessed = true
}

// MarkLost settles the purchase as a loss.
func (p *Purchase) MarkLost() {
	p.Status = PurchaseStatusLost
	p.WinAmount = 0
	p.IsProcessed = true
}

// TotalCost returns what the purchase cost at the given per-line price.
func (p *Purchase) TotalCost(price int64) int64 {
	return price * int64(len(p.Lines))
}
