package entities

import "time"

// Game is a static catalog entry for one lottery product. The catalog is
// fixed at compile time; all amounts are yen.
type Game struct {
	ID          string
	Name        string
	FullName    string
	DrawDayText string
	MaxJackpot  string // display text, e.g. "6億円"
	Price       int64  // per line
	MaxNumber   int    // playable numbers are 1..MaxNumber
	PickCount   int    // numbers per line
	Jackpot     int64  // flat prize for a full match
	DrawDays    []time.Weekday
}

var games = []*Game{
	{
		ID:          "loto7",
		Name:        "LOTO 7",
		FullName:    "ロトセブン",
		DrawDayText: "毎週金曜日",
		MaxJackpot:  "12億円",
		Price:       300,
		MaxNumber:   37,
		PickCount:   7,
		Jackpot:     1200000000,
		DrawDays:    []time.Weekday{time.Friday},
	},
	{
		ID:          "loto6",
		Name:        "LOTO 6",
		FullName:    "ロトシックス",
		DrawDayText: "毎週月・木曜日",
		MaxJackpot:  "6億円",
		Price:       200,
		MaxNumber:   43,
		PickCount:   6,
		Jackpot:     600000000,
		DrawDays:    []time.Weekday{time.Monday, time.Thursday},
	},
	{
		ID:          "miniloto",
		Name:        "MINI LOTO",
		FullName:    "ミニロト",
		DrawDayText: "毎週火曜日",
		MaxJackpot:  "1,000万円",
		Price:       200,
		MaxNumber:   31,
		PickCount:   5,
		Jackpot:     10000000,
		DrawDays:    []time.Weekday{time.Tuesday},
	},
}

// Games returns the full game catalog
func Games() []*Game {
	return games
}

// GameByID returns the catalog entry for the given game ID, or nil
func GameByID(id string) *Game {
	for _, g := range games {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// DrawsOn returns the games that draw on the given weekday
func DrawsOn(day time.Weekday) []*Game {
	var due []*Game
	for _, g := range games {
		for _, d := range g.DrawDays {
			if d == day {
				due = append(due, g)
				break
			}
		}
	}
	return due
}

// CostFor returns the price of a purchase with the given number of lines
func (g *Game) CostFor(lineCount int) int64 {
	return g.Price * int64(lineCount)
}

// ValidLine reports whether a line is playable for this game: exactly
// PickCount numbers, strictly ascending (hence distinct), all within
// 1..MaxNumber. Lines are sorted before validation.
func (g *Game) ValidLine(line []int) bool {
	if len(line) != g.PickCount {
		return false
	}
	for i, n := range line {
		if n < 1 || n > g.MaxNumber {
			return false
		}
		if i > 0 && line[i-1] >= n {
			return false
		}
	}
	return true
}
