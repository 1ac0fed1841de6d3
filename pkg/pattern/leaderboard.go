package pattern

import "time"

// Leaderboard ranks the months of one series by value, highest first.
type Leaderboard struct {
	Label   string
	Series  string
	Of      int // months considered before the cut
	Entries []RankedMonth
}

// RankedMonth is one leaderboard entry. Its rank is its position plus one.
type RankedMonth struct {
	Month time.Time
	Value float64
}

func (l *Leaderboard) Type() PatternType { return PatternTypeLeaderboard }
