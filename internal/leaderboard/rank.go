package leaderboard

import "fmt"

// RankChange classifies how a country's position moved after a submission.
type RankChange int

const (
	RankSame RankChange = iota // Position unchanged
	RankUp                     // Moved towards first place
	RankDown                   // Moved away from first place
	RankNew                    // Not on the leaderboard before
)

// String returns the change name.
func (c RankChange) String() string {
	switch c {
	case RankUp:
		return "up"
	case RankDown:
		return "down"
	case RankNew:
		return "new"
	default:
		return "same"
	}
}

// Icon returns the arrow shown next to the player's country.
func (c RankChange) Icon() string {
	switch c {
	case RankUp:
		return "⬆"
	case RankDown:
		return "⬇"
	case RankNew:
		return "★"
	default:
		return "➡"
	}
}

// ClassifyRankChange compares 1-based ranks, where 0 means unranked.
// A country that had no rank is new, whatever its new rank. A ranked
// country that dropped off the board moved down.
func ClassifyRankChange(previous, current int) RankChange {
	switch {
	case previous == 0:
		return RankNew
	case current == 0:
		return RankDown
	case current < previous:
		return RankUp
	case current > previous:
		return RankDown
	default:
		return RankSame
	}
}

// Describe renders the change as a sentence for the game-over screen.
func (c RankChange) Describe(previous, current int) string {
	switch c {
	case RankNew:
		if current == 0 {
			return "Not on the board yet"
		}
		return fmt.Sprintf("First time on the board! Ranked #%d", current)
	case RankUp:
		return fmt.Sprintf("Up %d! From #%d to #%d", previous-current, previous, current)
	case RankDown:
		if current == 0 {
			return fmt.Sprintf("Dropped off the board from #%d", previous)
		}
		return fmt.Sprintf("Down %d, from #%d to #%d", current-previous, previous, current)
	default:
		return fmt.Sprintf("Holding at #%d", current)
	}
}
