package pixelsmash

import (
	"math/rand/v2"
	"strings"

	"github.com/termfolio/pixelsmash/internal/config"
)

// Layout is a brick grid, one tier code per cell, indexed [row][col].
type Layout [][]BrickTier

// level1 is the hand-designed first level.
var level1 = []string{
	"2222P22222",
	"3333333333",
	"111P11P111",
	"2222222222",
	"333P333P33",
}

// ParseLayout creates a Layout from text rows.
// Characters:
//
//	'1'-'4' = ordinary brick of that tier
//	'P'     = power-up dispenser
//	other   = empty cell
func ParseLayout(rows []string) Layout {
	layout := make(Layout, len(rows))
	for i, row := range rows {
		layout[i] = make([]BrickTier, len(row))
		for j := range len(row) {
			switch t := BrickTier(row[j]); t {
			case Tier1, Tier2, Tier3, Tier4, TierPower:
				layout[i][j] = t
			default:
				layout[i][j] = TierBlank
			}
		}
	}
	return layout
}

// Level1Layout returns a fresh copy of the fixed first level.
func Level1Layout() Layout {
	return ParseLayout(level1)
}

// Count returns the number of non-blank cells.
func (l Layout) Count() int {
	n := 0
	for _, row := range l {
		for _, t := range row {
			if t != TierBlank {
				n++
			}
		}
	}
	return n
}

// String renders the layout as text rows.
func (l Layout) String() string {
	rows := make([]string, len(l))
	for i, row := range l {
		b := make([]byte, len(row))
		for j, t := range row {
			b[j] = byte(t)
		}
		rows[i] = string(b)
	}
	return strings.Join(rows, "\n")
}

// LayoutForLevel returns the brick layout of a level. Level 1 is fixed;
// later levels are generated from rng with the density and row count of
// config.Scaling. A generated layout that stays under MinBricks after
// MaxAttempts tries is patched with ordinary bricks in random blank cells.
func LayoutForLevel(level int, rng *rand.Rand, cfg config.Game) Layout {
	if level <= 1 {
		return Level1Layout()
	}

	scaling := config.NewScaling(cfg)
	rows := scaling.Rows(level)
	cols := cfg.Bricks.Columns

	var layout Layout
	for attempt := 0; attempt < cfg.Level.MaxAttempts; attempt++ {
		layout = randomLayout(level, rows, cols, rng, scaling, cfg.Level.PowerUpChance)
		if layout.Count() >= cfg.Level.MinBricks {
			return layout
		}
	}

	patchLayout(layout, cfg.Level.MinBricks, rng)
	return layout
}

func randomLayout(level, rows, cols int, rng *rand.Rand, scaling *config.Scaling, powerChance float64) Layout {
	layout := make(Layout, rows)
	for i := range rows {
		layout[i] = make([]BrickTier, cols)
		for j := range cols {
			if rng.Float64() >= scaling.CellChance(level, i, j) {
				layout[i][j] = TierBlank
				continue
			}
			if rng.Float64() < powerChance {
				layout[i][j] = TierPower
			} else {
				layout[i][j] = randomTier(rng)
			}
		}
	}
	return layout
}

// patchLayout fills random blank cells with ordinary bricks until the
// layout holds at least minBricks, or no blank cell is left.
func patchLayout(layout Layout, minBricks int, rng *rand.Rand) {
	var blanks [][2]int
	for i, row := range layout {
		for j, t := range row {
			if t == TierBlank {
				blanks = append(blanks, [2]int{i, j})
			}
		}
	}

	for n := layout.Count(); n < minBricks && len(blanks) > 0; n++ {
		k := rng.IntN(len(blanks))
		cell := blanks[k]
		blanks[k] = blanks[len(blanks)-1]
		blanks = blanks[:len(blanks)-1]
		layout[cell[0]][cell[1]] = randomTier(rng)
	}
}

func randomTier(rng *rand.Rand) BrickTier {
	return OrdinaryTiers[rng.IntN(len(OrdinaryTiers))]
}

// BuildBricks converts a layout into positioned bricks.
func BuildBricks(layout Layout, geom config.Bricks) []Brick {
	bricks := make([]Brick, 0, layout.Count())
	for i, row := range layout {
		for j, t := range row {
			if t == TierBlank {
				continue
			}
			bricks = append(bricks, Brick{
				X:       float64(j)*(geom.Width+geom.Gap) + geom.OffsetX,
				Y:       float64(i)*(geom.Height+geom.Gap) + geom.OffsetY,
				W:       geom.Width,
				H:       geom.Height,
				Tier:    t,
				PowerUp: t == TierPower,
			})
		}
	}
	return bricks
}
