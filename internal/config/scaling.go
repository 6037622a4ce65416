package config

import "math"

// Scaling derives per-level generation parameters from the static config.
// Rows grow with the level until the space above the paddle runs out, and
// fill density grows linearly up to a cap.
type Scaling struct {
	level  Level
	bricks Bricks
	canvas Canvas
	paddle Paddle
}

// NewScaling creates a scaling calculator for cfg.
func NewScaling(cfg Game) *Scaling {
	return &Scaling{
		level:  cfg.Level,
		bricks: cfg.Bricks,
		canvas: cfg.Canvas,
		paddle: cfg.Paddle,
	}
}

// Pitch returns the vertical distance between brick rows.
func (s *Scaling) Pitch() float64 {
	return s.bricks.Height + s.bricks.Gap
}

// MaxRows returns how many brick rows fit between the top margin and the
// clearance band above the paddle.
func (s *Scaling) MaxRows() int {
	pitch := s.Pitch()
	if pitch <= 0 {
		return 0
	}
	available := s.canvas.Height - s.paddle.BottomOffset -
		float64(s.level.ClearanceRows)*pitch - s.bricks.OffsetY
	if available <= 0 {
		return 0
	}
	return int(math.Floor(available / pitch))
}

// Rows returns the row count for a level: BaseRows plus one every
// RowsEvery levels, never more than MaxRows.
func (s *Scaling) Rows(level int) int {
	maxRows := s.MaxRows()
	minRows := min(s.level.BaseRows, maxRows)

	grow := 0
	if s.level.RowsEvery > 0 {
		grow = level / s.level.RowsEvery
	}
	rows := min(s.level.BaseRows+grow, maxRows)
	return max(minRows, rows)
}

// Density returns the base fill probability for a level.
func (s *Scaling) Density(level int) float64 {
	d := s.level.BaseDensity + float64(level-1)*s.level.DensityStep
	return clampF(d, 0, s.level.MaxDensity)
}

// CellChance returns the fill probability of one grid cell.
// Edge columns are sparser and the top rows denser.
func (s *Scaling) CellChance(level, row, col int) float64 {
	chance := s.Density(level)
	if col == 0 || col == s.bricks.Columns-1 {
		chance *= s.level.EdgeFactor
	}
	if row < s.level.TopRows {
		chance *= s.level.TopRowFactor
	}
	return chance
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
