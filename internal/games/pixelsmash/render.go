package pixelsmash

import (
	"fmt"
	"math"

	"github.com/termfolio/pixelsmash/internal/core"
)

// Display characters
const (
	BrickChar  = '█'
	PaddleChar = '▀'
	BallChar   = '●'
	BorderChar = '─'
)

const (
	hudRows          = 2   // Status line plus separator
	velocityMinShown = 0.5 // Paddle speed below which no indicator is drawn
	velocityBarMax   = 4   // Cells of the longest velocity indicator
)

// viewport maps canvas units onto the screen cells below the HUD.
type viewport struct {
	top    int
	sx, sy float64
	w, h   int
}

func (m *Manager) viewport(dst *core.Screen) viewport {
	h := dst.Height() - hudRows
	if h < 1 {
		h = 1
	}
	return viewport{
		top: hudRows,
		sx:  float64(dst.Width()) / m.cfg.Canvas.Width,
		sy:  float64(h) / m.cfg.Canvas.Height,
		w:   dst.Width(),
		h:   h,
	}
}

func (v viewport) cellX(x float64) int {
	return core.Clamp(int(math.Floor(x*v.sx)), 0, v.w-1)
}

func (v viewport) cellY(y float64) int {
	return v.top + core.Clamp(int(math.Floor(y*v.sy)), 0, v.h-1)
}

// span returns the first cell and the cell count covered by [x, x+w].
func (v viewport) span(x, w float64) (int, int) {
	start := v.cellX(x)
	end := v.cellX(x + w - 0.001)
	return start, end - start + 1
}

// Render draws the current match to the screen.
func (m *Manager) Render(dst *core.Screen) {
	dst.Clear()
	s := &m.state

	if s.Mode == ModeStart {
		m.renderTitle(dst)
		return
	}

	m.renderHUD(dst)
	vp := m.viewport(dst)
	m.renderBricks(dst, vp)
	m.renderPowerUps(dst, vp)
	m.renderPaddle(dst, vp)
	m.renderBalls(dst, vp)

	switch {
	case s.Mode == ModeGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", s.Score)
		drawCenteredBox(dst, "GAME OVER", subtitle, core.ColorRed)
	case s.Paused:
		drawCenteredBox(dst, "PAUSED", "Press SPACE to resume", core.ColorYellow)
	}
}

func (m *Manager) renderTitle(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-2, "PIXEL_SMASH.EXE", core.ColorMagenta)
	dst.DrawTextCenteredColored(mid, "Press ENTER to start", core.ColorCyan)
	dst.DrawTextCenteredColored(mid+2, "←/→ move   SPACE pause   ESC quit", core.ColorGray)
}

// renderHUD draws score, lives and level, then a separator.
func (m *Manager) renderHUD(dst *core.Screen) {
	s := &m.state

	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", s.Score), core.ColorCyan)
	dst.DrawTextCenteredColored(0, fmt.Sprintf("Lives: %d", s.Lives), core.ColorRed)

	level := fmt.Sprintf("Level: %d", s.Level)
	dst.DrawTextColored(dst.Width()-len(level)-1, 0, level, core.ColorYellow)

	dst.DrawHLine(0, 1, dst.Width(), BorderChar)
}

func (m *Manager) renderBricks(dst *core.Screen, vp viewport) {
	for i := range m.state.Bricks {
		b := &m.state.Bricks[i]
		x, n := vp.span(b.X, b.W)
		y := vp.cellY(b.Y)

		// Keep neighbouring bricks apart when the scale is coarse.
		if n > 1 {
			n--
		}
		glyph := rune(BrickChar)
		if b.PowerUp {
			glyph = '▓'
		}
		for dx := range n {
			dst.SetColored(x+dx, y, glyph, b.Color())
		}
	}
}

func (m *Manager) renderPowerUps(dst *core.Screen, vp viewport) {
	for _, pu := range m.state.PowerUps {
		dst.SetColored(vp.cellX(pu.X), vp.cellY(pu.Y), pu.Glyph, pu.Color)
	}
}

// renderPaddle draws the paddle and, while it moves fast enough, a short
// bar pointing in its direction of travel.
func (m *Manager) renderPaddle(dst *core.Screen, vp viewport) {
	p := m.state.Paddle
	if p == nil {
		return
	}
	x, n := vp.span(p.X, p.W)
	y := vp.cellY(p.Y)
	for dx := range n {
		dst.SetColored(x+dx, y, PaddleChar, core.ColorCyan)
	}

	v := p.Velocity
	if math.Abs(v) <= velocityMinShown || y+1 >= dst.Height() {
		return
	}
	length := core.Clamp(int(math.Ceil(math.Abs(v)/p.Speed*velocityBarMax)), 1, velocityBarMax)
	center := vp.cellX(p.CenterX())
	glyph := '>'
	if v < 0 {
		glyph = '<'
	}
	for i := range length {
		cx := center + i
		if v < 0 {
			cx = center - i
		}
		dst.SetColored(cx, y+1, glyph, core.ColorGray)
	}
}

func (m *Manager) renderBalls(dst *core.Screen, vp viewport) {
	for i := range m.state.Balls {
		b := &m.state.Balls[i]
		dst.SetColored(vp.cellX(b.CenterX()), vp.cellY(b.CenterY()), BallChar, core.ColorWhite)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string, c core.RGB) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, c)

	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, c)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
