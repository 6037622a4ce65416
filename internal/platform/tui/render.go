package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/termfolio/pixelsmash/internal/core"
)

// styleCache maps cell colors to lipgloss styles. It is shared by every
// session of the SSH server.
var styleCache sync.Map // core.RGB -> lipgloss.Style

func styleFor(c core.RGB) lipgloss.Style {
	if v, ok := styleCache.Load(c); ok {
		return v.(lipgloss.Style)
	}
	style := lipgloss.NewStyle()
	if !c.IsDefault() {
		style = style.Foreground(lipgloss.Color(c.Hex()))
	}
	styleCache.Store(c, style)
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		cells := s.Cells(y)
		x := 0
		for x < len(cells) {
			startColor := cells[x].Color

			var run strings.Builder
			for x < len(cells) && cells[x].Color == startColor {
				run.WriteRune(cells[x].Rune)
				x++
			}

			if startColor.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
