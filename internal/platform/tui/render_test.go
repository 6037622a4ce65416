package tui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/termfolio/pixelsmash/internal/core"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "hello")
	s.DrawText(1, 1, "go")

	got := RenderScreen(s)
	if got != s.String() {
		t.Errorf("RenderScreen() = %q, expected %q", got, s.String())
	}
}

func TestRenderScreenColored(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawTextColored(0, 0, "SCORE", core.ColorCyan)
	s.DrawTextColored(5, 0, "42", core.ColorYellow)
	s.SetColored(3, 2, '●', core.ColorWhite)

	got := stripANSI(RenderScreen(s))
	if got != s.String() {
		t.Errorf("RenderScreen() text = %q, expected %q", got, s.String())
	}
	if lines := strings.Count(got, "\n"); lines != 2 {
		t.Errorf("rendered %d line breaks, expected 2", lines)
	}
}

func TestStyleForCachesStyles(t *testing.T) {
	a := styleFor(core.ColorMagenta)
	b := styleFor(core.ColorMagenta)

	if a.Render("x") != b.Render("x") {
		t.Error("cached style renders differently")
	}
	if _, ok := styleCache.Load(core.ColorMagenta); !ok {
		t.Error("style was not cached")
	}
}
