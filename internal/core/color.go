package core

import "fmt"

// RGB is a 24-bit foreground color for a screen cell.
// The zero value means "terminal default".
type RGB struct {
	R, G, B uint8
}

// Palette used by the simulation renderer.
var (
	ColorDefault = RGB{}
	ColorMagenta = RGB{255, 0, 255}
	ColorCyan    = RGB{0, 255, 255}
	ColorYellow  = RGB{255, 255, 0}
	ColorOrange  = RGB{255, 128, 0}
	ColorWhite   = RGB{255, 255, 255}
	ColorGreen   = RGB{0, 255, 0}
	ColorRed     = RGB{255, 64, 64}
	ColorGray    = RGB{128, 128, 128}
)

// IsDefault reports whether the color defers to the terminal default.
func (c RGB) IsDefault() bool {
	return c == ColorDefault
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c RGB) Hex() string {
	if c.IsDefault() {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
