package inkcut

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is the solid fill applied to a mask at composite time.
type Color struct {
	R, G, B uint8
}

// Black is the default fill.
var Black = Color{}

// ParseColor parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s != "" && s[0] != '#' {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: color %q: want #rgb or #rrggbb", ErrInvalidInput, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidInput, s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}
