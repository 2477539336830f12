package raster

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColour reads a CSS colour: #rgb, #rrggbb, #rrggbbaa, a named colour
// or "transparent".
func ParseColour(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty colour")
	}
	if s[0] == '#' {
		return parseHex(s[1:])
	}
	low := strings.ToLower(s)
	if low == "transparent" {
		return color.NRGBA{}, nil
	}
	c, ok := colornames.Map[low]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown colour %q", s)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func parseHex(x string) (color.NRGBA, error) {
	var r, g, b uint8
	a := uint8(255)
	var err error
	switch len(x) {
	case 3:
		_, err = fmt.Sscanf(x, "%1x%1x%1x", &r, &g, &b)
		r |= r << 4
		g |= g << 4
		b |= b << 4
	case 6:
		_, err = fmt.Sscanf(x, "%2x%2x%2x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(x, "%2x%2x%2x%2x", &r, &g, &b, &a)
	default:
		return color.NRGBA{}, fmt.Errorf("bad hex colour #%s", x)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex colour #%s: %w", x, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
