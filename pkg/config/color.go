// pkg/config/color.go
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA. Alpha defaults to opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: color %q must be #RGB, #RRGGBB or #RRGGBBAA", ErrInvalidConfig, s)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, s, err)
	}

	return color.NRGBA{
		R: uint8(value >> 24),
		G: uint8(value >> 16),
		B: uint8(value >> 8),
		A: uint8(value),
	}, nil
}

// FormatHexColor renders c as #RRGGBBAA
func FormatHexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
