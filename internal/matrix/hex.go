package matrix

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ToRGBA converts any colour to opaque 8-bit RGBA
func ToRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok && rgba.A == 255 {
		return rgba
	}
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: nrgba.R, G: nrgba.G, B: nrgba.B, A: 255}
}

// FormatHex renders c as "#rrggbb"
func FormatHex(c color.Color) string {
	rgba := ToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// ParseHex parses "#rrggbb" (case-insensitive)
func ParseHex(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(strings.ToLower(s[1:]), 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
