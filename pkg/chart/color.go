package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned for color strings ParseColor cannot read.
var ErrBadColor = errors.New("invalid color")

// ParseColor reads "#rgb", "#rrggbb" or "rgba(r, g, b, a)" into a color.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrBadColor, s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	lower := strings.ToLower(s)
	if body, ok := strings.CutPrefix(lower, "rgba("); ok && strings.HasSuffix(body, ")") {
		c, err := parseRGBA(strings.TrimSuffix(body, ")"))
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrBadColor, s, err)
		}
		return c, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w %q", ErrBadColor, s)
}

// parseRGBA reads "r,g,b,a". Every component must parse in full.
func parseRGBA(body string) (color.NRGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("want 4 components, got %d", len(parts))
	}
	var rgb [3]uint8
	for i, p := range parts[:3] {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || !inByte(v) {
			return color.NRGBA{}, fmt.Errorf("component %d: %q is not 0-255", i+1, p)
		}
		rgb[i] = uint8(v)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || a < 0 || a > 1 {
		return color.NRGBA{}, fmt.Errorf("alpha %q is not 0-1", parts[3])
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(math.Round(a * 255))}, nil
}

// Hex renders c as "#rrggbb", dropping alpha.
func Hex(c color.NRGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// Blend mixes fg over bg by fg's alpha, for surfaces without transparency
// such as terminal cells.
func Blend(fg, bg color.NRGBA) color.NRGBA {
	if fg.A == 0xff {
		return fg
	}
	a := float64(fg.A) / 255
	f := colorful.Color{R: float64(fg.R) / 255, G: float64(fg.G) / 255, B: float64(fg.B) / 255}
	b := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	r, g, bl := b.BlendRgb(f, a).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 0xff}
}

func inByte(v int) bool { return v >= 0 && v <= 255 }
