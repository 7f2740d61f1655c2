package interp

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSpace selects how two colors are blended.
type ColorSpace int

const (
	// RGB interpolates the channels of the rgba() form independently.
	RGB ColorSpace = iota
	HCL
	Lab
	Luv
)

func ParseColorSpace(s string) (ColorSpace, error) {
	switch strings.ToLower(s) {
	case "", "rgb":
		return RGB, nil
	case "hcl":
		return HCL, nil
	case "lab":
		return Lab, nil
	case "luv":
		return Luv, nil
	}
	return RGB, fmt.Errorf("unknown color space %q", s)
}

// Names maps CSS color names to 0xRRGGBBAA. Add entries before building
// interpolators that should recognize them.
var Names = map[string]uint32{
	"transparent": 0x00000000,
	"black":       0x000000ff,
	"white":       0xffffffff,
	"red":         0xff0000ff,
	"green":       0x008000ff,
	"lime":        0x00ff00ff,
	"blue":        0x0000ffff,
	"yellow":      0xffff00ff,
	"cyan":        0x00ffffff,
	"aqua":        0x00ffffff,
	"magenta":     0xff00ffff,
	"fuchsia":     0xff00ffff,
	"silver":      0xc0c0c0ff,
	"gray":        0x808080ff,
	"grey":        0x808080ff,
	"maroon":      0x800000ff,
	"olive":       0x808000ff,
	"purple":      0x800080ff,
	"teal":        0x008080ff,
	"navy":        0x000080ff,
	"orange":      0xffa500ff,
	"pink":        0xffc0cbff,
	"hotpink":     0xff69b4ff,
	"gold":        0xffd700ff,
	"coral":       0xff7f50ff,
	"tomato":      0xff6347ff,
	"salmon":      0xfa8072ff,
	"crimson":     0xdc143cff,
	"indigo":      0x4b0082ff,
	"violet":      0xee82eeff,
	"orchid":      0xda70d6ff,
	"plum":        0xdda0ddff,
	"khaki":       0xf0e68cff,
	"beige":       0xf5f5dcff,
	"ivory":       0xfffff0ff,
	"lavender":    0xe6e6faff,
	"turquoise":   0x40e0d0ff,
	"skyblue":     0x87ceebff,
	"steelblue":   0x4682b4ff,
	"royalblue":   0x4169e1ff,
	"slategray":   0x708090ff,
	"darkgray":    0xa9a9a9ff,
	"lightgray":   0xd3d3d3ff,
	"chocolate":   0xd2691eff,
	"brown":       0xa52a2aff,
	"tan":         0xd2b48cff,
	"seagreen":    0x2e8b57ff,
	"forestgreen": 0x228b22ff,
	"darkgreen":   0x006400ff,
	"darkblue":    0x00008bff,
	"darkred":     0x8b0000ff,
}

var (
	functionalColor = regexp.MustCompile(`(?i)(rgba?|hsla?)\(([^)]*)\)`)
	hexColor        = regexp.MustCompile(`#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3,4})\b`)
	rgbaShape       = regexp.MustCompile(`rgba\(([0-9.eE+-]+), ([0-9.eE+-]+), ([0-9.eE+-]+), ([0-9.eE+-]+)\)`)

	namesMu      sync.Mutex
	namesPattern *regexp.Regexp
	namesCount   int
)

// RGBA is a color in the rgba() notation: channels 0..255, alpha 0..1.
type RGBA struct {
	R, G, B, A float64
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%s, %s, %s, %s)",
		FormatNumber(channel(c.R, 255)),
		FormatNumber(channel(c.G, 255)),
		FormatNumber(channel(c.B, 255)),
		FormatNumber(math.Max(0, math.Min(1, c.A))),
	)
}

func channel(v, max float64) float64 {
	return math.Max(0, math.Min(max, math.Round(v)))
}

func (c RGBA) toColorful() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

func fromColorful(c colorful.Color, alpha float64) RGBA {
	r, g, b := c.Clamped().RGB255()
	return RGBA{float64(r), float64(g), float64(b), alpha}
}

// ParseColor reads a hex, rgb(), rgba(), hsl(), hsla() or named color.
func ParseColor(s string) (RGBA, bool) {
	s = strings.TrimSpace(s)

	if v, ok := Names[strings.ToLower(s)]; ok {
		return RGBA{
			float64(v >> 24 & 0xff),
			float64(v >> 16 & 0xff),
			float64(v >> 8 & 0xff),
			float64(v&0xff) / 255,
		}, true
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	m := functionalColor.FindStringSubmatch(s)
	if m == nil || m[0] != s {
		return RGBA{}, false
	}

	return parseFunctional(strings.ToLower(m[1]), m[2])
}

func parseHex(s string) (RGBA, bool) {
	alpha := 1.0
	hex := s[1:]

	switch len(hex) {
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(hex[3:], 2), 16, 8)
		if err != nil {
			return RGBA{}, false
		}
		alpha = float64(a) / 255
		hex = hex[:3]
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return RGBA{}, false
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGBA{}, false
	}

	return fromColorful(c, alpha), true
}

func parseFunctional(kind, args string) (RGBA, bool) {
	parts := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(parts) < 3 || len(parts) > 4 {
		return RGBA{}, false
	}

	values := make([]float64, 4)
	values[3] = 1
	for i, p := range parts {
		percent := strings.HasSuffix(p, "%")
		p = strings.TrimSuffix(strings.TrimSuffix(p, "%"), "deg")

		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return RGBA{}, false
		}

		switch {
		case percent && kind[0] == 'r' && i < 3:
			f = f * 255 / 100
		case percent:
			f = f / 100
		}
		values[i] = f
	}

	if kind[0] == 'h' {
		c := colorful.Hsl(math.Mod(values[0], 360), values[1], values[2])
		return fromColorful(c, values[3]), true
	}

	return RGBA{values[0], values[1], values[2], values[3]}, true
}

func namesRegexp() *regexp.Regexp {
	namesMu.Lock()
	defer namesMu.Unlock()

	if namesPattern != nil && namesCount == len(Names) {
		return namesPattern
	}

	names := make([]string, 0, len(Names))
	for name := range Names {
		names = append(names, regexp.QuoteMeta(name))
	}
	// longest first so "darkblue" wins over "blue"
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	namesPattern = regexp.MustCompile(`\b(` + strings.Join(names, "|") + `)\b`)
	namesCount = len(Names)
	return namesPattern
}

// Normalize rewrites every color found in s into rgba() form.
func Normalize(s string) string {
	toRgba := func(match string) string {
		c, ok := ParseColor(match)
		if !ok {
			return match
		}
		return c.String()
	}

	s = functionalColor.ReplaceAllStringFunc(s, toRgba)
	s = hexColor.ReplaceAllStringFunc(s, toRgba)
	s = namesRegexp().ReplaceAllStringFunc(s, toRgba)

	return s
}

// IsColor reports whether s is exactly one color.
func IsColor(s string) bool {
	_, ok := ParseColor(s)
	return ok
}

func roundChannels(s string) string {
	return rgbaShape.ReplaceAllStringFunc(s, func(match string) string {
		m := rgbaShape.FindStringSubmatch(match)
		values := make([]float64, 4)
		for i := range values {
			f, err := strconv.ParseFloat(m[i+1], 64)
			if err != nil {
				return match
			}
			values[i] = f
		}
		return RGBA{values[0], values[1], values[2], values[3]}.String()
	})
}

func blend(a, b RGBA, t float64, space ColorSpace) RGBA {
	alpha := a.A + (b.A-a.A)*t

	switch space {
	case HCL:
		return fromColorful(a.toColorful().BlendHcl(b.toColorful(), t), alpha)
	case Lab:
		return fromColorful(a.toColorful().BlendLab(b.toColorful(), t), alpha)
	case Luv:
		return fromColorful(a.toColorful().BlendLuv(b.toColorful(), t), alpha)
	default:
		return RGBA{
			a.R + (b.R-a.R)*t,
			a.G + (b.G-a.G)*t,
			a.B + (b.B-a.B)*t,
			alpha,
		}
	}
}
