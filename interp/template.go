package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberShape = regexp.MustCompile(`[+\-]?(?:0|[1-9]\d*)(?:\.\d*)?(?:[eE][+\-]?\d+)?`)
	placeholder = regexp.MustCompile(`\{[^{}]*\}`)
)

// stringInterpolator handles outputs that are strings with numbers in them.
// Colors are converted to rgba() first, every number is interpolated on its
// own and the text around the numbers comes from the first output.
func stringInterpolator(cfg Config) (Func, error) {
	outputs := make([]string, len(cfg.Output))
	for i, out := range cfg.Output {
		switch v := out.(type) {
		case string:
			outputs[i] = v
		default:
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrOutputType, out)
			}
			outputs[i] = FormatNumber(f)
		}
	}

	if cfg.ColorSpace != RGB {
		if fn, ok := colorInterpolator(cfg, outputs); ok {
			return fn, nil
		}
	}

	for i := range outputs {
		outputs[i] = Normalize(outputs[i])
	}

	shape := numberShape.FindAllString(outputs[0], -1)
	columns := make([][]float64, len(shape))
	for i, out := range outputs {
		numbers := numberShape.FindAllString(out, -1)
		if len(numbers) != len(shape) {
			return nil, fmt.Errorf("%w: %q has %d numbers, %q has %d",
				ErrTemplateMismatch, outputs[0], len(shape), outputs[i], len(numbers))
		}

		for j, n := range numbers {
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrTemplateMismatch, n)
			}
			columns[j] = append(columns[j], f)
		}
	}

	fns := make([]func(float64) float64, len(columns))
	for i, column := range columns {
		fns[i] = numberInterpolator(cfg, column)
	}

	template := outputs[0]
	return func(inputs ...any) any {
		input, ok := first(inputs)
		if !ok {
			return firstRaw(inputs)
		}

		i := 0
		out := numberShape.ReplaceAllStringFunc(template, func(string) string {
			v := fns[i](input)
			i++
			return FormatNumber(v)
		})
		return roundChannels(out)
	}, nil
}

// colorInterpolator blends outputs that are all single colors in the
// requested color space.
func colorInterpolator(cfg Config, outputs []string) (Func, bool) {
	colors := make([]RGBA, len(outputs))
	for i, out := range outputs {
		c, ok := ParseColor(out)
		if !ok {
			return nil, false
		}
		colors[i] = c
	}

	// position along the output list, using the configured range and extrapolation
	indices := make([]float64, len(colors))
	for i := range indices {
		indices[i] = float64(i)
	}
	position := numberInterpolator(cfg, indices)

	return func(inputs ...any) any {
		input, ok := first(inputs)
		if !ok {
			return firstRaw(inputs)
		}

		p := position(input)
		seg := int(p)
		if seg < 0 {
			seg = 0
		}
		if seg > len(colors)-2 {
			seg = len(colors) - 2
		}

		return blend(colors[seg], colors[seg+1], p-float64(seg), cfg.ColorSpace).String()
	}, true
}

// Template fills the {placeholders} of tpl with the inputs, in order of
// appearance. Placeholders without an input are kept as they are.
func Template(tpl string) Func {
	return func(inputs ...any) any {
		i := 0
		return placeholder.ReplaceAllStringFunc(tpl, func(match string) string {
			if i >= len(inputs) {
				return match
			}
			v := inputs[i]
			i++
			return format(v)
		})
	}
}

func format(v any) string {
	if f, ok := toFloat(v); ok {
		return FormatNumber(f)
	}

	switch s := v.(type) {
	case string:
		return s
	case []float64:
		parts := make([]string, len(s))
		for i, f := range s {
			parts[i] = FormatNumber(f)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
