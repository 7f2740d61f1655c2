package spring

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/AnatoleLucet/spring/interp"
)

// goalKind is the shape of a target value, decided once per diff.
type goalKind int

const (
	// goalNumber animates a single primitive value.
	goalNumber goalKind = iota
	// goalVector animates a fixed-length vector of primitive values.
	goalVector
	// goalPlain is a string without numbers or colors: it snaps to the goal.
	goalPlain
	// goalInterpolated drives a 0..1 value through a string interpolation
	// (colors, templates with units, anything else).
	goalInterpolated
)

func (k goalKind) String() string {
	switch k {
	case goalNumber:
		return "number"
	case goalVector:
		return "vector"
	case goalPlain:
		return "plain"
	case goalInterpolated:
		return "interpolated"
	default:
		return "unknown"
	}
}

type goal struct {
	kind   goalKind
	number float64
	vector []float64
	text   string
}

func classify(v any) goal {
	if f, ok := toFloat(v); ok {
		return goal{kind: goalNumber, number: f}
	}

	if vec, ok := toVector(v); ok {
		return goal{kind: goalVector, vector: vec}
	}

	if s, ok := v.(string); ok {
		if !strings.HasPrefix(s, "#") && !strings.ContainsFunc(s, unicode.IsDigit) && !interp.IsColor(s) {
			return goal{kind: goalPlain, text: s}
		}
		return goal{kind: goalInterpolated, text: s}
	}

	return goal{kind: goalInterpolated, text: fmt.Sprint(v)}
}

// value is the normalized form compared against the live value.
func (g goal) value() any {
	switch g.kind {
	case goalNumber:
		return g.number
	case goalVector:
		return g.vector
	case goalPlain:
		return g.text
	default:
		return interp.Normalize(g.text)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toVector(v any) ([]float64, bool) {
	switch vec := v.(type) {
	case []float64:
		return vec, true
	case []int:
		out := make([]float64, len(vec))
		for i, n := range vec {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, len(vec))
		for i, n := range vec {
			f, ok := toFloat(n)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}

// toArray spreads a goal into one entry per primitive leaf.
func toArray(v any) []any {
	switch x := v.(type) {
	case nil:
		return nil
	case *ValueArray:
		return append([]any(nil), x.payload...)
	case Node:
		return []any{x}
	}

	if vec, ok := toVector(v); ok {
		out := make([]any, len(vec))
		for i, f := range vec {
			out[i] = f
		}
		return out
	}
	return []any{v}
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}

	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}

	if av, ok := toVector(a); ok {
		bv, ok := toVector(b)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}
