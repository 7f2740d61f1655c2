package internal

// stepDepth counts how deep the loop is inside job steps. Controllers defer
// updates and starts requested while it is non-zero.
type stepDepth int

func (d *stepDepth) active() bool { return *d > 0 }

// run calls fn as one step. The depth is restored even if fn panics.
func (d *stepDepth) run(fn func()) {
	*d++
	defer func() { *d-- }()

	fn()
}
