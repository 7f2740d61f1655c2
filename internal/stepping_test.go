package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepDepth(t *testing.T) {
	t.Run("nested steps stay active until the outer one returns", func(t *testing.T) {
		var d stepDepth
		seen := []bool{}

		d.run(func() {
			d.run(func() { seen = append(seen, d.active()) })
			seen = append(seen, d.active())
		})

		assert.Equal(t, []bool{true, true}, seen)
		assert.False(t, d.active())
	})

	t.Run("a panicking step restores the depth", func(t *testing.T) {
		var d stepDepth

		assert.Panics(t, func() {
			d.run(func() { panic("boom") })
		})
		assert.False(t, d.active())
	})
}
