//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// one runtime per goroutine, so the loop and graph are only ever touched
// from the context that created them
var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// DropRuntime forgets the runtime of the calling goroutine.
func DropRuntime() {
	runtimes.Delete(goid.Get())
}
