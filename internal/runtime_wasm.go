//go:build wasm

package internal

import "sync"

var (
	mu            sync.Mutex
	globalRuntime *Runtime
)

func GetRuntime() *Runtime {
	mu.Lock()
	defer mu.Unlock()

	if globalRuntime == nil {
		globalRuntime = NewRuntime()
	}

	return globalRuntime
}

// DropRuntime forgets the shared runtime.
func DropRuntime() {
	mu.Lock()
	globalRuntime = nil
	mu.Unlock()
}
