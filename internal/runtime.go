package internal

// Runtime bundles the graph and loop shared by everything created on one
// execution context.
type Runtime struct {
	Graph *Graph
	Loop  *Loop
}

func NewRuntime() *Runtime {
	return &Runtime{
		Graph: NewGraph(),
		Loop:  NewLoop(),
	}
}
