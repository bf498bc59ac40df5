package guictx

import (
	"sync"

	guiruntime "github.com/uiforge/gui-runtime"
)

// The core keeps one process-global current-context pointer and never
// synchronizes access to it. ctxGate is the single serialization point for
// every read or write of that pointer, across all contexts and engines in
// the process.
var ctxGate gate

type gate struct {
	mu sync.Mutex
}

// guard is proof that the gate is held. Helpers that touch the global
// pointer take a guard parameter instead of locking, so one logical
// operation never tries to re-acquire the gate it already holds.
type guard struct {
	g *gate
}

func (g *gate) lock() guard {
	g.mu.Lock()
	return guard{g: g}
}

func (t guard) unlock() {
	t.g.mu.Unlock()
}

// noCurrent reports whether the engine has no current context.
func noCurrent(_ guard, eng guiruntime.Engine) bool {
	return eng.Current() == 0
}

// clearCurrent deactivates whichever context is current.
func clearCurrent(_ guard, eng guiruntime.Engine) {
	eng.SetCurrent(0)
}
