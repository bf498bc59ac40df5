package guictx

import (
	"sync"
	"testing"

	"github.com/uiforge/gui-runtime/engine"
)

func TestGateMutualExclusion(t *testing.T) {
	var g gate
	var wg sync.WaitGroup

	inside := 0
	overlap := false
	total := 0

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				tok := g.lock()
				inside++
				if inside != 1 {
					overlap = true
				}
				inside--
				total++
				tok.unlock()
			}
		}()
	}
	wg.Wait()

	if overlap {
		t.Error("two goroutines held the gate at once")
	}
	if total != 8000 {
		t.Errorf("total = %d, want 8000", total)
	}
}

func TestGateHelpers(t *testing.T) {
	eng := engine.NewNativeEngine()

	tok := ctxGate.lock()
	if !noCurrent(tok, eng) {
		t.Error("fresh engine should have no current context")
	}
	tok.unlock()

	raw := eng.CreateContext()

	tok = ctxGate.lock()
	if noCurrent(tok, eng) {
		t.Error("expected a current context after create")
	}
	clearCurrent(tok, eng)
	if !noCurrent(tok, eng) {
		t.Error("clearCurrent left a current context")
	}
	tok.unlock()

	eng.DestroyContext(raw)
}
