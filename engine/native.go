package engine

import (
	"sync"

	"go.uber.org/zap"

	guiruntime "github.com/uiforge/gui-runtime"
)

// NativeEngine is an in-process implementation of the engine primitive
// surface. The whole core state lives in Go memory, which makes it the
// default backend for tests and for tools that exercise lifecycle and
// settings behavior without a rendering core.
//
// It implements the same current-context contract a shared-library core
// applies: CreateContext claims the current slot only when it is empty, and
// DestroyContext clears the slot only when the destroyed instance holds it.
type NativeEngine struct {
	mu       sync.RWMutex
	contexts []contextSlot
	freeList []guiruntime.RawContext
	current  guiruntime.RawContext
}

type contextSlot struct {
	strings  [guiruntime.StringFieldCount]*byte
	settings iniSettings
	saveBuf  []byte
	valid    bool
}

var _ guiruntime.Engine = (*NativeEngine)(nil)

// NewNativeEngine creates an engine with no contexts and nothing current.
func NewNativeEngine() *NativeEngine {
	return &NativeEngine{
		contexts: make([]contextSlot, 0, 4),
		freeList: make([]guiruntime.RawContext, 0, 4),
	}
}

// CreateContext allocates a context instance. Handles are never zero; a
// freed handle may be reused by a later create.
func (e *NativeEngine) CreateContext() guiruntime.RawContext {
	e.mu.Lock()
	defer e.mu.Unlock()

	var raw guiruntime.RawContext
	if n := len(e.freeList); n > 0 {
		raw = e.freeList[n-1]
		e.freeList = e.freeList[:n-1]
		e.contexts[raw-1] = contextSlot{valid: true}
	} else {
		e.contexts = append(e.contexts, contextSlot{valid: true})
		raw = guiruntime.RawContext(len(e.contexts))
	}

	if e.current == 0 {
		e.current = raw
	}

	Logger().Debug("context created",
		zap.Uintptr("ctx", uintptr(raw)),
		zap.Bool("current", e.current == raw))
	return raw
}

// DestroyContext frees a context instance. Destroying the current context
// leaves the engine with no current context.
func (e *NativeEngine) DestroyContext(raw guiruntime.RawContext) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.slot(raw)
	if slot == nil {
		Logger().Warn("destroy of unknown context", zap.Uintptr("ctx", uintptr(raw)))
		return
	}

	if e.current == raw {
		e.current = 0
	}

	*slot = contextSlot{}
	e.freeList = append(e.freeList, raw)
	Logger().Debug("context destroyed", zap.Uintptr("ctx", uintptr(raw)))
}

// Current returns the current-context handle, or zero when none is current.
func (e *NativeEngine) Current() guiruntime.RawContext {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// SetCurrent makes raw the current context. Zero clears the slot.
func (e *NativeEngine) SetCurrent(raw guiruntime.RawContext) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if raw != 0 && e.slot(raw) == nil {
		Logger().Warn("set-current with unknown context", zap.Uintptr("ctx", uintptr(raw)))
		return
	}
	e.current = raw
}

// IOString returns the pointer stored in one of the context's string slots.
func (e *NativeEngine) IOString(raw guiruntime.RawContext, field guiruntime.StringField) *byte {
	e.mu.RLock()
	defer e.mu.RUnlock()

	slot := e.slot(raw)
	if slot == nil || int(field) >= len(slot.strings) {
		return nil
	}
	return slot.strings[field]
}

// SetIOString stores ptr in one of the context's string slots. The engine
// keeps the pointer as-is; the caller guarantees it stays valid until
// replaced or the context is destroyed.
func (e *NativeEngine) SetIOString(raw guiruntime.RawContext, field guiruntime.StringField, ptr *byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.slot(raw)
	if slot == nil || int(field) >= len(slot.strings) {
		Logger().Warn("set-io-string with unknown context or field",
			zap.Uintptr("ctx", uintptr(raw)),
			zap.String("field", field.String()))
		return
	}
	slot.strings[field] = ptr
}

// LoadIniSettings parses data into the current context's settings, merging
// by window name. Without a current context it does nothing.
func (e *NativeEngine) LoadIniSettings(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.slot(e.current)
	if slot == nil {
		Logger().Warn("load-ini-settings with no current context")
		return
	}
	slot.settings.load(data)
}

// SaveIniSettings serializes the current context's settings. The returned
// buffer belongs to the engine and is reused by the next save; callers copy
// it before making another engine call. Returns nil without a current
// context.
func (e *NativeEngine) SaveIniSettings() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.slot(e.current)
	if slot == nil {
		Logger().Warn("save-ini-settings with no current context")
		return nil
	}
	slot.saveBuf = slot.settings.appendTo(slot.saveBuf[:0])
	return slot.saveBuf
}

// ContextCount returns the number of live context instances.
func (e *NativeEngine) ContextCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for i := range e.contexts {
		if e.contexts[i].valid {
			count++
		}
	}
	return count
}

// slot returns the live slot for raw, or nil. Callers hold e.mu.
func (e *NativeEngine) slot(raw guiruntime.RawContext) *contextSlot {
	if raw == 0 || int(raw) > len(e.contexts) {
		return nil
	}
	s := &e.contexts[raw-1]
	if !s.valid {
		return nil
	}
	return s
}
