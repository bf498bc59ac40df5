package guictx

import (
	"go.uber.org/zap"

	guiruntime "github.com/uiforge/gui-runtime"
	"github.com/uiforge/gui-runtime/errors"
)

// SuspendedContext owns an engine context instance that is guaranteed not
// to be the engine's current context. Suspended instances exist to be
// parked: they carry no operations besides Activate and Close.
//
// A SuspendedContext is NOT safe for concurrent use.
type SuspendedContext struct {
	inner *Context
}

// CreateSuspended makes a new context without activating it. Unlike Create
// it cannot fail because of an existing active context: the instance is
// created unconditionally, and if the engine made it current (which happens
// exactly when nothing else was) it is deactivated on the spot. A different
// active context is never disturbed.
func CreateSuspended(eng guiruntime.Engine) *SuspendedContext {
	return CreateSuspendedWithConfig(eng, nil)
}

// CreateSuspendedWithConfig is CreateSuspended with initial string fields.
func CreateSuspendedWithConfig(eng guiruntime.Engine, cfg *Config) *SuspendedContext {
	tok := ctxGate.lock()
	defer tok.unlock()

	c := newContext(eng, eng.CreateContext(), stateSuspended)
	if c.eng.Current() == c.raw {
		clearCurrent(tok, c.eng)
	}
	c.applyConfig(cfg)
	Logger().Debug("suspended context created", zap.Uintptr("ctx", uintptr(c.raw)))
	return &SuspendedContext{inner: c}
}

// Activate makes the instance current and returns its active
// representation, consuming this handle. When another context is current it
// fails with a context_active error and the handle stays valid, so the
// caller can retry once the other context is suspended or closed.
func (s *SuspendedContext) Activate() (*Context, error) {
	c := s.mustInner("Activate")
	tok := ctxGate.lock()
	defer tok.unlock()

	if !noCurrent(tok, c.eng) {
		return nil, errors.ContextActive(errors.PhaseActivate)
	}
	c.eng.SetCurrent(c.raw)
	c.state = stateActive
	s.inner = nil
	Logger().Debug("context activated", zap.Uintptr("ctx", uintptr(c.raw)))
	return c, nil
}

// Close destroys the suspended instance. A different current context is not
// disturbed. Closing a spent handle (after a successful Activate) is a
// no-op.
func (s *SuspendedContext) Close() error {
	if s.inner == nil {
		return nil
	}
	err := s.inner.destroy()
	s.inner = nil
	return err
}

func (s *SuspendedContext) mustInner(op string) *Context {
	if s.inner == nil {
		panic("guictx: " + op + " on a spent suspended context")
	}
	return s.inner
}
