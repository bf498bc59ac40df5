package guictx

import (
	"runtime"
	"strings"

	"go.uber.org/zap"

	guiruntime "github.com/uiforge/gui-runtime"
	"github.com/uiforge/gui-runtime/errors"
)

// Config carries optional initial values for a context's string fields.
// An empty string leaves the corresponding field unset.
type Config struct {
	IniFilename  string
	LogFilename  string
	PlatformName string
	RendererName string
}

type state uint8

const (
	stateActive state = iota
	stateSuspended
	stateDestroyed
)

// Context owns one engine context instance in its active representation:
// while the Context exists, its instance is the engine's current context.
// Suspend converts it to a SuspendedContext, consuming the handle.
//
// A Context is NOT safe for concurrent use. It should be owned by a single
// goroutine, or access must be synchronized externally. (The global
// current-context pointer itself is always synchronized internally.)
type Context struct {
	eng   guiruntime.Engine
	raw   guiruntime.RawContext
	state state
	owned [guiruntime.StringFieldCount]*pinnedString
}

// Create makes a new context and activates it. It fails with a
// context_active error when some context is already current; suspend or
// close that one first, or use CreateSuspended.
func Create(eng guiruntime.Engine) (*Context, error) {
	return CreateWithConfig(eng, nil)
}

// CreateWithConfig is Create with initial string fields.
func CreateWithConfig(eng guiruntime.Engine, cfg *Config) (*Context, error) {
	tok := ctxGate.lock()
	defer tok.unlock()

	if !noCurrent(tok, eng) {
		return nil, errors.ContextActive(errors.PhaseCreate)
	}

	// Nothing was current, so the engine activates the new instance.
	c := newContext(eng, eng.CreateContext(), stateActive)
	c.applyConfig(cfg)
	Logger().Debug("context created", zap.Uintptr("ctx", uintptr(c.raw)))
	return c, nil
}

func newContext(eng guiruntime.Engine, raw guiruntime.RawContext, st state) *Context {
	c := &Context{eng: eng, raw: raw, state: st}
	runtime.SetFinalizer(c, (*Context).finalize)
	return c
}

// Raw exposes the engine handle for interop with code that talks to the
// core directly. The instance stays owned by this Context.
func (c *Context) Raw() guiruntime.RawContext {
	c.mustUsable("Raw")
	return c.raw
}

// IsCurrent reports whether this instance is the engine's current context.
// It is true for the lifetime of the Context unless something bypasses the
// lifecycle layer and moves the global pointer directly.
func (c *Context) IsCurrent() bool {
	c.mustUsable("IsCurrent")
	tok := ctxGate.lock()
	defer tok.unlock()
	return c.eng.Current() == c.raw
}

// Suspend deactivates the context and returns its suspended representation.
// The Context handle is consumed; further use of it panics.
//
// Suspend panics if the instance is not the engine's current context. An
// active Context is current by construction, so this only fires when the
// global pointer was moved behind the lifecycle layer's back.
func (c *Context) Suspend() *SuspendedContext {
	c.mustUsable("Suspend")
	tok := ctxGate.lock()
	defer tok.unlock()

	if c.eng.Current() != c.raw {
		panic("guictx: context to be suspended is not the current context")
	}
	clearCurrent(tok, c.eng)
	c.state = stateSuspended
	Logger().Debug("context suspended", zap.Uintptr("ctx", uintptr(c.raw)))
	return &SuspendedContext{inner: c}
}

// Close destroys the context instance. If the instance is current, the
// engine clears its current slot as part of destruction. Close is
// idempotent; every other method panics once the context is closed.
func (c *Context) Close() error {
	if c.state == stateDestroyed {
		return nil
	}
	if c.state == stateSuspended {
		panic("guictx: Close on a suspended context (close the SuspendedContext instead)")
	}
	return c.destroy()
}

// destroy releases the engine instance and the owned string buffers.
// Reached from the active and suspended states, and from the finalizer.
func (c *Context) destroy() error {
	tok := ctxGate.lock()
	c.eng.DestroyContext(c.raw)
	tok.unlock()

	// The instance is gone, so no engine-side pointer refers to these
	// buffers anymore.
	for i, p := range c.owned {
		if p != nil {
			p.release()
			c.owned[i] = nil
		}
	}
	c.state = stateDestroyed
	runtime.SetFinalizer(c, nil)
	Logger().Debug("context destroyed", zap.Uintptr("ctx", uintptr(c.raw)))
	return nil
}

// finalize is the leak backstop: a context that becomes unreachable without
// Close still releases its engine instance.
func (c *Context) finalize() {
	if c.state == stateDestroyed {
		return
	}
	Logger().Warn("context leaked, destroying in finalizer",
		zap.Uintptr("ctx", uintptr(c.raw)))
	_ = c.destroy()
}

// LoadIniSettings feeds serialized settings to the engine, which merges
// them into the current context. The buffer crosses with an explicit
// length, so data may contain anything, including NUL bytes.
func (c *Context) LoadIniSettings(data string) {
	c.mustUsable("LoadIniSettings")
	tok := ctxGate.lock()
	defer tok.unlock()
	c.eng.LoadIniSettings([]byte(data))
}

// SaveIniSettings returns the engine's serialized settings for the current
// context. The engine-owned buffer is copied out immediately; byte runs
// that are not valid UTF-8 are replaced with U+FFFD rather than failing.
func (c *Context) SaveIniSettings() string {
	c.mustUsable("SaveIniSettings")
	tok := ctxGate.lock()
	out := string(c.eng.SaveIniSettings())
	tok.unlock()
	return strings.ToValidUTF8(out, "�")
}

// IniFilename returns the ini filename the engine currently sees for this
// context, reading back through the engine-visible pointer rather than a
// cached copy. The second result is false when the field is unset.
func (c *Context) IniFilename() (string, bool) {
	c.mustUsable("IniFilename")
	return c.stringField(guiruntime.FieldIniFilename)
}

// SetIniFilename points the engine at an owned copy of name. Settings are
// loaded from and saved to this file by the core's frame loop.
func (c *Context) SetIniFilename(name string) {
	c.mustUsable("SetIniFilename")
	c.setStringField(guiruntime.FieldIniFilename, name)
}

// ClearIniFilename unsets the field, disabling automatic ini persistence.
func (c *Context) ClearIniFilename() {
	c.mustUsable("ClearIniFilename")
	c.clearStringField(guiruntime.FieldIniFilename)
}

// LogFilename returns the log filename field.
func (c *Context) LogFilename() (string, bool) {
	c.mustUsable("LogFilename")
	return c.stringField(guiruntime.FieldLogFilename)
}

// SetLogFilename points the engine at an owned copy of name.
func (c *Context) SetLogFilename(name string) {
	c.mustUsable("SetLogFilename")
	c.setStringField(guiruntime.FieldLogFilename, name)
}

// ClearLogFilename unsets the field.
func (c *Context) ClearLogFilename() {
	c.mustUsable("ClearLogFilename")
	c.clearStringField(guiruntime.FieldLogFilename)
}

// PlatformName returns the platform backend name field.
func (c *Context) PlatformName() (string, bool) {
	c.mustUsable("PlatformName")
	return c.stringField(guiruntime.FieldPlatformName)
}

// SetPlatformName records which platform backend drives this context.
func (c *Context) SetPlatformName(name string) {
	c.mustUsable("SetPlatformName")
	c.setStringField(guiruntime.FieldPlatformName, name)
}

// ClearPlatformName unsets the field.
func (c *Context) ClearPlatformName() {
	c.mustUsable("ClearPlatformName")
	c.clearStringField(guiruntime.FieldPlatformName)
}

// RendererName returns the renderer backend name field.
func (c *Context) RendererName() (string, bool) {
	c.mustUsable("RendererName")
	return c.stringField(guiruntime.FieldRendererName)
}

// SetRendererName records which renderer backend draws for this context.
func (c *Context) SetRendererName(name string) {
	c.mustUsable("SetRendererName")
	c.setStringField(guiruntime.FieldRendererName, name)
}

// ClearRendererName unsets the field.
func (c *Context) ClearRendererName() {
	c.mustUsable("ClearRendererName")
	c.clearStringField(guiruntime.FieldRendererName)
}

func (c *Context) stringField(field guiruntime.StringField) (string, bool) {
	ptr := c.eng.IOString(c.raw, field)
	if ptr == nil {
		return "", false
	}
	return guiruntime.GoString(ptr), true
}

func (c *Context) setStringField(field guiruntime.StringField, value string) {
	if strings.IndexByte(value, 0) >= 0 {
		panic("guictx: " + field.String() + " value contains a NUL byte")
	}

	// Point the engine at the new buffer before releasing the old one, so
	// it never observes a freed address.
	next := newPinnedString(value)
	c.eng.SetIOString(c.raw, field, next.ptr())
	if prev := c.owned[field]; prev != nil {
		prev.release()
	}
	c.owned[field] = next
}

func (c *Context) clearStringField(field guiruntime.StringField) {
	c.eng.SetIOString(c.raw, field, nil)
	if prev := c.owned[field]; prev != nil {
		prev.release()
		c.owned[field] = nil
	}
}

func (c *Context) applyConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.IniFilename != "" {
		c.setStringField(guiruntime.FieldIniFilename, cfg.IniFilename)
	}
	if cfg.LogFilename != "" {
		c.setStringField(guiruntime.FieldLogFilename, cfg.LogFilename)
	}
	if cfg.PlatformName != "" {
		c.setStringField(guiruntime.FieldPlatformName, cfg.PlatformName)
	}
	if cfg.RendererName != "" {
		c.setStringField(guiruntime.FieldRendererName, cfg.RendererName)
	}
}

// mustUsable panics when the handle no longer represents a live active
// context. Using a consumed or closed handle is a programming error,
// mirroring the fatal asserts inside the core.
func (c *Context) mustUsable(op string) {
	switch c.state {
	case stateSuspended:
		panic("guictx: " + op + " on a suspended context (the SuspendedContext owns it now)")
	case stateDestroyed:
		panic("guictx: " + op + " on a closed context")
	}
}
