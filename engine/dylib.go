//go:build darwin || freebsd || linux

package engine

import (
	"bytes"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	guiruntime "github.com/uiforge/gui-runtime"
	"github.com/uiforge/gui-runtime/errors"
)

// DylibEngine binds a GUI core compiled as a shared library. The library
// exports one C symbol per engine primitive:
//
//	void*       guirt_create_context(void)
//	void        guirt_destroy_context(void* ctx)
//	void*       guirt_get_current_context(void)
//	void        guirt_set_current_context(void* ctx)
//	const char* guirt_get_io_string(void* ctx, uint32_t field)
//	void        guirt_set_io_string(void* ctx, uint32_t field, const char* value)
//	void        guirt_load_ini_settings(const char* data, size_t len)
//	const char* guirt_save_ini_settings(size_t* out_len)
//
// Every symbol is resolved up front, so a truncated build fails at
// NewDylibEngine instead of at an arbitrary later call.
type DylibEngine struct {
	handle uintptr
	path   string

	createContext  func() uintptr
	destroyContext func(ctx uintptr)
	getCurrent     func() uintptr
	setCurrent     func(ctx uintptr)
	getIOString    func(ctx uintptr, field uint32) uintptr
	setIOString    func(ctx uintptr, field uint32, value unsafe.Pointer)
	loadIni        func(data unsafe.Pointer, length uintptr)
	saveIni        func(outLen unsafe.Pointer) uintptr
}

var _ guiruntime.Engine = (*DylibEngine)(nil)

// NewDylibEngine loads the core from path and resolves its exports.
func NewDylibEngine(path string) (*DylibEngine, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, errors.LibraryUnavailable(path, err)
	}

	e := &DylibEngine{handle: handle, path: path}
	symbols := []struct {
		fptr any
		name string
	}{
		{&e.createContext, "guirt_create_context"},
		{&e.destroyContext, "guirt_destroy_context"},
		{&e.getCurrent, "guirt_get_current_context"},
		{&e.setCurrent, "guirt_set_current_context"},
		{&e.getIOString, "guirt_get_io_string"},
		{&e.setIOString, "guirt_set_io_string"},
		{&e.loadIni, "guirt_load_ini_settings"},
		{&e.saveIni, "guirt_save_ini_settings"},
	}
	for _, sym := range symbols {
		if _, err := purego.Dlsym(handle, sym.name); err != nil {
			_ = purego.Dlclose(handle)
			return nil, errors.SymbolMissing(sym.name, err)
		}
		purego.RegisterLibFunc(sym.fptr, handle, sym.name)
	}

	Logger().Debug("engine library loaded", zap.String("path", path))
	return e, nil
}

// Path returns the library path the engine was loaded from.
func (e *DylibEngine) Path() string {
	return e.path
}

func (e *DylibEngine) CreateContext() guiruntime.RawContext {
	return guiruntime.RawContext(e.createContext())
}

func (e *DylibEngine) DestroyContext(raw guiruntime.RawContext) {
	e.destroyContext(uintptr(raw))
}

func (e *DylibEngine) Current() guiruntime.RawContext {
	return guiruntime.RawContext(e.getCurrent())
}

func (e *DylibEngine) SetCurrent(raw guiruntime.RawContext) {
	e.setCurrent(uintptr(raw))
}

func (e *DylibEngine) IOString(raw guiruntime.RawContext, field guiruntime.StringField) *byte {
	ptr := e.getIOString(uintptr(raw), uint32(field))
	if ptr == 0 {
		return nil
	}
	return (*byte)(unsafe.Pointer(ptr))
}

// SetIOString hands the core a pointer into Go memory. Callers pin the
// buffer for as long as the core may read it.
func (e *DylibEngine) SetIOString(raw guiruntime.RawContext, field guiruntime.StringField, ptr *byte) {
	e.setIOString(uintptr(raw), uint32(field), unsafe.Pointer(ptr))
}

func (e *DylibEngine) LoadIniSettings(data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	e.loadIni(ptr, uintptr(len(data)))
	runtime.KeepAlive(data)
}

// SaveIniSettings copies the core-owned buffer out immediately, so the
// returned slice stays valid past the next engine call.
func (e *DylibEngine) SaveIniSettings() []byte {
	var n uintptr
	ptr := e.saveIni(unsafe.Pointer(&n))
	if ptr == 0 || n == 0 {
		return nil
	}
	return bytes.Clone(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
}
