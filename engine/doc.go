// Package engine provides implementations of the GUI core primitive surface.
//
// Two backends implement guiruntime.Engine:
//
//	NativeEngine - an in-process core written in Go. Context slots, string
//	               fields, and window settings live in Go memory. This is the
//	               default backend for tests and tooling.
//	DylibEngine  - a core compiled as a shared library, loaded with dlopen
//	               and called through purego (no cgo). Only built on dlopen
//	               platforms; elsewhere NewDylibEngine fails with an
//	               unsupported error.
//
// # The Current-Context Contract
//
// Both backends apply the same rules around the process-global current
// context:
//
//  1. CreateContext makes the new instance current only when nothing was
//     current at the time of the call.
//  2. DestroyContext clears the current slot only when the destroyed
//     instance held it.
//  3. LoadIniSettings and SaveIniSettings act on the current context.
//
// The lifecycle layer (guictx) depends on these rules; an engine that breaks
// them will trip its invariant panics.
//
// # Shared Library ABI
//
// A DylibEngine core exports one flat C symbol per primitive, prefixed with
// guirt_ (see DylibEngine's type documentation for the full signatures):
//
//	guirt_create_context        guirt_get_io_string
//	guirt_destroy_context       guirt_set_io_string
//	guirt_get_current_context   guirt_load_ini_settings
//	guirt_set_current_context   guirt_save_ini_settings
//
// String-field values cross the boundary as NUL-terminated pointers owned by
// the caller; settings buffers cross with explicit lengths. The buffer
// returned by guirt_save_ini_settings is owned by the core and valid only
// until the next call, so DylibEngine copies it out immediately.
//
// # Settings Dialect
//
// NativeEngine persists window state in the core's ini dialect:
//
//	[Window][Debug##Default]
//	Pos=60,60
//	Size=400,400
//	Collapsed=0
//
// Section headers carry a type and a name; a legacy single-bracket header
// means a window. Unknown section types are skipped. Loading merges by
// window name rather than replacing the whole set.
//
// # Thread Safety
//
// NativeEngine methods are internally synchronized, but the engine contract
// itself (check-then-act sequences like "create only when nothing is
// current") requires external serialization; guictx provides it. DylibEngine
// performs no synchronization at all, matching a real core.
package engine
