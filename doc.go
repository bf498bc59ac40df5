// Package guiruntime provides a Go binding layer for an immediate-mode GUI
// core that keeps a single process-global "current context" pointer.
//
// The GUI core is opaque: the library talks to it through a small primitive
// surface (create/destroy context, get/set the current-context pointer,
// string-field slots, settings serialization) and layers safe lifecycle
// management on top.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	guiruntime/          Root package with the Engine primitive surface
//	├── guictx/          Context lifecycle: creation, suspension, activation, destruction
//	├── engine/          Engine backends: in-process native core and dlopen'd shared library
//	├── errors/          Structured error types for debugging
//	└── cmd/guirun/      Command-line driver and interactive lifecycle inspector
//
// # Quick Start
//
// Create a context, configure it, and tear it down:
//
//	eng := engine.NewNativeEngine()
//
//	ctx, err := guictx.Create(eng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ctx.SetIniFilename("myapp.ini")
//	ctx.LoadIniSettings(savedText)
//
// # The Current-Context Model
//
// The core dereferences one global pointer on every call; whichever context
// that pointer names is "current". At most one context can be current, and
// most core operations are only meaningful against it. guictx encodes that
// rule in the type system: a Context is the active representation, a
// SuspendedContext is provably not current, and conversions between the two
// (Suspend, Activate) move the global pointer under a process-wide gate.
//
// # Thread Safety
//
// All reads and writes of the global current-context pointer are serialized
// by guictx's internal gate, so contexts may be created, suspended, and
// destroyed from any goroutine. An individual Context or SuspendedContext is
// NOT thread-safe and should be used by a single goroutine, or access must
// be synchronized.
//
// # String Ownership
//
// The core stores raw pointers to the four IO string fields (ini filename,
// log filename, platform name, renderer name) and reads them on its own
// schedule. guictx owns a pinned NUL-terminated buffer for each value it
// sets, and never lets the engine observe a pointer to a released buffer.
package guiruntime
