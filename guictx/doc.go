// Package guictx manages the lifecycle of GUI core contexts.
//
// # Quick Start
//
//	eng := engine.NewNativeEngine()
//
//	ctx, err := guictx.Create(eng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ctx.SetIniFilename("layout.ini")
//	ctx.SetPlatformName("glfw")
//
// # Lifecycle
//
// The core allows at most one current context per process. guictx models
// that with two handle types and consuming transitions between them:
//
//	Create           ->  *Context            (fails if something is current)
//	CreateSuspended  ->  *SuspendedContext   (never contends)
//	Context.Suspend  ->  *SuspendedContext   (consumes the Context)
//	Suspended.Activate -> *Context           (fails if something is current;
//	                                          consumes the handle on success)
//	Close                                    (either representation)
//
// A *Context is always the current context; a *SuspendedContext never is.
// Holding several suspended contexts and activating them in turn is the
// supported way to drive more than one context in a process.
//
// # Errors vs Panics
//
// Contention is an error: Create and Activate return a context_active error
// that errors.IsContextActive recognizes, and the caller may retry.
// Everything else that can go wrong is a programming bug and panics: using
// a handle after Close, Suspend, or a successful Activate has consumed it,
// or suspending a context that is no longer current because the global
// pointer was moved behind the lifecycle layer's back.
//
// # Settings
//
// LoadIniSettings and SaveIniSettings pass serialized window settings
// through to the engine without interpreting them. Load accepts arbitrary
// bytes; Save replaces invalid UTF-8 from the engine with U+FFFD instead of
// failing.
//
// # Thread Safety
//
// Every transition that touches the global current-context pointer is
// serialized by an internal process-wide gate, so contexts may be created
// and closed from any goroutine. Individual Context and SuspendedContext
// values are NOT thread-safe; give each to a single goroutine or
// synchronize externally.
package guictx
