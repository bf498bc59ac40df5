//go:build !(darwin || freebsd || linux)

package engine

import (
	guiruntime "github.com/uiforge/gui-runtime"
	"github.com/uiforge/gui-runtime/errors"
)

// DylibEngine binds a GUI core compiled as a shared library. This stub keeps
// the package compiling on platforms without dlopen support; NewDylibEngine
// always fails there.
type DylibEngine struct{}

var _ guiruntime.Engine = (*DylibEngine)(nil)

// NewDylibEngine reports that shared-library engines are unavailable.
func NewDylibEngine(path string) (*DylibEngine, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "shared-library engines are not supported on this platform")
}

// Path returns the library path the engine was loaded from.
func (e *DylibEngine) Path() string { return "" }

func (e *DylibEngine) CreateContext() guiruntime.RawContext { return 0 }

func (e *DylibEngine) DestroyContext(guiruntime.RawContext) {}

func (e *DylibEngine) Current() guiruntime.RawContext { return 0 }

func (e *DylibEngine) SetCurrent(guiruntime.RawContext) {}

func (e *DylibEngine) IOString(guiruntime.RawContext, guiruntime.StringField) *byte { return nil }

func (e *DylibEngine) SetIOString(guiruntime.RawContext, guiruntime.StringField, *byte) {}

func (e *DylibEngine) LoadIniSettings([]byte) {}

func (e *DylibEngine) SaveIniSettings() []byte { return nil }
