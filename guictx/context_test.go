package guictx

import (
	"strings"
	"testing"
	"unicode/utf8"

	guiruntime "github.com/uiforge/gui-runtime"
	"github.com/uiforge/gui-runtime/engine"
	"github.com/uiforge/gui-runtime/errors"
)

func mustCreate(t *testing.T, eng guiruntime.Engine) *Context {
	t.Helper()
	c, err := Create(eng)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return c
}

func wantPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", substr)
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("panic value = %v (%T), want string", r, r)
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("panic %q does not contain %q", msg, substr)
		}
	}()
	fn()
}

func TestCreateActivates(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)

	if !c.IsCurrent() {
		t.Error("new context is not current")
	}
	if cur := eng.Current(); cur != c.Raw() {
		t.Errorf("engine current = %v, want %v", cur, c.Raw())
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestCreateContention(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)

	_, err := Create(eng)
	if err == nil {
		t.Fatal("second Create succeeded with a context active")
	}
	if !errors.IsContextActive(err) {
		t.Errorf("error = %v, want context_active", err)
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if e.Phase != errors.PhaseCreate {
		t.Errorf("Phase = %v, want %v", e.Phase, errors.PhaseCreate)
	}

	// Contention clears with the active context.
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	c2 := mustCreate(t, eng)
	if err := c2.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestCloseClearsCurrent(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if cur := eng.Current(); cur != 0 {
		t.Errorf("engine current after close = %v, want 0", cur)
	}
	if n := eng.ContextCount(); n != 0 {
		t.Errorf("ContextCount = %d, want 0", n)
	}
}

func TestCloseIdempotentAndUseAfterClose(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)
	c.SetIniFilename("layout.ini")

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}

	wantPanic(t, "closed context", func() { c.IsCurrent() })
	wantPanic(t, "closed context", func() { c.SetIniFilename("x") })
	wantPanic(t, "closed context", func() { c.Suspend() })
	wantPanic(t, "closed context", func() { c.SaveIniSettings() })
}

func TestCreateSuspended(t *testing.T) {
	t.Run("with nothing current", func(t *testing.T) {
		eng := engine.NewNativeEngine()
		s := CreateSuspended(eng)

		// Creation made the instance current; it must have been deactivated.
		if cur := eng.Current(); cur != 0 {
			t.Errorf("engine current = %v, want 0", cur)
		}
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
		if n := eng.ContextCount(); n != 0 {
			t.Errorf("ContextCount = %d, want 0", n)
		}
	})

	t.Run("with an active context", func(t *testing.T) {
		eng := engine.NewNativeEngine()
		active := mustCreate(t, eng)

		s := CreateSuspended(eng)
		if cur := eng.Current(); cur != active.Raw() {
			t.Errorf("active context lost currency: current = %v, want %v", cur, active.Raw())
		}

		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
		if cur := eng.Current(); cur != active.Raw() {
			t.Errorf("closing suspended disturbed current: %v, want %v", cur, active.Raw())
		}

		if err := active.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
}

func TestSuspend(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)

	s := c.Suspend()
	if cur := eng.Current(); cur != 0 {
		t.Errorf("engine current after suspend = %v, want 0", cur)
	}

	// The active handle is consumed.
	wantPanic(t, "suspended context", func() { c.IsCurrent() })
	wantPanic(t, "close the SuspendedContext", func() { _ = c.Close() })

	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestSuspendActivate(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)
	raw := c.Raw()

	s := c.Suspend()
	c2, err := s.Activate()
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if c2.Raw() != raw {
		t.Errorf("activated handle = %v, want same instance %v", c2.Raw(), raw)
	}
	if !c2.IsCurrent() {
		t.Error("activated context is not current")
	}

	// The suspended handle is spent.
	wantPanic(t, "spent suspended context", func() { _, _ = s.Activate() })
	if err := s.Close(); err != nil {
		t.Errorf("Close of spent handle = %v, want nil", err)
	}

	if err := c2.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestActivateContention(t *testing.T) {
	eng := engine.NewNativeEngine()
	first := mustCreate(t, eng)
	s := first.Suspend()

	second := mustCreate(t, eng)

	_, err := s.Activate()
	if err == nil {
		t.Fatal("Activate succeeded with another context current")
	}
	if !errors.IsContextActive(err) {
		t.Errorf("error = %v, want context_active", err)
	}
	if e, ok := err.(*errors.Error); !ok || e.Phase != errors.PhaseActivate {
		t.Errorf("error = %v, want activate phase", err)
	}

	// The suspended handle survives the failure and can retry.
	if err := second.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reactivated, err := s.Activate()
	if err != nil {
		t.Fatalf("retry Activate: %v", err)
	}
	if !reactivated.IsCurrent() {
		t.Error("reactivated context is not current")
	}
	if err := reactivated.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestSuspendNotCurrentPanics(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)

	// Move the global pointer behind the lifecycle layer's back.
	eng.SetCurrent(0)
	wantPanic(t, "not the current context", func() { c.Suspend() })

	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestStringFieldAccessors(t *testing.T) {
	fields := []struct {
		name  string
		set   func(*Context, string)
		get   func(*Context) (string, bool)
		clear func(*Context)
	}{
		{"IniFilename", (*Context).SetIniFilename, (*Context).IniFilename, (*Context).ClearIniFilename},
		{"LogFilename", (*Context).SetLogFilename, (*Context).LogFilename, (*Context).ClearLogFilename},
		{"PlatformName", (*Context).SetPlatformName, (*Context).PlatformName, (*Context).ClearPlatformName},
		{"RendererName", (*Context).SetRendererName, (*Context).RendererName, (*Context).ClearRendererName},
	}

	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			eng := engine.NewNativeEngine()
			c := mustCreate(t, eng)
			defer c.Close()

			if v, ok := f.get(c); ok || v != "" {
				t.Errorf("unset field = (%q, %v), want (\"\", false)", v, ok)
			}

			f.set(c, "first value")
			if v, ok := f.get(c); !ok || v != "first value" {
				t.Errorf("field = (%q, %v), want (\"first value\", true)", v, ok)
			}

			// Replacing swaps the owned buffer without the engine ever
			// holding a released pointer.
			f.set(c, "second value")
			if v, ok := f.get(c); !ok || v != "second value" {
				t.Errorf("field = (%q, %v), want (\"second value\", true)", v, ok)
			}

			f.clear(c)
			if v, ok := f.get(c); ok || v != "" {
				t.Errorf("cleared field = (%q, %v), want (\"\", false)", v, ok)
			}

			// Empty string is a real value, distinct from unset.
			f.set(c, "")
			if v, ok := f.get(c); !ok || v != "" {
				t.Errorf("empty-set field = (%q, %v), want (\"\", true)", v, ok)
			}
		})
	}
}

func TestSetStringFieldRejectsNUL(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)
	defer c.Close()

	wantPanic(t, "NUL byte", func() { c.SetIniFilename("bad\x00name.ini") })
}

func TestStringFieldReadsThroughEngine(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)
	defer c.Close()

	c.SetIniFilename("mine.ini")

	// Getters observe the engine-visible pointer, not a cached copy.
	buf := []byte("theirs.ini\x00")
	eng.SetIOString(c.Raw(), guiruntime.FieldIniFilename, &buf[0])
	if v, ok := c.IniFilename(); !ok || v != "theirs.ini" {
		t.Errorf("field = (%q, %v), want (\"theirs.ini\", true)", v, ok)
	}
}

func TestCreateWithConfig(t *testing.T) {
	eng := engine.NewNativeEngine()
	c, err := CreateWithConfig(eng, &Config{
		IniFilename:  "app.ini",
		PlatformName: "test-platform",
	})
	if err != nil {
		t.Fatalf("CreateWithConfig: %v", err)
	}
	defer c.Close()

	if v, ok := c.IniFilename(); !ok || v != "app.ini" {
		t.Errorf("IniFilename = (%q, %v), want (\"app.ini\", true)", v, ok)
	}
	if v, ok := c.PlatformName(); !ok || v != "test-platform" {
		t.Errorf("PlatformName = (%q, %v), want (\"test-platform\", true)", v, ok)
	}

	// Empty config fields stay unset.
	if _, ok := c.LogFilename(); ok {
		t.Error("LogFilename should be unset")
	}
	if _, ok := c.RendererName(); ok {
		t.Error("RendererName should be unset")
	}
}

func TestCreateSuspendedWithConfig(t *testing.T) {
	eng := engine.NewNativeEngine()
	s := CreateSuspendedWithConfig(eng, &Config{RendererName: "vulkan"})

	c, err := s.Activate()
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	defer c.Close()

	if v, ok := c.RendererName(); !ok || v != "vulkan" {
		t.Errorf("RendererName = (%q, %v), want (\"vulkan\", true)", v, ok)
	}
}

func TestIniSettingsRoundTrip(t *testing.T) {
	const ini = "[Window][Debug##Default]\nPos=60,60\nSize=400,400\nCollapsed=0\n"

	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)
	defer c.Close()

	c.LoadIniSettings(ini)
	saved := c.SaveIniSettings()
	if strings.TrimSpace(saved) != strings.TrimSpace(ini) {
		t.Errorf("saved = %q, want logical match of %q", saved, ini)
	}

	// Feeding the output back is stable.
	c.LoadIniSettings(saved)
	if again := c.SaveIniSettings(); again != saved {
		t.Errorf("second save = %q, want %q", again, saved)
	}
}

func TestSaveIniSettingsLossyDecode(t *testing.T) {
	eng := engine.NewNativeEngine()
	c := mustCreate(t, eng)
	defer c.Close()

	// A window name with bytes that are not valid UTF-8.
	c.LoadIniSettings("[Window][bad\xffname]\nPos=1,1\n")

	saved := c.SaveIniSettings()
	if !utf8.ValidString(saved) {
		t.Fatalf("saved settings are not valid UTF-8: %q", saved)
	}
	if !strings.Contains(saved, "bad�name") {
		t.Errorf("saved = %q, want invalid bytes replaced with U+FFFD", saved)
	}
}

func TestLifecycleLeavesNoInstances(t *testing.T) {
	eng := engine.NewNativeEngine()

	for i := 0; i < 10; i++ {
		c := mustCreate(t, eng)
		s := c.Suspend()

		c2, err := s.Activate()
		if err != nil {
			t.Fatalf("Activate: %v", err)
		}
		if err := c2.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		extra := CreateSuspended(eng)
		if err := extra.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	if n := eng.ContextCount(); n != 0 {
		t.Errorf("ContextCount = %d, want 0", n)
	}
}
