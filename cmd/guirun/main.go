package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	guiruntime "github.com/uiforge/gui-runtime"
	"github.com/uiforge/gui-runtime/engine"
	"github.com/uiforge/gui-runtime/guictx"
)

func main() {
	var (
		libPath     = flag.String("lib", "", "Path to an engine shared library (default: in-process engine)")
		configPath  = flag.String("config", "", "Path to a guirun.yaml config file")
		iniFile     = flag.String("ini", "", "Settings file to load into the context")
		saveFile    = flag.String("save", "", "Write the context settings to this file")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Usage: guirun [-lib engine.so] [-config guirun.yaml] [-ini file] [-save file]")
		fmt.Fprintln(os.Stderr, "       guirun -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(logger)
		guictx.SetLogger(logger)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *libPath != "" {
		cfg.Engine.Library = *libPath
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, *iniFile, *saveFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *Config, iniFile, saveFile string) error {
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Engine: %s\n", engineDesc(cfg))

	// Create the context and activate it.
	ctx, err := guictx.CreateWithConfig(eng, cfg.contextConfig())
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	fmt.Printf("Context: %s (current: %v)\n", formatRaw(ctx.Raw()), ctx.IsCurrent())
	printFields(ctx)

	if iniFile != "" {
		data, err := os.ReadFile(iniFile)
		if err != nil {
			return fmt.Errorf("read settings: %w", err)
		}
		ctx.LoadIniSettings(string(data))
		fmt.Printf("\nLoaded settings from %s (%d bytes)\n", iniFile, len(data))
	}

	// Exercise the lifecycle: park the context, run a second one in its
	// place, then bring the first back.
	fmt.Printf("\nSuspending context...\n")
	susp := ctx.Suspend()

	second, err := guictx.Create(eng)
	if err != nil {
		return fmt.Errorf("create second context: %w", err)
	}
	fmt.Printf("Second context: %s (current: %v)\n", formatRaw(second.Raw()), second.IsCurrent())
	if err := second.Close(); err != nil {
		return fmt.Errorf("close second context: %w", err)
	}

	ctx, err = susp.Activate()
	if err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	fmt.Printf("Reactivated: %s (current: %v)\n", formatRaw(ctx.Raw()), ctx.IsCurrent())

	settings := ctx.SaveIniSettings()
	if saveFile != "" {
		if err := os.WriteFile(saveFile, []byte(settings), 0o644); err != nil {
			return fmt.Errorf("write settings: %w", err)
		}
		fmt.Printf("\nSaved settings to %s (%d bytes)\n", saveFile, len(settings))
	} else if settings != "" {
		fmt.Printf("\n--- settings ---\n%s", settings)
	}

	return ctx.Close()
}

func buildEngine(cfg *Config) (guiruntime.Engine, error) {
	if cfg.Engine.Library != "" {
		return engine.NewDylibEngine(cfg.Engine.Library)
	}
	return engine.NewNativeEngine(), nil
}

func engineDesc(cfg *Config) string {
	if cfg.Engine.Library != "" {
		return cfg.Engine.Library
	}
	return "in-process"
}

func printFields(ctx *guictx.Context) {
	fields := []struct {
		field guiruntime.StringField
		get   func() (string, bool)
	}{
		{guiruntime.FieldIniFilename, ctx.IniFilename},
		{guiruntime.FieldLogFilename, ctx.LogFilename},
		{guiruntime.FieldPlatformName, ctx.PlatformName},
		{guiruntime.FieldRendererName, ctx.RendererName},
	}
	for _, f := range fields {
		if v, ok := f.get(); ok {
			fmt.Printf("  %-14s %q\n", f.field, v)
		} else {
			fmt.Printf("  %-14s (unset)\n", f.field)
		}
	}
}

func formatRaw(raw guiruntime.RawContext) string {
	if raw == 0 {
		return "none"
	}
	return fmt.Sprintf("%#x", uintptr(raw))
}
