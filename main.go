package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/menukit/internal/app"
	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/logging"
	"github.com/atomicstack/menukit/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	res, err := app.Run(ctx, runtimeCfg.App)
	stop()
	switch {
	case errors.Is(err, app.ErrNothingChosen):
		os.Exit(1)
	case err != nil:
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	case !runtimeCfg.App.DumpLayout:
		fmt.Println(res.Output)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload records how the process was launched.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"menuInfo": cfg.App.Info,
		"tty":      collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals. The
// menu needs a terminal on stdout, and on stdin unless the menu is piped in.
func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(files))}
	for i, f := range files {
		details.Probes = append(details.Probes, probe(names[i], int(f.Fd())))
		p := details.Probes[i]
		if details.Detected == nil && p.IsTerminal && p.Error == "" {
			details.Detected = &ttyDetected{Source: p.Name, Width: p.Width, Height: p.Height}
		}
	}
	return details
}

func probe(name string, fd int) ttyProbeResult {
	res := ttyProbeResult{Name: name}
	if fd < 0 || !term.IsTerminal(fd) {
		return res
	}
	res.IsTerminal = true
	w, h, err := term.GetSize(fd)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Width, res.Height = w, h
	return res
}
