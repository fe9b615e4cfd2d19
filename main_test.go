package main

import (
	"testing"
	"time"

	"github.com/atomicstack/menukit/internal/app"
	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/menuinfo"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestProbeRejectsInvalidDescriptor(t *testing.T) {
	if res := probe("bogus", -1); res.IsTerminal || res.Name != "bogus" {
		t.Fatalf("unexpected probe %+v", res)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			MenuFile:  "menu.txt",
			Width:     80,
			Height:    24,
			Info:      menuinfo.Default(),
			OpenDelay: 200 * time.Millisecond,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"menu":   "menu.txt",
			"width":  "80",
			"height": "24",
		},
		Args: []string{"--menu", "menu.txt"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["menu"] != "menu.txt" {
		t.Fatalf("expected menu flag %q, got %v", "menu.txt", flagsValue["menu"])
	}
	if flagsValue["width"] != "80" || flagsValue["height"] != "24" {
		t.Fatalf("unexpected size flags %v", flagsValue)
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if info, ok := payload["menuInfo"].(menuinfo.Info); !ok || info != menuinfo.Default() {
		t.Fatalf("expected menu info in payload, got %v", payload["menuInfo"])
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
