package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/menukit/internal/app"
	"github.com/atomicstack/menukit/internal/menuinfo"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuFile       = "MENUKIT_MENU_FILE"
	envX              = "MENUKIT_X"
	envY              = "MENUKIT_Y"
	envWidth          = "MENUKIT_WIDTH"
	envHeight         = "MENUKIT_HEIGHT"
	envFontSize       = "MENUKIT_FONT_SIZE"
	envFontFamily     = "MENUKIT_FONT_FAMILY"
	envFontStyle      = "MENUKIT_FONT_STYLE"
	envBackground     = "MENUKIT_BACKGROUND"
	envSeparatorWidth = "MENUKIT_SEPARATOR_WIDTH"
	envClickToOpen    = "MENUKIT_CLICK_TO_OPEN"
	envTriggers       = "MENUKIT_TRIGGERS"
	envAltAsCommand   = "MENUKIT_ALT_AS_COMMAND"
	envOpenDelay      = "MENUKIT_OPEN_DELAY"
	envTypeAhead      = "MENUKIT_TYPE_AHEAD"
	envMetricsAddr    = "MENUKIT_METRICS_ADDR"
	envDumpLayout     = "MENUKIT_DUMP_LAYOUT"
	envTrace          = "MENUKIT_TRACE"
	envLogFile        = "MENUKIT_LOG_FILE"
)

// DefaultOpenDelay is the pause before a hovered submenu opens.
const DefaultOpenDelay = 225 * time.Millisecond

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	info := menuinfo.Default()

	fs := flag.NewFlagSet("menukit", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuFile := fs.String("menu", envOrDefault(env, envMenuFile, "-"), "menu definition file (- reads stdin)")
	x := fs.Int("x", envOrInt(env, envX, 0), "column of the menu's top-left corner")
	y := fs.Int("y", envOrInt(env, envY, 0), "row of the menu's top-left corner")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "screen width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "screen height in rows (0 uses terminal height)")
	fontSize := fs.Float64("font-size", envOrFloat(env, envFontSize, info.FontSize), "menu font size in points")
	fontFamily := fs.String("font-family", envOrDefault(env, envFontFamily, info.FontFamily), "menu font family")
	fontStyle := fs.String("font-style", envOrDefault(env, envFontStyle, info.FontStyle), "menu font style: regular, bold, italic or \"bold italic\"")
	background := fs.String("background", envOrDefault(env, envBackground, info.BackgroundColor), "menu background colour (ANSI index or #rrggbb)")
	separator := fs.Int("separator-width", envOrInt(env, envSeparatorWidth, info.SeparatorWidth), "separator line width")
	clickToOpen := fs.Bool("click-to-open", envOrBool(env, envClickToOpen, info.ClickToOpen), "keep the menu open after a quick click")
	triggers := fs.Bool("triggers", envOrBool(env, envTriggers, info.TriggersAlwaysShown), "always show trigger characters")
	altAsCommand := fs.Bool("alt-as-command", envOrBool(env, envAltAsCommand, info.AltAsCommand), "use alt instead of ctrl as the shortcut key")
	openDelay := fs.Duration("open-delay", envOrDuration(env, envOpenDelay, DefaultOpenDelay), "delay before a hovered submenu opens")
	typeAhead := fs.Bool("type-ahead", envOrBool(env, envTypeAhead, false), "select items by typing part of their label")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, ""), "serve prometheus metrics on this address")
	dumpLayout := fs.Bool("dump-layout", envOrBool(env, envDumpLayout, false), "print the computed layout instead of showing the menu")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 && *menuFile == "-" {
		*menuFile = fs.Arg(0)
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *openDelay < 0 {
		return Config{}, fmt.Errorf("open delay must be >= 0 (got %s)", *openDelay)
	}

	info.FontSize = *fontSize
	info.FontFamily = *fontFamily
	info.FontStyle = *fontStyle
	info.BackgroundColor = *background
	info.SeparatorWidth = *separator
	info.ClickToOpen = *clickToOpen
	info.TriggersAlwaysShown = *triggers
	info.AltAsCommand = *altAsCommand

	cfg := Config{
		App: app.Config{
			MenuFile:    *menuFile,
			X:           *x,
			Y:           *y,
			Width:       *width,
			Height:      *height,
			Info:        info,
			OpenDelay:   *openDelay,
			TypeAhead:   *typeAhead,
			MetricsAddr: *metricsAddr,
			DumpLayout:  *dumpLayout,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menu":           *menuFile,
			"x":              strconv.Itoa(*x),
			"y":              strconv.Itoa(*y),
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"fontSize":       strconv.FormatFloat(*fontSize, 'g', -1, 64),
			"fontFamily":     *fontFamily,
			"fontStyle":      *fontStyle,
			"background":     *background,
			"separatorWidth": strconv.Itoa(*separator),
			"clickToOpen":    strconv.FormatBool(*clickToOpen),
			"triggers":       strconv.FormatBool(*triggers),
			"altAsCommand":   strconv.FormatBool(*altAsCommand),
			"openDelay":      openDelay.String(),
			"typeAhead":      strconv.FormatBool(*typeAhead),
			"metricsAddr":    *metricsAddr,
			"dumpLayout":     strconv.FormatBool(*dumpLayout),
			"trace":          strconv.FormatBool(*trace),
			"logFile":        *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks the menu preferences before anything is drawn.
func Validate(cfg Config) error {
	if err := menuinfo.Validate(cfg.App.Info); err != nil {
		return fmt.Errorf("menu preferences: %w", err)
	}
	return nil
}
