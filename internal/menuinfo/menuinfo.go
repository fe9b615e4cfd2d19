// Package menuinfo holds the process-wide menu preferences. Readers get an
// immutable snapshot; a tracking session keeps the snapshot it started with.
package menuinfo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
)

// Info mirrors the menu_info preference block.
type Info struct {
	FontSize            float64 `json:"font_size"`
	FontFamily          string  `json:"font_family"`
	FontStyle           string  `json:"font_style"`
	BackgroundColor     string  `json:"background_color"`
	SeparatorWidth      int     `json:"separator_width"`
	ClickToOpen         bool    `json:"click_to_open"`
	TriggersAlwaysShown bool    `json:"triggers_always_shown"`
	AltAsCommand        bool    `json:"alt_as_command"`
}

var current atomic.Pointer[Info]

func init() {
	d := Default()
	current.Store(&d)
}

// Default returns the stock preferences.
func Default() Info {
	return Info{
		FontSize:        12,
		FontFamily:      "monospace",
		FontStyle:       "regular",
		BackgroundColor: "236",
		SeparatorWidth:  1,
		ClickToOpen:     true,
	}
}

// Get returns the current preferences.
func Get() Info {
	return *current.Load()
}

// Set validates and installs info.
func Set(info Info) error {
	if err := Validate(info); err != nil {
		return err
	}
	info.FontStyle = strings.ToLower(strings.TrimSpace(info.FontStyle))
	current.Store(&info)
	return nil
}

// SetAltAsCommand toggles only the alt-as-command flag.
func SetAltAsCommand(on bool) {
	for {
		old := current.Load()
		next := *old
		next.AltAsCommand = on
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// AltAsCommand reports whether alt stands in for the command key.
func AltAsCommand() bool {
	return current.Load().AltAsCommand
}

var (
	hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	styles   = map[string]struct{}{"regular": {}, "bold": {}, "italic": {}, "bold italic": {}}
)

// Validate checks an Info for values the renderer cannot use.
func Validate(info Info) error {
	var errs []error
	if info.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font size must be positive, got %v", info.FontSize))
	}
	if info.SeparatorWidth < 0 {
		errs = append(errs, fmt.Errorf("separator width must not be negative, got %d", info.SeparatorWidth))
	}
	if _, ok := styles[strings.ToLower(strings.TrimSpace(info.FontStyle))]; !ok {
		errs = append(errs, fmt.Errorf("unknown font style %q", info.FontStyle))
	}
	if !validColor(info.BackgroundColor) {
		errs = append(errs, fmt.Errorf("invalid background colour %q", info.BackgroundColor))
	}
	return errors.Join(errs...)
}

func validColor(c string) bool {
	if c == "" {
		return true
	}
	if hexColor.MatchString(c) {
		return true
	}
	n, err := strconv.Atoi(c)
	return err == nil && n >= 0 && n <= 255
}
