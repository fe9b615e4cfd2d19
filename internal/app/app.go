package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/looper"
	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/menufile"
	"github.com/atomicstack/menukit/internal/menuinfo"
	"github.com/atomicstack/menukit/internal/metrics"
	"github.com/atomicstack/menukit/internal/popup"
	"github.com/atomicstack/menukit/internal/render"
	"github.com/atomicstack/menukit/internal/theme"
	"github.com/atomicstack/menukit/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	stdinName      = "-"
)

// ErrNothingChosen is returned when the menu closed without a choice.
var ErrNothingChosen = errors.New("no item chosen")

// Config describes user-provided application options.
type Config struct {
	// MenuFile is the definition to load; empty or "-" reads stdin.
	MenuFile    string
	X           int
	Y           int
	Width       int
	Height      int
	Info        menuinfo.Info
	OpenDelay   time.Duration
	TypeAhead   bool
	MetricsAddr string
	DumpLayout  bool
}

// Result is the item picked by the user.
type Result struct {
	Label  string
	Output string
}

// Run loads the menu, pops it up on the terminal and returns the choice.
func Run(ctx context.Context, cfg Config) (Result, error) {
	return run(ctx, cfg, os.Stdin, os.Stdout)
}

func run(ctx context.Context, cfg Config, stdin io.Reader, stdout io.Writer, opts ...tea.ProgramOption) (Result, error) {
	root, fromStdin, err := loadMenu(cfg.MenuFile, stdin)
	if err != nil {
		return Result{}, err
	}
	events.App.MenuLoaded(root.Name(), root.CountItems())
	if err := menuinfo.Set(cfg.Info); err != nil {
		return Result{}, fmt.Errorf("menu info: %w", err)
	}
	if cfg.DumpLayout {
		for _, line := range menufile.Dump(root) {
			fmt.Fprintln(stdout, line)
		}
		return Result{}, nil
	}

	width, height := screenSize(cfg)
	comp := ui.NewCompositor(width, height)
	done := make(chan struct{})
	model := ui.NewModel(comp, done)
	if cfg.Width > 0 && cfg.Height > 0 {
		model.FixSize(cfg.Width, cfg.Height)
	}

	var (
		mu     sync.Mutex
		output string
	)
	delivery := looper.New("deliver", looper.DefaultCapacity, func(_ context.Context, msg *menu.Message) error {
		mu.Lock()
		output = menufile.Output(msg)
		mu.Unlock()
		return nil
	})
	root.SetTargetForItems(delivery)

	recorder := metrics.NewRecorder()
	info := menuinfo.Get()
	p := popup.New(root, comp, render.New(theme.FromInfo(info)), model.Events(), popup.Config{
		OpenDelay: cfg.OpenDelay,
		TypeAhead: cfg.TypeAhead,
		Observer:  recorder,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(runCtx)

	// Delivery outlives the program so the chosen message is never cut off.
	g.Go(func() error {
		if err := delivery.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	})
	if cfg.MetricsAddr != "" {
		g.Go(func() error { return metrics.Serve(gCtx, cfg.MetricsAddr, recorder.Registry) })
	}

	if _, err := p.Go(gCtx, image.Pt(cfg.X, cfg.Y), popup.GoOptions{Async: true, OpenAnyway: true, Deliver: true, PointerUnknown: true}); err != nil {
		cancel()
		delivery.Close()
		_ = g.Wait()
		return Result{}, err
	}

	var outcome popup.Outcome
	g.Go(func() error {
		select {
		case outcome = <-p.Results():
		case <-gCtx.Done():
			p.Close()
			outcome = <-p.Results()
		}
		delivery.Close()
		close(done)
		return nil
	})

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(gCtx), tea.WithOutput(stdout)}
	if fromStdin {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	program := tea.NewProgram(model, append(programOpts, opts...)...)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run program: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if outcome.Err != nil {
		return Result{}, outcome.Err
	}
	if outcome.Item == nil {
		return Result{}, ErrNothingChosen
	}
	mu.Lock()
	res := Result{Label: outcome.Item.Label(), Output: output}
	mu.Unlock()
	if res.Output == "" {
		res.Output = res.Label
	}
	events.App.Result(res.Label, res.Output)
	return res, nil
}

func loadMenu(path string, stdin io.Reader) (*menu.Menu, bool, error) {
	if path == "" || path == stdinName {
		m, err := menufile.Parse(stdin, "stdin")
		return m, true, err
	}
	m, err := menufile.ParseFile(path)
	return m, false, err
}

// screenSize prefers configured dimensions, then the terminal size.
func screenSize(cfg Config) (int, int) {
	width, height := fallbackWidth, fallbackHeight
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			width, height = w, h
		}
	}
	if cfg.Width > 0 {
		width = cfg.Width
	}
	if cfg.Height > 0 {
		height = cfg.Height
	}
	return width, height
}
