package ui

import (
	"reflect"

	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menuinfo"
	"github.com/atomicstack/menukit/internal/track"
	tea "github.com/charmbracelet/bubbletea"
)

// EventBuffer is the capacity of the channel feeding the tracking session.
const EventBuffer = 256

const (
	secondaryButton uint32 = 1 << 1
	tertiaryButton  uint32 = 1 << 2
)

type msgHandler func(tea.Msg) tea.Cmd

// changedMsg reports that the compositor has something new to draw.
type changedMsg struct{}

// DoneMsg ends the program once the tracking session has finished.
type DoneMsg struct{}

// Model is the Bubble Tea model that hosts menu windows. It forwards terminal
// input to a tracking session and draws whatever the session paints.
type Model struct {
	comp       *Compositor
	keys       keyMap
	events     chan track.Event
	done       <-chan struct{}
	background []string

	width      int
	height     int
	fixedSize  bool
	buttons    uint32
	dropped    int
	finished   bool
	altCommand func() bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds a model drawing comp. done is closed when the session
// ends; a nil done leaves quitting to DoneMsg.
func NewModel(comp *Compositor, done <-chan struct{}) *Model {
	screen := comp.ScreenFrame()
	m := &Model{
		comp:       comp,
		keys:       defaultKeyMap(),
		events:     make(chan track.Event, EventBuffer),
		done:       done,
		width:      screen.Dx(),
		height:     screen.Dy(),
		altCommand: menuinfo.AltAsCommand,
	}
	m.registerHandlers()
	return m
}

// Events is the input channel for the tracking session.
func (m *Model) Events() <-chan track.Event { return m.events }

// SetBackground sets the lines drawn under the menu windows.
func (m *Model) SetBackground(lines []string) {
	m.background = append([]string(nil), lines...)
}

// FixSize keeps the screen at its current size regardless of terminal
// resizes.
func (m *Model) FixSize(width, height int) {
	m.width, m.height = width, height
	m.fixedSize = true
	m.comp.Resize(width, height)
}

// Dropped counts events discarded because the session fell behind.
func (m *Model) Dropped() int { return m.dropped }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(m.comp)}
	if m.done != nil {
		cmds = append(cmds, waitForDone(m.done))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(changedMsg{}):        m.handleChangedMsg,
		reflect.TypeOf(DoneMsg{}):           m.handleDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil {
		return nil
	}
	return m.handlers[reflect.TypeOf(msg)]
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	ev, ok := m.keys.translate(msg.(tea.KeyMsg), m.altCommand())
	if ok {
		m.forward(ev)
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	if m.fixedSize {
		return nil
	}
	m.width, m.height = size.Width, size.Height
	m.comp.Resize(size.Width, size.Height)
	events.UI.Resize(size.Width, size.Height)
	return nil
}

func (m *Model) handleChangedMsg(tea.Msg) tea.Cmd {
	if m.finished {
		return nil
	}
	return waitForChange(m.comp)
}

func (m *Model) handleDoneMsg(tea.Msg) tea.Cmd {
	if m.finished {
		return nil
	}
	m.finished = true
	events.UI.Done()
	return tea.Quit
}

// forward hands ev to the session without blocking the program. Events are
// dropped rather than reordered when the channel is full.
func (m *Model) forward(ev track.Event) {
	if m.finished {
		return
	}
	select {
	case m.events <- ev:
	default:
		m.dropped++
		events.UI.Dropped(int(ev.Kind))
	}
}

func waitForChange(c *Compositor) tea.Cmd {
	return func() tea.Msg {
		<-c.Changes()
		return changedMsg{}
	}
}

func waitForDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return DoneMsg{}
	}
}
