// Package metrics exposes tracking session counters to Prometheus.
package metrics

import (
	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/track"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "menukit"

// Recorder counts session lifecycle events. It implements track.Observer.
type Recorder struct {
	Registry *prometheus.Registry

	started  *Counter
	ended    *Counter
	opened   *Counter
	failures *Counter
}

// NewRecorder registers the session counters on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		Registry: reg,
		started:  NewCounter(reg, "sessions_started_total", "Tracking sessions started.", "menu", "mode"),
		ended:    NewCounter(reg, "sessions_ended_total", "Tracking sessions ended by outcome.", "menu", "outcome", "reason"),
		opened:   NewCounter(reg, "submenus_opened_total", "Submenus shown during tracking.", "menu"),
		failures: NewCounter(reg, "submenu_failures_total", "Submenus whose window could not be created.", "menu"),
	}
}

func (r *Recorder) SessionStarted(root *menu.Menu, sticky bool) {
	mode := "drag"
	if sticky {
		mode = "sticky"
	}
	r.started.Increment(root.Name(), mode)
}

func (r *Recorder) SubmenuOpened(m *menu.Menu) {
	r.opened.Increment(m.Name())
}

func (r *Recorder) SubmenuFailed(m *menu.Menu, _ error) {
	r.failures.Increment(m.Name())
}

func (r *Recorder) SessionEnded(root *menu.Menu, res track.Result) {
	outcome := "canceled"
	switch {
	case res.Err != nil:
		outcome = "error"
	case res.Invoked:
		outcome = "invoked"
	case res.Item != nil:
		outcome = "chosen"
	}
	r.ended.Increment(root.Name(), outcome, string(res.Reason))
}

var _ track.Observer = (*Recorder)(nil)
