package events

import "github.com/atomicstack/menukit/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Dropped(kind int) {
	logging.Trace("ui.event.dropped", map[string]interface{}{"kind": kind})
}

func (UITracer) Done() {
	logging.Trace("ui.done", nil)
}
