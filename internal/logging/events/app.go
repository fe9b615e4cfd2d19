package events

import "github.com/atomicstack/menukit/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) MenuLoaded(source string, items int) {
	logging.Trace("app.menu.loaded", map[string]interface{}{"source": source, "items": items})
}

func (AppTracer) Result(label, output string) {
	logging.Trace("app.result", map[string]interface{}{"label": label, "output": output})
}

func (AppTracer) MetricsListen(addr string) {
	logging.Trace("app.metrics.listen", map[string]interface{}{"addr": addr})
}
