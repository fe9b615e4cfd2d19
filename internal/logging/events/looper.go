package events

import "github.com/atomicstack/menukit/internal/logging"

type LooperTracer struct{}

var Looper = LooperTracer{}

func (LooperTracer) Queue(looper string, what uint32) {
	logging.Trace("looper.queue", map[string]interface{}{"looper": looper, "what": what})
}

func (LooperTracer) Drop(looper string, what uint32, reason string) {
	logging.Trace("looper.drop", map[string]interface{}{"looper": looper, "what": what, "reason": reason})
}

func (LooperTracer) Deliver(looper string, what uint32, err error) {
	payload := map[string]interface{}{"looper": looper, "what": what}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("looper.deliver", payload)
}
