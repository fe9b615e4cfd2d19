package events

import "github.com/atomicstack/menukit/internal/logging"

type TrackTracer struct{}

type CloseReason string

const (
	CloseInvoke  CloseReason = "invoke"
	CloseEscape  CloseReason = "escape"
	CloseOutside CloseReason = "outside"
	CloseQuit    CloseReason = "quit"
	CloseHook    CloseReason = "hook"
	CloseContext CloseReason = "context"
	CloseInput   CloseReason = "input-closed"
)

var Track = TrackTracer{}

func (TrackTracer) Start(menu string, sticky bool, x, y int) {
	logging.Trace("track.start", map[string]interface{}{"menu": menu, "sticky": sticky, "x": x, "y": y})
}

func (TrackTracer) Select(menu string, index int, label string) {
	logging.Trace("track.select", map[string]interface{}{"menu": menu, "index": index, "label": label})
}

func (TrackTracer) SubmenuOpen(menu string, depth int) {
	logging.Trace("track.submenu.open", map[string]interface{}{"menu": menu, "depth": depth})
}

func (TrackTracer) SubmenuClose(menu string, depth int) {
	logging.Trace("track.submenu.close", map[string]interface{}{"menu": menu, "depth": depth})
}

func (TrackTracer) SubmenuFailed(menu string, err error) {
	logging.Trace("track.submenu.failed", map[string]interface{}{"menu": menu, "error": err.Error()})
}

func (TrackTracer) Sticky(menu string, sticky bool) {
	logging.Trace("track.sticky", map[string]interface{}{"menu": menu, "sticky": sticky})
}

func (TrackTracer) Scroll(menu string, offset int) {
	logging.Trace("track.scroll", map[string]interface{}{"menu": menu, "offset": offset})
}

func (TrackTracer) Close(menu string, reason CloseReason) {
	logging.Trace("track.close", map[string]interface{}{"menu": menu, "reason": string(reason)})
}

func (TrackTracer) Invoke(label string, index int) {
	logging.Trace("track.invoke", map[string]interface{}{"label": label, "index": index})
}
