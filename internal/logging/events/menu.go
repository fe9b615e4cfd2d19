package events

import "github.com/atomicstack/menukit/internal/logging"

type MenuTracer struct{}

type PopupTracer struct{}

var (
	Menu  = MenuTracer{}
	Popup = PopupTracer{}
)

func (MenuTracer) Layout(menu string, width, height int) {
	logging.Trace("menu.layout", map[string]interface{}{"menu": menu, "width": width, "height": height})
}

func (MenuTracer) Script(menu, property, verb string, err error) {
	payload := map[string]interface{}{"menu": menu, "property": property, "verb": verb}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("menu.script", payload)
}

func (PopupTracer) Go(menu string, async, openAnyway bool) {
	logging.Trace("popup.go", map[string]interface{}{"menu": menu, "async": async, "open_anyway": openAnyway})
}

func (PopupTracer) Busy(menu string) {
	logging.Trace("popup.busy", map[string]interface{}{"menu": menu})
}

func (PopupTracer) Done(menu string, label string) {
	logging.Trace("popup.done", map[string]interface{}{"menu": menu, "label": label})
}
