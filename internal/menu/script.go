package menu

import (
	"errors"
	"fmt"

	"github.com/atomicstack/menukit/internal/logging/events"
)

var (
	ErrBadScriptSyntax = errors.New("menu: specifier not understood")
	ErrBadIndex        = errors.New("menu: no item at specifier")
	ErrBadValue        = errors.New("menu: bad value")
	ErrNotAllowed      = errors.New("menu: not allowed")
	ErrNotSupported    = errors.New("menu: not supported")
)

// Verb is the action of a scripting request.
type Verb int

const (
	VerbGet Verb = iota
	VerbSet
	VerbCount
	VerbCreate
	VerbDelete
	VerbExecute
)

func (v Verb) String() string {
	switch v {
	case VerbGet:
		return "get"
	case VerbSet:
		return "set"
	case VerbCount:
		return "count"
	case VerbCreate:
		return "create"
	case VerbDelete:
		return "delete"
	case VerbExecute:
		return "execute"
	}
	return "unknown"
}

// SpecifierKind selects how a specifier names its object.
type SpecifierKind int

const (
	SpecDirect SpecifierKind = iota
	SpecIndex
	SpecReverseIndex
	SpecName
)

// Specifier names a property, optionally qualified by index or name.
type Specifier struct {
	Property string
	Kind     SpecifierKind
	Index    int
	Name     string
}

// Request is a scripting command. Specifiers run from the outermost object
// to the property acted on; the menu receiving the request resolves the
// first one and forwards the rest.
type Request struct {
	Verb       Verb
	Specifiers []Specifier
	Data       interface{}
	What       uint32
	Target     Target
	When       int64
}

// Reply carries the result of a request.
type Reply struct {
	Result interface{}
	Err    error
}

// PropertyInfo describes one entry of the scripting suite.
type PropertyInfo struct {
	Name        string
	Verbs       []Verb
	Specifiers  []SpecifierKind
	Description string
}

var itemSpecifiers = []SpecifierKind{SpecName, SpecIndex, SpecReverseIndex}

var propertyList = []PropertyInfo{
	{"Enabled", []Verb{VerbGet, VerbSet}, []SpecifierKind{SpecDirect}, "Whether the menu or menu item is enabled."},
	{"Label", []Verb{VerbGet, VerbSet}, []SpecifierKind{SpecDirect}, "The label of the menu item or the menu's superitem."},
	{"Mark", []Verb{VerbGet, VerbSet}, []SpecifierKind{SpecDirect}, "Whether the menu item or the menu's superitem is marked."},
	{"Menu", []Verb{VerbCreate, VerbDelete}, itemSpecifiers, "Adds or removes a submenu; other requests are forwarded to it."},
	{"MenuItem", []Verb{VerbCount}, []SpecifierKind{SpecDirect}, "Counts the items of the menu."},
	{"MenuItem", []Verb{VerbCreate, VerbDelete, VerbExecute}, itemSpecifiers, "Adds, removes or invokes a menu item; other requests are forwarded to it."},
}

// SupportedSuites lists the scripting properties a menu answers.
func (m *Menu) SupportedSuites() []PropertyInfo {
	out := make([]PropertyInfo, len(propertyList))
	copy(out, propertyList)
	return out
}

// Script executes a scripting request against the menu hierarchy.
func (m *Menu) Script(req Request) Reply {
	if len(req.Specifiers) == 0 {
		return Reply{Err: ErrBadScriptSyntax}
	}
	reply := m.script(req, req.Specifiers[0], req.Specifiers[1:])
	last := req.Specifiers[len(req.Specifiers)-1]
	events.Menu.Script(m.name, last.Property, req.Verb.String(), reply.Err)
	return reply
}

func (m *Menu) script(req Request, spec Specifier, rest []Specifier) Reply {
	switch spec.Property {
	case "Enabled":
		if spec.Kind != SpecDirect || len(rest) > 0 {
			return Reply{Err: ErrBadScriptSyntax}
		}
		switch req.Verb {
		case VerbGet:
			return Reply{Result: m.Enabled()}
		case VerbSet:
			on, ok := req.Data.(bool)
			if !ok {
				return Reply{Err: ErrBadValue}
			}
			m.SetEnabled(on)
			return Reply{}
		}
	case "Label", "Mark":
		if m.superitem == nil || m.Supermenu() == nil {
			return Reply{Err: ErrBadScriptSyntax}
		}
		return itemScript(req, m.superitem, spec, rest)
	case "Menu":
		if spec.Kind == SpecDirect {
			return Reply{Err: ErrBadScriptSyntax}
		}
		if len(rest) > 0 {
			item, _, err := m.resolveItem(spec)
			if err != nil {
				return Reply{Err: err}
			}
			if item.submenu == nil {
				return Reply{Err: ErrBadScriptSyntax}
			}
			return item.submenu.script(req, rest[0], rest[1:])
		}
		switch req.Verb {
		case VerbCreate:
			label, ok := req.Data.(string)
			if !ok {
				return Reply{Err: ErrBadValue}
			}
			item := NewSubmenuItem(New(label, LayoutColumn))
			if req.What != 0 {
				item.message = NewMessage(req.What)
			}
			return Reply{Err: m.insertAt(spec, item)}
		case VerbDelete:
			item, index, err := m.resolveItem(spec)
			if err != nil {
				return Reply{Err: err}
			}
			if item.submenu == nil {
				return Reply{Err: ErrBadValue}
			}
			m.RemoveItems(index, 1)
			return Reply{}
		}
	case "MenuItem":
		if spec.Kind == SpecDirect {
			if req.Verb == VerbCount && len(rest) == 0 {
				return Reply{Result: len(m.items)}
			}
			return Reply{Err: ErrBadScriptSyntax}
		}
		if len(rest) > 0 {
			item, _, err := m.resolveItem(spec)
			if err != nil {
				return Reply{Err: err}
			}
			return itemScript(req, item, rest[0], rest[1:])
		}
		switch req.Verb {
		case VerbCreate:
			label, ok := req.Data.(string)
			if !ok {
				return Reply{Err: ErrBadValue}
			}
			var msg *Message
			if req.What != 0 {
				msg = NewMessage(req.What)
			}
			item := NewItem(label, msg)
			item.target = req.Target
			return Reply{Err: m.insertAt(spec, item)}
		case VerbDelete:
			_, index, err := m.resolveItem(spec)
			if err != nil {
				return Reply{Err: err}
			}
			m.RemoveItems(index, 1)
			return Reply{}
		case VerbExecute:
			item, index, err := m.resolveItem(spec)
			if err != nil {
				return Reply{Err: err}
			}
			if !item.Enabled() {
				return Reply{Err: ErrNotAllowed}
			}
			return Reply{Err: item.Invoke(InvokeInfo{When: req.When, Source: m, Index: []int{index}})}
		}
	}
	return Reply{Err: ErrBadScriptSyntax}
}

func itemScript(req Request, item *Item, spec Specifier, rest []Specifier) Reply {
	if spec.Kind != SpecDirect || len(rest) > 0 {
		return Reply{Err: ErrBadScriptSyntax}
	}
	switch spec.Property {
	case "Enabled":
		switch req.Verb {
		case VerbGet:
			return Reply{Result: item.Enabled()}
		case VerbSet:
			on, ok := req.Data.(bool)
			if !ok {
				return Reply{Err: ErrBadValue}
			}
			item.SetEnabled(on)
			return Reply{}
		}
	case "Label":
		switch req.Verb {
		case VerbGet:
			return Reply{Result: item.Label()}
		case VerbSet:
			label, ok := req.Data.(string)
			if !ok {
				return Reply{Err: ErrBadValue}
			}
			item.SetLabel(label)
			return Reply{}
		}
	case "Mark":
		switch req.Verb {
		case VerbGet:
			return Reply{Result: item.Marked()}
		case VerbSet:
			on, ok := req.Data.(bool)
			if !ok {
				return Reply{Err: ErrBadValue}
			}
			item.SetMarked(on)
			return Reply{}
		}
	}
	return Reply{Err: ErrBadScriptSyntax}
}

// resolveItem returns the item named by spec and its index.
func (m *Menu) resolveItem(spec Specifier) (*Item, int, error) {
	var item *Item
	index := -1
	switch spec.Kind {
	case SpecIndex:
		index = spec.Index
		item = m.ItemAt(index)
	case SpecReverseIndex:
		index = len(m.items) - spec.Index
		item = m.ItemAt(index)
	case SpecName:
		for i, it := range m.items {
			if !it.separator && it.label == spec.Name {
				item, index = it, i
				break
			}
		}
	}
	if item == nil {
		return nil, -1, fmt.Errorf("%s %v: %w", spec.Property, specLabel(spec), ErrBadIndex)
	}
	return item, index, nil
}

func (m *Menu) insertAt(spec Specifier, item *Item) error {
	var index int
	switch spec.Kind {
	case SpecIndex:
		index = spec.Index
	case SpecReverseIndex:
		index = len(m.items) - spec.Index
	default:
		return ErrNotSupported
	}
	if !m.AddItemAt(item, index) {
		return ErrBadIndex
	}
	return nil
}

func specLabel(spec Specifier) interface{} {
	if spec.Kind == SpecName {
		return spec.Name
	}
	return spec.Index
}
