// Package menufile reads tab-indented menu definitions.
//
// Each line holds up to four tab-separated fields after its indentation:
//
//	label [TAB output [TAB shortcut [TAB flags]]]
//
// One leading tab per level places an item in the submenu of the closest
// shallower line. A line with an empty label, including a blank line, is a
// separator and a line whose first non-tab character is '#' is a comment. Flags are a comma-separated
// list of "disabled", "marked", "radio" and "label-from-marked"; the last
// two apply to the submenu the line opens.
package menufile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/menukit/internal/menu"
)

// CommandChoose is the command code of every item read from a file.
const CommandChoose uint32 = 'c'<<24 | 'h'<<16 | 'o'<<8 | 's'

// FieldOutput is the message field carrying the text printed when the item
// is chosen.
const FieldOutput = "output"

var ErrEmpty = errors.New("menufile: no items")

// ParseError reports a malformed line.
type ParseError struct {
	Name string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
}

type node struct {
	line      int
	depth     int
	label     string
	output    string
	key       rune
	mods      menu.Modifiers
	separator bool
	disabled  bool
	marked    bool
	radio     bool
	fromMark  bool
	children  []*node
}

// ParseFile reads the menu definition at path.
func ParseFile(path string) (*menu.Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads a menu definition. name titles the root menu and prefixes
// parse errors.
func Parse(r io.Reader, name string) (*menu.Menu, error) {
	root := &node{depth: -1, label: name}
	stack := []*node{root}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		n, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, &ParseError{Name: name, Line: lineNo, Msg: err.Error()}
		}
		if n == nil {
			continue
		}
		for len(stack) > 1 && stack[len(stack)-1].depth >= n.depth {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		if n.depth > parent.depth+1 {
			return nil, &ParseError{Name: name, Line: lineNo, Msg: fmt.Sprintf("indented %d levels below %q", n.depth-parent.depth, parent.label)}
		}
		if parent.separator {
			return nil, &ParseError{Name: name, Line: lineNo, Msg: "separator cannot have a submenu"}
		}
		parent.children = append(parent.children, n)
		stack = append(stack, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(root.children) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	return build(root), nil
}

// parseLine returns nil for comments.
func parseLine(raw string, lineNo int) (*node, error) {
	depth := 0
	for depth < len(raw) && raw[depth] == '\t' {
		depth++
	}
	rest := raw[depth:]
	if strings.HasPrefix(strings.TrimLeft(rest, " "), "#") {
		return nil, nil
	}
	fields := strings.Split(rest, "\t")
	if len(fields) > 4 {
		return nil, fmt.Errorf("expected at most 4 fields, got %d", len(fields))
	}
	n := &node{line: lineNo, depth: depth, label: strings.TrimSpace(fields[0])}
	if n.label == "" {
		if len(fields) > 1 && strings.TrimSpace(strings.Join(fields[1:], "")) != "" {
			return nil, errors.New("separator lines take no fields")
		}
		n.separator = true
		return n, nil
	}
	n.output = n.label
	if len(fields) > 1 && fields[1] != "" {
		n.output = fields[1]
	}
	if len(fields) > 2 && strings.TrimSpace(fields[2]) != "" {
		key, mods, err := ParseShortcut(fields[2])
		if err != nil {
			return nil, err
		}
		n.key, n.mods = key, mods
	}
	if len(fields) > 3 {
		for _, flag := range strings.Split(fields[3], ",") {
			switch strings.TrimSpace(strings.ToLower(flag)) {
			case "":
			case "disabled":
				n.disabled = true
			case "marked":
				n.marked = true
			case "radio":
				n.radio = true
			case "label-from-marked":
				n.fromMark = true
			default:
				return nil, fmt.Errorf("unknown flag %q", flag)
			}
		}
	}
	return n, nil
}

// ParseShortcut reads a key such as "S", "shift+S" or "ctrl++".
func ParseShortcut(s string) (rune, menu.Modifiers, error) {
	s = strings.TrimSpace(s)
	keyPart, modPart := s, ""
	switch {
	case s == "+":
	case strings.HasSuffix(s, "++"):
		keyPart, modPart = "+", s[:len(s)-2]
	default:
		if i := strings.LastIndex(s, "+"); i >= 0 {
			keyPart, modPart = s[i+1:], s[:i]
		}
	}
	if utf8.RuneCountInString(keyPart) != 1 {
		return 0, 0, fmt.Errorf("shortcut %q: key must be a single character", s)
	}
	key, _ := utf8.DecodeRuneInString(keyPart)
	var mods menu.Modifiers
	if modPart == "" {
		return key, mods, nil
	}
	for _, p := range strings.Split(modPart, "+") {
		switch strings.ToLower(p) {
		case "shift":
			mods |= menu.ShiftKey
		case "ctrl", "control":
			mods |= menu.ControlKey
		case "alt", "opt", "option":
			mods |= menu.OptionKey
		case "cmd", "command":
			mods |= menu.CommandKey
		case "menu":
			mods |= menu.MenuKey
		default:
			return 0, 0, fmt.Errorf("shortcut %q: unknown modifier %q", s, p)
		}
	}
	return key, mods, nil
}

func build(root *node) *menu.Menu {
	m := menu.New(root.label, menu.LayoutColumn)
	fill(m, root)
	return m
}

func fill(m *menu.Menu, parent *node) {
	m.SetRadioMode(parent.radio)
	for _, n := range parent.children {
		switch {
		case n.separator:
			m.AddSeparator()
		case len(n.children) > 0:
			sub := menu.New(n.label, menu.LayoutColumn)
			fill(sub, n)
			m.AddSubmenu(sub)
			if n.disabled {
				sub.SetEnabled(false)
			}
			if n.fromMark {
				sub.SetLabelFromMarked(true)
			}
		default:
			it := menu.NewItem(n.label, menu.NewMessage(CommandChoose).Set(FieldOutput, n.output))
			if n.key != 0 {
				it.SetShortcut(n.key, n.mods)
			}
			m.AddItem(it)
			if n.disabled {
				it.SetEnabled(false)
			}
			if n.marked {
				it.SetMarked(true)
			}
		}
	}
}

// Output returns the printed text carried by msg.
func Output(msg *menu.Message) string {
	return msg.String(FieldOutput)
}
