package menu

// Layout selects how items are arranged.
type Layout int

const (
	LayoutColumn Layout = iota
	LayoutRow
	LayoutMatrix
)

func (l Layout) String() string {
	switch l {
	case LayoutColumn:
		return "column"
	case LayoutRow:
		return "row"
	case LayoutMatrix:
		return "matrix"
	}
	return "unknown"
}

// State is the tracking state of a menu.
type State int

const (
	StateIdle State = iota
	StateShowing
	StateItemSelected
	StateSubmenuOpen
	StateSticky
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShowing:
		return "showing"
	case StateItemSelected:
		return "item-selected"
	case StateSubmenuOpen:
		return "submenu-open"
	case StateSticky:
		return "sticky"
	case StateClosing:
		return "closing"
	}
	return "unknown"
}

// Margins is the padding around each item's content, in cells.
type Margins struct {
	Left, Top, Right, Bottom int
}

func defaultMargins(l Layout) Margins {
	switch l {
	case LayoutColumn:
		return Margins{Left: 2, Right: 1}
	case LayoutRow:
		return Margins{Left: 1, Right: 1}
	}
	return Margins{}
}
