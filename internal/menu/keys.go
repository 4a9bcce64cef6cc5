package menu

// Key is a key press relevant to the menu
type Key int

const (
	// KeyOther is any key the menu does not handle
	KeyOther Key = iota
	KeyTab
	KeyShiftTab
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
)

// String returns the key name
func (k Key) String() string {
	switch k {
	case KeyTab:
		return "tab"
	case KeyShiftTab:
		return "shift+tab"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	default:
		return "other"
	}
}

// KeyAction is what a key does to the menu
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionNext
	ActionPrevious
	ActionAccept
	ActionDismiss
)

// String returns the action name
func (a KeyAction) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	case ActionAccept:
		return "accept"
	case ActionDismiss:
		return "dismiss"
	default:
		return "none"
	}
}

// ActionForKey maps a key to its menu action
func ActionForKey(k Key) KeyAction {
	switch k {
	case KeyTab, KeyDown:
		return ActionNext
	case KeyShiftTab, KeyUp:
		return ActionPrevious
	case KeyEnter:
		return ActionAccept
	case KeyEscape:
		return ActionDismiss
	default:
		return ActionNone
	}
}

// ParseKey decodes one raw terminal key sequence
func ParseKey(b []byte) Key {
	switch string(b) {
	case "\t":
		return KeyTab
	case "\x1b[Z":
		return KeyShiftTab
	case "\x1b[A", "\x1bOA":
		return KeyUp
	case "\x1b[B", "\x1bOB":
		return KeyDown
	case "\r", "\n", "\r\n":
		return KeyEnter
	case "\x1b":
		return KeyEscape
	default:
		return KeyOther
	}
}
