// Package mode decides what a prompt line means: a shell command, a question
// for the agent, a local slash command, or something the user must confirm.
package mode

// Mode is the classification of one input line
type Mode int

const (
	// NaturalLanguage routes the line to the agent
	NaturalLanguage Mode = iota
	// Shell routes the line to the shell
	Shell
	// Slash routes the line to a local command
	Slash
	// Ambiguous requires the user to pick shell or agent
	Ambiguous
	// Invalid is a command-looking line that resolves to nothing
	Invalid
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case NaturalLanguage:
		return "natural-language"
	case Shell:
		return "shell"
	case Slash:
		return "slash"
	case Ambiguous:
		return "ambiguous"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// IsShellLike reports whether the line is (or may become) a shell command
func (m Mode) IsShellLike() bool {
	return m == Shell || m == Ambiguous || m == Invalid
}

// Live collapses modes that only the authoritative pass may return to the
// safe default used for live coloring
func (m Mode) Live() Mode {
	if m == Ambiguous || m == Invalid {
		return NaturalLanguage
	}
	return m
}
