// Package completion provides pluggable completers, their scoring, and the
// manager that runs them concurrently and merges their results.
package completion

import (
	"context"

	"github.com/NikitaCOEUR/promptline/internal/input"
)

// Group is the display tier of a completion. Lower values are shown first.
type Group int

const (
	// GroupTopSuggestion holds whole-line suggestions from history
	GroupTopSuggestion Group = iota
	// GroupInternalCommand holds local slash commands
	GroupInternalCommand
	// GroupBuiltin holds shell builtins
	GroupBuiltin
	// GroupRecommendedCommand holds curated, commonly used commands
	GroupRecommendedCommand
	// GroupOtherCommand holds every other executable on PATH
	GroupOtherCommand
	// GroupFile holds files and directories
	GroupFile
	// GroupGitRef holds branches and tags
	GroupGitRef
	// GroupEntity holds @-references
	GroupEntity
	// GroupOther holds anything else
	GroupOther
)

// String returns the group name
func (g Group) String() string {
	switch g {
	case GroupTopSuggestion:
		return "top"
	case GroupInternalCommand:
		return "internal"
	case GroupBuiltin:
		return "builtin"
	case GroupRecommendedCommand:
		return "recommended"
	case GroupOtherCommand:
		return "command"
	case GroupFile:
		return "file"
	case GroupGitRef:
		return "git"
	case GroupEntity:
		return "entity"
	default:
		return "other"
	}
}

// Completion is a single completion candidate
type Completion struct {
	Value       string // The text inserted on accept
	Display     string // Optional label shown instead of Value
	Description string // Optional help text
	Group       Group
	Score       int // 0..100
	Source      string
	Icon        string
	// ReplaceInput replaces the whole line instead of the current token
	ReplaceInput bool
}

// Label returns the text shown in the menu
func (c Completion) Label() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Value
}

// Completer is a source of completions
type Completer interface {
	// Name identifies the completer in the manager's registry
	Name() string

	// IsRelevant reports whether the completer applies to the given state.
	// It must be cheap and must not block.
	IsRelevant(state input.State) bool

	// GetCompletions returns scored completions. Implementations should
	// return early when ctx is done.
	GetCompletions(ctx context.Context, state input.State) ([]Completion, error)
}
