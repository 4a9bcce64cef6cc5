package completion

import (
	"context"
	"strings"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/input"
)

// maxHistorySuggestions caps whole-line suggestions per request
const maxHistorySuggestions = 3

// HistoryCompleter suggests previously submitted lines that extend what has
// been typed so far
type HistoryCompleter struct {
	now func() time.Time
}

// NewHistoryCompleter creates a history completer
func NewHistoryCompleter() *HistoryCompleter {
	return &HistoryCompleter{now: time.Now}
}

// Name implements Completer
func (h *HistoryCompleter) Name() string { return "history" }

// IsRelevant is true when typing at the end of a non-empty line with history available
func (h *HistoryCompleter) IsRelevant(state input.State) bool {
	return len(state.History) > 0 &&
		strings.TrimSpace(state.RawText) != "" &&
		state.CursorPos == len(state.RawText) &&
		!state.IsEntityTrigger
}

// GetCompletions implements Completer
func (h *HistoryCompleter) GetCompletions(_ context.Context, state input.State) ([]Completion, error) {
	now := h.now()
	completions := []Completion{}
	seen := make(map[string]bool)

	// Newest first
	for i := len(state.History) - 1; i >= 0 && len(completions) < maxHistorySuggestions; i-- {
		line := state.History[i].Command
		if seen[line] || line == state.RawText || !strings.HasPrefix(line, state.RawText) {
			continue
		}
		seen[line] = true
		completions = append(completions, Completion{
			Value:        line,
			Description:  "from history",
			Group:        GroupTopSuggestion,
			Score:        Score(state.RawText, line, state.History, now),
			Source:       h.Name(),
			Icon:         "↺",
			ReplaceInput: true,
		})
	}

	return completions, nil
}
