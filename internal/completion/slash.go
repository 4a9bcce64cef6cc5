package completion

import (
	"context"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/commands"
	"github.com/NikitaCOEUR/promptline/internal/input"
)

// CommandLister lists local slash commands
type CommandLister interface {
	List() []commands.Command
}

// SlashCompleter completes local slash commands and their aliases
type SlashCompleter struct {
	commands CommandLister
	now      func() time.Time
}

// NewSlashCompleter creates a slash command completer
func NewSlashCompleter(commands CommandLister) *SlashCompleter {
	return &SlashCompleter{commands: commands, now: time.Now}
}

// Name implements Completer
func (s *SlashCompleter) Name() string { return "slash" }

// IsRelevant is true while the cursor is on the leading /command word
func (s *SlashCompleter) IsRelevant(state input.State) bool {
	return state.IsSlashCommand && state.TokenIndex == 0 && state.CurrentToken != nil &&
		state.CurrentToken.Type != input.TokenWhitespace
}

// GetCompletions implements Completer
func (s *SlashCompleter) GetCompletions(_ context.Context, state input.State) ([]Completion, error) {
	prefix := state.Prefix
	now := s.now()
	completions := []Completion{}

	for _, c := range s.commands.List() {
		value := "/" + c.Name
		if hasPrefixFold(value, prefix) {
			completions = append(completions, Completion{
				Value:       value,
				Description: c.Description,
				Group:       GroupInternalCommand,
				Score:       Score(prefix, value, state.History, now),
				Source:      s.Name(),
			})
			continue
		}
		// Offer the command under its canonical name when only an alias matches
		for _, alias := range c.Aliases {
			if hasPrefixFold("/"+alias, prefix) {
				completions = append(completions, Completion{
					Value:       value,
					Display:     "/" + alias + " → " + value,
					Description: c.Description,
					Group:       GroupInternalCommand,
					Score:       Score(prefix, "/"+alias, state.History, now),
					Source:      s.Name(),
				})
				break
			}
		}
	}

	return completions, nil
}
