package completion

import (
	"context"
	"sort"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/input"
	"github.com/NikitaCOEUR/promptline/internal/oracle"
)

// CommandSource lists the executables available to the shell
type CommandSource interface {
	Commands(ctx context.Context) ([]string, error)
}

// RecommendedCommands are surfaced above the rest of PATH
var RecommendedCommands = map[string]string{
	"git":     "Version control",
	"go":      "Go toolchain",
	"grep":    "Search text with patterns",
	"ls":      "List directory contents",
	"cat":     "Print file contents",
	"find":    "Search for files",
	"make":    "Run build targets",
	"docker":  "Manage containers",
	"kubectl": "Control Kubernetes clusters",
	"npm":     "Node package manager",
	"curl":    "Transfer data from URLs",
	"python3": "Python interpreter",
	"ssh":     "Remote login",
	"jq":      "Process JSON",
	"gh":      "GitHub CLI",
	"vim":     "Edit files",
}

// CommandCompleter completes command names from builtins, a curated list
// and PATH
type CommandCompleter struct {
	source CommandSource
	now    func() time.Time
}

// NewCommandCompleter creates a command completer. source may be nil, in
// which case only builtins and recommended commands are offered, as they are
// when the source fails.
func NewCommandCompleter(source CommandSource) *CommandCompleter {
	return &CommandCompleter{source: source, now: time.Now}
}

// Name implements Completer
func (c *CommandCompleter) Name() string { return "command" }

// IsRelevant is true on the command word of a shell-looking line
func (c *CommandCompleter) IsRelevant(state input.State) bool {
	if state.IsSlashCommand || state.IsEntityTrigger {
		return false
	}
	return state.Mode.IsShellLike() && state.InCommandPosition()
}

// GetCompletions implements Completer
func (c *CommandCompleter) GetCompletions(ctx context.Context, state input.State) ([]Completion, error) {
	prefix := state.Prefix
	now := c.now()

	var available map[string]bool
	var others []string
	if c.source != nil {
		// Without a PATH listing the builtins and every recommended
		// command are still offered
		if names, err := c.source.Commands(ctx); err == nil {
			available = make(map[string]bool, len(names))
			for _, name := range names {
				available[name] = true
			}
			others = names
		}
	}

	completions := []Completion{}
	seen := make(map[string]bool)
	add := func(name, description string, group Group) {
		if seen[name] || !hasPrefixFold(name, prefix) {
			return
		}
		seen[name] = true
		completions = append(completions, Completion{
			Value:       name,
			Description: description,
			Group:       group,
			Score:       Score(prefix, name, state.History, now),
			Source:      c.Name(),
		})
	}

	for _, name := range oracle.Builtins() {
		add(name, "shell builtin", GroupBuiltin)
	}
	for _, name := range sortedKeys(RecommendedCommands) {
		if available != nil && !available[name] {
			continue
		}
		add(name, RecommendedCommands[name], GroupRecommendedCommand)
	}
	for _, name := range others {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		add(name, "", GroupOtherCommand)
	}

	return completions, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
