package completion

import (
	"context"
	"strings"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/input"
)

// gitRefSubcommands take a branch, tag or commit-ish as argument
var gitRefSubcommands = map[string]bool{
	"checkout": true, "switch": true, "merge": true, "rebase": true,
	"branch": true, "diff": true, "log": true, "reset": true,
	"cherry-pick": true, "show": true, "tag": true, "push": true, "pull": true,
}

// GitRefCompleter completes branch and tag names for git subcommands
type GitRefCompleter struct {
	run CommandRunner
	now func() time.Time
}

// NewGitRefCompleter creates a git ref completer. A nil runner executes git directly.
func NewGitRefCompleter(run CommandRunner) *GitRefCompleter {
	if run == nil {
		run = execWithTimeout
	}
	return &GitRefCompleter{run: run, now: time.Now}
}

// Name implements Completer
func (g *GitRefCompleter) Name() string { return "gitref" }

// IsRelevant is true on the argument of a ref-taking git subcommand
func (g *GitRefCompleter) IsRelevant(state input.State) bool {
	if !state.Mode.IsShellLike() || !state.InArgumentPosition() {
		return false
	}
	if state.CurrentToken.Type == input.TokenOption {
		return false
	}
	words := segmentWords(state)
	return len(words) >= 2 && words[0] == "git" && gitRefSubcommands[words[1]]
}

// GetCompletions implements Completer
func (g *GitRefCompleter) GetCompletions(ctx context.Context, state input.State) ([]Completion, error) {
	output, err := g.run(ctx, state.Cwd, "git", "for-each-ref", "--format=%(refname:short)",
		"refs/heads", "refs/tags", "refs/remotes")
	if err != nil {
		return nil, err
	}

	now := g.now()
	completions := []Completion{}
	for _, ref := range parseLines(output) {
		if !hasPrefixFold(ref.Value, state.Prefix) || strings.HasSuffix(ref.Value, "/HEAD") {
			continue
		}
		ref.Group = GroupGitRef
		ref.Score = Score(state.Prefix, ref.Value, state.History, now)
		ref.Source = g.Name()
		completions = append(completions, ref)
	}
	return completions, nil
}

// segmentWords returns the non-whitespace words of the command segment
// holding the cursor, up to and excluding the current token
func segmentWords(state input.State) []string {
	var words []string
	for i := 0; i < state.TokenIndex && i < len(state.Tokens); i++ {
		tok := state.Tokens[i]
		switch tok.Type {
		case input.TokenOperator:
			words = words[:0]
		case input.TokenWhitespace:
		default:
			words = append(words, tok.Value)
		}
	}
	return words
}
