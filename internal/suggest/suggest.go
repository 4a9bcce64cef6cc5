// Package suggest corrects mistyped command names against a list of common commands.
package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	minWordLength = 2
	maxWordLength = 20
)

// CommonCommands is the correction corpus, in tie-break order
var CommonCommands = []string{
	"git", "ls", "cd", "cat", "grep", "find", "echo", "pwd", "mkdir", "rm",
	"cp", "mv", "touch", "chmod", "chown", "ps", "kill", "top", "df", "du",
	"tar", "zip", "unzip", "curl", "wget", "ssh", "scp", "rsync", "make",
	"go", "npm", "npx", "node", "yarn", "pnpm", "python", "python3", "pip",
	"pip3", "cargo", "rustc", "docker", "kubectl", "helm", "terraform",
	"vim", "nvim", "nano", "less", "head", "tail", "sed", "awk", "sort",
	"uniq", "wc", "diff", "man", "which", "env", "export", "source", "brew",
	"apt", "sudo", "history", "clear", "exit", "code", "gh", "jq", "tree",
}

// Engine suggests corrections from a fixed corpus
type Engine struct {
	commands []string
	known    map[string]bool
}

// New creates an engine over commands
func New(commands []string) *Engine {
	e := &Engine{
		commands: make([]string, 0, len(commands)),
		known:    make(map[string]bool, len(commands)),
	}
	for _, c := range commands {
		c = strings.ToLower(c)
		e.commands = append(e.commands, c)
		e.known[c] = true
	}
	return e
}

var defaultEngine = New(CommonCommands)

// Suggest returns the closest common command to word, or "" when there is
// none close enough
func Suggest(word string) string {
	return defaultEngine.Suggest(word)
}

// Suggest returns the closest command within max(2, len(word)/2) edits.
// Words outside 2..20 characters and exact matches get no suggestion.
// Ties go to the first command in the corpus.
func (e *Engine) Suggest(word string) string {
	word = strings.ToLower(word)
	n := utf8.RuneCountInString(word)
	if n < minWordLength || n > maxWordLength || e.known[word] {
		return ""
	}

	limit := n / 2
	if limit < 2 {
		limit = 2
	}

	best := ""
	bestDistance := limit + 1
	for _, c := range e.commands {
		d := levenshtein.ComputeDistance(word, c)
		if d < bestDistance {
			best = c
			bestDistance = d
		}
	}
	return best
}
