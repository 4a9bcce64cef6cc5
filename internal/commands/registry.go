// Package commands holds the local slash commands handled by the client itself.
package commands

import (
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/NikitaCOEUR/promptline/internal/suggest"
)

// Command is a local slash command
type Command struct {
	Name        string   `koanf:"name" json:"name"`
	Description string   `koanf:"description" json:"description"`
	Aliases     []string `koanf:"aliases" json:"aliases,omitempty"`
}

// Defaults are the commands every registry starts with
var Defaults = []Command{
	{Name: "help", Description: "Show available commands", Aliases: []string{"h", "?"}},
	{Name: "clear", Description: "Clear the screen", Aliases: []string{"cls"}},
	{Name: "exit", Description: "Leave the session", Aliases: []string{"q"}},
	{Name: "quit", Description: "Leave the session"},
	{Name: "history", Description: "Show recent input"},
	{Name: "mode", Description: "Show or force the input mode"},
	{Name: "model", Description: "Switch the agent model"},
	{Name: "config", Description: "Show the active configuration"},
	{Name: "compact", Description: "Summarize the conversation so far"},
	{Name: "reset", Description: "Start a new conversation", Aliases: []string{"new"}},
}

// Registry maps names and aliases to commands. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	aliases  map[string]string
}

// NewRegistry creates a registry holding the defaults plus extra.
// Extra commands replace defaults of the same name.
func NewRegistry(extra ...Command) *Registry {
	r := &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
	for _, c := range Defaults {
		r.Register(c)
	}
	for _, c := range extra {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a command. Names are case-insensitive and
// stored without a leading slash.
func (r *Registry) Register(c Command) {
	c.Name = normalize(c.Name)
	if c.Name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.commands[c.Name]; ok {
		for _, a := range old.Aliases {
			delete(r.aliases, normalize(a))
		}
	}
	r.commands[c.Name] = c
	for _, a := range c.Aliases {
		a = normalize(a)
		if _, taken := r.commands[a]; a == "" || taken {
			continue
		}
		r.aliases[a] = c.Name
	}
}

// Lookup resolves a name or alias
func (r *Registry) Lookup(name string) (Command, bool) {
	name = normalize(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.commands[name]; ok {
		return c, true
	}
	if target, ok := r.aliases[name]; ok {
		return r.commands[target], true
	}
	return Command{}, false
}

// Has reports whether name or alias is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// List returns all commands sorted by name
func (r *Registry) List() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Suggest returns up to limit command names that fuzzy-match name, best
// first. Typos that are not subsequences fall back to edit distance.
func (r *Registry) Suggest(name string, limit int) []string {
	name = normalize(name)
	if name == "" {
		return nil
	}

	list := r.List()
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}

	matches := fuzzy.Find(name, names)
	var out []string
	for _, m := range matches {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.Str)
	}
	if len(out) == 0 {
		if closest := suggest.New(names).Suggest(name); closest != "" {
			out = append(out, closest)
		}
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
}
