// Package oracle answers whether a word names a runnable command.
package oracle

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// BuiltinPath is what Which returns for shell builtins
const BuiltinPath = "builtin"

var builtins = map[string]bool{
	"cd": true, "export": true, "alias": true, "unalias": true, "source": true,
	".": true, "set": true, "unset": true, "pushd": true, "popd": true,
	"dirs": true, "eval": true, "exec": true, "ulimit": true, "umask": true,
	"type": true, "hash": true, "jobs": true, "fg": true, "bg": true,
	"wait": true, "trap": true, "builtin": true, "declare": true, "local": true,
	"readonly": true, "shift": true, "getopts": true, "bind": true,
	"shopt": true, "setopt": true,
}

// IsBuiltin reports whether word is a shell builtin
func IsBuiltin(word string) bool {
	return builtins[word]
}

// Builtins returns the builtin names, sorted
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a command name to its location. A command that does not
// exist yields ("", nil); errors are reserved for failed lookups.
type Lookup interface {
	Which(ctx context.Context, word string) (string, error)
}

// SystemLookup resolves builtins and executables on $PATH
type SystemLookup struct {
	pathEnv string
	dir     string

	once     sync.Once
	scanned  chan struct{}
	commands []string
}

// LookupOption configures a SystemLookup
type LookupOption func(*SystemLookup)

// WithDir sets the directory relative command paths such as ./run.sh are
// resolved against. The process working directory is used when unset.
func WithDir(dir string) LookupOption {
	return func(s *SystemLookup) {
		s.dir = dir
	}
}

// NewSystemLookup creates a lookup over the given PATH value, or $PATH when empty
func NewSystemLookup(pathEnv string, opts ...LookupOption) *SystemLookup {
	if pathEnv == "" {
		pathEnv = os.Getenv("PATH")
	}
	s := &SystemLookup{pathEnv: pathEnv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Which returns "builtin" for shell builtins and the executable path otherwise
func (s *SystemLookup) Which(ctx context.Context, word string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if IsBuiltin(word) {
		return BuiltinPath, nil
	}

	if strings.Contains(word, "/") {
		path := word
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		if isExecutable(path) {
			return path, nil
		}
		return "", nil
	}

	for _, dir := range filepath.SplitList(s.pathEnv) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, word)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// Commands lists the executables found on PATH, sorted and deduplicated.
// The first call starts a single scan that runs to completion in the
// background; a caller whose ctx ends first gets ctx.Err() and a later call
// gets the result.
func (s *SystemLookup) Commands(ctx context.Context) ([]string, error) {
	s.once.Do(func() {
		s.scanned = make(chan struct{})
		go func() {
			defer close(s.scanned)
			s.commands = scanPath(s.pathEnv)
		}()
	})

	select {
	case <-s.scanned:
		return s.commands, nil
	default:
	}
	select {
	case <-s.scanned:
		return s.commands, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func scanPath(pathEnv string) []string {
	seen := make(map[string]bool)
	var names []string

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			// Missing or unreadable PATH entries are common
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if seen[name] || e.IsDir() {
				continue
			}
			if isExecutable(filepath.Join(dir, name)) {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	sort.Strings(names)
	return names
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0111 != 0
}
