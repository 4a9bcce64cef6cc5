package completion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/input"
)

// DirEntry is one entry returned by a FileSystem
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem lists directories for file and entity completion
type FileSystem interface {
	ListDirectory(path string) ([]DirEntry, error)
}

// OSFileSystem reads the real file system
type OSFileSystem struct{}

// ListDirectory implements FileSystem
func (OSFileSystem) ListDirectory(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(path, e.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		out = append(out, DirEntry{Name: e.Name(), IsDir: isDir})
	}
	return out, nil
}

// EntityCompleter completes @-references and file arguments relative to the
// working directory
type EntityCompleter struct {
	fs  FileSystem
	now func() time.Time
}

// NewEntityCompleter creates an entity completer. A nil fs uses the real file system.
func NewEntityCompleter(fs FileSystem) *EntityCompleter {
	if fs == nil {
		fs = OSFileSystem{}
	}
	return &EntityCompleter{fs: fs, now: time.Now}
}

// Name implements Completer
func (e *EntityCompleter) Name() string { return "entity" }

// IsRelevant is true on an @-reference or on any argument position
func (e *EntityCompleter) IsRelevant(state input.State) bool {
	if state.IsEntityTrigger {
		return true
	}
	if state.IsSlashCommand && state.TokenIndex == 0 {
		return false
	}
	if state.CurrentToken == nil || state.CurrentToken.Type == input.TokenOption ||
		state.CurrentToken.Type == input.TokenString {
		return false
	}
	return state.InArgumentPosition()
}

// GetCompletions implements Completer
func (e *EntityCompleter) GetCompletions(ctx context.Context, state input.State) ([]Completion, error) {
	trigger := ""
	typed := state.Prefix
	group := GroupFile
	if state.IsEntityTrigger {
		trigger = "@"
		typed = strings.TrimPrefix(typed, "@")
		group = GroupEntity
	}

	dirPart, base := splitPath(typed)
	dir := dirPart
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(state.Cwd, dirPart)
	}

	entries, err := e.fs.ListDirectory(dir)
	if err != nil {
		return nil, err
	}

	now := e.now()
	completions := []Completion{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.HasPrefix(entry.Name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if !hasPrefixFold(entry.Name, base) {
			continue
		}

		value := trigger + dirPart + entry.Name
		icon := "📄"
		if entry.IsDir {
			value += "/"
			icon = "📁"
		}
		completions = append(completions, Completion{
			Value:  value,
			Group:  group,
			Score:  Score(base, entry.Name, state.History, now),
			Source: e.Name(),
			Icon:   icon,
		})
	}

	return completions, nil
}

// splitPath splits typed text into the directory part (with its trailing
// slash) and the partial name after it
func splitPath(typed string) (string, string) {
	i := strings.LastIndex(typed, "/")
	if i < 0 {
		return "", typed
	}
	return typed[:i+1], typed[i+1:]
}
