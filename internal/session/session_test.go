package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/promptline/internal/commands"
	"github.com/NikitaCOEUR/promptline/internal/completion"
	"github.com/NikitaCOEUR/promptline/internal/config"
	"github.com/NikitaCOEUR/promptline/internal/input"
	"github.com/NikitaCOEUR/promptline/internal/menu"
	"github.com/NikitaCOEUR/promptline/internal/mode"
)

// staticLookup knows a fixed set of commands
type staticLookup map[string]string

func (l staticLookup) Which(_ context.Context, word string) (string, error) {
	return l[word], nil
}

func (l staticLookup) Commands(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	return names, nil
}

var testCommands = staticLookup{
	"git":  "/usr/bin/git",
	"ls":   "/bin/ls",
	"grep": "/bin/grep",
}

type emptyFS struct{}

func (emptyFS) ListDirectory(string) ([]completion.DirEntry, error) { return nil, nil }

// staticCompleter always offers the same list
type staticCompleter struct {
	name string
	list []completion.Completion
}

func (s *staticCompleter) Name() string                { return s.name }
func (s *staticCompleter) IsRelevant(input.State) bool { return true }
func (s *staticCompleter) GetCompletions(context.Context, input.State) ([]completion.Completion, error) {
	return s.list, nil
}

// gatedCompleter blocks until released
type gatedCompleter struct {
	started chan struct{}
	release chan struct{}
}

func (g *gatedCompleter) Name() string                { return "gated" }
func (g *gatedCompleter) IsRelevant(input.State) bool { return true }
func (g *gatedCompleter) GetCompletions(ctx context.Context, _ input.State) ([]completion.Completion, error) {
	g.started <- struct{}{}
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []completion.Completion{{Value: "git", Score: 90}}, nil
}

// syncBuffer is a bytes.Buffer safe for the session's writes
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestSession(t *testing.T, completers []completion.Completer, collab Collaborators, opts ...Option) *Session {
	t.Helper()

	registry := commands.NewRegistry()
	classifier := mode.NewClassifier(nil, registry)
	manager := completion.NewManager(completion.WithTimeout(2 * time.Second))
	for _, c := range completers {
		require.NoError(t, manager.Register(c))
	}
	renderer, err := menu.NewRenderer(menu.Options{})
	require.NoError(t, err)

	router := NewRouter(collab.Exec, collab.Agent, collab.Local, registry, collab.Output, nil)
	return New(classifier, manager, router, renderer, opts...)
}

func TestSession_Update(t *testing.T) {
	comps, err := NewComponents(config.Default(), nil, WithLookup(testCommands), WithFileSystem(emptyFS{}))
	require.NoError(t, err)
	s := comps.NewSession(Collaborators{}, nil)

	t.Run("unresolved command is tentative", func(t *testing.T) {
		res := s.Update("git status", 10)
		assert.Equal(t, mode.NaturalLanguage, res.Mode)
		assert.False(t, res.Definitive)
		assert.Equal(t, "git status", s.State().RawText)
		assert.Equal(t, 10, s.State().CursorPos)
	})

	t.Run("resolved command colors as shell", func(t *testing.T) {
		assert.True(t, comps.Oracle.IsCommand(context.Background(), "git"))

		res := s.Update("git status", 10)
		assert.Equal(t, mode.Shell, res.Mode)
		assert.Equal(t, "known-command", res.Rule)
		assert.Equal(t, mode.Shell, s.Live().Mode)
		assert.Equal(t, mode.Shell, s.State().Mode)
	})

	t.Run("question never needs the oracle", func(t *testing.T) {
		res := s.Update("how do I rebase", 15)
		assert.Equal(t, mode.NaturalLanguage, res.Mode)
		assert.True(t, res.Definitive)
	})
}

func TestSession_RequestCompletions(t *testing.T) {
	comps, err := NewComponents(config.Default(), nil, WithLookup(testCommands), WithFileSystem(emptyFS{}))
	require.NoError(t, err)

	sink := &syncBuffer{}
	s := comps.NewSession(Collaborators{}, nil, WithSink(sink))

	// "gi" is not yet known to be a command; completers still see the
	// authoritative mode
	s.Update("gi", 2)
	list, ok := s.RequestCompletions(context.Background())
	require.True(t, ok)
	require.NotEmpty(t, list)
	assert.Equal(t, "git", list[0].Value)
	assert.True(t, s.MenuActive())
	assert.Contains(t, sink.String(), "git")

	s.Update("gi", 2)
	assert.False(t, s.MenuActive(), "editing closes the menu")
}

func TestSession_StaleCompletionsDiscarded(t *testing.T) {
	gated := &gatedCompleter{started: make(chan struct{}, 4), release: make(chan struct{})}
	sink := &syncBuffer{}
	s := newTestSession(t, []completion.Completer{gated}, Collaborators{}, WithSink(sink))
	s.Update("gi", 2)

	type result struct {
		list []completion.Completion
		ok   bool
	}
	done := make(chan result, 1)
	go func() {
		list, ok := s.RequestCompletions(context.Background())
		done <- result{list, ok}
	}()

	<-gated.started
	s.Update("git", 3)
	close(gated.release)

	res := <-done
	assert.False(t, res.ok)
	assert.Nil(t, res.list)
	assert.False(t, s.MenuActive())
	assert.NotContains(t, sink.String(), "git")

	// A fresh request for the current line is applied
	list, ok := s.RequestCompletions(context.Background())
	assert.True(t, ok)
	assert.Len(t, list, 1)
	assert.True(t, s.MenuActive())
}

func TestSession_HandleKey(t *testing.T) {
	static := &staticCompleter{name: "static", list: []completion.Completion{
		{Value: "status", Score: 90},
		{Value: "stash", Score: 80},
	}}
	s := newTestSession(t, []completion.Completer{static}, Collaborators{})

	t.Run("keys pass through while idle", func(t *testing.T) {
		s.Update("git st", 6)
		res := s.HandleKey(menu.KeyTab)
		assert.False(t, res.Handled)
		assert.Equal(t, menu.ActionNext, res.Action)
		assert.Equal(t, "git st", res.Text)
	})

	t.Run("navigate and accept", func(t *testing.T) {
		s.Update("git st", 6)
		_, ok := s.RequestCompletions(context.Background())
		require.True(t, ok)

		res := s.HandleKey(menu.KeyDown)
		assert.True(t, res.Handled)
		res = s.HandleKey(menu.KeyShiftTab)
		assert.True(t, res.Handled)

		res = s.HandleKey(menu.KeyEnter)
		assert.True(t, res.Handled)
		assert.Equal(t, menu.ActionAccept, res.Action)
		assert.Equal(t, "git status", res.Text)
		assert.Equal(t, 10, res.Cursor)
		assert.Equal(t, "git status", s.State().RawText)
		assert.False(t, s.MenuActive())
	})

	t.Run("escape dismisses", func(t *testing.T) {
		s.Update("git st", 6)
		_, ok := s.RequestCompletions(context.Background())
		require.True(t, ok)

		res := s.HandleKey(menu.KeyEscape)
		assert.True(t, res.Handled)
		assert.False(t, s.MenuActive())
		assert.Equal(t, "git st", s.State().RawText)
	})

	t.Run("other keys are not handled", func(t *testing.T) {
		s.Update("git st", 6)
		_, ok := s.RequestCompletions(context.Background())
		require.True(t, ok)

		res := s.HandleKey(menu.KeyOther)
		assert.False(t, res.Handled)
		assert.True(t, s.MenuActive())
	})
}

func TestSession_Submit(t *testing.T) {
	exec := &fakeExecutor{}
	agent := &fakeAgent{}
	out := &recordingOutput{}
	comps, err := NewComponents(config.Default(), nil, WithLookup(testCommands), WithFileSystem(emptyFS{}))
	require.NoError(t, err)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := comps.NewSession(Collaborators{Exec: exec, Agent: agent, Output: out}, nil,
		WithHistory([]input.HistoryEntry{{Command: "ls", Timestamp: now.Add(-time.Hour)}}))
	s.now = func() time.Time { return now }

	s.Update("git status", 10)
	outcome, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mode.Shell, outcome.Mode)
	assert.True(t, outcome.Dispatched)
	assert.Equal(t, []string{"git status"}, exec.commands)

	s.Update("how do I undo a commit?", 23)
	outcome, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mode.NaturalLanguage, outcome.Mode)
	assert.Equal(t, []string{"how do I undo a commit?"}, agent.prompts)

	s.Update("gti status", 10)
	outcome, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mode.Invalid, outcome.Mode)
	assert.False(t, outcome.Dispatched)
	assert.Contains(t, outcome.Message, "did you mean git?")

	assert.Equal(t, "", s.State().RawText, "submit starts a new line")
	assert.Equal(t, []input.HistoryEntry{
		{Command: "ls", Timestamp: now.Add(-time.Hour)},
		{Command: "git status", Timestamp: now},
		{Command: "how do I undo a commit?", Timestamp: now},
	}, s.History(), "only dispatched lines are recorded")
}

func TestSession_ConfirmAmbiguous(t *testing.T) {
	exec := &fakeExecutor{}
	agent := &fakeAgent{}
	s := newTestSession(t, nil, Collaborators{Exec: exec, Agent: agent})

	s.Update("date", 4)
	outcome, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mode.Ambiguous, outcome.Mode)
	assert.True(t, outcome.NeedsConfirmation)
	assert.Empty(t, s.History())

	_, err = s.Confirm(context.Background(), mode.Slash)
	assert.Error(t, err)

	// The failed confirmation consumed the pending line
	outcome, err = s.Confirm(context.Background(), mode.Shell)
	require.NoError(t, err)
	assert.False(t, outcome.Dispatched)

	s.Update("date", 4)
	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	outcome, err = s.Confirm(context.Background(), mode.Shell)
	require.NoError(t, err)
	assert.True(t, outcome.Dispatched)
	assert.Equal(t, []string{"date"}, exec.commands)
	require.Len(t, s.History(), 1)
	assert.Equal(t, "date", s.History()[0].Command)
}

func TestSession_HistoryBounded(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestSession(t, nil, Collaborators{Exec: exec})
	s.historySize = 2

	for _, line := range []string{"!one", "!two", "!three"} {
		s.Update(line, len(line))
		_, err := s.Submit(context.Background())
		require.NoError(t, err)
	}

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, "!two", history[0].Command)
	assert.Equal(t, "!three", history[1].Command)
	assert.Equal(t, []string{"one", "two", "three"}, exec.commands)
}

func TestNewComponents(t *testing.T) {
	cfg := config.Default()
	cfg.Commands = []commands.Command{{Name: "deploy", Aliases: []string{"d"}}}
	cfg.Classifier.LocalOnlyWords = []string{"kthx"}

	comps, err := NewComponents(cfg, nil, WithLookup(testCommands))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"history", "slash", "command", "entity", "gitref"}, comps.Manager.Names())
	assert.True(t, comps.Registry.Has("deploy"))
	assert.True(t, comps.Registry.Has("d"))
	assert.Equal(t, mode.Slash, comps.Classifier.ClassifySync("/deploy").Mode)
	assert.Equal(t, mode.NaturalLanguage, comps.Classifier.Classify(context.Background(), "kthx").Mode)

	cfg.Menu.ItemTemplate = "{{ .Label "
	_, err = NewComponents(cfg, nil, WithLookup(testCommands))
	assert.Error(t, err)
}

func TestNewComponents_WorkDirResolvesRelativeCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.sh"), []byte("#!/bin/sh\n"), 0755))

	comps, err := NewComponents(config.Default(), nil, WithWorkDir(dir))
	require.NoError(t, err)
	assert.True(t, comps.Oracle.IsCommand(context.Background(), "./build.sh"))

	other, err := NewComponents(config.Default(), nil, WithWorkDir(t.TempDir()))
	require.NoError(t, err)
	assert.False(t, other.Oracle.IsCommand(context.Background(), "./build.sh"))
}
