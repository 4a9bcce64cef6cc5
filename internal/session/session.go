// Package session ties the input core together: every keystroke rebuilds the
// input state and its live mode, completion requests run in the background
// and only the latest one is applied, and submitted lines are routed by the
// authoritative classification.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/completion"
	"github.com/NikitaCOEUR/promptline/internal/input"
	"github.com/NikitaCOEUR/promptline/internal/logger"
	"github.com/NikitaCOEUR/promptline/internal/menu"
	"github.com/NikitaCOEUR/promptline/internal/mode"
)

// DefaultHistorySize bounds the history kept in memory
const DefaultHistorySize = 500

// Session is the state of one prompt line. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	classifier *mode.Classifier
	manager    *completion.Manager
	router     *Router
	menu       *menu.Menu
	renderer   *menu.Renderer
	seq        completion.Sequencer
	sink       io.Writer

	cwd         string
	history     []input.HistoryEntry
	historySize int
	state       input.State
	live        mode.Result
	pending     string

	now func() time.Time
	log *logger.Logger
}

// Option configures a Session
type Option func(*Session)

// WithCwd sets the directory used for file completion
func WithCwd(cwd string) Option {
	return func(s *Session) {
		s.cwd = cwd
	}
}

// WithHistory seeds the session history, oldest first
func WithHistory(history []input.HistoryEntry) Option {
	return func(s *Session) {
		s.history = append([]input.HistoryEntry(nil), history...)
	}
}

// WithSink sets where menu escape sequences are written
func WithSink(w io.Writer) Option {
	return func(s *Session) {
		s.sink = w
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) {
		s.log = log.Component("session")
	}
}

// New creates a session with an empty line
func New(classifier *mode.Classifier, manager *completion.Manager, router *Router, renderer *menu.Renderer, opts ...Option) *Session {
	s := &Session{
		classifier:  classifier,
		manager:     manager,
		router:      router,
		menu:        menu.New(),
		renderer:    renderer,
		sink:        io.Discard,
		historySize: DefaultHistorySize,
		now:         time.Now,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setLine("", 0)
	return s
}

// State returns the current input snapshot
func (s *Session) State() input.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Live returns the live classification of the current line
func (s *Session) Live() mode.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// History returns a copy of the submitted lines, oldest first
func (s *Session) History() []input.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]input.HistoryEntry(nil), s.history...)
}

// MenuActive reports whether the completion menu is open
func (s *Session) MenuActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu.Active()
}

// Update replaces the line after an edit. It never blocks on I/O. Any
// completion request still in flight is superseded and the menu is closed.
func (s *Session) Update(text string, cursor int) mode.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.Next()
	s.closeMenu()
	s.setLine(text, cursor)
	return s.live
}

// RequestCompletions computes completions for the current line and opens
// the menu with them. It returns false when the line changed while the
// request was running; the stale result is then discarded.
func (s *Session) RequestCompletions(ctx context.Context) ([]completion.Completion, bool) {
	s.mu.Lock()
	id := s.seq.Next()
	state := s.state
	s.mu.Unlock()

	// Completers see the authoritative mode so that a still-unresolved
	// command word is completed as one
	res := s.classifier.Classify(ctx, state.RawText)
	state.Mode = res.Mode
	list := s.manager.GetCompletions(ctx, state)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seq.IsLatest(id) {
		s.log.Debug().Uint64("request", id).Uint64("latest", s.seq.Latest()).Msg("Discarding stale completions")
		return nil, false
	}
	s.menu.SetCompletions(list)
	s.write(s.renderer.Render(s.menu))
	return list, true
}

// KeyResult is the effect of a key on the session
type KeyResult struct {
	Action menu.KeyAction
	// Handled is false when the key should go to the line editor instead
	Handled bool
	// Text and Cursor are the line after the key
	Text   string
	Cursor int
}

// HandleKey applies a menu key. Keys are only handled while the menu is open.
func (s *Session) HandleKey(k menu.Key) KeyResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	action := menu.ActionForKey(k)
	result := KeyResult{Action: action, Text: s.state.RawText, Cursor: s.state.CursorPos}
	if !s.menu.Active() || action == menu.ActionNone {
		return result
	}
	result.Handled = true

	switch action {
	case menu.ActionNext:
		s.menu.SelectNext()
		s.write(s.renderer.Render(s.menu))
	case menu.ActionPrevious:
		s.menu.SelectPrevious()
		s.write(s.renderer.Render(s.menu))
	case menu.ActionDismiss:
		s.closeMenu()
	case menu.ActionAccept:
		c, _ := s.menu.Accept()
		s.write(s.renderer.Clear())
		s.seq.Next()
		text, cursor := completion.Apply(s.state, c)
		s.setLine(text, cursor)
		result.Text, result.Cursor = text, cursor
	}
	return result
}

// Submit routes the current line using the authoritative classification and
// starts a new empty line. Dispatched lines are added to history. An
// ambiguous line is kept until Confirm is called.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	line := s.state.RawText
	s.seq.Next()
	s.closeMenu()
	s.setLine("", 0)
	s.pending = ""
	s.mu.Unlock()

	res := s.classifier.Classify(ctx, line)
	s.log.Debug().Str("mode", res.Mode.String()).Str("rule", res.Rule).Msg("Submitting line")

	outcome, err := s.router.Route(ctx, line, res)
	s.afterRoute(line, outcome)
	return outcome, err
}

// Confirm dispatches the pending ambiguous line as m
func (s *Session) Confirm(ctx context.Context, m mode.Mode) (Outcome, error) {
	s.mu.Lock()
	line := s.pending
	s.pending = ""
	s.mu.Unlock()

	if line == "" {
		return Outcome{}, nil
	}
	outcome, err := s.router.Confirm(ctx, line, m)
	s.afterRoute(line, outcome)
	return outcome, err
}

func (s *Session) afterRoute(line string, outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if outcome.NeedsConfirmation {
		s.pending = line
	}
	if outcome.Dispatched {
		s.history = append(s.history, input.HistoryEntry{Command: line, Timestamp: s.now()})
		if len(s.history) > s.historySize {
			s.history = s.history[len(s.history)-s.historySize:]
		}
	}
}

// setLine rebuilds the snapshot; callers hold mu
func (s *Session) setLine(text string, cursor int) {
	s.live = s.classifier.ClassifySync(text)
	s.state = input.NewState(text, cursor, s.live.Mode, s.cwd, s.history)
}

// closeMenu closes the menu and erases it; callers hold mu
func (s *Session) closeMenu() {
	s.menu.Clear()
	s.write(s.renderer.Clear())
}

func (s *Session) write(out string) {
	if out == "" {
		return
	}
	if _, err := io.WriteString(s.sink, out); err != nil {
		s.log.Warn().Err(err).Msg("Failed to write menu output")
	}
}
