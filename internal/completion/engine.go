package completion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/derrors"
	"github.com/NikitaCOEUR/promptline/internal/input"
	"github.com/NikitaCOEUR/promptline/internal/logger"
	"github.com/NikitaCOEUR/promptline/internal/timing"
	"github.com/NikitaCOEUR/promptline/internal/trace"
)

const (
	// DefaultMaxResults caps the merged completion list
	DefaultMaxResults = 50
	// DefaultTimeout bounds one completion request
	DefaultTimeout = 100 * time.Millisecond
)

// Manager orchestrates the registered completers
type Manager struct {
	mu         sync.RWMutex
	completers []Completer
	byName     map[string]Completer

	maxResults int
	timeout    time.Duration
	log        *logger.Logger
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithMaxResults caps the number of returned completions
func WithMaxResults(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxResults = n
		}
	}
}

// WithTimeout bounds how long a request waits for slow completers
func WithTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log.Component("completion")
	}
}

// NewManager creates a manager with no completers
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		byName:     make(map[string]Completer),
		maxResults: DefaultMaxResults,
		timeout:    DefaultTimeout,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a completer. Completers run and merge in registration order.
func (m *Manager) Register(c Completer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := c.Name()
	if _, exists := m.byName[name]; exists {
		return derrors.NewDuplicateCompleterError(name)
	}
	m.byName[name] = c
	m.completers = append(m.completers, c)
	return nil
}

// Get returns the completer registered under name
func (m *Manager) Get(name string) (Completer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byName[name]
	return c, ok
}

// Names returns the registered completer names in registration order
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.completers))
	for i, c := range m.completers {
		names[i] = c.Name()
	}
	return names
}

// completerResult holds the outcome of one completer run
type completerResult struct {
	index       int
	completions []Completion
	err         error
}

// GetCompletions runs every relevant completer concurrently and returns the
// merged list: deduplicated by value (highest score wins), sorted by group
// then score, and capped. Completers that fail or miss the deadline
// contribute nothing.
func (m *Manager) GetCompletions(ctx context.Context, state input.State) []Completion {
	defer trace.Region(ctx, "completion.GetCompletions")()

	m.mu.RLock()
	var relevant []Completer
	for _, c := range m.completers {
		if c.IsRelevant(state) {
			relevant = append(relevant, c)
		}
	}
	m.mu.RUnlock()

	if len(relevant) == 0 {
		return []Completion{}
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	timer := timing.NewTimer()
	// Buffered so late completers never block once we stop listening
	resultChan := make(chan completerResult, len(relevant))

	for i, c := range relevant {
		go func(i int, c Completer) {
			completions, err := runCompleter(ctx, c, state)
			resultChan <- completerResult{index: i, completions: completions, err: err}
		}(i, c)
	}

	collected := make([][]Completion, len(relevant))
	pending := len(relevant)
	for pending > 0 {
		select {
		case res := <-resultChan:
			pending--
			name := relevant[res.index].Name()
			timer.Mark(name)
			if res.err != nil {
				m.log.Debug().Err(derrors.NewCompleterError(name, res.err)).Msg("Completer failed")
				continue
			}
			collected[res.index] = res.completions
		case <-ctx.Done():
			m.log.Debug().
				Int("pending", pending).
				Dur("timeout", m.timeout).
				Msg("Completion deadline reached, dropping slow completers")
			pending = 0
		}
	}

	merged := m.merge(collected)
	m.log.Debug().
		Str("prefix", state.Prefix).
		Int("completers", len(relevant)).
		Int("results", len(merged)).
		Str("timing", timer.Summary()).
		Msg("Completions computed")
	return merged
}

func runCompleter(ctx context.Context, c Completer, state input.State) (completions []Completion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.GetCompletions(ctx, state)
}

// merge dedupes in registration order so that the result only depends on
// what the completers returned, not on when they returned it
func (m *Manager) merge(collected [][]Completion) []Completion {
	index := make(map[string]int)
	var merged []Completion

	for _, completions := range collected {
		for _, c := range completions {
			if i, seen := index[c.Value]; seen {
				if c.Score > merged[i].Score {
					merged[i] = c
				}
				continue
			}
			index[c.Value] = len(merged)
			merged = append(merged, c)
		}
	}

	sorted := SortCompletions(merged)
	if len(sorted) > m.maxResults {
		sorted = sorted[:m.maxResults]
	}
	return sorted
}
