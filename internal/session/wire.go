package session

import (
	"fmt"

	"github.com/NikitaCOEUR/promptline/internal/commands"
	"github.com/NikitaCOEUR/promptline/internal/completion"
	"github.com/NikitaCOEUR/promptline/internal/config"
	"github.com/NikitaCOEUR/promptline/internal/logger"
	"github.com/NikitaCOEUR/promptline/internal/menu"
	"github.com/NikitaCOEUR/promptline/internal/mode"
	"github.com/NikitaCOEUR/promptline/internal/oracle"
)

// Components are the shared parts of a session, built once from config
type Components struct {
	Oracle     *oracle.Cache
	Registry   *commands.Registry
	Classifier *mode.Classifier
	Manager    *completion.Manager
	Renderer   *menu.Renderer
}

// Collaborators receive routed lines. Any of them may be nil.
type Collaborators struct {
	Exec   Executor
	Agent  Agent
	Local  LocalExecutor
	Output Output
}

// ComponentOption configures NewComponents
type ComponentOption func(*componentOptions)

type componentOptions struct {
	dir    string
	lookup oracle.Lookup
	source completion.CommandSource
	fs     completion.FileSystem
	git    completion.CommandRunner
}

// WithLookup replaces the system command lookup. If lookup can also list
// commands it becomes the command completion source.
func WithLookup(lookup oracle.Lookup) ComponentOption {
	return func(o *componentOptions) {
		o.lookup = lookup
		if src, ok := lookup.(completion.CommandSource); ok {
			o.source = src
		} else {
			o.source = nil
		}
	}
}

// WithWorkDir sets the directory relative command paths are resolved
// against by the system lookup
func WithWorkDir(dir string) ComponentOption {
	return func(o *componentOptions) {
		o.dir = dir
	}
}

// WithFileSystem replaces the file system used for path completion
func WithFileSystem(fs completion.FileSystem) ComponentOption {
	return func(o *componentOptions) {
		o.fs = fs
	}
}

// WithGitRunner replaces the runner used for git ref completion
func WithGitRunner(run completion.CommandRunner) ComponentOption {
	return func(o *componentOptions) {
		o.git = run
	}
}

// NewComponents wires the oracle, command registry, classifier, completers
// and menu renderer described by cfg
func NewComponents(cfg *config.Config, log *logger.Logger, opts ...ComponentOption) (*Components, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Discard()
	}

	var o componentOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.lookup == nil {
		system := oracle.NewSystemLookup("", oracle.WithDir(o.dir))
		o.lookup, o.source = system, system
	}

	cache := oracle.NewCache(o.lookup,
		oracle.WithTimeout(cfg.Oracle.LookupTimeout),
		oracle.WithLogger(log),
	)
	registry := commands.NewRegistry(cfg.Commands...)

	classifier := mode.NewClassifier(cache, registry,
		mode.WithNaturalWords(cfg.Classifier.LocalOnlyWords...),
		mode.WithLogger(log.Component("mode")),
	)

	manager := completion.NewManager(
		completion.WithMaxResults(cfg.Completion.MaxResults),
		completion.WithTimeout(cfg.Completion.Timeout),
		completion.WithLogger(log),
	)
	for _, c := range []completion.Completer{
		completion.NewHistoryCompleter(),
		completion.NewSlashCompleter(registry),
		completion.NewCommandCompleter(o.source),
		completion.NewEntityCompleter(o.fs),
		completion.NewGitRefCompleter(o.git),
	} {
		if err := manager.Register(c); err != nil {
			return nil, err
		}
	}

	renderer, err := menu.NewRenderer(menu.Options{
		MaxVisible:   cfg.Menu.MaxVisible,
		Width:        cfg.Menu.Width,
		HideCursor:   cfg.Menu.HideCursor,
		ItemTemplate: cfg.Menu.ItemTemplate,
	})
	if err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}

	return &Components{
		Oracle:     cache,
		Registry:   registry,
		Classifier: classifier,
		Manager:    manager,
		Renderer:   renderer,
	}, nil
}

// NewSession creates a session over the components
func (c *Components) NewSession(collab Collaborators, log *logger.Logger, opts ...Option) *Session {
	if log == nil {
		log = logger.Discard()
	}
	router := NewRouter(collab.Exec, collab.Agent, collab.Local, c.Registry, collab.Output, log)
	return New(c.Classifier, c.Manager, router, c.Renderer, append([]Option{WithLogger(log)}, opts...)...)
}
