// Package cli implements the promptline subcommands.
package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/NikitaCOEUR/promptline/internal/config"
	"github.com/NikitaCOEUR/promptline/internal/logger"
	"github.com/NikitaCOEUR/promptline/internal/session"
)

// Params are shared by every subcommand
type Params struct {
	// LogLevel overrides the configured level when set
	LogLevel string
	// Dir is where the project config is looked up and files are completed; cwd when empty
	Dir string
	// ConfigFile replaces the global and project config lookup when set
	ConfigFile string
	// Out receives command output; stdout when nil
	Out io.Writer
	// Err receives logs; stderr when nil
	Err io.Writer

	componentOpts []session.ComponentOption
}

// runtime holds what a subcommand needs once config is loaded
type runtime struct {
	dir   string
	cfg   *config.Config
	files []string
	log   *logger.Logger
	comps *session.Components
	out   io.Writer
}

func (p Params) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// load reads config and builds the components
func load(p Params) (*runtime, error) {
	dir := p.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	var (
		cfg   *config.Config
		files []string
		err   error
	)
	loader := config.NewLoader()
	if p.ConfigFile != "" {
		cfg, err = loader.LoadFile(p.ConfigFile)
		files = []string{p.ConfigFile}
	} else {
		cfg, files, err = loader.Load(dir)
	}
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if p.LogLevel != "" {
		level = p.LogLevel
	}
	log := logger.New(level, p.Err)
	log.Debug().Str("dir", dir).Int("files", len(files)).Msg("Configuration loaded")

	if cfg.Menu.Width == 0 {
		cfg.Menu.Width = terminalWidth(p.out())
	}

	opts := append([]session.ComponentOption{session.WithWorkDir(dir)}, p.componentOpts...)
	comps, err := session.NewComponents(cfg, log, opts...)
	if err != nil {
		return nil, err
	}

	return &runtime{dir: dir, cfg: cfg, files: files, log: log, comps: comps, out: p.out()}, nil
}

// terminalWidth returns the width of w when it is a terminal, else 0
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (rt *runtime) newSession(collab session.Collaborators, opts ...session.Option) *session.Session {
	return rt.comps.NewSession(collab, rt.log, append([]session.Option{session.WithCwd(rt.dir)}, opts...)...)
}
