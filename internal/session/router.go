package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/promptline/internal/commands"
	"github.com/NikitaCOEUR/promptline/internal/derrors"
	"github.com/NikitaCOEUR/promptline/internal/logger"
	"github.com/NikitaCOEUR/promptline/internal/mode"
)

// ExecResult is what the shell collaborator reports for one command
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Signal   string
}

// Executor runs shell commands
type Executor interface {
	Exec(ctx context.Context, command string) (ExecResult, error)
}

// Agent sends natural-language prompts to the agent and returns the stop reason
type Agent interface {
	Prompt(ctx context.Context, text string) (string, error)
}

// LocalExecutor runs local slash commands
type LocalExecutor interface {
	Run(ctx context.Context, cmd commands.Command, args []string) error
}

// Output shows messages to the user
type Output interface {
	Info(msg string)
	Warn(msg string)
}

// Outcome describes what happened to a submitted line
type Outcome struct {
	Mode mode.Mode
	// Dispatched is true when a collaborator received the line
	Dispatched bool
	// NeedsConfirmation is true for ambiguous lines; call Confirm with the user's choice
	NeedsConfirmation bool
	// Message is the user-visible note, if any
	Message    string
	Exec       *ExecResult
	StopReason string
}

// Router hands classified lines to the shell, the agent or a local command
type Router struct {
	exec     Executor
	agent    Agent
	local    LocalExecutor
	registry *commands.Registry
	out      Output
	log      *logger.Logger
}

// NewRouter creates a router. Any collaborator may be nil; lines for a
// missing collaborator are reported and not dispatched.
func NewRouter(exec Executor, agent Agent, local LocalExecutor, registry *commands.Registry, out Output, log *logger.Logger) *Router {
	if registry == nil {
		registry = commands.NewRegistry()
	}
	if out == nil {
		out = discardOutput{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Router{
		exec:     exec,
		agent:    agent,
		local:    local,
		registry: registry,
		out:      out,
		log:      log.Component("router"),
	}
}

// Route dispatches line according to its authoritative classification
func (r *Router) Route(ctx context.Context, line string, res mode.Result) (Outcome, error) {
	if strings.TrimSpace(line) == "" {
		return Outcome{Mode: res.Mode}, nil
	}

	switch res.Mode {
	case mode.Shell:
		return r.shell(ctx, line)
	case mode.NaturalLanguage:
		return r.prompt(ctx, line)
	case mode.Slash:
		return r.slash(ctx, line)
	case mode.Ambiguous:
		return Outcome{
			Mode:              mode.Ambiguous,
			NeedsConfirmation: true,
			Message:           fmt.Sprintf("%q could be a command or a question: run it, or ask the agent?", strings.TrimSpace(line)),
		}, nil
	default:
		msg := fmt.Sprintf("command not found: %s", firstWord(line))
		if res.Suggestion != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", res.Suggestion)
		}
		r.out.Warn(msg)
		return Outcome{Mode: res.Mode, Message: msg}, nil
	}
}

// Confirm dispatches an ambiguous line once the user picked Shell or NaturalLanguage
func (r *Router) Confirm(ctx context.Context, line string, m mode.Mode) (Outcome, error) {
	switch m {
	case mode.Shell:
		return r.shell(ctx, line)
	case mode.NaturalLanguage:
		return r.prompt(ctx, line)
	default:
		return Outcome{}, derrors.NewValidationError("mode", fmt.Sprintf("cannot confirm a line as %s", m), nil)
	}
}

func (r *Router) shell(ctx context.Context, line string) (Outcome, error) {
	command := strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(line, " \t"), "!"))
	if r.exec == nil {
		return r.unavailable(mode.Shell, "shell")
	}

	res, err := r.exec.Exec(ctx, command)
	if err != nil {
		return Outcome{Mode: mode.Shell}, fmt.Errorf("exec %q: %w", command, err)
	}
	r.log.Debug().Str("command", command).Int("exit_code", res.ExitCode).Msg("Shell command finished")
	return Outcome{Mode: mode.Shell, Dispatched: true, Exec: &res}, nil
}

func (r *Router) prompt(ctx context.Context, line string) (Outcome, error) {
	text := strings.TrimSpace(line)
	text = strings.TrimSpace(strings.TrimPrefix(text, "?"))
	if r.agent == nil {
		return r.unavailable(mode.NaturalLanguage, "agent")
	}

	stop, err := r.agent.Prompt(ctx, text)
	if err != nil {
		return Outcome{Mode: mode.NaturalLanguage}, fmt.Errorf("prompt agent: %w", err)
	}
	r.log.Debug().Str("stop_reason", stop).Msg("Agent turn finished")
	return Outcome{Mode: mode.NaturalLanguage, Dispatched: true, StopReason: stop}, nil
}

func (r *Router) slash(ctx context.Context, line string) (Outcome, error) {
	fields := strings.Fields(line)
	name := strings.TrimPrefix(fields[0], "/")

	cmd, ok := r.registry.Lookup(name)
	if !ok {
		err := derrors.NewUnknownCommandError(name, r.registry.Suggest(name, 3))
		r.out.Warn(err.Error())
		return Outcome{Mode: mode.Slash, Message: err.Error()}, nil
	}
	if r.local == nil {
		return r.unavailable(mode.Slash, "local command handler")
	}

	if err := r.local.Run(ctx, cmd, fields[1:]); err != nil {
		return Outcome{Mode: mode.Slash}, fmt.Errorf("/%s: %w", cmd.Name, err)
	}
	return Outcome{Mode: mode.Slash, Dispatched: true}, nil
}

func (r *Router) unavailable(m mode.Mode, what string) (Outcome, error) {
	msg := fmt.Sprintf("no %s is connected", what)
	r.out.Warn(msg)
	return Outcome{Mode: m, Message: msg}, nil
}

func firstWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

type discardOutput struct{}

func (discardOutput) Info(string) {}
func (discardOutput) Warn(string) {}
