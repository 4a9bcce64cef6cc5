package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/NikitaCOEUR/promptline/internal/commands"
	"github.com/NikitaCOEUR/promptline/internal/mode"
	"github.com/NikitaCOEUR/promptline/internal/session"
	"github.com/NikitaCOEUR/promptline/internal/status"
)

var errExit = errors.New("exit")

// RunParams contains parameters for the Run command
type RunParams struct {
	Params
	// In supplies lines; stdin when nil
	In io.Reader
	// Shell runs shell lines; "sh" when empty
	Shell string
}

// Run reads lines, classifies them and routes them: shell lines run in a
// subshell, slash commands run locally and ambiguous lines ask first.
// No agent is connected, so natural-language lines are only reported.
func Run(ctx context.Context, params RunParams) error {
	rt, err := load(params.Params)
	if err != nil {
		return err
	}
	in := params.In
	if in == nil {
		in = os.Stdin
	}

	local := &localCommands{rt: rt}
	s := rt.newSession(session.Collaborators{
		Exec:   &shellExecutor{shell: params.Shell, dir: rt.dir},
		Local:  local,
		Output: &printer{out: rt.out},
	})
	local.session = s

	scanner := bufio.NewScanner(in)
	confirming := false
	for {
		if confirming {
			fmt.Fprint(rt.out, warningStyle.Render("[s]hell / [a]gent? "))
		} else {
			fmt.Fprint(rt.out, keyStyle.Render("› "))
		}
		if !scanner.Scan() {
			fmt.Fprintln(rt.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()

		var outcome session.Outcome
		if m, ok := confirmation(line); confirming && ok {
			outcome, err = s.Confirm(ctx, m)
		} else {
			s.Update(line, len(line))
			outcome, err = s.Submit(ctx)
		}
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(rt.out, errorStyle.Render(err.Error()))
		}

		confirming = outcome.NeedsConfirmation
		report(rt.out, outcome)
	}
}

func confirmation(answer string) (mode.Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "shell":
		return mode.Shell, true
	case "a", "agent":
		return mode.NaturalLanguage, true
	}
	return mode.NaturalLanguage, false
}

func report(out io.Writer, outcome session.Outcome) {
	if outcome.NeedsConfirmation {
		fmt.Fprintln(out, warningStyle.Render(outcome.Message))
	}
	if outcome.Exec == nil {
		return
	}
	fmt.Fprint(out, outcome.Exec.Stdout)
	fmt.Fprint(out, errorStyle.Render(outcome.Exec.Stderr))
	switch {
	case outcome.Exec.Signal != "":
		fmt.Fprintln(out, errorStyle.Render("killed by "+outcome.Exec.Signal))
	case outcome.Exec.ExitCode != 0:
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("exit %d", outcome.Exec.ExitCode)))
	}
}

// printer shows router messages
type printer struct {
	out io.Writer
}

func (p *printer) Info(msg string) { fmt.Fprintln(p.out, valueStyle.Render(msg)) }
func (p *printer) Warn(msg string) { fmt.Fprintln(p.out, warningStyle.Render(msg)) }

// localCommands runs the slash commands that need no agent
type localCommands struct {
	rt      *runtime
	session *session.Session
}

func (l *localCommands) Run(_ context.Context, cmd commands.Command, args []string) error {
	out := l.rt.out
	switch cmd.Name {
	case "exit", "quit":
		return errExit
	case "help":
		for _, c := range l.rt.comps.Registry.List() {
			fmt.Fprintf(out, "%s  %s\n", valueStyle.Render("/"+c.Name), keyStyle.Render(c.Description))
		}
		fmt.Fprintln(out, keyStyle.Render("Prefix a line with ! to run it in the shell or ? to ask the agent."))
	case "history":
		for i, h := range l.session.History() {
			fmt.Fprintf(out, "%4d  %s\n", i+1, h.Command)
		}
	case "clear":
		fmt.Fprint(out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
	case "mode":
		if len(args) == 0 {
			return fmt.Errorf("usage: /mode <line>")
		}
		text := strings.Join(args, " ")
		res := l.rt.comps.Classifier.ClassifySync(text)
		fmt.Fprintf(out, "%s %s\n", renderMode(res.Mode), keyStyle.Render("("+res.Rule+")"))
	case "config":
		fmt.Fprintln(out, status.Render(status.Collect(l.rt.dir, l.rt.cfg, l.rt.files, l.rt.comps)))
	default:
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("/%s needs an agent connection", cmd.Name)))
	}
	return nil
}
