// Package main is the entry point for the promptline CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	plcli "github.com/NikitaCOEUR/promptline/internal/cli"
	"github.com/NikitaCOEUR/promptline/internal/trace"
	"github.com/NikitaCOEUR/promptline/pkg/version"
)

func main() {
	stop := trace.Init()
	err := newApp().Run(context.Background(), os.Args)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// params builds the shared parameters from the root flags
func params(cmd *cli.Command) plcli.Params {
	return plcli.Params{
		LogLevel:   cmd.String("log-level"),
		Dir:        cmd.String("dir"),
		ConfigFile: cmd.String("config"),
	}
}

// lineArg joins the positional arguments into one prompt line
func lineArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() == 0 {
		return "", fmt.Errorf("a line is required")
	}
	return strings.Join(cmd.Args().Slice(), " "), nil
}

func cursorFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:  "cursor",
		Value: -1,
		Usage: "Cursor byte offset in the line (end of line when negative)",
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "promptline",
		Usage:                 "Input core of a terminal coding agent: mode detection, completion and menu",
		Version:               version.String(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error); overrides the config",
				Sources: cli.EnvVars("PROMPTLINE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "Working directory for config lookup and file completion",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Use this config file instead of the global and project files",
				Sources: cli.EnvVars("PROMPTLINE_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Read lines from stdin and route them to the shell or local commands",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "sh",
						Usage:   "Shell used to run shell lines",
						Sources: cli.EnvVars("PROMPTLINE_SHELL"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return plcli.Run(ctx, plcli.RunParams{
						Params: params(cmd),
						Shell:  cmd.String("shell"),
					})
				},
			},
			{
				Name:      "classify",
				Usage:     "Show how a line would be classified",
				ArgsUsage: "<line>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "sync",
						Usage: "Use the non-blocking pass that runs while typing",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					line, err := lineArg(cmd)
					if err != nil {
						return err
					}
					return plcli.Classify(ctx, plcli.ClassifyParams{
						Params: params(cmd),
						Text:   line,
						Sync:   cmd.Bool("sync"),
					})
				},
			},
			{
				Name:      "complete",
				Usage:     "List the completions offered for a line",
				ArgsUsage: "<line>",
				Flags:     []cli.Flag{cursorFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					line, err := lineArg(cmd)
					if err != nil {
						return err
					}
					return plcli.Complete(ctx, plcli.CompleteParams{
						Params: params(cmd),
						Text:   line,
						Cursor: int(cmd.Int64("cursor")),
					})
				},
			},
			{
				Name:      "menu",
				Usage:     "Draw the completion menu for a line and replay keys against it",
				ArgsUsage: "<line>",
				Flags: []cli.Flag{
					cursorFlag(),
					&cli.StringFlag{
						Name:  "keys",
						Usage: `Escaped key script, e.g. '\t\t\r' (Tab, Tab, Enter)`,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					line, err := lineArg(cmd)
					if err != nil {
						return err
					}
					return plcli.Menu(ctx, plcli.MenuParams{
						Params: params(cmd),
						Text:   line,
						Cursor: int(cmd.Int64("cursor")),
						Keys:   cmd.String("keys"),
					})
				},
			},
			{
				Name:      "suggest",
				Usage:     "Suggest a correction for a mistyped command or /command",
				ArgsUsage: "<word>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("exactly one word is required")
					}
					return plcli.Suggest(plcli.SuggestParams{
						Params: params(cmd),
						Word:   cmd.Args().Get(0),
					})
				},
			},
			{
				Name:  "commands",
				Usage: "List local slash commands",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return plcli.Commands(params(cmd))
				},
			},
			{
				Name:  "status",
				Usage: "Show the active configuration",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return plcli.Status(params(cmd))
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a promptline configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := ""
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return plcli.Validate(params(cmd), configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for promptline configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return plcli.Schema(params(cmd), outputPath)
				},
			},
		},
	}
}
