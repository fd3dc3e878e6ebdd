// Package main is the entry point for the inlinecomplete CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	iccli "github.com/NikitaCOEUR/inlinecomplete/internal/cli"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trace"
	"github.com/NikitaCOEUR/inlinecomplete/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer trace.Init()()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// textArg returns the first positional argument, the text to complete
func textArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() == 0 {
		return "", fmt.Errorf("text argument required")
	}
	return cmd.Args().Get(0), nil
}

func caretFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "caret",
		Value: -1,
		Usage: "Caret position as a character offset (defaults to the end of the text)",
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "inlinecomplete",
		Usage:                 "Inline autocomplete for text inputs: trigger matching, popup placement and suggestion splicing",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), defaults to the config's log_level",
				Sources: cli.EnvVars("INLINECOMPLETE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (defaults to the nearest .inlinecomplete.yml, then the global config)",
				Sources: cli.EnvVars("INLINECOMPLETE_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "match",
				Usage:     "Show the active query at the caret, where its popup opens and its suggestions",
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					caretFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Go template for the output, e.g. '{{ .Event.Query }}'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					text, err := textArg(cmd)
					if err != nil {
						return err
					}
					return iccli.Match(ctx, iccli.MatchParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Text:       text,
						Caret:      int(cmd.Int("caret")),
						Format:     cmd.String("format"),
					})
				},
			},
			{
				Name:      "accept",
				Usage:     "Accept a suggestion for the query at the caret and print the new text",
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					caretFlag(),
					&cli.StringFlag{
						Name:  "value",
						Usage: "Text to insert (defaults to a suggestion picked with --index)",
					},
					&cli.IntFlag{
						Name:  "index",
						Value: 0,
						Usage: "Zero-based index of the suggestion to accept",
					},
					&cli.BoolFlag{
						Name:  "plain",
						Usage: "Print only the resulting text",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					text, err := textArg(cmd)
					if err != nil {
						return err
					}
					return iccli.Accept(ctx, iccli.AcceptParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Text:       text,
						Caret:      int(cmd.Int("caret")),
						Value:      cmd.String("value"),
						Index:      int(cmd.Int("index")),
						Plain:      cmd.Bool("plain"),
					})
				},
			},
			{
				Name:      "apply",
				Usage:     "Replace the characters in [start, end) with a replacement",
				ArgsUsage: "<text> <replacement>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "start", Usage: "First replaced character offset"},
					&cli.IntFlag{Name: "end", Usage: "Offset after the last replaced character"},
					&cli.BoolFlag{Name: "strict", Usage: "Fail on an out of range span instead of clamping it"},
					&cli.BoolFlag{Name: "plain", Usage: "Print only the resulting text"},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() < 2 {
						return fmt.Errorf("text and replacement arguments required")
					}
					return iccli.Apply(iccli.ApplyParams{
						Text:        cmd.Args().Get(0),
						Replacement: cmd.Args().Get(1),
						Start:       int(cmd.Int("start")),
						End:         int(cmd.Int("end")),
						Strict:      cmd.Bool("strict"),
						Plain:       cmd.Bool("plain"),
					})
				},
			},
			{
				Name:  "demo",
				Usage: "Open an interactive text box with inline suggestions",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Usage: "Initial text"},
					&cli.BoolFlag{Name: "watch", Value: true, Usage: "Reload the config file when it changes"},
					&cli.StringFlag{
						Name:    "log-file",
						Usage:   "Write logs to this file",
						Sources: cli.EnvVars("INLINECOMPLETE_LOG_FILE"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return iccli.Demo(ctx, iccli.DemoParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						LogFile:    cmd.String("log-file"),
						Text:       cmd.String("text"),
						Watch:      cmd.Bool("watch"),
					})
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample config file in current folder or global config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "global",
						Aliases: []string{"g"},
						Usage:   "Create global config file instead of local",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return iccli.Init(os.Stdout, cmd.Bool("global"))
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate an inlinecomplete configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return iccli.Validate(os.Stdout, configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for inlinecomplete configuration files",
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
					return iccli.Schema(os.Stdout, outputPath)
				},
			},
		},
	}
}
