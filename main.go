package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/objcpb/protoc-gen-objc/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	genFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "descriptor",
			Usage:       "path to a compiled FileDescriptorSet",
			Required:    true,
			Destination: &ctrl.Flags.Descriptor,
		},
		&cli.StringFlag{
			Name:        "out",
			Usage:       "output directory for generated files",
			Value:       ".",
			Destination: &ctrl.Flags.OutDir,
		},
		&cli.StringFlag{
			Name:        "options",
			Usage:       "generator options, protoc parameter syntax (e.g. prefix=AB,divide_headers)",
			Destination: &ctrl.Flags.Parameter,
		},
	}

	app := &cli.Command{
		Name:    "protoc-gen-objc",
		Usage:   "Protocol buffer compiler plugin generating Objective-C message classes and builders.",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "panic",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			return ctx, nil
		},
		// No subcommand means protoc invoked us as a plugin.
		Action: func(ctx context.Context, c *cli.Command) error {
			return ctrl.Plugin(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "gen",
				Usage: "Generate once from a compiled descriptor set",
				Flags: genFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Gen(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate whenever the descriptor set changes",
				Flags: append(genFlags, &cli.DurationFlag{
					Name:        "debounce",
					Usage:       "settle window before regenerating",
					Value:       200 * time.Millisecond,
					Destination: &ctrl.Flags.Debounce,
				}),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run protoc-gen-objc")
	}
}
