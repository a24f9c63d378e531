// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vicoslab/echolib/internal/config"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// globals holds state shared by all subcommands. It is populated before
// any subcommand runs.
type globals struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log zerolog.Logger
}

func (g *globals) flags(flags *pflag.FlagSet) {
	flags.StringVar(&g.configPath, "config", "", "Path to a YAML configuration file")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&g.logFormat, "log-format", "", "Log format (console, json)")
}

func (g *globals) setup() error {
	cfg, err := config.LoadWithFallback(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Logging.Format = g.logFormat
	}
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	log, err := newLogger(cfg.Logging.Format, level)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.log = log
	return nil
}

func newLogger(format string, level zerolog.Level) (zerolog.Logger, error) {
	var log zerolog.Logger
	switch format {
	case "console":
		log = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.TimeOnly,
		})
	case "json":
		log = zerolog.New(os.Stderr)
	default:
		return zerolog.Nop(), fmt.Errorf("Unsupported log format %q", format)
	}
	return log.Level(level).With().Timestamp().Logger(), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := &globals{log: zerolog.Nop()}
	echomsgCmd := &cobra.Command{
		Use:   "echomsg [options] COMMAND",
		Short: "Compile echolib message schemas",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return g.setup()
		},
	}
	echomsgCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, echomsgCmd.UsageString())
		os.Exit(1)
		return nil
	}
	g.flags(echomsgCmd.PersistentFlags())

	commands := []command{
		&cmdCompile{globals: g},
		&cmdCodegen{globals: g},
		&cmdWatch{globals: g},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				rc := cmd.run(ctx, args)
				stop()
				os.Exit(rc)
				return nil
			},
		}
		echomsgCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	if _, err := echomsgCmd.ExecuteContextC(ctx); err != nil {
		os.Exit(1)
	}
}
