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

	"github.com/spf13/pflag"

	"github.com/vicoslab/echolib/messages/compiler"
)

type cmdWatch struct {
	*globals
	compileFlags
	outPath string
	format  string
}

func (*cmdWatch) help() *commandHelp {
	return &commandHelp{
		usage:   "watch [options] FILE",
		summary: "Recompile a schema whenever it or its imports change",
	}
}

func (cmd *cmdWatch) flags(flags *pflag.FlagSet) {
	cmd.compileFlags.register(flags)
	flags.StringVarP(&cmd.outPath, "output", "o", "",
		"Write output to this file instead of stdout")
	flags.StringVarP(&cmd.format, "format", "f", "",
		"Output format (text, json); guessed from --output if unset")
}

func (cmd *cmdWatch) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintf(os.Stderr, "usage: echomsg %s\n", cmd.help().usage)
		return 1
	}
	root := argv[0]
	format, err := selectFormat(cmd.format, cmd.outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	opts, err := cmd.options(cmd.globals)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	compile := func() (*compiler.Result, error) {
		return compiler.Compile(root, opts...)
	}
	onResult := func(result *compiler.Result, err error) {
		printDiagnostics(os.Stderr, result, err)
		if err != nil {
			return
		}
		output, err := render(result.Registry, format)
		if err == nil {
			err = writeOutput(cmd.outPath, output)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		cmd.log.Info().Str("root", root).Int("files", len(result.Files)).Msg("compiled")
	}

	watcher, err := newSchemaWatcher(root, compile, onResult, cmd.log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cmd.log.Info().Str("root", root).Msg("watching schema for changes")
	if err := watcher.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
