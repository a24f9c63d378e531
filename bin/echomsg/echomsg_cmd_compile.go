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

type cmdCompile struct {
	*globals
	compileFlags
	outPath string
	format  string
}

func (*cmdCompile) help() *commandHelp {
	return &commandHelp{
		usage:   "compile [options] FILE",
		summary: "Check a schema and dump the compiled registry",
	}
}

func (cmd *cmdCompile) flags(flags *pflag.FlagSet) {
	cmd.compileFlags.register(flags)
	flags.StringVarP(&cmd.outPath, "output", "o", "",
		"Write output to this file instead of stdout")
	flags.StringVarP(&cmd.format, "format", "f", "",
		"Output format (text, json); guessed from --output if unset")
}

func (cmd *cmdCompile) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintf(os.Stderr, "usage: echomsg %s\n", cmd.help().usage)
		return 1
	}
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

	result, err := compiler.Compile(argv[0], opts...)
	printDiagnostics(os.Stderr, result, err)
	if err != nil {
		return 1
	}
	cmd.log.Info().
		Str("root", argv[0]).
		Int("files", len(result.Files)).
		Msg("compiled")

	output, err := render(result.Registry, format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := writeOutput(cmd.outPath, output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
