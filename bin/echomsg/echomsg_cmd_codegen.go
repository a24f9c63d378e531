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
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/vicoslab/echolib/messages/codegen"
	"github.com/vicoslab/echolib/messages/compiler"
	"github.com/vicoslab/echolib/messages/encoding/echojson"
)

type cmdCodegen struct {
	*globals
	compileFlags
	outDir        string
	pluginPath    string
	pluginOptions map[string]string
}

func (*cmdCodegen) help() *commandHelp {
	return &commandHelp{
		usage:   "codegen [options] FILE...",
		summary: "Generate code for schemas with a WebAssembly plugin",
	}
}

func (cmd *cmdCodegen) flags(flags *pflag.FlagSet) {
	cmd.compileFlags.register(flags)
	flags.StringVarP(&cmd.outDir, "output", "o", "",
		"Directory to write generated files into")
	flags.StringVar(&cmd.pluginPath, "plugin-path", "",
		"Directories searched for codegen plugins")
	flags.StringToStringVar(&cmd.pluginOptions, "plugin-opt", nil,
		"Option passed to the plugin, as KEY=VALUE (repeatable)")
}

func (cmd *cmdCodegen) run(ctx context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintf(os.Stderr, "usage: echomsg %s\n", cmd.help().usage)
		return 1
	}
	if cmd.outDir == "" {
		fmt.Fprintln(os.Stderr, "No output directory specified (set --output=)")
		return 1
	}

	lang, err := cmd.schemaLanguage(cmd.cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	opts, err := cmd.options(cmd.globals)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	pluginPath, err := codegen.Locate(cmd.locatePath(), string(lang))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	host, err := codegen.NewHost(ctx,
		codegen.WithStderr(os.Stderr),
		codegen.WithLogger(cmd.log),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer host.Close(ctx)

	for _, root := range argv {
		result, err := compiler.Compile(root, opts...)
		printDiagnostics(os.Stderr, result, err)
		if err != nil {
			return 1
		}

		// Plugins keep state between calls, so each schema gets a fresh
		// instance.
		plugin, err := host.LoadFile(ctx, pluginPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		response, err := plugin.Generate(ctx, &codegen.Request{
			Language: string(lang),
			Basename: schemaBasename(root),
			Schema:   echojson.Build(result.Registry),
			Options:  cmd.pluginOptions,
		})
		plugin.Close(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := cmd.writeFiles(response); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	return 0
}

// locatePath returns the plugin search directories. The flag replaces the
// configured path.
func (cmd *cmdCodegen) locatePath() []string {
	if cmd.pluginPath != "" {
		return filepath.SplitList(cmd.pluginPath)
	}
	return cmd.cfg.Codegen.PluginPath
}

func (cmd *cmdCodegen) writeFiles(response *codegen.Response) error {
	if len(response.Files) == 0 {
		return fmt.Errorf("Plugin did not generate any output files")
	}
	// Validate every path before writing anything.
	paths := make([]string, len(response.Files))
	for ii, file := range response.Files {
		outPath, err := codegen.OutputPath(cmd.outDir, file)
		if err != nil {
			return err
		}
		paths[ii] = outPath
	}
	for ii, file := range response.Files {
		if err := os.MkdirAll(filepath.Dir(paths[ii]), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(paths[ii], []byte(file.Content), 0o644); err != nil {
			return err
		}
		cmd.log.Debug().Str("path", paths[ii]).Msg("wrote generated file")
	}
	return nil
}
