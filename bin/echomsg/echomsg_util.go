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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vicoslab/echolib/internal/config"
	"github.com/vicoslab/echolib/messages/compiler"
	"github.com/vicoslab/echolib/messages/encoding/echojson"
	"github.com/vicoslab/echolib/messages/encoding/echotext"
	"github.com/vicoslab/echolib/messages/schema"
)

// compileFlags are shared by every command that compiles schemas.
type compileFlags struct {
	searchDirs      []string
	language        string
	namespacePolicy string
}

func (f *compileFlags) register(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&f.searchDirs, "search-path", "p", nil,
		"Directory searched for imported files (repeatable)")
	flags.StringVarP(&f.language, "language", "l", "",
		"Target language (cpp, python)")
	flags.StringVar(&f.namespacePolicy, "namespace-policy", "strict",
		"Handling of conflicting namespaces (strict, first-wins)")
}

func (f *compileFlags) schemaLanguage(cfg *config.Config) (schema.Language, error) {
	if f.language == "" {
		return cfg.SchemaLanguage(), nil
	}
	return schema.ParseLanguage(f.language)
}

func (f *compileFlags) options(g *globals) ([]compiler.CompileOption, error) {
	lang, err := f.schemaLanguage(g.cfg)
	if err != nil {
		return nil, err
	}
	var policy compiler.NamespacePolicy
	switch f.namespacePolicy {
	case "", "strict":
		policy = compiler.NamespaceStrict
	case "first-wins":
		policy = compiler.NamespaceFirstWins
	default:
		return nil, fmt.Errorf("Unsupported namespace policy %q", f.namespacePolicy)
	}
	return []compiler.CompileOption{
		compiler.WithSearchPath(g.cfg.CompileSearchPath(f.searchDirs...)),
		compiler.WithLanguage(lang),
		compiler.WithNamespacePolicy(policy),
		compiler.WithLogger(g.log),
	}, nil
}

// printDiagnostics writes warnings and then the error, if any, to w.
func printDiagnostics(w io.Writer, result *compiler.Result, err error) {
	if result != nil {
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "%v\n", warn)
		}
	}
	if err != nil {
		fmt.Fprintf(w, "%v\n", err)
	}
}

const (
	formatText = "text"
	formatJSON = "json"
)

// selectFormat resolves the output format, guessing from the output path
// extension when no format was given.
func selectFormat(format, outPath string) (string, error) {
	switch format {
	case "":
		switch strings.ToLower(filepath.Ext(outPath)) {
		case ".json":
			return formatJSON, nil
		default:
			return formatText, nil
		}
	case "text", "echotext":
		return formatText, nil
	case "json", "echojson":
		return formatJSON, nil
	}
	return "", fmt.Errorf("Unsupported output format %q (choose 'text' or 'json')", format)
}

func render(reg *schema.Registry, format string) (string, error) {
	if format == formatJSON {
		out, err := echojson.Marshal(reg, &echojson.Options{Indent: true})
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	}
	return echotext.Encode(reg), nil
}

// writeOutput writes output to outPath, or to stdout if outPath is empty.
func writeOutput(outPath, output string) error {
	if outPath == "" {
		_, err := os.Stdout.WriteString(output)
		return err
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	fp, err := os.OpenFile(outPath, openFlags, 0o666)
	if err != nil {
		return err
	}
	_, writeErr := fp.WriteString(output)
	closeErr := fp.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

// schemaBasename strips the directory and extension from a schema path.
func schemaBasename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
