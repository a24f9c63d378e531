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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vicoslab/echolib/internal/config"
	"github.com/vicoslab/echolib/internal/testutil"
	"github.com/vicoslab/echolib/messages/compiler"
	"github.com/vicoslab/echolib/messages/schema"
)

func TestSelectFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		format  string
		outPath string
		want    string
	}{
		{"", "", formatText},
		{"", "out/geometry.txt", formatText},
		{"", "out/geometry.JSON", formatJSON},
		{"text", "geometry.json", formatText},
		{"echotext", "", formatText},
		{"json", "", formatJSON},
		{"echojson", "", formatJSON},
	}
	for _, test := range tests {
		got, err := selectFormat(test.format, test.outPath)
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, test.want, got)
	}

	_, err := selectFormat("binary", "")
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, `Unsupported output format "binary" (choose 'text' or 'json')`, err.Error())
}

func TestSchemaBasename(t *testing.T) {
	t.Parallel()
	testutil.ExpectEq(t, "geometry", schemaBasename(filepath.Join("msgs", "geometry.msg")))
	testutil.ExpectEq(t, "frame.v2", schemaBasename("frame.v2.msg"))
	testutil.ExpectEq(t, "plain", schemaBasename("plain"))
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.txt")
	testutil.AssertNoError(t, os.WriteFile(path, []byte("stale content that is longer"), 0o644))

	testutil.AssertNoError(t, writeOutput(path, "fresh\n"))
	got, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "fresh\n", string(got))

	err = writeOutput(filepath.Join(t.TempDir(), "missing", "out.txt"), "x")
	testutil.AssertError(t, err)
}

func testGlobals(cfg *config.Config) *globals {
	if cfg.Language == "" {
		cfg.Language = "cpp"
	}
	return &globals{cfg: cfg, log: zerolog.Nop()}
}

func TestCompileFlagsSearchPath(t *testing.T) {
	t.Parallel()
	library := testutil.WriteSchemas(t, map[string]string{
		"common.msg": "structure FromLibrary { int x; }\n",
	})
	project := testutil.WriteSchemas(t, map[string]string{
		"common.msg": "structure FromProject { int x; }\n",
		"root.msg":   "import \"common.msg\";\n",
	})

	g := testGlobals(&config.Config{LibraryPath: []string{library}})
	flags := compileFlags{searchDirs: []string{project}}
	opts, err := flags.options(g)
	testutil.AssertNoError(t, err)

	result, err := compiler.Compile("root.msg", opts...)
	testutil.AssertNoError(t, err)
	_, ok := result.Registry.Lookup("FromLibrary")
	testutil.ExpectTrue(t, ok)
	_, ok = result.Registry.Lookup("FromProject")
	testutil.ExpectFalse(t, ok)
}

func TestCompileFlagsLanguage(t *testing.T) {
	t.Parallel()
	g := testGlobals(&config.Config{Language: "python"})

	lang, err := (&compileFlags{}).schemaLanguage(g.cfg)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, schema.LanguagePython, lang)

	lang, err = (&compileFlags{language: "cpp"}).schemaLanguage(g.cfg)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, schema.LanguageCpp, lang)

	_, err = (&compileFlags{language: "rust"}).options(g)
	testutil.ExpectErrorIs(t, err, schema.ErrUnsupportedLanguage)

	_, err = (&compileFlags{namespacePolicy: "last-wins"}).options(g)
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, `Unsupported namespace policy "last-wins"`, err.Error())
}

func TestRender(t *testing.T) {
	t.Parallel()
	result, err := compiler.CompileSource("point.msg", []byte(
		"structure Point { float x; float y; }\n",
	))
	testutil.AssertNoError(t, err)

	text, err := render(result.Registry, formatText)
	testutil.AssertNoError(t, err)
	testutil.ExpectMatch(t, `(?m)^structure Point \{$`, text)

	doc, err := render(result.Registry, formatJSON)
	testutil.AssertNoError(t, err)
	testutil.ExpectMatch(t, `^\{\n\t"language": "cpp",`, doc)
	testutil.ExpectMatch(t, `\}\n$`, doc)
}
