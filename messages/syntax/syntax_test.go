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

package syntax_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/vicoslab/echolib/internal/testutil"
	"github.com/vicoslab/echolib/messages/syntax"
)

const exampleSchema = `# Example schema
namespace echolib.examples;

import "common.msg";
include "extra.msg" (1 : "two" : scale = 0.5);

external Image (
	language cpp "cv::Mat" from "opencv2/core.hpp" read "readMat(r, v)" write "writeMat(w, v)";
	language python "numpy.ndarray" default "numpy.zeros((0,))";
);

enumerate Mode { IDLE, RUNNING, STOPPED }

structure Point {
	float x;
	float y = 1.5;
}

message Pose {
	header h;
	Point[] trail;
	int[3] ids (unit = "m");
	bool valid = true;
	string name = "pose\t1";
	long stamp = -42;
}
`

func TestUnparseRoundTrip(t *testing.T) {
	t.Parallel()

	srcs := []string{
		"",
		"\n\n# only a comment\n",
		exampleSchema,
		"external Foo < language cpp \"foo_t\"; >;\r\n",
		"structure  S{float x;}message M{S[ ]s;}",
	}
	for ii, src := range srcs {
		t.Run(fmt.Sprintf("%d", ii), func(t *testing.T) {
			schema, err := syntax.Parse([]byte(src))
			testutil.AssertNoError(t, err)
			testutil.ExpectNoDiff(t, src, syntax.Unparse(schema))
			testutil.ExpectEq(t, uint32(len(src)), schema.Span().Len())
		})
	}
}

func TestDeclarations(t *testing.T) {
	t.Parallel()

	schema, err := syntax.Parse([]byte(exampleSchema))
	testutil.AssertNoError(t, err)

	var kinds []string
	for decl := range schema.Declarations() {
		kinds = append(kinds, fmt.Sprintf("%T", decl))
	}
	testutil.ExpectSliceEq(t, []string{
		"*syntax.Namespace",
		"*syntax.Import",
		"*syntax.Include",
		"*syntax.External",
		"*syntax.Enumerate",
		"*syntax.Structure",
		"*syntax.Message",
	}, kinds)

	decls := slices.Collect(schema.Declarations())

	namespace := decls[0].(*syntax.Namespace)
	testutil.ExpectEq(t, "echolib.examples", namespace.Name().Get())

	imp := decls[1].(*syntax.Import)
	testutil.ExpectEq(t, "common.msg", imp.File().Get())

	include := decls[2].(*syntax.Include)
	testutil.ExpectEq(t, "extra.msg", include.File().Get())
	args := slices.Collect(include.Properties().Args())
	testutil.ExpectEq(t, 2, len(args))
	testutil.ExpectEq(t, int64(1), args[0].(*syntax.IntLit).Get())
	testutil.ExpectEq(t, "two", args[1].(*syntax.TextLit).Get())
	kwargs := slices.Collect(include.Properties().Kwargs())
	testutil.ExpectEq(t, 1, len(kwargs))
	testutil.ExpectEq(t, "scale", kwargs[0].Name().Get())
	testutil.ExpectEq(t, 0.5, kwargs[0].Value().(*syntax.FloatLit).Get())

	external := decls[3].(*syntax.External)
	testutil.ExpectEq(t, "Image", external.Name().Get())
	languages := slices.Collect(external.Languages())
	testutil.ExpectEq(t, 2, len(languages))
	cpp := languages[0]
	testutil.ExpectEq(t, "cpp", cpp.Language().Get())
	testutil.ExpectEq(t, "cv::Mat", cpp.Container().Get())
	testutil.ExpectEq(t, 1, len(slices.Collect(cpp.Sources())))
	testutil.ExpectTrue(t, cpp.Default() == nil)
	testutil.ExpectEq(t, "readMat(r, v)", cpp.Read().Get())
	testutil.ExpectEq(t, "writeMat(w, v)", cpp.Write().Get())
	python := languages[1]
	testutil.ExpectEq(t, "numpy.zeros((0,))", python.Default().Get())
	testutil.ExpectTrue(t, python.Read() == nil)

	enum := decls[4].(*syntax.Enumerate)
	var members []string
	for member := range enum.Members() {
		members = append(members, member.Get())
	}
	testutil.ExpectSliceEq(t, []string{"IDLE", "RUNNING", "STOPPED"}, members)

	point := decls[5].(*syntax.Structure)
	testutil.ExpectEq(t, "Point", point.Name().Get())
	pointFields := slices.Collect(point.Fields())
	testutil.ExpectEq(t, 2, len(pointFields))
	testutil.ExpectTrue(t, pointFields[0].Default() == nil)
	testutil.ExpectEq(t, 1.5, pointFields[1].Default().(*syntax.FloatLit).Get())

	pose := decls[6].(*syntax.Message)
	fields := slices.Collect(pose.Fields())
	testutil.ExpectEq(t, 6, len(fields))

	testutil.ExpectEq(t, "trail", fields[1].Name().Get())
	testutil.ExpectTrue(t, fields[1].IsArray())
	testutil.ExpectTrue(t, fields[1].ArrayLen() == nil)

	testutil.ExpectEq(t, "int", fields[2].TypeName().Get())
	testutil.ExpectTrue(t, fields[2].IsArray())
	arrayLen, ok := fields[2].ArrayLen().GetUint32()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, uint32(3), arrayLen)
	testutil.ExpectTrue(t, fields[2].Properties() != nil)

	testutil.ExpectEq(t, true, fields[3].Default().(*syntax.BoolLit).Get())
	testutil.ExpectEq(t, "pose\t1", fields[4].Default().(*syntax.TextLit).Get())
	testutil.ExpectEq(t, int64(-42), fields[5].Default().(*syntax.IntLit).Get())
}

func TestWithoutTrivia(t *testing.T) {
	t.Parallel()

	schema, err := syntax.Parse([]byte(exampleSchema), syntax.WithoutTrivia())
	testutil.AssertNoError(t, err)

	syntax.Walk(schema, func(node syntax.Node) bool {
		switch node.(type) {
		case *syntax.Space, *syntax.Newline, *syntax.Comment:
			t.Errorf("unexpected trivia node %T", node)
		}
		return true
	})
	testutil.ExpectEq(t, 7, len(slices.Collect(schema.Declarations())))
}

func TestParseField(t *testing.T) {
	t.Parallel()

	opts := syntax.NewParseOptions()
	field, err := opts.ParseField([]byte("double[] samples (1 : rate = 100) = 0.;"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "double", field.TypeName().Get())
	testutil.ExpectEq(t, "samples", field.Name().Get())
	testutil.ExpectTrue(t, field.IsArray())
	testutil.ExpectEq(t, 0.0, field.Default().(*syntax.FloatLit).Get())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		code   uint32
		line   int
		column int
	}{
		{
			name: "missing semicolon after namespace",
			src:  "namespace a.b\nimport \"x.msg\";",
			code: 2000, line: 2, column: 1,
		},
		{
			name: "unknown declaration",
			src:  "\n\n  union U { }",
			code: 2018, line: 3, column: 3,
		},
		{
			name: "unexpected token at top level",
			src:  "structure S { float x; }\n;",
			code: 2017, line: 2, column: 1,
		},
		{
			name: "field without semicolon",
			src:  "structure S {\n\tfloat x\n}",
			code: 2000, line: 3, column: 1,
		},
		{
			name: "field without name",
			src:  "message M { float; }",
			code: 2015, line: 1, column: 18,
		},
		{
			name: "field type is not an identifier",
			src:  "message M { 5 x; }",
			code: 2019, line: 1, column: 13,
		},
		{
			name: "empty enumerate",
			src:  "enumerate E { }",
			code: 2015, line: 1, column: 15,
		},
		{
			name: "trailing comma in enumerate",
			src:  "enumerate E { A, }",
			code: 2015, line: 1, column: 18,
		},
		{
			name: "external without language block",
			src:  "external Foo;",
			code: 2026, line: 1, column: 13,
		},
		{
			name: "external language without keyword",
			src:  "external Foo ( cpp \"foo\"; );",
			code: 2016, line: 1, column: 16,
		},
		{
			name: "read without write",
			src:  "external Foo ( language cpp \"foo\" read \"r\"; );",
			code: 2016, line: 1, column: 43,
		},
		{
			name: "mismatched block sigils",
			src:  "external Foo ( language cpp \"foo\"; >;",
			code: 2016, line: 1, column: 36,
		},
		{
			name: "positional after keyword property",
			src:  "include \"a.msg\" (x = 1 : 2);",
			code: 2024, line: 1, column: 26,
		},
		{
			name: "negative array length",
			src:  "structure S { int[-1] xs; }",
			code: 2025, line: 1, column: 19,
		},
		{
			name: "default is not a value",
			src:  "structure S { int x = y; }",
			code: 2020, line: 1, column: 23,
		},
		{
			name: "integer out of range",
			src:  "structure S { long x = 99999999999999999999; }",
			code: 2021, line: 1, column: 24,
		},
		{
			name: "invalid escape",
			src:  "import \"a\\qb\";",
			code: 2023, line: 1, column: 8,
		},
		{
			name: "lexical error position",
			src:  "structure S {\n\tfloat x = 1;\n\tfloat y = $;\n}",
			code: 1002, line: 3, column: 12,
		},
		{
			name: "column counts code points",
			src:  "structure S {\n\tstring s = \"é\" }",
			code: 2000, line: 2, column: 17,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := syntax.Parse([]byte(test.src))
			testutil.AssertError(t, err)

			parseErr, ok := err.(*syntax.Error)
			if !ok {
				t.Fatalf("expected *syntax.Error, got %T: %v", err, err)
			}
			testutil.ExpectEq(t, test.code, parseErr.Code())
			testutil.ExpectEq(t, syntax.Position{
				Line:   test.line,
				Column: test.column,
			}, parseErr.Position())
		})
	}
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	_, err := syntax.Parse([]byte("import x;"))
	testutil.AssertError(t, err)
	testutil.ExpectEq(
		t,
		`E2014: line 1, column 8: Expected text literal, got (IDENT "x")`,
		err.Error(),
	)
}

func TestLocate(t *testing.T) {
	t.Parallel()

	src := []byte("ab\ncd\n\nef")
	tests := []struct {
		offset uint32
		want   syntax.Position
	}{
		{0, syntax.Position{Line: 1, Column: 1}},
		{2, syntax.Position{Line: 1, Column: 3}},
		{3, syntax.Position{Line: 2, Column: 1}},
		{7, syntax.Position{Line: 4, Column: 1}},
		{100, syntax.Position{Line: 4, Column: 3}},
	}
	for _, test := range tests {
		testutil.ExpectEq(t, test.want, syntax.Locate(src, test.offset))
	}
}

func TestDumpNamespace(t *testing.T) {
	t.Parallel()

	opts := syntax.NewParseOptions()
	namespace, err := opts.ParseNamespace([]byte("namespace a.b;"))
	testutil.AssertNoError(t, err)

	want := `{"namespace": {
    "span": {"start": 0, "len": 14},
    "child-nodes": [
        {"keyword": {
            "span": {"start": 0, "len": 9},
            "unparse": "namespace"}},
        {"space": {
            "span": {"start": 9, "len": 1},
            "unparse": " "}},
        {"dotted-name": {
            "span": {"start": 10, "len": 3},
            "child-nodes": [
                {"ident": {
                    "span": {"start": 10, "len": 1},
                    "value": "a"}},
                {"sigil": {
                    "span": {"start": 11, "len": 1},
                    "unparse": "."}},
                {"ident": {
                    "span": {"start": 12, "len": 1},
                    "value": "b"}}
            ]}},
        {"sigil": {
            "span": {"start": 13, "len": 1},
            "unparse": ";"}}
    ]}}`
	testutil.ExpectNoDiff(t, want, string(testutil.DumpJSON(namespace)))
}
