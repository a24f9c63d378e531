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

package schema_test

import (
	"testing"

	"github.com/vicoslab/echolib/internal/testutil"
	"github.com/vicoslab/echolib/messages/schema"
)

func lookup(t *testing.T, reg *schema.Registry, name string) schema.Type {
	t.Helper()
	typ, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("type %q not registered", name)
	}
	return typ
}

func TestMappingBuiltins(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	tests := []struct {
		lang      schema.Language
		name      string
		container string
		def       string
		hasDef    bool
	}{
		{"cpp", "short", "int16_t", "0", true},
		{"python", "long", "echolib.long", "0", true},
		{"cpp", "float", "float", "0", true},
		{"cpp", "bool", "bool", "false", true},
		{"python", "bool", "bool", "False", true},
		{"cpp", "char", "char", `'\0'`, true},
		{"python", "string", "str", `""`, true},
		{"cpp", "timestamp", "std::chrono::system_clock::time_point", "", false},
		{"python", "header", "echolib.Header", "echolib.Header()", true},
		{"cpp", "tensor", "echolib::Array", "echolib::Tensor()", true},
		{"python", "array", "numpy.ndarray", "numpy.zeros((0,))", true},
	}
	for _, test := range tests {
		t.Run(string(test.lang)+"/"+test.name, func(t *testing.T) {
			mapping := reg.Mapping(test.lang)
			typ := lookup(t, reg, test.name)

			container, ok := mapping.Container(typ)
			testutil.ExpectTrue(t, ok)
			testutil.ExpectEq(t, test.container, container)

			def, ok := mapping.Default(typ)
			testutil.ExpectEq(t, test.hasDef, ok)
			testutil.ExpectEq(t, test.def, def)

			_, ok = mapping.Reader(typ)
			testutil.ExpectFalse(t, ok)
		})
	}
}

func TestMappingDefaultLanguage(t *testing.T) {
	t.Parallel()

	cpp := schema.NewRegistry()
	testutil.ExpectEq(t, schema.LanguageCpp, cpp.Mapping("").Language())

	python := schema.NewRegistry(schema.WithLanguage(schema.LanguagePython))
	container, ok := python.Mapping("").Container(lookup(t, python, "double"))
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "echolib.double", container)
	testutil.ExpectSliceEq(t, []string{"echolib", "datetime", "numpy"}, python.Sources(""))
}

func TestMappingUserTypes(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	_, err := reg.AddExternal(schema.ExternalDecl{
		Name: "Image",
		Languages: []schema.LanguageDecl{
			{
				Language:  "python",
				Container: "numpy.ndarray",
				Default:   "numpy.zeros((0, 0))",
				Reader:    "read_image(reader)",
				Writer:    "write_image(writer, obj)",
			},
		},
	})
	testutil.AssertNoError(t, err)
	_, err = reg.AddEnum("Mode", []string{"A", "B"})
	testutil.AssertNoError(t, err)
	_, err = reg.AddMessage("Frame", fields("Image", "image", "Mode", "mode"))
	testutil.AssertNoError(t, err)

	python := reg.Mapping(schema.LanguagePython)
	image := lookup(t, reg, "Image")
	reader, ok := python.Reader(image)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "read_image(reader)", reader)
	writer, ok := python.Writer(image)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "write_image(writer, obj)", writer)

	cpp := reg.Mapping(schema.LanguageCpp)
	_, ok = cpp.Reader(image)
	testutil.ExpectFalse(t, ok)
	_, ok = cpp.Default(image)
	testutil.ExpectFalse(t, ok)

	for _, name := range []string{"Mode", "Frame"} {
		typ := lookup(t, reg, name)
		for _, mapping := range []schema.Mapping{cpp, python} {
			container, ok := mapping.Container(typ)
			testutil.ExpectTrue(t, ok)
			testutil.ExpectEq(t, name, container)
			_, ok = mapping.Default(typ)
			testutil.ExpectFalse(t, ok)
			_, ok = mapping.Writer(typ)
			testutil.ExpectFalse(t, ok)
		}
	}
}

func TestMappingUnsupportedLanguage(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	mapping := reg.Mapping("java")
	testutil.ExpectErrorIs(t, mapping.Err(), schema.ErrUnsupportedLanguage)

	_, ok := mapping.Container(lookup(t, reg, "int"))
	testutil.ExpectFalse(t, ok)
	_, ok = mapping.Default(lookup(t, reg, "int"))
	testutil.ExpectFalse(t, ok)
	testutil.ExpectEq(t, 0, len(reg.Sources("java")))
}

func TestValueLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  schema.Value
		cpp    string
		python string
	}{
		{schema.IntValue(-42), "-42", "-42"},
		{schema.FloatValue(1.5), "1.5", "1.5"},
		{schema.FloatValue(0), "0", "0"},
		{schema.BoolValue(true), "true", "True"},
		{schema.BoolValue(false), "false", "False"},
		{schema.TextValue("pose\t\"1\""), `"pose\t\"1\""`, `"pose\t\"1\""`},
	}
	for _, test := range tests {
		t.Run(test.value.Kind().String(), func(t *testing.T) {
			testutil.ExpectEq(t, test.cpp, test.value.Literal(schema.LanguageCpp))
			testutil.ExpectEq(t, test.python, test.value.Literal(schema.LanguagePython))
		})
	}

	testutil.ExpectEq(t, any(int64(3)), schema.IntValue(3).Interface())
	testutil.ExpectEq(t, "<invalid>", schema.Value{}.String())
}
