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
	"errors"
	"slices"
	"testing"

	"github.com/vicoslab/echolib/internal/testutil"
	"github.com/vicoslab/echolib/messages/schema"
)

func TestBuiltinCatalog(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	var names []string
	for typ := range reg.Types() {
		names = append(names, typ.Name())
		testutil.ExpectEq(t, schema.KindExternal, typ.Kind())
		testutil.ExpectEq(t, typ.Name(), typ.Hash())
		testutil.ExpectTrue(t, typ.(*schema.ExternalType).Builtin())
	}
	testutil.ExpectSliceEq(t, []string{
		"short", "int", "long", "float", "double", "bool", "char",
		"string", "timestamp", "header", "array", "tensor",
	}, names)

	testutil.ExpectSliceEq(t, []string{
		"vector", "chrono", "echolib/datatypes.h", "echolib/array.h",
	}, reg.Sources(schema.LanguageCpp))
	testutil.ExpectSliceEq(t, []string{
		"echolib", "datetime", "numpy",
	}, reg.Sources(schema.LanguagePython))
}

func TestEnumValues(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	mode, err := reg.AddEnum("Mode", []string{"IDLE", "RUNNING", "STOPPED"})
	testutil.AssertNoError(t, err)

	for ii, member := range mode.Members() {
		value, ok := mode.Value(member)
		testutil.ExpectTrue(t, ok)
		testutil.ExpectEq(t, ii, value)
	}
	_, ok := mode.Value("PAUSED")
	testutil.ExpectFalse(t, ok)

	enums := slices.Collect(reg.Enums())
	testutil.ExpectEq(t, 1, len(enums))
	testutil.ExpectEq(t, mode, enums[0])
}

func TestDuplicateEnumMember(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	_, err := reg.AddEnum("Mode", []string{"A", "B", "A"})
	testutil.ExpectErrorIs(t, err, schema.ErrDuplicateDeclaration)
	_, ok := reg.Lookup("Mode")
	testutil.ExpectFalse(t, ok)
}

func TestFieldOrder(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	decls := fields("int", "c", "float", "a", "string", "b")
	st, err := reg.AddStruct("S", decls)
	testutil.AssertNoError(t, err)

	var got []string
	for _, field := range st.Fields() {
		got = append(got, field.Name+":"+field.Type.Name())
	}
	testutil.ExpectSliceEq(t, []string{"c:int", "a:float", "b:string"}, got)

	field, ok := st.Field("a")
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, schema.KindExternal, field.Type.Kind())
}

func TestDuplicateField(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	_, err := reg.AddStruct("S", fields("int", "x", "float", "x"))
	testutil.ExpectErrorIs(t, err, schema.ErrDuplicateDeclaration)

	schemaErr := testutil.AssertErrorAs[*schema.Error](t, err)
	testutil.ExpectEq(t, "S", schemaErr.Decl())
	testutil.ExpectEq(t, "x", schemaErr.Member())
}

func TestMessages(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	point, err := reg.AddStruct("Point", fields("float", "x", "float", "y"))
	testutil.AssertNoError(t, err)
	pose, err := reg.AddMessage("Pose", fields("header", "h", "Point", "p"))
	testutil.AssertNoError(t, err)

	testutil.ExpectFalse(t, point.IsMessage())
	testutil.ExpectTrue(t, pose.IsMessage())
	testutil.ExpectSliceEq(t, []*schema.StructType{point, pose}, slices.Collect(reg.Structs()))
	testutil.ExpectSliceEq(t, []*schema.StructType{pose}, slices.Collect(reg.Messages()))

	p, _ := pose.Field("p")
	testutil.ExpectEq(t, schema.Type(point), p.Type)
}

func TestUnresolvedType(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	_, err := reg.AddStruct("Pose", fields("float", "x", "Quaternion", "rotation"))
	testutil.ExpectErrorIs(t, err, schema.ErrUnresolvedType)

	schemaErr := testutil.AssertErrorAs[*schema.Error](t, err)
	testutil.ExpectEq(t, uint32(3020), schemaErr.Code())
	testutil.ExpectEq(t, "Pose", schemaErr.Decl())
	testutil.ExpectEq(t, "rotation", schemaErr.Member())
	testutil.ExpectMatch(t, `'Quaternion'.*'rotation'.*'Pose'`, err.Error())

	_, ok := reg.Lookup("Pose")
	testutil.ExpectFalse(t, ok)
}

func TestSelfReference(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	_, err := reg.AddStruct("Node", fields("Node", "next"))
	testutil.ExpectErrorIs(t, err, schema.ErrUnresolvedType)
}

func TestNameConflict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		add  func(*schema.Registry) error
	}{
		{"enum shadows builtin", func(reg *schema.Registry) error {
			_, err := reg.AddEnum("int", []string{"A"})
			return err
		}},
		{"struct shadows builtin", func(reg *schema.Registry) error {
			_, err := reg.AddStruct("string", nil)
			return err
		}},
		{"external shadows builtin", func(reg *schema.Registry) error {
			_, err := reg.AddExternal(schema.ExternalDecl{Name: "header"})
			return err
		}},
		{"message shadows struct", func(reg *schema.Registry) error {
			if _, err := reg.AddStruct("Point", nil); err != nil {
				return err
			}
			_, err := reg.AddMessage("Point", nil)
			return err
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.add(schema.NewRegistry())
			testutil.ExpectErrorIs(t, err, schema.ErrDuplicateDeclaration)
			testutil.ExpectFalse(t, errors.Is(err, schema.ErrUnresolvedType))
		})
	}
}

func TestNamespace(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	_, ok := reg.Namespace()
	testutil.ExpectFalse(t, ok)

	testutil.AssertNoError(t, reg.SetNamespace("echolib.examples"))
	testutil.AssertNoError(t, reg.SetNamespace("echolib.examples"))
	err := reg.SetNamespace("other")
	testutil.ExpectErrorIs(t, err, schema.ErrDuplicateDeclaration)

	ns, ok := reg.Namespace()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "echolib.examples", ns)
}

func TestExternal(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	image, err := reg.AddExternal(schema.ExternalDecl{
		Name: "Image",
		Languages: []schema.LanguageDecl{
			{
				Language:  "cpp",
				Container: "cv::Mat",
				Sources:   []string{"opencv2/core.hpp", "vector"},
				Reader:    "readMat(r, v)",
				Writer:    "writeMat(w, v)",
			},
		},
	})
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "Image", image.Hash())
	testutil.ExpectFalse(t, image.Builtin())

	container, ok := image.Container(schema.LanguageCpp)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "cv::Mat", container)

	// Languages without an explicit binding use the declared name.
	container, ok = image.Container(schema.LanguagePython)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "Image", container)

	_, ok = image.Default(schema.LanguageCpp)
	testutil.ExpectFalse(t, ok)

	testutil.ExpectSliceEq(t, []string{
		"vector", "chrono", "echolib/datatypes.h", "echolib/array.h",
		"opencv2/core.hpp",
	}, reg.Sources(schema.LanguageCpp))
}

func TestExternalDuplicateLanguage(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	_, err := reg.AddExternal(schema.ExternalDecl{
		Name: "Foo",
		Languages: []schema.LanguageDecl{
			{Language: "cpp", Container: "foo_t"},
			{Language: "cpp", Container: "bar_t"},
		},
	})
	testutil.ExpectErrorIs(t, err, schema.ErrDuplicateDeclaration)
	_, ok := reg.Lookup("Foo")
	testutil.ExpectFalse(t, ok)
}

func TestExternalUnsupportedLanguage(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	_, err := reg.AddExternal(schema.ExternalDecl{
		Name: "Foo",
		Languages: []schema.LanguageDecl{
			{Language: "rust", Container: "Foo", Sources: []string{"foo"}},
		},
	})
	testutil.ExpectErrorIs(t, err, schema.ErrUnsupportedLanguage)
	testutil.ExpectFalse(t, slices.Contains(reg.Sources(schema.LanguageCpp), "foo"))
}

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	lang, err := schema.ParseLanguage("python")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, schema.LanguagePython, lang)

	_, err = schema.ParseLanguage("java")
	testutil.ExpectErrorIs(t, err, schema.ErrUnsupportedLanguage)
	testutil.ExpectSliceEq(t, []schema.Language{"cpp", "python"}, schema.Languages())
}

func TestMarkProcessed(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	first, err := reg.MarkProcessed("/a.msg")
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, first)

	first, err = reg.MarkProcessed("/a.msg")
	testutil.AssertNoError(t, err)
	testutil.ExpectFalse(t, first)

	_, err = reg.MarkProcessed("/b.msg")
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"/a.msg", "/b.msg"}, reg.Files())
}

func TestSealed(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	reg.Seal()
	testutil.ExpectTrue(t, reg.Sealed())

	_, err := reg.AddEnum("E", []string{"A"})
	testutil.ExpectErrorIs(t, err, schema.ErrSealed)
	_, err = reg.AddStruct("S", nil)
	testutil.ExpectErrorIs(t, err, schema.ErrSealed)
	_, err = reg.AddMessage("M", nil)
	testutil.ExpectErrorIs(t, err, schema.ErrSealed)
	_, err = reg.AddExternal(schema.ExternalDecl{Name: "X"})
	testutil.ExpectErrorIs(t, err, schema.ErrSealed)
	testutil.ExpectErrorIs(t, reg.SetNamespace("ns"), schema.ErrSealed)
	_, err = reg.MarkProcessed("/a.msg")
	testutil.ExpectErrorIs(t, err, schema.ErrSealed)
}
