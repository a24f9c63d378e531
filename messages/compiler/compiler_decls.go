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

package compiler

import (
	"iter"

	"github.com/vicoslab/echolib/messages/schema"
	"github.com/vicoslab/echolib/messages/syntax"
)

func convertFields(fields iter.Seq[*syntax.Field]) []schema.FieldDecl {
	var out []schema.FieldDecl
	for field := range fields {
		decl := schema.FieldDecl{
			Name:       field.Name().Get(),
			Type:       field.TypeName().Get(),
			Array:      field.IsArray(),
			Properties: convertProperties(field.Properties()),
		}
		if arrayLen := field.ArrayLen(); arrayLen != nil {
			length, _ := arrayLen.GetUint32()
			decl.Length = int(length)
			decl.Fixed = true
		}
		if def := field.Default(); def != nil {
			value := convertValue(def)
			decl.Default = &value
		}
		out = append(out, decl)
	}
	return out
}

func convertValue(value syntax.Value) schema.Value {
	switch value := value.(type) {
	case *syntax.IntLit:
		return schema.IntValue(value.Get())
	case *syntax.FloatLit:
		return schema.FloatValue(value.Get())
	case *syntax.BoolLit:
		return schema.BoolValue(value.Get())
	case *syntax.TextLit:
		return schema.TextValue(value.Get())
	}
	panic("unreachable")
}

func convertProperties(props *syntax.PropertyList) *schema.Properties {
	if props == nil {
		return nil
	}
	out := &schema.Properties{}
	for arg := range props.Args() {
		out.Args = append(out.Args, convertValue(arg))
	}
	for kwarg := range props.Kwargs() {
		out.Kwargs = append(out.Kwargs, schema.Property{
			Name:  kwarg.Name().Get(),
			Value: convertValue(kwarg.Value()),
		})
	}
	return out
}

func convertLanguageSpec(spec *syntax.LanguageSpec) schema.LanguageDecl {
	decl := schema.LanguageDecl{
		Language:  spec.Language().Get(),
		Container: spec.Container().Get(),
	}
	for source := range spec.Sources() {
		decl.Sources = append(decl.Sources, source.Get())
	}
	if def := spec.Default(); def != nil {
		decl.Default = def.Get()
	}
	if read := spec.Read(); read != nil {
		decl.Reader = read.Get()
	}
	if write := spec.Write(); write != nil {
		decl.Writer = write.Get()
	}
	return decl
}
