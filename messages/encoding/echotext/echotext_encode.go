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

// Package echotext renders a compiled registry as indented text.
//
// The output is deterministic and intended for inspection and golden
// tests. Builtin types are omitted.
package echotext

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vicoslab/echolib/messages/schema"
)

func Encode(reg *schema.Registry) string {
	var buf strings.Builder
	EncodeTo(reg, &buf)
	return buf.String()
}

func EncodeTo(reg *schema.Registry, w io.Writer) error {
	e := encoder{w: w}
	e.visitRegistry(reg)
	return e.err
}

type encoder struct {
	w      io.Writer
	indent int
	err    error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("\t", e.indent); indent != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
		return
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) block(header string, body func()) {
	e.line(header + " {")
	e.indent += 1
	body()
	e.indent -= 1
	e.line("}")
}

func (e *encoder) visitRegistry(reg *schema.Registry) {
	if ns, ok := reg.Namespace(); ok {
		e.linef("namespace = %s", quote(ns))
	}
	e.linef("language = %s", reg.Language())
	for _, lang := range schema.Languages() {
		e.linef("sources %s = [", lang)
		e.indent += 1
		for _, source := range reg.Sources(lang) {
			e.line(quote(source))
		}
		e.indent -= 1
		e.line("]")
	}

	for typ := range reg.Types() {
		switch typ := typ.(type) {
		case *schema.ExternalType:
			if !typ.Builtin() {
				e.visitExternal(typ)
			}
		case *schema.EnumType:
			e.visitEnum(typ)
		case *schema.StructType:
			e.visitStruct(typ)
		}
	}
}

func (e *encoder) visitExternal(typ *schema.ExternalType) {
	e.block("external "+typ.Name(), func() {
		for _, lang := range schema.Languages() {
			e.block(string(lang), func() {
				attrs := []struct {
					name string
					get  func(schema.Language) (string, bool)
				}{
					{"container", typ.Container},
					{"default", typ.Default},
					{"reader", typ.Reader},
					{"writer", typ.Writer},
				}
				for _, attr := range attrs {
					if value, ok := attr.get(lang); ok {
						e.linef("%s = %s", attr.name, quote(value))
					}
				}
			})
		}
	})
}

func (e *encoder) visitEnum(typ *schema.EnumType) {
	e.block("enumerate "+typ.Name(), func() {
		e.linef("hash = %s", quote(typ.Hash()))
		for _, member := range typ.Members() {
			value, _ := typ.Value(member)
			e.linef("%s = %d", member, value)
		}
	})
}

func (e *encoder) visitStruct(typ *schema.StructType) {
	keyword := "structure"
	if typ.IsMessage() {
		keyword = "message"
	}
	e.block(keyword+" "+typ.Name(), func() {
		e.linef("hash = %s", quote(typ.Hash()))
		for _, field := range typ.Fields() {
			e.visitField(field)
		}
	})
}

func (e *encoder) visitField(field *schema.Field) {
	e.block("field "+field.Name, func() {
		typeName := field.Type.Name()
		switch {
		case field.Fixed:
			typeName = fmt.Sprintf("%s[%d]", typeName, field.Length)
		case field.Array:
			typeName += "[]"
		}
		e.linef("type = %s", typeName)
		if field.Default != nil {
			e.linef("default = %s", fmtValue(*field.Default))
		}
		if props := field.Properties; !props.Empty() {
			e.line("properties = [")
			e.indent += 1
			for _, arg := range props.Args {
				e.line(fmtValue(arg))
			}
			for _, kwarg := range props.Kwargs {
				e.linef("%s = %s", kwarg.Name, fmtValue(kwarg.Value))
			}
			e.indent -= 1
			e.line("]")
		}
	})
}

func fmtValue(value schema.Value) string {
	switch value.Kind() {
	case schema.ValueInt:
		return strconv.FormatInt(value.Int(), 10)
	case schema.ValueFloat:
		s := strconv.FormatFloat(value.Float(), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		return s
	case schema.ValueBool:
		if value.Bool() {
			return ".true"
		}
		return ".false"
	case schema.ValueText:
		return quote(value.Text())
	}
	return ""
}

func quote(text string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, c := range text {
		if c == '\\' || c == '"' {
			buf.WriteByte('\\')
			buf.WriteRune(c)
			continue
		}
		if c == '\t' {
			buf.WriteString("\\t")
			continue
		}
		if c == '\n' {
			buf.WriteString("\\n")
			continue
		}
		if c < 0x20 || c == 0x7F {
			fmt.Fprintf(&buf, "\\x%02X", c)
			continue
		}
		buf.WriteRune(c)
	}
	buf.WriteByte('"')
	return buf.String()
}
