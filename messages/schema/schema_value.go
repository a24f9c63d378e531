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

package schema

import (
	"fmt"
	"strconv"
)

type ValueKind uint8

const (
	ValueInt ValueKind = iota + 1
	ValueFloat
	ValueBool
	ValueText
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueBool:
		return "bool"
	case ValueText:
		return "text"
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// Value is a literal from a schema, used for field defaults and property
// values. The zero Value is invalid.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
}

func IntValue(v int64) Value {
	return Value{kind: ValueInt, i: v}
}

func FloatValue(v float64) Value {
	return Value{kind: ValueFloat, f: v}
}

func BoolValue(v bool) Value {
	return Value{kind: ValueBool, b: v}
}

func TextValue(v string) Value {
	return Value{kind: ValueText, s: v}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) Int() int64 {
	return v.i
}

func (v Value) Float() float64 {
	return v.f
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Text() string {
	return v.s
}

// Interface returns the value as an int64, float64, bool or string.
func (v Value) Interface() any {
	switch v.kind {
	case ValueInt:
		return v.i
	case ValueFloat:
		return v.f
	case ValueBool:
		return v.b
	case ValueText:
		return v.s
	}
	return nil
}

// Literal renders the value as a source literal of the given language.
func (v Value) Literal(lang Language) string {
	switch v.kind {
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueBool:
		if lang == LanguagePython {
			if v.b {
				return "True"
			}
			return "False"
		}
		return strconv.FormatBool(v.b)
	case ValueText:
		return strconv.Quote(v.s)
	}
	return ""
}

func (v Value) String() string {
	switch v.kind {
	case ValueInt, ValueFloat, ValueBool, ValueText:
		return v.Literal(LanguageCpp)
	}
	return "<invalid>"
}
