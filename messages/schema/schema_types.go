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
	"slices"
)

type Kind uint8

const (
	KindExternal Kind = iota + 1
	KindEnum
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindExternal:
		return "external"
	case KindEnum:
		return "enumerate"
	case KindStruct:
		return "structure"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Type is a named entry of a [Registry]. It is one of [*ExternalType],
// [*EnumType] or [*StructType].
type Type interface {
	Name() string
	Hash() string
	Kind() Kind

	isType()
}

// ExternalType is a type implemented outside of the schema language, such
// as a builtin scalar or a user-declared wrapper around a native class.
type ExternalType struct {
	name       string
	builtin    bool
	containers map[Language]string
	defaults   map[Language]string
	readers    map[Language]string
	writers    map[Language]string
}

var _ Type = (*ExternalType)(nil)

func (*ExternalType) isType() {}

func (t *ExternalType) Name() string {
	return t.name
}

// Hash of an external type is its name.
func (t *ExternalType) Hash() string {
	return t.name
}

func (*ExternalType) Kind() Kind {
	return KindExternal
}

// Builtin reports whether the type is part of the catalog preloaded into
// every [Registry].
func (t *ExternalType) Builtin() bool {
	return t.builtin
}

func (t *ExternalType) Container(lang Language) (string, bool) {
	s, ok := t.containers[lang]
	return s, ok
}

func (t *ExternalType) Default(lang Language) (string, bool) {
	s, ok := t.defaults[lang]
	return s, ok
}

func (t *ExternalType) Reader(lang Language) (string, bool) {
	s, ok := t.readers[lang]
	return s, ok
}

func (t *ExternalType) Writer(lang Language) (string, bool) {
	s, ok := t.writers[lang]
	return s, ok
}

type EnumType struct {
	name    string
	hash    string
	members []string
	values  map[string]int
}

var _ Type = (*EnumType)(nil)

func (*EnumType) isType() {}

func (t *EnumType) Name() string {
	return t.name
}

func (t *EnumType) Hash() string {
	return t.hash
}

func (*EnumType) Kind() Kind {
	return KindEnum
}

// Members returns the member names in declaration order.
func (t *EnumType) Members() []string {
	return slices.Clone(t.members)
}

// Value returns the integer value of a member, which is its index in
// declaration order.
func (t *EnumType) Value(member string) (int, bool) {
	v, ok := t.values[member]
	return v, ok
}

// StructType is a structure or, if IsMessage reports true, a message.
type StructType struct {
	name    string
	hash    string
	message bool
	fields  []*Field
}

var _ Type = (*StructType)(nil)

func (*StructType) isType() {}

func (t *StructType) Name() string {
	return t.name
}

func (t *StructType) Hash() string {
	return t.hash
}

func (*StructType) Kind() Kind {
	return KindStruct
}

func (t *StructType) IsMessage() bool {
	return t.message
}

// Fields returns the fields in declaration order.
func (t *StructType) Fields() []*Field {
	return slices.Clone(t.fields)
}

func (t *StructType) Field(name string) (*Field, bool) {
	for _, field := range t.fields {
		if field.Name == name {
			return field, true
		}
	}
	return nil, false
}

type Field struct {
	Name string
	Type Type

	// Array is set for both fixed and variable length arrays. Length is
	// meaningful only if Fixed is set.
	Array  bool
	Length int
	Fixed  bool

	Default    *Value
	Properties *Properties
}

// Properties are the positional and keyword values attached to a field or
// include. They are carried through to code generators uninterpreted.
type Properties struct {
	Args   []Value
	Kwargs []Property
}

type Property struct {
	Name  string
	Value Value
}

func (p *Properties) Empty() bool {
	return p == nil || (len(p.Args) == 0 && len(p.Kwargs) == 0)
}

// FieldDecl is an unresolved field, as passed to [Registry.AddStruct].
type FieldDecl struct {
	Name       string
	Type       string
	Array      bool
	Length     int
	Fixed      bool
	Default    *Value
	Properties *Properties
}

// ExternalDecl describes an external type and its per-language bindings, as
// passed to [Registry.AddExternal].
type ExternalDecl struct {
	Name      string
	Languages []LanguageDecl
}

// LanguageDecl binds an external type in one target language. Empty
// Default, Reader and Writer fields are absent.
type LanguageDecl struct {
	Language  string
	Container string
	Sources   []string
	Default   string
	Reader    string
	Writer    string
}
