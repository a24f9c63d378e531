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

// Package echojson renders a compiled registry as the JSON document handed
// to code generators.
package echojson

import (
	"github.com/goccy/go-json"

	"github.com/vicoslab/echolib/messages/schema"
)

type Document struct {
	Namespace string              `json:"namespace,omitempty"`
	Language  string              `json:"language"`
	Files     []string            `json:"files"`
	Sources   map[string][]string `json:"sources"`
	Types     []Type              `json:"types"`
	Enums     []Enum              `json:"enums"`
	Structs   []Struct            `json:"structs"`
	Messages  []string            `json:"messages"`
}

type Type struct {
	Name    string             `json:"name"`
	Kind    string             `json:"kind"`
	Hash    string             `json:"hash"`
	Builtin bool               `json:"builtin,omitempty"`
	Mapping map[string]Mapping `json:"mapping"`
}

// Mapping holds the per-language attributes of a type. Absent attributes
// are omitted rather than empty.
type Mapping struct {
	Container string  `json:"container"`
	Default   *string `json:"default,omitempty"`
	Reader    *string `json:"reader,omitempty"`
	Writer    *string `json:"writer,omitempty"`
}

type Enum struct {
	Name    string   `json:"name"`
	Hash    string   `json:"hash"`
	Members []Member `json:"members"`
}

type Member struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Struct struct {
	Name    string  `json:"name"`
	Hash    string  `json:"hash"`
	Message bool    `json:"message"`
	Fields  []Field `json:"fields"`
}

type Field struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Array      bool        `json:"array"`
	Length     *int        `json:"length,omitempty"`
	Default    *Value      `json:"default,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
}

// Value is a schema literal. Literal holds its rendering in each supported
// language.
type Value struct {
	Kind    string            `json:"kind"`
	Value   any               `json:"value"`
	Literal map[string]string `json:"literal"`
}

type Properties struct {
	Args   []Value    `json:"args,omitempty"`
	Kwargs []Property `json:"kwargs,omitempty"`
}

type Property struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

type Options struct {
	// Indent pretty-prints the document with tab indentation.
	Indent bool
}

func Marshal(reg *schema.Registry, opts *Options) ([]byte, error) {
	doc := Build(reg)
	if opts != nil && opts.Indent {
		return json.MarshalIndent(doc, "", "\t")
	}
	return json.Marshal(doc)
}

func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Build converts a registry to its document form.
func Build(reg *schema.Registry) *Document {
	doc := &Document{
		Language: string(reg.Language()),
		Files:    reg.Files(),
		Sources:  make(map[string][]string),
		Types:    []Type{},
		Enums:    []Enum{},
		Structs:  []Struct{},
		Messages: []string{},
	}
	if doc.Files == nil {
		doc.Files = []string{}
	}
	if ns, ok := reg.Namespace(); ok {
		doc.Namespace = ns
	}
	for _, lang := range schema.Languages() {
		doc.Sources[string(lang)] = reg.Sources(lang)
	}

	for typ := range reg.Types() {
		doc.Types = append(doc.Types, buildType(reg, typ))
	}
	for enum := range reg.Enums() {
		doc.Enums = append(doc.Enums, buildEnum(enum))
	}
	for st := range reg.Structs() {
		doc.Structs = append(doc.Structs, buildStruct(st))
	}
	for msg := range reg.Messages() {
		doc.Messages = append(doc.Messages, msg.Name())
	}
	return doc
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}

func buildType(reg *schema.Registry, typ schema.Type) Type {
	out := Type{
		Name:    typ.Name(),
		Kind:    typ.Kind().String(),
		Hash:    typ.Hash(),
		Mapping: make(map[string]Mapping),
	}
	if ext, ok := typ.(*schema.ExternalType); ok {
		out.Builtin = ext.Builtin()
	}
	for _, lang := range schema.Languages() {
		mapping := reg.Mapping(lang)
		container, _ := mapping.Container(typ)
		out.Mapping[string(lang)] = Mapping{
			Container: container,
			Default:   optional(mapping.Default(typ)),
			Reader:    optional(mapping.Reader(typ)),
			Writer:    optional(mapping.Writer(typ)),
		}
	}
	return out
}

func buildEnum(enum *schema.EnumType) Enum {
	out := Enum{
		Name: enum.Name(),
		Hash: enum.Hash(),
	}
	for _, member := range enum.Members() {
		value, _ := enum.Value(member)
		out.Members = append(out.Members, Member{Name: member, Value: value})
	}
	return out
}

func buildStruct(st *schema.StructType) Struct {
	out := Struct{
		Name:    st.Name(),
		Hash:    st.Hash(),
		Message: st.IsMessage(),
		Fields:  []Field{},
	}
	for _, field := range st.Fields() {
		f := Field{
			Name:  field.Name,
			Type:  field.Type.Name(),
			Array: field.Array,
		}
		if field.Fixed {
			length := field.Length
			f.Length = &length
		}
		if field.Default != nil {
			value := buildValue(*field.Default)
			f.Default = &value
		}
		if props := field.Properties; !props.Empty() {
			f.Properties = &Properties{}
			for _, arg := range props.Args {
				f.Properties.Args = append(f.Properties.Args, buildValue(arg))
			}
			for _, kwarg := range props.Kwargs {
				f.Properties.Kwargs = append(f.Properties.Kwargs, Property{
					Name:  kwarg.Name,
					Value: buildValue(kwarg.Value),
				})
			}
		}
		out.Fields = append(out.Fields, f)
	}
	return out
}

func buildValue(value schema.Value) Value {
	literal := make(map[string]string)
	for _, lang := range schema.Languages() {
		literal[string(lang)] = value.Literal(lang)
	}
	return Value{
		Kind:    value.Kind().String(),
		Value:   value.Interface(),
		Literal: literal,
	}
}
