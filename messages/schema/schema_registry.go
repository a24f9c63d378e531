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
	"iter"
	"slices"
)

type RegistryOption interface {
	apply(*Registry)
}

type registryOption func(*Registry)

func (f registryOption) apply(r *Registry) { f(r) }

// WithLanguage sets the language selected by [Registry.Mapping] and
// [Registry.Sources] when called with an empty language. The default is
// [LanguageCpp].
func WithLanguage(lang Language) RegistryOption {
	return registryOption(func(r *Registry) {
		r.language = lang
	})
}

// Registry is the ordered set of types produced by one compilation.
//
// A new Registry contains the builtin types. Registrations fail once
// [Registry.Seal] has been called. A Registry is not safe for concurrent
// mutation.
type Registry struct {
	language Language

	types   map[string]Type
	ordered []Type
	enums   []*EnumType
	structs []*StructType
	msgs    []*StructType

	namespace    string
	hasNamespace bool

	sources   map[Language][]string
	files     []string
	processed map[string]struct{}

	sealed bool
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		language:  LanguageCpp,
		types:     make(map[string]Type),
		sources:   make(map[Language][]string, len(languages)),
		processed: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt.apply(r)
	}
	for _, b := range builtins() {
		r.addType(&ExternalType{
			name:       b.name,
			builtin:    true,
			containers: b.containers,
			defaults:   b.defaults,
			readers:    map[Language]string{},
			writers:    map[Language]string{},
		})
	}
	for lang, sources := range builtinSources() {
		r.addSources(lang, sources)
	}
	return r
}

// Language is the registry's default language.
func (r *Registry) Language() Language {
	return r.language
}

func (r *Registry) Seal() {
	r.sealed = true
}

func (r *Registry) Sealed() bool {
	return r.sealed
}

func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Types yields every registered type, builtins first, in registration
// order.
func (r *Registry) Types() iter.Seq[Type] {
	return slices.Values(r.ordered)
}

func (r *Registry) Enums() iter.Seq[*EnumType] {
	return slices.Values(r.enums)
}

// Structs yields structures and messages in registration order.
func (r *Registry) Structs() iter.Seq[*StructType] {
	return slices.Values(r.structs)
}

func (r *Registry) Messages() iter.Seq[*StructType] {
	return slices.Values(r.msgs)
}

func (r *Registry) Namespace() (string, bool) {
	return r.namespace, r.hasNamespace
}

// Files returns the canonical paths of processed schema files in the order
// they were first visited.
func (r *Registry) Files() []string {
	return slices.Clone(r.files)
}

// Sources returns the auxiliary sources (headers, modules) required by the
// registered types in the given language, without duplicates, in order of
// first occurrence. An empty lang selects the registry's default language.
func (r *Registry) Sources(lang Language) []string {
	if lang == "" {
		lang = r.language
	}
	return slices.Clone(r.sources[lang])
}

// MarkProcessed records path as processed. It reports false if path had
// already been recorded.
func (r *Registry) MarkProcessed(path string) (bool, error) {
	if r.sealed {
		return false, ErrSealed
	}
	if _, ok := r.processed[path]; ok {
		return false, nil
	}
	r.processed[path] = struct{}{}
	r.files = append(r.files, path)
	return true, nil
}

// SetNamespace stores the namespace of the compiled schemas. Declaring the
// same namespace again is accepted, a different one is an error matching
// [ErrDuplicateDeclaration].
func (r *Registry) SetNamespace(ns string) error {
	if r.sealed {
		return ErrSealed
	}
	if r.hasNamespace {
		if r.namespace != ns {
			return errNamespaceConflict(r.namespace, ns)
		}
		return nil
	}
	r.namespace = ns
	r.hasNamespace = true
	return nil
}

// AddExternal registers an external type. Its container defaults to the
// declared name in every language, explicit language bindings override it.
func (r *Registry) AddExternal(decl ExternalDecl) (*ExternalType, error) {
	if r.sealed {
		return nil, ErrSealed
	}
	if _, ok := r.types[decl.Name]; ok {
		return nil, errNameConflict(decl.Name)
	}

	t := &ExternalType{
		name:       decl.Name,
		containers: make(map[Language]string, len(languages)),
		defaults:   map[Language]string{},
		readers:    map[Language]string{},
		writers:    map[Language]string{},
	}
	for _, lang := range languages {
		t.containers[lang] = decl.Name
	}

	declared := make(map[Language]struct{}, len(decl.Languages))
	sources := make(map[Language][]string)
	for _, langDecl := range decl.Languages {
		lang := Language(langDecl.Language)
		if !lang.Supported() {
			return nil, errExternalUnsupportedLanguage(decl.Name, langDecl.Language)
		}
		if _, dup := declared[lang]; dup {
			return nil, errDuplicateLanguage(decl.Name, langDecl.Language)
		}
		declared[lang] = struct{}{}

		t.containers[lang] = langDecl.Container
		if langDecl.Default != "" {
			t.defaults[lang] = langDecl.Default
		}
		if langDecl.Reader != "" {
			t.readers[lang] = langDecl.Reader
		}
		if langDecl.Writer != "" {
			t.writers[lang] = langDecl.Writer
		}
		sources[lang] = append(sources[lang], langDecl.Sources...)
	}

	for _, lang := range languages {
		r.addSources(lang, sources[lang])
	}
	r.addType(t)
	return t, nil
}

// AddEnum registers an enumeration. Members are assigned the values 0 to
// n-1 in order.
func (r *Registry) AddEnum(name string, members []string) (*EnumType, error) {
	if r.sealed {
		return nil, ErrSealed
	}
	if _, ok := r.types[name]; ok {
		return nil, errNameConflict(name)
	}

	values := make(map[string]int, len(members))
	for ii, member := range members {
		if _, dup := values[member]; dup {
			return nil, errDuplicateMember(name, member)
		}
		values[member] = ii
	}
	t := &EnumType{
		name:    name,
		hash:    enumHash(members),
		members: slices.Clone(members),
		values:  values,
	}
	r.addType(t)
	r.enums = append(r.enums, t)
	return t, nil
}

// AddStruct registers a structure. Every field type must already be
// registered, otherwise the error matches [ErrUnresolvedType].
func (r *Registry) AddStruct(name string, fields []FieldDecl) (*StructType, error) {
	return r.addStruct(name, fields, false)
}

// AddMessage registers a message, which is a structure that may be
// published on its own.
func (r *Registry) AddMessage(name string, fields []FieldDecl) (*StructType, error) {
	return r.addStruct(name, fields, true)
}

func (r *Registry) addStruct(
	name string,
	decls []FieldDecl,
	message bool,
) (*StructType, error) {
	if r.sealed {
		return nil, ErrSealed
	}

	fields := make([]*Field, 0, len(decls))
	seen := make(map[string]struct{}, len(decls))
	for _, decl := range decls {
		if _, dup := seen[decl.Name]; dup {
			return nil, errDuplicateField(name, decl.Name)
		}
		seen[decl.Name] = struct{}{}

		fieldType, ok := r.types[decl.Type]
		if !ok {
			return nil, errUnresolvedType(name, decl.Name, decl.Type)
		}
		fields = append(fields, &Field{
			Name:       decl.Name,
			Type:       fieldType,
			Array:      decl.Array,
			Length:     decl.Length,
			Fixed:      decl.Array && decl.Fixed,
			Default:    decl.Default,
			Properties: decl.Properties,
		})
	}

	if _, ok := r.types[name]; ok {
		return nil, errNameConflict(name)
	}
	t := &StructType{
		name:    name,
		hash:    structHash(fields),
		message: message,
		fields:  fields,
	}
	r.addType(t)
	r.structs = append(r.structs, t)
	if message {
		r.msgs = append(r.msgs, t)
	}
	return t, nil
}

func (r *Registry) addType(t Type) {
	r.types[t.Name()] = t
	r.ordered = append(r.ordered, t)
}

func (r *Registry) addSources(lang Language, sources []string) {
	for _, source := range sources {
		if !slices.Contains(r.sources[lang], source) {
			r.sources[lang] = append(r.sources[lang], source)
		}
	}
}
