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

// Mapping answers per-language questions about registered types for code
// generators. Methods report false when the language has no value for the
// type; callers must not substitute their own.
type Mapping struct {
	lang Language
	err  error
}

// Mapping returns the view for lang. An empty lang selects the registry's
// default language. If lang is not supported every query reports false
// and [Mapping.Err] returns an error matching [ErrUnsupportedLanguage].
func (r *Registry) Mapping(lang Language) Mapping {
	if lang == "" {
		lang = r.language
	}
	if !lang.Supported() {
		return Mapping{lang: lang, err: errUnsupportedLanguage(string(lang))}
	}
	return Mapping{lang: lang}
}

func (m Mapping) Language() Language {
	return m.lang
}

func (m Mapping) Err() error {
	return m.err
}

// Container is the name of the type's native representation. Enumerations
// and structures are represented by their own name.
func (m Mapping) Container(t Type) (string, bool) {
	if m.err != nil || t == nil {
		return "", false
	}
	if ext, ok := t.(*ExternalType); ok {
		return ext.Container(m.lang)
	}
	return t.Name(), true
}

func (m Mapping) Default(t Type) (string, bool) {
	if ext, ok := m.external(t); ok {
		return ext.Default(m.lang)
	}
	return "", false
}

func (m Mapping) Reader(t Type) (string, bool) {
	if ext, ok := m.external(t); ok {
		return ext.Reader(m.lang)
	}
	return "", false
}

func (m Mapping) Writer(t Type) (string, bool) {
	if ext, ok := m.external(t); ok {
		return ext.Writer(m.lang)
	}
	return "", false
}

func (m Mapping) external(t Type) (*ExternalType, bool) {
	if m.err != nil {
		return nil, false
	}
	ext, ok := t.(*ExternalType)
	return ext, ok
}
