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

// Package schema is the semantic model of compiled message schemas.
//
// A [Registry] holds every type visible to a compilation in declaration
// order: the builtin catalog, external types, enumerations, structures and
// messages. Each enumeration and structure carries a structural fingerprint
// computed by [Hash], and a [Mapping] answers per-language questions (the
// container type, default value, reader and writer) that code generators
// need for each type.
package schema

import (
	"slices"
)

// Language identifies a code generation target.
type Language string

const (
	LanguageCpp    Language = "cpp"
	LanguagePython Language = "python"
)

var languages = []Language{LanguageCpp, LanguagePython}

// Languages returns the supported target languages in their canonical
// order.
func Languages() []Language {
	return slices.Clone(languages)
}

// ParseLanguage returns the language named by s, or an error matching
// [ErrUnsupportedLanguage].
func ParseLanguage(s string) (Language, error) {
	lang := Language(s)
	if !lang.Supported() {
		return "", errUnsupportedLanguage(s)
	}
	return lang, nil
}

func (lang Language) Supported() bool {
	return slices.Contains(languages, lang)
}

func (lang Language) String() string {
	return string(lang)
}
