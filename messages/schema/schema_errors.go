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
	"errors"
	"fmt"
)

var (
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	ErrUnresolvedType       = errors.New("unresolved type")
	ErrUnsupportedLanguage  = errors.New("unsupported language")

	// ErrSealed is returned by registrations on a sealed [Registry].
	ErrSealed = errors.New("registry is sealed")
)

// Error is a semantic (E3xxx) error raised while registering a
// declaration. It matches one of the package's sentinel errors with
// [errors.Is].
type Error struct {
	code    uint32
	message string
	kind    error
	decl    string
	member  string
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Is(target error) bool {
	return target == err.kind
}

// Decl is the name of the declaration being registered, if any.
func (err *Error) Decl() string {
	return err.decl
}

// Member is the field, enumeration member or language within Decl that
// caused the error, if any.
func (err *Error) Member() string {
	return err.member
}

func errNameConflict(name string) error {
	return &Error{
		code:    3010,
		message: fmt.Sprintf("Name '%s' already taken", name),
		kind:    ErrDuplicateDeclaration,
		decl:    name,
	}
}

func errDuplicateMember(enum, member string) error {
	return &Error{
		code:    3011,
		message: fmt.Sprintf("Duplicate member '%s' in enumerate '%s'", member, enum),
		kind:    ErrDuplicateDeclaration,
		decl:    enum,
		member:  member,
	}
}

func errDuplicateField(structName, field string) error {
	return &Error{
		code:    3012,
		message: fmt.Sprintf("Duplicate field '%s' in '%s'", field, structName),
		kind:    ErrDuplicateDeclaration,
		decl:    structName,
		member:  field,
	}
}

func errDuplicateLanguage(external, lang string) error {
	return &Error{
		code: 3013,
		message: fmt.Sprintf(
			"Duplicate declaration of language '%s' for external '%s'",
			lang, external,
		),
		kind:   ErrDuplicateDeclaration,
		decl:   external,
		member: lang,
	}
}

func errNamespaceConflict(prev, ns string) error {
	return &Error{
		code: 3014,
		message: fmt.Sprintf(
			"Namespace %q conflicts with earlier namespace %q",
			ns, prev,
		),
		kind: ErrDuplicateDeclaration,
	}
}

func errUnresolvedType(structName, field, typeName string) error {
	return &Error{
		code: 3020,
		message: fmt.Sprintf(
			"Unknown type '%s' of field '%s' in '%s'",
			typeName, field, structName,
		),
		kind:   ErrUnresolvedType,
		decl:   structName,
		member: field,
	}
}

func errUnsupportedLanguage(lang string) error {
	return &Error{
		code:    3030,
		message: fmt.Sprintf("Unknown language '%s'", lang),
		kind:    ErrUnsupportedLanguage,
		member:  lang,
	}
}

func errExternalUnsupportedLanguage(external, lang string) error {
	return &Error{
		code: 3030,
		message: fmt.Sprintf(
			"Unknown language '%s' for external '%s'",
			lang, external,
		),
		kind:   ErrUnsupportedLanguage,
		decl:   external,
		member: lang,
	}
}
