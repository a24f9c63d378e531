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
	"errors"
	"fmt"

	"github.com/vicoslab/echolib/messages/schema"
	"github.com/vicoslab/echolib/messages/syntax"
)

var (
	// ErrSyntax matches lexical and grammar errors in any compiled file.
	ErrSyntax = errors.New("syntax error")

	// ErrMissingFile matches imports and includes that could not be found
	// on the search path, and missing root files.
	ErrMissingFile = errors.New("missing file")

	ErrUnresolvedType       = schema.ErrUnresolvedType
	ErrDuplicateDeclaration = schema.ErrDuplicateDeclaration
	ErrUnsupportedLanguage  = schema.ErrUnsupportedLanguage
)

// Error is a compilation failure, located in the file where it originated.
// Nested errors from imported files are returned unchanged, so File names
// the imported file rather than the importer.
type Error struct {
	code     uint32
	message  string
	kind     error
	cause    error
	file     string
	span     syntax.Span
	position syntax.Position
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	switch {
	case err.file == "":
		return fmt.Sprintf("E%d: %s", err.code, err.message)
	case err.position.Line == 0:
		return fmt.Sprintf("%s: E%d: %s", err.file, err.code, err.message)
	}
	return fmt.Sprintf(
		"%s:%d:%d: E%d: %s",
		err.file, err.position.Line, err.position.Column,
		err.code, err.message,
	)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

// File is the path of the schema file containing the error. It is empty
// if the root file itself could not be found.
func (err *Error) File() string {
	return err.file
}

func (err *Error) Span() syntax.Span {
	return err.span
}

func (err *Error) Position() syntax.Position {
	return err.position
}

func (err *Error) Is(target error) bool {
	return err.kind != nil && target == err.kind
}

func (err *Error) Unwrap() error {
	return err.cause
}

// sourceFile is a schema file being compiled.
type sourceFile struct {
	path string
	src  []byte
}

func (f *sourceFile) locate(err *Error, span syntax.Span) *Error {
	err.file = f.path
	err.span = span
	err.position = syntax.Locate(f.src, span.Start())
	return err
}

func errSyntax(file *sourceFile, cause *syntax.Error) error {
	return &Error{
		code:     cause.Code(),
		message:  cause.Message(),
		kind:     ErrSyntax,
		cause:    cause,
		file:     file.path,
		span:     cause.Span(),
		position: cause.Position(),
	}
}

func errSchema(file *sourceFile, cause *schema.Error, span syntax.Span) error {
	return file.locate(&Error{
		code:    cause.Code(),
		message: cause.Message(),
		cause:   cause,
	}, span)
}

func errMissingFile(name string, searchPath []string) *Error {
	return &Error{
		code:    3000,
		message: fmt.Sprintf("File %q does not exist in search path %q", name, searchPath),
		kind:    ErrMissingFile,
	}
}

func errMissingAbsFile(name string) *Error {
	return &Error{
		code:    3000,
		message: fmt.Sprintf("File %q does not exist", name),
		kind:    ErrMissingFile,
	}
}

func errReadFile(path string, cause error) *Error {
	return &Error{
		code:    3001,
		message: fmt.Sprintf("Failed to read %q: %v", path, cause),
		cause:   cause,
	}
}
