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

package syntax

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Error is a lexical (E1xxx) or grammatical (E2xxx) error. Errors returned
// from [Parse] carry the line and column of the offending token.
type Error struct {
	code     uint32
	message  string
	span     Span
	position Position
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	if err.position.Line == 0 {
		return fmt.Sprintf("E%d: %s", err.code, err.message)
	}
	return fmt.Sprintf("E%d: %s: %s", err.code, err.position, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() Span {
	return err.span
}

// Position is the zero value if the error was produced by [Tokens.Next]
// directly rather than through [Parse].
func (err *Error) Position() Position {
	return err.position
}

func locateError(err error, src []byte) error {
	if syntaxErr, ok := err.(*Error); ok && syntaxErr.position.Line == 0 {
		syntaxErr.position = Locate(src, syntaxErr.span.start)
	}
	return err
}

func errSourceTooLong(srcLen int) error {
	lenUint32 := uint32(math.MaxUint32)
	if uint64(srcLen) < math.MaxUint32 {
		lenUint32 = uint32(srcLen)
	}
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source file size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		span: Span{0, lenUint32},
	}
}

func errInvalidUtf8(src []byte) error {
	var off uint32
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError {
			break
		}
		off += uint32(size)
		src = src[size:]
	}
	return &Error{
		code:    1001,
		message: "Source file contains invalid UTF-8",
		span:    Span{off, 1},
	}
}

func errUnexpectedCharacter(start uint32, r rune) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Unexpected character '%s' (U+%04X)", string(r), r),
		span:    Span{start, uint32(utf8.RuneLen(r))},
	}
}

func errForbiddenControlCharacter(start uint32, c byte) error {
	return &Error{
		code:    1003,
		message: fmt.Sprintf("Forbidden control character U+%04X", c),
		span:    Span{start, 1},
	}
}

func errTokenTooLong(start uint32, tokenLen int) error {
	lenUint32 := uint32(math.MaxUint32)
	if uint64(tokenLen) < math.MaxUint32 {
		lenUint32 = uint32(tokenLen)
	}
	return &Error{
		code: 1004,
		message: fmt.Sprintf(
			"Token size (%d bytes) exceeds maximum (%d bytes)",
			tokenLen, maxTokenLen,
		),
		span: Span{start, lenUint32},
	}
}

func errNumLitInvalid(start uint32, token []byte) error {
	return &Error{
		code:    1005,
		message: fmt.Sprintf("Invalid numeric literal %q", token),
		span:    Span{start, uint32(len(token))},
	}
}

func errTextLitUnterminated(start, tokenLen uint32) error {
	return &Error{
		code:    1006,
		message: "Unterminated text literal",
		span:    Span{start, tokenLen},
	}
}

func errTextLitContainsNewline(start, newlineLen uint32) error {
	return &Error{
		code:    1007,
		message: "Text literal contains unescaped newline",
		span:    Span{start, newlineLen},
	}
}

// expectedSigils maps each sigil the parser may require to its error code
// and source text.
var expectedSigils = map[TokenKind]struct {
	code uint32
	text string
}{
	T_SEMICOLON:    {2000, ";"},
	T_COLON:        {2001, ":"},
	T_COMMA:        {2002, ","},
	T_DOT:          {2003, "."},
	T_EQ:           {2004, "="},
	T_OPEN_CURL:    {2005, "{"},
	T_CLOSE_CURL:   {2006, "}"},
	T_OPEN_PAREN:   {2007, "("},
	T_CLOSE_PAREN:  {2008, ")"},
	T_OPEN_SQUARE:  {2009, "["},
	T_CLOSE_SQUARE: {2010, "]"},
	T_OPEN_ANGLE:   {2011, "<"},
	T_CLOSE_ANGLE:  {2012, ">"},
}

// errExpected reports that the token at span is not what the grammar
// requires at that point.
func errExpected(code uint32, want string, gotKind TokenKind, gotToken string, span Span) error {
	return &Error{
		code:    code,
		message: fmt.Sprintf("Expected %s, got (%s %q)", want, gotKind, gotToken),
		span:    span,
	}
}

func errExpectedSigil(wantKind TokenKind, gotKind TokenKind, gotToken string, span Span) error {
	sigil, ok := expectedSigils[wantKind]
	if !ok {
		panic("unreachable")
	}
	return errExpected(sigil.code, "sigil '"+sigil.text+"'", gotKind, gotToken, span)
}

func errExpectedIntLit(gotKind TokenKind, gotToken string, span Span) error {
	return errExpected(2013, "integer literal", gotKind, gotToken, span)
}

func errExpectedTextLit(gotKind TokenKind, gotToken string, span Span) error {
	return errExpected(2014, "text literal", gotKind, gotToken, span)
}

func errExpectedIdent(gotKind TokenKind, gotToken string, span Span) error {
	return errExpected(2015, "identifier", gotKind, gotToken, span)
}

func errExpectedKeyword(keyword string, gotKind TokenKind, gotToken string, span Span) error {
	return errExpected(2016, "keyword '"+keyword+"'", gotKind, gotToken, span)
}

func errExpectedDeclaration(gotKind TokenKind, gotToken string, span Span) error {
	return errExpected(2017, "declaration keyword", gotKind, gotToken, span)
}

func errUnknownDeclaration(token string, span Span) error {
	return &Error{
		code:    2018,
		message: fmt.Sprintf("Unknown declaration keyword %q", token),
		span:    span,
	}
}

func errExpectedTypeName(gotKind TokenKind, gotToken string, span Span) error {
	return errExpected(2019, "type name", gotKind, gotToken, span)
}

func errExpectedValue(gotKind TokenKind, gotToken string, span Span) error {
	return errExpected(2020, "value", gotKind, gotToken, span)
}

func errIntLitOutOfRange(token string, start uint32) error {
	return &Error{
		code: 2021,
		message: fmt.Sprintf(
			"Integer literal %s out of range (must be within [%d, %d])",
			token, int64(math.MinInt64), int64(math.MaxInt64),
		),
		span: tokenSpan(start, token),
	}
}

func errFloatLitOutOfRange(token string, start uint32) error {
	return &Error{
		code:    2022,
		message: fmt.Sprintf("Float literal %s out of range", token),
		span:    tokenSpan(start, token),
	}
}

func errTextLitInvalid(start uint32, token string) error {
	return &Error{
		code:    2023,
		message: fmt.Sprintf("Invalid text literal %q", token),
		span:    tokenSpan(start, token),
	}
}

func errPositionalAfterKeyword(span Span) error {
	return &Error{
		code:    2024,
		message: "Positional property follows keyword property",
		span:    span,
	}
}

func errArrayLenInvalid(token string, span Span) error {
	return &Error{
		code:    2025,
		message: fmt.Sprintf("Invalid array length %s (must be unsigned)", token),
		span:    span,
	}
}

func errExpectedOpenBlock(gotKind TokenKind, gotToken string, span Span) error {
	return errExpected(2026, "sigil '(' or '<'", gotKind, gotToken, span)
}

func tokenSpan(start uint32, token string) Span {
	return Span{start, uint32(len(token))}
}
