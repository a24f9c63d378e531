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

const (
	maxSrcLen   = 0x7FFFFFFF // (2**31)-1
	maxTokenLen = int(math.MaxUint16)

	tokenFlagTextHasNoEscapes uint8 = 0x01
)

type Token struct {
	Len   uint16
	Kind  TokenKind
	flags uint8
}

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_SPACE
	T_NEWLINE
	T_COMMENT

	T_SEMICOLON
	T_COLON
	T_COMMA
	T_DOT
	T_EQ

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_PAREN
	T_CLOSE_PAREN
	T_OPEN_SQUARE
	T_CLOSE_SQUARE
	T_OPEN_ANGLE
	T_CLOSE_ANGLE

	T_INT_LIT
	T_FLOAT_LIT
	T_TEXT_LIT

	T_IDENT

	numTokenKinds
)

var tokenKindNames = [numTokenKinds]string{
	T_EOF:          "EOF",
	T_SPACE:        "SPACE",
	T_NEWLINE:      "NEWLINE",
	T_COMMENT:      "COMMENT",
	T_SEMICOLON:    "SEMICOLON",
	T_COLON:        "COLON",
	T_COMMA:        "COMMA",
	T_DOT:          "DOT",
	T_EQ:           "EQ",
	T_OPEN_CURL:    "OPEN_CURL",
	T_CLOSE_CURL:   "CLOSE_CURL",
	T_OPEN_PAREN:   "OPEN_PAREN",
	T_CLOSE_PAREN:  "CLOSE_PAREN",
	T_OPEN_SQUARE:  "OPEN_SQUARE",
	T_CLOSE_SQUARE: "CLOSE_SQUARE",
	T_OPEN_ANGLE:   "OPEN_ANGLE",
	T_CLOSE_ANGLE:  "CLOSE_ANGLE",
	T_INT_LIT:      "INT_LIT",
	T_FLOAT_LIT:    "FLOAT_LIT",
	T_TEXT_LIT:     "TEXT_LIT",
	T_IDENT:        "IDENT",
}

func (k TokenKind) String() string {
	if k < numTokenKinds {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// Single-byte punctuation. Zero (T_EOF) marks bytes that are not sigils.
var sigilKinds = [128]TokenKind{
	'\n': T_NEWLINE,
	';':  T_SEMICOLON,
	':':  T_COLON,
	',':  T_COMMA,
	'.':  T_DOT,
	'=':  T_EQ,
	'{':  T_OPEN_CURL,
	'}':  T_CLOSE_CURL,
	'(':  T_OPEN_PAREN,
	')':  T_CLOSE_PAREN,
	'[':  T_OPEN_SQUARE,
	']':  T_CLOSE_SQUARE,
	'<':  T_OPEN_ANGLE,
	'>':  T_CLOSE_ANGLE,
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Tokens splits schema source into tokens. Trivia (spaces, newlines and
// comments) are returned as tokens rather than skipped.
type Tokens struct {
	src    []byte
	offset uint32
}

func NewTokens(src []byte) (*Tokens, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	if !utf8.Valid(src) {
		return nil, errInvalidUtf8(src)
	}
	return &Tokens{src: src}, nil
}

// emit stores the next tokenLen bytes as a token of the given kind.
func (t *Tokens) emit(token *Token, kind TokenKind, tokenLen int, flags uint8) error {
	if tokenLen > maxTokenLen {
		return errTokenTooLong(t.offset, tokenLen)
	}
	*token = Token{
		Kind:  kind,
		Len:   uint16(tokenLen),
		flags: flags,
	}
	t.offset += uint32(tokenLen)
	t.src = t.src[tokenLen:]
	return nil
}

func (t *Tokens) Next(token *Token) error {
	if len(t.src) == 0 {
		*token = Token{Kind: T_EOF}
		return nil
	}

	c := t.src[0]
	if c < utf8.RuneSelf {
		if kind := sigilKinds[c]; kind != T_EOF {
			return t.emit(token, kind, 1, 0)
		}
	}
	switch {
	case c == ' ' || c == '\t':
		return t.nextSpace(token)
	case c == '#':
		return t.nextComment(token)
	case c == '"':
		return t.nextTextLit(token)
	case c == '\r':
		if len(t.src) < 2 || t.src[1] != '\n' {
			return errForbiddenControlCharacter(t.offset, c)
		}
		return t.emit(token, T_NEWLINE, 2, 0)
	case isDigit(c) || c == '-' || c == '+':
		return t.nextNumLit(token)
	case isIdentStart(c):
		return t.nextIdent(token)
	}

	r, _ := utf8.DecodeRune(t.src)
	if r == '\u00A0' {
		return t.nextSpace(token)
	}
	if r < 0x20 || r == 0x7F {
		return errForbiddenControlCharacter(t.offset, c)
	}
	return errUnexpectedCharacter(t.offset, r)
}

// A run of spaces, tabs and no-break spaces.
func (t *Tokens) nextSpace(token *Token) error {
	n := 0
	for n < len(t.src) {
		if c := t.src[n]; c == ' ' || c == '\t' {
			n++
			continue
		}
		r, runeLen := utf8.DecodeRune(t.src[n:])
		if r != '\u00A0' {
			break
		}
		n += runeLen
	}
	return t.emit(token, T_SPACE, n, 0)
}

// Comments run from '#' to the end of the line, exclusive.
func (t *Tokens) nextComment(token *Token) error {
	n := 0
	for n < len(t.src) && t.src[n] != '\n' && t.src[n] != '\r' {
		n++
	}
	return t.emit(token, T_COMMENT, n, 0)
}

// Numeric literals are `[+-]?[0-9]+`, optionally followed by a fraction
// (`.` and zero or more digits) and an exponent (`e` or `E`, an optional
// sign, and one or more digits). A fraction or exponent makes the literal a
// float.
func (t *Tokens) nextNumLit(token *Token) error {
	src := t.src
	ii := 0
	if src[0] == '-' || src[0] == '+' {
		ii = 1
	}

	digits := func() int {
		start := ii
		for ii < len(src) && isDigit(src[ii]) {
			ii++
		}
		return ii - start
	}

	kind := T_INT_LIT
	invalid := digits() == 0
	if !invalid && ii < len(src) && src[ii] == '.' {
		kind = T_FLOAT_LIT
		ii++
		digits()
	}
	if !invalid && ii < len(src) && (src[ii] == 'e' || src[ii] == 'E') {
		kind = T_FLOAT_LIT
		ii++
		if ii < len(src) && (src[ii] == '-' || src[ii] == '+') {
			ii++
		}
		if digits() == 0 {
			invalid = true
		}
	}

	// Trailing identifier characters belong to the (invalid) literal.
	for ii < len(src) && isIdentContinue(src[ii]) {
		invalid = true
		ii++
	}

	if invalid {
		return errNumLitInvalid(t.offset, src[:ii])
	}
	return t.emit(token, kind, ii, 0)
}

// Text literals are double-quoted and may not span lines. Escapes are
// validated by the parser; here a backslash only protects the next byte.
func (t *Tokens) nextTextLit(token *Token) error {
	src := t.src
	hasEscapes := false
	for ii := 1; ii < len(src); ii++ {
		switch c := src[ii]; {
		case c == '\\':
			hasEscapes = true
			ii++
		case c == '"':
			var flags uint8
			if !hasEscapes {
				flags = tokenFlagTextHasNoEscapes
			}
			return t.emit(token, T_TEXT_LIT, ii+1, flags)
		case c == '\n':
			return errTextLitContainsNewline(t.offset+uint32(ii), 1)
		case c == '\r' && ii+1 < len(src) && src[ii+1] == '\n':
			return errTextLitContainsNewline(t.offset+uint32(ii), 2)
		case (c < 0x20 || c == 0x7F) && c != '\t':
			return errForbiddenControlCharacter(t.offset+uint32(ii), c)
		}
	}
	return errTextLitUnterminated(t.offset, uint32(len(src)))
}

func (t *Tokens) nextIdent(token *Token) error {
	n := 1
	for n < len(t.src) && isIdentContinue(t.src[n]) {
		n++
	}
	return t.emit(token, T_IDENT, n, 0)
}
