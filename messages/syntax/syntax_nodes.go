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
	"bytes"
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

// Position is a 1-based line and column. Columns count Unicode code points.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Locate maps a byte offset within src to its line and column.
func Locate(src []byte, offset uint32) Position {
	if int(offset) > len(src) {
		offset = uint32(len(src))
	}
	prefix := src[:offset]
	line := 1 + bytes.Count(prefix, []byte{'\n'})
	lineStart := bytes.LastIndexByte(prefix, '\n') + 1
	return Position{
		Line:   line,
		Column: 1 + utf8.RuneCount(prefix[lineStart:]),
	}
}

type Node interface {
	Span() Span

	ChildNodes() iter.Seq[Node]

	privChildren() []Node

	UnparseTo(buf *bytes.Buffer)
}

// Declaration is a top-level schema statement.
type Declaration interface {
	Node
	isDeclaration()
}

// Value is a literal usable as a field default or property value.
type Value interface {
	Node
	isValue()
}

func Unparse(node Node) string {
	var buf bytes.Buffer
	node.UnparseTo(&buf)
	return buf.String()
}

func Walk(node Node, walkFn func(Node) bool) {
	if node == nil || !walkFn(node) {
		return
	}
	for _, child := range node.privChildren() {
		Walk(child, walkFn)
	}
	walkFn(nil)
}

func iterChildren(childNodes []Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, child := range childNodes {
			if !yield(child) {
				return
			}
		}
	}
}

func iterNodes[T any](nodes []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, node := range nodes {
			if !yield(node) {
				return
			}
		}
	}
}

type leafNode struct{}

func (*leafNode) ChildNodes() iter.Seq[Node] {
	return func(_yield func(Node) bool) {}
}

func (*leafNode) privChildren() []Node {
	return nil
}

// textLeaf is a leaf node that keeps its source text verbatim.
type textLeaf struct {
	leafNode
	raw   string
	start uint32
}

func (n *textLeaf) Span() Span {
	return Span{n.start, uint32(len(n.raw))}
}

func (n *textLeaf) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw)
}

type branchNode struct {
	span       Span
	childNodes []Node
}

func (n *branchNode) Span() Span {
	return n.span
}

func (n *branchNode) ChildNodes() iter.Seq[Node] {
	return iterChildren(n.childNodes)
}

func (n *branchNode) privChildren() []Node {
	return n.childNodes
}

func (n *branchNode) UnparseTo(buf *bytes.Buffer) {
	for _, childNode := range n.childNodes {
		childNode.UnparseTo(buf)
	}
}

// Space is a run of horizontal whitespace.
type Space struct{ textLeaf }

// Comment runs from '#' to the end of its line. The newline is not part of
// the comment.
type Comment struct{ textLeaf }

type Ident struct{ textLeaf }

type Keyword struct{ textLeaf }

var (
	_ Node = (*Space)(nil)
	_ Node = (*Comment)(nil)
	_ Node = (*Ident)(nil)
	_ Node = (*Keyword)(nil)
	_ Node = (*Newline)(nil)
	_ Node = (*Sigil)(nil)
)

func (n *Comment) Text() string {
	return n.raw
}

func (n *Ident) Get() string {
	return n.raw
}

type Newline struct {
	leafNode
	start uint32
	crlf  bool
}

func (n *Newline) Span() Span {
	if n.crlf {
		return Span{n.start, 2}
	}
	return Span{n.start, 1}
}

func (n *Newline) UnparseTo(buf *bytes.Buffer) {
	if n.crlf {
		buf.WriteString("\r\n")
	} else {
		buf.WriteByte('\n')
	}
}

type Sigil struct {
	leafNode
	raw   byte
	start uint32
}

func (n *Sigil) Span() Span {
	return Span{n.start, 1}
}

func (n *Sigil) UnparseTo(buf *bytes.Buffer) {
	buf.WriteByte(n.raw)
}

type IntLit struct {
	textLeaf
	value int64
}

type FloatLit struct {
	textLeaf
	value float64
}

// TextLit is a double-quoted string. Its value has escapes decoded.
type TextLit struct {
	textLeaf
	value string
}

// BoolLit is the keyword true or false.
type BoolLit struct {
	leafNode
	value bool
	start uint32
}

var (
	_ Value = (*IntLit)(nil)
	_ Value = (*FloatLit)(nil)
	_ Value = (*TextLit)(nil)
	_ Value = (*BoolLit)(nil)
)

func (*IntLit) isValue()   {}
func (*FloatLit) isValue() {}
func (*TextLit) isValue()  {}
func (*BoolLit) isValue()  {}

func newIntLit(token string, start uint32) (*IntLit, error) {
	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, errIntLitOutOfRange(token, start)
	}
	return &IntLit{textLeaf{raw: token, start: start}, value}, nil
}

func (n *IntLit) Get() int64 {
	return n.value
}

// GetUint32 reports the value if it was written without a sign and fits
// in 32 bits.
func (n *IntLit) GetUint32() (uint32, bool) {
	if n.raw[0] == '-' || n.raw[0] == '+' || n.value > math.MaxUint32 {
		return 0, false
	}
	return uint32(n.value), true
}

func newFloatLit(token string, start uint32) (*FloatLit, error) {
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, errFloatLitOutOfRange(token, start)
	}
	return &FloatLit{textLeaf{raw: token, start: start}, value}, nil
}

func (n *FloatLit) Get() float64 {
	return n.value
}

func newTextLit(token string, start uint32, flags uint8) (*TextLit, error) {
	value := token[1 : len(token)-1]
	if flags&tokenFlagTextHasNoEscapes == 0 {
		var ok bool
		if value, ok = unescapeText(value); !ok {
			return nil, errTextLitInvalid(start, token)
		}
	}
	return &TextLit{textLeaf{raw: token, start: start}, value}, nil
}

// unescapeText decodes the escapes \" \\ \n \t \xHH (ASCII only) and
// \u{H...} (one to six hex digits naming a Unicode scalar value).
func unescapeText(s string) (string, bool) {
	var out strings.Builder
	out.Grow(len(s))
	for len(s) > 0 {
		idx := strings.IndexByte(s, '\\')
		if idx < 0 {
			out.WriteString(s)
			break
		}
		out.WriteString(s[:idx])
		s = s[idx+1:]
		if len(s) == 0 {
			return "", false
		}

		esc := s[0]
		s = s[1:]
		switch esc {
		case '"', '\\':
			out.WriteByte(esc)
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'x':
			if len(s) < 2 {
				return "", false
			}
			b, err := strconv.ParseUint(s[:2], 16, 8)
			if err != nil || b >= utf8.RuneSelf {
				return "", false
			}
			out.WriteByte(byte(b))
			s = s[2:]
		case 'u':
			if len(s) == 0 || s[0] != '{' {
				return "", false
			}
			end := strings.IndexByte(s, '}')
			if end < 2 || end > 7 {
				return "", false
			}
			scalar, err := strconv.ParseUint(s[1:end], 16, 32)
			if err != nil || !utf8.ValidRune(rune(scalar)) {
				return "", false
			}
			out.WriteRune(rune(scalar))
			s = s[end+1:]
		default:
			return "", false
		}
	}
	return out.String(), true
}

func (n *TextLit) Get() string {
	return n.value
}

func (n *BoolLit) raw() string {
	if n.value {
		return "true"
	}
	return "false"
}

func (n *BoolLit) Span() Span {
	return Span{n.start, uint32(len(n.raw()))}
}

func (n *BoolLit) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw())
}

func (n *BoolLit) Get() bool {
	return n.value
}

// DottedName is a sequence of identifiers separated by '.', such as a
// namespace name.
type DottedName struct {
	branchNode
	parts []*Ident
}

var _ Node = (*DottedName)(nil)

func (n *DottedName) Parts() iter.Seq[*Ident] {
	return iterNodes(n.parts)
}

func (n *DottedName) Get() string {
	parts := make([]string, 0, len(n.parts))
	for _, part := range n.parts {
		parts = append(parts, part.Get())
	}
	return strings.Join(parts, ".")
}

type Schema struct {
	branchNode
}

var _ Node = (*Schema)(nil)

func (n *Schema) Declarations() iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		for _, child := range n.childNodes {
			decl, ok := child.(Declaration)
			if !ok {
				continue
			}
			if !yield(decl) {
				return
			}
		}
	}
}

type Namespace struct {
	branchNode
	name *DottedName
}

var _ Declaration = (*Namespace)(nil)

func (*Namespace) isDeclaration() {}

func (n *Namespace) Name() *DottedName {
	return n.name
}

type Import struct {
	branchNode
	file *TextLit
}

var _ Declaration = (*Import)(nil)

func (*Import) isDeclaration() {}

func (n *Import) File() *TextLit {
	return n.file
}

type Include struct {
	branchNode
	file       *TextLit
	properties *PropertyList
}

var _ Declaration = (*Include)(nil)

func (*Include) isDeclaration() {}

func (n *Include) File() *TextLit {
	return n.file
}

// Properties is nil if the include has no property list.
func (n *Include) Properties() *PropertyList {
	return n.properties
}

// PropertyList is a parenthesized list of positional values followed by
// keyword properties, separated by ':'.
type PropertyList struct {
	branchNode
	args   []Value
	kwargs []*Property
}

var _ Node = (*PropertyList)(nil)

func (n *PropertyList) Args() iter.Seq[Value] {
	return iterNodes(n.args)
}

func (n *PropertyList) Kwargs() iter.Seq[*Property] {
	return iterNodes(n.kwargs)
}

type Property struct {
	branchNode
	name  *Ident
	value Value
}

var _ Node = (*Property)(nil)

func (n *Property) Name() *Ident {
	return n.name
}

func (n *Property) Value() Value {
	return n.value
}

type External struct {
	branchNode
	name      *Ident
	languages []*LanguageSpec
}

var _ Declaration = (*External)(nil)

func (*External) isDeclaration() {}

func (n *External) Name() *Ident {
	return n.name
}

func (n *External) Languages() iter.Seq[*LanguageSpec] {
	return iterNodes(n.languages)
}

type LanguageSpec struct {
	branchNode
	language  *Ident
	container *TextLit
	sources   []*TextLit
	default_  *TextLit
	read      *TextLit
	write     *TextLit
}

var _ Node = (*LanguageSpec)(nil)

func (n *LanguageSpec) Language() *Ident {
	return n.language
}

func (n *LanguageSpec) Container() *TextLit {
	return n.container
}

func (n *LanguageSpec) Sources() iter.Seq[*TextLit] {
	return iterNodes(n.sources)
}

func (n *LanguageSpec) Default() *TextLit {
	return n.default_
}

// Read and Write are either both nil or both set.
func (n *LanguageSpec) Read() *TextLit {
	return n.read
}

func (n *LanguageSpec) Write() *TextLit {
	return n.write
}

type Enumerate struct {
	branchNode
	name    *Ident
	members []*Ident
}

var _ Declaration = (*Enumerate)(nil)

func (*Enumerate) isDeclaration() {}

func (n *Enumerate) Name() *Ident {
	return n.name
}

func (n *Enumerate) Members() iter.Seq[*Ident] {
	return iterNodes(n.members)
}

type Structure struct {
	branchNode
	name   *Ident
	fields []*Field
}

var _ Declaration = (*Structure)(nil)

func (*Structure) isDeclaration() {}

func (n *Structure) Name() *Ident {
	return n.name
}

func (n *Structure) Fields() iter.Seq[*Field] {
	return iterNodes(n.fields)
}

type Message struct {
	branchNode
	name   *Ident
	fields []*Field
}

var _ Declaration = (*Message)(nil)

func (*Message) isDeclaration() {}

func (n *Message) Name() *Ident {
	return n.name
}

func (n *Message) Fields() iter.Seq[*Field] {
	return iterNodes(n.fields)
}

type Field struct {
	branchNode
	typeName     *Ident
	isArray      bool
	arrayLen     *IntLit
	name         *Ident
	properties   *PropertyList
	defaultValue Value
}

var _ Node = (*Field)(nil)

func (n *Field) TypeName() *Ident {
	return n.typeName
}

func (n *Field) IsArray() bool {
	return n.isArray
}

// ArrayLen is nil for scalar fields and variable-length arrays.
func (n *Field) ArrayLen() *IntLit {
	return n.arrayLen
}

func (n *Field) Name() *Ident {
	return n.name
}

func (n *Field) Properties() *PropertyList {
	return n.properties
}

func (n *Field) Default() Value {
	return n.defaultValue
}
