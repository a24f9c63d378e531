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

// Package syntax parses echolib message schemas into a lossless concrete
// syntax tree.
//
// Every byte of the source, including whitespace and comments, is kept as a
// node so that [Unparse] reproduces the input exactly.
package syntax

import (
	"bytes"
)

type ParseOption interface {
	apply(*ParseOptions)
}

type parseOption func(*ParseOptions)

func (f parseOption) apply(opts *ParseOptions) { f(opts) }

// WithoutTrivia drops whitespace and comment nodes from the parsed tree.
// The resulting tree no longer unparses to the original source.
func WithoutTrivia() ParseOption {
	return parseOption(func(opts *ParseOptions) {
		opts.saveSpaces = false
		opts.saveNewlines = false
		opts.saveComments = false
	})
}

func Parse(src []uint8, opts ...ParseOption) (*Schema, error) {
	return NewParseOptions(opts...).ParseSchema(src)
}

type ParseOptions struct {
	saveSpaces   bool
	saveNewlines bool
	saveComments bool
}

func NewParseOptions(opts ...ParseOption) *ParseOptions {
	parseOptions := &ParseOptions{
		saveSpaces:   true,
		saveNewlines: true,
		saveComments: true,
	}
	for _, opt := range opts {
		opt.apply(parseOptions)
	}
	return parseOptions
}

func (opts *ParseOptions) ParseSchema(src []uint8) (*Schema, error) {
	return parseWith(opts, src, parseSchema)
}

func (opts *ParseOptions) ParseNamespace(src []uint8) (*Namespace, error) {
	return parseWith(opts, src, parseNamespace)
}

func (opts *ParseOptions) ParseImport(src []uint8) (*Import, error) {
	return parseWith(opts, src, parseImport)
}

func (opts *ParseOptions) ParseInclude(src []uint8) (*Include, error) {
	return parseWith(opts, src, parseInclude)
}

func (opts *ParseOptions) ParseExternal(src []uint8) (*External, error) {
	return parseWith(opts, src, parseExternal)
}

func (opts *ParseOptions) ParseEnumerate(src []uint8) (*Enumerate, error) {
	return parseWith(opts, src, parseEnumerate)
}

func (opts *ParseOptions) ParseStructure(src []uint8) (*Structure, error) {
	return parseWith(opts, src, parseStructure)
}

func (opts *ParseOptions) ParseMessage(src []uint8) (*Message, error) {
	return parseWith(opts, src, parseMessage)
}

func (opts *ParseOptions) ParseField(src []uint8) (*Field, error) {
	return parseWith(opts, src, parseField)
}

func parseWith[T any](
	opts *ParseOptions,
	src []uint8,
	parseFn func(*parseCtx[T]) (*T, error),
) (*T, error) {
	ctx, err := newParseCtx[T](opts, src)
	if err != nil {
		return nil, locateError(err, src)
	}
	node, err := parseFn(ctx)
	if err != nil {
		return nil, locateError(err, src)
	}
	if node == nil {
		if err := ctx.ensureToken(); err != nil {
			return nil, locateError(err, src)
		}
		return nil, locateError(errExpectedDeclaration(
			ctx.token.Kind,
			string(ctx.readToken()),
			ctx.tokenSpan(),
		), src)
	}
	return node, nil
}

type parseCtx[T any] struct {
	src        []uint8
	opts       *ParseOptions
	tokens     *Tokens
	childNodes []Node
	haveToken  bool
	token      Token
	err        error
	consumed   uint32
	offset     uint32
}

func newParseCtx[T any](opts *ParseOptions, src []uint8) (*parseCtx[T], error) {
	tokens, err := NewTokens(src)
	if err != nil {
		return nil, err
	}
	return &parseCtx[T]{
		src:    src,
		opts:   opts,
		tokens: tokens,
	}, nil
}

func (ctx *parseCtx[T]) ensureToken() error {
	if ctx.err != nil {
		return ctx.err
	}
	if ctx.haveToken {
		return nil
	}
	if err := ctx.tokens.Next(&ctx.token); err != nil {
		ctx.err = err
		return ctx.err
	}
	ctx.haveToken = true
	return nil
}

func (ctx *parseCtx[T]) readToken() []uint8 {
	return ctx.src[:ctx.token.Len]
}

func (ctx *parseCtx[T]) consumeToken(child Node) {
	ctx.src = ctx.src[ctx.token.Len:]
	ctx.consumed += uint32(ctx.token.Len)
	ctx.offset += uint32(ctx.token.Len)
	ctx.haveToken = false
	if child != nil {
		ctx.childNodes = append(ctx.childNodes, child)
	}
}

func (ctx *parseCtx[T]) tokenSpan() Span {
	return Span{
		start: ctx.offset,
		len:   uint32(ctx.token.Len),
	}
}

func (ctx *parseCtx[T]) loop(yield func(struct{}) bool) {
	if ctx.err != nil {
		return
	}
	for {
		consumed := ctx.consumed
		if !yield(struct{}{}) {
			return
		}
		if ctx.err != nil {
			return
		}
		if consumed == ctx.consumed {
			return
		}
	}
}

func (ctx *parseCtx[T]) consumeSpace() {
	if !ctx.opts.saveSpaces {
		ctx.consumeToken(nil)
		return
	}

	tokenBytes := ctx.readToken()
	var token string
	if bytes.Equal(tokenBytes, []uint8{' '}) {
		token = " "
	} else {
		token = string(tokenBytes)
	}
	ctx.consumeToken(&Space{textLeaf{raw: token, start: ctx.offset}})
}

// trivia consumes any run of spaces, newlines, and comments. The schema
// language is free-form, so trivia may appear between any two tokens.
func (ctx *parseCtx[T]) trivia() {
	for _ = range ctx.loop {
		if err := ctx.ensureToken(); err != nil {
			return
		}
		switch ctx.token.Kind {
		case T_SPACE:
			ctx.consumeSpace()
		case T_NEWLINE:
			var child Node
			if ctx.opts.saveNewlines {
				child = &Newline{
					crlf:  ctx.token.Len == 2,
					start: ctx.offset,
				}
			}
			ctx.consumeToken(child)
		case T_COMMENT:
			var child Node
			if ctx.opts.saveComments {
				child = &Comment{textLeaf{
					raw:   string(ctx.readToken()),
					start: ctx.offset,
				}}
			}
			ctx.consumeToken(child)
		default:
			return
		}
	}
}

func (ctx *parseCtx[T]) sigil(kind TokenKind) {
	if err := ctx.ensureToken(); err != nil {
		return
	}
	if ctx.token.Kind != kind {
		ctx.err = errExpectedSigil(
			kind,
			ctx.token.Kind,
			string(ctx.readToken()),
			ctx.tokenSpan(),
		)
		return
	}
	ctx.consumeToken(&Sigil{
		raw:   ctx.src[0],
		start: ctx.offset,
	})
}

func (ctx *parseCtx[T]) trySigil(kind TokenKind) bool {
	if err := ctx.ensureToken(); err != nil {
		return false
	}
	if ctx.token.Kind != kind {
		return false
	}
	ctx.consumeToken(&Sigil{
		raw:   ctx.src[0],
		start: ctx.offset,
	})
	return true
}

// openBlock consumes '(' or '<' and returns the matching closing sigil.
func (ctx *parseCtx[T]) openBlock() TokenKind {
	if ctx.trySigil(T_OPEN_PAREN) {
		return T_CLOSE_PAREN
	}
	if ctx.trySigil(T_OPEN_ANGLE) {
		return T_CLOSE_ANGLE
	}
	if ctx.err == nil {
		ctx.err = errExpectedOpenBlock(
			ctx.token.Kind,
			string(ctx.readToken()),
			ctx.tokenSpan(),
		)
	}
	return T_EOF
}

func (ctx *parseCtx[T]) atOpenBlock() bool {
	if err := ctx.ensureToken(); err != nil {
		return false
	}
	return ctx.token.Kind == T_OPEN_PAREN || ctx.token.Kind == T_OPEN_ANGLE
}

func (ctx *parseCtx[T]) tryKeyword(keyword string) bool {
	if err := ctx.ensureToken(); err != nil {
		return false
	}
	if ctx.token.Kind != T_IDENT {
		return false
	}
	if string(ctx.readToken()) != keyword {
		return false
	}
	ctx.consumeToken(&Keyword{textLeaf{raw: keyword, start: ctx.offset}})
	return true
}

func (ctx *parseCtx[T]) keyword(keyword string) {
	if ctx.tryKeyword(keyword) || ctx.err != nil {
		return
	}
	ctx.err = errExpectedKeyword(
		keyword,
		ctx.token.Kind,
		string(ctx.readToken()),
		ctx.tokenSpan(),
	)
}

func (ctx *parseCtx[T]) ident() *Ident {
	if err := ctx.ensureToken(); err != nil {
		return nil
	}
	token := string(ctx.readToken())
	if ctx.token.Kind != T_IDENT {
		ctx.err = errExpectedIdent(ctx.token.Kind, token, ctx.tokenSpan())
		return nil
	}
	ident := &Ident{textLeaf{raw: token, start: ctx.offset}}
	ctx.consumeToken(ident)
	return ident
}

func (ctx *parseCtx[T]) int() *IntLit {
	if err := ctx.ensureToken(); err != nil {
		return nil
	}
	token := string(ctx.readToken())
	if ctx.token.Kind != T_INT_LIT {
		ctx.err = errExpectedIntLit(ctx.token.Kind, token, ctx.tokenSpan())
		return nil
	}
	intNode, err := newIntLit(token, ctx.offset)
	if err != nil {
		ctx.err = err
		return nil
	}
	ctx.consumeToken(intNode)
	return intNode
}

func (ctx *parseCtx[T]) float() *FloatLit {
	if err := ctx.ensureToken(); err != nil {
		return nil
	}
	floatNode, err := newFloatLit(string(ctx.readToken()), ctx.offset)
	if err != nil {
		ctx.err = err
		return nil
	}
	ctx.consumeToken(floatNode)
	return floatNode
}

func (ctx *parseCtx[T]) text() *TextLit {
	if err := ctx.ensureToken(); err != nil {
		return nil
	}
	token := string(ctx.readToken())

	if ctx.token.Kind != T_TEXT_LIT {
		ctx.err = errExpectedTextLit(ctx.token.Kind, token, ctx.tokenSpan())
		return nil
	}
	textNode, err := newTextLit(token, ctx.offset, ctx.token.flags)
	if err != nil {
		ctx.err = err
		return nil
	}
	ctx.consumeToken(textNode)
	return textNode
}

func (ctx *parseCtx[T]) atText() bool {
	if err := ctx.ensureToken(); err != nil {
		return false
	}
	return ctx.token.Kind == T_TEXT_LIT
}

func (ctx *parseCtx[T]) finish(
	build func(span Span, childNodes []Node) *T,
) (*T, error) {
	if ctx.err != nil {
		return nil, ctx.err
	}
	span := Span{
		start: ctx.offset - ctx.consumed,
		len:   ctx.consumed,
	}
	return build(span, ctx.childNodes), nil
}

func parseChild[P any, C any, PtrC interface {
	*C
	Node
}](
	ctx *parseCtx[P],
	parseChildFn func(*parseCtx[C]) (PtrC, error),
) (*C, bool) {
	if ctx.err != nil {
		return nil, false
	}
	childCtx := &parseCtx[C]{
		src:       ctx.src,
		opts:      ctx.opts,
		tokens:    ctx.tokens,
		haveToken: ctx.haveToken,
		token:     ctx.token,
		offset:    ctx.offset,
	}
	child, err := parseChildFn(childCtx)
	if err != nil {
		ctx.err = err
		return nil, false
	}

	ctx.haveToken = childCtx.haveToken
	ctx.token = childCtx.token

	if childCtx.consumed == 0 {
		return nil, false
	}
	ctx.src = ctx.src[childCtx.consumed:]
	ctx.consumed += childCtx.consumed
	ctx.offset = childCtx.offset
	ctx.childNodes = append(ctx.childNodes, child)
	return child, true
}

func parseSchema(ctx *parseCtx[Schema]) (*Schema, error) {
	for _ = range ctx.loop {
		ctx.trivia()
		if err := ctx.ensureToken(); err != nil {
			return nil, err
		}
		if ctx.token.Kind == T_EOF {
			break
		}

		var ok bool
		if _, ok = parseChild(ctx, parseNamespace); !ok && ctx.err == nil {
			_, ok = parseChild(ctx, parseImport)
		}
		if !ok && ctx.err == nil {
			_, ok = parseChild(ctx, parseInclude)
		}
		if !ok && ctx.err == nil {
			_, ok = parseChild(ctx, parseExternal)
		}
		if !ok && ctx.err == nil {
			_, ok = parseChild(ctx, parseEnumerate)
		}
		if !ok && ctx.err == nil {
			_, ok = parseChild(ctx, parseStructure)
		}
		if !ok && ctx.err == nil {
			_, ok = parseChild(ctx, parseMessage)
		}
		if ctx.err != nil {
			return nil, ctx.err
		}
		if !ok {
			token := string(ctx.readToken())
			span := ctx.tokenSpan()
			if ctx.token.Kind == T_IDENT {
				return nil, errUnknownDeclaration(token, span)
			}
			return nil, errExpectedDeclaration(ctx.token.Kind, token, span)
		}
	}

	return ctx.finish(func(span Span, childNodes []Node) *Schema {
		return &Schema{branchNode{
			span:       span,
			childNodes: childNodes,
		}}
	})
}

func parseNamespace(ctx *parseCtx[Namespace]) (*Namespace, error) {
	if !ctx.tryKeyword("namespace") {
		return nil, ctx.err
	}
	ctx.trivia()
	name, _ := parseChild(ctx, parseDottedName)
	ctx.trivia()
	ctx.sigil(T_SEMICOLON)

	return ctx.finish(func(span Span, childNodes []Node) *Namespace {
		return &Namespace{
			branchNode: branchNode{span, childNodes},
			name:       name,
		}
	})
}

func parseDottedName(ctx *parseCtx[DottedName]) (*DottedName, error) {
	parts := []*Ident{ctx.ident()}
	for _ = range ctx.loop {
		if !ctx.trySigil(T_DOT) {
			break
		}
		parts = append(parts, ctx.ident())
	}

	return ctx.finish(func(span Span, childNodes []Node) *DottedName {
		return &DottedName{
			branchNode: branchNode{span, childNodes},
			parts:      parts,
		}
	})
}

func parseImport(ctx *parseCtx[Import]) (*Import, error) {
	if !ctx.tryKeyword("import") {
		return nil, ctx.err
	}
	ctx.trivia()
	file := ctx.text()
	ctx.trivia()
	ctx.sigil(T_SEMICOLON)

	return ctx.finish(func(span Span, childNodes []Node) *Import {
		return &Import{
			branchNode: branchNode{span, childNodes},
			file:       file,
		}
	})
}

func parseInclude(ctx *parseCtx[Include]) (*Include, error) {
	if !ctx.tryKeyword("include") {
		return nil, ctx.err
	}
	ctx.trivia()
	file := ctx.text()
	ctx.trivia()
	var properties *PropertyList
	if ctx.atOpenBlock() {
		properties, _ = parseChild(ctx, parsePropertyList)
		ctx.trivia()
	}
	ctx.sigil(T_SEMICOLON)

	return ctx.finish(func(span Span, childNodes []Node) *Include {
		return &Include{
			branchNode: branchNode{span, childNodes},
			file:       file,
			properties: properties,
		}
	})
}

func parsePropertyList(ctx *parseCtx[PropertyList]) (*PropertyList, error) {
	closeKind := ctx.openBlock()
	ctx.trivia()

	var args []Value
	var kwargs []*Property
	for _ = range ctx.loop {
		if err := ctx.ensureToken(); err != nil {
			return nil, err
		}
		if ctx.token.Kind == T_IDENT && !isBoolKeyword(ctx.readToken()) {
			kwarg, _ := parseChild(ctx, parseProperty)
			kwargs = append(kwargs, kwarg)
		} else {
			span := ctx.tokenSpan()
			arg := parseRequiredValue(ctx)
			if len(kwargs) > 0 && ctx.err == nil {
				return nil, errPositionalAfterKeyword(span)
			}
			args = append(args, arg)
		}
		ctx.trivia()
		if !ctx.trySigil(T_COLON) {
			break
		}
		ctx.trivia()
	}
	ctx.sigil(closeKind)

	return ctx.finish(func(span Span, childNodes []Node) *PropertyList {
		return &PropertyList{
			branchNode: branchNode{span, childNodes},
			args:       args,
			kwargs:     kwargs,
		}
	})
}

func parseProperty(ctx *parseCtx[Property]) (*Property, error) {
	name := ctx.ident()
	ctx.trivia()
	ctx.sigil(T_EQ)
	ctx.trivia()
	value := parseRequiredValue(ctx)

	return ctx.finish(func(span Span, childNodes []Node) *Property {
		return &Property{
			branchNode: branchNode{span, childNodes},
			name:       name,
			value:      value,
		}
	})
}

func isBoolKeyword(token []uint8) bool {
	s := string(token)
	return s == "true" || s == "false"
}

func parseValue[T any](ctx *parseCtx[T]) Value {
	if err := ctx.ensureToken(); err != nil {
		return nil
	}
	switch ctx.token.Kind {
	case T_INT_LIT:
		if child := ctx.int(); child != nil {
			return child
		}
	case T_FLOAT_LIT:
		if child := ctx.float(); child != nil {
			return child
		}
	case T_TEXT_LIT:
		if child := ctx.text(); child != nil {
			return child
		}
	case T_IDENT:
		if token := ctx.readToken(); isBoolKeyword(token) {
			child := &BoolLit{
				value: string(token) == "true",
				start: ctx.offset,
			}
			ctx.consumeToken(child)
			return child
		}
	}
	return nil
}

func parseRequiredValue[T any](ctx *parseCtx[T]) Value {
	node := parseValue(ctx)
	if node == nil && ctx.err == nil {
		ctx.err = errExpectedValue(
			ctx.token.Kind,
			string(ctx.readToken()),
			ctx.tokenSpan(),
		)
	}
	return node
}

func parseExternal(ctx *parseCtx[External]) (*External, error) {
	if !ctx.tryKeyword("external") {
		return nil, ctx.err
	}
	ctx.trivia()
	name := ctx.ident()
	ctx.trivia()
	closeKind := ctx.openBlock()
	ctx.trivia()

	var languages []*LanguageSpec
	for _ = range ctx.loop {
		if ctx.trySigil(closeKind) {
			break
		}
		language, _ := parseChild(ctx, parseLanguageSpec)
		languages = append(languages, language)
		ctx.trivia()
	}
	ctx.trivia()
	ctx.sigil(T_SEMICOLON)

	return ctx.finish(func(span Span, childNodes []Node) *External {
		return &External{
			branchNode: branchNode{span, childNodes},
			name:       name,
			languages:  languages,
		}
	})
}

func parseLanguageSpec(ctx *parseCtx[LanguageSpec]) (*LanguageSpec, error) {
	ctx.keyword("language")
	ctx.trivia()
	language := ctx.ident()
	ctx.trivia()
	container := ctx.text()
	ctx.trivia()

	var sources []*TextLit
	if ctx.tryKeyword("from") {
		ctx.trivia()
		sources = append(sources, ctx.text())
		ctx.trivia()
		for _ = range ctx.loop {
			if !ctx.atText() {
				break
			}
			sources = append(sources, ctx.text())
			ctx.trivia()
		}
	}

	var default_ *TextLit
	if ctx.tryKeyword("default") {
		ctx.trivia()
		default_ = ctx.text()
		ctx.trivia()
	}

	var read, write *TextLit
	if ctx.tryKeyword("read") {
		ctx.trivia()
		read = ctx.text()
		ctx.trivia()
		ctx.keyword("write")
		ctx.trivia()
		write = ctx.text()
		ctx.trivia()
	}
	ctx.sigil(T_SEMICOLON)

	return ctx.finish(func(span Span, childNodes []Node) *LanguageSpec {
		return &LanguageSpec{
			branchNode: branchNode{span, childNodes},
			language:   language,
			container:  container,
			sources:    sources,
			default_:   default_,
			read:       read,
			write:      write,
		}
	})
}

func parseEnumerate(ctx *parseCtx[Enumerate]) (*Enumerate, error) {
	if !ctx.tryKeyword("enumerate") {
		return nil, ctx.err
	}
	ctx.trivia()
	name := ctx.ident()
	ctx.trivia()
	ctx.sigil(T_OPEN_CURL)
	ctx.trivia()

	members := []*Ident{ctx.ident()}
	ctx.trivia()
	for _ = range ctx.loop {
		if !ctx.trySigil(T_COMMA) {
			break
		}
		ctx.trivia()
		members = append(members, ctx.ident())
		ctx.trivia()
	}
	ctx.sigil(T_CLOSE_CURL)

	return ctx.finish(func(span Span, childNodes []Node) *Enumerate {
		return &Enumerate{
			branchNode: branchNode{span, childNodes},
			name:       name,
			members:    members,
		}
	})
}

func parseFields[T any](ctx *parseCtx[T]) []*Field {
	ctx.sigil(T_OPEN_CURL)
	ctx.trivia()
	var fields []*Field
	for _ = range ctx.loop {
		if ctx.trySigil(T_CLOSE_CURL) {
			break
		}
		field, _ := parseChild(ctx, parseField)
		fields = append(fields, field)
		ctx.trivia()
	}
	return fields
}

func parseStructure(ctx *parseCtx[Structure]) (*Structure, error) {
	if !ctx.tryKeyword("structure") {
		return nil, ctx.err
	}
	ctx.trivia()
	name := ctx.ident()
	ctx.trivia()
	fields := parseFields(ctx)

	return ctx.finish(func(span Span, childNodes []Node) *Structure {
		return &Structure{
			branchNode: branchNode{span, childNodes},
			name:       name,
			fields:     fields,
		}
	})
}

func parseMessage(ctx *parseCtx[Message]) (*Message, error) {
	if !ctx.tryKeyword("message") {
		return nil, ctx.err
	}
	ctx.trivia()
	name := ctx.ident()
	ctx.trivia()
	fields := parseFields(ctx)

	return ctx.finish(func(span Span, childNodes []Node) *Message {
		return &Message{
			branchNode: branchNode{span, childNodes},
			name:       name,
			fields:     fields,
		}
	})
}

func parseField(ctx *parseCtx[Field]) (*Field, error) {
	if err := ctx.ensureToken(); err != nil {
		return nil, err
	}
	if ctx.token.Kind != T_IDENT {
		return nil, errExpectedTypeName(
			ctx.token.Kind,
			string(ctx.readToken()),
			ctx.tokenSpan(),
		)
	}
	typeName := ctx.ident()
	ctx.trivia()

	isArray := false
	var arrayLen *IntLit
	if ctx.trySigil(T_OPEN_SQUARE) {
		isArray = true
		ctx.trivia()
		if !ctx.trySigil(T_CLOSE_SQUARE) {
			span := ctx.tokenSpan()
			arrayLen = ctx.int()
			if arrayLen != nil {
				if _, ok := arrayLen.GetUint32(); !ok {
					return nil, errArrayLenInvalid(arrayLen.raw, span)
				}
			}
			ctx.trivia()
			ctx.sigil(T_CLOSE_SQUARE)
		}
		ctx.trivia()
	}

	name := ctx.ident()
	ctx.trivia()

	var properties *PropertyList
	if ctx.atOpenBlock() {
		properties, _ = parseChild(ctx, parsePropertyList)
		ctx.trivia()
	}

	var defaultValue Value
	if ctx.trySigil(T_EQ) {
		ctx.trivia()
		defaultValue = parseRequiredValue(ctx)
		ctx.trivia()
	}
	ctx.sigil(T_SEMICOLON)

	return ctx.finish(func(span Span, childNodes []Node) *Field {
		return &Field{
			branchNode:   branchNode{span, childNodes},
			typeName:     typeName,
			isArray:      isArray,
			arrayLen:     arrayLen,
			name:         name,
			properties:   properties,
			defaultValue: defaultValue,
		}
	})
}
