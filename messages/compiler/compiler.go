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

// Package compiler resolves schema files into a [schema.Registry].
//
// Compilation starts from a root file and follows import and include
// declarations depth-first. Every file is parsed at most once per
// compilation. Compilation is all-or-nothing: the first error aborts it and
// no partial registry is returned.
package compiler

import (
	"errors"
	"os"
	"slices"

	"github.com/opencontainers/go-digest"
	"github.com/rs/zerolog"

	"github.com/vicoslab/echolib/messages/schema"
	"github.com/vicoslab/echolib/messages/syntax"
)

// NamespacePolicy controls how a second, different namespace declaration
// is handled.
type NamespacePolicy uint8

const (
	// NamespaceStrict rejects a namespace that differs from an earlier one.
	NamespaceStrict NamespacePolicy = iota

	// NamespaceFirstWins keeps the first namespace and reports a warning
	// for each differing one.
	NamespaceFirstWins
)

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	searchPath      []string
	language        schema.Language
	logger          zerolog.Logger
	namespacePolicy NamespacePolicy
}

// WithSearchPath sets the directories searched for relative file names, in
// order. The default search path is the working directory.
func WithSearchPath(searchPath []string) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.searchPath = slices.Clone(searchPath)
	})
}

// WithLanguage sets the default language of the resulting registry.
func WithLanguage(lang schema.Language) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.language = lang
	})
}

func WithLogger(logger zerolog.Logger) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.logger = logger
	})
}

func WithNamespacePolicy(policy NamespacePolicy) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.namespacePolicy = policy
	})
}

// SourceFile is a schema file read during compilation.
type SourceFile struct {
	Path   string
	Digest digest.Digest
}

type Result struct {
	// Registry is sealed.
	Registry *schema.Registry

	// Files are listed in the order they were first visited, root first.
	Files    []SourceFile
	Warnings []*Warning
}

// Compile compiles the schema file root and everything it imports.
func Compile(root string, opts ...CompileOption) (*Result, error) {
	return NewCompileOptions(opts...).Compile(root)
}

// CompileSource compiles an in-memory schema. Imports are resolved against
// the search path. If name also resolves to a file on disk, an import of
// that file is treated as the in-memory schema and skipped.
func CompileSource(name string, src []byte, opts ...CompileOption) (*Result, error) {
	return NewCompileOptions(opts...).CompileSource(name, src)
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{
		searchPath: []string{"."},
		language:   schema.LanguageCpp,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	return compileOptions
}

func (opts *CompileOptions) Compile(root string) (*Result, error) {
	c, err := opts.newCompiler()
	if err != nil {
		return nil, err
	}
	if err := c.importFile(root, nil, syntax.Span{}); err != nil {
		return nil, err
	}
	return c.finish(), nil
}

func (opts *CompileOptions) CompileSource(name string, src []byte) (*Result, error) {
	c, err := opts.newCompiler()
	if err != nil {
		return nil, err
	}
	if _, err := c.registry.MarkProcessed(sourceKey(name, opts.searchPath)); err != nil {
		return nil, err
	}
	if err := c.compileFile(&sourceFile{path: name, src: src}); err != nil {
		return nil, err
	}
	return c.finish(), nil
}

func (opts *CompileOptions) newCompiler() (*compiler, error) {
	if !opts.language.Supported() {
		_, err := schema.ParseLanguage(string(opts.language))
		return nil, err
	}
	return &compiler{
		opts:     opts,
		log:      opts.logger.With().Str("component", "compiler").Logger(),
		registry: schema.NewRegistry(schema.WithLanguage(opts.language)),
	}, nil
}

type compiler struct {
	opts     *CompileOptions
	log      zerolog.Logger
	registry *schema.Registry
	files    []SourceFile
	warnings []*Warning
}

func (c *compiler) finish() *Result {
	c.registry.Seal()
	return &Result{
		Registry: c.registry,
		Files:    c.files,
		Warnings: c.warnings,
	}
}

// importFile resolves and compiles the file named by an import or include
// in importer, or the root file if importer is nil.
func (c *compiler) importFile(name string, importer *sourceFile, span syntax.Span) error {
	path, resolveErr := resolve(name, c.opts.searchPath)
	if resolveErr != nil {
		if importer != nil {
			return importer.locate(resolveErr, span)
		}
		return resolveErr
	}

	first, err := c.registry.MarkProcessed(path)
	if err != nil {
		return err
	}
	if !first {
		c.log.Debug().Str("file", path).Msg("already processed, skipping")
		return nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		readErr := errReadFile(path, err)
		if importer != nil {
			return importer.locate(readErr, span)
		}
		return readErr
	}
	return c.compileFile(&sourceFile{path: path, src: src})
}

func (c *compiler) compileFile(file *sourceFile) error {
	fileDigest := digest.FromBytes(file.src)
	c.log.Debug().
		Str("file", file.path).
		Stringer("digest", fileDigest).
		Msg("compiling")
	c.files = append(c.files, SourceFile{
		Path:   file.path,
		Digest: fileDigest,
	})

	parsed, err := syntax.Parse(file.src)
	if err != nil {
		var syntaxErr *syntax.Error
		if errors.As(err, &syntaxErr) {
			return errSyntax(file, syntaxErr)
		}
		return err
	}

	for decl := range parsed.Declarations() {
		if err := c.compileDecl(file, decl); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) compileDecl(file *sourceFile, decl syntax.Declaration) error {
	switch decl := decl.(type) {
	case *syntax.Namespace:
		return c.compileNamespace(file, decl)
	case *syntax.Import:
		return c.importFile(decl.File().Get(), file, decl.File().Span())
	case *syntax.Include:
		if props := decl.Properties(); props != nil && !convertProperties(props).Empty() {
			c.warnings = append(c.warnings, warnIncludeProperties(
				file, decl.File().Get(), props.Span(),
			))
		}
		return c.importFile(decl.File().Get(), file, decl.File().Span())
	case *syntax.External:
		return c.compileExternal(file, decl)
	case *syntax.Enumerate:
		return c.compileEnumerate(file, decl)
	case *syntax.Structure:
		_, err := c.registry.AddStruct(decl.Name().Get(), convertFields(decl.Fields()))
		return c.structErr(file, err, decl.Name(), slices.Collect(decl.Fields()))
	case *syntax.Message:
		_, err := c.registry.AddMessage(decl.Name().Get(), convertFields(decl.Fields()))
		return c.structErr(file, err, decl.Name(), slices.Collect(decl.Fields()))
	}
	return nil
}

func (c *compiler) compileNamespace(file *sourceFile, decl *syntax.Namespace) error {
	ns := decl.Name().Get()
	span := decl.Name().Span()
	if prev, ok := c.registry.Namespace(); ok {
		if prev == ns {
			c.warnings = append(c.warnings, warnSameNamespace(file, ns, span))
			return nil
		}
		if c.opts.namespacePolicy == NamespaceFirstWins {
			c.warnings = append(c.warnings, warnNamespaceIgnored(file, prev, ns, span))
			return nil
		}
	}
	return c.schemaErr(file, c.registry.SetNamespace(ns), span)
}

func (c *compiler) compileExternal(file *sourceFile, decl *syntax.External) error {
	ext := schema.ExternalDecl{Name: decl.Name().Get()}
	specs := slices.Collect(decl.Languages())
	for _, spec := range specs {
		ext.Languages = append(ext.Languages, convertLanguageSpec(spec))
	}
	_, err := c.registry.AddExternal(ext)
	if err == nil {
		return nil
	}

	span := decl.Name().Span()
	var schemaErr *schema.Error
	if errors.As(err, &schemaErr) && schemaErr.Member() != "" {
		// Unsupported languages point at the first block naming them,
		// duplicates at the last.
		for _, spec := range specs {
			if spec.Language().Get() == schemaErr.Member() {
				span = spec.Language().Span()
				if errors.Is(err, schema.ErrUnsupportedLanguage) {
					break
				}
			}
		}
	}
	return c.schemaErr(file, err, span)
}

func (c *compiler) compileEnumerate(file *sourceFile, decl *syntax.Enumerate) error {
	var members []string
	for member := range decl.Members() {
		members = append(members, member.Get())
	}
	_, err := c.registry.AddEnum(decl.Name().Get(), members)
	if err == nil {
		return nil
	}

	span := decl.Name().Span()
	var schemaErr *schema.Error
	if errors.As(err, &schemaErr) && schemaErr.Member() != "" {
		seen := make(map[string]struct{})
		for member := range decl.Members() {
			if _, dup := seen[member.Get()]; dup {
				span = member.Span()
				break
			}
			seen[member.Get()] = struct{}{}
		}
	}
	return c.schemaErr(file, err, span)
}

func (c *compiler) structErr(
	file *sourceFile,
	err error,
	name *syntax.Ident,
	fields []*syntax.Field,
) error {
	if err == nil {
		return nil
	}
	span := name.Span()
	var schemaErr *schema.Error
	if errors.As(err, &schemaErr) && schemaErr.Member() != "" {
		seen := make(map[string]struct{})
		for _, field := range fields {
			fieldName := field.Name().Get()
			if errors.Is(err, schema.ErrUnresolvedType) && fieldName == schemaErr.Member() {
				span = field.TypeName().Span()
				break
			}
			if _, dup := seen[fieldName]; dup {
				span = field.Name().Span()
				break
			}
			seen[fieldName] = struct{}{}
		}
	}
	return c.schemaErr(file, err, span)
}

func (c *compiler) schemaErr(file *sourceFile, err error, span syntax.Span) error {
	if err == nil {
		return nil
	}
	var schemaErr *schema.Error
	if errors.As(err, &schemaErr) {
		return errSchema(file, schemaErr, span)
	}
	return err
}
