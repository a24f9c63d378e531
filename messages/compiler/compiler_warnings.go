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
	"fmt"

	"github.com/vicoslab/echolib/messages/syntax"
)

// Warning is a diagnostic that does not stop compilation.
type Warning struct {
	code     uint32
	message  string
	file     string
	span     syntax.Span
	position syntax.Position
}

func (w *Warning) String() string {
	return fmt.Sprintf(
		"%s:%d:%d: W%d: %s",
		w.file, w.position.Line, w.position.Column,
		w.code, w.message,
	)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) File() string {
	return w.file
}

func (w *Warning) Span() syntax.Span {
	return w.span
}

func (w *Warning) Position() syntax.Position {
	return w.position
}

func (f *sourceFile) warning(code uint32, message string, span syntax.Span) *Warning {
	return &Warning{
		code:     code,
		message:  message,
		file:     f.path,
		span:     span,
		position: syntax.Locate(f.src, span.Start()),
	}
}

func warnIncludeProperties(file *sourceFile, name string, span syntax.Span) *Warning {
	return file.warning(
		4000,
		fmt.Sprintf("Properties of include %q are ignored", name),
		span,
	)
}

func warnSameNamespace(file *sourceFile, ns string, span syntax.Span) *Warning {
	return file.warning(
		4001,
		fmt.Sprintf("Namespace %q is already declared", ns),
		span,
	)
}

func warnNamespaceIgnored(file *sourceFile, prev, ns string, span syntax.Span) *Warning {
	return file.warning(
		4002,
		fmt.Sprintf("Namespace %q ignored, keeping earlier namespace %q", ns, prev),
		span,
	)
}
