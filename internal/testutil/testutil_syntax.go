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

package testutil

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vicoslab/echolib/messages/syntax"
)

// DumpJSON renders a syntax tree as indented JSON, one object per node,
// for comparing parse results against expected output.
func DumpJSON(node syntax.Node) []byte {
	var buf bytes.Buffer
	dumpJSON(&buf, node, 0)
	return buf.Bytes()
}

func quoteJSON(s string) []byte {
	quoted, _ := json.Marshal(s)
	return quoted
}

func nodeKind(node syntax.Node) string {
	ty := fmt.Sprintf("%T", node)
	var nameBuf strings.Builder
	for ii, c := range strings.TrimPrefix(ty, "*syntax.") {
		if c >= 'A' && c <= 'Z' {
			if ii > 0 {
				nameBuf.WriteRune('-')
			}
			nameBuf.WriteRune(c + ('a' - 'A'))
		} else {
			nameBuf.WriteRune(c)
		}
	}
	return nameBuf.String()
}

func dumpJSON(buf *bytes.Buffer, node syntax.Node, indent int) {
	buf.WriteString(strings.Repeat("    ", indent))
	buf.WriteString("{")
	buf.Write(quoteJSON(nodeKind(node)))
	buf.WriteString(": {\n")
	dumpSpanJSON(buf, node.Span(), indent+1)

	writeField := func(name string, value []byte) {
		buf.WriteString(",\n")
		buf.WriteString(strings.Repeat("    ", indent+1))
		buf.Write(quoteJSON(name))
		buf.WriteString(": ")
		buf.Write(value)
	}

	switch node := node.(type) {
	case *syntax.Space, *syntax.Newline, *syntax.Sigil, *syntax.Keyword:
		writeField("unparse", quoteJSON(syntax.Unparse(node)))
	case *syntax.Comment:
		writeField("text", quoteJSON(node.Text()))
	case *syntax.Ident:
		writeField("value", quoteJSON(node.Get()))
	case *syntax.IntLit:
		writeField("value", []byte(strconv.FormatInt(node.Get(), 10)))
	case *syntax.FloatLit:
		writeField("value", []byte(strconv.FormatFloat(node.Get(), 'g', -1, 64)))
	case *syntax.TextLit:
		writeField("value", quoteJSON(node.Get()))
	case *syntax.BoolLit:
		writeField("value", []byte(strconv.FormatBool(node.Get())))
	}

	firstChild := true
	for child := range node.ChildNodes() {
		if firstChild {
			buf.WriteString(",\n")
			buf.WriteString(strings.Repeat("    ", indent+1))
			buf.WriteString("\"child-nodes\": [\n")
		} else {
			buf.WriteString(",\n")
		}
		firstChild = false
		dumpJSON(buf, child, indent+2)
	}
	if !firstChild {
		buf.WriteString("\n")
		buf.WriteString(strings.Repeat("    ", indent+1))
		buf.WriteString("]")
	}
	buf.WriteString("}}")
}

func dumpSpanJSON(buf *bytes.Buffer, span syntax.Span, indent int) {
	buf.WriteString(strings.Repeat("    ", indent))
	buf.WriteString(fmt.Sprintf(
		`"span": {"start": %d, "len": %d}`,
		span.Start(),
		span.Len(),
	))
}
