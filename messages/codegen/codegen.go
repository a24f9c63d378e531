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

// Package codegen runs code generator plugins against compiled schemas.
//
// A plugin is a WebAssembly module exporting two functions:
//
//	echomsg_codegen_allocate(len u32) -> ptr u32
//	echomsg_codegen_generate(req_ptr u32, req_len u32, resp_ptr_ptr u32) -> u8
//
// The host allocates a buffer in plugin memory, writes the JSON [Request]
// into it and calls generate. The plugin stores the address of its response
// at resp_ptr_ptr. A response is a 4-byte little-endian length followed by
// that many bytes of JSON [Response]. A non-zero return code marks failure,
// in which case the response carries an error message.
package codegen

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vicoslab/echolib/messages/encoding/echojson"
)

const (
	ExportAllocate = "echomsg_codegen_allocate"
	ExportGenerate = "echomsg_codegen_generate"
)

type Request struct {
	Language string `json:"language"`

	// Basename is the root schema file name without directory or extension.
	// Plugins derive output file names from it.
	Basename string `json:"basename"`

	Schema  *echojson.Document `json:"schema"`
	Options map[string]string  `json:"options,omitempty"`
}

type Response struct {
	Error string       `json:"error,omitempty"`
	Files []OutputFile `json:"files"`
}

type OutputFile struct {
	// Path components relative to the output directory.
	Path    []string `json:"path"`
	Content string   `json:"content"`
}

func EncodeRequest(req *Request) ([]byte, error) {
	return json.Marshal(req)
}

// EncodeResponse frames a response for returning from a plugin.
func EncodeResponse(resp *Response) ([]byte, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 4, 4+len(body))
	binary.LittleEndian.PutUint32(buf, uint32(len(body)))
	return append(buf, body...), nil
}

// DecodeResponse parses a framed response. Bytes after the framed body are
// ignored.
func DecodeResponse(buf []byte) (*Response, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("Response too short (%d bytes)", len(buf))
	}
	bodyLen := binary.LittleEndian.Uint32(buf)
	if uint64(bodyLen) > uint64(len(buf)-4) {
		return nil, fmt.Errorf(
			"Response length %d exceeds buffer (%d bytes)",
			bodyLen, len(buf)-4,
		)
	}
	var resp Response
	if err := json.Unmarshal(buf[4:4+bodyLen], &resp); err != nil {
		return nil, fmt.Errorf("Decode response: %w", err)
	}
	return &resp, nil
}

// OutputPath joins the path of file onto outDir, rejecting paths that
// could escape it.
func OutputPath(outDir string, file OutputFile) (string, error) {
	parts := file.Path
	if len(parts) == 0 {
		return "", fmt.Errorf("Invalid output path %#v: empty", parts)
	}
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("Invalid output path %#v: bad path component %q", parts, part)
		}
		if part[0] == '/' || filepath.IsAbs(part) {
			return "", fmt.Errorf("Invalid output path %#v: absolute path component %q", parts, part)
		}
		if strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("Invalid output path %#v: component %q contains a path separator", parts, part)
		}
	}
	return filepath.Join(append([]string{outDir}, parts...)...), nil
}

// PluginName is the file name of the plugin generating code for language.
func PluginName(language string) string {
	return fmt.Sprintf("echomsg-codegen-%s.wasm", language)
}
