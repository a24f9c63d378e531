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
	"os"
	"path/filepath"
)

// resolve locates a schema file and returns its canonical path: absolute,
// cleaned, with symbolic links evaluated. Absolute names must exist. For
// relative names the first search path entry containing a regular file of
// that name wins.
func resolve(name string, searchPath []string) (string, *Error) {
	if filepath.IsAbs(name) {
		if !isRegularFile(name) {
			return "", errMissingAbsFile(name)
		}
		return canonicalPath(name)
	}
	for _, dir := range searchPath {
		candidate := filepath.Join(dir, name)
		if isRegularFile(candidate) {
			return canonicalPath(candidate)
		}
	}
	return "", errMissingFile(name, searchPath)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func canonicalPath(path string) (string, *Error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errReadFile(path, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errReadFile(path, err)
	}
	return canonical, nil
}

// sourceKey returns the processed-file key for an in-memory schema. A name
// naming a file on disk, directly or through the search path, shares that
// file's canonical path. Other names are used as given.
func sourceKey(name string, searchPath []string) string {
	if isRegularFile(name) {
		if path, err := canonicalPath(name); err == nil {
			return path
		}
	}
	if path, err := resolve(name, searchPath); err == nil {
		return path
	}
	return name
}
