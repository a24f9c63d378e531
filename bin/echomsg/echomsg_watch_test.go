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

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vicoslab/echolib/internal/testutil"
	"github.com/vicoslab/echolib/messages/compiler"
)

type watchResult struct {
	result *compiler.Result
	err    error
}

func startWatcher(t *testing.T, dir, root string) <-chan watchResult {
	t.Helper()
	results := make(chan watchResult, 64)
	compile := func() (*compiler.Result, error) {
		return compiler.Compile(root, compiler.WithSearchPath([]string{dir}))
	}
	onResult := func(result *compiler.Result, err error) {
		results <- watchResult{result, err}
	}
	w, err := newSchemaWatcher(filepath.Join(dir, root), compile, onResult, zerolog.Nop())
	testutil.AssertNoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run: %v", err)
		}
	})
	return results
}

// awaitResult waits for a result matching ok. Editors and os.WriteFile
// may produce intermediate states, so non-matching results are skipped.
func awaitResult(t *testing.T, results <-chan watchResult, ok func(watchResult) bool) watchResult {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case got := <-results:
			if ok(got) {
				return got
			}
		case <-timeout:
			t.Fatal("timed out waiting for recompilation")
		}
	}
}

func succeeded(got watchResult) bool { return got.err == nil }

func TestSchemaWatcher(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteSchemas(t, map[string]string{
		"root.msg": "import \"dep.msg\";\nstructure A { B b; }\n",
		"dep.msg":  "structure B { int x; }\n",
	})
	results := startWatcher(t, dir, "root.msg")

	first := awaitResult(t, results, succeeded)
	testutil.ExpectEq(t, 2, len(first.result.Files))

	depPath := filepath.Join(dir, "dep.msg")
	testutil.AssertNoError(t, os.WriteFile(depPath, []byte("structure C { int x; }\n"), 0o644))
	broken := awaitResult(t, results, func(got watchResult) bool {
		return errors.Is(got.err, compiler.ErrUnresolvedType)
	})
	testutil.ExpectEq(t, (*compiler.Result)(nil), broken.result)

	// dep.msg is still tracked after the failed build
	testutil.AssertNoError(t, os.WriteFile(depPath, []byte("structure B { double x; }\n"), 0o644))
	fixed := awaitResult(t, results, succeeded)
	typ, ok := fixed.result.Registry.Lookup("B")
	testutil.ExpectTrue(t, ok)
	prev, _ := first.result.Registry.Lookup("B")
	testutil.ExpectNotEq(t, prev.Hash(), typ.Hash())
}

func TestSchemaWatcherMissingImport(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteSchemas(t, map[string]string{
		"root.msg": "import \"dep.msg\";\nstructure A { B b; }\n",
	})
	results := startWatcher(t, dir, "root.msg")

	awaitResult(t, results, func(got watchResult) bool {
		return errors.Is(got.err, compiler.ErrMissingFile)
	})

	depPath := filepath.Join(dir, "dep.msg")
	testutil.AssertNoError(t, os.WriteFile(depPath, []byte("structure B { int x; }\n"), 0o644))
	fixed := awaitResult(t, results, succeeded)
	testutil.ExpectEq(t, 2, len(fixed.result.Files))
	_, ok := fixed.result.Registry.Lookup("B")
	testutil.ExpectTrue(t, ok)
}

func TestSchemaWatcherSyntaxError(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteSchemas(t, map[string]string{
		"root.msg": "structure A { int x }\n",
	})
	results := startWatcher(t, dir, "root.msg")

	awaitResult(t, results, func(got watchResult) bool {
		return errors.Is(got.err, compiler.ErrSyntax)
	})

	rootPath := filepath.Join(dir, "root.msg")
	testutil.AssertNoError(t, os.WriteFile(rootPath, []byte("structure A { int x; }\n"), 0o644))
	fixed := awaitResult(t, results, succeeded)
	_, ok := fixed.result.Registry.Lookup("A")
	testutil.ExpectTrue(t, ok)
}
