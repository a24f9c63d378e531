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
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/opencontainers/go-digest"
	"github.com/rs/zerolog"

	"github.com/vicoslab/echolib/messages/compiler"
)

// schemaWatcher recompiles a schema whenever one of the files it was
// compiled from changes content.
type schemaWatcher struct {
	root     string
	compile  func() (*compiler.Result, error)
	onResult func(*compiler.Result, error)
	log      zerolog.Logger

	watcher *fsnotify.Watcher
	digests map[string]digest.Digest
	dirs    map[string]bool
	failed  bool
}

func newSchemaWatcher(
	root string,
	compile func() (*compiler.Result, error),
	onResult func(*compiler.Result, error),
	log zerolog.Logger,
) (*schemaWatcher, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &schemaWatcher{
		root:     root,
		compile:  compile,
		onResult: onResult,
		log:      log,
		watcher:  watcher,
		digests:  make(map[string]digest.Digest),
		dirs:     make(map[string]bool),
	}, nil
}

// Run compiles once and then on every relevant change, until ctx is done.
func (w *schemaWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.rebuild(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.changed(event) {
				continue
			}
			w.log.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("schema file changed")
			if err := w.rebuild(); err != nil {
				return err
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("file watcher error")
		}
	}
}

func (w *schemaWatcher) rebuild() error {
	result, err := w.compile()
	w.failed = result == nil

	if result != nil {
		digests := make(map[string]digest.Digest, len(result.Files))
		for _, file := range result.Files {
			digests[file.Path] = file.Digest
		}
		w.digests = digests
	} else {
		// Keep the previous file set so fixing any of them triggers a
		// rebuild, and add the files named by the error.
		w.track(w.root)
		var compileErr *compiler.Error
		if errors.As(err, &compileErr) && compileErr.File() != "" {
			w.track(compileErr.File())
		}
	}

	for path := range w.digests {
		dir := filepath.Dir(path)
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			w.log.Warn().Err(err).Str("dir", dir).Msg("cannot watch directory")
			continue
		}
		w.dirs[dir] = true
		w.log.Debug().Str("dir", dir).Msg("watching directory")
	}
	if len(w.dirs) == 0 {
		return fmt.Errorf("No watchable directory for %s", w.root)
	}

	// Watches are in place before reporting, so edits made in response to
	// a result are not missed.
	w.onResult(result, err)
	return nil
}

func (w *schemaWatcher) track(path string) {
	if _, ok := w.digests[path]; ok {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		w.digests[path] = ""
		return
	}
	w.digests[path] = digest.FromBytes(data)
}

// changed reports whether event altered the content of a tracked file.
// Editors that save atomically produce Create or Rename events, so only the
// content digest is trusted. While the last build is failing, a file created
// in a watched directory is tracked and counts as a change, since it may be
// an import that could not be found.
func (w *schemaWatcher) changed(event fsnotify.Event) bool {
	prev, ok := w.digests[event.Name]
	if !ok {
		if !w.failed || !event.Has(fsnotify.Create) {
			return false
		}
		data, err := os.ReadFile(event.Name)
		if err != nil {
			return false
		}
		w.digests[event.Name] = digest.FromBytes(data)
		return true
	}
	var cur digest.Digest
	if data, err := os.ReadFile(event.Name); err == nil {
		cur = digest.FromBytes(data)
	}
	if cur == prev {
		return false
	}
	w.digests[event.Name] = cur
	return true
}
