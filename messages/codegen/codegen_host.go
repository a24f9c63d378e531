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

package codegen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	wasm "github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// 1 GiB
const defaultMemoryLimitPages = 16384

type HostOption interface {
	apply(*hostOptions)
}

type hostOption func(*hostOptions)

func (f hostOption) apply(opts *hostOptions) { f(opts) }

type hostOptions struct {
	memoryLimitPages uint32
	stderr           io.Writer
	logger           zerolog.Logger
}

// WithMemoryLimitPages caps plugin memory, in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) HostOption {
	return hostOption(func(opts *hostOptions) {
		opts.memoryLimitPages = pages
	})
}

// WithStderr sets where plugin diagnostics written to stderr go.
func WithStderr(w io.Writer) HostOption {
	return hostOption(func(opts *hostOptions) {
		opts.stderr = w
	})
}

func WithLogger(logger zerolog.Logger) HostOption {
	return hostOption(func(opts *hostOptions) {
		opts.logger = logger
	})
}

// Host owns the WebAssembly runtime that plugins execute in.
type Host struct {
	runtime wasm.Runtime
	stderr  io.Writer
	log     zerolog.Logger
}

func NewHost(ctx context.Context, opts ...HostOption) (*Host, error) {
	hostOpts := hostOptions{
		memoryLimitPages: defaultMemoryLimitPages,
		stderr:           io.Discard,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(&hostOpts)
	}

	runtimeConfig := wasm.NewRuntimeConfigInterpreter().
		WithMemoryLimitPages(hostOpts.memoryLimitPages).
		WithCloseOnContextDone(true)
	runtime := wasm.NewRuntimeWithConfig(ctx, runtimeConfig)

	// Plugins built for WASI import its functions even when they never
	// touch the filesystem.
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		runtime.Close(ctx)
		return nil, fmt.Errorf("Instantiate WASI: %w", err)
	}
	return &Host{
		runtime: runtime,
		stderr:  hostOpts.stderr,
		log:     hostOpts.logger.With().Str("component", "codegen").Logger(),
	}, nil
}

func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}

// Locate finds the plugin for language in the given directories.
func Locate(pluginPath []string, language string) (string, error) {
	if len(pluginPath) == 0 {
		return "", fmt.Errorf("No plugin path set, use --plugin-path= or $ECHOMSG_CODEGEN_PLUGIN_PATH")
	}
	basename := PluginName(language)
	for _, dir := range pluginPath {
		path := filepath.Join(dir, basename)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("Codegen plugin %s not found in plugin path %q", basename, pluginPath)
}

// Plugin is an instantiated code generator.
type Plugin struct {
	name     string
	module   api.Module
	allocate api.Function
	generate api.Function
	log      zerolog.Logger
}

// LoadFile compiles and instantiates the plugin at path.
func (h *Host) LoadFile(ctx context.Context, path string) (*Plugin, error) {
	pluginBin, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return h.Load(ctx, filepath.Base(path), pluginBin)
}

func (h *Host) Load(ctx context.Context, name string, pluginBin []byte) (*Plugin, error) {
	log := h.log.With().Str("plugin", name).Logger()
	log.Debug().Int("size", len(pluginBin)).Msg("compiling plugin")

	pluginExe, err := h.runtime.CompileModule(ctx, pluginBin)
	if err != nil {
		return nil, fmt.Errorf("Compile plugin %s: %w", name, err)
	}
	moduleConfig := wasm.NewModuleConfig().
		WithName(name).
		WithStderr(h.stderr).
		WithStartFunctions("_initialize")
	module, err := h.runtime.InstantiateModule(ctx, pluginExe, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("Instantiate plugin %s: %w", name, err)
	}

	plugin := &Plugin{
		name:     name,
		module:   module,
		allocate: module.ExportedFunction(ExportAllocate),
		generate: module.ExportedFunction(ExportGenerate),
		log:      log,
	}
	if plugin.allocate == nil || plugin.generate == nil {
		module.Close(ctx)
		return nil, fmt.Errorf(
			"Plugin %s does not export %s and %s",
			name, ExportAllocate, ExportGenerate,
		)
	}
	return plugin, nil
}

func (p *Plugin) Close(ctx context.Context) error {
	return p.module.Close(ctx)
}

func (p *Plugin) alloc(ctx context.Context, size uint32) (uint32, error) {
	results, err := p.allocate.Call(ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ExportAllocate, err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, fmt.Errorf("%s: failed to allocate %d bytes", ExportAllocate, size)
	}
	return ptr, nil
}

// Generate runs the plugin on req. A response with a non-empty Error is
// returned as an error.
func (p *Plugin) Generate(ctx context.Context, req *Request) (*Response, error) {
	requestBuf, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	mem := p.module.Memory()
	if mem == nil {
		return nil, fmt.Errorf("Plugin %s does not export memory", p.name)
	}

	requestPtr, err := p.alloc(ctx, uint32(len(requestBuf)))
	if err != nil {
		return nil, err
	}
	if !mem.Write(requestPtr, requestBuf) {
		return nil, fmt.Errorf("Failed to write request message")
	}
	responsePtrPtr, err := p.alloc(ctx, 4)
	if err != nil {
		return nil, err
	}

	p.log.Debug().Int("request_size", len(requestBuf)).Msg("generating")
	results, err := p.generate.Call(
		ctx,
		uint64(requestPtr),
		uint64(len(requestBuf)),
		uint64(responsePtrPtr),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ExportGenerate, err)
	}
	rc := uint8(results[0])

	responsePtr, ok := mem.ReadUint32Le(responsePtrPtr)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message address")
	}
	responseLen, ok := mem.ReadUint32Le(responsePtr)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message length")
	}
	responseBuf, ok := mem.Read(responsePtr, 4+responseLen)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message")
	}
	resp, err := DecodeResponse(responseBuf)
	if err != nil {
		return nil, err
	}
	if rc != 0 || resp.Error != "" {
		msg := resp.Error
		if msg == "" {
			msg = fmt.Sprintf("plugin returned code %d", rc)
		}
		return nil, fmt.Errorf("Plugin %s failed: %s", p.name, msg)
	}
	return resp, nil
}
