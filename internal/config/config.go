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

// Package config loads the echomsg project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/vicoslab/echolib/messages/schema"
)

// Config is the root configuration structure.
type Config struct {
	// LibraryPath holds the directories of the installed message library.
	// They are searched before any other directory.
	LibraryPath []string `yaml:"library_path"`

	// SearchPath holds extra import directories, searched after the
	// directories given on the command line.
	SearchPath []string `yaml:"search_path"`

	Language string        `yaml:"language"`
	Logging  LoggingConfig `yaml:"logging"`
	Codegen  CodegenConfig `yaml:"codegen"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

type CodegenConfig struct {
	PluginPath []string `yaml:"plugin_path"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return finish(&cfg)
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	ECHOMSG_LIBRARY_PATH         - Message library directories
//	ECHOMSG_SEARCH_PATH          - Extra import directories
//	ECHOMSG_LANGUAGE             - Target language (default: cpp)
//	ECHOMSG_LOG_LEVEL            - Log level (default: warn)
//	ECHOMSG_LOG_FORMAT           - Log format: console or json (default: console)
//	ECHOMSG_CODEGEN_PLUGIN_PATH  - Codegen plugin directories
//
// Path lists use the platform list separator.
func LoadFromEnv() (*Config, error) {
	return finish(&Config{})
}

// LoadWithFallback loads path if it is set, and the environment otherwise.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	return LoadFromEnv()
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	setDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies ECHOMSG_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ECHOMSG_LIBRARY_PATH"); v != "" {
		cfg.LibraryPath = splitList(v)
	}
	if v := os.Getenv("ECHOMSG_SEARCH_PATH"); v != "" {
		cfg.SearchPath = splitList(v)
	}
	if v := os.Getenv("ECHOMSG_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("ECHOMSG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ECHOMSG_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("ECHOMSG_CODEGEN_PLUGIN_PATH"); v != "" {
		cfg.Codegen.PluginPath = splitList(v)
	}
}

func splitList(v string) []string {
	var out []string
	for _, dir := range filepath.SplitList(v) {
		if dir = strings.TrimSpace(dir); dir != "" {
			out = append(out, dir)
		}
	}
	return out
}

func setDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = string(schema.LanguageCpp)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	if _, err := schema.ParseLanguage(cfg.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'console' or 'json', got %q", cfg.Logging.Format)
	}
	for _, dir := range cfg.LibraryPath {
		if dir == "" {
			return fmt.Errorf("library_path contains an empty entry")
		}
	}
	for _, dir := range cfg.SearchPath {
		if dir == "" {
			return fmt.Errorf("search_path contains an empty entry")
		}
	}
	return nil
}

// CompileSearchPath returns the import search path for a compilation. The
// library path comes first, then extra (usually from the command line), then
// the configured search path, and the working directory last.
func (cfg *Config) CompileSearchPath(extra ...string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(dirs []string) {
		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				out = append(out, dir)
			}
		}
	}
	add(cfg.LibraryPath)
	add(extra)
	add(cfg.SearchPath)
	add([]string{"."})
	return out
}

// SchemaLanguage returns the configured target language.
func (cfg *Config) SchemaLanguage() schema.Language {
	lang, _ := schema.ParseLanguage(cfg.Language)
	return lang
}

// LogLevel returns the configured log level.
func (cfg *Config) LogLevel() zerolog.Level {
	level, _ := zerolog.ParseLevel(cfg.Logging.Level)
	return level
}
