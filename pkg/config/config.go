// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultRoot is the projects directory, relative to the working directory
	DefaultRoot = "proyectos"
	// DefaultFile is the config file looked up when none is given
	DefaultFile = ".restyle.yaml"
)

// Parser parses configuration data in one format
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// Register adds a parser to the registry
func Register(p Parser) {
	parsers = append(parsers, p)
}

// GetParser returns the first registered parser that accepts filename
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Config controls a run. The replacement rules are not part of it.
type Config struct {
	Root   string   `json:"root,omitempty" yaml:"root,omitempty"`     // Projects directory
	Skip   []string `json:"skip,omitempty" yaml:"skip,omitempty"`     // Glob patterns of project directory names to leave out
	DryRun bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty"` // Report instead of writing
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{Root: DefaultRoot}
}

// Load reads and validates the config at path. The file must exist.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	return parse(ctx, path, data)
}

// LoadOrDefault is Load for a config file that may be absent: a missing
// file yields Default().
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no configuration file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}

func parse(ctx context.Context, path string, data []byte) (*Config, error) {
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate fills defaults, cleans the root path and checks skip patterns
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	cfg.Root = filepath.Clean(cfg.Root)

	for i, pattern := range cfg.Skip {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("skip[%d]: invalid pattern %q", i, pattern)
		}
	}

	return nil
}

func (cfg *Config) String() string {
	mode := "write"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s (%s, %d skip patterns)", cfg.Root, mode, len(cfg.Skip))
}
