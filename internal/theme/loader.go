// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme provides the color theme catalog and the theme store.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// TOML THEME FILES
// =============================================================================

// LoadFile parses a TOML theme file. A missing name falls back to the file
// name without extension.
func LoadFile(path string, logger *slog.Logger) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme file %s: %w", path, err)
	}

	var t Theme
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 && logger != nil {
		logger.Warn("unrecognized keys in theme file", "path", path, "keys", fmt.Sprint(undecoded))
	}

	if strings.TrimSpace(t.Name) == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := t.Validate(); err != nil {
		return Theme{}, fmt.Errorf("invalid theme file %s: %w", path, err)
	}
	return t, nil
}

// LoadDir loads every *.toml file in dir, sorted by file name. A missing
// directory yields no themes and no error. Files that fail to load are
// logged and skipped.
func LoadDir(dir string, logger *slog.Logger) ([]Theme, error) {
	if dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read theme directory %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var themes []Theme
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		t, err := LoadFile(path, logger)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping theme file", "path", path, "error", err)
			}
			continue
		}
		themes = append(themes, t)
	}
	return themes, nil
}

// LoadCatalog returns the built-in catalog extended by the themes in dir.
func LoadCatalog(dir string, logger *slog.Logger) (*Catalog, error) {
	extra, err := LoadDir(dir, logger)
	if err != nil {
		return nil, err
	}
	return Builtin().With(extra...)
}
