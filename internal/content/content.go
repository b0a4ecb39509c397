// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package content holds the portfolio shown by the shell.
package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed data
var embedded embed.FS

// File names known to the shell, in the order `ls` prints them.
const (
	FileReadme     = "README.md"
	FileSkills     = "skills.json"
	FileEducation  = "education.json"
	FileExperience = "experience.json"
	FileCV         = "cv.pdf"

	fileProfile = "profile.toml"
)

// Listing is the fixed directory listing.
var Listing = []string{FileReadme, FileSkills, FileEducation, FileExperience, FileCV}

// =============================================================================
// RECORDS
// =============================================================================

// Link is a labelled URL shown by `contact`.
type Link struct {
	Label string `toml:"label" json:"label"`
	URL   string `toml:"url" json:"url"`
}

// Profile describes the portfolio owner.
type Profile struct {
	Name     string `toml:"name"`
	Title    string `toml:"title"`
	Email    string `toml:"email"`
	Location string `toml:"location"`
	CVURL    string `toml:"cv_url"`
	SudoURL  string `toml:"sudo_url"`
	About    string `toml:"about"`
	Links    []Link `toml:"links"`
}

// Experience is one position.
type Experience struct {
	Company    string   `json:"company"`
	Role       string   `json:"role"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Location   string   `json:"location"`
	Highlights []string `json:"highlights"`
}

// Education is one degree.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Notes  string `json:"notes"`
}

// SkillGroup is a category of skills.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// =============================================================================
// CONTENT
// =============================================================================

// Content is the loaded portfolio. It is read-only after Load.
type Content struct {
	Profile    Profile
	Experience []Experience
	Education  []Education
	Skills     []SkillGroup
	Readme     string

	files map[string][]byte
}

// Default returns the embedded content.
func Default() *Content {
	c, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("content: embedded data is invalid: %v", err))
	}
	return c
}

// Load reads the embedded content, replacing each file that also exists in
// dir. An empty dir uses the embedded content only.
func Load(dir string) (*Content, error) {
	c := &Content{files: make(map[string][]byte)}

	for _, name := range []string{fileProfile, FileExperience, FileEducation, FileSkills, FileReadme} {
		data, err := readLayered(dir, name)
		if err != nil {
			return nil, err
		}
		c.files[name] = data
	}

	if _, err := toml.Decode(string(c.files[fileProfile]), &c.Profile); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fileProfile, err)
	}
	if err := json.Unmarshal(c.files[FileExperience], &c.Experience); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileExperience, err)
	}
	if err := json.Unmarshal(c.files[FileEducation], &c.Education); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileEducation, err)
	}
	if err := json.Unmarshal(c.files[FileSkills], &c.Skills); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileSkills, err)
	}
	c.Readme = string(c.files[FileReadme])
	c.Profile.About = strings.TrimSpace(c.Profile.About)

	return c, nil
}

// readLayered prefers dir/name and falls back to the embedded copy.
func readLayered(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	data, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return data, nil
}

// File returns the raw bytes of a listed data file. cv.pdf has no bytes and
// is handled by the caller.
func (c *Content) File(name string) ([]byte, bool) {
	if name == fileProfile {
		return nil, false
	}
	data, ok := c.files[name]
	return data, ok
}

// Listed reports whether name is in the fixed listing.
func Listed(name string) bool {
	for _, n := range Listing {
		if n == name {
			return true
		}
	}
	return false
}
