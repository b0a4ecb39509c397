// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package content holds the portfolio shown by the shell: profile, work
// experience, education, skills and the README.
//
// The default content is embedded in the binary. Load accepts a directory
// whose files replace the embedded ones one by one, so a user can override
// only profile.toml and keep the rest.
//
// # Files
//
//   - profile.toml: name, title, email, links, CV and about text
//   - experience.json, education.json, skills.json: record lists
//   - README.md: markdown shown by `cat README.md`
package content
