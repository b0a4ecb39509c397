// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for termfolio.
//
// Configuration is read from TOML (preferred) or JSON, layered over built-in
// defaults, then environment overrides are applied and the result validated.
//
// # File Locations
//
//   - ~/.termfolio/config.toml
//   - ~/.termfolio/config.json
//   - Built-in defaults
//
// # Environment Overrides
//
//   - TERMFOLIO_HOSTNAME: profile.hostname
//   - TERMFOLIO_USER: profile.user
//   - TERMFOLIO_DB: storage.db_path
//   - TERMFOLIO_APPEARANCE: appearance.source
//   - TERMFOLIO_LOG_LEVEL: logging.level
//   - TERMFOLIO_ADDR: server.addr
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    // cfg still holds usable defaults
//	}
//	_ = cfg.Set("profile.user", "visitor")
//	err = config.Save(cfg)
package config
