// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme provides the color theme catalog and the theme store.
//
// # Catalog
//
// The built-in catalog is embedded from themes.json. Additional themes are
// loaded from TOML files in the configured themes directory; a file theme
// replaces a built-in theme with the same name. Lookups never fail:
// Resolve falls back to the first catalog entry.
//
// # Store
//
// Store holds the active theme and the auto flag. It has two modes:
//
//   - Auto: the theme follows the appearance source ("dark" or "light")
//   - Manual: the theme is whatever was last set explicitly
//
// Every change is written to the preference store under the keys
// "colorscheme" and "autoTheme", and subscribers are notified.
//
// # Usage
//
//	store := theme.NewStore(catalog, kv, source, theme.WithLogger(logger))
//	defer store.Close()
//
//	store.Load(ctx)
//	store.SetManual(ctx, "light")
//	store.EnableAuto(ctx)
package theme
