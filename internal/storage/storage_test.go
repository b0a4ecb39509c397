// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*PrefStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	store, err := OpenPrefStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

// =============================================================================
// PREF STORE TESTS
// =============================================================================

func TestPrefStoreGetMissing(t *testing.T) {
	store, _ := openTestStore(t)

	v, ok, err := store.Origin("terminal").Get(context.Background(), KeyColorScheme)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get() = (%q, %v), want (\"\", false)", v, ok)
	}
}

func TestPrefStoreSetOverwrites(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)
	kv := store.Origin("terminal")

	require.NoError(t, kv.Set(ctx, KeyAutoTheme, "true"))
	require.NoError(t, kv.Set(ctx, KeyAutoTheme, "false"))

	v, ok, err := kv.Get(ctx, KeyAutoTheme)
	require.NoError(t, err)
	if !ok || v != "false" {
		t.Errorf("Get() = (%q, %v), want (\"false\", true)", v, ok)
	}
}

func TestPrefStoreOriginsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	require.NoError(t, store.Origin("a").Set(ctx, KeyColorScheme, `{"name":"light"}`))

	if _, ok, _ := store.Origin("b").Get(ctx, KeyColorScheme); ok {
		t.Error("origin b sees a value written by origin a")
	}

	origins, err := store.Origins(ctx)
	require.NoError(t, err)
	if len(origins) != 1 || origins[0] != "a" {
		t.Errorf("Origins() = %v, want [a]", origins)
	}

	require.NoError(t, store.Forget(ctx, "a"))
	if _, ok, _ := store.Origin("a").Get(ctx, KeyColorScheme); ok {
		t.Error("Forget() left a value behind")
	}
}

func TestPrefStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	store, path := openTestStore(t)

	require.NoError(t, store.Origin("terminal").Set(ctx, KeyColorScheme, `{"name":"light"}`))
	require.NoError(t, store.Close())

	reopened, err := OpenPrefStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Origin("terminal").Get(ctx, KeyColorScheme)
	require.NoError(t, err)
	if !ok || v != `{"name":"light"}` {
		t.Errorf("Get() after reopen = (%q, %v)", v, ok)
	}
}

func TestPrefStoreClosed(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)
	require.NoError(t, store.Close())

	if err := store.Origin("x").Set(ctx, "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set() after Close = %v, want ErrClosed", err)
	}
	if _, _, err := store.Origin("x").Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get() after Close = %v, want ErrClosed", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestPrefStoreInMemory(t *testing.T) {
	ctx := context.Background()
	store, err := OpenPrefStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Origin("o").Set(ctx, "k", "v"))
	v, ok, err := store.Origin("o").Get(ctx, "k")
	require.NoError(t, err)
	if !ok || v != "v" {
		t.Errorf("Get() = (%q, %v), want (\"v\", true)", v, ok)
	}
}

// =============================================================================
// MEMORY TESTS
// =============================================================================

func TestMemory(t *testing.T) {
	ctx := context.Background()

	var zero Memory
	require.NoError(t, zero.Set(ctx, "k", "v"))
	if v, ok, _ := zero.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("zero Memory Get() = (%q, %v)", v, ok)
	}

	seeded := NewMemory(map[string]string{KeyAutoTheme: "false"})
	if v, ok, _ := seeded.Get(ctx, KeyAutoTheme); !ok || v != "false" {
		t.Errorf("seeded Get() = (%q, %v)", v, ok)
	}
	if _, ok, _ := seeded.Get(ctx, "missing"); ok {
		t.Error("Get(missing) reported ok")
	}
}
