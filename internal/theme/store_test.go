// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/appearance"
	"github.com/jeranaias/termfolio/internal/storage"
)

func newTestStore(t *testing.T, kv storage.KV, src appearance.Source) *Store {
	t.Helper()
	s := NewStore(Builtin(), kv, src)
	t.Cleanup(func() { s.Close() })
	return s
}

func persisted(t *testing.T, kv storage.KV) (string, bool) {
	t.Helper()
	ctx := context.Background()

	rawTheme, ok, err := kv.Get(ctx, storage.KeyColorScheme)
	require.NoError(t, err)
	require.True(t, ok, "colorscheme not persisted")
	rawAuto, ok, err := kv.Get(ctx, storage.KeyAutoTheme)
	require.NoError(t, err)
	require.True(t, ok, "autoTheme not persisted")

	var th Theme
	require.NoError(t, json.Unmarshal([]byte(rawTheme), &th))
	var auto bool
	require.NoError(t, json.Unmarshal([]byte(rawAuto), &auto))
	return th.Name, auto
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		name string
		seed map[string]string
		os   bool
		want string
		auto bool
	}{
		{"empty store, dark os", nil, true, "dark", true},
		{"empty store, light os", nil, false, "light", true},
		{"malformed values", map[string]string{
			storage.KeyColorScheme: "{not json",
			storage.KeyAutoTheme:   "maybe",
		}, true, "dark", true},
		{"manual light", map[string]string{
			storage.KeyColorScheme: `{"name":"light"}`,
			storage.KeyAutoTheme:   "false",
		}, true, "light", false},
		{"manual unknown theme", map[string]string{
			storage.KeyColorScheme: `{"name":"vaporwave"}`,
			storage.KeyAutoTheme:   "false",
		}, false, "dark", false},
		{"manual with malformed theme", map[string]string{
			storage.KeyColorScheme: `42`,
			storage.KeyAutoTheme:   "false",
		}, false, "dark", false},
		{"auto ignores persisted theme", map[string]string{
			storage.KeyColorScheme: `{"name":"nord"}`,
			storage.KeyAutoTheme:   "true",
		}, false, "light", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := storage.NewMemory(tc.seed)
			s := newTestStore(t, kv, appearance.NewFixed(tc.os))

			st := s.Load(context.Background())
			if st.Theme.Name != tc.want || st.Auto != tc.auto {
				t.Errorf("Load() = {%s %v}, want {%s %v}", st.Theme.Name, st.Auto, tc.want, tc.auto)
			}

			if tc.seed == nil {
				for _, key := range []string{storage.KeyColorScheme, storage.KeyAutoTheme} {
					if _, ok, _ := kv.Get(context.Background(), key); ok {
						t.Errorf("Load() on an empty store wrote %s", key)
					}
				}
				return
			}
			name, auto := persisted(t, kv)
			if name != tc.want || auto != tc.auto {
				t.Errorf("persisted = {%s %v}, want {%s %v}", name, auto, tc.want, tc.auto)
			}
		})
	}
}

type countingKV struct {
	storage.KV
	sets int
}

func (c *countingKV) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.KV.Set(ctx, key, value)
}

func TestLoadDoesNotRewriteMatchingValues(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(nil)

	first := newTestStore(t, mem, appearance.NewFixed(true))
	first.Load(ctx)
	first.SetManual(ctx, "nord")

	kv := &countingKV{KV: mem}
	second := newTestStore(t, kv, appearance.NewFixed(true))
	if st := second.Load(ctx); st.Theme.Name != "nord" {
		t.Fatalf("Load() = %q, want nord", st.Theme.Name)
	}
	if kv.sets != 0 {
		t.Errorf("Load() wrote %d values that were already stored", kv.sets)
	}
}

// =============================================================================
// TRANSITION TESTS
// =============================================================================

func TestLightThenAutoTheme(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(nil)
	pref := appearance.NewFixed(true)
	s := newTestStore(t, kv, pref)
	s.Load(ctx)

	st := s.SetManual(ctx, LightName)
	if st.Theme.Name != "light" || st.Auto {
		t.Fatalf("SetManual(light) = {%s %v}, want {light false}", st.Theme.Name, st.Auto)
	}

	// The listener stays subscribed but is inert in manual mode.
	pref.Set(false)
	pref.Set(true)
	if s.Current().Name != "light" {
		t.Errorf("manual theme changed by OS signal to %q", s.Current().Name)
	}

	st = s.EnableAuto(ctx)
	if st.Theme.Name != "dark" || !st.Auto {
		t.Errorf("EnableAuto() = {%s %v}, want {dark true}", st.Theme.Name, st.Auto)
	}
	if name, auto := persisted(t, kv); name != "dark" || !auto {
		t.Errorf("persisted = {%s %v}, want {dark true}", name, auto)
	}
}

func TestAutoFollowsPreference(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(nil)
	pref := appearance.NewFixed(true)
	s := newTestStore(t, kv, pref)
	s.Load(ctx)

	var seen []string
	cancel := s.Subscribe(func(st State) { seen = append(seen, st.Theme.Name) })
	defer cancel()

	pref.Set(false)
	if s.Current().Name != "light" {
		t.Errorf("Current() = %q after OS went light", s.Current().Name)
	}
	if name, _ := persisted(t, kv); name != "light" {
		t.Errorf("persisted theme = %q, want light", name)
	}

	pref.Set(true)
	if len(seen) != 2 || seen[0] != "light" || seen[1] != "dark" {
		t.Errorf("notifications = %v, want [light dark]", seen)
	}
}

func TestEnableAutoSubscribesOnce(t *testing.T) {
	ctx := context.Background()
	pref := appearance.NewFixed(true)
	s := newTestStore(t, storage.NewMemory(nil), pref)

	s.EnableAuto(ctx)
	s.SetManual(ctx, DarkName)
	s.EnableAuto(ctx)
	s.EnableAuto(ctx)

	var count int
	cancel := s.Subscribe(func(State) { count++ })
	defer cancel()

	pref.Set(false)
	if count != 1 {
		t.Errorf("one OS change produced %d notifications, want 1", count)
	}
}

func TestSetManualUnknownFallsBack(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(nil), appearance.NewFixed(false))

	st := s.SetManual(context.Background(), "no-such-theme")
	if st.Theme.Name != Builtin().First().Name {
		t.Errorf("SetManual(unknown) = %q, want first catalog entry", st.Theme.Name)
	}
}

func TestRoundTripAcrossRestart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(nil)

	first := NewStore(Builtin(), kv, appearance.NewFixed(true))
	first.Load(ctx)
	first.SetManual(ctx, "nord")
	require.NoError(t, first.Close())

	second := newTestStore(t, kv, appearance.NewFixed(false))
	st := second.Load(ctx)
	if st.Theme.Name != "nord" || st.Auto {
		t.Errorf("reloaded = {%s %v}, want {nord false}", st.Theme.Name, st.Auto)
	}
}

func TestCloseStopsListener(t *testing.T) {
	ctx := context.Background()
	pref := appearance.NewFixed(true)
	s := NewStore(Builtin(), storage.NewMemory(nil), pref)
	s.Load(ctx)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	pref.Set(false)
	if s.Current().Name != "dark" {
		t.Errorf("closed store followed OS change to %q", s.Current().Name)
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestPersistenceFailureKeepsState(t *testing.T) {
	s := newTestStore(t, failingKV{}, appearance.NewFixed(true))

	st := s.Load(context.Background())
	if st.Theme.Name != "dark" || !st.Auto {
		t.Errorf("Load() with failing storage = {%s %v}, want defaults", st.Theme.Name, st.Auto)
	}
	s.SetManual(context.Background(), LightName)
	if s.Current().Name != "light" || s.Auto() {
		t.Error("SetManual() did not change state when persistence failed")
	}
}
