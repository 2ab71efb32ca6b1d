package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Path(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_HomeEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")
	t.Setenv(HomeEnv, dir)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.DirExists(t, dir)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("boundary.scope", "partial"))
	require.NoError(t, store.Set("boundary.include", []string{"enteric", "manure"}))
	require.NoError(t, store.Set("batch.workers", 8))
	require.NoError(t, store.Set("factors.gwp_ch4", 28.5))
	require.NoError(t, store.Set("debug", true))

	assert.Equal(t, "partial", store.GetString("boundary.scope"))
	assert.Equal(t, []string{"enteric", "manure"}, store.GetStringSlice("boundary.include"))
	assert.Equal(t, 8, store.GetInt("batch.workers"))
	assert.Equal(t, 8.0, store.GetFloat("batch.workers"))
	assert.InDelta(t, 28.5, store.GetFloat("factors.gwp_ch4"), 1e-12)
	assert.True(t, store.GetBool("debug"))

	// Wrong types and missing keys read as zero values.
	assert.Empty(t, store.GetString("batch.workers"))
	assert.Zero(t, store.GetInt("boundary.scope"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("boundary.scope"))
	assert.Nil(t, store.GetStringSlice("batch.workers"))
}

func TestConfigStore_RoundTripsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("boundary.scope", "full"))
	require.NoError(t, store.Set("models.enteric.ef_milking", 120.5))
	require.NoError(t, store.Set("batch.workers", 2))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[boundary]")
	assert.NotContains(t, string(raw), `"boundary.scope"`)

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"batch.workers", "boundary.scope", "models.enteric.ef_milking"}, reopened.Keys())
	assert.Equal(t, "full", reopened.GetString("boundary.scope"))
	assert.Equal(t, 2, reopened.GetInt("batch.workers"))
	assert.InDelta(t, 120.5, reopened.GetFloat("models.enteric.ef_milking"), 1e-12)
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[boundary]
scope = "partial"
include = ["soil", "energy"]

[factors]
gwp_n2o = 265
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"soil", "energy"}, store.GetStringSlice("boundary.include"))
	assert.Equal(t, 265.0, store.GetFloat("factors.gwp_n2o"))
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("scope = [unterminated"), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":     1,
		"a.b":   2,
		"c.d.e": "x",
	})

	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": 2},
		"c": map[string]any{"d": map[string]any{"e": "x"}},
	}, nested)
	assert.Equal(t, map[string]any{"a.b": 2, "c.d.e": "x"}, flattenMap(nested, ""))
}
