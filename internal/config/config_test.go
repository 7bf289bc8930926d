package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "auto", cfg.Format)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Typed)
	assert.Equal(t, 0, cfg.Preview)
	assert.False(t, cfg.Columns.SnakeCase)
	assert.Empty(t, cfg.Columns.Renames)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
format: parquet
strict: true
typed: true
preview: 5
columns:
  snake_case: true
  renames:
    userId: id
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".jsoncol.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "parquet", cfg.Format)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Typed)
	assert.Equal(t, 5, cfg.Preview)
	assert.True(t, cfg.Columns.SnakeCase)
	assert.Equal(t, "id", cfg.Columns.Renames["userId"])
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfig_ColumnName(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "userName", cfg.ColumnName("userName"))

	cfg.Columns.SnakeCase = true
	assert.Equal(t, "user_name", cfg.ColumnName("userName"))

	// Explicit renames win over snake_case conversion.
	cfg.Columns.Renames["userName"] = "handle"
	assert.Equal(t, "handle", cfg.ColumnName("userName"))
}

func TestFindConfigFile_WalksUpwards(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	configPath := filepath.Join(tmpDir, ".jsoncol.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("format: arrow\n"), 0644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(cwd) }()
	require.NoError(t, os.Chdir(nested))

	found := FindConfigFile()
	require.NotEmpty(t, found)

	// Resolve symlinks before comparing; temp dirs may be linked.
	wantDir, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(found))
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)
}
