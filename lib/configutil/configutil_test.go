package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string   `json:"name"`
	Limit   int      `json:"limit"`
	Queries []string `json:"queries"`
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.json5"),
		[]byte(`{
			// comments are allowed
			name: "base",
			limit: 10,
		}`),
		0600,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{ name: "local" }`),
		0600,
	))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Name)
	require.Equal(t, 10, cfg.Limit)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "config.json5"),
		[]byte(`{ name: "root" }`),
		0600,
	))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer os.Chdir(wd)

	cfg, path, err := ReadRecursively[testConfig]("config.json5")
	require.NoError(t, err)
	require.Equal(t, "root", cfg.Name)
	require.Equal(t, "config.json5", filepath.Base(path))
}

func TestWithDefaults(t *testing.T) {
	cfg, err := WithDefaults(
		testConfig{Name: "set"},
		testConfig{Name: "default", Limit: 10, Queries: []string{"SELECT 1"}},
	)
	require.NoError(t, err)
	require.Equal(t, "set", cfg.Name)
	require.Equal(t, 10, cfg.Limit)
	require.Equal(t, []string{"SELECT 1"}, cfg.Queries)
}
