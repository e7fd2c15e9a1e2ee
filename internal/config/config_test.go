package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "venue_cli_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.example.com
venueName: The Anchor
defaultLocationID: 3
closures:
  - rrule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"
    label: Christmas Day
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "The Anchor", cfg.VenueName)
	assert.Equal(t, int64(3), cfg.DefaultLocationID)
	require.Len(t, cfg.Closures, 1)
	assert.Equal(t, "Christmas Day", cfg.Closures[0].Label)
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	path := writeConfig(t, `apiBaseURL: https://api.example.com`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.VenueName)
	assert.Empty(t, cfg.Closures)
}

func TestLoadFromPath_MissingBaseURL(t *testing.T) {
	path := writeConfig(t, `venueName: The Anchor`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidBaseURL(t *testing.T) {
	path := writeConfig(t, `apiBaseURL: not a url`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_EnvOverride(t *testing.T) {
	path := writeConfig(t, `apiBaseURL: https://api.example.com`)
	t.Setenv("VENUE_API_BASE_URL", "https://staging.example.com")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.APIBaseURL)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.example.com
closures:
  - rrule: "FREQ=SOMETIMES"
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closures[0]")
}

func TestLoadFromPath_ClosureMissingRRule(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: https://api.example.com
closures:
  - label: Mystery day
`)

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_UnreadableFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "apiBaseURL: [unclosed")

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestFindConfigFile_EnvSuffix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "venue_cli_config.test.yaml"),
		[]byte("apiBaseURL: https://test.example.com"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "https://test.example.com", cfg.APIBaseURL)
}
