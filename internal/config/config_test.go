package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvAPITimeout, EnvLogFile, EnvLogLevel, EnvStateDir, EnvTheme, "ROSTER_CONFIG_DIR"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(Overrides{StateDir: dir})
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.API.URL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, LogFileName), cfg.Log.File)
	assert.Equal(t, "auto", cfg.TUI.Theme)
	assert.Empty(t, cfg.Source)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `api:
  url: http://yaml.example/api
  timeout: 3s
log:
  level: warn
  file: /tmp/yaml.log
tui:
  theme: light
`)
	envFile := filepath.Join(dir, "test.env")
	writeFile(t, envFile, "ROSTER_API_URL=http://dotenv.example/api\nROSTER_LOG_LEVEL=error\n")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(Overrides{StateDir: dir, EnvFile: envFile, Theme: "dark"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, FileName), cfg.Source)
	assert.Equal(t, "http://dotenv.example/api", cfg.API.URL, ".env beats yaml")
	assert.Equal(t, "debug", cfg.Log.Level, "process env beats .env")
	assert.Equal(t, "dark", cfg.TUI.Theme, "flags beat everything")
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/yaml.log", cfg.Log.File)
}

func TestLoad_StateDirFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvStateDir, dir)

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.StateDir)
}

func TestLoad_ExplicitMissingFilesFail(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(Overrides{StateDir: dir, ConfigPath: filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)

	_, err = Load(Overrides{StateDir: dir, EnvFile: filepath.Join(dir, "nope.env")})
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cases := []struct {
		name string
		o    Overrides
	}{
		{"url scheme", Overrides{APIURL: "ftp://x"}},
		{"url host", Overrides{APIURL: "http://"}},
		{"timeout", Overrides{APITimeout: "soon"}},
		{"negative timeout", Overrides{APITimeout: "-1s"}},
		{"level", Overrides{LogLevel: "loud"}},
		{"theme", Overrides{Theme: "neon"}},
	}
	for _, tc := range cases {
		tc.o.StateDir = dir
		_, err := Load(tc.o)
		assert.Error(t, err, tc.name)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "api: [")

	_, err := Load(Overrides{StateDir: dir})
	assert.ErrorContains(t, err, "parse yaml")
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(Overrides{StateDir: t.TempDir(), APIURL: "https://hr.example.com/api/"})
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com/api", cfg.API.URL)
}
