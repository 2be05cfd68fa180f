package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "atlas.db", cfg.Store.Path)
	assert.Equal(t, ",", cfg.Data.Delimiter)
	assert.Equal(t, "strict", cfg.Data.JoinPolicy)
	assert.Equal(t, "regions.yaml", cfg.Data.RegionMap)
	assert.Contains(t, cfg.Data.Variables, "stflife")
	assert.Equal(t, "NAME", cfg.Geo.NameField)
	assert.Equal(t, "charts", cfg.Chart.OutDir)
	assert.InDelta(t, 12, cfg.Chart.WidthInches, 0.001)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 25, cfg.Server.EventRateLimit, 0.001)
	assert.Equal(t, 50, cfg.Server.EventBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  path: /tmp/test-atlas.db
data:
  delimiter: ";"
  charset: windows-1250
  join_policy: lenient
  variables: [stflife, happy]
server:
  port: 9090
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test-atlas.db", cfg.Store.Path)
	assert.Equal(t, ";", cfg.Data.Delimiter)
	assert.Equal(t, "windows-1250", cfg.Data.Charset)
	assert.Equal(t, "lenient", cfg.Data.JoinPolicy)
	assert.Equal(t, []string{"stflife", "happy"}, cfg.Data.Variables)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
