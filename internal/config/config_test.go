package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splatviewer/internal/utils"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "configuration.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
[base_paths]
data_directory = "/srv/splats"

[logging]
console_output_level = "warn"
log_file_output_level = "error"
log_file_output_directory = "{DATA_DIR}/logs"

[screenshot]
screenshot_directory_path = "{DATA_DIR}/shots"

[render]
splat_scaling_factor = 3.5
ordered_decode = false
conventional_projection = true
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, c.FilePath)
	assert.Equal(t, utils.LevelWarn, c.Logging.ConsoleLevel())
	assert.Equal(t, utils.LevelError, c.Logging.FileLevel())
	assert.Equal(t, "/srv/splats/logs", c.Logging.LogFileOutputDirectory)
	assert.Equal(t, "/srv/splats/shots", c.Screenshot.ScreenshotDirectoryPath)
	assert.Equal(t, float32(3.5), c.Render.SplatScalingFactor)
	assert.False(t, c.Render.OrderedDecode)
	assert.True(t, c.Render.ConventionalProjection)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[logging]
console_output_level = "debug"
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, utils.LevelDebug, c.Logging.ConsoleLevel())
	assert.Equal(t, utils.LevelDebug, c.Logging.FileLevel())
	assert.Equal(t, float32(2.0), c.Render.SplatScalingFactor)
	assert.True(t, c.Render.OrderedDecode)
	assert.False(t, c.Render.ConventionalProjection)
	assert.Equal(t, "./data/screenshots", c.Screenshot.ScreenshotDirectoryPath)
}

func TestLoadInvalidLevel(t *testing.T) {
	path := writeConfig(t, `
[logging]
console_output_level = "loud"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "console_output_level")
}

func TestLoadInvalidScalingFactor(t *testing.T) {
	path := writeConfig(t, `
[render]
splat_scaling_factor = -1.0
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "splat_scaling_factor")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.resolve())
	assert.Equal(t, utils.LevelInfo, c.Logging.ConsoleLevel())
	assert.Equal(t, "./data/logs", c.Logging.LogFileOutputDirectory)
}
