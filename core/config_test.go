package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, float32(0.1), cfg.MoveSpeed)
	assert.Equal(t, float32(0.232), cfg.AmbientIntensity)
	assert.Equal(t, float32(0.8), cfg.BloomThreshold)
	assert.Equal(t, float32(0.2), cfg.BloomRadius)
	assert.Equal(t, float32(0.7), cfg.BloomStrength)
	assert.Equal(t, float32(0.9), cfg.Exposure)
	assert.Equal(t, float32(0), cfg.LightRange, "default light range is unlimited")
	assert.NotEmpty(t, cfg.Letter)
	assert.NotEmpty(t, cfg.Digit)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	body := `
letter = "Z"
move_speed = 0.25
ambient_intensity = 0.656

[letter_color]
r = 1.0
g = 1.0
b = 0.0
a = 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Z", cfg.Letter)
	assert.Equal(t, float32(0.25), cfg.MoveSpeed)
	assert.Equal(t, float32(0.656), cfg.AmbientIntensity)
	assert.Equal(t, Color{1, 1, 0, 1}, cfg.LetterColor)

	// Untouched fields keep their defaults.
	def := DefaultConfig()
	assert.Equal(t, def.Digit, cfg.Digit)
	assert.Equal(t, def.BloomThreshold, cfg.BloomThreshold)
	assert.Equal(t, def.WindowWidth, cfg.WindowWidth)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("letter = [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
