package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config carries every tunable of the demo scene. Defaults match the
// reference scene; a TOML file can override any subset of fields.
type Config struct {
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
	WindowTitle  string `toml:"window_title"`
	VSync        bool   `toml:"vsync"`

	Letter string `toml:"letter"`
	Digit  string `toml:"digit"`

	// FontPath selects a TTF on disk; empty means the embedded typeface.
	// GlyphMeshLetter/GlyphMeshDigit point at pre-modelled glTF meshes and
	// take precedence over font-based generation when set.
	FontPath        string `toml:"font_path"`
	GlyphMeshLetter string `toml:"glyph_mesh_letter"`
	GlyphMeshDigit  string `toml:"glyph_mesh_digit"`

	BackgroundColor Color `toml:"background_color"`
	LetterColor     Color `toml:"letter_color"`
	DigitColor      Color `toml:"digit_color"`
	LightColor      Color `toml:"light_color"`

	MoveSpeed        float32 `toml:"move_speed"`
	RotationStep     float32 `toml:"rotation_step"`
	LightIntensity   float32 `toml:"light_intensity"`
	LightRange       float32 `toml:"light_range"`
	AmbientIntensity float32 `toml:"ambient_intensity"`

	StarCount int `toml:"star_count"`

	BloomThreshold float32 `toml:"bloom_threshold"`
	BloomRadius    float32 `toml:"bloom_radius"`
	BloomStrength  float32 `toml:"bloom_strength"`
	Exposure       float32 `toml:"exposure"`

	CameraFOV float32 `toml:"camera_fov"`
	CameraZ   float32 `toml:"camera_z"`
}

func DefaultConfig() Config {
	return Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "Glyphlight",
		VSync:        true,

		Letter: "K",
		Digit:  "7",

		BackgroundColor: Color{0.02, 0.02, 0.05, 1},
		LetterColor:     Color{1, 1, 0, 1},
		DigitColor:      Color{0.75, 0.78, 0.85, 1},
		LightColor:      ColorWhite,

		MoveSpeed:        0.1,
		RotationStep:     0.01,
		LightIntensity:   1.0,
		LightRange:       0,
		AmbientIntensity: 0.232,

		StarCount: 400,

		BloomThreshold: 0.8,
		BloomRadius:    0.2,
		BloomStrength:  0.7,
		Exposure:       0.9,

		CameraFOV: 60,
		CameraZ:   5,
	}
}

// LoadConfig reads a TOML file over the defaults. A missing file is not an
// error; the defaults are returned as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
