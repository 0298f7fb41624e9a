// Package config handles pipeline configuration loading and management.
package config

// Config holds all atlasgen settings.
type Config struct {
	Pack    PackConfig    `yaml:"pack"`
	Palette PaletteConfig `yaml:"palette"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// PackConfig holds packing run parameters.
type PackConfig struct {
	TileSize        int    `yaml:"tile_size"`         // Edge length of one tile in pixels
	TargetAtlasSize int    `yaml:"target_atlas_size"` // Maximum atlas edge; caps capacity
	InputDir        string `yaml:"input_dir"`
	OutputImage     string `yaml:"output_image"`
	OutputMetadata  string `yaml:"output_metadata"`
}

// PaletteConfig holds color extraction settings.
type PaletteConfig struct {
	Enabled    bool   `yaml:"enabled"`     // Write a whole-atlas palette sidecar
	Method     string `yaml:"method"`      // "dominant" or "kmeans"
	Size       int    `yaml:"size"`        // Colors in the atlas palette
	TileColors bool   `yaml:"tile_colors"` // Record per-tile dominant color in metadata
}

// PreviewConfig holds inspection image settings.
type PreviewConfig struct {
	Scale     int    `yaml:"scale"`
	LineColor string `yaml:"line_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pack: PackConfig{
			TileSize:        16,
			TargetAtlasSize: 1024,
			InputDir:        "textures/raw",
			OutputImage:     "textures/atlas.png",
			OutputMetadata:  "textures/atlas.json",
		},
		Palette: PaletteConfig{
			Enabled:    false,
			Method:     "dominant",
			Size:       8,
			TileColors: false,
		},
		Preview: PreviewConfig{
			Scale:     8,
			LineColor: "#FF00FF80",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
