package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Placement records where one tile landed in the atlas.
type Placement struct {
	// Index is the 0-based placement order within the run.
	Index int `json:"index"`
	// Position is the top-left pixel coordinate [x, y] of the tile's cell.
	Position [2]int `json:"position"`
	// UV is the normalized sampling rectangle, origin bottom-left.
	UV UVRect `json:"uv"`
	// Color is the tile's dominant color as "#rrggbb". Only present when
	// tile color extraction was enabled for the run.
	Color string `json:"color,omitempty"`
}

// Metadata is the JSON sidecar written next to the atlas image. The field
// names and nesting are a wire contract shared with the renderer's atlas
// loader; do not rename them.
type Metadata struct {
	TextureSize    int                  `json:"texture_size"`
	AtlasSize      int                  `json:"atlas_size"`
	TexturesPerRow int                  `json:"textures_per_row"`
	Textures       map[string]Placement `json:"textures"`
}

// Layout reconstructs the grid layout the metadata was produced with.
func (m *Metadata) Layout() Layout {
	return Layout{TileSize: m.TextureSize, TilesPerSide: m.TexturesPerRow}
}

// WriteFile writes the metadata as indented JSON. The write is atomic: the
// document goes to a temporary file in the destination directory first and
// is renamed into place, so a failed run never leaves a truncated sidecar.
func (m *Metadata) WriteFile(path string) error {
	return WriteJSON(path, m)
}

// WriteJSON writes v as indented JSON at path, atomically.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadMetadata reads a metadata sidecar written by WriteFile.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading atlas metadata: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing atlas metadata %s: %w", path, err)
	}
	return &m, nil
}

// WritePNG encodes an image as PNG at path, atomically.
func WritePNG(img image.Image, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temporary atlas file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding atlas image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing atlas image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing atlas image %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic writes data to path via a temporary file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
