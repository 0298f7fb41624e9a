package atlas

import "fmt"

// Atlas answers renderer-side lookups against a loaded metadata sidecar.
// It is read-only after construction and safe for concurrent readers.
type Atlas struct {
	meta     *Metadata
	fallback string // name of the lowest-index entry, "" when empty
}

// Load reads a metadata sidecar from disk and wraps it for lookups.
func Load(path string) (*Atlas, error) {
	meta, err := LoadMetadata(path)
	if err != nil {
		return nil, err
	}
	return New(meta), nil
}

// New wraps already-loaded metadata for lookups.
func New(meta *Metadata) *Atlas {
	a := &Atlas{meta: meta}
	best := -1
	for name, p := range meta.Textures {
		if best == -1 || p.Index < best {
			best = p.Index
			a.fallback = name
		}
	}
	return a
}

// UV returns the sampling rectangle for a named tile.
func (a *Atlas) UV(name string) (UVRect, error) {
	p, ok := a.meta.Textures[name]
	if !ok {
		return UVRect{}, fmt.Errorf("%w: %q", ErrUnknownTexture, name)
	}
	return p.UV, nil
}

// UVOrDefault returns the sampling rectangle for a named tile, falling back
// to the lowest-index entry when the name is unknown and to the full-atlas
// rectangle when the atlas is empty. Lookup code that cannot fail is what
// the renderer wants on its hot path; a missing texture shows the fallback
// tile instead of crashing the frame.
func (a *Atlas) UVOrDefault(name string) UVRect {
	if p, ok := a.meta.Textures[name]; ok {
		return p.UV
	}
	if a.fallback != "" {
		return a.meta.Textures[a.fallback].UV
	}
	return UVRect{Min: [2]float64{0, 0}, Max: [2]float64{1, 1}}
}

// Has reports whether a named tile is present.
func (a *Atlas) Has(name string) bool {
	_, ok := a.meta.Textures[name]
	return ok
}

// Len returns the number of tiles in the atlas.
func (a *Atlas) Len() int {
	return len(a.meta.Textures)
}

// TileSize returns the tile edge length in pixels.
func (a *Atlas) TileSize() int { return a.meta.TextureSize }

// Size returns the atlas edge length in pixels.
func (a *Atlas) Size() int { return a.meta.AtlasSize }

// TilesPerRow returns the number of grid cells along each atlas edge.
func (a *Atlas) TilesPerRow() int { return a.meta.TexturesPerRow }

// Metadata returns the underlying sidecar document.
func (a *Atlas) Metadata() *Metadata { return a.meta }
