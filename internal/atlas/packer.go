package atlas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// WarningKind classifies a non-fatal anomaly recovered during a packing run.
type WarningKind string

const (
	// WarnCapacityExceeded: more inputs than the target atlas size can hold;
	// the input list was truncated.
	WarnCapacityExceeded WarningKind = "capacity_exceeded"
	// WarnDecodeFailure: a source file could not be decoded and was skipped.
	WarnDecodeFailure WarningKind = "decode_failure"
	// WarnResized: a source was not tile-sized and was resized to fit.
	WarnResized WarningKind = "resized"
	// WarnDuplicateName: two sources derived the same name; the later one
	// was suffixed to keep it addressable.
	WarnDuplicateName WarningKind = "duplicate_name"
)

// Warning describes one recovered anomaly.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Path   string      `json:"path,omitempty"`
	Detail string      `json:"detail"`
}

// Options configures a packing run. The zero value is not usable; start
// from the config layer's defaults or fill every field.
type Options struct {
	// TileSize is the edge length T every tile is normalized to.
	TileSize int
	// TargetAtlasSize caps the atlas edge; inputs beyond
	// floor(target/T)^2 are truncated. The produced atlas is usually
	// smaller: the smallest square grid that fits the inputs.
	TargetAtlasSize int
	// TileColor, when non-nil, is called with each composited tile and its
	// return value recorded as the placement's dominant color.
	TileColor func(image.Image) string
}

func (o Options) validate() error {
	if o.TileSize <= 0 {
		return fmt.Errorf("atlas: tile size must be positive, got %d", o.TileSize)
	}
	if o.TargetAtlasSize < o.TileSize {
		return fmt.Errorf("atlas: target atlas size %d is smaller than tile size %d",
			o.TargetAtlasSize, o.TileSize)
	}
	return nil
}

// Result is the output of one packing run.
type Result struct {
	// Image is the composed atlas, sized Layout.AtlasSize() square.
	Image *image.RGBA
	// Metadata describes every successfully placed tile.
	Metadata *Metadata
	// Layout is the grid the atlas was built on.
	Layout Layout
	// Warnings lists recovered anomalies in the order they occurred.
	Warnings []Warning
}

// Pack composes the tiles at the given paths into an atlas.
//
// Placement is determined by input order: the i-th path (after capacity
// truncation) occupies grid cell i. Sources that are not exactly
// TileSize x TileSize are resized with a nearest-neighbor filter, which
// keeps hard pixel-art edges intact. Each tile is composited with source-over
// disabled (draw.Src): destination pixels including alpha are overwritten,
// and since cells are disjoint no tile can bleed into another.
//
// A source that fails to decode is skipped: its index is absent from the
// metadata and its cell stays fully transparent. Pack returns ErrNoTextures
// when paths is empty; all other per-item problems surface as Warnings.
func Pack(paths []string, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoTextures
	}

	var warnings []Warning

	capacity := Capacity(opts.TargetAtlasSize, opts.TileSize)
	if len(paths) > capacity {
		warnings = append(warnings, Warning{
			Kind: WarnCapacityExceeded,
			Detail: fmt.Sprintf("%d textures exceed capacity %d at target size %d; packing the first %d",
				len(paths), capacity, opts.TargetAtlasSize, capacity),
		})
		paths = paths[:capacity]
	}

	layout := LayoutFor(len(paths), opts.TileSize)
	size := layout.AtlasSize()
	dst := image.NewRGBA(image.Rect(0, 0, size, size))

	names := newNameTable()
	meta := &Metadata{
		TextureSize:    opts.TileSize,
		AtlasSize:      size,
		TexturesPerRow: layout.TilesPerSide,
		Textures:       make(map[string]Placement, len(paths)),
	}

	for idx, path := range paths {
		src, err := imaging.Open(path)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:   WarnDecodeFailure,
				Path:   path,
				Detail: err.Error(),
			})
			continue
		}

		tile := normalizeTile(src, opts.TileSize)
		if tile != src {
			b := src.Bounds()
			warnings = append(warnings, Warning{
				Kind: WarnResized,
				Path: path,
				Detail: fmt.Sprintf("resized from %dx%d to %dx%d",
					b.Dx(), b.Dy(), opts.TileSize, opts.TileSize),
			})
		}

		x, y := layout.Origin(idx)
		cell := image.Rect(x, y, x+opts.TileSize, y+opts.TileSize)
		draw.Draw(dst, cell, tile, tile.Bounds().Min, draw.Src)

		name, renamed := names.claim(Identifier(path))
		if renamed {
			warnings = append(warnings, Warning{
				Kind:   WarnDuplicateName,
				Path:   path,
				Detail: fmt.Sprintf("name %q already taken, stored as %q", Identifier(path), name),
			})
		}

		placement := Placement{
			Index:    idx,
			Position: [2]int{x, y},
			UV:       layout.UV(idx),
		}
		if opts.TileColor != nil {
			placement.Color = opts.TileColor(tile)
		}
		meta.Textures[name] = placement
	}

	return &Result{
		Image:    dst,
		Metadata: meta,
		Layout:   layout,
		Warnings: warnings,
	}, nil
}

// normalizeTile returns src unchanged when it is already tile-sized,
// otherwise a nearest-neighbor resize to tileSize square. Interpolating
// filters would blur pixel art, so NearestNeighbor is part of the contract,
// not a tunable.
func normalizeTile(src image.Image, tileSize int) image.Image {
	b := src.Bounds()
	if b.Dx() == tileSize && b.Dy() == tileSize {
		return src
	}
	return imaging.Resize(src, tileSize, tileSize, imaging.NearestNeighbor)
}
