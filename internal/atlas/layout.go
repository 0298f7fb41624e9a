package atlas

import (
	"errors"
	"fmt"
	"math"
)

// Atlas-related errors.
var (
	// ErrNoTextures is returned when a packing run is given zero inputs.
	ErrNoTextures = errors.New("atlas: no source textures supplied")

	// ErrUnknownTexture is returned when a name is not present in loaded metadata.
	ErrUnknownTexture = errors.New("atlas: texture not found")
)

// Layout describes the square grid an atlas is built on.
//
// TilesPerSide is always the smallest value whose square holds the tile
// count the layout was derived for, so TilesPerSide*TilesPerSide >= n.
type Layout struct {
	// TileSize is the edge length of one tile in pixels.
	TileSize int
	// TilesPerSide is the number of grid cells along each atlas edge.
	TilesPerSide int
}

// LayoutFor derives the smallest square layout that fits n tiles of the
// given edge length. n must be at least 1.
func LayoutFor(n, tileSize int) Layout {
	side := int(math.Ceil(math.Sqrt(float64(n))))
	if side < 1 {
		side = 1
	}
	return Layout{TileSize: tileSize, TilesPerSide: side}
}

// Capacity returns the maximum number of tiles a square atlas of at most
// targetAtlasSize pixels per edge can hold: floor(target/tileSize) squared.
func Capacity(targetAtlasSize, tileSize int) int {
	if tileSize <= 0 || targetAtlasSize < tileSize {
		return 0
	}
	perSide := targetAtlasSize / tileSize
	return perSide * perSide
}

// AtlasSize returns the atlas edge length in pixels.
func (l Layout) AtlasSize() int {
	return l.TilesPerSide * l.TileSize
}

// Cells returns the total number of grid cells.
func (l Layout) Cells() int {
	return l.TilesPerSide * l.TilesPerSide
}

// Utilization returns the fraction of grid cells occupied by n tiles.
func (l Layout) Utilization(n int) float64 {
	if l.TilesPerSide == 0 {
		return 0
	}
	return float64(n) / float64(l.Cells())
}

// Cell returns the grid cell for a placement index.
func (l Layout) Cell(index int) (row, col int) {
	return index / l.TilesPerSide, index % l.TilesPerSide
}

// Origin returns the top-left pixel position of the cell for a placement index.
func (l Layout) Origin(index int) (x, y int) {
	row, col := l.Cell(index)
	return col * l.TileSize, row * l.TileSize
}

// UVRect is a normalized rectangle in atlas texture space, origin bottom-left.
// Min and Max each hold a (u, v) pair in [0,1].
type UVRect struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

// UV computes the normalized UV rectangle for a placement index.
//
// Pixel row 0 is the top of the image while v=0 is the bottom of the
// texture, so the vertical axis is flipped: the cell's top edge maps to
// Max[1] and its bottom edge to Min[1].
func (l Layout) UV(index int) UVRect {
	x, y := l.Origin(index)
	size := float64(l.AtlasSize())
	t := l.TileSize
	return UVRect{
		Min: [2]float64{float64(x) / size, float64(l.AtlasSize()-y-t) / size},
		Max: [2]float64{float64(x+t) / size, float64(l.AtlasSize()-y) / size},
	}
}

// PixelRect inverts the UV transform, recovering the pixel rectangle
// (x0, y0)-(x1, y1) a UV rectangle was derived from. Top-left origin,
// x1/y1 exclusive.
func (l Layout) PixelRect(uv UVRect) (x0, y0, x1, y1 int) {
	size := float64(l.AtlasSize())
	x0 = int(math.Round(uv.Min[0] * size))
	x1 = int(math.Round(uv.Max[0] * size))
	y0 = l.AtlasSize() - int(math.Round(uv.Max[1]*size))
	y1 = l.AtlasSize() - int(math.Round(uv.Min[1]*size))
	return x0, y0, x1, y1
}

// String returns a compact description of the layout.
func (l Layout) String() string {
	return fmt.Sprintf("Layout(%dx%d cells, %dpx tiles, %dpx atlas)",
		l.TilesPerSide, l.TilesPerSide, l.TileSize, l.AtlasSize())
}
