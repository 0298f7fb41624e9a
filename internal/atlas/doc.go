// Package atlas implements fixed-grid texture atlas packing for the asset pipeline.
//
// An atlas is a single square RGBA image holding N source tiles of a uniform
// edge length T, laid out on the smallest square grid that fits them
// (ceil(sqrt(N)) cells per side). Alongside the composed image the packer
// produces a JSON sidecar mapping each tile's name to its pixel position and
// a normalized UV rectangle, which the renderer uses to sample individual
// tiles at load time.
//
// # Coordinate Systems
//
// Pixel coordinates are 0-based with origin at the top-left corner, X
// increasing rightward and Y increasing downward. UV coordinates are
// normalized to [0,1] with origin at the bottom-left corner, matching the
// OpenGL texture convention; the packer applies a vertical flip when
// converting pixel rectangles to UV rectangles.
//
// # Determinism
//
// Placement is driven purely by input order: the tile at input index i lands
// at grid cell (i / tilesPerSide, i % tilesPerSide). Running the packer twice
// over the same ordered input with the same options yields byte-identical
// metadata.
//
// # Error Handling
//
// Per-tile anomalies (a file that fails to decode, a source that needed
// resizing, a duplicate derived name, input truncated to capacity) are
// recovered locally and reported as structured Warnings on the Result.
// Run-level failures (no inputs, unwritable outputs) are returned as errors.
package atlas
