package atlas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/anthonynsimon/bild/transform"
)

// PreviewOptions controls how an atlas inspection image is rendered.
type PreviewOptions struct {
	// Scale is an integer upscale factor applied before drawing cell
	// boundaries. Values below 1 are treated as 1. Small tile sizes need
	// a scale of 8 or so to be legible.
	Scale int
	// LineColor is the cell boundary color as "#RRGGBB" or "#RRGGBBAA".
	// Invalid or empty values fall back to semi-transparent red.
	LineColor string
}

// Preview renders an inspection image of a packed atlas: the atlas upscaled
// with a nearest-neighbor filter (so individual texels stay sharp) with the
// grid cell boundaries drawn on top. Intended for eyeballing a packing run,
// not for shipping.
func Preview(img image.Image, layout Layout, opts PreviewOptions) (*image.RGBA, error) {
	if layout.TileSize <= 0 || layout.TilesPerSide <= 0 {
		return nil, fmt.Errorf("atlas: invalid layout %v", layout)
	}

	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}

	lineColor, err := parseHexColor(opts.LineColor)
	if err != nil {
		lineColor = color.RGBA{255, 0, 0, 128}
	}

	scaled := img
	if scale > 1 {
		b := img.Bounds()
		scaled = transform.Resize(img, b.Dx()*scale, b.Dy()*scale, transform.NearestNeighbor)
	}

	bounds := scaled.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, scaled, bounds.Min, draw.Src)

	// Interior cell boundaries only; the image edge is its own boundary.
	spacing := layout.TileSize * scale
	width := bounds.Dx()
	height := bounds.Dy()

	for x := spacing; x < width; x += spacing {
		for y := 0; y < height; y++ {
			out.Set(x, y, lineColor)
		}
	}
	for y := spacing; y < height; y += spacing {
		for x := 0; x < width; x++ {
			out.Set(x, y, lineColor)
		}
	}

	return out, nil
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA", with or without the "#".
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
