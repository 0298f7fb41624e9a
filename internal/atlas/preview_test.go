package atlas

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func solidImage(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func TestPreview_GridLines(t *testing.T) {
	img := solidImage(32, color.RGBA{0, 0, 0, 255})
	layout := Layout{TileSize: 16, TilesPerSide: 2}

	out, err := Preview(img, layout, PreviewOptions{Scale: 1, LineColor: "#FF0000FF"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	// Interior boundary at x=16 is red.
	r, g, b, _ := out.At(16, 8).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("boundary pixel (16,8): got (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}

	// Cell interior keeps the atlas content.
	r, g, b, _ = out.At(8, 8).RGBA()
	if uint8(r>>8) != 0 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("interior pixel (8,8): got (%d,%d,%d), want black", r>>8, g>>8, b>>8)
	}
}

func TestPreview_Upscales(t *testing.T) {
	img := solidImage(32, color.RGBA{10, 20, 30, 255})
	layout := Layout{TileSize: 16, TilesPerSide: 2}

	out, err := Preview(img, layout, PreviewOptions{Scale: 4})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if out.Bounds().Dx() != 128 || out.Bounds().Dy() != 128 {
		t.Errorf("dimensions: got %dx%d, want 128x128",
			out.Bounds().Dx(), out.Bounds().Dy())
	}

	// Nearest-neighbor upscale keeps texel colors exact.
	r, g, b, _ := out.At(4, 4).RGBA()
	if uint8(r>>8) != 10 || uint8(g>>8) != 20 || uint8(b>>8) != 30 {
		t.Errorf("upscaled pixel: got (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}

	// Boundary lines land at the scaled spacing.
	r, _, _, _ = out.At(64, 32).RGBA()
	if uint8(r>>8) == 10 {
		t.Error("expected a grid line at x=64")
	}
}

func TestPreview_InvalidColorFallsBack(t *testing.T) {
	img := solidImage(16, color.RGBA{255, 255, 255, 255})
	layout := Layout{TileSize: 16, TilesPerSide: 1}

	// Single-cell layout has no interior boundaries; just verify no error
	// and unchanged content with a junk color string.
	out, err := Preview(img, layout, PreviewOptions{Scale: 1, LineColor: "nonsense"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	r, _, _, _ := out.At(8, 8).RGBA()
	if uint8(r>>8) != 255 {
		t.Error("content changed despite no boundaries to draw")
	}
}

func TestPreview_InvalidLayout(t *testing.T) {
	img := solidImage(16, color.RGBA{A: 255})

	if _, err := Preview(img, Layout{}, PreviewOptions{}); err == nil {
		t.Error("expected error for zero layout")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"00FF00", color.RGBA{0, 255, 0, 255}, false},
		{"#FF00FF80", color.RGBA{255, 0, 255, 128}, false},
		{"", color.RGBA{}, true},
		{"#FFF", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := parseHexColor(tt.hex)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseHexColor(%q): expected error", tt.hex)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseHexColor(%q): %v", tt.hex, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHexColor(%q): got %+v, want %+v", tt.hex, got, tt.want)
		}
	}
}
