package atlas

import (
	"fmt"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestUnpack_RoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	colors := []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	var paths []string
	for i, c := range colors {
		paths = append(paths, writeTile(t, srcDir, fmt.Sprintf("tile_%d.png", i), 16, c))
	}

	result, err := Pack(paths, defaultOptions())
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	atlasPath := filepath.Join(outDir, "atlas.png")
	metaPath := filepath.Join(outDir, "atlas.json")
	if err := WritePNG(result.Image, atlasPath); err != nil {
		t.Fatal(err)
	}
	if err := result.Metadata.WriteFile(metaPath); err != nil {
		t.Fatal(err)
	}

	tileDir := filepath.Join(outDir, "tiles")
	n, err := Unpack(atlasPath, metaPath, tileDir)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if n != 3 {
		t.Errorf("tiles written: got %d, want 3", n)
	}

	for i, want := range colors {
		path := filepath.Join(tileDir, fmt.Sprintf("tile_%d.png", i))
		tile, err := imaging.Open(path)
		if err != nil {
			t.Fatalf("opening extracted tile %s: %v", path, err)
		}
		if tile.Bounds().Dx() != 16 || tile.Bounds().Dy() != 16 {
			t.Errorf("tile %d: got %dx%d, want 16x16",
				i, tile.Bounds().Dx(), tile.Bounds().Dy())
		}
		r, g, b, _ := tile.At(8, 8).RGBA()
		if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
			t.Errorf("tile %d color: got (%d,%d,%d), want (%d,%d,%d)",
				i, r>>8, g>>8, b>>8, want.R, want.G, want.B)
		}
	}
}

func TestUnpack_SizeMismatch(t *testing.T) {
	dir := t.TempDir()

	// Metadata claims a 32px atlas but the image is 16px.
	metaPath := filepath.Join(dir, "atlas.json")
	if err := sampleMetadata().WriteFile(metaPath); err != nil {
		t.Fatal(err)
	}
	atlasPath := writeTile(t, dir, "atlas.png", 16, color.RGBA{A: 255})

	if _, err := Unpack(atlasPath, metaPath, filepath.Join(dir, "out")); err == nil {
		t.Error("expected error for mismatched atlas size")
	}
}

func TestUnpack_MissingInputs(t *testing.T) {
	dir := t.TempDir()

	if _, err := Unpack(filepath.Join(dir, "a.png"), filepath.Join(dir, "a.json"), dir); err == nil {
		t.Error("expected error for missing metadata")
	}

	metaPath := filepath.Join(dir, "atlas.json")
	if err := sampleMetadata().WriteFile(metaPath); err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(filepath.Join(dir, "a.png"), metaPath, dir); err == nil {
		t.Error("expected error for missing atlas image")
	}
}
