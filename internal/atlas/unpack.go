package atlas

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
)

// Unpack slices an atlas image back into individual tile files using its
// metadata sidecar, writing one <name>.png per entry into outDir. Tiles are
// extracted in placement order. Returns the number of tiles written.
//
// Unlike packing, any failure here is fatal: a half-unpacked directory is
// easy to misread as complete, so the first unwritable tile aborts the run.
func Unpack(atlasPath, metadataPath, outDir string) (int, error) {
	meta, err := LoadMetadata(metadataPath)
	if err != nil {
		return 0, err
	}

	img, err := imaging.Open(atlasPath)
	if err != nil {
		return 0, fmt.Errorf("opening atlas image %s: %w", atlasPath, err)
	}

	b := img.Bounds()
	if b.Dx() != meta.AtlasSize || b.Dy() != meta.AtlasSize {
		return 0, fmt.Errorf("atlas image is %dx%d but metadata says %d",
			b.Dx(), b.Dy(), meta.AtlasSize)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	names := make([]string, 0, len(meta.Textures))
	for name := range meta.Textures {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return meta.Textures[names[i]].Index < meta.Textures[names[j]].Index
	})

	t := meta.TextureSize
	for _, name := range names {
		p := meta.Textures[name]
		rect := image.Rect(p.Position[0], p.Position[1], p.Position[0]+t, p.Position[1]+t)
		tile := imaging.Crop(img, rect)

		dest := filepath.Join(outDir, name+".png")
		if err := imaging.Save(tile, dest); err != nil {
			return 0, fmt.Errorf("writing tile %s: %w", dest, err)
		}
	}

	return len(names), nil
}
