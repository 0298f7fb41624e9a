// Package palette extracts representative colors from tiles and atlases.
// Per-tile colors feed optional metadata fields; whole-atlas palettes go to
// a separate sidecar for consumers like minimap and fog tinting.
package palette

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects the whole-atlas palette extraction algorithm.
type Method int

const (
	// MethodDominant uses weighted dominant-color candidates with a
	// Lab-space diversity pass. Fast and stable on pixel art.
	MethodDominant Method = iota
	// MethodKMeans clusters subsampled pixels and takes cluster centers,
	// ordered by population. Slower, smoother on photographic content.
	MethodKMeans
)

// ParseMethod converts a config string to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "dominant", "dominantcolor":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	default:
		return MethodDominant, fmt.Errorf("palette: unknown method %q", s)
	}
}

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// Document is the whole-atlas palette sidecar, written next to the atlas
// metadata when palette extraction is enabled.
type Document struct {
	Method string   `json:"method"`
	Colors []string `json:"colors"`
}

// TileColor returns the dominant color of one tile as "#rrggbb", or ""
// when the tile has no opaque pixels to sample.
func TileColor(img image.Image) string {
	c, ok := colorful.MakeColor(dominantcolor.Find(img))
	if !ok {
		return ""
	}
	return c.Hex()
}

// Extract returns up to k representative colors of img, most dominant first.
// Returns nil when k <= 0 or the image has nothing to sample.
func Extract(img image.Image, k int, method Method) []colorful.Color {
	if k <= 0 {
		return nil
	}
	if method == MethodKMeans {
		if p := extractKMeans(img, k); len(p) != 0 {
			return p
		}
		// kmeans can come up empty on tiny or fully transparent inputs.
	}
	return extractDominant(img, k)
}

// Hexes converts a palette to "#rrggbb" strings for the sidecar.
func Hexes(palette []colorful.Color) []string {
	out := make([]string, len(palette))
	for i, c := range palette {
		out[i] = c.Clamped().Hex()
	}
	return out
}

func extractDominant(img image.Image, k int) []colorful.Color {
	// Ask for more candidates than needed so the diversity pass has
	// something to choose between.
	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, ok := colorful.MakeColor(c.RGBA)
		if !ok {
			continue
		}
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{col: col.Clamped(), weight: w})
	}
	return selectDiverse(weighted, k)
}

func extractKMeans(img image.Image, k int) []colorful.Color {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	// Subsample so kmeans stays tractable on large atlases.
	const maxSamples = 12000
	step := 1
	if area := b.Dx() * b.Dy(); area > maxSamples {
		step = int(math.Sqrt(float64(area)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 65535.0,
				float64(g) / 65535.0,
				float64(bl) / 65535.0,
			})
		}
	}
	if len(dataset) < k {
		return nil
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil
	}

	sort.Slice(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{
			R: c.Center[0],
			G: c.Center[1],
			B: c.Center[2],
		}.Clamped())
	}
	return out
}

type weightedColor struct {
	col    colorful.Color
	weight float64
}

// selectDiverse picks k colors favoring both weight and Lab-space distance
// from colors already picked, so near-duplicates of the strongest tone do
// not crowd out the rest of the palette.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if len(cands) == 0 {
		return nil
	}
	if k > len(cands) {
		k = len(cands)
	}

	maxW := 0.0
	for _, c := range cands {
		if c.weight > maxW {
			maxW = c.weight
		}
	}
	if maxW <= 0 {
		maxW = 1
	}

	picked := make([]int, 0, k)
	used := make([]bool, len(cands))

	// Seed with the heaviest candidate.
	seed := 0
	for i := range cands {
		if cands[i].weight > cands[seed].weight {
			seed = i
		}
	}
	picked = append(picked, seed)
	used[seed] = true

	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i := range cands {
			if used[i] {
				continue
			}
			minDist := math.MaxFloat64
			for _, p := range picked {
				if d := cands[i].col.DistanceLab(cands[p].col); d < minDist {
					minDist = d
				}
			}
			score := minDist * (0.5 + 0.5*math.Sqrt(cands[i].weight/maxW))
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, len(picked))
	for i, idx := range picked {
		out[i] = cands[idx].col
	}
	return out
}
