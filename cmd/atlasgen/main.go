package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/disintegration/imaging"

	"github.com/voxelforge/atlasgen/internal/atlas"
	"github.com/voxelforge/atlasgen/internal/config"
	"github.com/voxelforge/atlasgen/internal/logger"
	"github.com/voxelforge/atlasgen/internal/palette"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const desc = `Packs fixed-size textures into a square atlas and writes a JSON
sidecar mapping each texture name to its pixel position and UV rectangle.`

var cli struct {
	Config string `help:"Path to config file." type:"path"`
	Debug  bool   `help:"Enable debug logging."`

	Pack    packCmd    `cmd:"" help:"Pack a directory of tiles into an atlas."`
	Unpack  unpackCmd  `cmd:"" help:"Slice an atlas back into per-tile files."`
	Preview previewCmd `cmd:"" help:"Render an upscaled inspection image of an atlas."`
	Version versionCmd `cmd:"" help:"Print version information."`
}

type packCmd struct {
	Input      string `arg:"" optional:"" help:"Directory of source tiles (overrides config)."`
	Out        string `short:"o" placeholder:"PATH" help:"Atlas PNG output path (overrides config)."`
	Meta       string `short:"m" placeholder:"PATH" help:"Metadata JSON output path (overrides config)."`
	TileSize   int    `placeholder:"N" help:"Tile edge length in pixels (overrides config)."`
	AtlasSize  int    `placeholder:"N" help:"Target maximum atlas edge in pixels (overrides config)."`
	Palette    bool   `help:"Also write a whole-atlas palette sidecar."`
	TileColors bool   `help:"Record each tile's dominant color in the metadata."`
}

func (c *packCmd) Run(cfg *config.Config) error {
	pc := cfg.Pack
	if c.Input != "" {
		pc.InputDir = c.Input
	}
	if c.Out != "" {
		pc.OutputImage = c.Out
	}
	if c.Meta != "" {
		pc.OutputMetadata = c.Meta
	}
	if c.TileSize > 0 {
		pc.TileSize = c.TileSize
	}
	if c.AtlasSize > 0 {
		pc.TargetAtlasSize = c.AtlasSize
	}
	wantPalette := cfg.Palette.Enabled || c.Palette
	wantTileColors := cfg.Palette.TileColors || c.TileColors

	sources, err := atlas.DiscoverSources(pc.InputDir)
	if err != nil {
		return err
	}
	logger.Sugar.Infow("discovered textures",
		"dir", pc.InputDir, "count", len(sources))

	opts := atlas.Options{
		TileSize:        pc.TileSize,
		TargetAtlasSize: pc.TargetAtlasSize,
	}
	if wantTileColors {
		opts.TileColor = palette.TileColor
	}

	result, err := atlas.Pack(sources, opts)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		logger.Sugar.Warnw("packing warning",
			"kind", w.Kind, "path", w.Path, "detail", w.Detail)
	}
	logger.Sugar.Infow("atlas packed",
		"layout", result.Layout.String(),
		"textures", len(result.Metadata.Textures),
		"utilization", fmt.Sprintf("%.1f%%", result.Layout.Utilization(len(result.Metadata.Textures))*100))

	if err := atlas.WritePNG(result.Image, pc.OutputImage); err != nil {
		return err
	}
	if err := result.Metadata.WriteFile(pc.OutputMetadata); err != nil {
		return err
	}
	logger.Sugar.Infow("outputs written",
		"image", pc.OutputImage, "metadata", pc.OutputMetadata)

	if wantPalette {
		method, err := palette.ParseMethod(cfg.Palette.Method)
		if err != nil {
			return err
		}
		colors := palette.Extract(result.Image, cfg.Palette.Size, method)
		doc := palette.Document{
			Method: method.String(),
			Colors: palette.Hexes(colors),
		}
		path := palettePath(pc.OutputMetadata)
		if err := atlas.WriteJSON(path, doc); err != nil {
			return err
		}
		logger.Sugar.Infow("palette written", "path", path, "colors", len(doc.Colors))
	}

	return nil
}

// palettePath derives the palette sidecar path from the metadata path:
// atlas.json -> atlas_palette.json.
func palettePath(metadataPath string) string {
	return strings.TrimSuffix(metadataPath, ".json") + "_palette.json"
}

type unpackCmd struct {
	Atlas  string `arg:"" help:"Atlas PNG to slice."`
	Meta   string `arg:"" help:"Metadata JSON for the atlas."`
	OutDir string `arg:"" help:"Directory to write per-tile PNGs into."`
}

func (c *unpackCmd) Run(cfg *config.Config) error {
	n, err := atlas.Unpack(c.Atlas, c.Meta, c.OutDir)
	if err != nil {
		return err
	}
	logger.Sugar.Infow("atlas unpacked", "tiles", n, "dir", c.OutDir)
	return nil
}

type previewCmd struct {
	Atlas     string `arg:"" help:"Atlas PNG to inspect."`
	Meta      string `arg:"" help:"Metadata JSON for the atlas."`
	Out       string `arg:"" help:"Preview PNG output path."`
	Scale     int    `placeholder:"N" help:"Integer upscale factor (overrides config)."`
	LineColor string `placeholder:"HEX" help:"Cell boundary color (overrides config)."`
}

func (c *previewCmd) Run(cfg *config.Config) error {
	meta, err := atlas.LoadMetadata(c.Meta)
	if err != nil {
		return err
	}
	img, err := imaging.Open(c.Atlas)
	if err != nil {
		return fmt.Errorf("opening atlas image %s: %w", c.Atlas, err)
	}

	opts := atlas.PreviewOptions{
		Scale:     cfg.Preview.Scale,
		LineColor: cfg.Preview.LineColor,
	}
	if c.Scale > 0 {
		opts.Scale = c.Scale
	}
	if c.LineColor != "" {
		opts.LineColor = c.LineColor
	}

	preview, err := atlas.Preview(img, meta.Layout(), opts)
	if err != nil {
		return err
	}
	if err := atlas.WritePNG(preview, c.Out); err != nil {
		return err
	}
	logger.Sugar.Infow("preview written", "path", c.Out, "scale", opts.Scale)
	return nil
}

type versionCmd struct{}

func (c *versionCmd) Run(cfg *config.Config) error {
	fmt.Printf("atlasgen %s\n", Version)
	fmt.Printf("  Build time: %s\n", BuildTime)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	return nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("atlasgen"),
		kong.Description(desc),
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)

	level := cfg.Logging.Level
	if cli.Debug {
		level = "debug"
	}
	ctx.FatalIfErrorf(logger.Init(level, cfg.Logging.LogFile))
	defer logger.Sync()

	err = ctx.Run(cfg)
	logger.Sync()
	ctx.FatalIfErrorf(err)
}
