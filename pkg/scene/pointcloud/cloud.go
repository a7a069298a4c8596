// Package pointcloud is the terminal point-cloud engine behind the viewport.
// It reads .splat, ASCII .ply and .xyz assets and rasterises them as
// coloured points.
package pointcloud

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/herbview/pkg/scene"
)

// Format is an asset encoding.
type Format int

const (
	// FormatUnknown is returned for unrecognised extensions.
	FormatUnknown Format = iota
	// FormatSplat is the 32-byte-per-record gaussian splat layout.
	FormatSplat
	// FormatPLY is ASCII PLY with a vertex element.
	FormatPLY
	// FormatXYZ is whitespace separated "x y z [r g b]" lines.
	FormatXYZ
)

func (f Format) String() string {
	switch f {
	case FormatSplat:
		return "splat"
	case FormatPLY:
		return "ply"
	case FormatXYZ:
		return "xyz"
	default:
		return "unknown"
	}
}

// ErrUnknownFormat is returned when an asset's extension is not supported.
var ErrUnknownFormat = errors.New("pointcloud: unknown asset format")

// DetectFormat picks the format from the extension of an asset path or URL,
// ignoring any query string.
func DetectFormat(asset string) Format {
	p := asset
	if u, err := url.Parse(asset); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".splat":
		return FormatSplat
	case ".ply":
		return FormatPLY
	case ".xyz", ".txt", ".pts":
		return FormatXYZ
	default:
		return FormatUnknown
	}
}

// DefaultColor is used for points without colour.
var DefaultColor = colorful.Color{R: 0.85, G: 0.85, B: 0.8}

// Point is one coloured sample.
type Point struct {
	Pos   scene.Vec3
	Color colorful.Color
	Alpha float32
}

// Cloud is a decoded asset.
type Cloud struct {
	Points   []Point
	Min, Max scene.Vec3
}

func newCloud(points []Point) *Cloud {
	c := &Cloud{Points: points}
	for i, p := range points {
		if i == 0 {
			c.Min, c.Max = p.Pos, p.Pos
			continue
		}
		c.Min = scene.Vec3{X: min(c.Min.X, p.Pos.X), Y: min(c.Min.Y, p.Pos.Y), Z: min(c.Min.Z, p.Pos.Z)}
		c.Max = scene.Vec3{X: max(c.Max.X, p.Pos.X), Y: max(c.Max.Y, p.Pos.Y), Z: max(c.Max.Z, p.Pos.Z)}
	}
	return c
}

// Decimate keeps at most n points by taking every k-th one. n <= 0 keeps
// everything.
func (c *Cloud) Decimate(n int) {
	if n <= 0 || len(c.Points) <= n {
		return
	}
	stride := (len(c.Points) + n - 1) / n
	kept := make([]Point, 0, n)
	for i := 0; i < len(c.Points); i += stride {
		kept = append(kept, c.Points[i])
	}
	c.Points = kept
}

// Decode reads an asset in format f.
func Decode(r io.Reader, f Format) (*Cloud, error) {
	switch f {
	case FormatSplat:
		return ParseSplat(r)
	case FormatPLY:
		return ParsePLY(r)
	case FormatXYZ:
		return ParseXYZ(r)
	default:
		return nil, ErrUnknownFormat
	}
}

func rgb8(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func lineError(n int, err error) error {
	return fmt.Errorf("line %d: %w", n, err)
}
