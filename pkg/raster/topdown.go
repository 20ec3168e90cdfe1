package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/mesh"
)

// DefaultResolution is the square silhouette image size.
const DefaultResolution = 512

// partLevel is the RGB threshold below which a pixel counts as part of
// the silhouette (opaque black geometry on a white background).
const partLevel = 128

// TopDown renders world-space triangles from directly above as an opaque
// black-on-white image framing the given bounds. Implementations follow
// the usual image convention: row 0 is the far (max Z) edge.
type TopDown interface {
	RasterizeTopDown(objs []mesh.Object, bounds geom.Bounds, resolution int) (image.Image, error)
}

// Software is a CPU TopDown implementation. It scan-fills the XZ
// projection of every triangle with an edge-function test per pixel.
type Software struct{}

// RasterizeTopDown renders objs over bounds into a resolution x resolution
// image, black geometry on white.
func (Software) RasterizeTopDown(objs []mesh.Object, bounds geom.Bounds, resolution int) (image.Image, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("raster: resolution must be positive, got %d", resolution)
	}
	w, d := bounds.Width(), bounds.Depth()
	if w <= 0 || d <= 0 {
		return nil, fmt.Errorf("raster: degenerate bounds %+v", bounds)
	}

	img := image.NewRGBA(image.Rect(0, 0, resolution, resolution))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	res := float64(resolution)
	toPx := func(v mesh.Vec3) (float64, float64) {
		return (v.X - bounds.MinX) / w * res, (bounds.MaxZ - v.Z) / d * res
	}

	for _, o := range objs {
		for _, tri := range o.Triangles() {
			ax, az := toPx(tri.A)
			bx, bz := toPx(tri.B)
			cx, cz := toPx(tri.C)
			fillTriangle(img, ax, az, bx, bz, cx, cz)
		}
	}
	return img, nil
}

// fillTriangle paints every pixel whose center lies inside the projected
// triangle. Degenerate projections (vertical faces seen edge-on) cover no
// pixel centers and are skipped naturally.
func fillTriangle(img *image.RGBA, ax, ay, bx, by, cx, cy float64) {
	minX := int(math.Floor(math.Min(ax, math.Min(bx, cx))))
	maxX := int(math.Ceil(math.Max(ax, math.Max(bx, cx))))
	minY := int(math.Floor(math.Min(ay, math.Min(by, cy))))
	maxY := int(math.Ceil(math.Max(ay, math.Max(by, cy))))

	b := img.Bounds()
	if minX < b.Min.X {
		minX = b.Min.X
	}
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxX > b.Max.X-1 {
		maxX = b.Max.X - 1
	}
	if maxY > b.Max.Y-1 {
		maxY = b.Max.Y - 1
	}

	area := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	if area == 0 {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0 := (bx-ax)*(py-ay) - (by-ay)*(px-ax)
			w1 := (cx-bx)*(py-by) - (cy-by)*(px-bx)
			w2 := (ax-cx)*(py-cy) - (ay-cy)*(px-cx)
			if area > 0 {
				if w0 >= 0 && w1 >= 0 && w2 >= 0 {
					img.Set(x, y, color.Black)
				}
			} else if w0 <= 0 && w1 <= 0 && w2 <= 0 {
				img.Set(x, y, color.Black)
			}
		}
	}
}

// BinaryGrid thresholds a rendered silhouette image into an occupancy
// grid over bounds. The image row order is inverted first so that grid
// row 0 sits at MinZ (Y-down image to Y-up world).
func BinaryGrid(img image.Image, bounds geom.Bounds) *Grid {
	flipped := imaging.FlipV(img)
	bin := segment.Threshold(flipped, partLevel-1)

	b := bin.Bounds()
	g := NewGrid(bounds, b.Dx(), b.Dy())
	for r := 0; r < b.Dy(); r++ {
		for c := 0; c < b.Dx(); c++ {
			// Threshold maps part pixels (r,g,b < 128) to black.
			if bin.GrayAt(b.Min.X+c, b.Min.Y+r).Y == 0 {
				g.Set(c, r, true)
			}
		}
	}
	return g
}
