// Package cluster groups overhang points into spatial clusters by planar
// proximity and subdivides clusters too large to be spanned by a single
// support.
package cluster

import (
	"math"
	"sort"

	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/overhang"
)

// Cluster is an analyzed group of overhang points. Clusters are read-only
// after creation: merges and subdivisions produce new clusters.
type Cluster struct {
	Points       []overhang.Point
	CentroidX    float64 // area-weighted
	CentroidZ    float64
	MinY, MaxY   float64
	Bounds       geom.Bounds
	Width, Depth float64
	AspectRatio  float64
	TotalArea    float64
}

// MaxDimension returns the larger of width and depth.
func (c *Cluster) MaxDimension() float64 {
	return math.Max(c.Width, c.Depth)
}

// Centroid returns the area-weighted centroid as a plate-plane point.
func (c *Cluster) Centroid() geom.Point2D {
	return geom.Point2D{X: c.CentroidX, Z: c.CentroidZ}
}

// Build groups points into clusters: a cluster grows by absorbing any
// unclustered point within clusterDistance of any point already in the
// cluster (BFS, not distance-to-seed), which lets clusters follow
// elongated overhangs. Membership is order-independent; cluster order
// follows the input scan.
func Build(points []overhang.Point, clusterDistance float64) []*Cluster {
	used := make([]bool, len(points))
	var clusters []*Cluster

	for seed := range points {
		if used[seed] {
			continue
		}
		used[seed] = true
		member := []int{seed}

		for head := 0; head < len(member); head++ {
			cur := points[member[head]]
			for j := range points {
				if used[j] {
					continue
				}
				if planarDist(cur, points[j]) <= clusterDistance {
					used[j] = true
					member = append(member, j)
				}
			}
		}

		pts := make([]overhang.Point, len(member))
		for i, idx := range member {
			pts[i] = points[idx]
		}
		clusters = append(clusters, analyze(pts))
	}
	return clusters
}

func planarDist(a, b overhang.Point) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// analyze computes the aggregate geometry of a finished point group.
func analyze(pts []overhang.Point) *Cluster {
	c := &Cluster{Points: pts}
	if len(pts) == 0 {
		return c
	}

	c.MinY, c.MaxY = pts[0].Y, pts[0].Y
	c.Bounds = geom.Bounds{MinX: pts[0].X, MinZ: pts[0].Z, MaxX: pts[0].X, MaxZ: pts[0].Z}

	var wx, wz float64
	for _, p := range pts {
		c.TotalArea += p.Area
		wx += p.X * p.Area
		wz += p.Z * p.Area
		c.MinY = math.Min(c.MinY, p.Y)
		c.MaxY = math.Max(c.MaxY, p.Y)
		c.Bounds.MinX = math.Min(c.Bounds.MinX, p.X)
		c.Bounds.MaxX = math.Max(c.Bounds.MaxX, p.X)
		c.Bounds.MinZ = math.Min(c.Bounds.MinZ, p.Z)
		c.Bounds.MaxZ = math.Max(c.Bounds.MaxZ, p.Z)
	}

	if c.TotalArea > 0 {
		c.CentroidX = wx / c.TotalArea
		c.CentroidZ = wz / c.TotalArea
	} else {
		// Zero-area faces: fall back to the unweighted mean.
		for _, p := range pts {
			c.CentroidX += p.X
			c.CentroidZ += p.Z
		}
		c.CentroidX /= float64(len(pts))
		c.CentroidZ /= float64(len(pts))
	}

	c.Width = c.Bounds.Width()
	c.Depth = c.Bounds.Depth()
	c.AspectRatio = math.Max(c.Width, 1) / math.Max(c.Depth, 1)
	return c
}

// Subdivide splits a cluster whose max dimension exceeds maxSpan into a
// regular grid of at most ceil(width/maxSpan) x ceil(depth/maxSpan)
// cells. Only non-empty cells become sub-clusters. Clusters within the
// span are returned unchanged.
func Subdivide(c *Cluster, maxSpan float64) []*Cluster {
	if maxSpan <= 0 || c.MaxDimension() <= maxSpan {
		return []*Cluster{c}
	}

	cols := int(math.Ceil(c.Width / maxSpan))
	rows := int(math.Ceil(c.Depth / maxSpan))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([][]overhang.Point, cols*rows)
	for _, p := range c.Points {
		col, row := 0, 0
		if c.Width > 0 {
			col = int((p.X - c.Bounds.MinX) / c.Width * float64(cols))
		}
		if c.Depth > 0 {
			row = int((p.Z - c.Bounds.MinZ) / c.Depth * float64(rows))
		}
		if col >= cols {
			col = cols - 1
		}
		if row >= rows {
			row = rows - 1
		}
		cells[row*cols+col] = append(cells[row*cols+col], p)
	}

	var out []*Cluster
	for _, cell := range cells {
		if len(cell) > 0 {
			out = append(out, analyze(cell))
		}
	}
	return out
}

// SortByAreaDesc orders clusters by total area, largest first, keeping
// the relative order of equal-area clusters stable for deterministic
// placement.
func SortByAreaDesc(clusters []*Cluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TotalArea > clusters[j].TotalArea
	})
}
