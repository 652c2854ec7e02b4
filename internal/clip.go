package internal

import (
	"math"

	clipper "github.com/ctessum/go.clipper"
	"github.com/golang/geo/r2"
)

// Polygon boolean operations, done in clipper's integer coordinate space.
type ClipOperation int

const (
	ClipIntersection ClipOperation = iota
	ClipUnion
	ClipDifference
	ClipXor
)

func (op ClipOperation) clipType() clipper.ClipType {
	switch op {
	case ClipIntersection:
		return clipper.CtIntersection
	case ClipUnion:
		return clipper.CtUnion
	case ClipDifference:
		return clipper.CtDifference
	case ClipXor:
		return clipper.CtXor
	}
	fatalf("unknown clip operation %d", int(op))
	return 0
}

// Largest integer coordinate produced for a point inside the reference bounds.
const fixedPointRange = 1 << 30

// Maps points to and from integer coordinates, relative to the center of some
// reference bounds.
type fixedPoint struct {
	origin r2.Point
	scale  float64
}

func newFixedPoint(bounds r2.Rect) fixedPoint {
	extent := math.Max(bounds.X.Length(), bounds.Y.Length())
	if extent <= 0 || bounds.IsEmpty() {
		extent = 1
	}
	return fixedPoint{origin: bounds.Center(), scale: fixedPointRange / extent}
}

func (f fixedPoint) intPoint(p r2.Point) *clipper.IntPoint {
	q := p.Sub(f.origin).Mul(f.scale)
	return &clipper.IntPoint{X: clipper.CInt(math.Round(q.X)), Y: clipper.CInt(math.Round(q.Y))}
}

func (f fixedPoint) point(ip *clipper.IntPoint) r2.Point {
	return r2.Point{X: float64(ip.X), Y: float64(ip.Y)}.Mul(1 / f.scale).Add(f.origin)
}

func (f fixedPoint) path(points []r2.Point) clipper.Path {
	path := make(clipper.Path, len(points))
	for i, p := range points {
		path[i] = f.intPoint(p)
	}
	return path
}

func (f fixedPoint) contourPath(c Contour) clipper.Path {
	path := make(clipper.Path, len(c))
	for i, v := range c {
		path[i] = f.intPoint(v.Point)
	}
	return path
}

// Combine two sets of contours with a boolean operation, under the nonzero
// winding rule, and turn the result into a polygon ready for meshing. Holes
// of the result get hole seeds, and every contour gets the given label.
func ClipPolygons(subject, clip []Contour, op ClipOperation, label int) *Polygon {
	bounds := r2.EmptyRect()
	for _, c := range append(append([]Contour(nil), subject...), clip...) {
		bounds = bounds.Union(c.Bounds())
	}
	f := newFixedPoint(bounds)

	c := clipper.NewClipper(clipper.IoNone)
	for _, contour := range subject {
		c.AddPath(f.contourPath(contour), clipper.PtSubject, true)
	}
	for _, contour := range clip {
		c.AddPath(f.contourPath(contour), clipper.PtClip, true)
	}
	tree, ok := c.Execute2(op.clipType(), clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		fatalf("polygon clipping failed")
	}

	poly := &Polygon{}
	for node := tree.GetFirst(); node != nil; node = node.GetNext() {
		path := node.Contour()
		if len(path) < 3 {
			continue
		}
		points := make([]*Vertex, len(path))
		for i, ip := range path {
			p := f.point(ip)
			points[i] = NewVertex(p.X, p.Y)
		}
		poly.AddContour(points, label, node.IsHole(), false)
	}
	return poly
}

// Intersect a closed ring with a region given by rings under the nonzero
// rule. Only the outer rings of the result are returned.
func clipRing(ring []r2.Point, region clipper.Paths, f fixedPoint) [][]r2.Point {
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPath(f.path(ring), clipper.PtSubject, true)
	c.AddPaths(region, clipper.PtClip, true)
	solution, ok := c.Execute1(clipper.CtIntersection, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		topologyf("unable to clip a ring of %d points", len(ring))
	}
	var result [][]r2.Point
	for _, path := range solution {
		if len(path) < 3 || !clipper.Orientation(path) {
			continue
		}
		points := make([]r2.Point, len(path))
		for i, ip := range path {
			points[i] = f.point(ip)
		}
		result = append(result, points)
	}
	return result
}
