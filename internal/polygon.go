package internal

import (
	"github.com/golang/geo/r2"
)

// A planar straight-line graph: points, segments between them, hole seeds, and
// region seeds.
type Polygon struct {
	Points   []*Vertex
	Segments []Edge
	Holes    []r2.Point
	Regions  []RegionPointer
}

// A segment between two points of a Polygon, by index.
type Edge struct {
	P0, P1 int
	Label  int
}

// A seed point for region marking. Every triangle reachable from the triangle
// containing Point without crossing a segment gets the region id, and, if Area
// is positive, the area constraint.
type RegionPointer struct {
	Point r2.Point
	ID    int
	Area  float64
}

// A closed ring of points. The closing edge from the last point back to the
// first is implicit.
type Contour []*Vertex

// Even-odd point-in-contour test.
func (c Contour) ContainsPointByEvenOdd(p r2.Point) bool {
	return c.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule. Counts the edges crossed by a ray
// from p in the +x direction.
func (c Contour) CrossingCount(p r2.Point) int {
	crossingCount := 0
	for i, vertex := range c {
		nextVertex := c[CircularIndex(i+1, len(c))]
		if (vertex.Y < p.Y) != (nextVertex.Y < p.Y) {
			x := vertex.X + (p.Y-vertex.Y)/(nextVertex.Y-vertex.Y)*(nextVertex.X-vertex.X)
			if x > p.X {
				crossingCount++
			}
		}
	}
	return crossingCount
}

func (c Contour) Reverse() Contour {
	reversed := make(Contour, 0, len(c))
	for i := len(c) - 1; i >= 0; i-- {
		reversed = append(reversed, c[i])
	}
	return reversed
}

// Twice the signed area (shoelace). Positive for counterclockwise contours.
func (c Contour) SignedArea() float64 {
	var sum float64
	for i, p := range c {
		q := c[CircularIndex(i+1, len(c))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func (c Contour) IsCCW() bool {
	return c.SignedArea() > 0
}

func (c Contour) Bounds() r2.Rect {
	rect := r2.EmptyRect()
	for _, p := range c {
		rect = rect.AddPoint(p.Point)
	}
	return rect
}

// Add a closed contour to the polygon. A duplicated closing point is dropped.
// If hole is set, a seed point inside the contour is added to the hole list,
// which is the centroid for convex contours.
func (poly *Polygon) AddContour(points []*Vertex, label int, hole, convex bool) {
	contour := poly.appendContour(points, label)
	if !hole {
		return
	}
	if convex || len(contour) == 3 {
		var centroid r2.Point
		for _, p := range contour {
			centroid = centroid.Add(p.Point)
		}
		poly.Holes = append(poly.Holes, centroid.Mul(1/float64(len(contour))))
		return
	}
	poly.Holes = append(poly.Holes, findPointInContour(contour))
}

// Add a closed contour along with an explicit hole seed.
func (poly *Polygon) AddContourWithHole(points []*Vertex, label int, hole r2.Point) {
	poly.appendContour(points, label)
	poly.Holes = append(poly.Holes, hole)
}

func (poly *Polygon) appendContour(points []*Vertex, label int) Contour {
	contour := Contour(points)
	if len(contour) > 1 && contour[0].Coincides(contour[len(contour)-1]) {
		contour = contour[:len(contour)-1]
	}
	if len(contour) < 3 {
		fatalf("contour needs at least 3 distinct points, got %d", len(contour))
	}
	offset := len(poly.Points)
	poly.Points = append(poly.Points, contour...)
	for i := range contour {
		poly.Segments = append(poly.Segments, Edge{
			P0:    offset + i,
			P1:    offset + CircularIndex(i+1, len(contour)),
			Label: label,
		})
	}
	return contour
}

func (poly *Polygon) AddRegion(x, y float64, id int, area float64) {
	poly.Regions = append(poly.Regions, RegionPointer{Point: r2.Point{X: x, Y: y}, ID: id, Area: area})
}

func (poly *Polygon) Bounds() r2.Rect {
	return Contour(poly.Points).Bounds()
}

// Search for a point strictly inside a non-convex contour by probing along the
// normals of each edge, at shrinking distances, on both sides.
func findPointInContour(contour Contour) r2.Point {
	const limit = 8
	bounds := contour.Bounds()
	for i, a := range contour {
		b := contour[CircularIndex(i+1, len(contour))]
		center := a.Point.Add(b.Point).Mul(0.5)
		normal := r2.Point{X: b.Y - a.Y, Y: a.X - b.X}.Mul(1 / 1.374)
		for j := 1; j <= limit; j++ {
			offset := normal.Mul(1 / float64(j))
			for _, test := range []r2.Point{center.Add(offset), center.Sub(offset)} {
				if bounds.ContainsPoint(test) && contour.ContainsPointByEvenOdd(test) {
					return test
				}
			}
		}
	}
	fatalf("unable to find a point inside the hole contour")
	return r2.Point{}
}

// A set of contours read under the even-odd rule: a point is inside when it
// is inside an odd number of them. Winding doesn't matter.
type ContourList []Contour

func (list ContourList) ContainsPointByEvenOdd(p r2.Point) bool {
	count := 0
	for _, c := range list {
		count += c.CrossingCount(p)
	}
	return count%2 == 1
}

func (list ContourList) Bounds() r2.Rect {
	rect := r2.EmptyRect()
	for _, c := range list {
		rect = rect.Union(c.Bounds())
	}
	return rect
}

// Build a polygon from the contours, with every contour a chain of segments.
// Each contour gets a hole seed on whichever side of it is outside the
// even-odd region, so carving leaves exactly the region.
func (list ContourList) Polygon(label int) *Polygon {
	poly := &Polygon{}
	for _, c := range list {
		contour := poly.appendContour(c, label)
		if seed, ok := list.outsideProbe(contour); ok {
			poly.Holes = append(poly.Holes, seed)
		}
	}
	return poly
}

// Find a point just off the contour that is outside the region. Probes each
// edge's midpoint on both sides, at a small fraction of the edge length.
func (list ContourList) outsideProbe(contour Contour) (r2.Point, bool) {
	const fraction = 1e-3
	for i, a := range contour {
		b := contour[CircularIndex(i+1, len(contour))]
		center := a.Point.Add(b.Point).Mul(0.5)
		normal := r2.Point{X: b.Y - a.Y, Y: a.X - b.X}.Mul(fraction)
		if normal.Norm() == 0 {
			continue
		}
		for _, test := range []r2.Point{center.Add(normal), center.Sub(normal)} {
			if !list.ContainsPointByEvenOdd(test) {
				return test, true
			}
		}
	}
	return r2.Point{}, false
}
