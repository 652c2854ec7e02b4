package internal

// This contains no actual tests. It is just a collection of helpers for
// testing mesh validity.

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a mesh is structurally valid. The rules are:
// 1. Every live triangle is counterclockwise with nonzero area.
// 2. Adjacency is symmetric, and neighbors agree on the shared edge.
// 3. Subsegments and the triangles holding them agree.
// 4. Every corner is a live vertex.
func AssertValidMesh(t *testing.T, m *Mesh) {
	triangles := m.Triangles()
	require.NotEmpty(t, triangles, "mesh has no triangles")
	for _, tri := range triangles {
		require.False(t, tri.IsDead(), "dead triangle in the live list: %s", tri)
		require.Greater(t, Orient2D(tri.vertices[0].Point, tri.vertices[1].Point, tri.vertices[2].Point), 0.0,
			"triangle is not counterclockwise: %s", tri)

		for orient := 0; orient < 3; orient++ {
			edge := Otri{tri, orient}
			require.True(t, edge.Org().IsLive(), "corner %v of %s is not live", edge.Org(), tri)

			neighbor := edge.Sym()
			if !neighbor.IsEmpty() {
				require.False(t, neighbor.tri.IsDead(), "%s has a dead neighbor", tri)
				require.True(t, neighbor.Sym().Equal(edge), "adjacency is not symmetric at %v", edge)
				require.Same(t, edge.Org(), neighbor.Dest(), "neighbors disagree on the shared edge at %v", edge)
				require.Same(t, edge.Dest(), neighbor.Org(), "neighbors disagree on the shared edge at %v", edge)
			}

			sub := edge.SegPivot()
			if !sub.IsEmpty() {
				require.True(t, sub.TriPivot().Equal(edge), "subsegment %v does not point back at %v", sub, edge)
				ends := []*Vertex{sub.Org(), sub.Dest()}
				assert.Contains(t, ends, edge.Org())
				assert.Contains(t, ends, edge.Dest())
			}
		}
	}
}

// Check that every unconstrained interior edge is locally Delaunay.
func AssertDelaunay(t *testing.T, m *Mesh) {
	for _, tri := range m.Triangles() {
		for orient := 0; orient < 3; orient++ {
			edge := Otri{tri, orient}
			neighbor := edge.Sym()
			if neighbor.IsEmpty() || !edge.SegPivot().IsEmpty() {
				continue
			}
			assert.LessOrEqual(t,
				InCircle(edge.Org().Point, edge.Dest().Point, edge.Apex().Point, neighbor.Apex().Point), 0.0,
				"edge %v is not locally Delaunay", edge)
		}
	}
}

// Check that every input segment of the polygon is covered by subsegments
// of the mesh lying along it.
func AssertSegmentsPreserved(t *testing.T, m *Mesh, poly *Polygon) {
	subsegs := m.Segments()
	for _, seg := range poly.Segments {
		a := poly.Points[seg.P0].Point
		b := poly.Points[seg.P1].Point
		length := a.Sub(b).Norm()
		direction := b.Sub(a).Mul(1 / length)
		tolerance := 1e-9 * math.Max(1, length)

		along := func(p r2.Point) bool {
			offset := p.Sub(a)
			projection := offset.Dot(direction)
			return math.Abs(offset.Cross(direction)) < tolerance &&
				projection > -tolerance && projection < length+tolerance
		}

		var covered float64
		for _, s := range subsegs {
			if along(s.vertices[0].Point) && along(s.vertices[1].Point) {
				covered += s.vertices[0].Point.Sub(s.vertices[1].Point).Norm()
			}
		}
		assert.InDelta(t, length, covered, 1e-6*math.Max(1, length),
			"segment %v-%v is not covered by subsegments", a, b)
	}
}

func meshArea(m *Mesh) float64 {
	var area float64
	for _, tri := range m.Triangles() {
		area += tri.SignedArea()
	}
	return area
}

// Area of a contour list whose holes wind clockwise.
func contourListArea(list ContourList) float64 {
	var area float64
	for _, c := range list {
		area += c.SignedArea()
	}
	return area
}

// Sample a grid over the contours and check that the mesh covers exactly the
// points inside them by the even-odd rule.
func validateMeshBySampling(t *testing.T, m *Mesh, expected ContourList) {
	bounds := expected.Bounds()
	// Pad the bounding box by 10%
	bounds = bounds.ExpandedByMargin(0.1 * math.Max(bounds.X.Length(), bounds.Y.Length()))
	// An irrational-ish offset keeps samples off the contour edges.
	step := math.Max(bounds.X.Length(), bounds.Y.Length()) / 50
	offset := step * 0.1234567

	triangles := m.Triangles()
	covers := func(p r2.Point) bool {
		for _, tri := range triangles {
			if tri.Contains(p.X, p.Y) {
				return true
			}
		}
		return false
	}

	for y := bounds.Y.Lo + offset; y <= bounds.Y.Hi; y += step {
		for x := bounds.X.Lo + offset; x <= bounds.X.Hi; x += step {
			p := r2.Point{X: x, Y: y}
			if expected.ContainsPointByEvenOdd(p) {
				assert.True(t, covers(p), "point %v should be in the mesh", p)
			} else {
				assert.False(t, covers(p), "point %v should not be in the mesh", p)
			}
		}
	}
}

func minAngle(m *Mesh) float64 {
	smallest := 180.0
	for _, tri := range m.Triangles() {
		for _, angle := range TriangleAngles(tri) {
			smallest = math.Min(smallest, angle)
		}
	}
	return smallest
}
