package internal

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareWithHolePolygon() *Polygon {
	poly := &Polygon{}
	poly.AddContour(makeSquare(0, 0, 10, 10), 1, false, false)
	poly.AddContour(makeSquare(4, 4, 6, 6), 2, true, true)
	return poly
}

func TestCarveHoles_SquareHole(t *testing.T) {
	poly := squareWithHolePolygon()
	require.Equal(t, []r2.Point{{X: 5, Y: 5}}, poly.Holes)

	m := meshPolygon(poly, nil, nil)

	AssertValidMesh(t, m)
	AssertSegmentsPreserved(t, m, poly)
	assert.InDelta(t, 96.0, meshArea(m), 1e-9)
	for _, tri := range m.Triangles() {
		x, y := tri.Centroid()
		assert.False(t, x > 4 && x < 6 && y > 4 && y < 6, "triangle %s is in the hole", tri)
	}
	// Outer ring plus hole ring
	assert.Equal(t, 8, m.HullSize())
	for _, s := range m.Segments() {
		assert.NotZero(t, s.Label)
	}
}

func TestCarveHoles_Concavity(t *testing.T) {
	// An L shape. The convex hull triangulation covers the notch, which gets
	// eaten from the hull.
	poly := &Polygon{}
	poly.AddContour([]*Vertex{
		NewVertex(0, 0),
		NewVertex(2, 0),
		NewVertex(2, 1),
		NewVertex(1, 1),
		NewVertex(1, 2),
		NewVertex(0, 2),
	}, 1, false, false)

	m := meshPolygon(poly, nil, nil)
	AssertValidMesh(t, m)
	assert.InDelta(t, 3.0, meshArea(m), 1e-12)
	assert.Equal(t, 6, m.HullSize())

	t.Run("convex", func(t *testing.T) {
		poly := &Polygon{}
		poly.AddContour([]*Vertex{
			NewVertex(0, 0),
			NewVertex(2, 0),
			NewVertex(2, 1),
			NewVertex(1, 1),
			NewVertex(1, 2),
			NewVertex(0, 2),
		}, 1, false, false)
		m := meshPolygon(poly, &ConstraintOptions{Convex: true}, nil)
		AssertValidMesh(t, m)
		assert.InDelta(t, 3.5, meshArea(m), 1e-12)
		// The hull is covered by subsegments.
		for _, e := range m.Edges() {
			if e.Boundary {
				assert.True(t, e.Constrained)
			}
		}
	})
}

func TestCarveHoles_UndeadVertex(t *testing.T) {
	// A stray point inside the hole disappears with it.
	poly := squareWithHolePolygon()
	stray := NewVertex(5.5, 4.5)
	poly.Points = append(poly.Points, stray)

	m := meshPolygon(poly, nil, nil)
	AssertValidMesh(t, m)
	assert.InDelta(t, 96.0, meshArea(m), 1e-9)
	assert.Equal(t, UndeadVertex, stray.Type)
	assert.NotContains(t, m.Vertices(), stray)
}

func TestCarveHoles_Regions(t *testing.T) {
	// Two halves split by an internal segment, each with its own region.
	poly := &Polygon{}
	poly.AddContour([]*Vertex{
		NewVertex(0, 0),
		NewVertex(1, 0),
		NewVertex(2, 0),
		NewVertex(2, 1),
		NewVertex(1, 1),
		NewVertex(0, 1),
	}, 1, false, false)
	poly.Segments = append(poly.Segments, Edge{P0: 1, P1: 4, Label: 3})
	poly.AddRegion(0.5, 0.5, 1, 0)
	poly.AddRegion(1.5, 0.5, 2, 0.05)

	m := meshPolygon(poly, nil, &QualityOptions{VariableArea: true})
	AssertValidMesh(t, m)
	AssertSegmentsPreserved(t, m, poly)

	var left, right float64
	for _, tri := range m.Triangles() {
		x, _ := tri.Centroid()
		area := tri.SignedArea()
		if x < 1 {
			assert.Equal(t, 1, tri.Region)
			left += area
		} else {
			assert.Equal(t, 2, tri.Region)
			assert.LessOrEqual(t, area, 0.05+1e-12)
			right += area
		}
	}
	assert.InDelta(t, 1.0, left, 1e-12)
	assert.InDelta(t, 1.0, right, 1e-12)
}

func TestRegionIterator(t *testing.T) {
	m := meshPolygon(squareWithHolePolygon(), nil, nil)
	count := 0
	m.RegionIterator(m.Triangles()[0], func(tri *Triangle) {
		count++
		assert.False(t, tri.IsDead())
	})
	// The ring between the two squares is one region.
	assert.Equal(t, len(m.Triangles()), count)
	for _, tri := range m.Triangles() {
		assert.False(t, tri.infected)
	}
}
