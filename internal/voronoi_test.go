package internal

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ringArea(ring []r2.Point) float64 {
	var sum float64
	for i, p := range ring {
		q := ring[CircularIndex(i+1, len(ring))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func TestVoronoi(t *testing.T) {
	m := Triangulate(randomPoints(100, 9), NewBehavior())
	d := NewVoronoi(m)
	require.NoError(t, d.Validate())

	vertices := m.Vertices()
	require.Len(t, d.Faces, len(vertices))
	// One vertex per triangle, and one per hull edge at infinity.
	assert.Len(t, d.Vertices, len(m.Triangles())+m.HullSize())
	assert.Len(t, d.HalfEdges, 2*m.NumberOfEdges())

	unbounded := 0
	for face := range d.IterateFaces() {
		require.NotNil(t, face.Edge)
		assert.Same(t, vertices[face.ID], face.Generator)
		if !face.Bounded {
			unbounded++
			assert.True(t, face.Edge.Origin.Infinite)
			continue
		}

		ring := face.Polygon()
		assert.Greater(t, ringArea(ring), 0.0, "%v is not counterclockwise", face)
		// Each corner is a circumcenter, no nearer to any other vertex.
		for _, corner := range ring {
			own := corner.Sub(face.Generator.Point).Norm()
			for _, v := range vertices {
				assert.GreaterOrEqual(t, corner.Sub(v.Point).Norm(), own-1e-6*math.Max(1, own))
			}
		}
	}
	assert.Equal(t, m.HullSize(), unbounded)
}

func TestBoundedVoronoi(t *testing.T) {
	m := meshPolygon(squareWithHolePolygon(), nil, &QualityOptions{MinimumAngle: 25, MaximumArea: 1})
	d := NewBoundedVoronoi(m)
	require.NoError(t, d.Validate())

	var area float64
	generators := make(map[*Vertex]bool)
	twins := 0
	for _, face := range d.Faces {
		assert.True(t, face.Bounded)
		require.NotNil(t, face.Generator)
		generators[face.Generator] = true

		ring := face.Polygon()
		faceArea := ringArea(ring)
		assert.Greater(t, faceArea, 0.0)
		area += faceArea

		for _, p := range ring {
			assert.True(t, p.X > -1e-6 && p.X < 10+1e-6 && p.Y > -1e-6 && p.Y < 10+1e-6, "%v is outside the domain", p)
			assert.False(t, p.X > 4+1e-6 && p.X < 6-1e-6 && p.Y > 4+1e-6 && p.Y < 6-1e-6, "%v is in the hole", p)
		}
		for _, e := range face.Edges() {
			if e.Twin != nil {
				twins++
				assert.NotSame(t, face, e.Twin.Face)
			}
		}
	}
	assert.InDelta(t, 96.0, area, 1e-4)
	assert.Len(t, generators, len(m.Vertices()))
	assert.Positive(t, twins)
}

func TestBoundaryRings(t *testing.T) {
	m := meshPolygon(squareWithHolePolygon(), nil, nil)
	rings := m.boundaryRings()
	require.Len(t, rings, 2)

	var areas []float64
	for _, ring := range rings {
		areas = append(areas, ringArea(ring))
	}
	assert.ElementsMatch(t, []float64{100, -4}, areas)
}

func TestToDCEL(t *testing.T) {
	m := meshPolygon(squareWithHolePolygon(), nil, &QualityOptions{MinimumAngle: 20})
	d := m.ToDCEL()
	require.NoError(t, d.Validate())

	assert.Len(t, d.Faces, len(m.Triangles()))
	assert.Len(t, d.Vertices, len(m.Vertices()))
	assert.Len(t, d.HalfEdges, 2*m.NumberOfEdges())

	outside := 0
	for _, e := range d.HalfEdges {
		require.NotNil(t, e.Twin)
		require.NotNil(t, e.Next)
		if e.Face == nil {
			outside++
			continue
		}
		assert.Len(t, e.Face.Edges(), 3)
	}
	assert.Equal(t, m.HullSize(), outside)

	for _, face := range d.Faces {
		assert.InDelta(t, m.Triangles()[face.ID].SignedArea(), ringArea(face.Polygon()), 1e-12)
	}
}
