package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func originOf(t *testing.T, m *Mesh, v *Vertex) Otri {
	for _, tri := range m.Triangles() {
		for orient := 0; orient < 3; orient++ {
			o := Otri{tri, orient}
			if o.Org() == v {
				return o
			}
		}
	}
	require.FailNow(t, "vertex is not in the mesh", "%v", v)
	return Otri{}
}

func TestInsertVertex(t *testing.T) {
	m := Triangulate(unitSquare(), NewBehavior())

	v := NewVertex(0.25, 0.5)
	m.addVertex(v)
	var searchtri Otri
	require.Equal(t, Successful, m.InsertVertex(v, &searchtri, nil, false, false))
	assert.Same(t, v, searchtri.Org())

	AssertValidMesh(t, m)
	AssertDelaunay(t, m)
	assert.Len(t, m.Triangles(), 4)
	assert.InDelta(t, 1.0, meshArea(m), 1e-12)

	t.Run("duplicate", func(t *testing.T) {
		var searchtri Otri
		assert.Equal(t, Duplicate, m.InsertVertex(NewVertex(0.25, 0.5), &searchtri, nil, false, false))
		assert.Same(t, v, searchtri.Org())
		assert.Len(t, m.Triangles(), 4)
	})

	t.Run("outside", func(t *testing.T) {
		var searchtri Otri
		assert.Equal(t, Violating, m.InsertVertex(NewVertex(5, 5), &searchtri, nil, false, false))
		assert.Len(t, m.Triangles(), 4)
	})
}

func TestInsertPoint(t *testing.T) {
	m := meshPolygon(squareWithHolePolygon(), nil, nil)
	before := len(m.Vertices())

	v := NewVertex(2, 3)
	// Close enough to the outer square to encroach upon it, but kept either way.
	require.Contains(t, []InsertResult{Successful, Encroaching}, m.InsertPoint(v))
	assert.Equal(t, FreeVertex, v.Type)
	assert.Equal(t, before, v.ID)
	assert.Len(t, m.Vertices(), before+1)
	AssertValidMesh(t, m)
	AssertDelaunay(t, m)
	assert.InDelta(t, 96.0, meshArea(m), 1e-9)

	for name, p := range map[string]*Vertex{
		"in hole":       NewVertex(5, 5),
		"outside":       NewVertex(20, 20),
		"on subsegment": NewVertex(5, 0),
		"duplicate":     NewVertex(2, 3),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotContains(t, []InsertResult{Successful, Encroaching}, m.InsertPoint(p))
			assert.Equal(t, -1, p.ID)
			assert.Len(t, m.Vertices(), before+1)
			// Rejected vertices don't take a slot.
			assert.Len(t, m.vertices, before+1)
			assert.Zero(t, m.badsubsegs.Len())
		})
	}
	AssertValidMesh(t, m)
}

func TestInsertPoint_AroundHole(t *testing.T) {
	var grid []*Vertex
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			x, y := 0.01+0.5*float64(i), 0.013+0.5*float64(j)
			if x > 4 && x < 6 && y > 4 && y < 6 {
				continue
			}
			grid = append(grid, NewVertex(x, y))
		}
	}

	insertAll := func(t *testing.T, m *Mesh) {
		for _, p := range grid {
			v := NewVertex(p.X, p.Y)
			result := m.InsertPoint(v)
			assert.Contains(t, []InsertResult{Successful, Encroaching}, result, "(%g, %g)", v.X, v.Y)
			assert.NotEqual(t, -1, v.ID)
		}
		AssertValidMesh(t, m)
		AssertDelaunay(t, m)
		assert.InDelta(t, 96.0, meshArea(m), 1e-9)
	}

	t.Run("fresh mesh", func(t *testing.T) {
		m := meshPolygon(squareWithHolePolygon(), nil, nil)
		before := len(m.Vertices())
		insertAll(t, m)
		assert.Len(t, m.Vertices(), before+len(grid))
	})

	// Leaves the last located triangle next to the hole.
	t.Run("after an insertion", func(t *testing.T) {
		m := meshPolygon(squareWithHolePolygon(), nil, nil)
		require.Contains(t, []InsertResult{Successful, Encroaching}, m.InsertPoint(NewVertex(3.9, 5.01)))
		before := len(m.Vertices())
		insertAll(t, m)
		assert.Len(t, m.Vertices(), before+len(grid))
	})
}

func TestInsertPoint_Encroaching(t *testing.T) {
	poly := &Polygon{}
	poly.AddContour(makeSquare(0, 0, 10, 1), 1, false, false)
	m := meshPolygon(poly, nil, nil)

	v := NewVertex(5, 0.1)
	assert.Equal(t, Encroaching, m.InsertPoint(v))
	// The vertex stays, and nothing is left queued for splitting.
	assert.Equal(t, 4, v.ID)
	assert.Len(t, m.Vertices(), 5)
	assert.Zero(t, m.badsubsegs.Len())
	assert.Len(t, m.Segments(), 4)
	AssertValidMesh(t, m)
	AssertSegmentsPreserved(t, m, poly)
	assert.InDelta(t, 10.0, meshArea(m), 1e-9)

}

func TestInsertVertex_OnHullEdge(t *testing.T) {
	m := Triangulate(unitSquare(), NewBehavior())

	v := NewVertex(0.5, 0)
	m.addVertex(v)
	var searchtri Otri
	require.Equal(t, Successful, m.InsertVertex(v, &searchtri, nil, false, false))

	AssertValidMesh(t, m)
	assert.Len(t, m.Triangles(), 3)
	assert.Equal(t, 5, m.HullSize())
}

func TestInsertVertex_OnSubsegment(t *testing.T) {
	poly := &Polygon{}
	poly.AddContour(unitSquare(), 1, false, false)
	m := Triangulate(poly.Points, NewBehavior())
	m.ApplyConstraints(poly, nil, nil)

	var searchtri Otri
	assert.Equal(t, Violating, m.InsertVertex(NewVertex(0.5, 0), &searchtri, nil, false, false))
	assert.False(t, searchtri.SegPivot().IsEmpty())
	assert.Len(t, m.Triangles(), 2)
}

func TestUndoVertex(t *testing.T) {
	for _, p := range [][2]float64{{0.25, 0.5}, {0.5, 0.5}, {0.9, 0.1}} {
		m := Triangulate(unitSquare(), NewBehavior())
		m.checkquality = true

		v := NewVertex(p[0], p[1])
		m.addVertex(v)
		var searchtri Otri
		require.Equal(t, Successful, m.InsertVertex(v, &searchtri, nil, false, false))
		m.UndoVertex()

		AssertValidMesh(t, m)
		assert.Len(t, m.Triangles(), 2, "after undoing %v", v)
		assert.InDelta(t, 1.0, meshArea(m), 1e-12)
		for _, tri := range m.Triangles() {
			for i := 0; i < 3; i++ {
				assert.NotSame(t, v, tri.Vertex(i))
			}
		}
	}
}

func TestDeleteVertex(t *testing.T) {
	m := Triangulate(unitSquare(), NewBehavior())
	v := NewVertex(0.25, 0.5)
	m.addVertex(v)
	var searchtri Otri
	require.Equal(t, Successful, m.InsertVertex(v, &searchtri, nil, false, false))
	require.Len(t, m.Triangles(), 4)

	m.DeleteVertex(originOf(t, m, v))

	AssertValidMesh(t, m)
	assert.Len(t, m.Triangles(), 2)
	assert.InDelta(t, 1.0, meshArea(m), 1e-12)
	assert.Equal(t, DeadVertex, v.Type)
	assert.NotContains(t, m.Vertices(), v)
}

func TestDeleteVertex_Hexagon(t *testing.T) {
	// A center vertex with six neighbors, so the hole needs a real
	// retriangulation.
	points := []*Vertex{
		NewVertex(2, 0),
		NewVertex(1, 1.7),
		NewVertex(-1, 1.7),
		NewVertex(-2, 0),
		NewVertex(-1, -1.7),
		NewVertex(1, -1.7),
	}
	center := NewVertex(0, 0)
	m := Triangulate(append(points, center), NewBehavior())
	require.Len(t, m.Triangles(), 6)
	area := meshArea(m)

	m.DeleteVertex(originOf(t, m, center))

	AssertValidMesh(t, m)
	assert.Len(t, m.Triangles(), 4)
	assert.InDelta(t, area, meshArea(m), 1e-12)
}

func TestFlip(t *testing.T) {
	m := Triangulate(unitSquare(), NewBehavior())
	// Find the diagonal.
	var diagonal Otri
	for _, tri := range m.Triangles() {
		for orient := 0; orient < 3; orient++ {
			if o := (Otri{tri, orient}); !o.Sym().IsEmpty() {
				diagonal = o
			}
		}
	}
	require.False(t, diagonal.IsEmpty())
	before := [2]*Vertex{diagonal.Org(), diagonal.Dest()}

	m.Flip(diagonal)
	AssertValidMesh(t, m)
	for _, e := range m.Edges() {
		if !e.Boundary {
			assert.NotContains(t, before, e.P0)
			assert.NotContains(t, before, e.P1)
		}
	}

	m.Unflip(diagonal)
	AssertValidMesh(t, m)
	for _, e := range m.Edges() {
		if !e.Boundary {
			assert.Contains(t, before, e.P0)
			assert.Contains(t, before, e.P1)
		}
	}
}
