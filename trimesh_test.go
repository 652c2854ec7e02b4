package trimesh

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) Contour {
	return Contour{NewVertex(x0, y0), NewVertex(x1, y0), NewVertex(x1, y1), NewVertex(x0, y1)}
}

func area(m *Mesh) float64 {
	var sum float64
	for _, t := range m.Triangles() {
		sum += t.SignedArea()
	}
	return sum
}

// Smoke tests. The internals are already tested.
func TestTriangulate(t *testing.T) {
	points := []*Vertex{
		NewVertex(1, -1),
		NewVertex(1, 1),
		NewVertex(-1, 1),
		NewVertex(-1, -1),
	}

	m, err := Triangulate(points)
	require.NoError(t, err)
	assert.Len(t, m.Triangles(), 2)
	assert.InDelta(t, 4.0, area(m), 1e-12)
}

func TestTriangulate_Errors(t *testing.T) {
	m, err := Triangulate([]*Vertex{NewVertex(0, 0), NewVertex(1, 1)})
	assert.Nil(t, m)
	assert.True(t, IsConfigurationError(err))

	m, err = Triangulate([]*Vertex{NewVertex(0, 0), NewVertex(1, 1), NewVertex(2, 2)})
	assert.Nil(t, m)
	assert.True(t, IsConfigurationError(err))
	assert.False(t, IsTopologyError(err))
}

func TestMeshContours(t *testing.T) {
	list := ContourList{square(0, 0, 10, 10), square(4, 4, 6, 6)}
	m, err := MeshContours(list, 1, nil, &QualityOptions{MinimumAngle: 25})
	require.NoError(t, err)
	assert.InDelta(t, 96.0, area(m), 1e-9)
	assert.GreaterOrEqual(t, MeasureQuality(m).MinAngle, 25.0-1e-9)

	tree, err := NewQuadTree(m, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, tree.Query(5, 5))
	assert.NotNil(t, tree.Query(1, 1))

	for _, bounded := range []bool{false, true} {
		d, err := ToVoronoi(m, bounded)
		require.NoError(t, err)
		assert.NoError(t, d.Validate())
	}

	require.NoError(t, Refine(m, &QualityOptions{MaximumArea: 0.5}))
	assert.LessOrEqual(t, MeasureQuality(m).MaxArea, 0.5+1e-12)
	assert.Len(t, VertexNormals(m), m.HullSize())
}

func TestMeshPolygon_Clipped(t *testing.T) {
	poly, err := ClipPolygons([]Contour{square(0, 0, 10, 10)}, []Contour{square(4, 4, 6, 6)}, ClipDifference, 1)
	require.NoError(t, err)
	m, err := MeshPolygon(poly, &ConstraintOptions{ConformingDelaunay: true}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 96.0, area(m), 1e-6)
}

func TestStructuredMesh(t *testing.T) {
	m, err := StructuredMesh(r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 1}), 4, 2)
	require.NoError(t, err)
	assert.Len(t, m.Triangles(), 16)

	m, err = StructuredMesh(r2.EmptyRect(), 4, 2)
	assert.Nil(t, m)
	assert.True(t, IsConfigurationError(err))
}

func TestToMesh(t *testing.T) {
	poly := &Polygon{Points: square(0, 0, 1, 1)}
	m, err := ToMesh(poly, []Element{{P0: 0, P1: 1, P2: 2}, {P0: 0, P1: 2, P2: 3}})
	require.NoError(t, err)
	assert.Equal(t, 4, m.HullSize())

	// Clockwise
	m, err = ToMesh(&Polygon{Points: square(0, 0, 1, 1)}, []Element{{P0: 0, P1: 2, P2: 1}})
	assert.Nil(t, m)
	assert.Error(t, err)
}
