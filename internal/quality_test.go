package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuality_MinimumAngle(t *testing.T) {
	poly := squareWithHolePolygon()
	m := meshPolygon(poly, nil, &QualityOptions{MinimumAngle: 25})

	AssertValidMesh(t, m)
	AssertDelaunay(t, m)
	AssertSegmentsPreserved(t, m, poly)
	assert.InDelta(t, 96.0, meshArea(m), 1e-9)
	assert.GreaterOrEqual(t, minAngle(m), 25.0-1e-9)

	stats := m.Statistics()
	assert.Positive(t, stats.SteinerPoints)
	assert.Zero(t, stats.UnresolvedBadTriangles)
	assert.False(t, stats.SteinerBudgetExhausted)
	assert.Equal(t, 8+stats.SteinerPoints, len(m.Vertices()))
}

func TestQuality_MaximumArea(t *testing.T) {
	m := Triangulate(unitSquare(), NewBehavior())
	m.Refine(&QualityOptions{MaximumArea: 0.01})

	AssertValidMesh(t, m)
	AssertDelaunay(t, m)
	assert.InDelta(t, 1.0, meshArea(m), 1e-12)
	assert.GreaterOrEqual(t, len(m.Triangles()), 100)
	for _, tri := range m.Triangles() {
		assert.LessOrEqual(t, tri.SignedArea(), 0.01+1e-12)
	}
	// Refine covers the hull with subsegments first.
	for _, e := range m.Edges() {
		assert.Equal(t, e.Boundary, e.Constrained)
	}
}

func TestQuality_UserTest(t *testing.T) {
	calls := 0
	m := Triangulate(unitSquare(), NewBehavior())
	m.Refine(&QualityOptions{UserTest: func(tri *Triangle, area float64) bool {
		calls++
		return area > 0.05
	}})

	AssertValidMesh(t, m)
	assert.Positive(t, calls)
	for _, tri := range m.Triangles() {
		assert.LessOrEqual(t, tri.SignedArea(), 0.05+1e-12)
	}
}

func TestQuality_SteinerBudget(t *testing.T) {
	m := Triangulate(unitSquare(), NewBehavior())
	m.Refine(&QualityOptions{MaximumArea: 0.0001, SteinerPoints: 5})

	AssertValidMesh(t, m)
	stats := m.Statistics()
	assert.True(t, stats.SteinerBudgetExhausted)
	assert.Positive(t, stats.UnresolvedBadTriangles)
	assert.LessOrEqual(t, stats.SteinerPoints, 5)
	assert.Equal(t, 4+stats.SteinerPoints, len(m.Vertices()))

	// A later refinement gets a fresh budget.
	m.Refine(&QualityOptions{MaximumArea: 0.1})
	assert.False(t, m.Statistics().SteinerBudgetExhausted)
	for _, tri := range m.Triangles() {
		assert.LessOrEqual(t, tri.SignedArea(), 0.1+1e-12)
	}
}

func TestQuality_ConformingDelaunay(t *testing.T) {
	poly := &Polygon{}
	poly.AddContour([]*Vertex{
		NewVertex(0, 0),
		NewVertex(10, 0),
		NewVertex(10, 1),
		NewVertex(0, 1),
	}, 1, false, false)
	// A long interior segment nearly parallel to the boundary.
	poly.Points = append(poly.Points, NewVertex(1, 0.2), NewVertex(9, 0.3))
	poly.Segments = append(poly.Segments, Edge{P0: 4, P1: 5, Label: 2})

	m := meshPolygon(poly, &ConstraintOptions{ConformingDelaunay: true}, nil)
	AssertValidMesh(t, m)
	AssertSegmentsPreserved(t, m, poly)
	assert.InDelta(t, 10.0, meshArea(m), 1e-9)

	// Delaunay across subsegments too.
	for _, tri := range m.Triangles() {
		for orient := 0; orient < 3; orient++ {
			edge := Otri{tri, orient}
			neighbor := edge.Sym()
			if neighbor.IsEmpty() {
				continue
			}
			assert.LessOrEqual(t,
				InCircle(edge.Org().Point, edge.Dest().Point, edge.Apex().Point, neighbor.Apex().Point), 1e-9,
				"edge %v is not Delaunay", edge)
		}
	}
}

func TestQuality_SplitNever(t *testing.T) {
	poly := &Polygon{}
	poly.AddContour(makeSquare(0, 0, 4, 1), 1, false, false)
	m := meshPolygon(poly, &ConstraintOptions{SegmentSplitting: SplitNever}, &QualityOptions{MinimumAngle: 20})

	AssertValidMesh(t, m)
	// Subsegments stay whole.
	assert.Len(t, m.Segments(), 4)
	for _, v := range m.Vertices() {
		assert.NotEqual(t, SegmentVertex, v.Type)
	}

	t.Run("leftovers are counted", func(t *testing.T) {
		poly := ContourList{LoadFixture("comb")}.Polygon(1)
		m := meshPolygon(poly, &ConstraintOptions{SegmentSplitting: SplitNever}, &QualityOptions{MinimumAngle: 30})
		AssertValidMesh(t, m)
		AssertSegmentsPreserved(t, m, poly)

		bad := 0
		for _, tri := range m.Triangles() {
			for _, angle := range TriangleAngles(tri) {
				if angle < 30-1e-9 {
					bad++
					break
				}
			}
		}
		require.Positive(t, bad)
		stats := m.Statistics()
		assert.Positive(t, stats.UnresolvedBadTriangles)
		assert.False(t, stats.SteinerBudgetExhausted)
	})
}

func TestQuality_InvalidOptions(t *testing.T) {
	for _, quality := range []*QualityOptions{
		{MinimumAngle: 61},
		{MinimumAngle: -1},
		{MaximumAngle: 200},
		{MaximumArea: -1},
	} {
		err := func() (err error) {
			defer func() { err = HandlePanicRecover(recover()) }()
			meshPolygon(squareWithHolePolygon(), nil, quality)
			return nil
		}()
		require.Error(t, err, "%+v", quality)
		assert.True(t, IsConfigurationError(err))
	}
}

func TestMeasureQuality(t *testing.T) {
	m := meshPolygon(squareWithHolePolygon(), nil, &QualityOptions{MinimumAngle: 20})
	q := MeasureQuality(m)

	assert.InDelta(t, 96.0, q.TotalArea, 1e-9)
	assert.GreaterOrEqual(t, q.MinAngle, 20.0-1e-9)
	assert.LessOrEqual(t, q.MaxAngle, 180.0)
	assert.GreaterOrEqual(t, q.MeanAngle, q.MinAngle)
	assert.LessOrEqual(t, q.MinArea, q.MaxArea)
	assert.GreaterOrEqual(t, q.MaxAspectRatio, 1.0)

	var total float64
	for _, count := range q.MinAngleHistogram {
		total += count
	}
	assert.Equal(t, float64(len(m.Triangles())), total)
}

func TestQualityMeasure_Empty(t *testing.T) {
	assert.Equal(t, QualityMeasure{}, MeasureQuality(NewMesh(NewBehavior())))
}
