package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func meshPolygon(poly *Polygon, options *ConstraintOptions, quality *QualityOptions) *Mesh {
	m := Triangulate(poly.Points, NewBehavior())
	m.ApplyConstraints(poly, options, quality)
	return m
}

func meshContours(t *testing.T, list ContourList, quality *QualityOptions) *Mesh {
	poly := list.Polygon(1)
	m := meshPolygon(poly, nil, quality)
	AssertValidMesh(t, m)
	AssertSegmentsPreserved(t, m, poly)
	validateMeshBySampling(t, m, list)
	assert.InDelta(t, contourListArea(list), meshArea(m), 1e-9*contourListArea(list))
	return m
}

func TestTriangulate_Spiral(t *testing.T) {
	meshContours(t, ContourList{LoadFixture("spiral")}, nil)
}

func TestTriangulate_Comb(t *testing.T) {
	m := meshContours(t, ContourList{LoadFixture("comb")}, nil)
	AssertDelaunay(t, m)
}

func TestTriangulate_Arrow(t *testing.T) {
	meshContours(t, ContourList{LoadFixture("arrow")}, nil)
}

func TestTriangulate_Star(t *testing.T) {
	m := meshContours(t, SimpleStar(), nil)
	// No Steiner points without quality constraints.
	assert.Len(t, m.Vertices(), 10)
	assert.Len(t, m.Triangles(), 8)
}

func TestTriangulate_SquareWithHole(t *testing.T) {
	m := meshContours(t, SquareWithHole(), nil)
	assert.Len(t, m.Vertices(), 8)
	assert.Len(t, m.Triangles(), 8)
}

func TestTriangulate_StarOutline(t *testing.T) {
	meshContours(t, StarOutline(), nil)
}

func TestTriangulate_StarStripes(t *testing.T) {
	meshContours(t, StarStripes(), nil)
}

func TestTriangulate_MultiLayeredHoles(t *testing.T) {
	meshContours(t, MultiLayeredHoles(), nil)
}

func TestTriangulate_QualityFixtures(t *testing.T) {
	quality := &QualityOptions{MinimumAngle: 20}
	for name, list := range map[string]ContourList{
		"spiral":           {LoadFixture("spiral")},
		"comb":             {LoadFixture("comb")},
		"star outline":     StarOutline(),
		"multilayer holes": MultiLayeredHoles(),
		"square with hole": SquareWithHole(),
	} {
		t.Run(name, func(t *testing.T) {
			m := meshContours(t, list, quality)
			AssertDelaunay(t, m)
			assert.GreaterOrEqual(t, minAngle(m), 20.0-1e-6)
		})
	}
}
