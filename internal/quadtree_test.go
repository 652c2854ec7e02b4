package internal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadTree_FindsCentroids(t *testing.T) {
	m := Triangulate(randomPoints(500, 3), NewBehavior())
	tree := NewQuadTree(m, 0, 0)
	require.Equal(t, DefaultQuadTreeMaxDepth, tree.MaxDepth)
	require.Equal(t, DefaultQuadTreeSizeBound, tree.SizeBound)
	require.False(t, tree.Root.IsLeaf())

	for _, tri := range m.Triangles() {
		x, y := tri.Centroid()
		assert.Same(t, tri, tree.Query(x, y))
	}
}

func TestQuadTree_RandomQueries(t *testing.T) {
	m := meshPolygon(squareWithHolePolygon(), nil, &QualityOptions{MinimumAngle: 20, MaximumArea: 0.5})
	tree := NewQuadTree(m, 6, 4)
	random := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		x := random.Float64()*12 - 1
		y := random.Float64()*12 - 1
		found := tree.Query(x, y)
		inside := x >= 0 && x <= 10 && y >= 0 && y <= 10 && !(x > 4 && x < 6 && y > 4 && y < 6)
		if !inside {
			assert.Nil(t, found, "(%g, %g) is outside the mesh", x, y)
			continue
		}
		if assert.NotNil(t, found, "(%g, %g) is inside the mesh", x, y) {
			assert.True(t, found.Contains(x, y))
		}
	}
}

func TestQuadTree_Structure(t *testing.T) {
	m := Triangulate(randomPoints(300, 5), NewBehavior())
	tree := NewQuadTree(m, 5, 8)

	leaves := 0
	for node := range IterateQuadTree(tree.Root) {
		assert.LessOrEqual(t, node.Depth, 5)
		if node.IsLeaf() {
			leaves++
			assert.Nil(t, node.ChildNodes())
			if node.Depth < 5 {
				assert.LessOrEqual(t, len(node.Triangles), 8)
			}
			continue
		}
		children := node.ChildNodes()
		require.Len(t, children, 4)
		for _, child := range children {
			assert.Equal(t, node.Depth+1, child.Depth)
			assert.True(t, node.Bounds.ContainsPoint(child.Pivot))
		}
	}
	assert.Greater(t, leaves, 4)
	assert.Len(t, tree.Triangles(), len(m.Triangles()))
}

func TestPointInTriangle(t *testing.T) {
	a := NewVertex(0, 0).Point
	b := NewVertex(2, 0).Point
	c := NewVertex(0, 2).Point

	assert.True(t, pointInTriangle(NewVertex(0.5, 0.5).Point, a, b, c))
	// Either winding
	assert.True(t, pointInTriangle(NewVertex(0.5, 0.5).Point, a, c, b))
	// Boundary
	assert.True(t, pointInTriangle(NewVertex(1, 1).Point, a, b, c))
	assert.True(t, pointInTriangle(a, a, b, c))
	assert.False(t, pointInTriangle(NewVertex(1.5, 1.5).Point, a, b, c))
	assert.False(t, pointInTriangle(NewVertex(-0.1, 1).Point, a, b, c))
}
