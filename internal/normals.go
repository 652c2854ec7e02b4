package internal

import (
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
)

// Outward unit normals at the boundary vertices of the mesh, for renderers.
// Each is the normalized sum of the unit normals of the two boundary edges
// meeting at the vertex. Vertices where those cancel out (a boundary that
// doubles back) get the normal of the first edge. Interior vertices are absent.
func VertexNormals(m *Mesh) map[*Vertex]r2.Point {
	sums := make(map[*Vertex][]float64)
	first := make(map[*Vertex]r2.Point)
	accumulate := func(v *Vertex, n r2.Point) {
		sum, ok := sums[v]
		if !ok {
			sum = make([]float64, 2)
			sums[v] = sum
			first[v] = n
		}
		floats.Add(sum, []float64{n.X, n.Y})
	}

	for _, t := range m.Triangles() {
		for orient := 0; orient < 3; orient++ {
			tri := Otri{t, orient}
			if !tri.Sym().IsEmpty() {
				continue
			}
			// The mesh is on the left of org-dest, so the right normal points out.
			n := outwardNormal(tri.Org(), tri.Dest())
			if n.Norm() == 0 {
				continue
			}
			n = n.Normalize()
			accumulate(tri.Org(), n)
			accumulate(tri.Dest(), n)
		}
	}

	normals := make(map[*Vertex]r2.Point, len(sums))
	for v, sum := range sums {
		length := floats.Norm(sum, 2)
		if length < Tolerance {
			normals[v] = first[v]
			continue
		}
		floats.Scale(1/length, sum)
		normals[v] = r2.Point{X: sum[0], Y: sum[1]}
	}
	return normals
}
