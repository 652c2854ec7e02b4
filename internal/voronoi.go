package internal

import "github.com/golang/geo/r2"

// Build the Voronoi diagram of the mesh vertices as the dual of the
// triangulation: one vertex per triangle circumcenter, one face per mesh
// vertex, and one pair of half-edges per mesh edge. Each boundary edge of the
// mesh gives an unbounded edge, ending at an infinite vertex placed along the
// outward normal.
//
// Renumbers the mesh. Faces are indexed by vertex id, and the first Voronoi
// vertices by triangle id.
func NewVoronoi(m *Mesh) *DCEL {
	m.Renumber()
	m.MakeVertexMap()
	d := &DCEL{}

	triangles := m.Triangles()
	for _, t := range triangles {
		tri := Otri{t, 0}
		center, _, _ := Circumcenter(tri.Org().Point, tri.Dest().Point, tri.Apex().Point, 0)
		d.newVertex(center)
	}
	// Half-edges leaving each circumcenter.
	leaving := make([][]*HalfEdge, len(triangles))

	for _, v := range m.Vertices() {
		d.newFace(v)
	}

	for _, t := range triangles {
		vertex := d.Vertices[t.ID]
		for orient := 0; orient < 3; orient++ {
			tri := Otri{t, orient}
			neighbor := tri.Sym()
			if !neighbor.IsEmpty() && neighbor.tri.ID < t.ID {
				continue
			}
			org := tri.Org()
			dest := tri.Dest()
			face := d.Faces[org.ID]
			neighborFace := d.Faces[dest.ID]

			var edge, twin *HalfEdge
			if neighbor.IsEmpty() {
				end := d.newVertex(vertex.Point.Add(outwardNormal(org, dest)))
				end.Infinite = true
				// An unbounded face starts at an infinite vertex.
				edge = d.newHalfEdge(end, nil)
				edge.Face = face
				face.Edge = edge
				face.Bounded = false
				twin = d.newHalfEdge(vertex, neighborFace)
				leaving[t.ID] = append(leaving[t.ID], twin)
			} else {
				edge = d.newHalfEdge(d.Vertices[neighbor.tri.ID], face)
				twin = d.newHalfEdge(vertex, neighborFace)
				leaving[neighbor.tri.ID] = append(leaving[neighbor.tri.ID], edge)
				leaving[t.ID] = append(leaving[t.ID], twin)
			}
			edge.Twin = twin
			twin.Twin = edge
		}
	}

	// Each circumcenter has degree three at most, so finding the successor on
	// the same face is constant time.
	for _, e := range d.HalfEdges {
		dest := e.Twin.Origin
		if dest.Infinite {
			continue
		}
		for _, next := range leaving[dest.ID] {
			if next.Face == e.Face {
				e.Next = next
				break
			}
		}
	}
	return d
}

// Normal of the edge from org to dest, pointing to its right, with the
// length of the edge.
func outwardNormal(org, dest *Vertex) r2.Point {
	return r2.Point{X: dest.Y - org.Y, Y: org.X - dest.X}
}
