package internal

// Build the Delaunay triangulation of a point set by incremental insertion.
//
// The points become the mesh's input vertices, in order, and are modified in
// place (ids, and hull labels). A point that coincides with an earlier one is
// not inserted: it is marked undead and resolves to the earlier vertex.
func Triangulate(points []*Vertex, behavior Behavior) *Mesh {
	if len(points) < 3 {
		fatalf("input must have at least three points, got %d", len(points))
	}

	m := NewMesh(behavior)
	m.invertices = len(points)
	m.nextras = len(points[0].Attributes)
	for _, v := range points {
		if v == nil {
			fatalf("nil point in input")
		}
		v.Type = InputVertex
		v.alias = nil
		v.tri = Otri{}
		m.addVertex(v)
	}

	m.boundingTriangle()
	for _, v := range points {
		starttri := Otri{m.dummytri, 0}
		if m.InsertVertex(v, &starttri, nil, false, false) == Duplicate {
			m.warnf("a duplicate vertex appeared and was ignored: %v", v)
			v.Type = UndeadVertex
			v.alias = starttri.Org()
			m.undeads++
			m.stats.DuplicatePoints++
		}
	}
	m.removeBoundingTriangle()

	if m.hullsize == 0 {
		fatalf("input points are all collinear")
	}
	m.settle()
	return m
}

// Wrap the input in a triangle large enough that its corners act as points
// at infinity.
func (m *Mesh) boundingTriangle() {
	bounds := m.bounds
	width := bounds.X.Length()
	if h := bounds.Y.Length(); h > width {
		width = h
	}
	if width == 0 {
		width = 1
	}

	m.infvertex1 = &Vertex{ID: -1, hash: -1, Type: InputVertex}
	m.infvertex1.X = bounds.X.Lo - 50*width
	m.infvertex1.Y = bounds.Y.Lo - 40*width
	m.infvertex2 = &Vertex{ID: -1, hash: -1, Type: InputVertex}
	m.infvertex2.X = bounds.X.Hi + 50*width
	m.infvertex2.Y = bounds.Y.Lo - 40*width
	m.infvertex3 = &Vertex{ID: -1, hash: -1, Type: InputVertex}
	m.infvertex3.X = 0.5 * (bounds.X.Lo + bounds.X.Hi)
	m.infvertex3.Y = bounds.Y.Hi + 60*width

	inftri := m.makeTriangle()
	inftri.SetOrg(m.infvertex1)
	inftri.SetDest(m.infvertex2)
	inftri.SetApex(m.infvertex3)
	// The bounding triangle is where every search starts.
	m.dummytri.neighbors[0] = inftri
}

// Remove every triangle touching a corner of the bounding triangle. What
// remains is the triangulation of the convex hull of the input.
func (m *Mesh) removeBoundingTriangle() {
	var doomed []*Triangle
	for _, t := range m.triangles {
		if t == nil {
			continue
		}
		if m.isInfinite(t.vertices[0]) || m.isInfinite(t.vertices[1]) || m.isInfinite(t.vertices[2]) {
			t.infected = true
			doomed = append(doomed, t)
		}
	}

	hull := Otri{m.dummytri, 0}
	m.hullsize = 0
	for _, t := range doomed {
		for orient := 0; orient < 3; orient++ {
			neighbor := Otri{t, orient}.Sym()
			if neighbor.IsEmpty() || neighbor.tri.infected {
				continue
			}
			// neighbor now faces the outside of the mesh.
			m.dissolve(neighbor)
			m.hullsize++
			hull = neighbor
			if org := neighbor.Org(); org.Label == 0 {
				org.Label = 1
			}
		}
	}
	for _, t := range doomed {
		m.killTriangle(t)
	}
	m.dummytri.neighbors[0] = hull
	if hull.IsEmpty() {
		m.dummytri.neighbors[0] = Otri{m.dummytri, 0}
	}

	m.infvertex1 = nil
	m.infvertex2 = nil
	m.infvertex3 = nil
	m.recenttri = Otri{m.dummytri, 0}
}

// Check that every triangle has its corners in counterclockwise order.
func (m *Mesh) checkOrientation() {
	for _, t := range m.triangles {
		if t == nil {
			continue
		}
		if Orient2D(t.vertices[0].Point, t.vertices[1].Point, t.vertices[2].Point) <= 0 {
			topologyf("triangle %v is not counterclockwise", t)
		}
	}
}
