package internal

// A triangle given by indices into a list of points.
type Element struct {
	P0, P1, P2 int
	Region     int
	// Area constraint, used when the polygon has variable area regions.
	Area float64
}

// Build a mesh from explicit triangles over the points of a polygon. Each
// triangle must be counterclockwise, and the triangles must form a manifold.
// Segments of the polygon must be edges of the triangulation; they become
// subsegments, and every boundary edge gets a subsegment too.
func ToMesh(poly *Polygon, elements []Element, behavior Behavior) *Mesh {
	m := NewMesh(behavior)
	m.behavior.Poly = len(poly.Segments) > 0
	m.invertices = len(poly.Points)
	if len(poly.Points) > 0 {
		m.nextras = len(poly.Points[0].Attributes)
	}
	for _, v := range poly.Points {
		if v == nil {
			fatalf("nil point in input")
		}
		v.Type = InputVertex
		v.alias = nil
		v.tri = Otri{}
		m.addVertex(v)
	}
	m.regions = append(m.regions, poly.Regions...)
	if m.behavior.Poly {
		m.holes = append(m.holes, poly.Holes...)
	}

	type key struct{ org, dest *Vertex }
	edges := make(map[key]Otri)

	for i, element := range elements {
		corners := [3]int{element.P0, element.P1, element.P2}
		for _, c := range corners {
			if c < 0 || c >= m.invertices {
				fatalf("triangle %d has an invalid vertex index %d", i, c)
			}
		}
		tri := m.makeTriangle()
		tri.tri.Region = element.Region
		tri.tri.Area = element.Area
		tri.SetOrg(poly.Points[corners[0]])
		tri.SetDest(poly.Points[corners[1]])
		tri.SetApex(poly.Points[corners[2]])
		if m.orient(tri.Org(), tri.Dest(), tri.Apex()) <= 0 {
			fatalf("triangle %d (%d, %d, %d) is not counterclockwise", i, corners[0], corners[1], corners[2])
		}

		for orient := 0; orient < 3; orient++ {
			edge := Otri{tri.tri, orient}
			k := key{edge.Org(), edge.Dest()}
			if _, ok := edges[k]; ok {
				fatalf("edge %v-%v is shared by two triangles in the same direction", k.org, k.dest)
			}
			edges[k] = edge
			if other, ok := edges[key{k.dest, k.org}]; ok {
				edge.Bond(other)
			}
			edge.Org().tri = edge
		}
	}

	if m.behavior.Poly {
		m.insegments = len(poly.Segments)
		for i, seg := range poly.Segments {
			if seg.P0 < 0 || seg.P0 >= m.invertices || seg.P1 < 0 || seg.P1 >= m.invertices {
				fatalf("segment %d has an invalid vertex index", i)
			}
			org := poly.Points[seg.P0]
			dest := poly.Points[seg.P1]
			edge, ok := edges[key{org, dest}]
			if !ok {
				edge, ok = edges[key{dest, org}]
			}
			if !ok {
				fatalf("segment %d (%d, %d) is not an edge of the triangulation", i, seg.P0, seg.P1)
			}
			m.InsertSubseg(edge, seg.Label)
		}
	}

	m.hullsize = 0
	for _, t := range m.triangles {
		for orient := 0; orient < 3; orient++ {
			edge := Otri{t, orient}
			if edge.Sym().IsEmpty() {
				// Sets the boundary markers of an existing subsegment.
				m.InsertSubseg(edge, 1)
				m.hullsize++
				m.dummytri.neighbors[0] = edge
			}
		}
	}
	m.checksegments = true
	m.updateEdgeCount()
	return m
}
