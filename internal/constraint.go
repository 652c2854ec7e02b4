package internal

// Insert the segments of a polygon into the mesh, and cover the convex hull
// with subsegments when there are no segments or the mesh is to stay convex.
// Segment endpoints are indices into the mesh's input vertices.
func (m *Mesh) FormSkeleton(poly *Polygon) {
	m.insegments = 0

	if m.behavior.Poly {
		if len(m.triangles)-m.deadTriangles == 0 {
			return
		}
		if len(poly.Segments) > 0 {
			m.MakeVertexMap()
		}

		for i, seg := range poly.Segments {
			m.insegments++
			if seg.P0 < 0 || seg.P0 >= m.invertices {
				fatalf("segment %d has an invalid first endpoint %d", i, seg.P0)
			}
			if seg.P1 < 0 || seg.P1 >= m.invertices {
				fatalf("segment %d has an invalid second endpoint %d", i, seg.P1)
			}
			endpoint1 := m.inputVertex(seg.P0)
			endpoint2 := m.inputVertex(seg.P1)
			if endpoint1.Coincides(endpoint2) {
				fatalf("segment %d has coincident endpoints %d and %d", i, seg.P0, seg.P1)
			}
			m.InsertSegment(endpoint1, endpoint2, seg.Label)
		}
	}

	if m.behavior.Convex || !m.behavior.Poly {
		m.MarkHull()
	}
}

// Insert a segment between two vertices of the mesh.
func (m *Mesh) InsertSegment(endpoint1, endpoint2 *Vertex, label int) {
	searchtri1 := m.vertexTriangle(endpoint1)
	m.updateRecent(searchtri1)
	if m.ScoutSegment(&searchtri1, endpoint2, label) {
		return
	}
	// The first endpoint moves if the scout ran into a vertex on the segment.
	endpoint1 = searchtri1.Org()

	searchtri2 := m.vertexTriangle(endpoint2)
	m.updateRecent(searchtri2)
	if m.ScoutSegment(&searchtri2, endpoint1, label) {
		return
	}
	endpoint2 = searchtri2.Org()

	m.ConstrainedEdge(searchtri1, endpoint2, label)
}

// A triangle whose origin is v, from the vertex map if it is current, or by
// point location otherwise.
func (m *Mesh) vertexTriangle(v *Vertex) Otri {
	searchtri := v.tri
	if !searchtri.IsEmpty() && !searchtri.tri.dead && searchtri.Org() == v {
		return searchtri
	}
	searchtri = m.hullEdge()
	if m.Locate(v, &searchtri) != OnVertex {
		topologyf("unable to locate the segment endpoint %v in the triangulation", v)
	}
	return searchtri
}

type FindDirectionResult int

const (
	Within FindDirectionResult = iota
	LeftCollinear
	RightCollinear
)

// Rotate searchtri about its origin until it faces the point, that is, until
// the segment from the origin to the point passes through it. The result tells
// whether the apex or the destination lies on that segment's line.
func (m *Mesh) FindDirection(searchtri *Otri, searchpoint *Vertex) FindDirectionResult {
	startvertex := searchtri.Org()
	rightvertex := searchtri.Dest()
	leftvertex := searchtri.Apex()

	leftccw := m.orient(searchpoint, startvertex, leftvertex)
	leftflag := leftccw > 0
	rightccw := m.orient(startvertex, searchpoint, rightvertex)
	rightflag := rightccw > 0
	if leftflag && rightflag {
		// searchtri faces directly away. Turn toward the side that has a
		// triangle.
		if searchtri.Onext().IsEmpty() {
			leftflag = false
		} else {
			rightflag = false
		}
	}

	for turns := 0; leftflag; turns++ {
		*searchtri = searchtri.Onext()
		if searchtri.IsEmpty() || turns > MaxRecursionDepth {
			topologyf("unable to find a triangle on the path from %v to %v", startvertex, searchpoint)
		}
		leftvertex = searchtri.Apex()
		rightccw = leftccw
		leftccw = m.orient(searchpoint, startvertex, leftvertex)
		leftflag = leftccw > 0
	}
	for turns := 0; rightflag; turns++ {
		*searchtri = searchtri.Oprev()
		if searchtri.IsEmpty() || turns > MaxRecursionDepth {
			topologyf("unable to find a triangle on the path from %v to %v", startvertex, searchpoint)
		}
		rightvertex = searchtri.Dest()
		leftccw = rightccw
		rightccw = m.orient(startvertex, searchpoint, rightvertex)
		rightflag = rightccw > 0
	}

	if leftccw == 0 {
		return LeftCollinear
	}
	if rightccw == 0 {
		return RightCollinear
	}
	return Within
}

// Insert a vertex where the segment from the apex of splittri to endpoint2
// crosses splitsubseg, which must lie on the edge of splittri. Both pieces of
// the crossed segment get the new vertex as an endpoint.
//
// On return, splittri has the new vertex as its origin and the apex it had
// before as its destination.
func (m *Mesh) SegmentIntersection(splittri *Otri, splitsubseg Osub, endpoint2 *Vertex) {
	endpoint1 := splittri.Apex()
	torg := splittri.Org()
	tdest := splittri.Dest()

	tx := tdest.X - torg.X
	ty := tdest.Y - torg.Y
	ex := endpoint2.X - endpoint1.X
	ey := endpoint2.Y - endpoint1.Y
	etx := torg.X - endpoint2.X
	ety := torg.Y - endpoint2.Y
	denom := ty*ex - tx*ey
	if denom == 0 {
		fatalf("segments %v-%v and %v-%v are parallel but were found to cross", torg, tdest, endpoint1, endpoint2)
	}
	split := (ey*etx - ex*ety) / denom

	newvertex := NewVertex(torg.X+split*(tdest.X-torg.X), torg.Y+split*(tdest.Y-torg.Y))
	newvertex.Label = splitsubseg.seg.Label
	newvertex.Type = SegmentVertex
	newvertex.Attributes = interpolateAttributes(torg, tdest, split)
	m.addVertex(newvertex)

	if success := m.InsertVertex(newvertex, splittri, &splitsubseg, false, false); success != Successful {
		topologyf("failed to split the subsegment %v at a crossing: %v", splitsubseg, success)
	}
	newvertex.tri = *splittri
	m.stats.SteinerPoints++
	if m.steinerleft > 0 {
		m.steinerleft--
	}

	// Cut the crossed segment in two at the new vertex.
	splitsubseg = splitsubseg.Sym()
	opposubseg := splitsubseg.Pivot()
	m.subsegDissolve(splitsubseg)
	m.subsegDissolve(opposubseg)
	for s := splitsubseg; !s.IsEmpty(); s = s.Next() {
		s.SetSegOrg(newvertex)
	}
	for s := opposubseg; !s.IsEmpty(); s = s.Next() {
		s.SetSegOrg(newvertex)
	}

	// Flips may have moved the edge from endpoint1 to the new vertex.
	m.FindDirection(splittri, endpoint1)
	rightvertex := splittri.Dest()
	leftvertex := splittri.Apex()
	if leftvertex.Coincides(endpoint1) {
		*splittri = splittri.Onext()
	} else if !rightvertex.Coincides(endpoint1) {
		topologyf("topological inconsistency after splitting the segment %v-%v", torg, tdest)
	}
}

// Scout the first triangle on the path from the origin of searchtri toward
// endpoint2. Subsegments are inserted where the path runs along mesh edges,
// and crossing segments are split. Returns true if the whole segment was
// inserted; otherwise searchtri is left at the point where ConstrainedEdge
// must take over.
func (m *Mesh) ScoutSegment(searchtri *Otri, endpoint2 *Vertex, label int) bool {
	defer m.enter("ScoutSegment")()

	collinear := m.FindDirection(searchtri, endpoint2)
	rightvertex := searchtri.Dest()
	leftvertex := searchtri.Apex()

	switch {
	case leftvertex.Coincides(endpoint2) || rightvertex.Coincides(endpoint2):
		// The segment is already an edge of the mesh.
		if leftvertex.Coincides(endpoint2) {
			*searchtri = searchtri.Lprev()
		}
		m.InsertSubseg(*searchtri, label)
		return true

	case collinear == LeftCollinear:
		// Hit a vertex between the endpoints. Continue from there.
		*searchtri = searchtri.Lprev()
		m.InsertSubseg(*searchtri, label)
		return m.ScoutSegment(searchtri, endpoint2, label)

	case collinear == RightCollinear:
		m.InsertSubseg(*searchtri, label)
		*searchtri = searchtri.Lnext()
		return m.ScoutSegment(searchtri, endpoint2, label)
	}

	crosstri := searchtri.Lnext()
	crosssubseg := crosstri.SegPivot()
	if crosssubseg.IsEmpty() {
		return false
	}
	m.SegmentIntersection(&crosstri, crosssubseg, endpoint2)
	*searchtri = crosstri
	m.InsertSubseg(*searchtri, label)
	return m.ScoutSegment(searchtri, endpoint2, label)
}

// Restore the Delaunay property at the edge opposite the origin of fixuptri,
// as if that origin had just been inserted, working only on one side of a
// segment being inserted. Inverted triangles stand for reflex vertices that
// are waiting for a visible vertex; they are flipped away once one appears.
//
// fixuptri is kept pointing at a triangle with the same origin as flips
// change its triangle.
func (m *Mesh) DelaunayFixup(fixuptri *Otri, leftside bool) {
	defer m.enter("DelaunayFixup")()

	neartri := fixuptri.Lnext()
	fartri := neartri.Sym()
	if fartri.IsEmpty() || !neartri.SegPivot().IsEmpty() {
		return
	}

	nearvertex := neartri.Apex()
	leftvertex := neartri.Org()
	rightvertex := neartri.Dest()
	farvertex := fartri.Apex()

	// Is the previous polygon vertex reflex too? Then nothing can be done
	// until a convex stretch turns up.
	if leftside {
		if m.orient(nearvertex, leftvertex, farvertex) <= 0 {
			return
		}
	} else {
		if m.orient(farvertex, rightvertex, nearvertex) <= 0 {
			return
		}
	}

	if m.orient(rightvertex, leftvertex, farvertex) > 0 {
		// Neither triangle is inverted, so this is an ordinary Delaunay test.
		if m.incircle(leftvertex, farvertex, rightvertex, nearvertex) <= 0 {
			return
		}
	}

	m.Flip(neartri)
	// Restore the origin of fixuptri after the flip.
	*fixuptri = fixuptri.Lprev()
	m.DelaunayFixup(fixuptri, leftside)
	m.DelaunayFixup(&fartri, leftside)
}

// Force the segment from the origin of starttri to endpoint2 into the mesh.
//
// Walking from one endpoint to the other, every crossed edge is flipped,
// making a fan of edges around the first endpoint that ends with the segment
// itself. Each newly exposed vertex is enforced with DelaunayFixup on its side
// of the segment, so both polygons on either side end up Delaunay.
func (m *Mesh) ConstrainedEdge(starttri Otri, endpoint2 *Vertex, label int) {
	defer m.enter("ConstrainedEdge")()

	endpoint1 := starttri.Org()
	fixuptri := starttri.Lnext()
	m.Flip(fixuptri)

	// Was a vertex or segment found between the endpoints?
	collision := false
	for done := false; !done; {
		farvertex := fixuptri.Org()
		if farvertex.Coincides(endpoint2) {
			fixuptri2 := fixuptri.Oprev()
			m.DelaunayFixup(&fixuptri, false)
			m.DelaunayFixup(&fixuptri2, true)
			done = true
			continue
		}

		area := m.orient(endpoint1, endpoint2, farvertex)
		if area == 0 {
			collision = true
			fixuptri2 := fixuptri.Oprev()
			m.DelaunayFixup(&fixuptri, false)
			m.DelaunayFixup(&fixuptri2, true)
			done = true
			continue
		}

		if area > 0 {
			// farvertex is to the left of the segment.
			fixuptri2 := fixuptri.Oprev()
			m.DelaunayFixup(&fixuptri2, true)
			fixuptri = fixuptri.Lprev()
		} else {
			m.DelaunayFixup(&fixuptri, false)
			fixuptri = fixuptri.Oprev()
		}

		if crosssubseg := fixuptri.SegPivot(); crosssubseg.IsEmpty() {
			// May create an inverted triangle on the left.
			m.Flip(fixuptri)
		} else {
			collision = true
			m.SegmentIntersection(&fixuptri, crosssubseg, endpoint2)
			done = true
		}
	}

	m.InsertSubseg(fixuptri, label)

	if collision {
		// Install the rest of the segment, from the vertex it ran into.
		if !m.ScoutSegment(&fixuptri, endpoint2, label) {
			m.ConstrainedEdge(fixuptri, endpoint2, label)
		}
	}
}

// Walk the convex hull counterclockwise, calling visit on each hull edge.
func (m *Mesh) walkHull(visit func(hulltri Otri)) {
	hulltri := m.hullEdge()
	if hulltri.IsEmpty() {
		return
	}
	starttri := hulltri
	limit := 3 * (len(m.triangles) + 1)
	for steps := 0; ; steps++ {
		if steps > limit {
			topologyf("the hull walk from %v never closed", starttri)
		}
		visit(hulltri)
		// The next hull edge is found by going clockwise around the next vertex.
		hulltri = hulltri.Lnext()
		for nexttri := hulltri.Oprev(); !nexttri.IsEmpty(); nexttri = hulltri.Oprev() {
			hulltri = nexttri
		}
		if hulltri.Equal(starttri) {
			return
		}
	}
}

// Cover the convex hull with subsegments.
func (m *Mesh) MarkHull() {
	m.walkHull(func(hulltri Otri) {
		m.InsertSubseg(hulltri, 1)
	})
}
