package internal

import "math"

// Check whether a subsegment is encroached: some vertex lies in its diametral
// circle (conforming Delaunay, or a point inserted outside refinement with no
// minimum angle set), or in its diametral lens, whose angle follows the
// minimum angle. Refinement with no minimum angle never finds encroachment. The result is 0 when it isn't encroached, otherwise 1, 2
// or 3 for encroachment from the left side, the right side, or both. When
// splitting is allowed, an encroached subsegment is queued, oriented so that
// its triangle holds the encroaching vertex.
func (m *Mesh) checkSeg4Encroach(testsubseg Osub) int {
	encroached := 0
	sides := 0

	eorg := testsubseg.Org()
	edest := testsubseg.Dest()

	encroaches := func(eapex *Vertex) bool {
		dotproduct := (eorg.X-eapex.X)*(edest.X-eapex.X) + (eorg.Y-eapex.Y)*(edest.Y-eapex.Y)
		if dotproduct >= 0 {
			return false
		}
		if m.behavior.ConformingDelaunay || (m.behavior.goodAngle == 1 && !m.refining) {
			return true
		}
		lens := 2*m.behavior.goodAngle - 1
		return dotproduct*dotproduct >= lens*lens*sqDist(eorg, eapex)*sqDist(edest, eapex)
	}

	if neighbortri := testsubseg.TriPivot(); !neighbortri.IsEmpty() {
		sides++
		if encroaches(neighbortri.Apex()) {
			encroached = 1
		}
	}
	testsym := testsubseg.Sym()
	if neighbortri := testsym.TriPivot(); !neighbortri.IsEmpty() {
		sides++
		if encroaches(neighbortri.Apex()) {
			encroached += 2
		}
	}

	nobisect := m.behavior.NoBisect
	if encroached > 0 && (nobisect == SplitAlways || (nobisect == SplitInternalOnly && sides == 2)) {
		if encroached == 1 {
			m.badsubsegs.Enqueue(badSubseg{testsubseg, eorg, edest})
		} else {
			m.badsubsegs.Enqueue(badSubseg{testsym, edest, eorg})
		}
	}
	return encroached
}

// Test a triangle against the quality constraints, and queue it if it fails.
func (m *Mesh) testTriangle(testtri Otri) {
	b := &m.behavior

	torg := testtri.Org()
	tdest := testtri.Dest()
	tapex := testtri.Apex()
	dxod := torg.X - tdest.X
	dyod := torg.Y - tdest.Y
	dxda := tdest.X - tapex.X
	dyda := tdest.Y - tapex.Y
	dxao := tapex.X - torg.X
	dyao := tapex.Y - torg.Y
	apexlen := dxod*dxod + dyod*dyod
	orglen := dxda*dxda + dyda*dyda
	destlen := dxao*dxao + dyao*dyao

	enqueue := func(key float64) {
		m.badtriangles.Enqueue(badTriangle{testtri, key, torg, tdest, tapex})
	}

	// The smallest angle is opposite the shortest edge. angle is the square
	// of its cosine, and base1, base2 the endpoints of that edge.
	var angle float64
	var base1, base2 *Vertex
	var tri1 Otri
	if apexlen < orglen && apexlen < destlen {
		angle = dxda*dxao + dyda*dyao
		angle = angle * angle / (orglen * destlen)
		base1, base2 = torg, tdest
		tri1 = testtri
	} else if orglen < destlen {
		angle = dxod*dxao + dyod*dyao
		angle = angle * angle / (apexlen * destlen)
		base1, base2 = tdest, tapex
		tri1 = testtri.Lnext()
	} else {
		angle = dxod*dxda + dyod*dyda
		angle = angle * angle / (apexlen * orglen)
		base1, base2 = tapex, torg
		tri1 = testtri.Lprev()
	}

	if b.VarArea || b.fixedArea || b.UserTest != nil {
		area := 0.5 * (dxod*dyda - dyod*dxda)
		if b.fixedArea && area > b.MaxArea {
			enqueue(0)
			return
		}
		if b.VarArea && testtri.tri.Area > 0 && area > testtri.tri.Area {
			enqueue(0)
			return
		}
		if b.UserTest != nil && b.UserTest(testtri.tri, area) {
			enqueue(0)
			return
		}
	}

	if angle > b.goodAngle {
		if base1.Type == SegmentVertex && base2.Type == SegmentVertex && m.onConcentricShell(tri1, base1, base2) {
			return
		}
		enqueue(angle)
		return
	}

	if b.maxGoodAngle > -1 {
		// The largest angle is opposite the longest edge.
		var cosine float64
		switch {
		case apexlen > orglen && apexlen > destlen:
			cosine = -(dxda*dxao + dyda*dyao) / sqrtProduct(orglen, destlen)
		case orglen > destlen:
			cosine = -(dxod*dxao + dyod*dyao) / sqrtProduct(apexlen, destlen)
		default:
			cosine = -(dxod*dxda + dyod*dyda) / sqrtProduct(apexlen, orglen)
		}
		if cosine < b.maxGoodAngle {
			enqueue(angle)
		}
	}
}

// A skinny triangle whose shortest edge joins two segment vertices is left
// alone when the two segments they lie on meet at a vertex equidistant from
// both. Splitting it would only spawn more such triangles around the small
// input angle.
func (m *Mesh) onConcentricShell(tri1 Otri, base1, base2 *Vertex) bool {
	if !tri1.SegPivot().IsEmpty() {
		// Both on the same segment: split as usual.
		return false
	}

	// Find a subsegment at each end of the edge.
	tri2 := tri1
	var testsub Osub
	for i := 0; testsub.IsEmpty(); i++ {
		if i > MaxRecursionDepth {
			topologyf("segment vertex %v has no subsegment", base1)
		}
		tri1 = tri1.Oprev()
		if tri1.IsEmpty() {
			return false
		}
		testsub = tri1.SegPivot()
	}
	org1 := testsub.SegOrg()
	dest1 := testsub.SegDest()

	testsub = Osub{}
	for i := 0; testsub.IsEmpty(); i++ {
		if i > MaxRecursionDepth {
			topologyf("segment vertex %v has no subsegment", base2)
		}
		tri2 = tri2.Dnext()
		if tri2.IsEmpty() {
			return false
		}
		testsub = tri2.SegPivot()
	}
	org2 := testsub.SegOrg()
	dest2 := testsub.SegDest()

	var joinvertex *Vertex
	if dest1.Coincides(org2) {
		joinvertex = dest1
	} else if org1.Coincides(dest2) {
		joinvertex = org1
	}
	if joinvertex == nil {
		return false
	}
	dist1 := sqDist(base1, joinvertex)
	dist2 := sqDist(base2, joinvertex)
	return dist1 < 1.001*dist2 && dist1 > 0.999*dist2
}

// Queue every encroached subsegment.
func (m *Mesh) tallyEncs() {
	for _, s := range m.subsegs {
		if s != nil {
			m.checkSeg4Encroach(Osub{s, 0})
		}
	}
}

// Queue every bad triangle.
func (m *Mesh) tallyFaces() {
	for _, t := range m.triangles {
		if t != nil {
			m.testTriangle(Otri{t, 0})
		}
	}
}

func sqrtProduct(a, b float64) float64 {
	return math.Sqrt(a) * math.Sqrt(b)
}
