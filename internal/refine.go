package internal

import (
	"math"

	"github.com/golang/geo/r2"
)

// Split every queued encroached subsegment, along with whatever subsegments
// the splits themselves encroach upon, until the queue is empty or the
// Steiner point budget runs out.
func (m *Mesh) splitEncSegs(triflaws bool) {
	for m.badsubsegs.Len() > 0 && m.steinerleft != 0 {
		enc, _ := m.badsubsegs.Dequeue()
		if enc.isStale() {
			continue
		}
		currentenc := enc.subseg
		eorg := enc.org
		edest := enc.dest

		// Does either endpoint join another segment?
		enctri := currentenc.TriPivot()
		testtri := enctri.Lnext()
		acuteorg := !testtri.SegPivot().IsEmpty()
		testtri = testtri.Lnext()
		acutedest := !testtri.SegPivot().IsEmpty()

		// Under Chew's definition of encroachment, free vertices inside the
		// diametral circle are deleted rather than splitting around them.
		if !m.behavior.ConformingDelaunay && !acuteorg && !acutedest {
			eapex := enctri.Apex()
			for eapex.Type == FreeVertex && insideDiametralCircle(eorg, edest, eapex) {
				m.DeleteVertex(testtri)
				enctri = currentenc.TriPivot()
				eapex = enctri.Apex()
				testtri = enctri.Lprev()
			}
		}

		// Now the other side, if there is a triangle there.
		if testtri = enctri.Sym(); !testtri.IsEmpty() {
			testtri = testtri.Lnext()
			acutedest2 := !testtri.SegPivot().IsEmpty()
			acutedest = acutedest || acutedest2
			testtri = testtri.Lnext()
			acuteorg2 := !testtri.SegPivot().IsEmpty()
			acuteorg = acuteorg || acuteorg2

			if !m.behavior.ConformingDelaunay && !acuteorg2 && !acutedest2 {
				eapex := testtri.Org()
				for eapex.Type == FreeVertex && insideDiametralCircle(eorg, edest, eapex) {
					m.DeleteVertex(testtri)
					testtri = enctri.Sym()
					eapex = testtri.Apex()
					testtri = testtri.Lprev()
				}
			}
		}

		split := 0.5
		if acuteorg || acutedest {
			// Split on a circular shell centered on the shared endpoint, at
			// the power of two that divides the segment most evenly. The worst
			// case is a 2:1 ratio.
			segmentlength := math.Sqrt(sqDist(eorg, edest))
			nearestpoweroftwo := 1.0
			for segmentlength > 3*nearestpoweroftwo {
				nearestpoweroftwo *= 2
			}
			for segmentlength < 1.5*nearestpoweroftwo {
				nearestpoweroftwo *= 0.5
			}
			split = nearestpoweroftwo / segmentlength
			if acutedest {
				split = 1 - split
			}
		}

		newvertex := &Vertex{
			Point: r2.Point{
				X: eorg.X + split*(edest.X-eorg.X),
				Y: eorg.Y + split*(edest.Y-eorg.Y),
			},
			ID:         -1,
			Label:      currentenc.seg.Label,
			Type:       SegmentVertex,
			Attributes: interpolateAttributes(eorg, edest, split),
		}

		// Pull the vertex back onto the line through the subsegment if
		// roundoff moved it off.
		multiplier := m.orient(eorg, edest, newvertex)
		divisor := sqDist(eorg, edest)
		if multiplier != 0 && divisor != 0 {
			multiplier /= divisor
			if !math.IsNaN(multiplier) {
				newvertex.X += multiplier * (edest.Y - eorg.Y)
				newvertex.Y += multiplier * (eorg.X - edest.X)
			}
		}

		if newvertex.Coincides(eorg) || newvertex.Coincides(edest) {
			topologyf("ran out of precision splitting the subsegment %v at (%.12g, %.12g)", currentenc, newvertex.X, newvertex.Y)
		}

		success := m.InsertVertex(newvertex, &enctri, &currentenc, true, triflaws)
		if success != Successful && success != Encroaching {
			topologyf("failed to split the subsegment %v: %v", currentenc, success)
		}
		m.addVertex(newvertex)
		m.stats.SegmentSplits++
		m.stats.SteinerPoints++
		if m.steinerleft > 0 {
			m.steinerleft--
		}

		// The two halves may be encroached in turn.
		m.checkSeg4Encroach(currentenc)
		m.checkSeg4Encroach(currentenc.Next())
	}
}

func insideDiametralCircle(eorg, edest, v *Vertex) bool {
	return (eorg.X-v.X)*(edest.X-v.X)+(eorg.Y-v.Y)*(edest.Y-v.Y) < 0
}

// Insert a vertex at the circumcenter (or off-center) of a bad triangle. If
// the new vertex would encroach upon a subsegment, it is taken back out, and
// the encroached subsegments are left in the queue to be split instead.
func (m *Mesh) splitTriangle(badtri badTriangle) {
	if badtri.isStale() {
		return
	}
	badotri := badtri.poortri
	borg := badotri.Org()
	bdest := badotri.Dest()
	bapex := badotri.Apex()

	center, xi, eta := Circumcenter(borg.Point, bdest.Point, bapex.Point, m.behavior.offConstant)
	newvertex := &Vertex{Point: center, ID: -1, Type: FreeVertex}
	if newvertex.Coincides(borg) || newvertex.Coincides(bdest) || newvertex.Coincides(bapex) {
		m.warnf("the circumcenter of %v is one of its corners; the mesh is finer than floating point allows", badotri.tri)
		m.stats.UnresolvedBadTriangles++
		return
	}

	if n := len(borg.Attributes); n > 0 && n == len(bdest.Attributes) && n == len(bapex.Attributes) {
		newvertex.Attributes = make([]float64, n)
		for i := range newvertex.Attributes {
			newvertex.Attributes[i] = borg.Attributes[i] +
				xi*(bdest.Attributes[i]-borg.Attributes[i]) +
				eta*(bapex.Attributes[i]-borg.Attributes[i])
		}
	}

	// When the angle at the apex is obtuse, the circumcenter lies beyond the
	// edge org-dest. Start the search from another edge so the circumcenter
	// is to its left.
	if eta < xi {
		badotri = badotri.Lprev()
	}

	switch success := m.InsertVertex(newvertex, &badotri, nil, true, true); success {
	case Successful:
		m.addVertex(newvertex)
		m.stats.SteinerPoints++
		if m.steinerleft > 0 {
			m.steinerleft--
		}
	case Encroaching, Violating:
		if success == Encroaching {
			m.UndoVertex()
		}
		// With no subsegment queued to split in its place, the triangle stays
		// bad.
		if m.badsubsegs.Len() == 0 {
			m.stats.UnresolvedBadTriangles++
		}
	case Duplicate:
		m.warnf("the circumcenter of %v coincides with an existing vertex", badotri.tri)
		m.stats.UnresolvedBadTriangles++
	}
}

// Refine the mesh: split encroached subsegments, then bad triangles, until
// both queues are empty or the Steiner point budget is exhausted.
func (m *Mesh) enforceQuality() {
	m.refining = true
	defer func() { m.refining = false }()
	m.badsubsegs.Clear()
	m.badtriangles.Clear()
	m.stats.UnresolvedBadTriangles = 0
	m.stats.UnresolvedEncroachedSegments = 0
	m.stats.SteinerBudgetExhausted = false

	m.tallyEncs()
	m.splitEncSegs(false)

	if m.behavior.hasTriangleTests() {
		m.tallyFaces()
		m.checkquality = true
		for m.badtriangles.Len() > 0 && m.steinerleft != 0 {
			badtri, _ := m.badtriangles.Dequeue()
			m.splitTriangle(badtri)
			if m.badsubsegs.Len() > 0 {
				// Put the triangle back for another try once the encroached
				// subsegments are split.
				m.badtriangles.Enqueue(badtri)
				m.splitEncSegs(true)
			}
		}
		m.checkquality = false
	}

	for {
		b, ok := m.badtriangles.Dequeue()
		if !ok {
			break
		}
		if !b.isStale() {
			m.stats.UnresolvedBadTriangles++
		}
	}
	for {
		b, ok := m.badsubsegs.Dequeue()
		if !ok {
			break
		}
		if !b.isStale() {
			m.stats.UnresolvedEncroachedSegments++
		}
	}
	if m.steinerleft == 0 && (m.stats.UnresolvedBadTriangles > 0 || m.stats.UnresolvedEncroachedSegments > 0) {
		m.stats.SteinerBudgetExhausted = true
		m.warnf("ran out of Steiner points with %d bad triangles and %d encroached subsegments left",
			m.stats.UnresolvedBadTriangles, m.stats.UnresolvedEncroachedSegments)
	}
}
