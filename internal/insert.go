package internal

type InsertResult int

const (
	Successful InsertResult = iota
	// Inserted, but the new vertex encroaches upon a subsegment.
	Encroaching
	// Not inserted: the vertex lies on a subsegment.
	Violating
	// Not inserted: there is already a vertex at that position.
	Duplicate
)

func (r InsertResult) String() string {
	return [...]string{"successful", "encroaching", "violating", "duplicate"}[r]
}

// Add one free vertex to a finished mesh, keeping it Delaunay. Subsegments
// are not split: a vertex on one, or outside the mesh, is rejected as
// Violating, and a rejected vertex is not registered. A vertex that lands in
// the diametral lens of a subsegment (the diametral circle, when no minimum
// angle is set) is kept, and the result is Encroaching.
func (m *Mesh) InsertPoint(v *Vertex) InsertResult {
	v.Type = FreeVertex
	v.alias = nil
	v.tri = Otri{m.dummytri, 0}
	v.ID = -1

	var searchtri Otri
	result := m.InsertVertex(v, &searchtri, nil, true, false)
	// Nothing splits the subsegments found encroached here.
	m.badsubsegs.Clear()
	if result == Successful || result == Encroaching {
		m.addVertex(v)
	}
	m.settle()
	return result
}

// Insert a vertex into the triangulation, then restore the Delaunay property
// with edge flips around it.
//
// If searchtri is not empty, point location starts there; otherwise the whole
// mesh is searched, holes and all. If splitseg is non-nil, the vertex is
// inserted on that subsegment, which is split in two, and searchtri must be
// the triangle on the subsegment; no point location is done. Otherwise a vertex that falls on a subsegment is not inserted and the
// result is Violating.
//
// segmentflaws enables checks for subsegments encroached by the new vertex,
// and triflaws enables quality tests of the triangles it creates.
//
// On return, searchtri has the new vertex as its origin, or for Duplicate, the
// existing vertex; for Violating, it holds the violated subsegment.
func (m *Mesh) InsertVertex(v *Vertex, searchtri *Otri, splitseg *Osub, segmentflaws, triflaws bool) InsertResult {
	var horiz Otri
	var intersect LocateResult

	if splitseg == nil {
		if searchtri.IsEmpty() {
			intersect = m.locateInDomain(v, &horiz)
		} else {
			horiz = *searchtri
			intersect = m.PreciseLocate(v, &horiz, true)
		}
	} else {
		horiz = *searchtri
		intersect = OnEdge
	}

	if intersect == OnVertex {
		*searchtri = horiz
		m.updateRecent(horiz)
		return Duplicate
	}

	var rightvertex, leftvertex, botvertex *Vertex

	if intersect == OnEdge || intersect == Outside {
		if m.checksegments && splitseg == nil {
			if brokensubseg := horiz.SegPivot(); !brokensubseg.IsEmpty() {
				if segmentflaws {
					enq := m.behavior.NoBisect != SplitNever
					if enq && m.behavior.NoBisect == SplitInternalOnly {
						// Only internal subsegments may be split.
						enq = !horiz.Sym().IsEmpty()
					}
					if enq {
						m.badsubsegs.Enqueue(badSubseg{brokensubseg, brokensubseg.Org(), brokensubseg.Dest()})
					}
				}
				*searchtri = horiz
				m.updateRecent(horiz)
				return Violating
			}
		}
		if intersect == Outside && splitseg == nil {
			// The walk left the mesh without crossing a subsegment, so the
			// vertex lies beyond the boundary edge and can't be placed.
			*searchtri = horiz
			return Violating
		}

		// Split the edge, and with it the one or two triangles it borders.
		botright := horiz.Lprev()
		botrcasing := botright.Sym()
		topright := horiz.Sym()
		mirrorflag := !topright.IsEmpty()
		var toprcasing, newtopright Otri
		if mirrorflag {
			topright = topright.Lnext()
			toprcasing = topright.Sym()
			newtopright = m.makeTriangle()
		} else {
			m.hullsize++
		}
		newbotright := m.makeTriangle()

		rightvertex = horiz.Org()
		leftvertex = horiz.Dest()
		botvertex = horiz.Apex()
		newbotright.SetOrg(botvertex)
		newbotright.SetDest(rightvertex)
		newbotright.SetApex(v)
		horiz.SetOrg(v)

		newbotright.tri.Region = botright.tri.Region
		if m.behavior.VarArea {
			newbotright.tri.Area = botright.tri.Area
		}

		if mirrorflag {
			topvertex := topright.Dest()
			newtopright.SetOrg(rightvertex)
			newtopright.SetDest(topvertex)
			newtopright.SetApex(v)
			topright.SetOrg(v)

			newtopright.tri.Region = topright.tri.Region
			if m.behavior.VarArea {
				newtopright.tri.Area = topright.tri.Area
			}
		}

		if m.checksegments {
			if botrsubseg := botright.SegPivot(); !botrsubseg.IsEmpty() {
				m.segDissolve(botright)
				newbotright.SegBond(botrsubseg)
			}
			if mirrorflag {
				if toprsubseg := topright.SegPivot(); !toprsubseg.IsEmpty() {
					m.segDissolve(topright)
					newtopright.SegBond(toprsubseg)
				}
			}
		}

		newbotright.Bond(botrcasing)
		newbotright = newbotright.Lprev()
		newbotright.Bond(botright)
		newbotright = newbotright.Lprev()

		if mirrorflag {
			newtopright.Bond(toprcasing)
			newtopright = newtopright.Lnext()
			newtopright.Bond(topright)
			newtopright = newtopright.Lnext()
			newtopright.Bond(newbotright)
		}

		if splitseg != nil {
			seg := *splitseg
			seg.SetDest(v)
			segmentorg := seg.SegOrg()
			segmentdest := seg.SegDest()
			seg = seg.Sym()
			rightsubseg := seg.Pivot()
			m.InsertSubseg(newbotright, seg.seg.Label)
			newsubseg := newbotright.SegPivot()
			newsubseg.SetSegOrg(segmentorg)
			newsubseg.SetSegDest(segmentdest)
			seg.Bond(newsubseg)
			newsubseg = newsubseg.Sym()
			newsubseg.Bond(rightsubseg)
			seg = seg.Sym()

			if v.Label == 0 {
				v.Label = seg.seg.Label
			}
		}

		if m.checkquality {
			m.flipstack.Clear()
			// The zero handle marks a bisection for UndoVertex.
			m.flipstack.Push(Otri{})
			m.flipstack.Push(horiz)
		}

		horiz = horiz.Lnext()
	} else {
		// Split the triangle into three.
		botleft := horiz.Lnext()
		botright := horiz.Lprev()
		botlcasing := botleft.Sym()
		botrcasing := botright.Sym()
		newbotleft := m.makeTriangle()
		newbotright := m.makeTriangle()

		rightvertex = horiz.Org()
		leftvertex = horiz.Dest()
		botvertex = horiz.Apex()
		newbotleft.SetOrg(leftvertex)
		newbotleft.SetDest(botvertex)
		newbotleft.SetApex(v)
		newbotright.SetOrg(botvertex)
		newbotright.SetDest(rightvertex)
		newbotright.SetApex(v)
		horiz.SetApex(v)

		newbotleft.tri.Region = horiz.tri.Region
		newbotright.tri.Region = horiz.tri.Region
		if m.behavior.VarArea {
			newbotleft.tri.Area = horiz.tri.Area
			newbotright.tri.Area = horiz.tri.Area
		}

		if m.checksegments {
			if botlsubseg := botleft.SegPivot(); !botlsubseg.IsEmpty() {
				m.segDissolve(botleft)
				newbotleft.SegBond(botlsubseg)
			}
			if botrsubseg := botright.SegPivot(); !botrsubseg.IsEmpty() {
				m.segDissolve(botright)
				newbotright.SegBond(botrsubseg)
			}
		}

		newbotleft.Bond(botlcasing)
		newbotright.Bond(botrcasing)
		newbotleft = newbotleft.Lnext()
		newbotright = newbotright.Lprev()
		newbotleft.Bond(newbotright)
		newbotleft = newbotleft.Lnext()
		botleft.Bond(newbotleft)
		newbotright = newbotright.Lprev()
		botright.Bond(newbotright)

		if m.checkquality {
			m.flipstack.Clear()
			m.flipstack.Push(horiz)
		}
	}

	// Circle the new vertex, checking each edge opposite it. horiz is always
	// the edge being checked; first marks where to stop.
	success := Successful
	first := horiz.Org()
	rightvertex = first
	leftvertex = horiz.Dest()
	for {
		doflip := true

		if m.checksegments {
			if checksubseg := horiz.SegPivot(); !checksubseg.IsEmpty() {
				doflip = false
				if segmentflaws && m.checkSeg4Encroach(checksubseg) > 0 {
					success = Encroaching
				}
			}
		}

		if doflip {
			top := horiz.Sym()
			if top.IsEmpty() {
				doflip = false
			} else {
				farvertex := top.Apex()
				// Corners of the bounding triangle are infinitely far away, so
				// only the convexity of the boundary matters for them.
				switch {
				case m.isInfinite(leftvertex):
					doflip = m.orient(v, rightvertex, farvertex) > 0
				case m.isInfinite(rightvertex):
					doflip = m.orient(farvertex, leftvertex, v) > 0
				case m.isInfinite(farvertex):
					doflip = false
				default:
					doflip = m.incircle(leftvertex, v, rightvertex, farvertex) > 0
				}

				if doflip {
					m.Flip(horiz)

					region := top.tri.Region
					if horiz.tri.Region < region {
						region = horiz.tri.Region
					}
					top.tri.Region = region
					horiz.tri.Region = region

					if m.behavior.VarArea {
						area := -1.0
						if top.tri.Area > 0 && horiz.tri.Area > 0 {
							// Averaging keeps small constraints from drifting far
							// through repeated flips.
							area = 0.5 * (top.tri.Area + horiz.tri.Area)
						}
						top.tri.Area = area
						horiz.tri.Area = area
					}

					if m.checkquality {
						m.flipstack.Push(horiz)
					}

					// Check the two edges the flip exposed.
					horiz = horiz.Lprev()
					leftvertex = farvertex
				}
			}
		}

		if !doflip {
			if triflaws {
				m.testTriangle(horiz)
			}

			horiz = horiz.Lnext()
			testtri := horiz.Sym()
			// Done after a full revolution, or on reaching the boundary.
			if leftvertex == first || testtri.IsEmpty() {
				*searchtri = horiz.Lnext()
				v.tri = *searchtri
				m.updateRecent(*searchtri)
				return success
			}
			horiz = testtri.Lnext()
			rightvertex = leftvertex
			leftvertex = horiz.Dest()
		}
	}
}

// Put a subsegment on the edge of tri, unless there already is one, and label
// it and its unlabelled endpoints.
func (m *Mesh) InsertSubseg(tri Otri, label int) {
	triorg := tri.Org()
	tridest := tri.Dest()
	if triorg.Label == 0 {
		triorg.Label = label
	}
	if tridest.Label == 0 {
		tridest.Label = label
	}

	newsubseg := tri.SegPivot()
	if newsubseg.IsEmpty() {
		newsubseg = m.makeSubseg()
		newsubseg.SetOrg(tridest)
		newsubseg.SetDest(triorg)
		newsubseg.SetSegOrg(tridest)
		newsubseg.SetSegDest(triorg)
		// The facing triangle may be the dummy; it gets bonded all the same.
		tri.SegBond(newsubseg)
		newsubseg = newsubseg.Sym()
		tri.Sym().SegBond(newsubseg)
		newsubseg.seg.Label = label
	} else if newsubseg.seg.Label == 0 {
		newsubseg.seg.Label = label
	}
}

// Flip an edge counterclockwise within its quadrilateral.
//
// With the triangles abc and bad sharing the edge ab, flipedge directed from a
// to b, the triangles are replaced by cdb and dca, reusing the same two
// triangle records. Afterwards flipedge holds the edge dc of dca.
//
// The quadrilateral must be convex, and the edge must not be a subsegment.
// Neither is checked.
func (m *Mesh) Flip(flipedge Otri) {
	rightvertex := flipedge.Org()
	leftvertex := flipedge.Dest()
	botvertex := flipedge.Apex()
	top := flipedge.Sym()
	farvertex := top.Apex()

	topleft := top.Lprev()
	toplcasing := topleft.Sym()
	topright := top.Lnext()
	toprcasing := topright.Sym()
	botleft := flipedge.Lnext()
	botlcasing := botleft.Sym()
	botright := flipedge.Lprev()
	botrcasing := botright.Sym()

	// Rotate the quadrilateral a quarter turn counterclockwise.
	topleft.Bond(botlcasing)
	botleft.Bond(botrcasing)
	botright.Bond(toprcasing)
	topright.Bond(toplcasing)

	if m.checksegments {
		toplsubseg := topleft.SegPivot()
		botlsubseg := botleft.SegPivot()
		botrsubseg := botright.SegPivot()
		toprsubseg := topright.SegPivot()
		m.rehome(topright, toplsubseg)
		m.rehome(topleft, botlsubseg)
		m.rehome(botleft, botrsubseg)
		m.rehome(botright, toprsubseg)
	}

	flipedge.SetOrg(farvertex)
	flipedge.SetDest(botvertex)
	flipedge.SetApex(rightvertex)
	top.SetOrg(botvertex)
	top.SetDest(farvertex)
	top.SetApex(leftvertex)
	m.stats.Flips++
}

// Undo Flip: rotate the quadrilateral clockwise, so that flipedge holds cd of
// cdb again.
func (m *Mesh) Unflip(flipedge Otri) {
	rightvertex := flipedge.Org()
	leftvertex := flipedge.Dest()
	botvertex := flipedge.Apex()
	top := flipedge.Sym()
	farvertex := top.Apex()

	topleft := top.Lprev()
	toplcasing := topleft.Sym()
	topright := top.Lnext()
	toprcasing := topright.Sym()
	botleft := flipedge.Lnext()
	botlcasing := botleft.Sym()
	botright := flipedge.Lprev()
	botrcasing := botright.Sym()

	topleft.Bond(toprcasing)
	botleft.Bond(toplcasing)
	botright.Bond(botlcasing)
	topright.Bond(botrcasing)

	if m.checksegments {
		toplsubseg := topleft.SegPivot()
		botlsubseg := botleft.SegPivot()
		botrsubseg := botright.SegPivot()
		toprsubseg := topright.SegPivot()
		m.rehome(botleft, toplsubseg)
		m.rehome(botright, botlsubseg)
		m.rehome(topright, botrsubseg)
		m.rehome(topleft, toprsubseg)
	}

	flipedge.SetOrg(botvertex)
	flipedge.SetDest(farvertex)
	flipedge.SetApex(leftvertex)
	top.SetOrg(farvertex)
	top.SetDest(botvertex)
	top.SetApex(rightvertex)
}

// Attach a subsegment to an edge, or clear the edge if there is none.
func (m *Mesh) rehome(edge Otri, sub Osub) {
	if sub.IsEmpty() {
		m.segDissolve(edge)
	} else {
		edge.SegBond(sub)
	}
}

// Find the Delaunay triangulation of a polygon that is currently filled by a
// fan of triangles sharing a common origin.
//
// The polygon has edgecount sides, one of which (the base) need not be a mesh
// edge yet. firstedge is the primary edge of the first triangle of the fan,
// and lastedge that of the last, going counterclockwise; the base runs from
// the apex of lastedge to the destination of firstedge. Each flip commits one
// triangle to the polygon. Unless doflip is set, the last flip is skipped,
// leaving a fan of two triangles.
func (m *Mesh) TriangulatePolygon(firstedge, lastedge Otri, edgecount int, doflip, triflaws bool) {
	defer m.enter("TriangulatePolygon")()

	leftbasevertex := lastedge.Apex()
	rightbasevertex := firstedge.Dest()

	// Pick the vertex to connect the base to.
	besttri := firstedge.Onext()
	bestvertex := besttri.Dest()
	testtri := besttri
	bestnumber := 1
	for i := 2; i <= edgecount-2; i++ {
		testtri = testtri.Onext()
		testvertex := testtri.Dest()
		if m.incircle(leftbasevertex, rightbasevertex, bestvertex, testvertex) > 0 {
			besttri = testtri
			bestvertex = testvertex
			bestnumber = i
		}
	}

	if bestnumber > 1 {
		// The smaller polygon on the right.
		m.TriangulatePolygon(firstedge, besttri.Oprev(), bestnumber+1, true, triflaws)
	}

	if bestnumber < edgecount-2 {
		// The smaller polygon on the left. besttri may be lost to flips, so
		// find it again from the other side.
		tempedge := besttri.Sym()
		m.TriangulatePolygon(besttri, lastedge, edgecount-bestnumber, true, triflaws)
		besttri = tempedge.Sym()
	}

	if doflip {
		m.Flip(besttri)
		if triflaws {
			m.testTriangle(besttri.Sym())
		}
	}
}

// Delete the origin of deltri, an interior vertex not on any segment, and
// retriangulate the hole it leaves.
func (m *Mesh) DeleteVertex(deltri Otri) {
	delvertex := deltri.Org()
	m.killVertex(delvertex)

	edgecount := 1
	for countingtri := deltri.Onext(); !deltri.Equal(countingtri); countingtri = countingtri.Onext() {
		edgecount++
		if edgecount > MaxRecursionDepth {
			topologyf("vertex %v has no closed ring of triangles", delvertex)
		}
	}

	triflaws := m.behavior.NoBisect == SplitAlways
	if edgecount > 3 {
		m.TriangulatePolygon(deltri.Onext(), deltri.Oprev(), edgecount, false, triflaws)
	}

	// Splice out the two remaining triangles.
	deltriright := deltri.Lprev()
	lefttri := deltri.Dnext()
	leftcasing := lefttri.Sym()
	righttri := deltriright.Oprev()
	rightcasing := righttri.Sym()
	deltri.Bond(leftcasing)
	deltriright.Bond(rightcasing)
	if leftsubseg := lefttri.SegPivot(); !leftsubseg.IsEmpty() {
		deltri.SegBond(leftsubseg)
	}
	if rightsubseg := righttri.SegPivot(); !rightsubseg.IsEmpty() {
		deltriright.SegBond(rightsubseg)
	}

	deltri.SetOrg(lefttri.Org())
	if triflaws {
		m.testTriangle(deltri)
	}

	m.killTriangle(lefttri.tri)
	m.killTriangle(righttri.tri)
}

// Undo the most recent vertex insertion, replaying the flip history in
// reverse. The vertex itself stays allocated; the caller decides its fate.
// Only meaningful while checkquality is set, since that is when history is
// recorded.
func (m *Mesh) UndoVertex() {
	for !m.flipstack.Empty() {
		fliptri := m.flipstack.Pop()

		switch {
		case m.flipstack.Empty():
			// A triangle was split into three.
			botleft := fliptri.Dprev().Lnext()
			botright := fliptri.Onext().Lprev()
			botlcasing := botleft.Sym()
			botrcasing := botright.Sym()
			botvertex := botleft.Dest()

			fliptri.SetApex(botvertex)
			fliptri = fliptri.Lnext()
			fliptri.Bond(botlcasing)
			fliptri.SegBond(botleft.SegPivot())
			fliptri = fliptri.Lnext()
			fliptri.Bond(botrcasing)
			fliptri.SegBond(botright.SegPivot())

			m.killTriangle(botleft.tri)
			m.killTriangle(botright.tri)

		case m.flipstack.Peek().tri == nil:
			// An edge was split, and with it one or two triangles.
			gluetri := fliptri.Lprev()
			botright := gluetri.Sym().Lnext()
			botrcasing := botright.Sym()
			rightvertex := botright.Dest()

			fliptri.SetOrg(rightvertex)
			gluetri.Bond(botrcasing)
			gluetri.SegBond(botright.SegPivot())
			m.killTriangle(botright.tri)

			gluetri = fliptri.Sym()
			if !gluetri.IsEmpty() {
				gluetri = gluetri.Lnext()
				topright := gluetri.Dnext()
				toprcasing := topright.Sym()

				gluetri.SetOrg(rightvertex)
				gluetri.Bond(toprcasing)
				gluetri.SegBond(topright.SegPivot())
				m.killTriangle(topright.tri)
			} else {
				m.hullsize--
			}
			m.flipstack.Clear()

		default:
			m.Unflip(fliptri)
		}
	}
}
