package internal

import "github.com/golang/geo/r2"

// Remove the triangles in holes and, unless the mesh is to stay convex, in
// concavities; then spread region ids and area constraints.
//
// Holes and region seeds are located before anything is carved, since point
// location needs a convex mesh.
func (m *Mesh) CarveHoles() {
	var viri []*Triangle
	infect := func(t *Triangle) {
		if !t.infected {
			t.infected = true
			viri = append(viri, t)
		}
	}

	if !m.behavior.Convex {
		m.InfectHull(infect)
	}

	for _, hole := range m.holes {
		if searchtri, ok := m.locateSeed(hole); ok {
			infect(searchtri.tri)
		}
	}

	regionTris := make([]*Triangle, len(m.regions))
	for i, region := range m.regions {
		if searchtri, ok := m.locateSeed(region.Point); ok {
			regionTris[i] = searchtri.tri
		}
	}

	if len(viri) > 0 {
		m.Plague(viri)
	}

	for i, t := range regionTris {
		// The seed triangle may have been eaten.
		if t == nil || t.dead {
			continue
		}
		region := m.regions[i]
		m.RegionIterator(t, func(t *Triangle) {
			t.Region = region.ID
			if region.Area > 0 {
				t.Area = region.Area
			}
		})
	}
	m.resetHullEdge()
}

// Find the live, uninfected triangle containing a seed point, if the point is
// within the mesh.
func (m *Mesh) locateSeed(p r2.Point) (Otri, bool) {
	if !m.bounds.ContainsPoint(p) {
		return Otri{}, false
	}
	searchtri := m.hullEdge()
	if searchtri.IsEmpty() {
		return Otri{}, false
	}
	seed := &Vertex{Point: p}
	// The seed must be to the left of the starting boundary edge, or locate
	// would report it inside the starting triangle.
	if m.orient(searchtri.Org(), searchtri.Dest(), seed) <= 0 {
		return Otri{}, false
	}
	if m.Locate(seed, &searchtri) == Outside || searchtri.IsInfected() {
		return Otri{}, false
	}
	return searchtri, true
}

// Infect every hull triangle not protected by a subsegment. Protected hull
// edges get boundary labels.
func (m *Mesh) InfectHull(infect func(*Triangle)) {
	m.walkHull(func(hulltri Otri) {
		if hulltri.IsInfected() {
			return
		}
		hullsubseg := hulltri.SegPivot()
		if hullsubseg.IsEmpty() {
			infect(hulltri.tri)
			return
		}
		if hullsubseg.seg.Label == 0 {
			hullsubseg.seg.Label = 1
			if horg := hulltri.Org(); horg.Label == 0 {
				horg.Label = 1
			}
			if hdest := hulltri.Dest(); hdest.Label == 0 {
				hdest.Label = 1
			}
		}
	})
}

// Spread the infection from the given triangles to every neighbor not
// protected by a subsegment, then delete every infected triangle. Vertices
// left without any triangle become undead.
func (m *Mesh) Plague(viri []*Triangle) {
	// Spread, marking the subsegments that become boundaries.
	for i := 0; i < len(viri); i++ {
		for orient := 0; orient < 3; orient++ {
			testtri := Otri{viri[i], orient}
			neighbor := testtri.Sym()
			neighborsubseg := testtri.SegPivot()
			if neighbor.IsEmpty() || neighbor.IsInfected() {
				if !neighborsubseg.IsEmpty() {
					// Both sides are dying, so the subsegment dies too.
					m.killSubseg(neighborsubseg.seg)
					if !neighbor.IsEmpty() {
						m.segDissolve(neighbor)
					}
					m.segDissolve(testtri)
				}
				continue
			}
			if neighborsubseg.IsEmpty() {
				neighbor.Infect()
				viri = append(viri, neighbor.tri)
				continue
			}
			// The neighbor is protected, and the subsegment becomes a boundary.
			m.triDissolve(neighborsubseg)
			if neighborsubseg.seg.Label == 0 {
				neighborsubseg.seg.Label = 1
			}
			if norg := neighbor.Org(); norg.Label == 0 {
				norg.Label = 1
			}
			if ndest := neighbor.Dest(); ndest.Label == 0 {
				ndest.Label = 1
			}
		}
	}

	// Kill. A vertex survives if any triangle around it does. Each vertex is
	// examined once, before any triangle around it is killed.
	tested := make(map[*Vertex]struct{})
	for _, t := range viri {
		for orient := 0; orient < 3; orient++ {
			testtri := Otri{t, orient}
			testvertex := testtri.Org()
			if _, ok := tested[testvertex]; ok {
				continue
			}
			tested[testvertex] = struct{}{}

			killorg := true
			neighbor := testtri.Onext()
			for steps := 0; !neighbor.IsEmpty() && !neighbor.Equal(testtri); steps++ {
				if steps > MaxRecursionDepth {
					topologyf("vertex %v has no closed ring of triangles", testvertex)
				}
				if !neighbor.IsInfected() {
					killorg = false
				}
				neighbor = neighbor.Onext()
			}
			if neighbor.IsEmpty() {
				// Reached the boundary; walk the other way too.
				for neighbor = testtri.Oprev(); !neighbor.IsEmpty(); neighbor = neighbor.Oprev() {
					if !neighbor.IsInfected() {
						killorg = false
					}
				}
			}
			if killorg {
				testvertex.Type = UndeadVertex
				m.undeads++
			}
		}

		for orient := 0; orient < 3; orient++ {
			neighbor := Otri{t, orient}.Sym()
			if neighbor.IsEmpty() {
				// A boundary edge goes away with the triangle.
				m.hullsize--
			} else {
				// The edge becomes a boundary edge.
				m.dissolve(neighbor)
				m.hullsize++
			}
		}
		m.killTriangle(t)
	}
}

// Apply fn to every triangle reachable from start without crossing a
// subsegment or the boundary.
func (m *Mesh) RegionIterator(start *Triangle, fn func(*Triangle)) {
	if start == nil || start.dead || start.ID == EmptyID {
		return
	}
	start.infected = true
	viri := []*Triangle{start}
	for i := 0; i < len(viri); i++ {
		fn(viri[i])
		for orient := 0; orient < 3; orient++ {
			testtri := Otri{viri[i], orient}
			neighbor := testtri.Sym()
			if !neighbor.IsEmpty() && !neighbor.IsInfected() && testtri.SegPivot().IsEmpty() {
				neighbor.Infect()
				viri = append(viri, neighbor.tri)
			}
		}
	}
	for _, t := range viri {
		t.infected = false
	}
}

// Point the dummy triangle at a live hull edge.
func (m *Mesh) resetHullEdge() {
	if hull := m.hullEdge(); !hull.IsEmpty() && !hull.tri.dead && hull.Sym().IsEmpty() {
		return
	}
	for _, t := range m.triangles {
		if t == nil {
			continue
		}
		for orient := 0; orient < 3; orient++ {
			if o := (Otri{t, orient}); o.Sym().IsEmpty() {
				m.dummytri.neighbors[0] = o
				return
			}
		}
	}
	m.dummytri.neighbors[0] = Otri{m.dummytri, 0}
}
