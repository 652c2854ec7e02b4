package internal

import "math"

type LocateResult int

const (
	InTriangle LocateResult = iota
	OnEdge
	OnVertex
	Outside
)

func (r LocateResult) String() string {
	return [...]string{"in triangle", "on edge", "on vertex", "outside"}[r]
}

// Find the triangle or edge containing a point by walking from searchtri
// toward it. The mesh must be convex, unless stopAtSubsegment is set, in which
// case the walk stops at the first subsegment crossed and Outside is returned
// with searchtri on that subsegment.
//
// On return, searchtri has the point on its edge (OnEdge), at its origin
// (OnVertex), or inside it (InTriangle). When the walk leaves the mesh,
// searchtri holds the boundary edge it left through.
func (m *Mesh) PreciseLocate(p *Vertex, searchtri *Otri, stopAtSubsegment bool) LocateResult {
	forg := searchtri.Org()
	fdest := searchtri.Dest()
	fapex := searchtri.Apex()
	for {
		if fapex.Coincides(p) {
			*searchtri = searchtri.Lprev()
			return OnVertex
		}
		destorient := m.orient(forg, fapex, p)
		orgorient := m.orient(fapex, fdest, p)

		var moveleft bool
		if destorient > 0 {
			if orgorient > 0 {
				// Both edges face the point. Leave through the one whose
				// direction is closer to the point.
				moveleft = (fapex.X-p.X)*(fdest.X-forg.X)+(fapex.Y-p.Y)*(fdest.Y-forg.Y) > 0
			} else {
				moveleft = true
			}
		} else {
			if orgorient > 0 {
				moveleft = false
			} else {
				if destorient == 0 {
					*searchtri = searchtri.Lprev()
					return OnEdge
				}
				if orgorient == 0 {
					*searchtri = searchtri.Lnext()
					return OnEdge
				}
				return InTriangle
			}
		}

		var backtracktri Otri
		if moveleft {
			backtracktri = searchtri.Lprev()
			fdest = fapex
		} else {
			backtracktri = searchtri.Lnext()
			forg = fapex
		}
		*searchtri = backtracktri.Sym()

		if m.checksegments && stopAtSubsegment && !backtracktri.SegPivot().IsEmpty() {
			*searchtri = backtracktri
			return Outside
		}
		if searchtri.IsEmpty() {
			*searchtri = backtracktri
			return Outside
		}
		fapex = searchtri.Apex()
	}
}

// Find the triangle or edge containing a point. The walk starts from the best
// of searchtri, the most recently located triangle, and a random sample of
// triangles, judged by distance from their origin to the point.
func (m *Mesh) Locate(p *Vertex, searchtri *Otri) LocateResult {
	if searchtri.IsEmpty() {
		*searchtri = m.hullEdge()
	}
	if searchtri.IsEmpty() {
		topologyf("locating %v in a mesh with no triangles", p)
	}

	searchdist := sqDist(searchtri.Org(), p)
	if m.recenttri.tri != nil && !m.recenttri.IsEmpty() && !m.recenttri.tri.dead {
		torg := m.recenttri.Org()
		if torg.Coincides(p) {
			*searchtri = m.recenttri
			return OnVertex
		}
		if dist := sqDist(torg, p); dist < searchdist {
			*searchtri = m.recenttri
			searchdist = dist
		}
	}

	live := len(m.triangles) - m.deadTriangles
	samples := int(math.Ceil(math.Cbrt(float64(live) / sampleFactor)))
	for i := 0; i < samples && len(m.triangles) > 0; i++ {
		t := m.triangles[m.random.Intn(len(m.triangles))]
		if t == nil {
			continue
		}
		sample := Otri{t, 0}
		if dist := sqDist(sample.Org(), p); dist < searchdist {
			*searchtri = sample
			searchdist = dist
		}
	}

	torg := searchtri.Org()
	tdest := searchtri.Dest()
	if torg.Coincides(p) {
		return OnVertex
	}
	if tdest.Coincides(p) {
		*searchtri = searchtri.Lnext()
		return OnVertex
	}

	ahead := m.orient(torg, tdest, p)
	if ahead < 0 {
		// The point is behind this edge. Turn around, unless there is nothing
		// to turn around into.
		sym := searchtri.Sym()
		if sym.IsEmpty() {
			return Outside
		}
		*searchtri = sym
	} else if ahead == 0 {
		if (torg.X < p.X) == (p.X < tdest.X) && (torg.Y < p.Y) == (p.Y < tdest.Y) {
			return OnEdge
		}
	}
	return m.PreciseLocate(p, searchtri, false)
}

// Locate takes the cube root of (live triangles / sampleFactor) samples.
const sampleFactor = 11

// Remember a triangle as the starting point for the next search.
func (m *Mesh) updateRecent(o Otri) {
	m.recenttri = o
}

// Locate a point in a mesh that holes or concavities may have made
// nonconvex. A walk that leaves the mesh is not proof that the point is
// outside, so in that case the live triangles are scanned for one containing
// it, and the search is finished from there.
func (m *Mesh) locateInDomain(p *Vertex, searchtri *Otri) LocateResult {
	*searchtri = m.hullEdge()
	result := m.Locate(p, searchtri)
	if result != Outside {
		return result
	}
	for _, t := range m.triangles {
		if t == nil || !t.Contains(p.X, p.Y) {
			continue
		}
		for orient := 0; orient < 3; orient++ {
			// PreciseLocate needs the point strictly left of the starting edge.
			start := Otri{t, orient}
			if m.orient(start.Org(), start.Dest(), p) > 0 {
				*searchtri = start
				return m.PreciseLocate(p, searchtri, true)
			}
		}
	}
	return Outside
}
