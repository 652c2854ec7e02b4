package internal

import (
	clipper "github.com/ctessum/go.clipper"
	"github.com/golang/geo/r2"
)

// Build the Voronoi diagram of the mesh vertices, clipped to the meshed
// domain. Cells of boundary vertices are closed at the boundary before
// clipping. A cell the domain cuts into pieces gives one face per piece, all
// with the same generator. Cells sharing an edge get twin half-edges; edges on
// the domain boundary have no twin.
//
// The cells tile the domain when no boundary subsegment is encroached, which
// holds after quality refinement or for a conforming Delaunay mesh.
//
// Renumbers the mesh.
func NewBoundedVoronoi(m *Mesh) *DCEL {
	unbounded := NewVoronoi(m)

	rings := m.boundaryRings()
	f := newFixedPoint(m.Bounds())
	region := make(clipper.Paths, len(rings))
	for i, ring := range rings {
		region[i] = f.path(ring)
	}

	d := &DCEL{}
	vertices := make(map[r2.Point]*HalfEdgeVertex)
	edges := make(map[[2]*HalfEdgeVertex]*HalfEdge)
	vertexAt := func(p r2.Point) *HalfEdgeVertex {
		if v, ok := vertices[p]; ok {
			return v
		}
		v := d.newVertex(p)
		vertices[p] = v
		return v
	}

	for _, cell := range unbounded.Faces {
		if cell.Edge == nil {
			continue
		}
		for _, piece := range clipRing(closeCell(cell), region, f) {
			face := d.newFace(cell.Generator)
			ring := make([]*HalfEdgeVertex, 0, len(piece))
			for _, p := range piece {
				v := vertexAt(p)
				if len(ring) > 0 && ring[len(ring)-1] == v {
					continue
				}
				ring = append(ring, v)
			}
			if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
				ring = ring[:len(ring)-1]
			}
			if len(ring) < 3 {
				d.Faces = d.Faces[:len(d.Faces)-1]
				continue
			}

			faceEdges := make([]*HalfEdge, len(ring))
			for i, v := range ring {
				faceEdges[i] = d.newHalfEdge(v, face)
			}
			for i, e := range faceEdges {
				e.Next = faceEdges[CircularIndex(i+1, len(faceEdges))]
				ends := [2]*HalfEdgeVertex{ring[i], ring[CircularIndex(i+1, len(ring))]}
				if twin, ok := edges[[2]*HalfEdgeVertex{ends[1], ends[0]}]; ok && twin.Twin == nil {
					e.Twin = twin
					twin.Twin = e
				}
				edges[ends] = e
			}
		}
	}
	return d
}

// The corners of a Voronoi cell as a closed ring. An unbounded cell belongs
// to a boundary vertex, and its two rays lie on the bisectors of the boundary
// edges at that vertex. The cell is cut off at the midpoints of those edges
// and closed through the vertex itself.
func closeCell(cell *Face) []r2.Point {
	ring := cell.Polygon()
	if cell.Bounded || len(ring) < 3 {
		return ring
	}
	edges := cell.Edges()
	first := edges[0]
	last := edges[len(edges)-1]
	generator := cell.Generator.Point

	ring[0] = nearestOnLine(generator, first.Twin.Origin.Point, first.Origin.Point)
	ring[len(ring)-1] = nearestOnLine(generator, last.Origin.Point, last.Twin.Origin.Point)
	return append(ring, generator)
}

// The point on the line through a and b nearest to p.
func nearestOnLine(p, a, b r2.Point) r2.Point {
	direction := b.Sub(a)
	length := direction.Dot(direction)
	if length == 0 {
		return a
	}
	return a.Add(direction.Mul(p.Sub(a).Dot(direction) / length))
}

// The boundary of the mesh as closed rings with the mesh on their left:
// counterclockwise outer boundaries and clockwise hole boundaries.
func (m *Mesh) boundaryRings() [][]r2.Point {
	type edge struct{ org, dest *Vertex }
	var boundary []edge
	outgoing := make(map[*Vertex][]int)
	for _, t := range m.triangles {
		if t == nil {
			continue
		}
		for orient := 0; orient < 3; orient++ {
			tri := Otri{t, orient}
			if tri.Sym().IsEmpty() {
				outgoing[tri.Org()] = append(outgoing[tri.Org()], len(boundary))
				boundary = append(boundary, edge{tri.Org(), tri.Dest()})
			}
		}
	}

	used := make([]bool, len(boundary))
	var rings [][]r2.Point
	for start := range boundary {
		if used[start] {
			continue
		}
		var ring []r2.Point
		current := start
		for !used[current] {
			used[current] = true
			e := boundary[current]
			ring = append(ring, e.org.Point)
			next := -1
			for _, candidate := range outgoing[e.dest] {
				if !used[candidate] {
					next = candidate
					break
				}
			}
			if next < 0 {
				break
			}
			current = next
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}
