package internal

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// A doubly connected edge list. Every half-edge has its face on the left.
type DCEL struct {
	Vertices  []*HalfEdgeVertex
	HalfEdges []*HalfEdge
	Faces     []*Face
}

type HalfEdgeVertex struct {
	r2.Point
	ID int
	// Boundary marker, for vertices that come from mesh vertices.
	Label int
	// Some half-edge leaving this vertex.
	Leaving *HalfEdge
	// Stands in for a point at infinity at the end of an unbounded edge. The
	// position is on the ray, at an arbitrary distance.
	Infinite bool
}

type Face struct {
	ID int
	// For Voronoi cells, the mesh vertex the cell belongs to.
	Generator *Vertex
	// Some half-edge of the face. For an unbounded face, the first one, which
	// starts at an infinite vertex.
	Edge    *HalfEdge
	Bounded bool
}

type HalfEdge struct {
	ID     int
	Origin *HalfEdgeVertex
	// Nil for the outside of a bounded DCEL.
	Face *Face
	Twin *HalfEdge
	// Nil at the end of an unbounded face.
	Next *HalfEdge
}

func (d *DCEL) newVertex(p r2.Point) *HalfEdgeVertex {
	v := &HalfEdgeVertex{Point: p, ID: len(d.Vertices)}
	d.Vertices = append(d.Vertices, v)
	return v
}

func (d *DCEL) newFace(generator *Vertex) *Face {
	f := &Face{ID: len(d.Faces), Generator: generator, Bounded: true}
	d.Faces = append(d.Faces, f)
	return f
}

func (d *DCEL) newHalfEdge(origin *HalfEdgeVertex, face *Face) *HalfEdge {
	e := &HalfEdge{ID: len(d.HalfEdges), Origin: origin, Face: face}
	d.HalfEdges = append(d.HalfEdges, e)
	if face != nil && face.Edge == nil {
		face.Edge = e
	}
	if origin.Leaving == nil {
		origin.Leaving = e
	}
	return e
}

func (e *HalfEdge) Dest() *HalfEdgeVertex {
	if e.Twin != nil {
		return e.Twin.Origin
	}
	if e.Next != nil {
		return e.Next.Origin
	}
	return nil
}

func (e *HalfEdge) String() string {
	return fmt.Sprintf("HalfEdge#%d %v→%v", e.ID, e.Origin, e.Dest())
}

func (v *HalfEdgeVertex) String() string {
	if v == nil {
		return "Ø"
	}
	if v.Infinite {
		return fmt.Sprintf("∞%d", v.ID)
	}
	return fmt.Sprintf("%d(%g, %g)", v.ID, v.X, v.Y)
}

func (f *Face) String() string {
	return fmt.Sprintf("Face#%d generator=%v bounded=%t", f.ID, f.Generator, f.Bounded)
}

// The half-edges of the face, in order, starting from f.Edge.
func (f *Face) Edges() []*HalfEdge {
	var result []*HalfEdge
	for e := f.Edge; e != nil; e = e.Next {
		result = append(result, e)
		if e.Next == f.Edge {
			break
		}
		if len(result) > maxFaceEdges {
			topologyf("%v does not close", f)
		}
	}
	return result
}

const maxFaceEdges = 1 << 20

// The corners of the face, in counterclockwise order. For an unbounded face,
// the first and last corners are infinite vertices.
func (f *Face) Polygon() []r2.Point {
	edges := f.Edges()
	result := make([]r2.Point, 0, len(edges)+1)
	for _, e := range edges {
		result = append(result, e.Origin.Point)
	}
	if !f.Bounded && len(edges) > 0 {
		if dest := edges[len(edges)-1].Dest(); dest != nil {
			result = append(result, dest.Point)
		}
	}
	return result
}

// Check the structural invariants: twins are mutual, a half-edge and its next
// share a face, next starts where the half-edge ends, and bounded faces close.
func (d *DCEL) Validate() error {
	for _, e := range d.HalfEdges {
		if e.Twin != nil && e.Twin.Twin != e {
			return errors.Errorf("%v and its twin are not mutual", e)
		}
		if e.Next == nil {
			continue
		}
		if e.Next.Face != e.Face {
			return errors.Errorf("%v and its successor %v are on different faces", e, e.Next)
		}
		if e.Twin != nil && e.Twin.Origin != e.Next.Origin {
			return errors.Errorf("%v ends at %v but its successor starts at %v", e, e.Twin.Origin, e.Next.Origin)
		}
	}
	for _, f := range d.Faces {
		if f.Edge == nil {
			continue
		}
		steps := 0
		e := f.Edge
		for ; e != nil && steps <= len(d.HalfEdges); steps++ {
			e = e.Next
			if e == f.Edge {
				break
			}
		}
		if f.Bounded && e != f.Edge {
			return errors.Errorf("%v is bounded but its edges do not close", f)
		}
		if !f.Bounded && e != nil {
			return errors.Errorf("%v is unbounded but its edges close", f)
		}
	}
	return nil
}

// Iterate over the faces. Behavior is undefined if the DCEL is modified during
// iteration. The channel must be drained, or the goroutine feeding it never
// exits.
func (d *DCEL) IterateFaces() chan *Face {
	ch := make(chan *Face)
	go func() {
		for _, f := range d.Faces {
			ch <- f
		}
		close(ch)
	}()
	return ch
}

// Export the triangulation itself as a DCEL: one face per triangle, plus
// boundary half-edges with no face, linked clockwise around the outside.
// Renumbers the mesh.
func (m *Mesh) ToDCEL() *DCEL {
	m.Renumber()
	d := &DCEL{}

	vertices := make(map[*Vertex]*HalfEdgeVertex)
	for _, v := range m.Vertices() {
		hv := d.newVertex(v.Point)
		hv.Label = v.Label
		vertices[v] = hv
	}

	triangles := m.Triangles()
	faces := make([]*Face, len(triangles))
	for _, t := range triangles {
		faces[t.ID] = d.newFace(nil)
	}

	// The half-edge of each triangle edge, by orientation.
	own := make([][3]*HalfEdge, len(triangles))
	// Boundary half-edges by origin.
	boundary := make(map[*HalfEdgeVertex]*HalfEdge)

	for _, t := range triangles {
		for orient := 0; orient < 3; orient++ {
			tri := Otri{t, orient}
			neighbor := tri.Sym()
			if !neighbor.IsEmpty() && neighbor.tri.ID < t.ID {
				continue
			}
			org := vertices[tri.Org()]
			dest := vertices[tri.Dest()]
			edge := d.newHalfEdge(org, faces[t.ID])
			own[t.ID][orient] = edge

			var twin *HalfEdge
			if neighbor.IsEmpty() {
				twin = d.newHalfEdge(dest, nil)
				boundary[dest] = twin
			} else {
				twin = d.newHalfEdge(dest, faces[neighbor.tri.ID])
				// The neighbor sees the same edge from dest to org.
				own[neighbor.tri.ID][neighbor.orient] = twin
			}
			edge.Twin = twin
			twin.Twin = edge
		}
	}

	for _, t := range triangles {
		for orient := 0; orient < 3; orient++ {
			// Lnext goes counterclockwise within the triangle.
			own[t.ID][orient].Next = own[t.ID][plus1mod3[orient]]
		}
	}
	for _, e := range boundary {
		e.Next = boundary[e.Twin.Origin]
	}
	return d
}
