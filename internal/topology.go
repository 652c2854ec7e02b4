package internal

import (
	"fmt"

	"github.com/osuushi/trimesh/internal/dbg"
)

// The mesh is a set of triangles, each holding its three corners, its three
// neighbors, and the subsegments (if any) on its three edges. Neighbor i and
// subsegment i lie across from corner i.
//
// Every traversal is done with an oriented triangle, Otri, which picks out one
// of the three edges of a triangle. With orientation o, the edge runs from the
// origin corner plus1mod3[o] to the destination corner minus1mod3[o], and the
// apex is corner o. The neighbor across that edge is stored in slot o.

var plus1mod3 = [3]int{1, 2, 0}
var minus1mod3 = [3]int{2, 0, 1}

// EmptyID is the id of the per-mesh dummy triangle and dummy subsegment, which
// stand in for "no neighbor" and "no subsegment".
const EmptyID = -1

type Triangle struct {
	ID int
	// Region marker, propagated by flood fill from region pointers.
	Region int
	// Maximum area constraint. Zero or negative means unconstrained.
	Area float64

	hash      int
	vertices  [3]*Vertex
	neighbors [3]Otri
	subsegs   [3]Osub
	infected  bool
	dead      bool
}

func (t *Triangle) Vertex(i int) *Vertex {
	return t.vertices[i]
}

// The neighbor across from corner i, or nil on the boundary.
func (t *Triangle) Neighbor(i int) *Triangle {
	n := t.neighbors[i].tri
	if n == nil || n.ID == EmptyID {
		return nil
	}
	return n
}

// The subsegment on the edge across from corner i, or nil if the edge is not
// constrained.
func (t *Triangle) Segment(i int) *Subseg {
	s := t.subsegs[i].seg
	if s == nil || s.ID == EmptyID {
		return nil
	}
	return s
}

func (t *Triangle) IsDead() bool {
	return t.dead
}

func (t *Triangle) SignedArea() float64 {
	a, b, c := t.vertices[0], t.vertices[1], t.vertices[2]
	return 0.5 * ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
}

func (t *Triangle) Centroid() (x, y float64) {
	a, b, c := t.vertices[0], t.vertices[1], t.vertices[2]
	return (a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3
}

// Does the triangle contain the point (boundary inclusive)?
func (t *Triangle) Contains(x, y float64) bool {
	a, b, c := t.vertices[0], t.vertices[1], t.vertices[2]
	// Barycentric coordinates
	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det == 0 {
		return false
	}
	s := ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / det
	u := ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / det
	return s >= -Tolerance && u >= -Tolerance && s+u <= 1+Tolerance
}

func (t *Triangle) String() string {
	return fmt.Sprintf("Triangle %s#%d [%v %v %v] region=%d",
		dbg.Name(t), t.ID, t.vertices[0], t.vertices[1], t.vertices[2], t.Region)
}

// A subsegment is a piece of an input segment that is also a mesh edge. It
// holds its endpoints, the endpoints of the input segment it came from, its
// neighbors along that segment, and the triangles on either side.
type Subseg struct {
	ID    int
	Label int

	hash int
	// org, dest, segment org, segment dest
	vertices  [4]*Vertex
	subsegs   [2]Osub
	triangles [2]Otri
	dead      bool
}

func (s *Subseg) Vertex(i int) *Vertex {
	return s.vertices[i]
}

// Endpoints of the original input segment this subsegment lies on.
func (s *Subseg) SegmentEndpoints() (*Vertex, *Vertex) {
	return s.vertices[2], s.vertices[3]
}

// The triangle on side i, or nil if that side is outside the mesh.
func (s *Subseg) Triangle(i int) *Triangle {
	t := s.triangles[i].tri
	if t == nil || t.ID == EmptyID || t.dead {
		return nil
	}
	return t
}

func (s *Subseg) String() string {
	return fmt.Sprintf("Subseg %s#%d [%v %v] label=%d", dbg.Name(s), s.ID, s.vertices[0], s.vertices[1], s.Label)
}

// Otri is an oriented triangle: a triangle plus one of its three edges.
type Otri struct {
	tri    *Triangle
	orient int
}

// The triangle t oriented on the edge opposite corner orient.
func OtriOf(t *Triangle, orient int) Otri {
	if orient < 0 || orient > 2 {
		fatalf("orientation must be 0, 1 or 2, got %d", orient)
	}
	return Otri{t, orient}
}

func (o Otri) Triangle() *Triangle {
	return o.tri
}

func (o Otri) Orient() int {
	return o.orient
}

// Is this the dummy triangle (outside the mesh)? The zero Otri also counts.
func (o Otri) IsEmpty() bool {
	return o.tri == nil || o.tri.ID == EmptyID
}

func (o Otri) Equal(other Otri) bool {
	return o.tri == other.tri && o.orient == other.orient
}

func (o Otri) Org() *Vertex  { return o.tri.vertices[plus1mod3[o.orient]] }
func (o Otri) Dest() *Vertex { return o.tri.vertices[minus1mod3[o.orient]] }
func (o Otri) Apex() *Vertex { return o.tri.vertices[o.orient] }

func (o Otri) SetOrg(v *Vertex)  { o.tri.vertices[plus1mod3[o.orient]] = v }
func (o Otri) SetDest(v *Vertex) { o.tri.vertices[minus1mod3[o.orient]] = v }
func (o Otri) SetApex(v *Vertex) { o.tri.vertices[o.orient] = v }

// Next edge counterclockwise within the same triangle.
func (o Otri) Lnext() Otri { return Otri{o.tri, plus1mod3[o.orient]} }

// Next edge clockwise within the same triangle.
func (o Otri) Lprev() Otri { return Otri{o.tri, minus1mod3[o.orient]} }

// The same edge, seen from the neighboring triangle.
func (o Otri) Sym() Otri { return o.tri.neighbors[o.orient] }

// Next edge counterclockwise around the origin.
func (o Otri) Onext() Otri { return o.Lprev().Sym() }

// Next edge clockwise around the origin.
func (o Otri) Oprev() Otri { return o.Sym().Lnext() }

// Next edge counterclockwise around the destination.
func (o Otri) Dnext() Otri { return o.Sym().Lprev() }

// Next edge clockwise around the destination.
func (o Otri) Dprev() Otri { return o.Lnext().Sym() }

// Next edge counterclockwise around the apex's opposite edge.
func (o Otri) Rnext() Otri { return o.Sym().Lnext().Sym() }

// Next edge clockwise around the apex's opposite edge.
func (o Otri) Rprev() Otri { return o.Sym().Lprev().Sym() }

// Glue two triangles together along the edges the handles point at.
func (o Otri) Bond(other Otri) {
	o.tri.neighbors[o.orient] = other
	other.tri.neighbors[other.orient] = o
}

// The subsegment on this edge, or the dummy subsegment.
func (o Otri) SegPivot() Osub { return o.tri.subsegs[o.orient] }

// Attach a subsegment to this edge, and this triangle to the subsegment.
func (o Otri) SegBond(os Osub) {
	o.tri.subsegs[o.orient] = os
	os.seg.triangles[os.orient] = o
}

func (o Otri) IsInfected() bool { return o.tri.infected }
func (o Otri) Infect()          { o.tri.infected = true }
func (o Otri) Uninfect()        { o.tri.infected = false }

func (o Otri) String() string {
	if o.tri == nil {
		return "Otri{Ø}"
	}
	if o.IsEmpty() {
		return "Otri{dummy}"
	}
	return fmt.Sprintf("Otri{%s/%d %v→%v ^%v}", dbg.Name(o.tri), o.orient, o.Org(), o.Dest(), o.Apex())
}

// Osub is an oriented subsegment.
type Osub struct {
	seg    *Subseg
	orient int
}

func (os Osub) Subseg() *Subseg {
	return os.seg
}

func (os Osub) IsEmpty() bool {
	return os.seg == nil || os.seg.ID == EmptyID
}

func (os Osub) Equal(other Osub) bool {
	return os.seg == other.seg && os.orient == other.orient
}

func (os Osub) Org() *Vertex     { return os.seg.vertices[os.orient] }
func (os Osub) Dest() *Vertex    { return os.seg.vertices[1-os.orient] }
func (os Osub) SegOrg() *Vertex  { return os.seg.vertices[2+os.orient] }
func (os Osub) SegDest() *Vertex { return os.seg.vertices[3-os.orient] }

func (os Osub) SetOrg(v *Vertex)     { os.seg.vertices[os.orient] = v }
func (os Osub) SetDest(v *Vertex)    { os.seg.vertices[1-os.orient] = v }
func (os Osub) SetSegOrg(v *Vertex)  { os.seg.vertices[2+os.orient] = v }
func (os Osub) SetSegDest(v *Vertex) { os.seg.vertices[3-os.orient] = v }

// The same subsegment, reversed.
func (os Osub) Sym() Osub { return Osub{os.seg, 1 - os.orient} }

// The adjoining subsegment of the same input segment, past the origin.
func (os Osub) Pivot() Osub { return os.seg.subsegs[os.orient] }

// The adjoining subsegment of the same input segment, past the destination,
// oriented in the same direction.
func (os Osub) Next() Osub { return os.seg.subsegs[1-os.orient] }

func (os Osub) Bond(other Osub) {
	os.seg.subsegs[os.orient] = other
	other.seg.subsegs[other.orient] = os
}

// The triangle on this side of the subsegment.
func (os Osub) TriPivot() Otri { return os.seg.triangles[os.orient] }

func (os Osub) String() string {
	if os.IsEmpty() {
		return "Osub{dummy}"
	}
	return fmt.Sprintf("Osub{%s/%d %v→%v}", dbg.Name(os.seg), os.orient, os.Org(), os.Dest())
}
