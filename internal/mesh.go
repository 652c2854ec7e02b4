package internal

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// Mesh owns every vertex, triangle and subsegment. The three registries are
// arenas: slices indexed by a monotonically increasing hash, where a killed
// entity leaves a nil slot behind. Adjacency is expressed with handles that
// point into the arenas and implies no ownership.
type Mesh struct {
	vertices  []*Vertex
	triangles []*Triangle
	subsegs   []*Subseg

	deadTriangles int
	deadSubsegs   int
	// Id counters. Ids stay unique until the next Renumber, even though
	// compaction reuses arena slots.
	nextTriangleID int
	nextSubsegID   int

	// Stand-ins for "outside the mesh" and "no subsegment".
	dummytri *Triangle
	dummysub *Subseg

	// Corners of the bounding triangle used during incremental construction.
	// Nil at all other times.
	infvertex1, infvertex2, infvertex3 *Vertex

	holes   []r2.Point
	regions []RegionPointer

	// Number of input vertices. Segment endpoints refer to these by index.
	invertices int
	insegments int
	hullsize   int
	edges      int
	undeads    int
	// Number of attributes carried by every vertex.
	nextras int

	// Remaining Steiner point budget; negative is unlimited.
	steinerleft   int
	checksegments bool
	checkquality  bool

	// Set for the duration of enforceQuality.
	refining bool

	recenttri Otri
	flipstack OtriStack

	badsubsegs   badSubsegQueue
	badtriangles badTriangleQueue

	behavior Behavior
	stats    Statistics
	bounds   r2.Rect
	random   *rand.Rand
	depth    int
}

func NewMesh(behavior Behavior) *Mesh {
	if behavior.Logger == nil {
		behavior.Logger = discardLogger
	}
	m := &Mesh{
		behavior:    behavior,
		steinerleft: -1,
		bounds:      r2.EmptyRect(),
		// Point location sampling only needs to be cheap and repeatable.
		random: rand.New(rand.NewSource(1)),
	}

	m.dummytri = &Triangle{ID: EmptyID, hash: EmptyID}
	m.dummysub = &Subseg{ID: EmptyID, hash: EmptyID}
	for i := 0; i < 3; i++ {
		m.dummytri.neighbors[i] = Otri{m.dummytri, 0}
		m.dummytri.subsegs[i] = Osub{m.dummysub, 0}
	}
	m.dummysub.subsegs[0] = Osub{m.dummysub, 0}
	m.dummysub.subsegs[1] = Osub{m.dummysub, 0}
	m.dummysub.triangles[0] = Otri{m.dummytri, 0}
	m.dummysub.triangles[1] = Otri{m.dummytri, 0}
	m.recenttri = Otri{m.dummytri, 0}
	return m
}

func (m *Mesh) Behavior() *Behavior {
	return &m.behavior
}

// Add a vertex to the registry.
func (m *Mesh) addVertex(v *Vertex) {
	v.hash = len(m.vertices)
	v.ID = v.hash
	if v.tri.tri == nil {
		v.tri = Otri{m.dummytri, 0}
	}
	m.vertices = append(m.vertices, v)
	m.bounds = m.bounds.AddPoint(v.Point)
}

// Remove a vertex from the registry. The vertex stays valid for anyone still
// holding it.
func (m *Mesh) killVertex(v *Vertex) {
	v.Type = DeadVertex
	if v.hash >= 0 && v.hash < len(m.vertices) && m.vertices[v.hash] == v {
		m.vertices[v.hash] = nil
	}
}

func (m *Mesh) makeTriangle() Otri {
	t := &Triangle{ID: m.nextTriangleID, hash: len(m.triangles)}
	m.nextTriangleID++
	for i := 0; i < 3; i++ {
		t.neighbors[i] = Otri{m.dummytri, 0}
		t.subsegs[i] = Osub{m.dummysub, 0}
	}
	m.triangles = append(m.triangles, t)
	return Otri{t, 0}
}

func (m *Mesh) killTriangle(t *Triangle) {
	if t.dead {
		return
	}
	t.dead = true
	m.triangles[t.hash] = nil
	m.deadTriangles++
}

func (m *Mesh) makeSubseg() Osub {
	s := &Subseg{ID: m.nextSubsegID, hash: len(m.subsegs)}
	m.nextSubsegID++
	s.subsegs[0] = Osub{m.dummysub, 0}
	s.subsegs[1] = Osub{m.dummysub, 0}
	s.triangles[0] = Otri{m.dummytri, 0}
	s.triangles[1] = Otri{m.dummytri, 0}
	m.subsegs = append(m.subsegs, s)
	return Osub{s, 0}
}

func (m *Mesh) killSubseg(s *Subseg) {
	if s.dead {
		return
	}
	s.dead = true
	m.subsegs[s.hash] = nil
	m.deadSubsegs++
}

// Squeeze the nil slots out of the triangle arena. Handles stay valid, since
// they hold pointers; only hashes change. Only call this between operations,
// never while something is walking the arena.
func (m *Mesh) compactTriangles() {
	live := m.triangles[:0]
	for _, t := range m.triangles {
		if t != nil {
			t.hash = len(live)
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.triangles); i++ {
		m.triangles[i] = nil
	}
	m.triangles = live
	m.deadTriangles = 0
}

func (m *Mesh) compactSubsegs() {
	live := m.subsegs[:0]
	for _, s := range m.subsegs {
		if s != nil {
			s.hash = len(live)
			live = append(live, s)
		}
	}
	for i := len(live); i < len(m.subsegs); i++ {
		m.subsegs[i] = nil
	}
	m.subsegs = live
	m.deadSubsegs = 0
}

// Detach the edge from its neighbor, making it a boundary edge. The neighbor's
// side is left alone.
func (m *Mesh) dissolve(o Otri) {
	o.tri.neighbors[o.orient] = Otri{m.dummytri, 0}
}

// Remove the subsegment from the triangle edge.
func (m *Mesh) segDissolve(o Otri) {
	o.tri.subsegs[o.orient] = Osub{m.dummysub, 0}
}

// Remove the triangle from the subsegment side.
func (m *Mesh) triDissolve(os Osub) {
	os.seg.triangles[os.orient] = Otri{m.dummytri, 0}
}

// Detach a subsegment from its neighbor along the segment.
func (m *Mesh) subsegDissolve(os Osub) {
	os.seg.subsegs[os.orient] = Osub{m.dummysub, 0}
}

// A handle on some hull edge, with the outside of the mesh across it.
func (m *Mesh) hullEdge() Otri {
	return Otri{m.dummytri, 0}.Sym()
}

func (m *Mesh) isInfinite(v *Vertex) bool {
	return v != nil && (v == m.infvertex1 || v == m.infvertex2 || v == m.infvertex3)
}

func (m *Mesh) orient(a, b, c *Vertex) float64 {
	m.stats.OrientationTests++
	return Orient2D(a.Point, b.Point, c.Point)
}

func (m *Mesh) incircle(a, b, c, d *Vertex) float64 {
	m.stats.InCircleTests++
	return InCircle(a.Point, b.Point, c.Point, d.Point)
}

func (m *Mesh) warnf(format string, args ...interface{}) {
	m.behavior.Logger.Printf(format, args...)
}

// Guard for the recursive routines. Call the returned function on exit.
func (m *Mesh) enter(routine string) func() {
	m.depth++
	if m.depth > MaxRecursionDepth {
		m.depth = 0
		topologyf("%s exceeded the recursion limit of %d", routine, MaxRecursionDepth)
	}
	return func() { m.depth-- }
}

const MaxRecursionDepth = 10000

// Point every live vertex at a triangle it is the origin of.
func (m *Mesh) MakeVertexMap() {
	for _, t := range m.triangles {
		if t == nil {
			continue
		}
		for orient := 0; orient < 3; orient++ {
			o := Otri{t, orient}
			if org := o.Org(); org != nil {
				org.tri = o
			}
		}
	}
}

// Assign dense ids, in arena order, to the live vertices, triangles and
// subsegments. Dead and undead vertices get id -1.
func (m *Mesh) Renumber() {
	m.compactTriangles()
	m.compactSubsegs()
	id := 0
	for _, v := range m.vertices {
		if v == nil {
			continue
		}
		if v.IsLive() {
			v.ID = id
			id++
		} else {
			v.ID = -1
		}
	}
	for i, t := range m.triangles {
		t.ID = i
	}
	for i, s := range m.subsegs {
		s.ID = i
	}
	m.nextTriangleID = len(m.triangles)
	m.nextSubsegID = len(m.subsegs)
}

// Live triangles, in arena order.
func (m *Mesh) Triangles() []*Triangle {
	result := make([]*Triangle, 0, len(m.triangles)-m.deadTriangles)
	for _, t := range m.triangles {
		if t != nil {
			result = append(result, t)
		}
	}
	return result
}

// Live vertices, in arena order.
func (m *Mesh) Vertices() []*Vertex {
	result := make([]*Vertex, 0, len(m.vertices))
	for _, v := range m.vertices {
		if v != nil && v.IsLive() {
			result = append(result, v)
		}
	}
	return result
}

// Live subsegments, in arena order.
func (m *Mesh) Segments() []*Subseg {
	result := make([]*Subseg, 0, len(m.subsegs)-m.deadSubsegs)
	for _, s := range m.subsegs {
		if s != nil {
			result = append(result, s)
		}
	}
	return result
}

// An undirected mesh edge.
type MeshEdge struct {
	P0, P1 *Vertex
	// Boundary marker of the subsegment on the edge, or zero.
	Label int
	// Is there a subsegment on this edge?
	Constrained bool
	// Is this a boundary edge?
	Boundary bool
}

// Every edge exactly once.
func (m *Mesh) Edges() []MeshEdge {
	var result []MeshEdge
	for _, t := range m.triangles {
		if t == nil {
			continue
		}
		for orient := 0; orient < 3; orient++ {
			o := Otri{t, orient}
			neighbor := o.Sym()
			// Visit each interior edge from the triangle with the smaller hash.
			if !neighbor.IsEmpty() && neighbor.tri.hash < t.hash {
				continue
			}
			edge := MeshEdge{P0: o.Org(), P1: o.Dest(), Boundary: neighbor.IsEmpty()}
			if sub := o.SegPivot(); !sub.IsEmpty() {
				edge.Constrained = true
				edge.Label = sub.seg.Label
			}
			result = append(result, edge)
		}
	}
	return result
}

func (m *Mesh) NumberOfEdges() int {
	return m.edges
}

func (m *Mesh) HullSize() int {
	return m.hullsize
}

func (m *Mesh) Bounds() r2.Rect {
	return m.bounds
}

func (m *Mesh) Holes() []r2.Point {
	return m.holes
}

func (m *Mesh) Regions() []RegionPointer {
	return m.regions
}

func (m *Mesh) Statistics() Statistics {
	stats := m.stats
	stats.Vertices = len(m.Vertices())
	stats.Triangles = len(m.triangles) - m.deadTriangles
	stats.Subsegments = len(m.subsegs) - m.deadSubsegs
	stats.HullSize = m.hullsize
	stats.Edges = m.edges
	return stats
}

// Vertex by input index, resolving duplicates to the live vertex at the same
// position.
func (m *Mesh) inputVertex(i int) *Vertex {
	if i < 0 || i >= m.invertices || i >= len(m.vertices) {
		return nil
	}
	v := m.vertices[i]
	for v != nil && v.alias != nil {
		v = v.alias
	}
	return v
}

// Compact the arenas once enough of them is dead, and refresh the edge count.
func (m *Mesh) settle() {
	if m.deadTriangles > 1024 && m.deadTriangles > len(m.triangles)/2 {
		m.compactTriangles()
	}
	if m.deadSubsegs > 1024 && m.deadSubsegs > len(m.subsegs)/2 {
		m.compactSubsegs()
	}
	m.updateEdgeCount()
}

func (m *Mesh) updateEdgeCount() {
	m.edges = (3*(len(m.triangles)-m.deadTriangles) + m.hullsize) / 2
}
