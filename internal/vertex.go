package internal

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/trimesh/internal/dbg"
)

type VertexType int

const (
	InputVertex VertexType = iota
	// A vertex inserted on a segment, either where two segments cross or to
	// split an encroached subsegment.
	SegmentVertex
	// A Steiner point inserted in the interior of the mesh.
	FreeVertex
	DeadVertex
	// A vertex that is no longer part of the triangulation (a duplicate, or a
	// vertex eaten along with every triangle around it), but which callers may
	// still hold.
	UndeadVertex
)

func (t VertexType) String() string {
	return [...]string{"input", "segment", "free", "dead", "undead"}[t]
}

// Vertices are referenced by pointer everywhere, and are never moved once they
// are part of a mesh.
type Vertex struct {
	r2.Point
	// Renumbered id. Dense over the live vertices after Mesh.Renumber.
	ID int
	// Boundary marker.
	Label      int
	Type       VertexType
	Attributes []float64

	// Arena slot. Never reused, so the id space only grows.
	hash int
	// A triangle whose origin is this vertex, if known. May be stale.
	tri Otri
	// For an undead duplicate, the live vertex at the same position.
	alias *Vertex
}

func NewVertex(x, y float64) *Vertex {
	return &Vertex{Point: r2.Point{X: x, Y: y}, ID: -1}
}

func (v *Vertex) IsLive() bool {
	return v.Type != DeadVertex && v.Type != UndeadVertex
}

// Same position as another vertex (exact comparison).
func (v *Vertex) Coincides(other *Vertex) bool {
	return v.X == other.X && v.Y == other.Y
}

// Interpolate attributes along the segment a-b.
func interpolateAttributes(a, b *Vertex, t float64) []float64 {
	if len(a.Attributes) == 0 || len(a.Attributes) != len(b.Attributes) {
		return nil
	}
	result := make([]float64, len(a.Attributes))
	for i := range result {
		result[i] = a.Attributes[i] + t*(b.Attributes[i]-a.Attributes[i])
	}
	return result
}

func (v *Vertex) String() string {
	if v == nil {
		return "Ø"
	}
	name := dbg.Name(v)
	switch v.Type {
	case SegmentVertex:
		name = aurora.Yellow(name).String()
	case FreeVertex:
		name = aurora.Cyan(name).String()
	case DeadVertex, UndeadVertex:
		name = aurora.Red(name).String()
	default:
		name = aurora.Green(name).String()
	}
	return fmt.Sprintf("%s#%d(%g, %g)", name, v.ID, v.X, v.Y)
}
