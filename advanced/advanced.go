// Direct access to the mesh kernel's topology, for callers who want to walk
// or edit a mesh edge by edge instead of going through the top level API.
//
// Everything here is the kernel's own type. Methods on Mesh, Otri and Osub
// panic with a *MeshError on bad input, so wrap calls with HandlePanicRecover
// the way the functions in this package do.
package advanced

import "github.com/osuushi/trimesh/internal"

type Mesh = internal.Mesh
type Vertex = internal.Vertex
type Triangle = internal.Triangle
type Subseg = internal.Subseg

// Oriented triangle: a triangle plus one of its three edges.
type Otri = internal.Otri

// Oriented subsegment.
type Osub = internal.Osub

type InsertResult = internal.InsertResult

const (
	Successful  = internal.Successful
	Encroaching = internal.Encroaching
	Violating   = internal.Violating
	Duplicate   = internal.Duplicate
)

type Statistics = internal.Statistics
type QualityMeasure = internal.QualityMeasure

type MeshError = internal.MeshError
type ErrorKind = internal.ErrorKind

const (
	ConfigurationError = internal.ConfigurationError
	TopologyError      = internal.TopologyError
)

// Convert a recovered panic into an error. Panics that aren't mesh errors are
// re-raised.
func HandlePanicRecover(r interface{}) error {
	return internal.HandlePanicRecover(r)
}

// Insert a free vertex into a finished mesh. Vertices on a subsegment, outside
// the mesh, or on an existing vertex are not inserted. A vertex that encroaches
// upon a subsegment is inserted, and the result is Encroaching.
func InsertVertex(m *Mesh, x, y float64) (v *Vertex, result InsertResult, err error) {
	defer func() {
		recoveredErr := HandlePanicRecover(recover())
		if recoveredErr != nil {
			v = nil
			err = recoveredErr
		}
	}()
	v = internal.NewVertex(x, y)
	result = m.InsertPoint(v)
	return v, result, nil
}

// The triangle oriented on the edge opposite corner orient, so that its
// origin is corner orient+1.
func OtriOf(t *Triangle, orient int) Otri {
	return internal.OtriOf(t, orient)
}

// Walk every edge leaving v, counterclockwise, starting from any triangle
// with v as its origin. Stops at the mesh boundary, so for a boundary vertex
// the walk should start from the clockwise-most edge to see them all.
func EdgesFrom(start Otri, visit func(edge Otri)) {
	edge := start
	for {
		visit(edge)
		edge = edge.Onext()
		if edge.IsEmpty() || edge.Equal(start) {
			return
		}
	}
}

func MeshStatistics(m *Mesh) Statistics {
	return m.Statistics()
}

func MeasureQuality(m *Mesh) QualityMeasure {
	return internal.MeasureQuality(m)
}
