// Constrained Delaunay triangulation and quality mesh generation for Go.
//
// This package builds triangle meshes of planar domains: a point set, or a
// planar straight-line graph of points and segments with holes and regions.
// Meshes can be refined until no angle is smaller or no triangle larger than
// a bound, located into with a quadtree, and turned into their Voronoi dual.
//
// The topology itself is exposed in the advanced package.
package trimesh

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/osuushi/trimesh/internal"
)

type Vertex = internal.Vertex
type Triangle = internal.Triangle
type Subseg = internal.Subseg
type Mesh = internal.Mesh
type MeshEdge = internal.MeshEdge

type Polygon = internal.Polygon
type Edge = internal.Edge
type RegionPointer = internal.RegionPointer
type Contour = internal.Contour
type ContourList = internal.ContourList
type Element = internal.Element

type Behavior = internal.Behavior
type Logger = internal.Logger
type ConstraintOptions = internal.ConstraintOptions
type QualityOptions = internal.QualityOptions
type UserTest = internal.UserTest

type Statistics = internal.Statistics
type QualityMeasure = internal.QualityMeasure

type DCEL = internal.DCEL
type Face = internal.Face
type HalfEdge = internal.HalfEdge
type HalfEdgeVertex = internal.HalfEdgeVertex

type QuadTree = internal.QuadTree

type ClipOperation = internal.ClipOperation

type DrawOptions = internal.DrawOptions

const (
	ClipIntersection = internal.ClipIntersection
	ClipUnion        = internal.ClipUnion
	ClipDifference   = internal.ClipDifference
	ClipXor          = internal.ClipXor
)

const (
	SplitAlways       = internal.SplitAlways
	SplitInternalOnly = internal.SplitInternalOnly
	SplitNever        = internal.SplitNever
)

func NewVertex(x, y float64) *Vertex {
	return internal.NewVertex(x, y)
}

// Default per-mesh configuration: no quality constraints, warnings discarded.
func NewBehavior() Behavior {
	return internal.NewBehavior()
}

// Errors returned by this package are either configuration errors, meaning
// the input was bad, or topology errors, meaning the mesh reached a state
// that a valid input can't produce.
func IsConfigurationError(err error) bool {
	return internal.IsConfigurationError(err)
}

func IsTopologyError(err error) bool {
	return internal.IsTopologyError(err)
}

// Build the Delaunay triangulation of a set of points.
//
// There must be at least three points, and they must not all be collinear.
// Points that coincide with an earlier point are skipped.
func Triangulate(points []*Vertex) (*Mesh, error) {
	return TriangulateWith(points, NewBehavior())
}

// Triangulate with an explicit behavior, for example to set a Logger.
func TriangulateWith(points []*Vertex, behavior Behavior) (result *Mesh, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	if behavior.Logger == nil {
		behavior.Logger = NewBehavior().Logger
	}
	return internal.Triangulate(points, behavior), nil
}

// Insert the segments of a polygon into a mesh of its points, then carve
// holes and concavities and mark regions. With quality options, the mesh is
// refined as well. Either options argument may be nil.
func ApplyConstraints(m *Mesh, poly *Polygon, options *ConstraintOptions, quality *QualityOptions) (err error) {
	defer func() {
		err = internal.HandlePanicRecover(recover())
	}()
	m.ApplyConstraints(poly, options, quality)
	return nil
}

// Refine an existing mesh. Refinement stops early if the Steiner point budget
// runs out; that isn't an error, but it shows up in the mesh Statistics.
func Refine(m *Mesh, quality *QualityOptions) (err error) {
	defer func() {
		err = internal.HandlePanicRecover(recover())
	}()
	m.Refine(quality)
	return nil
}

// Triangulate the points of a polygon and apply its constraints.
func MeshPolygon(poly *Polygon, options *ConstraintOptions, quality *QualityOptions) (*Mesh, error) {
	return MeshPolygonWith(poly, NewBehavior(), options, quality)
}

func MeshPolygonWith(poly *Polygon, behavior Behavior, options *ConstraintOptions, quality *QualityOptions) (*Mesh, error) {
	m, err := TriangulateWith(poly.Points, behavior)
	if err != nil {
		return nil, err
	}
	if err := ApplyConstraints(m, poly, options, quality); err != nil {
		return nil, err
	}
	return m, nil
}

// Mesh the region enclosed by a set of contours under the even-odd rule.
// Winding doesn't matter, and every contour's segments get the given label.
func MeshContours(list ContourList, label int, options *ConstraintOptions, quality *QualityOptions) (*Mesh, error) {
	return MeshContoursWith(list, label, NewBehavior(), options, quality)
}

func MeshContoursWith(list ContourList, label int, behavior Behavior, options *ConstraintOptions, quality *QualityOptions) (result *Mesh, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return MeshPolygonWith(list.Polygon(label), behavior, options, quality)
}

// Read the <polygon> elements of an SVG document as contours.
func ReadSVG(r io.Reader) (ContourList, error) {
	return internal.ReadSVG(r)
}

// Build the Voronoi diagram of the mesh vertices. Unbounded diagrams have
// infinite vertices at the ends of the rays of boundary cells; bounded ones
// are clipped to the meshed domain. Bounded cells tile the domain only when no
// boundary subsegment is encroached, as in a conforming Delaunay mesh.
func ToVoronoi(m *Mesh, bounded bool) (result *DCEL, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	if bounded {
		return internal.NewBoundedVoronoi(m), nil
	}
	return internal.NewVoronoi(m), nil
}

// Build a quadtree for point location. Zero or negative limits use the
// defaults. The tree must be rebuilt after the mesh changes.
func NewQuadTree(m *Mesh, maxDepth, sizeBound int) (result *QuadTree, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.NewQuadTree(m, maxDepth, sizeBound), nil
}

// A regular grid mesh of a rectangle, nx by ny cells, two triangles per cell.
func StructuredMesh(bounds r2.Rect, nx, ny int) (result *Mesh, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.StructuredMesh(bounds, nx, ny, NewBehavior()), nil
}

// Build a mesh from explicit counterclockwise triangles over the points of a
// polygon.
func ToMesh(poly *Polygon, elements []Element) (result *Mesh, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.ToMesh(poly, elements, NewBehavior()), nil
}

// Combine two sets of contours with a boolean operation, giving a polygon
// ready for MeshPolygon.
func ClipPolygons(subject, clip []Contour, op ClipOperation, label int) (result *Polygon, err error) {
	defer func() {
		recoveredErr := internal.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.ClipPolygons(subject, clip, op, label), nil
}

func MeasureQuality(m *Mesh) QualityMeasure {
	return internal.MeasureQuality(m)
}

// Outward unit normals of the boundary vertices.
func VertexNormals(m *Mesh) map[*Vertex]r2.Point {
	return internal.VertexNormals(m)
}

// Render a mesh, triangles shaded by region and segments highlighted.
func DrawMesh(m *Mesh, options DrawOptions) *gg.Context {
	return internal.DrawMesh(m, options)
}

// Render a Voronoi diagram over the mesh it was built from.
func DrawVoronoi(m *Mesh, d *DCEL, options DrawOptions) *gg.Context {
	return internal.DrawVoronoi(m, d, options)
}
