package internal

import (
	"io"
	"log"
	"math"
)

// Segment splitting policy for ConstraintOptions.SegmentSplitting.
const (
	// Any subsegment may be split.
	SplitAlways = 0
	// Subsegments on the mesh boundary are never split. Internal ones may be.
	SplitInternalOnly = 1
	// No subsegment is ever split.
	SplitNever = 2
)

type ConstraintOptions struct {
	// Refine until every triangle is Delaunay in the true sense (no vertex in
	// any circumcircle), splitting subsegments as needed.
	ConformingDelaunay bool `json:"conformingDelaunay" yaml:"conformingDelaunay"`
	// Keep the convex hull rather than carving away concavities.
	Convex bool `json:"convex" yaml:"convex"`
	// One of SplitAlways, SplitInternalOnly, SplitNever.
	SegmentSplitting int `json:"segmentSplitting" yaml:"segmentSplitting"`
}

// UserTest reports whether a triangle of the given area is bad and should be
// split.
type UserTest func(t *Triangle, area float64) bool

type QualityOptions struct {
	// Minimum angle in degrees.
	MinimumAngle float64 `json:"minimumAngle" yaml:"minimumAngle"`
	// Maximum angle in degrees. Zero disables the test.
	MaximumAngle float64 `json:"maximumAngle" yaml:"maximumAngle"`
	// Maximum triangle area. Zero disables the test.
	MaximumArea float64 `json:"maximumArea" yaml:"maximumArea"`
	// Use the per-region area limits given by region pointers.
	VariableArea bool `json:"variableArea" yaml:"variableArea"`
	// Steiner point budget. Zero means the library default (unlimited), and
	// negative values are unlimited.
	SteinerPoints int      `json:"steinerPoints" yaml:"steinerPoints"`
	UserTest      UserTest `json:"-" yaml:"-"`
}

// Logger receives the warnings the kernel would otherwise swallow. *log.Logger
// satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

var discardLogger = log.New(io.Discard, "", 0)

// Behavior is the per-mesh configuration derived from the option structs.
type Behavior struct {
	Poly               bool
	Quality            bool
	Convex             bool
	ConformingDelaunay bool
	NoBisect           int
	SteinerPoints      int

	MinAngle float64
	MaxAngle float64
	MaxArea  float64
	VarArea  bool
	UserTest UserTest

	// Square of the cosine of the minimum angle.
	goodAngle float64
	// Cosine of the maximum angle.
	maxGoodAngle float64
	offConstant  float64
	fixedArea    bool

	Logger Logger
}

func NewBehavior() Behavior {
	return Behavior{Logger: discardLogger, goodAngle: 1, maxGoodAngle: -1}
}

func (b *Behavior) applyConstraintOptions(options *ConstraintOptions) {
	if options == nil {
		return
	}
	b.ConformingDelaunay = options.ConformingDelaunay
	if b.ConformingDelaunay {
		b.Quality = true
	}
	b.Convex = options.Convex
	b.NoBisect = options.SegmentSplitting
	if b.NoBisect < SplitAlways || b.NoBisect > SplitNever {
		fatalf("invalid segment splitting mode %d", options.SegmentSplitting)
	}
}

func (b *Behavior) applyQualityOptions(options *QualityOptions) {
	if options == nil {
		return
	}
	if options.MinimumAngle < 0 || options.MinimumAngle > 60 {
		fatalf("minimum angle %g is outside [0, 60]", options.MinimumAngle)
	}
	if options.MaximumAngle < 0 || options.MaximumAngle > 180 {
		fatalf("maximum angle %g is outside [0, 180]", options.MaximumAngle)
	}
	if options.MaximumArea < 0 {
		fatalf("maximum area %g is negative", options.MaximumArea)
	}
	b.Quality = true
	b.MinAngle = options.MinimumAngle
	b.MaxAngle = options.MaximumAngle
	b.MaxArea = options.MaximumArea
	b.fixedArea = options.MaximumArea > 0
	b.VarArea = options.VariableArea
	b.UserTest = options.UserTest
	b.SteinerPoints = options.SteinerPoints
	b.updateAngles()
}

func (b *Behavior) updateAngles() {
	b.goodAngle = math.Cos(b.MinAngle * math.Pi / 180.0)
	if b.goodAngle == 1.0 {
		b.offConstant = 0
	} else {
		b.offConstant = 0.475 * math.Sqrt((1.0+b.goodAngle)/(1.0-b.goodAngle))
	}
	b.goodAngle *= b.goodAngle
	if b.MaxAngle > 0 && b.MaxAngle < 180 {
		b.maxGoodAngle = math.Cos(b.MaxAngle * math.Pi / 180.0)
	} else {
		b.maxGoodAngle = -1
	}
}

// Are there any triangle quality tests to run?
func (b *Behavior) hasTriangleTests() bool {
	return b.MinAngle > 0 || (b.MaxAngle > 0 && b.MaxAngle < 180) || b.fixedArea || b.VarArea || b.UserTest != nil
}
