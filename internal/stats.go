package internal

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics of one mesh, accumulated across every operation run on it.
type Statistics struct {
	Vertices    int `yaml:"vertices"`
	Triangles   int `yaml:"triangles"`
	Subsegments int `yaml:"subsegments"`
	Edges       int `yaml:"edges"`
	HullSize    int `yaml:"hullSize"`

	OrientationTests int `yaml:"orientationTests"`
	InCircleTests    int `yaml:"inCircleTests"`
	Flips            int `yaml:"flips"`

	// Steiner points inserted at circumcenters and on segments.
	SteinerPoints   int `yaml:"steinerPoints"`
	SegmentSplits   int `yaml:"segmentSplits"`
	DuplicatePoints int `yaml:"duplicatePoints"`

	// Left over when refinement stopped early.
	UnresolvedBadTriangles       int  `yaml:"unresolvedBadTriangles"`
	UnresolvedEncroachedSegments int  `yaml:"unresolvedEncroachedSegments"`
	SteinerBudgetExhausted       bool `yaml:"steinerBudgetExhausted"`
}

// Shape summary of a mesh. Angles are in degrees.
type QualityMeasure struct {
	MinAngle  float64 `yaml:"minAngle"`
	MaxAngle  float64 `yaml:"maxAngle"`
	MeanAngle float64 `yaml:"meanMinAngle"`

	MinArea    float64 `yaml:"minArea"`
	MaxArea    float64 `yaml:"maxArea"`
	TotalArea  float64 `yaml:"totalArea"`
	AreaStdDev float64 `yaml:"areaStdDev"`

	// Longest edge over shortest altitude, worst over the mesh.
	MaxAspectRatio float64 `yaml:"maxAspectRatio"`

	// Counts of triangles by minimum angle, in 10 degree bins from 0 to 60.
	MinAngleHistogram []float64 `yaml:"minAngleHistogram"`
}

// Angles of a triangle, in degrees, at corners 0, 1, 2.
func TriangleAngles(t *Triangle) [3]float64 {
	var angles [3]float64
	for i := 0; i < 3; i++ {
		p := t.vertices[i].Point
		a := t.vertices[(i+1)%3].Point.Sub(p)
		b := t.vertices[(i+2)%3].Point.Sub(p)
		angles[i] = math.Atan2(math.Abs(a.Cross(b)), a.Dot(b)) * 180 / math.Pi
	}
	return angles
}

func MeasureQuality(m *Mesh) QualityMeasure {
	triangles := m.Triangles()
	var q QualityMeasure
	if len(triangles) == 0 {
		return q
	}

	minAngles := make([]float64, len(triangles))
	maxAngles := make([]float64, len(triangles))
	areas := make([]float64, len(triangles))
	aspects := make([]float64, len(triangles))
	for i, t := range triangles {
		angles := TriangleAngles(t)
		minAngles[i] = floats.Min(angles[:])
		maxAngles[i] = floats.Max(angles[:])
		areas[i] = t.SignedArea()

		var longest float64
		for j := 0; j < 3; j++ {
			longest = math.Max(longest, t.vertices[j].Point.Sub(t.vertices[(j+1)%3].Point).Norm())
		}
		// Shortest altitude is the one onto the longest edge.
		if areas[i] > 0 {
			aspects[i] = longest * longest / (2 * areas[i])
		} else {
			aspects[i] = math.Inf(1)
		}
	}

	q.MinAngle = floats.Min(minAngles)
	q.MaxAngle = floats.Max(maxAngles)
	q.MeanAngle = stat.Mean(minAngles, nil)
	q.MinArea = floats.Min(areas)
	q.MaxArea = floats.Max(areas)
	q.TotalArea = floats.Sum(areas)
	if len(areas) > 1 {
		q.AreaStdDev = stat.StdDev(areas, nil)
	}
	q.MaxAspectRatio = floats.Max(aspects)

	sorted := append([]float64(nil), minAngles...)
	sort.Float64s(sorted)
	dividers := []float64{0, 10, 20, 30, 40, 50, 60 + Tolerance}
	q.MinAngleHistogram = stat.Histogram(nil, dividers, sorted, nil)
	return q
}
