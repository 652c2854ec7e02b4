package internal

import "math"

const Tolerance = 1e-6

// Tolerance based equality, used by the quadtree and by geometric helpers that
// work on derived (not input) coordinates. The mesh kernel itself compares
// input coordinates exactly.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Stack of oriented triangles. Used as the flip history for undoing the last
// vertex insertion, and as the worklist for flood fills.
type OtriStack []Otri

func (s *OtriStack) Push(o Otri) {
	*s = append(*s, o)
}

func (s *OtriStack) Pop() Otri {
	if len(*s) == 0 {
		return Otri{}
	}
	o := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return o
}

func (s *OtriStack) Peek() Otri {
	if len(*s) == 0 {
		return Otri{}
	}
	return (*s)[len(*s)-1]
}

func (s *OtriStack) Empty() bool {
	return len(*s) == 0
}

func (s *OtriStack) Clear() {
	*s = (*s)[:0]
}

// Squared distance between two vertices.
func sqDist(a, b *Vertex) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
