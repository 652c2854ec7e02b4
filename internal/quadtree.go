package internal

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// QuadTree is a static point location index over the triangles of a finished
// mesh. It does not track changes to the mesh; rebuild it after any edit.
//
// A node is split when it is shallower than MaxDepth and holds more than
// SizeBound triangles. A triangle goes into every quadrant it touches.
type QuadTree struct {
	Root      *QuadNode
	MaxDepth  int
	SizeBound int

	triangles []*Triangle
}

const (
	DefaultQuadTreeMaxDepth  = 10
	DefaultQuadTreeSizeBound = 10
)

// Quadrant indices. Points on the pivot lines go north and west.
const (
	SW = iota
	SE
	NW
	NE
)

type QuadNode struct {
	Bounds r2.Rect
	Pivot  r2.Point
	Depth  int
	// Nil for leaves.
	Children [4]*QuadNode
	// Indices into the tree's triangle list.
	Triangles []int

	tree *QuadTree
	// Quadrants the triangle being distributed has been added to.
	added [4]bool
}

func NewQuadTree(mesh *Mesh, maxDepth, sizeBound int) *QuadTree {
	if maxDepth <= 0 {
		maxDepth = DefaultQuadTreeMaxDepth
	}
	if sizeBound <= 0 {
		sizeBound = DefaultQuadTreeSizeBound
	}
	tree := &QuadTree{
		MaxDepth:  maxDepth,
		SizeBound: sizeBound,
		triangles: mesh.Triangles(),
	}
	tree.Root = tree.newNode(mesh.Bounds(), 0)
	tree.Root.Triangles = make([]int, len(tree.triangles))
	for i := range tree.triangles {
		tree.Root.Triangles[i] = i
	}
	tree.Root.split()
	return tree
}

func (tree *QuadTree) newNode(bounds r2.Rect, depth int) *QuadNode {
	return &QuadNode{
		Bounds: bounds,
		Pivot:  bounds.Center(),
		Depth:  depth,
		tree:   tree,
	}
}

// The triangle containing the point (boundary inclusive), or nil.
func (tree *QuadTree) Query(x, y float64) *Triangle {
	p := r2.Point{X: x, Y: y}
	for _, i := range tree.Root.find(p) {
		t := tree.triangles[i]
		if pointInTriangle(p, t.vertices[0].Point, t.vertices[1].Point, t.vertices[2].Point) {
			return t
		}
	}
	return nil
}

func (tree *QuadTree) Triangles() []*Triangle {
	return tree.triangles
}

func (node *QuadNode) IsLeaf() bool {
	return node.Children[0] == nil
}

func (node *QuadNode) ChildNodes() []*QuadNode {
	if node.IsLeaf() {
		return nil
	}
	return node.Children[:]
}

func (node *QuadNode) find(p r2.Point) []int {
	child := node.Children[node.quadrant(p)]
	if child == nil {
		return node.Triangles
	}
	return child.find(p)
}

func (node *QuadNode) quadrant(p r2.Point) int {
	q := NW
	if p.Y < node.Pivot.Y {
		q = SW
	}
	if p.X > node.Pivot.X {
		q++
	}
	return q
}

// Split the node into quadrants and distribute its triangles among them,
// recursing into quadrants that are still too full.
//
//	+------+------+
//	|  NW  |  NE  |
//	+----pivot----+
//	|  SW  |  SE  |
//	+------+------+
func (node *QuadNode) split() {
	b := node.Bounds
	c := node.Pivot
	depth := node.Depth + 1
	node.Children[SW] = node.tree.newNode(r2.Rect{X: r1.Interval{Lo: b.X.Lo, Hi: c.X}, Y: r1.Interval{Lo: b.Y.Lo, Hi: c.Y}}, depth)
	node.Children[SE] = node.tree.newNode(r2.Rect{X: r1.Interval{Lo: c.X, Hi: b.X.Hi}, Y: r1.Interval{Lo: b.Y.Lo, Hi: c.Y}}, depth)
	node.Children[NW] = node.tree.newNode(r2.Rect{X: r1.Interval{Lo: b.X.Lo, Hi: c.X}, Y: r1.Interval{Lo: c.Y, Hi: b.Y.Hi}}, depth)
	node.Children[NE] = node.tree.newNode(r2.Rect{X: r1.Interval{Lo: c.X, Hi: b.X.Hi}, Y: r1.Interval{Lo: c.Y, Hi: b.Y.Hi}}, depth)

	for _, i := range node.Triangles {
		t := node.tree.triangles[i]
		node.distribute(i, [3]r2.Point{t.vertices[0].Point, t.vertices[1].Point, t.vertices[2].Point})
	}

	for _, child := range node.Children {
		if len(child.Triangles) > node.tree.SizeBound && depth < node.tree.MaxDepth {
			child.split()
		}
	}
}

func (node *QuadNode) distribute(index int, tri [3]r2.Point) {
	node.added = [4]bool{}
	if pointInTriangle(node.Pivot, tri[0], tri[1], tri[2]) {
		for q := range node.Children {
			node.add(index, q)
		}
		return
	}

	found := false
	k := 2
	for i := 0; i < 3; k, i = i, i+1 {
		dx := tri[i].X - tri[k].X
		dy := tri[i].Y - tri[k].Y
		if dx != 0 {
			found = node.crossVertical(index, tri[k], dx, dy) || found
		}
		if dy != 0 {
			found = node.crossHorizontal(index, tri[k], dx, dy) || found
		}
	}

	if !found {
		// Entirely inside one quadrant.
		node.add(index, node.quadrant(tri[0]))
	}
}

// Does a parameter along an edge fall within the edge, give or take the
// tolerance?
func onEdge(t float64) bool {
	return t < 1+Tolerance && t > -Tolerance
}

// Add the triangle to the quadrants on either side of wherever its edge from
// start along (dx, dy) crosses one of the vertical lines of the node.
func (node *QuadNode) crossVertical(index int, start r2.Point, dx, dy float64) bool {
	found := false
	cross := func(x float64, south, north []int) {
		t := (x - start.X) / dx
		if !onEdge(t) {
			return
		}
		y := start.Y + t*dy
		if y < node.Pivot.Y && y >= node.Bounds.Y.Lo {
			for _, q := range south {
				node.add(index, q)
			}
			found = true
		} else if y <= node.Bounds.Y.Hi {
			for _, q := range north {
				node.add(index, q)
			}
			found = true
		}
	}
	cross(node.Pivot.X, []int{SW, SE}, []int{NW, NE})
	cross(node.Bounds.X.Lo, []int{SW}, []int{NW})
	cross(node.Bounds.X.Hi, []int{SE}, []int{NE})
	return found
}

func (node *QuadNode) crossHorizontal(index int, start r2.Point, dx, dy float64) bool {
	found := false
	cross := func(y float64, east, west []int) {
		t := (y - start.Y) / dy
		if !onEdge(t) {
			return
		}
		x := start.X + t*dx
		if x > node.Pivot.X && x <= node.Bounds.X.Hi {
			for _, q := range east {
				node.add(index, q)
			}
			found = true
		} else if x >= node.Bounds.X.Lo {
			for _, q := range west {
				node.add(index, q)
			}
			found = true
		}
	}
	cross(node.Pivot.Y, []int{SE, NE}, []int{SW, NW})
	cross(node.Bounds.Y.Lo, []int{SE}, []int{SW})
	cross(node.Bounds.Y.Hi, []int{NE}, []int{NW})
	return found
}

func (node *QuadNode) add(index, quadrant int) {
	if !node.added[quadrant] {
		node.Children[quadrant].Triangles = append(node.Children[quadrant].Triangles, index)
		node.added[quadrant] = true
	}
}

// Point in triangle test, inclusive of the boundary, for either winding.
func pointInTriangle(p, t0, t1, t2 r2.Point) bool {
	d0 := t1.Sub(t0)
	d1 := t2.Sub(t0)
	d2 := p.Sub(t0)

	// Solve d2 = s*d0 + v*d1 using the perpendiculars of d0 and d1.
	c0 := d0.Ortho()
	c1 := d1.Ortho()
	s := d2.Dot(c1) / d0.Dot(c1)
	v := d2.Dot(c0) / d1.Dot(c0)
	return s >= 0 && v >= 0 && s+v <= 1
}

// Iterate over every node of the tree. Traversal order is not defined. The
// channel must be drained, or the goroutine feeding it never exits.
func IterateQuadTree(root *QuadNode) chan *QuadNode {
	ch := make(chan *QuadNode)
	go func() {
		stack := []*QuadNode{root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, node.ChildNodes()...)
			ch <- node
		}
		close(ch)
	}()
	return ch
}
