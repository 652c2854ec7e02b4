package internal

import "github.com/golang/geo/r2"

// A regular grid triangulation of a rectangle, nx cells across and ny cells
// up, with the diagonals alternating in a checkerboard. The boundary of the
// rectangle is made of segments.
func StructuredMesh(bounds r2.Rect, nx, ny int, behavior Behavior) *Mesh {
	if nx < 1 || ny < 1 {
		fatalf("a structured mesh needs at least one cell each way, got %dx%d", nx, ny)
	}
	if bounds.IsEmpty() || bounds.X.Length() <= 0 || bounds.Y.Length() <= 0 {
		fatalf("a structured mesh needs bounds with positive area, got %v", bounds)
	}

	dx := bounds.X.Length() / float64(nx)
	dy := bounds.Y.Length() / float64(ny)

	// Points go column by column, bottom to top.
	poly := &Polygon{}
	for i := 0; i <= nx; i++ {
		x := bounds.X.Lo + float64(i)*dx
		for j := 0; j <= ny; j++ {
			poly.Points = append(poly.Points, NewVertex(x, bounds.Y.Lo+float64(j)*dy))
		}
	}
	index := func(i, j int) int {
		return i*(ny+1) + j
	}

	for j := 0; j < ny; j++ {
		poly.Segments = append(poly.Segments,
			Edge{P0: index(0, j), P1: index(0, j+1), Label: 1},
			Edge{P0: index(nx, j), P1: index(nx, j+1), Label: 1},
		)
	}
	for i := 0; i < nx; i++ {
		poly.Segments = append(poly.Segments,
			Edge{P0: index(i, 0), P1: index(i+1, 0), Label: 1},
			Edge{P0: index(i, ny), P1: index(i+1, ny), Label: 1},
		)
	}

	elements := make([]Element, 0, 2*nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			k := index(i, j)
			l := index(i+1, j)
			if (i+j)%2 == 0 {
				// Bottom left to top right
				elements = append(elements, Element{P0: k, P1: l, P2: l + 1}, Element{P0: k, P1: l + 1, P2: k + 1})
			} else {
				// Top left to bottom right
				elements = append(elements, Element{P0: k, P1: l, P2: k + 1}, Element{P0: l, P1: l + 1, P2: k + 1})
			}
		}
	}
	return ToMesh(poly, elements, behavior)
}
