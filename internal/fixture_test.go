package internal

import (
	"embed"
	"log"
	"math"
)

// Fixtures are available by name in this fixtures/ directory, sans extension.
// Each holds a single polygon, which comes out as a CCW Contour. If anything
// goes wrong, it panics.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) Contour {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	list, err := ReadSVG(fixture)
	if err != nil {
		log.Fatalf("Failed to read fixture %q: %v", name, err)
	}
	if len(list) > 1 {
		log.Fatalf("More than one polygon found in fixture %q", name)
	}
	points := list[0]

	// Ensure that the contour is CCW
	if !points.IsCCW() {
		points = points.Reverse()
	}
	return points
}

// Some ad hoc code specified fixtures

func makeStar(x, y, outerRadius, innerRadius float64) Contour {
	var points Contour
	for i := 0; i < 10; i++ {
		angle := 2 * math.Pi * float64(i) / 10
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		points = append(points, NewVertex(x+r*math.Cos(angle), y+r*math.Sin(angle)))
	}
	return points
}

func makeSquare(x0, y0, x1, y1 float64) Contour {
	return Contour{
		NewVertex(x0, y0),
		NewVertex(x1, y0),
		NewVertex(x1, y1),
		NewVertex(x0, y1),
	}
}

func SimpleStar() ContourList {
	return ContourList{makeStar(0, 0, 5, 2)}
}

func SquareWithHole() ContourList {
	return ContourList{
		makeSquare(-5, -5, 5, 5),
		makeSquare(-2, -2, 2, 2).Reverse(),
	}
}

func StarOutline() ContourList {
	return ContourList{
		makeStar(0, 0, 10, 5),
		makeStar(0, 0, 8, 3).Reverse(),
	}
}

func StarStripes() ContourList {
	// Multiple inset stars with alternating winding
	var list ContourList
	const outerRadius = 10
	const n = 8
	var scale float64 = 1
	const indentScale = 0.7
	const gapScale = 0.85

	for i := 0; i < n; i++ {
		star := makeStar(0, 0, outerRadius*scale, outerRadius*scale*indentScale)
		scale *= gapScale
		if i%2 == 1 {
			star = star.Reverse()
		}
		list = append(list, star)
	}
	return list
}

func MultiLayeredHoles() ContourList {
	// Multiple holes which contain filled shapes inside.
	return ContourList{
		// Outer star
		makeStar(0, 0, 10, 7),
		// Top hole
		makeStar(1.5, 5, 3, 2).Reverse(),
		// Top inner
		makeStar(1.5, 5, 2, 1),
		// Bottom hole
		makeStar(1.8, -5, 3, 2).Reverse(),
		// Bottom inner
		makeStar(1.8, -5, 2, 1),
		// Left hole
		makeStar(-3, 0, 4, 2).Reverse(),
		// Left inner
		makeStar(-3, 0, 3, 1),
	}
}
