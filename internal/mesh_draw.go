package internal

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/trimesh/internal/dbg"
)

// Padding around the mesh, so unbounded Voronoi edges stay visible
const drawPadding = 100

type DrawOptions struct {
	// Pixels per unit
	Scale float64
	// Label triangles with their debug names
	Names bool
}

// Set up a context covering bounds, with the origin at the bottom left.
func newDrawContext(bounds r2.Rect, scale float64) *gg.Context {
	width, height := DrawingSize(bounds, scale)
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-bounds.X.Lo, -bounds.Y.Lo)
	return c
}

// Render the mesh: triangles filled by region, subsegments highlighted.
func DrawMesh(m *Mesh, options DrawOptions) *gg.Context {
	if options.Scale <= 0 {
		options.Scale = 1
	}
	c := newDrawContext(m.Bounds(), options.Scale)
	c.SetLineWidth(1 / options.Scale)

	for _, t := range m.Triangles() {
		c.MoveTo(t.vertices[0].X, t.vertices[0].Y)
		c.LineTo(t.vertices[1].X, t.vertices[1].Y)
		c.LineTo(t.vertices[2].X, t.vertices[2].Y)
		c.ClosePath()
		hue := float64(t.Region%6) / 6
		c.SetRGBA(0.3+0.4*hue, 0.2, 1-0.6*hue, 0.5)
		c.FillPreserve()
		c.SetRGB(0, 1, 0)
		c.Stroke()
	}

	c.SetLineWidth(3 / options.Scale)
	c.SetRGB(1, 1, 0)
	for _, s := range m.Segments() {
		c.MoveTo(s.vertices[0].X, s.vertices[0].Y)
		c.LineTo(s.vertices[1].X, s.vertices[1].Y)
		c.Stroke()
	}

	if options.Names {
		for _, t := range m.Triangles() {
			x, y := t.Centroid()
			drawLabel(c, dbg.Name(t), x, y)
		}
	}
	return c
}

// Render a Voronoi diagram over the mesh it was built from. Unbounded edges
// are drawn out to their infinite vertices.
func DrawVoronoi(m *Mesh, d *DCEL, options DrawOptions) *gg.Context {
	if options.Scale <= 0 {
		options.Scale = 1
	}
	c := newDrawContext(m.Bounds(), options.Scale)
	c.SetLineWidth(1 / options.Scale)

	c.SetRGBA(0, 1, 0, 0.3)
	for _, e := range m.Edges() {
		c.MoveTo(e.P0.X, e.P0.Y)
		c.LineTo(e.P1.X, e.P1.Y)
		c.Stroke()
	}

	c.SetLineWidth(2 / options.Scale)
	c.SetRGB(0, 1, 1)
	for _, e := range d.HalfEdges {
		dest := e.Dest()
		// Each edge once
		if dest == nil || (e.Twin != nil && e.Twin.ID < e.ID) {
			continue
		}
		c.MoveTo(e.Origin.X, e.Origin.Y)
		c.LineTo(dest.X, dest.Y)
		c.Stroke()
	}

	c.SetRGB(1, 1, 1)
	for _, v := range m.Vertices() {
		c.DrawCircle(v.X, v.Y, 2/options.Scale)
		c.Fill()
	}
	return c
}

// Text has to be drawn in device coordinates, or it comes out flipped.
func drawLabel(c *gg.Context, text string, x, y float64) {
	x, y = c.TransformPoint(x, y)
	c.Push()
	c.Identity()
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(text, x, y, 0.5, 0.5)
	c.Pop()
}

// Draw the mesh and print it in the terminal (iTerm only) for debugging.
func (m *Mesh) dbgDraw(scale float64) {
	c := DrawMesh(m, DrawOptions{Scale: scale, Names: true})
	c.SavePNG("/tmp/mesh.png")
	imgcat.CatFile("/tmp/mesh.png", os.Stdout)
}

// Size of the drawing of bounds at the given scale, in pixels.
func DrawingSize(bounds r2.Rect, scale float64) (width, height int) {
	return int(math.Ceil(scale*bounds.X.Length())) + drawPadding*2, int(math.Ceil(scale*bounds.Y.Length())) + drawPadding*2
}
