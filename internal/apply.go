package internal

// Insert the segments of a polygon into a mesh built from its points, carve
// holes and concavities, mark regions, and refine if quality options are
// given.
func (m *Mesh) ApplyConstraints(poly *Polygon, options *ConstraintOptions, quality *QualityOptions) {
	if poly == nil {
		poly = &Polygon{}
	}
	m.behavior.Poly = len(poly.Segments) > 0
	m.behavior.applyConstraintOptions(options)
	m.behavior.applyQualityOptions(quality)
	m.resetSteinerBudget()

	// No vertex may be mistaken for a corner of the bounding triangle from
	// here on.
	m.infvertex1 = nil
	m.infvertex2 = nil
	m.infvertex3 = nil

	if m.behavior.Poly || m.behavior.Quality || m.behavior.Convex {
		m.checksegments = true
		m.FormSkeleton(poly)
	}

	if m.behavior.Poly && len(m.triangles)-m.deadTriangles > 0 {
		m.holes = append(m.holes, poly.Holes...)
		m.regions = append(m.regions, poly.Regions...)
		m.CarveHoles()
	}

	if m.behavior.Quality && len(m.triangles)-m.deadTriangles > 0 {
		m.enforceQuality()
	}
	m.settle()
}

// Refine an existing mesh further. Subsegments already in the mesh are kept;
// a mesh that never had any gets its hull covered first.
func (m *Mesh) Refine(quality *QualityOptions) {
	if quality == nil {
		quality = &QualityOptions{}
	}
	m.behavior.applyQualityOptions(quality)
	m.resetSteinerBudget()
	m.flipstack.Clear()

	if !m.checksegments {
		m.checksegments = true
		m.MarkHull()
	}
	if len(m.triangles)-m.deadTriangles > 0 {
		m.enforceQuality()
	}
	m.settle()
}

func (m *Mesh) resetSteinerBudget() {
	m.steinerleft = m.behavior.SteinerPoints
	if m.steinerleft <= 0 {
		m.steinerleft = -1
	}
}
