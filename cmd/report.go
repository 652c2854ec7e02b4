package cmd

import (
	"io"

	"github.com/osuushi/trimesh"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type VoronoiSummary struct {
	Bounded   bool `yaml:"bounded"`
	Cells     int  `yaml:"cells"`
	Vertices  int  `yaml:"vertices"`
	HalfEdges int  `yaml:"halfEdges"`
}

// What a run reports on its output.
type MeshReport struct {
	Title      string                 `yaml:"title,omitempty"`
	Statistics trimesh.Statistics     `yaml:"statistics"`
	Quality    trimesh.QualityMeasure `yaml:"quality"`
	Voronoi    *VoronoiSummary        `yaml:"voronoi,omitempty"`
	Image      string                 `yaml:"image,omitempty"`
}

func newMeshReport(rp *RunParameters, m *trimesh.Mesh) *MeshReport {
	return &MeshReport{
		Title:      rp.Title,
		Statistics: m.Statistics(),
		Quality:    trimesh.MeasureQuality(m),
		Image:      rp.Output.Image,
	}
}

func summarizeVoronoi(d *trimesh.DCEL, bounded bool) *VoronoiSummary {
	return &VoronoiSummary{
		Bounded:   bounded,
		Cells:     len(d.Faces),
		Vertices:  len(d.Vertices),
		HalfEdges: len(d.HalfEdges),
	}
}

func (r *MeshReport) Write(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return errors.Wrap(err, "writing report")
	}
	return encoder.Close()
}

// Write the report where the parameters say.
func writeReport(w io.Writer, closeReport func() error, report *MeshReport) error {
	if err := report.Write(w); err != nil {
		closeReport()
		return err
	}
	return closeReport()
}
