package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"
	"github.com/osuushi/trimesh"
	"github.com/pkg/errors"
)

type QuadTreeParameters struct {
	MaxDepth  int `json:"maxDepth"`
	SizeBound int `json:"sizeBound"`
}

type OutputParameters struct {
	// PNG rendering of the result. Empty for none.
	Image string  `json:"image"`
	Scale float64 `json:"scale"`
	// YAML report. Empty for stdout.
	Report string `json:"report"`
}

// Everything a run needs besides its input geometry. Read from a YAML file,
// then overridden by command line flags.
type RunParameters struct {
	Title string `json:"title"`
	// Boundary marker for input segments.
	Label      int                       `json:"label"`
	Constraint trimesh.ConstraintOptions `json:"constraint"`
	Quality    *trimesh.QualityOptions   `json:"quality"`
	QuadTree   QuadTreeParameters        `json:"quadTree"`
	// Clip Voronoi cells to the mesh.
	Bounded bool             `json:"bounded"`
	Output  OutputParameters `json:"output"`
}

const exampleParameters = `
########################################
title: "Test Case"
label: 1
constraint:
  convex: false
  conformingDelaunay: false
  segmentSplitting: 0 # 1 keeps the boundary whole, 2 keeps every segment whole
quality:
  minimumAngle: 25
  maximumArea: 0.5
  steinerPoints: 0 # zero or negative is unlimited
quadTree:
  maxDepth: 10
  sizeBound: 10
bounded: true
output:
  image: ~/mesh.png
  scale: 20
########################################
`

func DefaultRunParameters() *RunParameters {
	return &RunParameters{
		Label:  1,
		Output: OutputParameters{Scale: 1},
	}
}

func (rp *RunParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

// Read parameters from a file, on top of the defaults. A leading ~ in the path
// and in the output paths is expanded.
func LoadRunParameters(path string) (*RunParameters, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding parameter file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading parameter file")
	}
	rp := DefaultRunParameters()
	if err := rp.Parse(data); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := rp.expandPaths(); err != nil {
		return nil, err
	}
	return rp, nil
}

func (rp *RunParameters) expandPaths() (err error) {
	if rp.Output.Image, err = homedir.Expand(rp.Output.Image); err != nil {
		return errors.Wrap(err, "expanding image path")
	}
	if rp.Output.Report, err = homedir.Expand(rp.Output.Report); err != nil {
		return errors.Wrap(err, "expanding report path")
	}
	return nil
}

func (rp *RunParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", rp.Title)
	fmt.Fprintf(w, "[%d]\t\t\t= Label\n", rp.Label)
	fmt.Fprintf(w, "%v\t\t= Constraint\n", rp.Constraint)
	if rp.Quality != nil {
		fmt.Fprintf(w, "%8.5f\t\t= Minimum angle\n", rp.Quality.MinimumAngle)
		fmt.Fprintf(w, "%8.5f\t\t= Maximum angle\n", rp.Quality.MaximumAngle)
		fmt.Fprintf(w, "%8.5f\t\t= Maximum area\n", rp.Quality.MaximumArea)
		fmt.Fprintf(w, "[%d]\t\t\t= Steiner points\n", rp.Quality.SteinerPoints)
	}
	fmt.Fprintf(w, "%v\t\t\t= Bounded\n", rp.Bounded)
}
