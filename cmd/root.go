package cmd

import (
	"io"
	"log"
	"os"

	"github.com/osuushi/trimesh"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// Build the trimesh command tree.
func NewRootCommand() *cobra.Command {
	var profiler interface{ Stop() }

	rootCmd := &cobra.Command{
		Use:   "trimesh",
		Short: "Constrained Delaunay triangulation and quality mesh generation",
		Long: `Mesh planar domains given as contours, refine them to quality bounds, and
derive their Voronoi diagrams.

Input is either an SVG file, where every <polygon> is a contour, or lines of
"x y" points with a blank line between contours. Contours are read with the
even-odd rule.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("profile")
			switch mode {
			case "":
			case "cpu":
				profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
			case "mem":
				profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
			default:
				return errors.Errorf("unknown profile mode %q, expected cpu or mem", mode)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if profiler != nil {
				profiler.Stop()
				profiler = nil
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("params", "I", "", "YAML file of run parameters")
	flags.StringP("input", "i", "", "file of \"x y\" point lines, blank line separated contours (default stdin)")
	flags.String("svg", "", "SVG file to read contours from, one per <polygon>")
	flags.BoolP("verbose", "v", false, "log mesher warnings to stderr")
	flags.String("profile", "", "write a cpu or mem profile to the working directory")
	flags.Bool("points", false, "triangulate the input points only, ignoring the contour edges")

	flags.Float64P("min-angle", "q", 0, "minimum angle in degrees")
	flags.Float64("max-angle", 0, "maximum angle in degrees")
	flags.Float64P("max-area", "a", 0, "maximum triangle area")
	flags.Int("steiner", 0, "Steiner point budget, zero or negative for unlimited")
	flags.Bool("conforming", false, "conforming Delaunay: every triangle truly Delaunay")
	flags.BoolP("convex", "c", false, "keep the convex hull instead of carving concavities")
	flags.String("image", "", "write a PNG rendering to this path")
	flags.Float64("scale", 0, "pixels per unit in the rendering")
	flags.String("report", "", "write the YAML report to this path (default stdout)")

	rootCmd.AddCommand(newMeshCommand(), newVoronoiCommand(), newLocateCommand())
	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// Parameters for a run: the parameter file if any, with flags on top.
func runParameters(cmd *cobra.Command) (*RunParameters, error) {
	rp := DefaultRunParameters()
	if path, _ := cmd.Flags().GetString("params"); path != "" {
		var err error
		if rp, err = LoadRunParameters(path); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	quality := func() *trimesh.QualityOptions {
		if rp.Quality == nil {
			rp.Quality = &trimesh.QualityOptions{}
		}
		return rp.Quality
	}
	if flags.Changed("min-angle") {
		quality().MinimumAngle, _ = flags.GetFloat64("min-angle")
	}
	if flags.Changed("max-angle") {
		quality().MaximumAngle, _ = flags.GetFloat64("max-angle")
	}
	if flags.Changed("max-area") {
		quality().MaximumArea, _ = flags.GetFloat64("max-area")
	}
	if flags.Changed("steiner") {
		quality().SteinerPoints, _ = flags.GetInt("steiner")
	}
	if flags.Changed("conforming") {
		rp.Constraint.ConformingDelaunay, _ = flags.GetBool("conforming")
	}
	if flags.Changed("convex") {
		rp.Constraint.Convex, _ = flags.GetBool("convex")
	}
	if flags.Changed("image") {
		rp.Output.Image, _ = flags.GetString("image")
	}
	if flags.Changed("scale") {
		rp.Output.Scale, _ = flags.GetFloat64("scale")
	}
	if flags.Changed("report") {
		rp.Output.Report, _ = flags.GetString("report")
	}
	if err := rp.expandPaths(); err != nil {
		return nil, err
	}
	return rp, nil
}

// Read the input and mesh it according to the parameters.
func buildMesh(cmd *cobra.Command, rp *RunParameters) (*trimesh.Mesh, error) {
	svgPath, _ := cmd.Flags().GetString("svg")
	inputPath, _ := cmd.Flags().GetString("input")
	contours, err := loadContours(svgPath, inputPath, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	behavior := trimesh.NewBehavior()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		behavior.Logger = log.New(cmd.ErrOrStderr(), "trimesh: ", 0)
	}

	if pointsOnly, _ := cmd.Flags().GetBool("points"); pointsOnly {
		var points []*trimesh.Vertex
		for _, contour := range contours {
			points = append(points, contour...)
		}
		m, err := trimesh.TriangulateWith(points, behavior)
		if err != nil {
			return nil, err
		}
		if rp.Quality != nil {
			if err := trimesh.Refine(m, rp.Quality); err != nil {
				return nil, err
			}
		}
		return m, nil
	}
	return trimesh.MeshContoursWith(contours, rp.Label, behavior, &rp.Constraint, rp.Quality)
}

// The writer for the report, and a function to close it when done.
func reportWriter(cmd *cobra.Command, rp *RunParameters) (io.Writer, func() error, error) {
	if rp.Output.Report == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(rp.Output.Report)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating report")
	}
	return file, file.Close, nil
}
