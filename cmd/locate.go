package cmd

import (
	"strconv"
	"strings"

	"github.com/osuushi/trimesh"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type Location struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Triangle id, or -1 outside the mesh.
	Triangle int          `yaml:"triangle"`
	Region   int          `yaml:"region,omitempty"`
	Corners  [][2]float64 `yaml:"corners,omitempty,flow"`
}

func newLocateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locate x,y [x,y ...]",
		Short: "Mesh the input contours and find the triangles containing points",
		Long: `Mesh the input like the mesh command does, build a quadtree over the mesh, and
print the triangle containing each query point as YAML. Points outside the
mesh get triangle -1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rp, err := runParameters(cmd)
			if err != nil {
				return err
			}
			queries := make([][2]float64, len(args))
			for i, arg := range args {
				if queries[i], err = parseQuery(arg); err != nil {
					return err
				}
			}

			m, err := buildMesh(cmd, rp)
			if err != nil {
				return err
			}
			m.Renumber()
			tree, err := trimesh.NewQuadTree(m, rp.QuadTree.MaxDepth, rp.QuadTree.SizeBound)
			if err != nil {
				return err
			}

			locations := make([]Location, len(queries))
			for i, q := range queries {
				locations[i] = locate(tree, q[0], q[1])
			}
			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(locations); err != nil {
				return errors.Wrap(err, "writing locations")
			}
			return encoder.Close()
		},
	}
}

func locate(tree *trimesh.QuadTree, x, y float64) Location {
	location := Location{X: x, Y: y, Triangle: -1}
	t := tree.Query(x, y)
	if t == nil {
		return location
	}
	location.Triangle = t.ID
	location.Region = t.Region
	for i := 0; i < 3; i++ {
		v := t.Vertex(i)
		location.Corners = append(location.Corners, [2]float64{v.X, v.Y})
	}
	return location
}

// Parse "x,y".
func parseQuery(arg string) (q [2]float64, err error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return q, errors.Errorf("expected a point as x,y, got %q", arg)
	}
	for i, part := range parts {
		if q[i], err = strconv.ParseFloat(strings.TrimSpace(part), 64); err != nil {
			return q, errors.Wrapf(err, "parsing %q", arg)
		}
	}
	return q, nil
}
