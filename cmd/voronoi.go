package cmd

import (
	"github.com/osuushi/trimesh"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newVoronoiCommand() *cobra.Command {
	voronoiCmd := &cobra.Command{
		Use:   "voronoi",
		Short: "Mesh the input contours and build the Voronoi diagram of the mesh",
		Long: `Mesh the input like the mesh command does, then build the Voronoi diagram
of the mesh vertices. With --bounded, the cells are clipped to the meshed
region; that needs a mesh without encroached boundary segments, which a quality
mesh or --conforming gives.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rp, err := runParameters(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("bounded") {
				rp.Bounded, _ = cmd.Flags().GetBool("bounded")
			}
			m, err := buildMesh(cmd, rp)
			if err != nil {
				return err
			}
			d, err := trimesh.ToVoronoi(m, rp.Bounded)
			if err != nil {
				return err
			}
			if rp.Output.Image != "" {
				c := trimesh.DrawVoronoi(m, d, trimesh.DrawOptions{Scale: rp.Output.Scale})
				if err := c.SavePNG(rp.Output.Image); err != nil {
					return errors.Wrap(err, "saving image")
				}
			}

			report := newMeshReport(rp, m)
			report.Voronoi = summarizeVoronoi(d, rp.Bounded)
			w, closeReport, err := reportWriter(cmd, rp)
			if err != nil {
				return err
			}
			return writeReport(w, closeReport, report)
		},
	}
	voronoiCmd.Flags().BoolP("bounded", "b", false, "clip the cells to the mesh")
	return voronoiCmd
}
