package cmd

import (
	"github.com/osuushi/trimesh"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMeshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mesh",
		Short: "Mesh the input contours and report on the result",
		Long: `Mesh the region enclosed by the input contours, refining to the quality
bounds if any are given, and write a YAML report of mesh statistics and shape
quality. With --image, a PNG rendering is written as well.

Example parameter file:` + exampleParameters,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rp, err := runParameters(cmd)
			if err != nil {
				return err
			}
			m, err := buildMesh(cmd, rp)
			if err != nil {
				return err
			}
			if rp.Output.Image != "" {
				c := trimesh.DrawMesh(m, trimesh.DrawOptions{Scale: rp.Output.Scale})
				if err := c.SavePNG(rp.Output.Image); err != nil {
					return errors.Wrap(err, "saving image")
				}
			}

			w, closeReport, err := reportWriter(cmd, rp)
			if err != nil {
				return err
			}
			return writeReport(w, closeReport, newMeshReport(rp, m))
		},
	}
}
