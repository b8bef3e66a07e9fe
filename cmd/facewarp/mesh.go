package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"facewarp/internal/mesh"
)

var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Print triangulation table statistics",
	Run: func(cmd *cobra.Command, args []string) {
		t := mesh.DefaultTable()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "version:          %s\n", t.Version())
		fmt.Fprintf(out, "triangles:        %d\n", t.Len())
		fmt.Fprintf(out, "patch triangles:  %d\n", t.PatchLen())
		fmt.Fprintf(out, "repeated index:   %d\n", t.RepeatedIndex())
		fmt.Fprintf(out, "unique edges:     %d\n", len(t.Edges()))
		fmt.Fprintf(out, "max index:        %d\n", t.MaxIndex())
		fmt.Fprintf(out, "landmarks:        %d\n", mesh.DefaultLandmarkCount)
	},
}

func init() {
	rootCmd.AddCommand(meshCmd)
}
