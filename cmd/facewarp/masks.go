package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"facewarp/internal/config"
	"facewarp/internal/texture"
)

var (
	masksFlags config.Flags
	masksCheck bool
)

var masksCmd = &cobra.Command{
	Use:   "masks",
	Short: "List the mask catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(masksFlags)
		if err != nil {
			return err
		}
		catalog, err := cfg.Catalog()
		if err != nil {
			return err
		}
		loader := texture.NewFileLoader(cfg.MaskDir, time.Duration(cfg.LoadTimeout))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSCALE\tSOURCE\tSTATUS")
		for _, m := range catalog.Masks() {
			status := ""
			switch {
			case m.Blank():
				status = "blank"
			case masksCheck:
				img, err := loader.Load(cmd.Context(), m.Src)
				if err != nil {
					status = "error: " + err.Error()
				} else {
					status = fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())
				}
			}
			fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", m.ID, m.Scale, m.Src, status)
		}
		return w.Flush()
	},
}

func init() {
	masksCmd.Flags().StringVar(&masksFlags.MaskDir, "mask-dir", "", "Directory with mask images (default: masks)")
	masksCmd.Flags().BoolVar(&masksCheck, "check", false, "Load every mask and report its size")
	rootCmd.AddCommand(masksCmd)
}
