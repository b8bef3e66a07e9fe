package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"facewarp/internal/anchor"
	"facewarp/internal/batch"
	"facewarp/internal/config"
	"facewarp/internal/raster"
	"facewarp/internal/recording"
	"facewarp/internal/session"
	"facewarp/internal/texture"
)

var (
	renderFlags   config.Flags
	recordingPath string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a recorded landmark stream to image frames",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(renderFlags)
		if err != nil {
			return err
		}
		return runRender(cmd, cfg)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&recordingPath, "recording", "r", "", "Path to a JSONL landmark recording")
	renderCmd.Flags().StringVarP(&renderFlags.Mask, "mask", "m", "", "Initial mask id (default: lincoln)")
	renderCmd.Flags().StringVarP(&renderFlags.OutputDir, "out", "o", "", "Output directory (default: out)")
	renderCmd.Flags().StringVarP(&renderFlags.Format, "format", "f", "", "Output format: webp or png (default: webp)")
	renderCmd.Flags().IntVarP(&renderFlags.Workers, "workers", "w", 0, "Number of encode workers (default: NumCPU)")
	renderCmd.Flags().StringVar(&renderFlags.Renderer, "renderer", "", "Renderer: mesh or anchor (default: mesh)")
	renderCmd.Flags().StringVar(&renderFlags.MaskDir, "mask-dir", "", "Directory with mask images (default: masks)")

	renderCmd.MarkFlagRequired("recording")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, cfg config.Config) error {
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}
	opts, err := sessionOptions(cfg)
	if err != nil {
		return err
	}
	loader := texture.NewCache(texture.NewFileLoader(cfg.MaskDir, time.Duration(cfg.LoadTimeout)))

	s := session.New(opts, catalog, loader, logger)
	defer s.Close()
	if err := s.SetActiveTexture(cfg.DefaultMask); err != nil {
		return err
	}

	r, err := recording.Open(recordingPath)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.WithFields(logrus.Fields{
		"recording": recordingPath,
		"mask":      cfg.DefaultMask,
		"masks":     catalog.Len(),
		"renderer":  cfg.Renderer,
		"canvas":    fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight),
		"workers":   cfg.Workers,
		"output":    cfg.OutputDir,
	}).Info("starting render")

	sum, err := batch.Run(cmd.Context(), batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      cfg.Format,
		OutputWidth: cfg.OutputWidth,
		Mirror:      cfg.Mirror,
		Workers:     cfg.Workers,
		Progress:    term.IsTerminal(int(os.Stderr.Fd())),
		Log:         logger,
	}, s, r)
	if err != nil {
		return err
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d frames failed to write", sum.Failed, sum.Frames)
	}
	return nil
}

func sessionOptions(cfg config.Config) (session.Options, error) {
	interp, err := raster.Interpolator(cfg.Interpolation)
	if err != nil {
		return session.Options{}, err
	}
	renderer, err := session.ParseRenderer(cfg.Renderer)
	if err != nil {
		return session.Options{}, err
	}
	meshColor, err := raster.ParseColor(cfg.MeshColor)
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Width:     cfg.CanvasWidth,
		Height:    cfg.CanvasHeight,
		Landmarks: cfg.Landmarks,
		Epsilon:   cfg.DegenerateEpsilon,
		Interp:    interp,
		Renderer:  renderer,
		ShowMesh:  *cfg.ShowMesh,
		Wireframe: raster.WireframeStyle{Color: meshColor, LineWidth: cfg.MeshLineWidth},
		Bind: session.BindPolicy{
			DelayFrames: cfg.Bind.DelayFrames,
			MaxRollDeg:  cfg.Bind.MaxRollDeg,
			MaxYawRatio: cfg.Bind.MaxYawRatio,
		},
		Anchor: anchor.Params{
			Split:     cfg.Anchor.Split,
			MouthGain: cfg.Anchor.MouthGain,
		},
		TrackMaxDistance: cfg.Track.MaxDistance,
		TrackMaxMissed:   cfg.Track.MaxMissed,
	}, nil
}
