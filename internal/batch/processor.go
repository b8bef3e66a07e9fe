package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"facewarp/internal/postprocess"
	"facewarp/internal/recording"
	"facewarp/internal/session"
)

// Config holds the output settings for a batch run.
type Config struct {
	OutputDir   string
	Format      string
	OutputWidth int
	Mirror      bool
	Workers     int
	// Progress draws a progress bar on stderr.
	Progress bool
	Log      logrus.FieldLogger
}

// Summary reports a finished run.
type Summary struct {
	Frames   int
	Written  int
	Failed   int
	Painted  int
	Manifest string
	Elapsed  time.Duration
}

type job struct {
	slot int
	img  *image.RGBA
}

// Run renders every record of r through s and writes the frames with a
// worker pool. Frames are composited strictly in order; only the
// post-processing and encoding run in parallel.
func Run(ctx context.Context, cfg Config, s *session.Session, r *recording.Reader) (Summary, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	ext, encode, err := encoder(cfg.Format)
	if err != nil {
		return Summary{}, err
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return Summary{}, fmt.Errorf("batch: %w", err)
	}

	start := time.Now()
	var (
		mu      sync.Mutex
		entries []ManifestEntry
		written atomic.Int64
		failed  atomic.Int64
	)

	var barOut io.Writer = io.Discard
	if cfg.Progress {
		barOut = os.Stderr
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionSetWriter(barOut),
		progressbar.OptionShowCount(),
	)

	// Worker pool
	jobs := make(chan job, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				mu.Lock()
				name := entries[j.slot].File
				mu.Unlock()

				err := writeFrame(filepath.Join(cfg.OutputDir, name), j.img, cfg, encode)
				if err != nil {
					failed.Add(1)
					log.WithError(err).WithField("file", name).Warn("frame write failed")
					mu.Lock()
					entries[j.slot].Error = err.Error()
					mu.Unlock()
				} else {
					written.Add(1)
				}
				bar.Add(1)
			}
		}()
	}

	painted, runErr := produce(ctx, s, r, log, ext, jobs, &mu, &entries)
	close(jobs)
	wg.Wait()
	bar.Finish()

	sum := Summary{
		Frames:  len(entries),
		Written: int(written.Load()),
		Failed:  int(failed.Load()),
		Painted: painted,
		Elapsed: time.Since(start),
	}
	sum.Manifest = filepath.Join(cfg.OutputDir, "manifest.json")
	if err := WriteManifest(sum.Manifest, entries); err != nil && runErr == nil {
		runErr = fmt.Errorf("batch: manifest: %w", err)
	}

	log.WithFields(logrus.Fields{
		"frames":  sum.Frames,
		"written": sum.Written,
		"failed":  sum.Failed,
		"elapsed": sum.Elapsed.Round(time.Millisecond).String(),
	}).Info("render finished")
	return sum, runErr
}

func produce(
	ctx context.Context,
	s *session.Session,
	r *recording.Reader,
	log logrus.FieldLogger,
	ext string,
	jobs chan<- job,
	mu *sync.Mutex,
	entries *[]ManifestEntry,
) (int, error) {
	if err := s.WaitTexture(ctx); err != nil && ctx.Err() != nil {
		return 0, err
	}

	painted := 0
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return painted, err
		}
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return painted, nil
		}
		if err != nil {
			return painted, err
		}

		if err := rec.Apply(s); err != nil {
			log.WithError(err).WithField("frame", rec.Frame).Warn("event ignored")
		}
		if rec.Events != nil && rec.Events.Mask != nil {
			if err := s.WaitTexture(ctx); err != nil && ctx.Err() != nil {
				return painted, err
			}
		}

		frame, err := rec.Frame()
		if err != nil {
			return painted, fmt.Errorf("batch: frame %d: %w", rec.Frame, err)
		}
		res := s.ProcessFrame(frame)
		painted += res.Stats.Painted

		mu.Lock()
		slot := len(*entries)
		*entries = append(*entries, ManifestEntry{
			Frame:      rec.Frame,
			File:       fmt.Sprintf("%06d.%s", n, ext),
			Faces:      len(res.Faces),
			Painted:    res.Stats.Painted,
			Skipped:    res.Stats.Skipped,
			Degenerate: res.Stats.Degenerate,
			State:      res.State.String(),
		})
		mu.Unlock()

		select {
		case jobs <- job{slot: slot, img: postprocess.Clone(res.Image)}:
		case <-ctx.Done():
			return painted, ctx.Err()
		}
	}
}

type encodeFunc func(io.Writer, *image.RGBA) error

func encoder(format string) (string, encodeFunc, error) {
	switch format {
	case "", "webp":
		return "webp", func(w io.Writer, img *image.RGBA) error {
			return nativewebp.Encode(w, postprocess.Unpremultiply(img), nil)
		}, nil
	case "png":
		return "png", func(w io.Writer, img *image.RGBA) error {
			return png.Encode(w, img)
		}, nil
	}
	return "", nil, fmt.Errorf("batch: unknown format %q", format)
}

func writeFrame(path string, img *image.RGBA, cfg Config, encode encodeFunc) error {
	if cfg.Mirror {
		img = postprocess.Mirror(img)
	}
	img = postprocess.Resize(img, cfg.OutputWidth)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
