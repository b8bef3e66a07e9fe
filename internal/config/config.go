package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"facewarp/internal/mathutil"
	"facewarp/internal/texture"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Masks
	MaskDir     string       `json:"mask_dir"`
	Masks       []MaskConfig `json:"masks"`
	DefaultMask string       `json:"default_mask"`

	// Render settings
	CanvasWidth       int     `json:"canvas_width"`
	CanvasHeight      int     `json:"canvas_height"`
	Landmarks         int     `json:"landmarks"`
	DegenerateEpsilon float64 `json:"degenerate_epsilon"`
	Interpolation     string  `json:"interpolation"`
	Renderer          string  `json:"renderer"`
	ShowMesh          *bool   `json:"show_mesh"`
	MeshColor         string  `json:"mesh_color"`
	MeshLineWidth     float64 `json:"mesh_line_width"`

	Bind   BindConfig   `json:"bind"`
	Track  TrackConfig  `json:"track"`
	Anchor AnchorConfig `json:"anchor"`

	// Output
	OutputDir   string   `json:"output_dir"`
	Format      string   `json:"format"`
	OutputWidth int      `json:"output_width"`
	Mirror      bool     `json:"mirror"`
	Workers     int      `json:"workers"`
	LoadTimeout Duration `json:"load_timeout"`
}

// MaskConfig is one catalog entry.
type MaskConfig struct {
	ID    string       `json:"id"`
	Src   string       `json:"src"`
	Scale float64      `json:"scale"`
	Eyes  [][2]float64 `json:"eyes,omitempty"`
}

type BindConfig struct {
	DelayFrames int     `json:"delay_frames"`
	MaxRollDeg  float64 `json:"max_roll_deg"`
	MaxYawRatio float64 `json:"max_yaw_ratio"`
}

type TrackConfig struct {
	MaxDistance float64 `json:"max_distance"`
	MaxMissed   int     `json:"max_missed"`
}

type AnchorConfig struct {
	Split     float64 `json:"split"`
	MouthGain float64 `json:"mouth_gain"`
}

// Duration reads either a Go duration string ("15s") or seconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("duration %s: want string or seconds", b)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// DefaultMasks are the built-in catalog entries.
func DefaultMasks() []MaskConfig {
	return []MaskConfig{
		{ID: "lincoln", Src: "https://diggyshants.github.io/Face-mapping-sandbox/assets/lincoln.png", Scale: 1.0},
		{ID: "monalisa", Src: "https://upload.wikimedia.org/wikipedia/commons/thumb/e/ec/Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg/687px-Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg", Scale: 1.0},
		{ID: "blank"},
	}
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	MaskDir   string
	Mask      string
	OutputDir string
	Format    string
	Renderer  string
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.MaskDir != "" {
		c.MaskDir = flags.MaskDir
	}
	if flags.Mask != "" {
		c.DefaultMask = flags.Mask
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Renderer != "" {
		c.Renderer = flags.Renderer
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.MaskDir == "" {
		c.MaskDir = "masks"
	}
	if len(c.Masks) == 0 {
		c.Masks = DefaultMasks()
	}
	if c.DefaultMask == "" {
		c.DefaultMask = "lincoln"
	}

	if c.CanvasWidth <= 0 {
		c.CanvasWidth = 1280
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = 720
	}
	if c.Landmarks <= 0 {
		c.Landmarks = 468
	}
	if c.DegenerateEpsilon <= 0 {
		c.DegenerateEpsilon = mathutil.DefaultDegenerateEpsilon
	}
	if c.Interpolation == "" {
		c.Interpolation = "bilinear"
	}
	if c.Renderer == "" {
		c.Renderer = "mesh"
	}
	if c.ShowMesh == nil {
		on := true
		c.ShowMesh = &on
	}
	if c.MeshColor == "" {
		c.MeshColor = "#C0C0C070"
	}
	if c.MeshLineWidth <= 0 {
		c.MeshLineWidth = 1
	}

	if c.Track.MaxDistance <= 0 {
		c.Track.MaxDistance = 0.5
	}
	if c.Track.MaxMissed <= 0 {
		c.Track.MaxMissed = 15
	}

	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = Duration(15 * time.Second)
	}
}

// Validate rejects settings the renderer cannot use.
func (c *Config) Validate() error {
	switch c.Format {
	case "webp", "png":
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	switch c.Renderer {
	case "mesh", "anchor":
	default:
		return fmt.Errorf("config: unknown renderer %q", c.Renderer)
	}
	if c.Anchor.Split < 0 || c.Anchor.Split >= 1 {
		return fmt.Errorf("config: anchor.split %v out of [0,1)", c.Anchor.Split)
	}
	for _, m := range c.Masks {
		if m.ID == "" {
			return fmt.Errorf("config: mask without id")
		}
		if len(m.Eyes) != 0 && len(m.Eyes) != 2 {
			return fmt.Errorf("config: mask %s: eyes needs two points", m.ID)
		}
	}
	return nil
}

// Catalog builds the mask catalog: configured masks, then files found in
// MaskDir.
func (c *Config) Catalog() (*texture.Catalog, error) {
	masks := make([]texture.Mask, 0, len(c.Masks))
	for _, m := range c.Masks {
		tm := texture.Mask{ID: m.ID, Src: m.Src, Scale: m.Scale}
		if len(m.Eyes) == 2 {
			tm.Eyes = [2]mathutil.Vec2{
				{X: m.Eyes[0][0], Y: m.Eyes[0][1]},
				{X: m.Eyes[1][0], Y: m.Eyes[1][1]},
			}
		}
		masks = append(masks, tm)
	}
	cat := texture.NewCatalog(masks)
	if err := cat.Scan(c.MaskDir); err != nil {
		return nil, fmt.Errorf("config: scan %s: %w", c.MaskDir, err)
	}
	return cat, nil
}

// ResolvePath joins rel onto base unless rel is absolute.
func ResolvePath(base, rel string) string {
	if rel == "" || filepath.IsAbs(rel) || base == "" {
		return rel
	}
	return filepath.Join(base, rel)
}
