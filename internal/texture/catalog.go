package texture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"facewarp/internal/mathutil"
)

// Mask describes one selectable texture. An empty Src is the blank mask:
// selecting it removes the overlay.
type Mask struct {
	ID    string
	Src   string
	Scale float64
	// Eyes are the eye centers in normalized texture coordinates, used by
	// the anchor renderer. Zero means the renderer default.
	Eyes [2]mathutil.Vec2
}

// Blank reports whether selecting m disables the overlay.
func (m Mask) Blank() bool { return m.Src == "" }

// HasEyes reports whether m overrides the default eye anchors.
func (m Mask) HasEyes() bool { return m.Eyes != [2]mathutil.Vec2{} }

// Catalog maps mask ids to sources.
type Catalog struct {
	entries map[string]Mask
}

var textureExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".tga": true, ".webp": true, ".bmp": true,
}

// NewCatalog creates a catalog from explicitly configured masks.
func NewCatalog(masks []Mask) *Catalog {
	c := &Catalog{entries: make(map[string]Mask, len(masks))}
	for _, m := range masks {
		if m.Scale <= 0 {
			m.Scale = 1
		}
		c.entries[strings.ToLower(m.ID)] = m
	}
	return c
}

// Scan adds every texture file under dir, keyed by lowercase file stem.
// Sources are stored relative to dir, matching a FileLoader rooted there.
// Configured entries win over scanned files; PNG wins over other formats
// for the same stem (keeps alpha).
func (c *Catalog) Scan(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	scanned := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !textureExts[ext] {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		existing, exists := scanned[stem]
		if !exists || (ext == ".png" && strings.ToLower(filepath.Ext(existing)) != ".png") {
			scanned[stem] = rel
		}
		return nil
	})
	if err != nil {
		return err
	}
	for stem, path := range scanned {
		if _, configured := c.entries[stem]; configured {
			continue
		}
		c.entries[stem] = Mask{ID: stem, Src: path, Scale: 1}
	}
	return nil
}

// Lookup returns the mask for id (case-insensitive).
func (c *Catalog) Lookup(id string) (Mask, bool) {
	m, ok := c.entries[strings.ToLower(id)]
	return m, ok
}

// Masks returns all masks sorted by id.
func (c *Catalog) Masks() []Mask {
	out := make([]Mask, 0, len(c.entries))
	for _, m := range c.entries {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of known masks.
func (c *Catalog) Len() int {
	return len(c.entries)
}
