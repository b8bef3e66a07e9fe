// Package recording reads tracker output captured as JSON Lines, one video
// frame per line, for offline rendering.
package recording

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"facewarp/internal/mesh"
	"facewarp/internal/session"
	"facewarp/internal/texture"
)

// ErrBadRecord reports a line that is not a valid frame record.
var ErrBadRecord = errors.New("recording: bad record")

// Record is one decoded line.
type Record struct {
	Frame      int          `json:"frame"`
	Background string       `json:"background"`
	Faces      []FaceRecord `json:"faces"`
	Events     *Events      `json:"events,omitempty"`
}

// FaceRecord is one face; landmarks are [x, y] pairs normalized to [0,1].
type FaceRecord struct {
	Track     string       `json:"track"`
	Landmarks [][2]float64 `json:"landmarks"`
}

// Events are control changes applied before the frame is processed.
type Events struct {
	Mask     *string `json:"mask,omitempty"`
	Overlay  *bool   `json:"overlay,omitempty"`
	Renderer *string `json:"renderer,omitempty"`
}

// LandmarkSet converts the face to the renderer's landmark type.
func (f FaceRecord) LandmarkSet() mesh.LandmarkSet {
	l := make(mesh.LandmarkSet, len(f.Landmarks))
	for i, p := range f.Landmarks {
		l[i] = mesh.Point{X: p[0], Y: p[1]}
	}
	return l
}

// Reader decodes records from a stream.
type Reader struct {
	dir  string
	sc   *bufio.Scanner
	line int
	c    io.Closer
}

// NewReader reads records from r. Relative background paths resolve
// against dir.
func NewReader(r io.Reader, dir string) *Reader {
	sc := bufio.NewScanner(r)
	// 468 landmarks per face make long lines.
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{dir: dir, sc: sc}
}

// Open opens a recording file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recording: open %s: %w", path, err)
	}
	r := NewReader(f, filepath.Dir(path))
	r.c = f
	return r, nil
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}

// Next returns the next record, or io.EOF after the last one. Blank lines
// are skipped.
func (r *Reader) Next() (Record, error) {
	for r.sc.Scan() {
		r.line++
		raw := r.sc.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Record{}, fmt.Errorf("%w: line %d: %v", ErrBadRecord, r.line, err)
		}
		if rec.Background != "" && !filepath.IsAbs(rec.Background) && r.dir != "" {
			rec.Background = filepath.Join(r.dir, rec.Background)
		}
		return rec, nil
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, fmt.Errorf("recording: line %d: %w", r.line+1, err)
	}
	return Record{}, io.EOF
}

// Apply forwards the record's events to s.
func (rec Record) Apply(s *session.Session) error {
	if rec.Events == nil {
		return nil
	}
	if rec.Events.Overlay != nil {
		s.SetOverlayEnabled(*rec.Events.Overlay)
	}
	if rec.Events.Renderer != nil {
		if err := s.SetRenderer(session.Renderer(*rec.Events.Renderer)); err != nil {
			return err
		}
	}
	if rec.Events.Mask != nil {
		if err := s.SetActiveTexture(*rec.Events.Mask); err != nil {
			return err
		}
	}
	return nil
}

// Frame builds the session input. The background is decoded from disk; an
// empty path leaves it nil.
func (rec Record) Frame() (session.Frame, error) {
	f := session.Frame{Faces: make([]session.Face, len(rec.Faces))}
	for i, fr := range rec.Faces {
		f.Faces[i] = session.Face{TrackID: fr.Track, Landmarks: fr.LandmarkSet()}
	}
	if rec.Background == "" {
		return f, nil
	}
	bg, err := loadImage(rec.Background)
	if err != nil {
		return f, err
	}
	f.Background = bg
	return f, nil
}

func loadImage(path string) (image.Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recording: background: %w", err)
	}
	img, err := texture.Decode(raw, path)
	if err != nil {
		return nil, err
	}
	return img, nil
}
