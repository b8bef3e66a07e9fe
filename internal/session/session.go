// Package session runs the per-frame pipeline: background, per-face
// wireframe, texture binding and warp. It owns the active texture and its
// asynchronous load.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"facewarp/internal/anchor"
	"facewarp/internal/mathutil"
	"facewarp/internal/mesh"
	"facewarp/internal/raster"
	"facewarp/internal/texture"
	"facewarp/internal/track"
)

var (
	// ErrUnknownTexture reports a mask id missing from the catalog.
	ErrUnknownTexture = errors.New("session: unknown texture")
	// ErrUnknownRenderer reports a renderer name other than mesh or anchor.
	ErrUnknownRenderer = errors.New("session: unknown renderer")
)

// State is the texture lifecycle as seen by the frame loop.
type State int

const (
	// NoTexture means no mask is selected or the blank mask is active.
	NoTexture State = iota
	// TextureLoading means the active mask is being fetched and decoded.
	TextureLoading
	// TextureReady means the active mask is decoded and faces may bind.
	TextureReady
	// TextureFailed means the last load failed; no overlay until the next switch.
	TextureFailed
)

func (s State) String() string {
	switch s {
	case NoTexture:
		return "no-texture"
	case TextureLoading:
		return "loading"
	case TextureReady:
		return "ready"
	case TextureFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Renderer selects how a ready texture is drawn onto a face.
type Renderer string

const (
	RendererMesh   Renderer = "mesh"
	RendererAnchor Renderer = "anchor"
)

// ParseRenderer validates a renderer name. Empty means mesh.
func ParseRenderer(name string) (Renderer, error) {
	switch Renderer(name) {
	case "", RendererMesh:
		return RendererMesh, nil
	case RendererAnchor:
		return RendererAnchor, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
}

// Face is one detected face in a frame.
type Face struct {
	// TrackID is the tracker's identity for the face. Empty lets the
	// session's own tracker assign one.
	TrackID   string
	Landmarks mesh.LandmarkSet
}

// Frame is one tracker result: the video image plus zero or more faces.
type Frame struct {
	Background image.Image
	Faces      []Face
}

// FaceResult reports what happened to one face.
type FaceResult struct {
	TrackID string
	Bound   bool
	Stats   raster.FaceStats
	Err     error
}

// Result is the outcome of one ProcessFrame call. Image is the session's
// surface and is overwritten by the next frame.
type Result struct {
	Index int
	Image *image.RGBA
	State State
	Faces []FaceResult
	Stats raster.FaceStats
}

// Options configures a Session.
type Options struct {
	Width, Height int
	Landmarks     int
	Epsilon       float64
	Interp        draw.Interpolator
	Renderer      Renderer
	ShowMesh      bool
	Wireframe     raster.WireframeStyle
	Bind          BindPolicy
	Anchor        anchor.Params
	Table         *mesh.Table

	TrackMaxDistance float64
	TrackMaxMissed   int
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.Landmarks <= 0 {
		o.Landmarks = mesh.DefaultLandmarkCount
	}
	if o.Epsilon <= 0 {
		o.Epsilon = mathutil.DefaultDegenerateEpsilon
	}
	if o.Renderer == "" {
		o.Renderer = RendererMesh
	}
	if o.Wireframe.Color == nil {
		o.Wireframe = raster.DefaultWireframeStyle()
	}
	if o.Table == nil {
		o.Table = mesh.DefaultTable()
	}
	if o.TrackMaxMissed <= 0 {
		o.TrackMaxMissed = track.DefaultMaxMissed
	}
}

type faceState struct {
	binding  *texture.Binding
	lastSeen int
}

// Session drives frames one at a time. Its methods must be called from a
// single goroutine; only texture loads run elsewhere.
type Session struct {
	opts    Options
	log     logrus.FieldLogger
	catalog *texture.Catalog
	loader  texture.Loader

	surface *raster.Surface
	tracker *track.Tracker

	ctx         context.Context
	stop        context.CancelFunc
	cancelLoad  context.CancelFunc
	completions chan texture.Completion

	res         texture.Resource
	mask        texture.Mask
	readyFrames int
	faces       map[string]*faceState

	frame   int
	onFrame func(Result)
}

// New creates a session with no active texture.
func New(opts Options, catalog *texture.Catalog, loader texture.Loader, log logrus.FieldLogger) *Session {
	opts.defaults()
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Session{
		opts:        opts,
		log:         log,
		catalog:     catalog,
		loader:      loader,
		surface:     raster.NewSurface(opts.Width, opts.Height, opts.Interp),
		tracker:     track.New(opts.TrackMaxDistance, opts.TrackMaxMissed),
		ctx:         ctx,
		stop:        stop,
		completions: make(chan texture.Completion, 8),
		faces:       make(map[string]*faceState),
	}
}

// Close cancels any in-flight texture load.
func (s *Session) Close() {
	s.stop()
}

// State returns the texture state.
func (s *Session) State() State {
	switch s.res.State() {
	case texture.Loading:
		return TextureLoading
	case texture.Loaded:
		return TextureReady
	case texture.Failed:
		return TextureFailed
	}
	return NoTexture
}

// ActiveTexture returns the id of the selected mask.
func (s *Session) ActiveTexture() string { return s.res.ID() }

// Err returns the load error while in TextureFailed.
func (s *Session) Err() error { return s.res.Err() }

// Bound reports whether trackID holds a binding.
func (s *Session) Bound(trackID string) bool {
	fs, ok := s.faces[trackID]
	return ok && fs.binding != nil
}

// SetOverlayEnabled toggles the wireframe overlay.
func (s *Session) SetOverlayEnabled(on bool) { s.opts.ShowMesh = on }

// SetRenderer switches between the mesh and anchor renderers.
func (s *Session) SetRenderer(r Renderer) error {
	r, err := ParseRenderer(string(r))
	if err != nil {
		return err
	}
	s.opts.Renderer = r
	return nil
}

// OnFrame registers a hook called with every frame result.
func (s *Session) OnFrame(fn func(Result)) { s.onFrame = fn }

// SetActiveTexture selects a mask and starts loading it. Every face binding
// is dropped; faces rebind once the new texture is ready. Selecting the
// blank mask removes the overlay.
func (s *Session) SetActiveTexture(id string) error {
	m, ok := s.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTexture, id)
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.mask = m
	s.readyFrames = 0
	for _, fs := range s.faces {
		fs.binding = nil
	}

	if m.Blank() {
		s.res.Reset(m.ID)
		s.log.WithField("mask", m.ID).Info("overlay cleared")
		return nil
	}

	req := s.res.Begin(m.ID, m.Src)
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelLoad = cancel
	s.log.WithFields(logrus.Fields{"mask": m.ID, "src": m.Src, "gen": req.Gen}).Debug("loading texture")

	go func() {
		img, err := s.loader.Load(ctx, req.Src)
		select {
		case s.completions <- texture.Completion{Request: req, Image: img, Err: err}:
		case <-ctx.Done():
		}
	}()
	return nil
}

// WaitTexture blocks until the pending load resolves. It returns the load
// error when the texture failed.
func (s *Session) WaitTexture(ctx context.Context) error {
	for s.res.State() == texture.Loading {
		select {
		case c := <-s.completions:
			s.apply(c)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.res.Err()
}

func (s *Session) drain() {
	for {
		select {
		case c := <-s.completions:
			s.apply(c)
		default:
			return
		}
	}
}

func (s *Session) apply(c texture.Completion) {
	fields := logrus.Fields{"mask": c.Request.ID, "gen": c.Request.Gen}
	if err := s.res.Resolve(c); err != nil {
		s.log.WithFields(fields).WithError(err).Debug("discarded load completion")
		return
	}
	switch s.res.State() {
	case texture.Loaded:
		b := c.Image.Bounds()
		fields["width"], fields["height"] = b.Dx(), b.Dy()
		s.log.WithFields(fields).Info("texture ready")
	case texture.Failed:
		s.log.WithFields(fields).WithError(s.res.Err()).Warn("texture load failed")
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
}

// ProcessFrame composites one frame. Nothing that goes wrong for a single
// face or triangle stops the rest of the frame.
func (s *Session) ProcessFrame(f Frame) Result {
	s.drain()
	s.frame++

	s.surface.Clear(color.Transparent)
	s.surface.DrawBackground(f.Background)

	ids := s.trackIDs(f.Faces)

	tex, ready := s.res.Image()
	if ready {
		s.readyFrames++
	}

	res := Result{Index: s.frame - 1, Image: s.surface.Image(), State: s.State()}
	for i, face := range f.Faces {
		fr := FaceResult{TrackID: ids[i]}
		s.touch(ids[i])
		if s.opts.ShowMesh {
			raster.DrawWireframe(s.surface, s.opts.Table, face.Landmarks, s.opts.Wireframe)
		}
		if ready {
			s.renderFace(&fr, face.Landmarks, tex)
		}
		res.Stats.Add(fr.Stats)
		res.Faces = append(res.Faces, fr)
	}

	s.prune()

	s.log.WithFields(logrus.Fields{
		"frame":   res.Index,
		"faces":   len(f.Faces),
		"state":   res.State.String(),
		"painted": res.Stats.Painted,
		"skipped": res.Stats.Skipped + res.Stats.Degenerate,
	}).Debug("frame")

	if s.onFrame != nil {
		s.onFrame(res)
	}
	return res
}

func (s *Session) renderFace(fr *FaceResult, landmarks mesh.LandmarkSet, tex *image.NRGBA) {
	log := s.log.WithField("track", fr.TrackID)
	if s.opts.Renderer == RendererAnchor {
		p := s.opts.Anchor
		p.Scale = s.mask.Scale
		if s.mask.HasEyes() {
			p.Eyes = s.mask.Eyes
		}
		if err := anchor.Render(s.surface, tex, p, landmarks); err != nil {
			fr.Err = err
			log.WithError(err).Debug("anchor render skipped")
		}
		return
	}

	fs := s.faces[fr.TrackID]
	if fs.binding == nil {
		w, h := s.surface.Size()
		if !s.opts.Bind.Admit(landmarks, w, h, s.readyFrames) {
			return
		}
		b := tex.Bounds()
		binding, err := texture.Bind(landmarks, s.opts.Landmarks, b.Dx(), b.Dy())
		if err != nil {
			fr.Err = err
			log.WithError(err).Warn("bind failed")
			return
		}
		fs.binding = binding
		log.WithFields(logrus.Fields{"mask": s.mask.ID, "frame": s.frame - 1}).Info("face bound")
	}
	fr.Bound = true
	fr.Stats = raster.RenderFace(s.surface, s.opts.Table, landmarks, fs.binding, tex, s.opts.Epsilon)
}

// touch marks a face as seen this frame, whatever the renderer or texture
// state, so a visible face never loses its binding.
func (s *Session) touch(id string) {
	fs := s.faces[id]
	if fs == nil {
		fs = &faceState{}
		s.faces[id] = fs
	}
	fs.lastSeen = s.frame
}

// prune drops face state not seen for longer than a track may go missing.
// Faces that carry their own track ids expire this way too.
func (s *Session) prune() {
	for id, fs := range s.faces {
		if s.frame-fs.lastSeen > s.opts.TrackMaxMissed {
			delete(s.faces, id)
		}
	}
}

// trackIDs resolves an identity for every face, using the tracker for faces
// that come without one, and forgets bindings of expired tracks.
func (s *Session) trackIDs(faces []Face) []string {
	ids := make([]string, len(faces))
	var pending []mesh.LandmarkSet
	var slots []int
	for i, f := range faces {
		if f.TrackID != "" {
			ids[i] = f.TrackID
			continue
		}
		pending = append(pending, f.Landmarks)
		slots = append(slots, i)
	}

	a := s.tracker.Assign(pending)
	for k, id := range a.IDs {
		ids[slots[k]] = id.String()
	}
	for _, id := range a.Expired {
		delete(s.faces, id.String())
		s.log.WithField("track", id.String()).Debug("track expired")
	}
	return ids
}
