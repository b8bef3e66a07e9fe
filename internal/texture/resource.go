package texture

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrAssetLoadFailed wraps any failure to fetch or decode a texture.
	ErrAssetLoadFailed = errors.New("texture: asset load failed")
	// ErrStaleCallback reports a completion for a request that has since
	// been superseded.
	ErrStaleCallback = errors.New("texture: stale load completion")
)

// State is the lifecycle of the active texture.
type State int

const (
	Unloaded State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Request identifies one load attempt. Gen increases with every Begin, so a
// completion carrying an older Gen is stale.
type Request struct {
	ID  string
	Src string
	Gen uint64
}

// Completion is delivered once per Request when the load finishes.
type Completion struct {
	Request Request
	Image   *image.NRGBA
	Err     error
}

// Resource is the active texture and its load state. It is owned by a single
// goroutine (the frame loop); loads report back through Resolve.
type Resource struct {
	req   Request
	state State
	img   *image.NRGBA
	err   error
}

// State returns the current lifecycle state.
func (r *Resource) State() State { return r.state }

// ID returns the texture id of the current request.
func (r *Resource) ID() string { return r.req.ID }

// Request returns the current load request.
func (r *Resource) Request() Request { return r.req }

// Err returns the load error while in Failed.
func (r *Resource) Err() error { return r.err }

// Begin supersedes any in-flight load and enters Loading.
func (r *Resource) Begin(id, src string) Request {
	r.req = Request{ID: id, Src: src, Gen: r.req.Gen + 1}
	r.state = Loading
	r.img = nil
	r.err = nil
	return r.req
}

// Reset drops the texture (blank selection) and supersedes in-flight loads.
func (r *Resource) Reset(id string) {
	r.req = Request{ID: id, Gen: r.req.Gen + 1}
	r.state = Unloaded
	r.img = nil
	r.err = nil
}

// Resolve applies a completion. It returns ErrStaleCallback, leaving the
// resource untouched, when c belongs to a superseded request.
func (r *Resource) Resolve(c Completion) error {
	if r.state != Loading || c.Request != r.req {
		return ErrStaleCallback
	}
	if c.Err == nil && c.Image == nil {
		c.Err = errors.New("empty image")
	}
	if c.Err != nil {
		r.state = Failed
		if errors.Is(c.Err, ErrAssetLoadFailed) {
			r.err = c.Err
		} else {
			r.err = fmt.Errorf("%w: %s: %v", ErrAssetLoadFailed, c.Request.ID, c.Err)
		}
		return nil
	}
	r.state = Loaded
	r.img = c.Image
	return nil
}

// Image returns the pixels only once the resource is Loaded.
func (r *Resource) Image() (*image.NRGBA, bool) {
	if r.state != Loaded {
		return nil, false
	}
	return r.img, true
}
