package track

import (
	"sort"

	"github.com/google/uuid"

	"facewarp/internal/mathutil"
	"facewarp/internal/mesh"
)

const (
	DefaultMaxDistance = 0.5
	DefaultMaxMissed   = 15
)

// Track is one face followed across frames.
type Track struct {
	ID     uuid.UUID
	Center mathutil.Vec2
	// Diagonal of the last seen landmark bounding box, normalized units.
	Diagonal float64
	Age      int
	Missed   int
}

// Assignment is the outcome of matching one frame's faces.
type Assignment struct {
	// IDs[i] is the track of faces[i].
	IDs []uuid.UUID
	// Started lists tracks opened this frame.
	Started []uuid.UUID
	// Expired lists tracks dropped this frame after too many misses.
	Expired []uuid.UUID
}

// Tracker keeps face identity across frames by greedy nearest-centroid
// matching. It is not safe for concurrent use.
type Tracker struct {
	maxDistance float64
	maxMissed   int
	tracks      map[uuid.UUID]*Track
	newID       func() uuid.UUID
}

// New returns a tracker. A face matches a live track when their centers are
// closer than maxDistance times the face's bounding-box diagonal. Tracks not
// seen for more than maxMissed frames expire.
func New(maxDistance float64, maxMissed int) *Tracker {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	if maxMissed < 0 {
		maxMissed = DefaultMaxMissed
	}
	return &Tracker{
		maxDistance: maxDistance,
		maxMissed:   maxMissed,
		tracks:      make(map[uuid.UUID]*Track),
		newID:       uuid.New,
	}
}

type candidate struct {
	face  int
	track uuid.UUID
	dist  float64
}

// Assign matches faces to tracks, opening and expiring tracks as needed.
func (t *Tracker) Assign(faces []mesh.LandmarkSet) Assignment {
	a := Assignment{IDs: make([]uuid.UUID, len(faces))}

	centers := make([]mathutil.Vec2, len(faces))
	diags := make([]float64, len(faces))
	var cands []candidate
	for i, f := range faces {
		centers[i] = f.Center()
		diags[i] = f.Diagonal()
		for id, tr := range t.tracks {
			d := centers[i].Dist(tr.Center)
			if d <= t.maxDistance*maxf(diags[i], tr.Diagonal) {
				cands = append(cands, candidate{face: i, track: id, dist: d})
			}
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].face < cands[j].face
	})

	matchedFace := make([]bool, len(faces))
	matchedTrack := make(map[uuid.UUID]bool, len(t.tracks))
	for _, c := range cands {
		if matchedFace[c.face] || matchedTrack[c.track] {
			continue
		}
		matchedFace[c.face] = true
		matchedTrack[c.track] = true
		tr := t.tracks[c.track]
		tr.Center = centers[c.face]
		tr.Diagonal = diags[c.face]
		tr.Missed = 0
		tr.Age++
		a.IDs[c.face] = c.track
	}

	for id, tr := range t.tracks {
		if matchedTrack[id] {
			continue
		}
		tr.Missed++
		if tr.Missed > t.maxMissed {
			delete(t.tracks, id)
			a.Expired = append(a.Expired, id)
		}
	}

	for i := range faces {
		if matchedFace[i] {
			continue
		}
		id := t.newID()
		t.tracks[id] = &Track{ID: id, Center: centers[i], Diagonal: diags[i], Age: 1}
		a.IDs[i] = id
		a.Started = append(a.Started, id)
	}
	return a
}

// Len returns the number of live tracks.
func (t *Tracker) Len() int { return len(t.tracks) }

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
