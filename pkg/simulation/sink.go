package simulation

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-anchornav/pkg/logging"
	"github.com/dd0wney/cluso-anchornav/pkg/navigation"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// MarkerKind distinguishes route arrows from the arrival marker
type MarkerKind int

const (
	Directional MarkerKind = iota
	Arrival
)

func (k MarkerKind) String() string {
	if k == Arrival {
		return "arrival"
	}
	return "directional"
}

// Marker is a marker that would be drawn in the scene
type Marker struct {
	Handle   uuid.UUID
	Kind     MarkerKind
	Position waypoint.Vec3
	Rotation waypoint.Quaternion
	// Target is the next waypoint along the route; equal to Position for
	// the arrival marker
	Target  waypoint.Vec3
	Heading float64
}

// RecordingSink is a navigation.MarkerSink that keeps the live markers in
// memory, keyed by random handles.
type RecordingSink struct {
	mu      sync.RWMutex
	live    map[uuid.UUID]Marker
	order   []uuid.UUID
	placed  int
	removed int
	logger  logging.Logger
}

var _ navigation.MarkerSink = (*RecordingSink)(nil)

// NewRecordingSink creates an empty sink. A nil logger discards output.
func NewRecordingSink(logger logging.Logger) *RecordingSink {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RecordingSink{
		live:   make(map[uuid.UUID]Marker),
		logger: logger.With(logging.Component("marker_sink")),
	}
}

// PlaceMarker places an arrow at from oriented toward to
func (s *RecordingSink) PlaceMarker(from, to waypoint.Pose) navigation.MarkerHandle {
	return s.place(Marker{
		Kind:     Directional,
		Position: from.Position,
		Rotation: waypoint.LookRotation(from.Position, to.Position),
		Target:   to.Position,
		Heading:  waypoint.Heading(from.Position, to.Position),
	})
}

// PlaceArrivalMarker places the destination marker at the anchor pose
func (s *RecordingSink) PlaceArrivalMarker(at waypoint.Pose) navigation.MarkerHandle {
	return s.place(Marker{
		Kind:     Arrival,
		Position: at.Position,
		Rotation: at.Rotation,
		Target:   at.Position,
	})
}

func (s *RecordingSink) place(m Marker) navigation.MarkerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Handle = uuid.New()
	s.live[m.Handle] = m
	s.order = append(s.order, m.Handle)
	s.placed++
	return m.Handle
}

// RemoveMarker removes a marker placed by this sink. Unknown handles are
// ignored.
func (s *RecordingSink) RemoveMarker(h navigation.MarkerHandle) {
	id, ok := h.(uuid.UUID)
	if !ok {
		s.logger.Warn("ignoring foreign marker handle", logging.Any("handle", h))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.live[id]; !exists {
		return
	}
	delete(s.live, id)
	s.removed++
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Live returns the markers currently placed, oldest first
func (s *RecordingSink) Live() []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Marker, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.live[id])
	}
	return out
}

// Len returns the number of live markers
func (s *RecordingSink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.live)
}

// Counts returns how many markers were placed and removed in total
func (s *RecordingSink) Counts() (placed, removed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placed, s.removed
}
