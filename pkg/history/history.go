// Package history keeps the locally persisted record of hosted anchors and
// the walkable pairs between them. The navigation graph is built from it.
package history

import (
	"sort"
	"time"

	"github.com/dd0wney/cluso-anchornav/pkg/logging"
	"github.com/dd0wney/cluso-anchornav/pkg/metrics"
	"github.com/dd0wney/cluso-anchornav/pkg/validation"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// Defaults match the limits of the mobile client's local store
const (
	DefaultLimit  = 40
	DefaultMaxAge = 24 * time.Hour
)

// AnchorEntry is a hosted cloud anchor
type AnchorEntry struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// PairEntry is a walkable connection between two hosted anchors
type PairEntry struct {
	ID1 string `json:"id1"`
	ID2 string `json:"id2"`
}

// Store holds anchor and pair history. Anchors are kept newest first.
type Store struct {
	anchors []AnchorEntry
	pairs   []PairEntry

	limit    int
	maxAge   time.Duration
	compress bool
	now      func() time.Time
	logger   logging.Logger
	metrics  *metrics.Registry
}

// Option configures a Store
type Option func(*Store)

// WithLimit caps the number of anchor and pair entries kept
func WithLimit(n int) Option {
	return func(s *Store) { s.limit = n }
}

// WithMaxAge sets the age at which anchors are pruned
func WithMaxAge(d time.Duration) Option {
	return func(s *Store) { s.maxAge = d }
}

// WithCompression makes Save write snappy-compressed snapshots
func WithCompression(enabled bool) Option {
	return func(s *Store) { s.compress = enabled }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for skipped records
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics records history sizes and rejections
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Store) { s.metrics = r }
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		limit:  DefaultLimit,
		maxAge: DefaultMaxAge,
		now:    time.Now,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddAnchor validates and records a newly hosted anchor. The oldest anchors
// are dropped once the limit is exceeded.
func (s *Store) AddAnchor(name, id, typ string) error {
	entry := AnchorEntry{Name: name, ID: id, Type: typ, CreatedAt: s.now()}
	if err := s.checkAnchor(entry); err != nil {
		return err
	}

	s.anchors = append(s.anchors, entry)
	s.sortAnchors()
	if len(s.anchors) > s.limit {
		s.anchors = s.anchors[:s.limit]
	}
	s.record()
	return nil
}

// AddPair validates and records a connection between two anchors. The oldest
// pairs are dropped once the limit is exceeded.
func (s *Store) AddPair(id1, id2 string) error {
	entry := PairEntry{ID1: id1, ID2: id2}
	if err := s.checkPair(entry); err != nil {
		return err
	}

	s.pairs = append(s.pairs, entry)
	if over := len(s.pairs) - s.limit; over > 0 {
		s.pairs = append([]PairEntry(nil), s.pairs[over:]...)
	}
	s.record()
	return nil
}

// Prune drops anchors at least maxAge old and returns how many were removed.
// Pairs are left alone; the graph builder skips pairs whose anchors are gone.
func (s *Store) Prune() int {
	now := s.now()
	kept := s.anchors[:0]
	for _, a := range s.anchors {
		if now.Sub(a.CreatedAt) < s.maxAge {
			kept = append(kept, a)
		}
	}
	removed := len(s.anchors) - len(kept)
	s.anchors = kept

	if removed > 0 {
		s.logger.Info("pruned expired anchors", logging.Count(removed))
		if s.metrics != nil {
			s.metrics.HistoryPrunedTotal.Add(float64(removed))
		}
		s.record()
	}
	return removed
}

// Anchors returns a copy of the anchor entries, newest first
func (s *Store) Anchors() []AnchorEntry {
	return append([]AnchorEntry(nil), s.anchors...)
}

// Pairs returns a copy of the pair entries, oldest first
func (s *Store) Pairs() []PairEntry {
	return append([]PairEntry(nil), s.pairs...)
}

// Records prunes expired anchors and converts the history into graph
// builder input
func (s *Store) Records() ([]waypoint.AnchorRecord, []waypoint.PairRecord) {
	s.Prune()

	anchors := make([]waypoint.AnchorRecord, len(s.anchors))
	for i, a := range s.anchors {
		anchors[i] = waypoint.AnchorRecord{
			ID:   waypoint.ID(a.ID),
			Name: a.Name,
			Type: waypoint.Type(a.Type),
		}
	}

	pairs := make([]waypoint.PairRecord, len(s.pairs))
	for i, p := range s.pairs {
		pairs[i] = waypoint.PairRecord{ID1: waypoint.ID(p.ID1), ID2: waypoint.ID(p.ID2)}
	}
	return anchors, pairs
}

func (s *Store) checkAnchor(a AnchorEntry) error {
	err := validation.ValidateAnchorEntry(&validation.AnchorEntryRequest{ID: a.ID, Name: a.Name, Type: a.Type})
	if err != nil {
		s.reject("anchor")
	}
	return err
}

func (s *Store) checkPair(p PairEntry) error {
	err := validation.ValidatePairEntry(&validation.PairEntryRequest{ID1: p.ID1, ID2: p.ID2})
	if err != nil {
		s.reject("pair")
	}
	return err
}

// sortAnchors orders anchors newest first, keeping insertion order for ties
func (s *Store) sortAnchors() {
	sort.SliceStable(s.anchors, func(i, j int) bool {
		return s.anchors[i].CreatedAt.After(s.anchors[j].CreatedAt)
	})
}

func (s *Store) reject(kind string) {
	if s.metrics != nil {
		s.metrics.HistoryRejectedTotal.WithLabelValues(kind).Inc()
	}
}

func (s *Store) record() {
	if s.metrics != nil {
		s.metrics.RecordHistory(len(s.anchors), len(s.pairs))
	}
}
