package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-anchornav/pkg/logging"
)

const filePermissions = 0o600

type snapshot struct {
	Anchors []AnchorEntry `json:"anchors"`
	Pairs   []PairEntry   `json:"pairs"`
}

// Save writes the history to path, replacing any previous file atomically
func (s *Store) Save(path string) error {
	data, err := json.Marshal(snapshot{Anchors: s.anchors, Pairs: s.pairs})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if s.compress {
		data = snappy.Encode(nil, data)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename history: %w", err)
	}
	return nil
}

// Load replaces the store contents with the history at path. A missing file
// yields an empty history. Entries that fail validation are skipped and
// logged; the limit and ordering rules are reapplied.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.anchors, s.pairs = nil, nil
		s.record()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	// Plain snapshots are JSON objects; anything else is snappy-compressed
	if !json.Valid(data) {
		decoded, err := snappy.Decode(nil, data)
		if err != nil {
			return fmt.Errorf("failed to decompress history: %w", err)
		}
		data = decoded
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to unmarshal history: %w", err)
	}

	s.anchors = s.anchors[:0]
	for _, a := range snap.Anchors {
		if err := s.checkAnchor(a); err != nil {
			s.logger.Warn("skipping invalid anchor entry", logging.WaypointID(a.ID), logging.Error(err))
			continue
		}
		s.anchors = append(s.anchors, a)
	}
	s.sortAnchors()
	if len(s.anchors) > s.limit {
		s.anchors = s.anchors[:s.limit]
	}

	s.pairs = s.pairs[:0]
	for _, p := range snap.Pairs {
		if err := s.checkPair(p); err != nil {
			s.logger.Warn("skipping invalid pair entry",
				logging.String("id1", p.ID1), logging.String("id2", p.ID2), logging.Error(err))
			continue
		}
		s.pairs = append(s.pairs, p)
	}
	if over := len(s.pairs) - s.limit; over > 0 {
		s.pairs = append([]PairEntry(nil), s.pairs[over:]...)
	}

	s.record()
	return nil
}
