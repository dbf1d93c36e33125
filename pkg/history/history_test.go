package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-anchornav/pkg/metrics"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// fakeClock returns a controllable time source
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func TestAddAnchor_NewestFirst(t *testing.T) {
	clock := newClock()
	s := New(WithClock(clock.Now))

	require.NoError(t, s.AddAnchor("Lobby", "1", "waypoint"))
	clock.Advance(time.Minute)
	require.NoError(t, s.AddAnchor("Lab", "2", "destination"))

	anchors := s.Anchors()
	require.Len(t, anchors, 2)
	assert.Equal(t, "2", anchors[0].ID)
	assert.Equal(t, "1", anchors[1].ID)
	assert.Equal(t, clock.Now(), anchors[0].CreatedAt)
}

func TestAddAnchor_LimitDropsOldest(t *testing.T) {
	clock := newClock()
	s := New(WithClock(clock.Now), WithLimit(3))

	for i := 0; i < 5; i++ {
		require.NoError(t, s.AddAnchor(fmt.Sprintf("A%d", i), fmt.Sprintf("id-%d", i), "waypoint"))
		clock.Advance(time.Second)
	}

	anchors := s.Anchors()
	require.Len(t, anchors, 3)
	assert.Equal(t, "id-4", anchors[0].ID)
	assert.Equal(t, "id-2", anchors[2].ID)
}

func TestAddAnchor_RejectsInvalid(t *testing.T) {
	reg := metrics.NewRegistry()
	s := New(WithMetrics(reg))

	assert.Error(t, s.AddAnchor("Lobby", "", "waypoint"))
	assert.Error(t, s.AddAnchor("Lobby", "has space", "waypoint"))
	assert.Empty(t, s.Anchors())
}

func TestAddPair(t *testing.T) {
	s := New(WithLimit(2))

	require.NoError(t, s.AddPair("1", "2"))
	require.NoError(t, s.AddPair("2", "3"))
	require.NoError(t, s.AddPair("3", "4"))
	assert.Error(t, s.AddPair("4", "4"))

	assert.Equal(t, []PairEntry{{ID1: "2", ID2: "3"}, {ID1: "3", ID2: "4"}}, s.Pairs())
}

func TestPrune_DropsExpiredAnchors(t *testing.T) {
	clock := newClock()
	s := New(WithClock(clock.Now))

	require.NoError(t, s.AddAnchor("Old", "old", "waypoint"))
	clock.Advance(23 * time.Hour)
	require.NoError(t, s.AddAnchor("Fresh", "fresh", "waypoint"))
	clock.Advance(time.Hour)

	assert.Equal(t, 1, s.Prune())

	anchors := s.Anchors()
	require.Len(t, anchors, 1)
	assert.Equal(t, "fresh", anchors[0].ID)
	assert.Equal(t, 0, s.Prune())
}

func TestRecords_ConvertsForBuilder(t *testing.T) {
	clock := newClock()
	s := New(WithClock(clock.Now))

	require.NoError(t, s.AddAnchor("Lobby", "1", "waypoint"))
	clock.Advance(time.Second)
	require.NoError(t, s.AddAnchor("Lab", "2", "destination"))
	require.NoError(t, s.AddPair("1", "2"))

	anchors, pairs := s.Records()
	assert.Equal(t, []waypoint.AnchorRecord{
		{ID: "2", Name: "Lab", Type: waypoint.TypeDestination},
		{ID: "1", Name: "Lobby", Type: waypoint.TypeWaypoint},
	}, anchors)
	assert.Equal(t, []waypoint.PairRecord{{ID1: "1", ID2: "2"}}, pairs)

	g, warnings := waypoint.Build(anchors, pairs)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		t.Run(fmt.Sprintf("compress=%v", compress), func(t *testing.T) {
			clock := newClock()
			path := filepath.Join(t.TempDir(), "history.json")

			s := New(WithClock(clock.Now), WithCompression(compress))
			require.NoError(t, s.AddAnchor("Lobby", "1", "waypoint"))
			require.NoError(t, s.AddPair("1", "2"))
			require.NoError(t, s.Save(path))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, !compress, raw[0] == '{')

			loaded := New(WithClock(clock.Now))
			require.NoError(t, loaded.Load(path))
			assert.Equal(t, s.Anchors(), loaded.Anchors())
			assert.Equal(t, s.Pairs(), loaded.Pairs())
		})
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPair("1", "2"))

	require.NoError(t, s.Load(filepath.Join(t.TempDir(), "absent.json")))
	assert.Empty(t, s.Anchors())
	assert.Empty(t, s.Pairs())
}

func TestLoad_SkipsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	doc := `{
		"anchors": [
			{"name": "Lobby", "id": "1", "type": "waypoint", "created_at": "2026-03-01T08:00:00Z"},
			{"name": "Broken", "id": "", "type": "waypoint", "created_at": "2026-03-01T08:00:00Z"}
		],
		"pairs": [
			{"id1": "1", "id2": "2"},
			{"id1": "3", "id2": "3"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s := New(WithClock(newClock().Now))
	require.NoError(t, s.Load(path))

	require.Len(t, s.Anchors(), 1)
	assert.Equal(t, "1", s.Anchors()[0].ID)
	assert.Equal(t, []PairEntry{{ID1: "1", ID2: "2"}}, s.Pairs())
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	require.NoError(t, os.WriteFile(path, []byte("not json, not snappy"), 0o600))
	assert.Error(t, New().Load(path))

	// valid snappy wrapping invalid JSON
	require.NoError(t, os.WriteFile(path, snappy.Encode(nil, []byte("[oops")), 0o600))
	err := New().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
