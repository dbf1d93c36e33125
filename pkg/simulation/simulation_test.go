package simulation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-anchornav/pkg/metrics"
	"github.com/dd0wney/cluso-anchornav/pkg/navigation"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

const lobbyLab = `
name: lobby-to-lab
destination: "2"
waypoints:
  - {id: "1", name: Lobby, type: waypoint, position: {x: 0, y: 0, z: 0}}
  - {id: "2", name: Lab, type: destination, position: {x: 0, y: 0, z: 5}, reveal_tick: 2}
pairs:
  - ["1", "2"]
  - ["2", "99"]
walk:
  - {x: 0, y: 0, z: 0.5}
  - {x: 0, y: 0, z: 1}
  - {x: 0, y: 0, z: 2}
  - {x: 0, y: 0, z: 4.5}
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(lobbyLab))
	require.NoError(t, err)

	assert.Equal(t, "lobby-to-lab", sc.Name)
	require.Len(t, sc.Waypoints, 2)
	assert.Equal(t, uint64(2), sc.Waypoints[1].RevealTick)
	assert.Len(t, sc.Walk, 4)

	anchors, pairs := sc.Records()
	assert.Equal(t, waypoint.TypeDestination, anchors[1].Type)
	assert.Equal(t, []waypoint.PairRecord{{ID1: "1", ID2: "2"}, {ID1: "2", ID2: "99"}}, pairs)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "{{{"},
		{"no destination", "waypoints: [{id: a}]\nwalk: [{x: 0}]"},
		{"unknown destination", "destination: b\nwaypoints: [{id: a}]\nwalk: [{x: 0}]"},
		{"empty walk", "destination: a\nwaypoints: [{id: a}]"},
		{"bad id", "destination: a\nwaypoints: [{id: a}, {id: 'b c'}]\nwalk: [{x: 0}]"},
		{"short pair", "destination: a\nwaypoints: [{id: a}]\npairs: [[a]]\nwalk: [{x: 0}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(lobbyLab), 0o600))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "2", sc.Destination)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRecords_DefaultType(t *testing.T) {
	sc := &Scenario{Waypoints: []WaypointSpec{{ID: "a"}}}
	anchors, _ := sc.Records()
	assert.Equal(t, waypoint.TypeWaypoint, anchors[0].Type)
}

func TestScriptedPoses(t *testing.T) {
	p := NewScriptedPoses()
	p.Add("a", waypoint.At(waypoint.Vec3{X: 1}), 0)
	p.Add("b", waypoint.At(waypoint.Vec3{X: 2}), 2)

	_, ok := p.PoseOf("a")
	assert.True(t, ok)
	_, ok = p.PoseOf("b")
	assert.False(t, ok)
	_, ok = p.PoseOf("missing")
	assert.False(t, ok)

	p.Advance()
	p.Advance()
	pose, ok := p.PoseOf("b")
	require.True(t, ok)
	assert.Equal(t, 2.0, pose.Position.X)
	assert.Equal(t, uint64(2), p.LastReveal())
}

func TestWalk(t *testing.T) {
	w := NewWalk(waypoint.Vec3{X: 1}, waypoint.Vec3{X: 2})
	assert.False(t, w.Done())
	assert.Equal(t, 1.0, w.UserPosition().X)

	w.Advance()
	w.Advance()
	assert.True(t, w.Done())
	assert.Equal(t, 2.0, w.UserPosition().X)
	assert.Equal(t, 1, w.Step())

	assert.Equal(t, waypoint.Vec3{}, NewWalk().UserPosition())
}

func TestRecordingSink(t *testing.T) {
	s := NewRecordingSink(nil)

	from := waypoint.At(waypoint.Vec3{})
	to := waypoint.At(waypoint.Vec3{X: 1})
	h1 := s.PlaceMarker(from, to)
	h2 := s.PlaceArrivalMarker(to)

	live := s.Live()
	require.Len(t, live, 2)
	assert.Equal(t, Directional, live[0].Kind)
	assert.InDelta(t, 90.0, live[0].Heading, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, live[0].Rotation.Y, 1e-9)
	assert.Equal(t, Arrival, live[1].Kind)
	assert.NotEqual(t, h1, h2)

	s.RemoveMarker(h1)
	s.RemoveMarker(h1)
	s.RemoveMarker(uuid.New())
	s.RemoveMarker("not a handle")

	assert.Equal(t, 1, s.Len())
	placed, removed := s.Counts()
	assert.Equal(t, 2, placed)
	assert.Equal(t, 1, removed)
	assert.Equal(t, "arrival", s.Live()[0].Kind.String())
}

func TestSimulation_LobbyToLab(t *testing.T) {
	sc, err := ParseScenario([]byte(lobbyLab))
	require.NoError(t, err)

	sim, err := New(sc, nil, metrics.NewRegistry())
	require.NoError(t, err)
	require.Len(t, sim.Session.Warnings(), 1)

	// ticks 0-1: only the lobby is resolved, so the route has no drawable segment
	snap := sim.Step()
	assert.Equal(t, navigation.RouteActive, snap.State)
	assert.Zero(t, sim.Sink.Len())
	sim.Step()

	// tick 2: the lab resolves and its arrow appears
	snap = sim.Step()
	assert.Equal(t, navigation.RouteActive, snap.State)
	assert.Equal(t, 1, sim.Sink.Len())
	assert.Equal(t, Directional, sim.Sink.Live()[0].Kind)

	// tick 3: the user steps next to the lab
	snap = sim.Step()
	assert.Equal(t, navigation.DestinationReached, snap.State)
	require.Equal(t, 1, sim.Sink.Len())
	assert.Equal(t, Arrival, sim.Sink.Live()[0].Kind)
	assert.True(t, sim.Done())

	sim.Close()
	assert.Zero(t, sim.Sink.Len())
}

func TestSimulation_Run(t *testing.T) {
	sc, err := ParseScenario([]byte(lobbyLab))
	require.NoError(t, err)
	sim, err := New(sc, nil, nil)
	require.NoError(t, err)
	defer sim.Close()

	var states []navigation.State
	require.NoError(t, sim.Run(context.Background(), 0, 100, func(s navigation.Snapshot) {
		states = append(states, s.State)
	}))

	assert.Len(t, states, 4)
	assert.Equal(t, navigation.DestinationReached, sim.Last().State)
}

func TestSimulation_RunCancelled(t *testing.T) {
	sc, err := ParseScenario([]byte(lobbyLab))
	require.NoError(t, err)
	sim, err := New(sc, nil, nil)
	require.NoError(t, err)
	defer sim.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = sim.Run(ctx, time.Hour, 0, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulation_UnknownDestination(t *testing.T) {
	sc := &Scenario{
		Destination: "nowhere",
		Waypoints:   []WaypointSpec{{ID: "a"}},
		Walk:        []waypoint.Vec3{{}},
	}
	_, err := New(sc, nil, nil)
	assert.True(t, waypoint.IsUnknownWaypoint(err))
}
