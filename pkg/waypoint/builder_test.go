package waypoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LobbyLab(t *testing.T) {
	g, warnings := Build(
		[]AnchorRecord{
			{ID: "1", Name: "Lobby", Type: TypeWaypoint},
			{ID: "2", Name: "Lab", Type: TypeDestination},
		},
		[]PairRecord{{ID1: "1", ID2: "2"}},
	)

	assert.Empty(t, warnings)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []ID{"2"}, g.Neighbors("1"))
	assert.Equal(t, []ID{"1"}, g.Neighbors("2"))

	for _, w := range g.Waypoints() {
		assert.False(t, w.Resolved(), "waypoint %s should start unresolved", w.ID)
	}
}

func TestBuild_SkipsMalformedPair(t *testing.T) {
	g, warnings := Build(
		[]AnchorRecord{
			{ID: "1", Name: "Lobby", Type: TypeWaypoint},
			{ID: "2", Name: "Hall", Type: TypeWaypoint},
			{ID: "3", Name: "Lab", Type: TypeDestination},
		},
		[]PairRecord{
			{ID1: "1", ID2: "2"},
			{ID1: "2", ID2: "99"},
			{ID1: "2", ID2: "3"},
		},
	)

	require.Len(t, warnings, 1)
	assert.True(t, IsUnknownWaypoint(warnings[0]))
	assert.Contains(t, warnings[0].Error(), "99")

	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []ID{"1", "3"}, g.Neighbors("2"))
}

func TestBuild_DuplicateAnchorKeepsFirst(t *testing.T) {
	g, warnings := Build(
		[]AnchorRecord{
			{ID: "1", Name: "Lobby", Type: TypeWaypoint},
			{ID: "1", Name: "Shadow", Type: TypeDestination},
		},
		nil,
	)

	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], ErrDuplicateWaypoint)

	w, ok := g.Waypoint("1")
	require.True(t, ok)
	assert.Equal(t, "Lobby", w.Name)
}

func TestBuild_PreservesInputOrder(t *testing.T) {
	g, _ := Build(
		[]AnchorRecord{{ID: "c"}, {ID: "a"}, {ID: "b"}},
		nil,
	)

	var ids []ID
	for _, w := range g.Waypoints() {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []ID{"c", "a", "b"}, ids)
}

func TestBuild_Empty(t *testing.T) {
	g, warnings := Build(nil, nil)
	assert.Empty(t, warnings)
	assert.Equal(t, 0, g.Len())
}
