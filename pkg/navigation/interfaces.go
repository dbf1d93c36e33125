package navigation

import "github.com/dd0wney/cluso-anchornav/pkg/waypoint"

// MarkerHandle identifies a marker placed by a MarkerSink. The navigator
// never inspects it.
type MarkerHandle = any

// PoseSource reports anchor poses as the AR session resolves them.
// A waypoint may report no pose for any number of ticks; once it reports a
// pose it keeps doing so.
type PoseSource interface {
	PoseOf(id waypoint.ID) (waypoint.Pose, bool)
}

// PositionSource reports where the user currently is
type PositionSource interface {
	UserPosition() waypoint.Vec3
}

// MarkerSink places and removes visual markers in the scene
type MarkerSink interface {
	// PlaceMarker places a directional marker at from pointing toward to
	PlaceMarker(from, to waypoint.Pose) MarkerHandle
	// PlaceArrivalMarker places the destination-reached marker
	PlaceArrivalMarker(at waypoint.Pose) MarkerHandle
	RemoveMarker(h MarkerHandle)
}

// PoseSourceFunc adapts a function to PoseSource
type PoseSourceFunc func(id waypoint.ID) (waypoint.Pose, bool)

// PoseOf calls f(id)
func (f PoseSourceFunc) PoseOf(id waypoint.ID) (waypoint.Pose, bool) {
	return f(id)
}

// PositionFunc adapts a function to PositionSource
type PositionFunc func() waypoint.Vec3

// UserPosition calls f()
func (f PositionFunc) UserPosition() waypoint.Vec3 {
	return f()
}
