// Package simulation provides scripted stand-ins for the AR session so a
// navigation session can be driven without a device: anchor poses that
// resolve on a schedule, a walking user, and a marker sink that records
// what would be drawn.
package simulation

import (
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

type scriptedPose struct {
	pose   waypoint.Pose
	reveal uint64
}

// ScriptedPoses reports each anchor pose once the simulated clock reaches
// the tick at which that anchor resolves.
type ScriptedPoses struct {
	poses map[waypoint.ID]scriptedPose
	tick  uint64
}

// NewScriptedPoses creates an empty pose script at tick 0
func NewScriptedPoses() *ScriptedPoses {
	return &ScriptedPoses{poses: make(map[waypoint.ID]scriptedPose)}
}

// Add schedules id to resolve to pose at the given tick
func (p *ScriptedPoses) Add(id waypoint.ID, pose waypoint.Pose, reveal uint64) {
	p.poses[id] = scriptedPose{pose: pose, reveal: reveal}
}

// PoseOf implements navigation.PoseSource
func (p *ScriptedPoses) PoseOf(id waypoint.ID) (waypoint.Pose, bool) {
	sp, ok := p.poses[id]
	if !ok || sp.reveal > p.tick {
		return waypoint.Pose{}, false
	}
	return sp.pose, true
}

// Tick returns the current simulated tick
func (p *ScriptedPoses) Tick() uint64 {
	return p.tick
}

// Advance moves the clock forward one tick
func (p *ScriptedPoses) Advance() {
	p.tick++
}

// LastReveal returns the latest tick at which any pose resolves
func (p *ScriptedPoses) LastReveal() uint64 {
	var last uint64
	for _, sp := range p.poses {
		if sp.reveal > last {
			last = sp.reveal
		}
	}
	return last
}

// Walk is a user moving through a fixed list of positions, one per tick.
// After the last position the user stays put.
type Walk struct {
	steps []waypoint.Vec3
	at    int
}

// NewWalk creates a walk over steps
func NewWalk(steps ...waypoint.Vec3) *Walk {
	return &Walk{steps: append([]waypoint.Vec3(nil), steps...)}
}

// UserPosition implements navigation.PositionSource
func (w *Walk) UserPosition() waypoint.Vec3 {
	if len(w.steps) == 0 {
		return waypoint.Vec3{}
	}
	return w.steps[w.at]
}

// Advance moves to the next position
func (w *Walk) Advance() {
	if w.at < len(w.steps)-1 {
		w.at++
	}
}

// Done reports whether the user stands on the final position
func (w *Walk) Done() bool {
	return w.at >= len(w.steps)-1
}

// Step returns the index of the current position
func (w *Walk) Step() int {
	return w.at
}

// Len returns the number of positions in the walk
func (w *Walk) Len() int {
	return len(w.steps)
}
