package health

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// HistoryCheck reports whether the anchor history file can be read. A
// missing file is healthy: the first session starts with no history.
func HistoryCheck(path string) CheckFunc {
	return func() Check {
		check := Check{Name: "history", Details: map[string]any{"path": path}}

		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			check.Status = StatusHealthy
			check.Message = "No history yet"
		case err != nil:
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		case info.IsDir():
			check.Status = StatusUnhealthy
			check.Message = "History path is a directory"
		default:
			check.Status = StatusHealthy
			check.Details["bytes"] = info.Size()
			check.Details["modified"] = info.ModTime()
		}
		return check
	}
}

// TickCheck reports the navigation loop as degraded when it has not ticked
// within maxIdle, and unhealthy after four times that.
func TickCheck(lastTick func() (tick uint64, at time.Time), maxIdle time.Duration) CheckFunc {
	return func() Check {
		tick, at := lastTick()
		check := Check{
			Name:    "navigation_loop",
			Details: map[string]any{"tick": tick},
		}

		if at.IsZero() {
			check.Status = StatusDegraded
			check.Message = "Navigation has not ticked yet"
			return check
		}

		idle := time.Since(at)
		check.Details["idle_ms"] = idle.Milliseconds()
		switch {
		case idle > 4*maxIdle:
			check.Status = StatusUnhealthy
			check.Message = fmt.Sprintf("No tick for %s", idle.Round(time.Millisecond))
		case idle > maxIdle:
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("Slow ticks: idle %s", idle.Round(time.Millisecond))
		default:
			check.Status = StatusHealthy
		}
		return check
	}
}

// RouteCheck reports a known position without a route to the destination as
// degraded. getRoute returns whether a nearest waypoint is known, the
// navigation state name and the route hop count.
func RouteCheck(getRoute func() (hasNearest bool, state string, hops int)) CheckFunc {
	return func() Check {
		hasNearest, state, hops := getRoute()
		check := Check{
			Name:    "route",
			Status:  StatusHealthy,
			Details: map[string]any{"state": state, "hops": hops},
		}

		switch {
		case !hasNearest:
			check.Message = "Waiting for a resolved anchor"
		case state == "no_route":
			check.Status = StatusDegraded
			check.Message = "Destination unreachable from the nearest waypoint"
		}
		return check
	}
}
