package simulation

import (
	"context"
	"time"

	"github.com/dd0wney/cluso-anchornav/pkg/logging"
	"github.com/dd0wney/cluso-anchornav/pkg/metrics"
	"github.com/dd0wney/cluso-anchornav/pkg/navigation"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// Simulation drives a navigation session through a scenario, one scripted
// tick at a time.
type Simulation struct {
	Scenario *Scenario
	Poses    *ScriptedPoses
	Walk     *Walk
	Sink     *RecordingSink
	Session  *navigation.Session

	logger logging.Logger
	steps  uint64
	last   navigation.Snapshot
}

// New starts a navigation session for sc. The logger and registry may be nil.
func New(sc *Scenario, logger logging.Logger, reg *metrics.Registry) (*Simulation, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	sim := &Simulation{
		Scenario: sc,
		Poses:    sc.Poses(),
		Walk:     sc.UserWalk(),
		Sink:     NewRecordingSink(logger),
		logger:   logger.With(logging.Component("simulation"), logging.String("scenario", sc.Name)),
	}

	anchors, pairs := sc.Records()
	session, err := navigation.NewSession(anchors, pairs, waypoint.ID(sc.Destination), navigation.Options{
		Poses:    sim.Poses,
		Position: sim.Walk,
		Markers:  sim.Sink,
		Logger:   logger,
		Metrics:  reg,
	})
	if err != nil {
		return nil, err
	}
	sim.Session = session
	sim.last = session.Snapshot()
	return sim, nil
}

// Step runs one navigation tick with the current scripted poses and user
// position, then advances the script.
func (s *Simulation) Step() navigation.Snapshot {
	s.last = s.Session.Tick()
	s.steps++
	s.Poses.Advance()
	s.Walk.Advance()
	return s.last
}

// Last returns the snapshot of the most recent step
func (s *Simulation) Last() navigation.Snapshot {
	return s.last
}

// Done reports whether further steps can no longer change anything: the
// walk has ended and every scheduled pose has been revealed.
func (s *Simulation) Done() bool {
	return s.steps >= uint64(s.Walk.Len()) && s.Poses.Tick() > s.Poses.LastReveal()
}

// Run steps the simulation every interval until it is done, maxTicks steps
// have run, or ctx is cancelled. fn, if non-nil, observes every snapshot.
// A zero interval runs the steps back to back.
func (s *Simulation) Run(ctx context.Context, interval time.Duration, maxTicks int, fn func(navigation.Snapshot)) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for i := 0; maxTicks <= 0 || i < maxTicks; i++ {
		if s.Done() {
			break
		}

		snap := s.Step()
		if fn != nil {
			fn(snap)
		}

		if ticker == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	s.logger.Info("simulation finished",
		logging.Uint64("steps", s.steps),
		logging.State(s.last.State.String()))
	return nil
}

// Close ends the session and removes every marker
func (s *Simulation) Close() {
	s.Session.End()
}
