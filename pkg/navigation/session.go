package navigation

import (
	"errors"

	"github.com/dd0wney/cluso-anchornav/pkg/algorithms"
	"github.com/dd0wney/cluso-anchornav/pkg/logging"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// Session is one activation of the navigation view: a graph built from the
// persisted records and a navigator toward the selected destination.
type Session struct {
	graph    *waypoint.Graph
	nav      *Navigator
	warnings []error
	logger   logging.Logger
}

// NewSession builds the navigation graph and starts navigating toward
// destination. Malformed records are skipped, logged and kept as warnings;
// only an unknown destination or missing collaborators fail the session.
func NewSession(anchors []waypoint.AnchorRecord, pairs []waypoint.PairRecord, destination waypoint.ID, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("session"))

	timer := logging.StartTimer(logger, "navigation graph built")
	graph, warnings := waypoint.Build(anchors, pairs)
	for _, w := range warnings {
		logger.Warn("skipped malformed history record", logging.Error(w))
		if opts.Metrics != nil {
			opts.Metrics.RecordBuildWarning(warningReason(w))
		}
	}
	timer.End(
		logging.Count(graph.Len()),
		logging.Int("edges", graph.EdgeCount()),
		logging.Int("warnings", len(warnings)))

	if opts.Metrics != nil {
		opts.Metrics.RecordGraph(graph.Len(), graph.EdgeCount())
	}

	nav, err := New(graph, destination, opts)
	if err != nil {
		return nil, err
	}

	comps := algorithms.ConnectedComponents(graph)
	if cut := graph.Len() - comps.Size(destination); cut > 0 {
		logger.Warn("some waypoints cannot reach the destination",
			logging.Destination(string(destination)),
			logging.Count(cut),
			logging.Int("islands", len(comps.List)))
	}

	logger.Info("navigation started",
		logging.Destination(string(destination)),
		logging.Count(graph.Len()))

	return &Session{
		graph:    graph,
		nav:      nav,
		warnings: warnings,
		logger:   logger,
	}, nil
}

func warningReason(err error) string {
	switch {
	case errors.Is(err, waypoint.ErrUnknownWaypoint):
		return "unknown_waypoint"
	case errors.Is(err, waypoint.ErrDuplicateWaypoint):
		return "duplicate_waypoint"
	case errors.Is(err, waypoint.ErrEmptyID):
		return "empty_id"
	default:
		return "other"
	}
}

// Tick advances the session by one frame
func (s *Session) Tick() Snapshot {
	return s.nav.Tick()
}

// Snapshot returns the current navigation state without ticking
func (s *Session) Snapshot() Snapshot {
	return s.nav.Snapshot()
}

// Warnings returns the records skipped while building the graph
func (s *Session) Warnings() []error {
	return s.warnings
}

// Graph returns the session graph
func (s *Session) Graph() *waypoint.Graph {
	return s.graph
}

// Navigator returns the session navigator
func (s *Session) Navigator() *Navigator {
	return s.nav
}

// End tears the session down, releasing every marker
func (s *Session) End() {
	s.nav.Close()
	s.logger.Info("navigation ended")
}
