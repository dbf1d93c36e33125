package simulation

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-anchornav/pkg/validation"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// Scenario is a scripted navigation session loaded from YAML:
//
//	name: lobby-to-lab
//	destination: "2"
//	waypoints:
//	  - {id: "1", name: Lobby, type: waypoint, position: {x: 0, y: 0, z: 0}}
//	  - {id: "2", name: Lab, type: destination, position: {x: 0, y: 0, z: 5}, reveal_tick: 3}
//	pairs:
//	  - ["1", "2"]
//	walk:
//	  - {x: 0, y: 0, z: 0.5}
//	  - {x: 0, y: 0, z: 4.5}
type Scenario struct {
	Name        string          `yaml:"name"`
	Destination string          `yaml:"destination"`
	Waypoints   []WaypointSpec  `yaml:"waypoints"`
	Pairs       [][]string      `yaml:"pairs"`
	Walk        []waypoint.Vec3 `yaml:"walk"`
}

// WaypointSpec is one anchor of a scenario
type WaypointSpec struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	Position waypoint.Vec3 `yaml:"position"`
	// RevealTick is the tick at which the anchor pose becomes known
	RevealTick uint64 `yaml:"reveal_tick"`
	// Hidden anchors never resolve
	Hidden bool `yaml:"hidden"`
}

// LoadScenario reads a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates a YAML scenario
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario for values that make it unusable. Pairs that
// reference unknown anchors are left for the graph builder to report.
func (sc *Scenario) Validate() error {
	cv := validation.NewConfigValidator("scenario").
		Required("destination", sc.Destination).
		Positive("waypoints", len(sc.Waypoints)).
		Positive("walk", len(sc.Walk))

	for i, w := range sc.Waypoints {
		field := fmt.Sprintf("waypoints[%d].id", i)
		cv.Custom(field, func() error { return validation.ValidateAnchorID(w.ID) })
	}

	for i, p := range sc.Pairs {
		if len(p) != 2 {
			cv.Custom(fmt.Sprintf("pairs[%d]", i), func() error {
				return fmt.Errorf("want 2 ids, got %d", len(p))
			})
		}
	}

	cv.Custom("destination", func() error {
		for _, w := range sc.Waypoints {
			if w.ID == sc.Destination {
				return nil
			}
		}
		return errors.New("destination is not among the waypoints")
	})

	return cv.Validate()
}

// Records returns the scenario as graph builder input
func (sc *Scenario) Records() ([]waypoint.AnchorRecord, []waypoint.PairRecord) {
	anchors := make([]waypoint.AnchorRecord, 0, len(sc.Waypoints))
	for _, w := range sc.Waypoints {
		anchors = append(anchors, waypoint.AnchorRecord{
			ID:   waypoint.ID(w.ID),
			Name: w.Name,
			Type: waypoint.Type(validation.DefaultOr(w.Type, string(waypoint.TypeWaypoint))),
		})
	}

	pairs := make([]waypoint.PairRecord, 0, len(sc.Pairs))
	for _, p := range sc.Pairs {
		pairs = append(pairs, waypoint.PairRecord{ID1: waypoint.ID(p[0]), ID2: waypoint.ID(p[1])})
	}
	return anchors, pairs
}

// Poses returns a pose script for the scenario anchors
func (sc *Scenario) Poses() *ScriptedPoses {
	poses := NewScriptedPoses()
	for _, w := range sc.Waypoints {
		if w.Hidden {
			continue
		}
		poses.Add(waypoint.ID(w.ID), waypoint.At(w.Position), w.RevealTick)
	}
	return poses
}

// UserWalk returns the scripted user positions
func (sc *Scenario) UserWalk() *Walk {
	return NewWalk(sc.Walk...)
}
