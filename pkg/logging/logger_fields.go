package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Navigation field helpers

func Component(name string) Field {
	return String("component", name)
}

func WaypointID(id string) Field {
	return String("waypoint_id", id)
}

func Destination(id string) Field {
	return String("destination", id)
}

func State(s string) Field {
	return String("state", s)
}

func Route(r string) Field {
	return String("route", r)
}

func Tick(n uint64) Field {
	return Uint64("tick", n)
}

func Distance(meters float64) Field {
	return Float64("distance_m", meters)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
