package waypoint

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnknownWaypoint   = errors.New("unknown waypoint")
	ErrDuplicateWaypoint = errors.New("duplicate waypoint")
	ErrEmptyID           = errors.New("empty waypoint id")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op    string // Operation that failed (e.g., "AddEdge", "SetPose")
	ID    ID     // Waypoint the operation was about
	Other ID     // Second endpoint for edge operations
	Cause error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Other != "" {
		return fmt.Sprintf("%s %q-%q: %v", e.Op, e.ID, e.Other, e.Cause)
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Waypoint sets the waypoint the error is about.
func (b *ErrorBuilder) Waypoint(id ID) *ErrorBuilder {
	b.err.ID = id
	return b
}

// Edge sets both endpoints of an edge.
func (b *ErrorBuilder) Edge(a, c ID) *ErrorBuilder {
	b.err.ID = a
	b.err.Other = c
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	e := b.err
	return &e
}

// UnknownWaypointError creates an unknown waypoint error for op.
func UnknownWaypointError(op string, id ID) error {
	return NewError(op).Waypoint(id).Cause(ErrUnknownWaypoint).Err()
}

// IsUnknownWaypoint returns true if err refers to a waypoint not in the graph.
func IsUnknownWaypoint(err error) bool {
	return errors.Is(err, ErrUnknownWaypoint)
}
