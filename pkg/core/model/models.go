package model

import "time"

// Assignee represents a person tasks can be assigned to
type Assignee struct {
	ID        string
	FirstName string
	LastName  string
	// Rate is the assignee's fractional commitment in (0, 1];
	// 0.5 means half-time.
	Rate float64
}

// Task represents a unit of work in the breakdown structure
type Task struct {
	ID     string
	Number int // display number shown to users
	Name   string

	// EstimatedHours is the total required effort
	EstimatedHours float64

	// Planned window; nil when not yet planned
	PlannedStart *time.Time
	PlannedEnd   *time.Time

	// AssigneeID is empty for unassigned tasks
	AssigneeID string
}

// HasWindow reports whether the task has both planned dates set
func (t Task) HasWindow() bool {
	return t.PlannedStart != nil && t.PlannedEnd != nil
}
