package db

import "time"

// Project represents a database project record
type Project struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// Assignee represents a database assignee record
type Assignee struct {
	ID        string
	FirstName string
	LastName  string
	Rate      float64
}

// Task represents a database task record. Number is the display number shown
// to users; SortOrder carries the caller-defined scheduling precedence.
type Task struct {
	ID             string
	ProjectID      string
	Number         int
	Name           string
	EstimatedHours float64
	PlannedStart   *time.Time
	PlannedEnd     *time.Time
	AssigneeID     string // empty when unassigned
	SortOrder      int
}

// PersonalScheduleEntry represents a date-scoped schedule exception for a user
type PersonalScheduleEntry struct {
	ID            string
	UserID        string
	Date          time.Time
	FullDay       bool
	DeductedHours float64
}

// Holiday represents a company holiday record
type Holiday struct {
	Date time.Time
	Name string
}

// Allocation represents a persisted day-level allocation row produced by a
// planning run
type Allocation struct {
	ID        string
	RunID     string
	ProjectID string
	TaskID    string
	Date      time.Time
	Hours     float64
}

// MonthlyAllocation represents a persisted quantized month-level allocation
type MonthlyAllocation struct {
	ID     string
	RunID  string
	TaskID string
	Period string // YYYY-MM
	Hours  float64
}
