package db

import "context"

// ProjectStore defines the interface for project database operations
type ProjectStore interface {
	GetProject(ctx context.Context, id string) (*Project, error)
	GetTasksByProject(ctx context.Context, projectID string) ([]Task, error)
}

// AssigneeStore defines the interface for assignee database operations
type AssigneeStore interface {
	GetAssignee(ctx context.Context, id string) (*Assignee, error)
	GetAssignees(ctx context.Context) ([]Assignee, error)
	GetPersonalSchedules(ctx context.Context) ([]PersonalScheduleEntry, error)
}

// CalendarStore defines the interface for company calendar operations
type CalendarStore interface {
	GetHolidays(ctx context.Context) ([]Holiday, error)
}

// AllocationStore defines the interface for allocation database operations
type AllocationStore interface {
	InsertAllocations(ctx context.Context, allocations []Allocation) error
	InsertMonthlyAllocations(ctx context.Context, allocations []MonthlyAllocation) error
	GetAllocationsByProject(ctx context.Context, projectID string) ([]Allocation, error)
}
