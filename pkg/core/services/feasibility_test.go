package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosgill/effort-engine/pkg/core/feasibility"
	"github.com/rosgill/effort-engine/pkg/db"
)

// mockFeasibilityStore implements FeasibilityStore for testing
type mockFeasibilityStore struct {
	tasks     []db.Task
	assignees []db.Assignee
	schedules []db.PersonalScheduleEntry
	holidays  []db.Holiday
}

func (m *mockFeasibilityStore) GetTasksByProject(ctx context.Context, projectID string) ([]db.Task, error) {
	return m.tasks, nil
}

func (m *mockFeasibilityStore) GetAssignees(ctx context.Context) ([]db.Assignee, error) {
	return m.assignees, nil
}

func (m *mockFeasibilityStore) GetPersonalSchedules(ctx context.Context) ([]db.PersonalScheduleEntry, error) {
	return m.schedules, nil
}

func (m *mockFeasibilityStore) GetHolidays(ctx context.Context) ([]db.Holiday, error) {
	return m.holidays, nil
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestCheckFeasibility_WeekendTaskFlagged(t *testing.T) {
	store := &mockFeasibilityStore{
		tasks: []db.Task{
			// 2024-07-06..07 is a weekend
			{ID: "t1", Number: 1, Name: "Audit", PlannedStart: datePtr(2024, 7, 6), PlannedEnd: datePtr(2024, 7, 7)},
			{ID: "t2", Number: 2, Name: "Fix", PlannedStart: datePtr(2024, 7, 8), PlannedEnd: datePtr(2024, 7, 9)},
		},
	}

	warnings, err := CheckFeasibility(context.Background(), store, testConfig(), zap.NewNop(), "p1")
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, "t1", warnings[0].TaskID)
	assert.Equal(t, feasibility.ReasonNoWorkingDays, warnings[0].Reason)
}

func TestCheckFeasibility_PersonalAbsenceFlagged(t *testing.T) {
	store := &mockFeasibilityStore{
		tasks: []db.Task{
			{ID: "t1", Number: 1, Name: "Spec", AssigneeID: "u1",
				PlannedStart: datePtr(2024, 7, 1), PlannedEnd: datePtr(2024, 7, 2)},
		},
		assignees: []db.Assignee{{ID: "u1", FirstName: "Mara", LastName: "Ito", Rate: 1.0}},
		schedules: []db.PersonalScheduleEntry{
			{UserID: "u1", Date: date(2024, 7, 1), FullDay: true},
			{UserID: "u1", Date: date(2024, 7, 2), FullDay: true},
		},
	}

	warnings, err := CheckFeasibility(context.Background(), store, testConfig(), zap.NewNop(), "p1")
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, "u1", warnings[0].AssigneeID)
}

func TestCheckFeasibility_StoredHolidayApplies(t *testing.T) {
	store := &mockFeasibilityStore{
		tasks: []db.Task{
			// Single-day window on a stored company holiday
			{ID: "t1", Number: 1, Name: "Kickoff", PlannedStart: datePtr(2024, 7, 2), PlannedEnd: datePtr(2024, 7, 2)},
		},
		holidays: []db.Holiday{{Date: date(2024, 7, 2), Name: "Founders day"}},
	}

	warnings, err := CheckFeasibility(context.Background(), store, testConfig(), zap.NewNop(), "p1")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
}

func TestCheckFeasibility_NoWindowedTasks(t *testing.T) {
	store := &mockFeasibilityStore{
		tasks: []db.Task{{ID: "t1", Number: 1, Name: "Backlog item"}},
	}

	warnings, err := CheckFeasibility(context.Background(), store, testConfig(), zap.NewNop(), "p1")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestCheckFeasibility_AllFeasible(t *testing.T) {
	store := &mockFeasibilityStore{
		tasks: []db.Task{
			{ID: "t1", Number: 1, Name: "Spec", AssigneeID: "u1",
				PlannedStart: datePtr(2024, 7, 1), PlannedEnd: datePtr(2024, 7, 5)},
		},
		assignees: []db.Assignee{{ID: "u1", FirstName: "Mara", LastName: "Ito", Rate: 0.5}},
	}

	warnings, err := CheckFeasibility(context.Background(), store, testConfig(), zap.NewNop(), "p1")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}
