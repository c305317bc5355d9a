package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosgill/effort-engine/internal/config"
	"github.com/rosgill/effort-engine/pkg/core/feasibility"
	"github.com/rosgill/effort-engine/pkg/core/model"
	"github.com/rosgill/effort-engine/pkg/db"
)

// FeasibilityStore defines the database operations needed for feasibility checks
type FeasibilityStore interface {
	GetTasksByProject(ctx context.Context, projectID string) ([]db.Task, error)
	GetAssignees(ctx context.Context) ([]db.Assignee, error)
	GetPersonalSchedules(ctx context.Context) ([]db.PersonalScheduleEntry, error)
	GetHolidays(ctx context.Context) ([]db.Holiday, error)
}

// CheckFeasibility flags every task in the project whose planned window has
// zero available capacity. Warnings come back in task order; tasks without a
// planned window are skipped.
func CheckFeasibility(
	ctx context.Context,
	store FeasibilityStore,
	cfg *config.Config,
	logger *zap.Logger,
	projectID string,
) ([]feasibility.Warning, error) {
	logger.Debug("Starting checkFeasibility", zap.String("project_id", projectID))

	storedTasks, err := store.GetTasksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	storedAssignees, err := store.GetAssignees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignees: %w", err)
	}

	scheduleEntries, err := store.GetPersonalSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personal schedules: %w", err)
	}

	holidays, err := store.GetHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	tasks := make([]model.Task, len(storedTasks))
	for i, t := range storedTasks {
		tasks[i] = taskToModel(t)
	}

	// Closure rules need an expansion window; span all planned task windows
	start, end, hasWindow := spanOfWindows(tasks)
	if !hasWindow {
		logger.Info("No tasks with planned windows to check")
		return []feasibility.Warning{}, nil
	}

	nonWorking, err := buildNonWorkingDaySet(cfg, holidays, start, end)
	if err != nil {
		return nil, err
	}

	assignees := make(map[string]model.Assignee, len(storedAssignees))
	for _, a := range storedAssignees {
		assignees[a.ID] = model.Assignee{
			ID:        a.ID,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Rate:      a.Rate,
		}
	}

	warnings := feasibility.ValidateTasks(
		tasks,
		assignees,
		groupSchedules(scheduleEntries),
		nonWorking,
		feasibility.Options{StandardHours: cfg.StandardDailyHours},
	)

	logger.Info("Feasibility check complete",
		zap.Int("tasks", len(tasks)),
		zap.Int("warnings", len(warnings)))

	return warnings, nil
}

// spanOfWindows returns the earliest planned start and latest planned end
// across all tasks, and whether any task has a window at all.
func spanOfWindows(tasks []model.Task) (start, end time.Time, ok bool) {
	for _, t := range tasks {
		if !t.HasWindow() {
			continue
		}
		if !ok || t.PlannedStart.Before(start) {
			start = *t.PlannedStart
		}
		if !ok || t.PlannedEnd.After(end) {
			end = *t.PlannedEnd
		}
		ok = true
	}
	return start, end, ok
}
