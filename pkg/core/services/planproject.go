package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosgill/effort-engine/internal/config"
	"github.com/rosgill/effort-engine/pkg/core/capacity"
	"github.com/rosgill/effort-engine/pkg/core/quantize"
	"github.com/rosgill/effort-engine/pkg/core/schedule"
	"github.com/rosgill/effort-engine/pkg/db"
)

// PlanStore defines the database operations needed for planning a project
type PlanStore interface {
	GetProject(ctx context.Context, id string) (*db.Project, error)
	GetTasksByProject(ctx context.Context, projectID string) ([]db.Task, error)
	GetAssignee(ctx context.Context, id string) (*db.Assignee, error)
	GetHolidays(ctx context.Context) ([]db.Holiday, error)
	InsertAllocations(ctx context.Context, allocations []db.Allocation) error
	InsertMonthlyAllocations(ctx context.Context, allocations []db.MonthlyAllocation) error
}

// PlanResult contains the outcome of a planning run
type PlanResult struct {
	RunID    string
	Project  *db.Project
	Assignee *db.Assignee

	// Capacity is the assignee's day-by-day capacity over the project window
	Capacity *capacity.Table

	// Entries is the generated day-level allocation sequence
	Entries []schedule.AllocationEntry

	// Remaining holds each task's unmet hours; non-zero values mean the
	// project window had insufficient capacity
	Remaining map[string]float64

	// Monthly holds each task's quantized month-level hours
	Monthly map[string]map[string]float64

	FullyScheduled bool
}

// PlanProject generates the day-by-day schedule and quantized monthly
// allocations for one assignee's tasks within a project window.
// If dryRun is true, nothing is persisted.
func PlanProject(
	ctx context.Context,
	store PlanStore,
	cfg *config.Config,
	logger *zap.Logger,
	projectID string,
	assigneeID string,
	dryRun bool,
) (*PlanResult, error) {
	logger.Debug("Starting planProject",
		zap.String("project_id", projectID),
		zap.String("assignee_id", assigneeID),
		zap.Bool("dry_run", dryRun))

	project, err := store.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	assignee, err := store.GetAssignee(ctx, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignee: %w", err)
	}

	allTasks, err := store.GetTasksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	// Only this assignee's tasks are packed, in stored order
	var tasks []db.Task
	for _, t := range allTasks {
		if t.AssigneeID == assigneeID {
			tasks = append(tasks, t)
		}
	}
	logger.Info("Planning tasks",
		zap.String("project", project.Name),
		zap.Int("task_count", len(tasks)))

	holidays, err := store.GetHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	nonWorking, err := buildNonWorkingDaySet(cfg, holidays, project.StartDate, project.EndDate)
	if err != nil {
		return nil, err
	}

	table, err := capacity.Compute(project.StartDate, project.EndDate, nonWorking, assignee.Rate, cfg.StandardDailyHours)
	if err != nil {
		return nil, fmt.Errorf("failed to compute capacity: %w", err)
	}
	logger.Debug("Capacity computed",
		zap.Int("days", table.Len()),
		zap.Float64("total_hours", table.Total()))

	requirements := make([]schedule.TaskRequirement, len(tasks))
	for i, t := range tasks {
		requirements[i] = schedule.TaskRequirement{ID: t.ID, Name: t.Name, Hours: t.EstimatedHours}
	}

	generated := schedule.Generate(table, requirements)
	if !generated.FullyScheduled() {
		logger.Warn("Project window has insufficient capacity for all tasks",
			zap.Float64("total_capacity", table.Total()))
	}

	quantizer, err := quantize.New(cfg.QuantizeUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to create quantizer: %w", err)
	}

	// Month-level allocations: sum each task's scheduled hours per month,
	// then quantize so the rounded monthly figures still total the task's
	// scheduled hours. Tasks that received no capacity fall back to
	// weighting their planned window.
	monthly := make(map[string]map[string]float64, len(tasks))
	for _, t := range tasks {
		raw := make(map[string]float64)
		for _, e := range generated.Entries {
			if e.TaskID == t.ID {
				raw[PeriodKey(e.Date)] += e.Hours
			}
		}
		if len(raw) == 0 && t.PlannedStart != nil && t.PlannedEnd != nil && t.EstimatedHours > 0 {
			raw = SplitByMonth(*t.PlannedStart, *t.PlannedEnd, t.EstimatedHours)
		}
		monthly[t.ID] = quantizer.Quantize(raw)
	}

	result := &PlanResult{
		RunID:          uuid.NewString(),
		Project:        project,
		Assignee:       assignee,
		Capacity:       table,
		Entries:        generated.Entries,
		Remaining:      generated.Remaining,
		Monthly:        monthly,
		FullyScheduled: generated.FullyScheduled(),
	}

	if dryRun {
		logger.Info("Dry run - skipping persistence",
			zap.Int("entry_count", len(result.Entries)))
		return result, nil
	}

	allocations := make([]db.Allocation, len(result.Entries))
	for i, e := range result.Entries {
		allocations[i] = db.Allocation{
			ID:        uuid.NewString(),
			RunID:     result.RunID,
			ProjectID: project.ID,
			TaskID:    e.TaskID,
			Date:      e.Date,
			Hours:     e.Hours,
		}
	}
	if err := store.InsertAllocations(ctx, allocations); err != nil {
		return nil, fmt.Errorf("failed to save allocations: %w", err)
	}

	var monthlyRows []db.MonthlyAllocation
	for taskID, byPeriod := range monthly {
		for _, period := range quantize.SortedPeriods(byPeriod) {
			if byPeriod[period] == 0 {
				continue
			}
			monthlyRows = append(monthlyRows, db.MonthlyAllocation{
				ID:     uuid.NewString(),
				RunID:  result.RunID,
				TaskID: taskID,
				Period: period,
				Hours:  byPeriod[period],
			})
		}
	}
	if err := store.InsertMonthlyAllocations(ctx, monthlyRows); err != nil {
		return nil, fmt.Errorf("failed to save monthly allocations: %w", err)
	}

	logger.Info("Plan saved",
		zap.String("run_id", result.RunID),
		zap.Int("allocations", len(allocations)),
		zap.Int("monthly_allocations", len(monthlyRows)))

	return result, nil
}
