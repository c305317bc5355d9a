package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosgill/effort-engine/internal/config"
	"github.com/rosgill/effort-engine/pkg/core/capacity"
	"github.com/rosgill/effort-engine/pkg/db"
)

// CapacityStore defines the database operations needed to show capacity
type CapacityStore interface {
	GetAssignee(ctx context.Context, id string) (*db.Assignee, error)
	GetHolidays(ctx context.Context) ([]db.Holiday, error)
}

// CapacityResult pairs an assignee with their capacity table over a window
type CapacityResult struct {
	Assignee *db.Assignee
	Table    *capacity.Table
}

// ShowCapacity computes an assignee's day-by-day capacity over [start, end]
// for display
func ShowCapacity(
	ctx context.Context,
	store CapacityStore,
	cfg *config.Config,
	logger *zap.Logger,
	assigneeID string,
	start, end time.Time,
) (*CapacityResult, error) {
	logger.Debug("Starting showCapacity",
		zap.String("assignee_id", assigneeID),
		zap.Time("start", start),
		zap.Time("end", end))

	assignee, err := store.GetAssignee(ctx, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignee: %w", err)
	}

	holidays, err := store.GetHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	nonWorking, err := buildNonWorkingDaySet(cfg, holidays, start, end)
	if err != nil {
		return nil, err
	}

	table, err := capacity.Compute(start, end, nonWorking, assignee.Rate, cfg.StandardDailyHours)
	if err != nil {
		return nil, fmt.Errorf("failed to compute capacity: %w", err)
	}

	return &CapacityResult{Assignee: assignee, Table: table}, nil
}
