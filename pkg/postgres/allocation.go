package postgres

import (
	"context"
	"fmt"

	"github.com/rosgill/effort-engine/pkg/db"
)

// GetAllocationsByProject retrieves all allocation rows for a project
func (d *DB) GetAllocationsByProject(ctx context.Context, projectID string) ([]db.Allocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, project_id, task_id, date, hours
		FROM allocation
		WHERE project_id = $1
		ORDER BY date
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []db.Allocation
	for rows.Next() {
		var a db.Allocation
		if err := rows.Scan(&a.ID, &a.RunID, &a.ProjectID, &a.TaskID, &a.Date, &a.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// InsertAllocations inserts day-level allocation rows in a single transaction
func (d *DB) InsertAllocations(ctx context.Context, allocations []db.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range allocations {
		_, err := tx.Exec(ctx, `
			INSERT INTO allocation (id, run_id, project_id, task_id, date, hours)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.RunID, a.ProjectID, a.TaskID, a.Date, a.Hours)
		if err != nil {
			return fmt.Errorf("failed to insert allocation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InsertMonthlyAllocations inserts quantized month-level allocation rows in
// a single transaction
func (d *DB) InsertMonthlyAllocations(ctx context.Context, allocations []db.MonthlyAllocation) error {
	if len(allocations) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range allocations {
		_, err := tx.Exec(ctx, `
			INSERT INTO monthly_allocation (id, run_id, task_id, period, hours)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, a.RunID, a.TaskID, a.Period, a.Hours)
		if err != nil {
			return fmt.Errorf("failed to insert monthly allocation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
