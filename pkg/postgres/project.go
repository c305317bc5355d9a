package postgres

import (
	"context"
	"fmt"

	"github.com/rosgill/effort-engine/pkg/db"
)

// GetProject retrieves a project by id
func (d *DB) GetProject(ctx context.Context, id string) (*db.Project, error) {
	var p db.Project
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, start_date, end_date
		FROM project
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query project %s: %w", id, err)
	}
	return &p, nil
}

// GetTasksByProject retrieves a project's tasks in scheduling order
func (d *DB) GetTasksByProject(ctx context.Context, projectID string) ([]db.Task, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, project_id, number, name, estimated_hours,
		       planned_start, planned_end, assignee_id, sort_order
		FROM task
		WHERE project_id = $1
		ORDER BY sort_order, number
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []db.Task
	for rows.Next() {
		var t db.Task
		var assigneeID *string
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Number, &t.Name, &t.EstimatedHours,
			&t.PlannedStart, &t.PlannedEnd, &assigneeID, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if assigneeID != nil {
			t.AssigneeID = *assigneeID
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}
