package postgres

import (
	"context"
	"fmt"

	"github.com/rosgill/effort-engine/pkg/db"
)

// GetAssignee retrieves an assignee by id
func (d *DB) GetAssignee(ctx context.Context, id string) (*db.Assignee, error) {
	var a db.Assignee
	err := d.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, rate
		FROM assignee
		WHERE id = $1
	`, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Rate)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignee %s: %w", id, err)
	}
	return &a, nil
}

// GetAssignees retrieves all assignees
func (d *DB) GetAssignees(ctx context.Context) ([]db.Assignee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, rate
		FROM assignee
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignees: %w", err)
	}
	defer rows.Close()

	var assignees []db.Assignee
	for rows.Next() {
		var a db.Assignee
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan assignee: %w", err)
		}
		assignees = append(assignees, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignees: %w", err)
	}

	return assignees, nil
}

// GetPersonalSchedules retrieves all personal schedule exceptions
func (d *DB) GetPersonalSchedules(ctx context.Context) ([]db.PersonalScheduleEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, user_id, date, full_day, deducted_hours
		FROM personal_schedule
		ORDER BY user_id, date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal schedules: %w", err)
	}
	defer rows.Close()

	var entries []db.PersonalScheduleEntry
	for rows.Next() {
		var e db.PersonalScheduleEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.FullDay, &e.DeductedHours); err != nil {
			return nil, fmt.Errorf("failed to scan personal schedule entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personal schedules: %w", err)
	}

	return entries, nil
}

// GetHolidays retrieves all company holiday records
func (d *DB) GetHolidays(ctx context.Context) ([]db.Holiday, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT date, name
		FROM holiday
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []db.Holiday
	for rows.Next() {
		var h db.Holiday
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}

	return holidays, nil
}
