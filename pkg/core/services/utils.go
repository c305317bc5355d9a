package services

import (
	"fmt"
	"time"

	"github.com/rosgill/effort-engine/internal/config"
	"github.com/rosgill/effort-engine/pkg/core/calendar"
	"github.com/rosgill/effort-engine/pkg/core/model"
	"github.com/rosgill/effort-engine/pkg/db"
)

// PeriodFormat is the month-key format used for monthly apportionment
const PeriodFormat = "2006-01"

// PeriodKey returns the month key for a date
func PeriodKey(t time.Time) string {
	return t.Format(PeriodFormat)
}

// SplitByMonth spreads a task's hours across the months its inclusive window
// touches, weighted by the number of calendar days falling in each month.
// The result is a raw fractional allocation; callers quantize it afterwards.
func SplitByMonth(start, end time.Time, hours float64) map[string]float64 {
	days := calendar.Days(start, end)
	if len(days) == 0 {
		return map[string]float64{}
	}

	perMonth := make(map[string]int)
	for _, day := range days {
		perMonth[PeriodKey(day)]++
	}

	raw := make(map[string]float64, len(perMonth))
	for period, count := range perMonth {
		raw[period] = hours * float64(count) / float64(len(days))
	}
	return raw
}

// buildNonWorkingDaySet assembles the company calendar for a window from the
// configured holidays and closure rules plus the stored holiday table.
func buildNonWorkingDaySet(cfg *config.Config, holidays []db.Holiday, start, end time.Time) (*calendar.NonWorkingDaySet, error) {
	configured, err := cfg.HolidayDates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse configured holidays: %w", err)
	}

	nonWorking := calendar.NewNonWorkingDaySet(configured...)
	for _, h := range holidays {
		nonWorking.Add(h.Date)
	}

	rules, err := cfg.ClosureRRules()
	if err != nil {
		return nil, fmt.Errorf("failed to parse closure rules: %w", err)
	}
	for _, r := range rules {
		nonWorking.AddRule(r, start, end)
	}

	return nonWorking, nil
}

// groupSchedules indexes stored schedule exceptions by user
func groupSchedules(entries []db.PersonalScheduleEntry) map[string]calendar.PersonalSchedule {
	schedules := make(map[string]calendar.PersonalSchedule)
	for _, e := range entries {
		schedules[e.UserID] = append(schedules[e.UserID], calendar.ScheduleException{
			Date:          e.Date,
			FullDay:       e.FullDay,
			DeductedHours: e.DeductedHours,
		})
	}
	return schedules
}

func taskToModel(t db.Task) model.Task {
	return model.Task{
		ID:             t.ID,
		Number:         t.Number,
		Name:           t.Name,
		EstimatedHours: t.EstimatedHours,
		PlannedStart:   t.PlannedStart,
		PlannedEnd:     t.PlannedEnd,
		AssigneeID:     t.AssigneeID,
	}
}
