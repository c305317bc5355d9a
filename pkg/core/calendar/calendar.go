package calendar

import (
	"time"

	"github.com/teambition/rrule-go"
)

// DayFormat is the key format used for calendar-day lookups throughout the engine.
// The engine works in calendar days, never timestamps; callers are expected to
// normalize dates to a single timezone before handing them over.
const DayFormat = "2006-01-02"

// DayKey returns the calendar-day key for a date
func DayKey(t time.Time) string {
	return t.Format(DayFormat)
}

// Normalize strips the time-of-day component, keeping only the calendar day
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days returns every calendar day in the inclusive range [start, end] in
// ascending order. A start after end yields an empty slice, not an error.
func Days(start, end time.Time) []time.Time {
	start = Normalize(start)
	end = Normalize(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// NonWorkingDaySet answers whether a calendar date is a non-working day.
// Saturdays and Sundays are always non-working; fixed holidays and
// company-specific override days are added on top. Membership is pure:
// the same date always yields the same answer.
type NonWorkingDaySet struct {
	days map[string]bool
}

// NewNonWorkingDaySet creates a set seeded with the given holiday dates
func NewNonWorkingDaySet(holidays ...time.Time) *NonWorkingDaySet {
	s := &NonWorkingDaySet{days: make(map[string]bool)}
	for _, h := range holidays {
		s.Add(h)
	}
	return s
}

// Add marks a single date as non-working
func (s *NonWorkingDaySet) Add(day time.Time) {
	s.days[DayKey(day)] = true
}

// AddRule expands a recurrence rule over [start, end] and marks every
// occurrence as non-working. Used for recurring company closures.
func (s *NonWorkingDaySet) AddRule(r *rrule.RRule, start, end time.Time) {
	for _, occ := range r.Between(Normalize(start), Normalize(end).Add(24*time.Hour-time.Nanosecond), true) {
		s.Add(occ)
	}
}

// IsNonWorking reports whether the given date is a non-working day
func (s *NonWorkingDaySet) IsNonWorking(day time.Time) bool {
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true
	}
	return s.days[DayKey(day)]
}

// ScheduleException is a date-scoped personal exception for one assignee:
// either a full-day absence or a partial absence deducting a fixed number
// of hours from an otherwise workable day.
type ScheduleException struct {
	Date          time.Time
	FullDay       bool
	DeductedHours float64
}

// PersonalSchedule is the set of schedule exceptions for a single assignee
type PersonalSchedule []ScheduleException

// DeductionOn returns the total hours deducted on the given day and whether
// any exception marks the whole day as absent. Multiple partial exceptions
// on the same day accumulate.
func (p PersonalSchedule) DeductionOn(day time.Time) (deducted float64, fullDay bool) {
	key := DayKey(day)
	for _, exc := range p {
		if DayKey(exc.Date) != key {
			continue
		}
		if exc.FullDay {
			return 0, true
		}
		deducted += exc.DeductedHours
	}
	return deducted, false
}

// WorkingCalendar composes the company calendar with one assignee's rate and
// personal exceptions to answer how many hours the assignee can work on a day.
type WorkingCalendar struct {
	NonWorking    *NonWorkingDaySet
	StandardHours float64
	Rate          float64
	Personal      PersonalSchedule
}

// HoursOn returns the workable hours for the given day. Non-working days and
// full-day absences yield 0; partial absences reduce the rated baseline,
// floored at 0.
func (c WorkingCalendar) HoursOn(day time.Time) float64 {
	if c.NonWorking.IsNonWorking(day) {
		return 0
	}

	deducted, fullDay := c.Personal.DeductionOn(day)
	if fullDay {
		return 0
	}

	hours := c.StandardHours*c.Rate - deducted
	if hours < 0 {
		return 0
	}
	return hours
}
