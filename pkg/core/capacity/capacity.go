package capacity

import (
	"fmt"
	"time"

	"github.com/rosgill/effort-engine/pkg/core/calendar"
)

// NonWorkingSource answers whether a calendar date is a non-working day
type NonWorkingSource interface {
	IsNonWorking(day time.Time) bool
}

// DayHours is one day's available hours for an assignee
type DayHours struct {
	Date  time.Time
	Hours float64
}

// Table is a dense date→hours mapping for one assignee over an inclusive
// range. Every day in the range has an entry, including zero-hour days;
// callers rely on that density. Built once per run, read-only after.
type Table struct {
	entries []DayHours
	index   map[string]int
}

// Compute builds the capacity table for [start, end]. Each working day gets
// standardHours * rate; non-working days get an explicit 0 entry. A start
// after end yields an empty table, not an error.
func Compute(start, end time.Time, nonWorking NonWorkingSource, rate, standardHours float64) (*Table, error) {
	if rate <= 0 || rate > 1 {
		return nil, fmt.Errorf("availability rate must be in (0, 1], got %v", rate)
	}
	if standardHours <= 0 {
		return nil, fmt.Errorf("standard daily hours must be positive, got %v", standardHours)
	}

	t := &Table{index: make(map[string]int)}
	for _, day := range calendar.Days(start, end) {
		hours := 0.0
		if !nonWorking.IsNonWorking(day) {
			hours = standardHours * rate
		}
		t.index[calendar.DayKey(day)] = len(t.entries)
		t.entries = append(t.entries, DayHours{Date: day, Hours: hours})
	}
	return t, nil
}

// Days returns the table's entries in ascending date order
func (t *Table) Days() []DayHours {
	return t.entries
}

// Len returns the number of days covered by the table
func (t *Table) Len() int {
	return len(t.entries)
}

// Hours returns the available hours on the given day, 0 for days outside
// the table's range.
func (t *Table) Hours(day time.Time) float64 {
	i, ok := t.index[calendar.DayKey(day)]
	if !ok {
		return 0
	}
	return t.entries[i].Hours
}

// Total returns the sum of available hours across the whole range
func (t *Table) Total() float64 {
	total := 0.0
	for _, e := range t.entries {
		total += e.Hours
	}
	return total
}
