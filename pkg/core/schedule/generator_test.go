package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosgill/effort-engine/pkg/core/calendar"
	"github.com/rosgill/effort-engine/pkg/core/capacity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// flatTable builds a capacity table with the given hours on every day of the
// range, using a calendar with no holidays (weekends still apply).
func flatTable(t *testing.T, start, end time.Time, standardHours float64) *capacity.Table {
	t.Helper()
	table, err := capacity.Compute(start, end, calendar.NewNonWorkingDaySet(), 1.0, standardHours)
	require.NoError(t, err)
	return table
}

func TestGenerate_OrderingContract(t *testing.T) {
	// One 8h day, tasks A(5h) then B(10h): A fills first, B gets the rest
	table := flatTable(t, date(2024, 7, 1), date(2024, 7, 1), 8)

	result := Generate(table, []TaskRequirement{
		{ID: "A", Hours: 5},
		{ID: "B", Hours: 10},
	})

	require.Len(t, result.Entries, 2)
	assert.Equal(t, AllocationEntry{Date: date(2024, 7, 1), TaskID: "A", Hours: 5}, result.Entries[0])
	assert.Equal(t, AllocationEntry{Date: date(2024, 7, 1), TaskID: "B", Hours: 3}, result.Entries[1])

	assert.Zero(t, result.Remaining["A"])
	assert.Equal(t, 7.0, result.Remaining["B"])
	assert.False(t, result.FullyScheduled())
}

func TestGenerate_MultiDaySplit(t *testing.T) {
	// One 10h task over three 4h days: 4 + 4 + 2
	table := flatTable(t, date(2024, 7, 1), date(2024, 7, 3), 4)

	result := Generate(table, []TaskRequirement{{ID: "T", Hours: 10}})

	require.Len(t, result.Entries, 3)
	assert.Equal(t, AllocationEntry{Date: date(2024, 7, 1), TaskID: "T", Hours: 4}, result.Entries[0])
	assert.Equal(t, AllocationEntry{Date: date(2024, 7, 2), TaskID: "T", Hours: 4}, result.Entries[1])
	assert.Equal(t, AllocationEntry{Date: date(2024, 7, 3), TaskID: "T", Hours: 2}, result.Entries[2])
	assert.True(t, result.FullyScheduled())
}

func TestGenerate_WeekScenario(t *testing.T) {
	// 2024-07-01..05 at 7.5h/day, tasks [T1=5, T2=10, T3=10, T4=10]
	table := flatTable(t, date(2024, 7, 1), date(2024, 7, 5), 7.5)

	result := Generate(table, []TaskRequirement{
		{ID: "T1", Hours: 5},
		{ID: "T2", Hours: 10},
		{ID: "T3", Hours: 10},
		{ID: "T4", Hours: 10},
	})

	expected := []AllocationEntry{
		{Date: date(2024, 7, 1), TaskID: "T1", Hours: 5},
		{Date: date(2024, 7, 1), TaskID: "T2", Hours: 2.5},
		{Date: date(2024, 7, 2), TaskID: "T2", Hours: 7.5},
		{Date: date(2024, 7, 3), TaskID: "T3", Hours: 7.5},
		{Date: date(2024, 7, 4), TaskID: "T3", Hours: 2.5},
		{Date: date(2024, 7, 4), TaskID: "T4", Hours: 5},
		{Date: date(2024, 7, 5), TaskID: "T4", Hours: 5},
	}
	assert.Equal(t, expected, result.Entries)
	assert.True(t, result.FullyScheduled())
}

func TestGenerate_ZeroCapacityDaySkipped(t *testing.T) {
	// 07-02 is a holiday: no entries there, no task progress, no error
	nonWorking := calendar.NewNonWorkingDaySet(date(2024, 7, 2))
	table, err := capacity.Compute(date(2024, 7, 1), date(2024, 7, 3), nonWorking, 1.0, 4)
	require.NoError(t, err)

	result := Generate(table, []TaskRequirement{{ID: "T", Hours: 8}})

	require.Len(t, result.Entries, 2)
	assert.Equal(t, date(2024, 7, 1), result.Entries[0].Date)
	assert.Equal(t, date(2024, 7, 3), result.Entries[1].Date)
	assert.True(t, result.FullyScheduled())
}

func TestGenerate_RangeExhausted(t *testing.T) {
	// 8h required, 4h available: remainder stays unscheduled, no error
	table := flatTable(t, date(2024, 7, 1), date(2024, 7, 1), 4)

	result := Generate(table, []TaskRequirement{{ID: "T", Hours: 8}})

	require.Len(t, result.Entries, 1)
	assert.Equal(t, 4.0, result.Entries[0].Hours)
	assert.Equal(t, 4.0, result.Remaining["T"])
	assert.False(t, result.FullyScheduled())
}

func TestGenerate_ZeroHourTaskProducesNoEntries(t *testing.T) {
	table := flatTable(t, date(2024, 7, 1), date(2024, 7, 1), 8)

	result := Generate(table, []TaskRequirement{
		{ID: "empty", Hours: 0},
		{ID: "real", Hours: 3},
	})

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "real", result.Entries[0].TaskID)
	assert.Zero(t, result.Remaining["empty"])
}

func TestGenerate_NoTasks(t *testing.T) {
	table := flatTable(t, date(2024, 7, 1), date(2024, 7, 5), 7.5)

	result := Generate(table, nil)

	assert.Empty(t, result.Entries)
	assert.True(t, result.FullyScheduled())
}

func TestGenerate_EmptyTable(t *testing.T) {
	table := flatTable(t, date(2024, 7, 5), date(2024, 7, 1), 7.5)

	result := Generate(table, []TaskRequirement{{ID: "T", Hours: 5}})

	assert.Empty(t, result.Entries)
	assert.Equal(t, 5.0, result.Remaining["T"])
}

func TestGenerate_FractionalHours(t *testing.T) {
	// Fractional requirements stay unrounded during generation
	table := flatTable(t, date(2024, 7, 1), date(2024, 7, 2), 7.5)

	result := Generate(table, []TaskRequirement{
		{ID: "A", Hours: 2.5},
		{ID: "B", Hours: 6.25},
	})

	expected := []AllocationEntry{
		{Date: date(2024, 7, 1), TaskID: "A", Hours: 2.5},
		{Date: date(2024, 7, 1), TaskID: "B", Hours: 5},
		{Date: date(2024, 7, 2), TaskID: "B", Hours: 1.25},
	}
	assert.Equal(t, expected, result.Entries)
}

func TestGenerate_ConservationPerTask(t *testing.T) {
	table := flatTable(t, date(2024, 7, 1), date(2024, 7, 3), 6)

	tasks := []TaskRequirement{
		{ID: "A", Hours: 7},
		{ID: "B", Hours: 20},
	}
	result := Generate(table, tasks)

	// Allocated never exceeds required; A fits (18h total capacity), B does not
	assert.Equal(t, 7.0, result.AllocatedTotal("A"))
	assert.Equal(t, 11.0, result.AllocatedTotal("B"))
	assert.Equal(t, 9.0, result.Remaining["B"])
}
