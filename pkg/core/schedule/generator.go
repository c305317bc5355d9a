package schedule

import (
	"time"

	"github.com/rosgill/effort-engine/pkg/core/capacity"
)

// epsilon absorbs binary floating-point drift when deciding whether a day or
// task still has hours left. Without it, repeated fractional subtraction can
// leave 1e-16-sized remnants that would produce spurious zero-sized entries.
const epsilon = 1e-9

// TaskRequirement is an ordered unit of work to be packed into the schedule.
// Order among requirements is significant and caller-supplied: earlier tasks
// consume capacity first.
type TaskRequirement struct {
	ID    string
	Name  string
	Hours float64
}

// AllocationEntry records hours allocated to one task on one date. Hours is
// always > 0; a task may span multiple entries and a date may carry entries
// for multiple tasks.
type AllocationEntry struct {
	Date   time.Time
	TaskID string
	Hours  float64
}

// Result is the outcome of a generation run. Remaining holds each task's
// unmet requirement so callers can detect ranges with insufficient capacity;
// the generator itself never errors on an unschedulable remainder.
type Result struct {
	Entries   []AllocationEntry
	Remaining map[string]float64
}

// Generate packs the ordered tasks' required hours into the capacity table's
// days, ascending by date. Each day's capacity is exhausted before moving to
// the next day, and each task is fully satisfied before the next task
// receives hours. Tasks split across day boundaries as needed; a day's
// leftover capacity after finishing a task is offered to the next task on the
// same date. Zero-capacity days are skipped without blocking. Tasks still
// unmet when the range ends simply stay in Remaining.
func Generate(table *capacity.Table, tasks []TaskRequirement) *Result {
	result := &Result{
		Entries:   []AllocationEntry{},
		Remaining: make(map[string]float64, len(tasks)),
	}

	remaining := make([]float64, len(tasks))
	for i, task := range tasks {
		remaining[i] = task.Hours
	}

	cursor := 0
	for _, day := range table.Days() {
		dayCapacity := day.Hours

		for dayCapacity > epsilon && cursor < len(tasks) {
			// Skip tasks with nothing left to schedule
			if remaining[cursor] <= epsilon {
				cursor++
				continue
			}

			amount := min(dayCapacity, remaining[cursor])
			result.Entries = append(result.Entries, AllocationEntry{
				Date:   day.Date,
				TaskID: tasks[cursor].ID,
				Hours:  amount,
			})

			dayCapacity -= amount
			remaining[cursor] -= amount

			if remaining[cursor] <= epsilon {
				remaining[cursor] = 0
				cursor++
			}
		}
	}

	for i, task := range tasks {
		result.Remaining[task.ID] = remaining[i]
	}
	return result
}

// AllocatedTotal sums the hours allocated to the given task across all entries
func (r *Result) AllocatedTotal(taskID string) float64 {
	total := 0.0
	for _, e := range r.Entries {
		if e.TaskID == taskID {
			total += e.Hours
		}
	}
	return total
}

// FullyScheduled reports whether every task's requirement was met
func (r *Result) FullyScheduled() bool {
	for _, rem := range r.Remaining {
		if rem > epsilon {
			return false
		}
	}
	return true
}
