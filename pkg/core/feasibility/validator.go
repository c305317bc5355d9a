package feasibility

import (
	"time"

	"github.com/rosgill/effort-engine/pkg/core/calendar"
	"github.com/rosgill/effort-engine/pkg/core/model"
)

// ReasonNoWorkingDays flags a task whose entire planned window has zero
// available working capacity.
const ReasonNoWorkingDays = "no working days in window"

// Warning identifies a task that cannot be executed as planned. Warnings are
// computed on demand and never persisted by this package.
type Warning struct {
	TaskID     string
	TaskNumber int
	TaskName   string
	AssigneeID string // empty for unassigned tasks
	Start      time.Time
	End        time.Time
	Reason     string
}

// Options carries the organization-wide calculation settings
type Options struct {
	StandardHours float64
}

// ValidateTask checks a single task's planned window for available capacity.
// Tasks without both planned dates are skipped (feasibility is undefined
// without a window). For assigned tasks the assignee's rate and personal
// exceptions apply; unassigned tasks only consult the company calendar.
// Returns nil when the task is feasible or not evaluable.
func ValidateTask(
	task model.Task,
	assignee *model.Assignee,
	nonWorking *calendar.NonWorkingDaySet,
	personal calendar.PersonalSchedule,
	opts Options,
) *Warning {
	if !task.HasWindow() {
		return nil
	}

	available := 0.0
	if assignee != nil {
		cal := calendar.WorkingCalendar{
			NonWorking:    nonWorking,
			StandardHours: opts.StandardHours,
			Rate:          assignee.Rate,
			Personal:      personal,
		}
		for _, day := range calendar.Days(*task.PlannedStart, *task.PlannedEnd) {
			available += cal.HoursOn(day)
		}
	} else {
		// No assignee, so rate and personal schedules do not apply; any
		// company working day in the window makes the task feasible.
		for _, day := range calendar.Days(*task.PlannedStart, *task.PlannedEnd) {
			if !nonWorking.IsNonWorking(day) {
				available += opts.StandardHours
			}
		}
	}

	if available > 0 {
		return nil
	}

	return &Warning{
		TaskID:     task.ID,
		TaskNumber: task.Number,
		TaskName:   task.Name,
		AssigneeID: task.AssigneeID,
		Start:      *task.PlannedStart,
		End:        *task.PlannedEnd,
		Reason:     ReasonNoWorkingDays,
	}
}

// ValidateTasks checks every task in the list, resolving assignees and
// personal schedules through the supplied lookup maps. All tasks are checked;
// one infeasible task never short-circuits the rest. Warnings come back in
// input order.
func ValidateTasks(
	tasks []model.Task,
	assignees map[string]model.Assignee,
	schedules map[string]calendar.PersonalSchedule,
	nonWorking *calendar.NonWorkingDaySet,
	opts Options,
) []Warning {
	warnings := []Warning{}

	for _, task := range tasks {
		var assignee *model.Assignee
		var personal calendar.PersonalSchedule

		if task.AssigneeID != "" {
			if a, ok := assignees[task.AssigneeID]; ok {
				assignee = &a
				personal = schedules[task.AssigneeID]
			}
		}

		if w := ValidateTask(task, assignee, nonWorking, personal, opts); w != nil {
			warnings = append(warnings, *w)
		}
	}

	return warnings
}
