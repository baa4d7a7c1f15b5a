package models

import "time"

// Recurrence kinds for routine tasks.
const (
	RecurDaily     = "daily"
	RecurEveryXDay = "every_x_days"
	RecurWeekly    = "weekly"
	RecurMonthly   = "monthly"
)

// Completion outcomes.
const (
	OutcomeCompleted    = "completed"
	OutcomeNotCompleted = "not_completed"
)

// RoutineTask is one entry of the fixed daily task list.
type RoutineTask struct {
	ID        string `json:"id"`
	NameNo    string `json:"name_no"`
	NameEn    string `json:"name_en"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`

	// Recurrence controls which days the task is due. IntervalDays applies
	// to every_x_days (anchored at StartDate), Weekday to weekly and
	// MonthDay to monthly.
	Recurrence   string       `json:"recurrence"`
	IntervalDays int          `json:"interval_days,omitempty"`
	Weekday      time.Weekday `json:"weekday,omitempty"`
	MonthDay     int          `json:"month_day,omitempty"`
	StartDate    string       `json:"start_date,omitempty"`
}

// DueOn reports whether the task is due on the given day.
func (t RoutineTask) DueOn(day time.Time) bool {
	switch t.Recurrence {
	case RecurEveryXDay:
		if t.IntervalDays <= 0 {
			return true
		}
		start, err := time.ParseInLocation(DateLayout, t.StartDate, day.Location())
		if err != nil {
			return true
		}
		days := int(day.Sub(start).Hours() / 24)
		return days >= 0 && days%t.IntervalDays == 0
	case RecurWeekly:
		return day.Weekday() == t.Weekday
	case RecurMonthly:
		return day.Day() == t.MonthDay
	default: // daily
		return true
	}
}

// DueTasks filters tasks down to those due on the given day.
func DueTasks(tasks []RoutineTask, day time.Time) []RoutineTask {
	var due []RoutineTask
	for _, t := range tasks {
		if t.DueOn(day) {
			due = append(due, t)
		}
	}
	return due
}

// TaskCompletion records one outcome for one task on one day. Exactly one
// completion may exist per task per day.
type TaskCompletion struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	Date       string    `json:"date"`
	EmployeeID string    `json:"employee_id"`
	Outcome    string    `json:"outcome"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoutineReportDetail is the per-task snapshot stored when a day closes.
type RoutineReportDetail struct {
	TaskID     string `json:"task_id"`
	TaskName   string `json:"task_name"`
	Outcome    string `json:"outcome"`
	EmployeeID string `json:"employee_id"`
	Note       string `json:"note,omitempty"`
}

// RoutineReport is the aggregate completion report persisted when the last
// due task of a day is decided.
type RoutineReport struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	Total        int                   `json:"total"`
	Completed    int                   `json:"completed"`
	NotCompleted int                   `json:"not_completed"`
	Percentage   float64               `json:"percentage"`
	CreatedAt    time.Time             `json:"created_at"`
	Details      []RoutineReportDetail `json:"details,omitempty"`
}
