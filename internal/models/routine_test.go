package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskDueOn(t *testing.T) {
	t.Parallel()

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task RoutineTask
		day  time.Time
		want bool
	}{
		{name: "daily always due", task: RoutineTask{Recurrence: RecurDaily}, day: monday, want: true},
		{name: "weekly on its weekday", task: RoutineTask{Recurrence: RecurWeekly, Weekday: time.Friday}, day: friday, want: true},
		{name: "weekly off its weekday", task: RoutineTask{Recurrence: RecurWeekly, Weekday: time.Friday}, day: monday, want: false},
		{name: "monthly on its day", task: RoutineTask{Recurrence: RecurMonthly, MonthDay: 7}, day: friday, want: true},
		{name: "monthly off its day", task: RoutineTask{Recurrence: RecurMonthly, MonthDay: 15}, day: friday, want: false},
		{
			name: "interval anchor day",
			task: RoutineTask{Recurrence: RecurEveryXDay, IntervalDays: 3, StartDate: "2025-03-03"},
			day:  monday, want: true,
		},
		{
			name: "interval mid cycle",
			task: RoutineTask{Recurrence: RecurEveryXDay, IntervalDays: 3, StartDate: "2025-03-03"},
			day:  monday.AddDate(0, 0, 2), want: false,
		},
		{
			name: "interval next cycle",
			task: RoutineTask{Recurrence: RecurEveryXDay, IntervalDays: 3, StartDate: "2025-03-03"},
			day:  monday.AddDate(0, 0, 6), want: true,
		},
		{
			name: "interval before anchor",
			task: RoutineTask{Recurrence: RecurEveryXDay, IntervalDays: 3, StartDate: "2025-03-10"},
			day:  monday, want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.task.DueOn(tt.day))
		})
	}
}

func TestWorstStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusSafe, WorstStatus())
	assert.Equal(t, StatusSafe, WorstStatus(StatusSafe, StatusSafe))
	assert.Equal(t, StatusWarning, WorstStatus(StatusSafe, StatusWarning, StatusSafe))
	assert.Equal(t, StatusDanger, WorstStatus(StatusWarning, StatusDanger, StatusSafe))
}

func TestStatusLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "OK", StatusSafe.Label())
	assert.Equal(t, "Advarsel", StatusWarning.Label())
	assert.Equal(t, "Kritisk", StatusDanger.Label())
}
