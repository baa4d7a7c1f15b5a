package db

import (
	"context"
	"fmt"
	"time"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

func (d *DB) GetTasks(ctx context.Context, activeOnly bool) ([]models.RoutineTask, error) {
	query := `SELECT id, name_no, name_en, icon, sort_order, active,
	                 recurrence, interval_days, weekday, month_day, start_date
	          FROM routine_tasks`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY sort_order, id`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var out []models.RoutineTask
	for rows.Next() {
		var t models.RoutineTask
		var weekday int
		if err := rows.Scan(&t.ID, &t.NameNo, &t.NameEn, &t.Icon, &t.SortOrder,
			&t.Active, &t.Recurrence, &t.IntervalDays, &weekday, &t.MonthDay,
			&t.StartDate); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Weekday = time.Weekday(weekday)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (d *DB) GetCompletionsForDate(ctx context.Context, date string) ([]models.TaskCompletion, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, task_id, date, employee_id, outcome, note, created_at
		FROM task_completions
		WHERE date = $1
		ORDER BY created_at`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var out []models.TaskCompletion
	for rows.Next() {
		var c models.TaskCompletion
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Date, &c.EmployeeID,
			&c.Outcome, &c.Note, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (d *DB) InsertCompletion(ctx context.Context, c models.TaskCompletion) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO task_completions (id, task_id, date, employee_id, outcome, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.TaskID, c.Date, c.EmployeeID, c.Outcome, c.Note, c.CreatedAt)
	if err != nil {
		return conflict(err)
	}
	return nil
}

func (d *DB) DeleteCompletionsForDate(ctx context.Context, date string) error {
	if _, err := d.Pool.Exec(ctx, `DELETE FROM task_completions WHERE date = $1`, date); err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}
	return nil
}
