package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

// InsertRoutineReport writes the aggregate and its per-task details in one
// transaction. The date uniqueness constraint makes concurrent closes of
// the same day collapse into one report.
func (d *DB) InsertRoutineReport(ctx context.Context, r models.RoutineReport) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO routine_reports (id, date, total, completed, not_completed, percentage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.Date, r.Total, r.Completed, r.NotCompleted, r.Percentage, r.CreatedAt)
	if err != nil {
		return conflict(err)
	}

	for _, det := range r.Details {
		_, err = tx.Exec(ctx, `
			INSERT INTO routine_report_details (report_id, task_id, task_name, outcome, employee_id, note)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, det.TaskID, det.TaskName, det.Outcome, det.EmployeeID, det.Note)
		if err != nil {
			return fmt.Errorf("failed to insert report detail: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (d *DB) GetRoutineReport(ctx context.Context, date string) (*models.RoutineReport, error) {
	var r models.RoutineReport
	err := d.Pool.QueryRow(ctx, `
		SELECT id, date, total, completed, not_completed, percentage, created_at
		FROM routine_reports
		WHERE date = $1`, date).
		Scan(&r.ID, &r.Date, &r.Total, &r.Completed, &r.NotCompleted, &r.Percentage, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query routine report: %w", err)
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT task_id, task_name, outcome, employee_id, note
		FROM routine_report_details
		WHERE report_id = $1
		ORDER BY id`, r.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query report details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var det models.RoutineReportDetail
		if err := rows.Scan(&det.TaskID, &det.TaskName, &det.Outcome, &det.EmployeeID, &det.Note); err != nil {
			return nil, fmt.Errorf("failed to scan report detail: %w", err)
		}
		r.Details = append(r.Details, det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DB) ListRoutineReports(ctx context.Context) ([]models.RoutineReport, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, date, total, completed, not_completed, percentage, created_at
		FROM routine_reports
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query routine reports: %w", err)
	}
	defer rows.Close()

	var out []models.RoutineReport
	for rows.Next() {
		var r models.RoutineReport
		if err := rows.Scan(&r.ID, &r.Date, &r.Total, &r.Completed, &r.NotCompleted,
			&r.Percentage, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan routine report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PruneRoutineReports drops the oldest aggregates beyond keep. Details go
// with them via the cascading foreign key.
func (d *DB) PruneRoutineReports(ctx context.Context, keep int) error {
	_, err := d.Pool.Exec(ctx, `
		DELETE FROM routine_reports
		WHERE id IN (
			SELECT id FROM routine_reports
			ORDER BY created_at DESC
			OFFSET $1
		)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune routine reports: %w", err)
	}
	return nil
}

func (d *DB) DeleteRoutineReport(ctx context.Context, date string) error {
	if _, err := d.Pool.Exec(ctx, `DELETE FROM routine_reports WHERE date = $1`, date); err != nil {
		return fmt.Errorf("failed to delete routine report: %w", err)
	}
	return nil
}
