package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

func (d *DB) GetReportCount(ctx context.Context) (int, error) {
	var n int
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM daily_reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}

func (d *DB) GetReport(ctx context.Context, date string) (*models.DailyReport, error) {
	var r models.DailyReport
	err := d.Pool.QueryRow(ctx, `
		SELECT id, date, status, generated_by, created_at, updated_at
		FROM daily_reports
		WHERE date = $1`, date).
		Scan(&r.ID, &r.Date, &r.Status, &r.GeneratedBy, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	return &r, nil
}

func (d *DB) UpsertReport(ctx context.Context, r models.DailyReport) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO daily_reports (id, date, status, generated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date) DO UPDATE SET
			status = excluded.status,
			generated_by = excluded.generated_by,
			updated_at = excluded.updated_at`,
		r.ID, r.Date, r.Status, r.GeneratedBy, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert report: %w", err)
	}
	return nil
}

// DeleteDetailRecordsForDate clears a day's detail rows in one transaction
// so a failed rebuild never leaves the day half-emptied.
func (d *DB) DeleteDetailRecordsForDate(ctx context.Context, date string) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{
		"temperature_readings", "cooling_processes", "hygiene_checks", "task_completions",
	} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE date = $1`, date); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}
