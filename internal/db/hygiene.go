package db

import (
	"context"
	"fmt"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

func (d *DB) InsertHygieneCheck(ctx context.Context, h models.HygieneCheck) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO hygiene_checks (id, date, employee_id, status, note)
		VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.Date, h.EmployeeID, h.Status, h.Note)
	if err != nil {
		return conflict(err)
	}
	return nil
}

func (d *DB) GetHygieneChecksForDate(ctx context.Context, date string) ([]models.HygieneCheck, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, date, employee_id, status, note
		FROM hygiene_checks
		WHERE date = $1
		ORDER BY employee_id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query hygiene checks: %w", err)
	}
	defer rows.Close()

	var out []models.HygieneCheck
	for rows.Next() {
		var h models.HygieneCheck
		if err := rows.Scan(&h.ID, &h.Date, &h.EmployeeID, &h.Status, &h.Note); err != nil {
			return nil, fmt.Errorf("failed to scan hygiene check: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
