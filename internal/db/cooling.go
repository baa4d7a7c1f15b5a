package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

const coolingColumns = `id, product, date, initial_temp, temp_at_2h, temp_at_6h,
	duration_minutes, verdict, note, recorded_by`

func scanCooling(row pgx.Row) (models.CoolingProcess, error) {
	var p models.CoolingProcess
	err := row.Scan(&p.ID, &p.Product, &p.Date, &p.InitialTemp, &p.TempAt2h,
		&p.TempAt6h, &p.DurationMinutes, &p.Verdict, &p.Note, &p.RecordedBy)
	return p, err
}

func (d *DB) GetCoolingProcess(ctx context.Context, product, date string) (*models.CoolingProcess, error) {
	row := d.Pool.QueryRow(ctx, `
		SELECT `+coolingColumns+`
		FROM cooling_processes
		WHERE product = $1 AND date = $2`, product, date)
	p, err := scanCooling(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cooling process: %w", err)
	}
	return &p, nil
}

func (d *DB) InsertCoolingProcess(ctx context.Context, p models.CoolingProcess) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO cooling_processes (`+coolingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Product, p.Date, p.InitialTemp, p.TempAt2h, p.TempAt6h,
		p.DurationMinutes, p.Verdict, p.Note, p.RecordedBy)
	if err != nil {
		return conflict(err)
	}
	return nil
}

func (d *DB) GetCoolingProcessesForDate(ctx context.Context, date string) ([]models.CoolingProcess, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+coolingColumns+`
		FROM cooling_processes
		WHERE date = $1
		ORDER BY product`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query cooling processes: %w", err)
	}
	defer rows.Close()

	var out []models.CoolingProcess
	for rows.Next() {
		p, err := scanCooling(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cooling process: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
