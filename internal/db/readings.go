package db

import (
	"context"
	"fmt"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

func (d *DB) GetReadingsForDate(ctx context.Context, date string) ([]models.TemperatureReading, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, equipment_id, value, status, date, recorded_at, recorded_by, note
		FROM temperature_readings
		WHERE date = $1
		ORDER BY equipment_id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var out []models.TemperatureReading
	for rows.Next() {
		var r models.TemperatureReading
		if err := rows.Scan(&r.ID, &r.EquipmentID, &r.Value, &r.Status, &r.Date,
			&r.RecordedAt, &r.RecordedBy, &r.Note); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) UpsertReading(ctx context.Context, r models.TemperatureReading) error {
	// Later recordings supersede earlier ones; a stale out-of-order write
	// leaves the stored row alone.
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO temperature_readings
			(id, equipment_id, value, status, date, recorded_at, recorded_by, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (equipment_id, date) DO UPDATE SET
			value = excluded.value,
			status = excluded.status,
			recorded_at = excluded.recorded_at,
			recorded_by = excluded.recorded_by,
			note = excluded.note
		WHERE excluded.recorded_at >= temperature_readings.recorded_at`,
		r.ID, r.EquipmentID, r.Value, r.Status, r.Date, r.RecordedAt, r.RecordedBy, r.Note)
	if err != nil {
		return fmt.Errorf("failed to upsert reading: %w", err)
	}
	return nil
}
