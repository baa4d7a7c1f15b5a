package db

import (
	"context"
	"fmt"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

func (d *DB) GetEquipment(ctx context.Context, activeOnly bool) ([]models.EquipmentSpec, error) {
	query := `SELECT id, name, min_temp, max_temp, active, created_at
	          FROM equipment`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	var out []models.EquipmentSpec
	for rows.Next() {
		var e models.EquipmentSpec
		if err := rows.Scan(&e.ID, &e.Name, &e.MinTemp, &e.MaxTemp, &e.Active, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
