package db

import (
	"context"
	"fmt"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

func (d *DB) GetStaff(ctx context.Context, activeOnly bool) ([]models.Employee, error) {
	query := `SELECT id, name, role, active FROM staff`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.Active); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
