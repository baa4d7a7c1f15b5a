// Package db implements the store interfaces on PostgreSQL. Uniqueness is
// enforced by constraints and surfaced as errs.ErrConflict, so inserts are
// atomic against concurrent submissions for the same key.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

//go:embed schema.sql
var ddl embed.FS

type DB struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	d := &DB{Pool: pool}
	if err := d.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) migrate(ctx context.Context) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := d.Pool.Exec(ctx, string(b)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (d *DB) Close() {
	d.Pool.Close()
}

// conflict maps a unique-constraint violation (SQLSTATE 23505) to the
// typed conflict error.
func conflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errs.ErrConflict
	}
	return err
}

var _ store.Store = (*DB)(nil)
