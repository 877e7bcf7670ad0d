package db

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// NewDb connects to postgres with the DSN resolved by the config layer.
// The pool is owned by the caller and closed on shutdown.
func NewDb(ctx context.Context, dsn string) (*Database, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewDatabase(pool), nil
}
