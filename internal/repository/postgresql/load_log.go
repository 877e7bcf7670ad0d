package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/dthlogistics/release-portal/internal/db"
	"github.com/dthlogistics/release-portal/internal/repository"
)

type LoadLogRepo struct {
	db db.DB
}

func NewLoadLogRepo(db db.DB) *LoadLogRepo {
	return &LoadLogRepo{db: db}
}

func (r *LoadLogRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.LoadLog) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO load_logs (load_id, action, details, user_id, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, entry.LoadID, entry.Action, entry.Details, entry.UserID, entry.CreatedAt)
	return err
}

// GetLastConfirmation returns the newest RELEASE_CONFIRMED entry for a
// load, or nil when none exists.
func (r *LoadLogRepo) GetLastConfirmation(ctx context.Context, loadID int64) (*repository.Confirmation, error) {
	var confirmation repository.Confirmation
	err := r.db.Get(ctx, &confirmation, `
        SELECT details->>'confirmedBy' AS confirmed_by, created_at AS timestamp
        FROM load_logs
        WHERE load_id = $1 AND action = $2
        ORDER BY created_at DESC
        LIMIT 1
    `, loadID, repository.ActionReleaseConfirmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &confirmation, nil
}

// GetReleaseLogs lists every confirmation joined with its load, newest first.
func (r *LoadLogRepo) GetReleaseLogs(ctx context.Context) ([]*repository.ReleaseLogEntry, error) {
	var entries []*repository.ReleaseLogEntry
	err := r.db.Select(ctx, &entries, `
        SELECT
            ll.id,
            l.load_id,
            l.id AS load_raw_id,
            l.pickup_location,
            ll.details->>'confirmedBy' AS confirmed_by,
            ll.created_at AS timestamp
        FROM load_logs ll
        JOIN loads l ON ll.load_id = l.id
        WHERE ll.action = $1
        ORDER BY ll.created_at DESC
    `, repository.ActionReleaseConfirmed)
	return entries, err
}

func (r *LoadLogRepo) DeleteByLoadTx(ctx context.Context, tx db.Tx, loadID int64) error {
	_, err := tx.Exec(ctx, "DELETE FROM load_logs WHERE load_id = $1", loadID)
	return err
}
