package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/dthlogistics/release-portal/internal/db"
	"github.com/dthlogistics/release-portal/internal/repository"
)

type LoadRepo struct {
	db db.DB
}

func NewLoadRepo(db db.DB) *LoadRepo {
	return &LoadRepo{db: db}
}

const loadColumns = `
        load_id, pickup_location, vehicle_year, vehicle_make, vehicle_model,
        vin_last_6, carrier_name, driver_name, driver_license_info,
        driver_photo, truck_plate, trailer_plate, pickup_window_start,
        pickup_window_end, pickup_info, pickup_contact, pin,
        verification_token, status, custom_fields, created_by,
        created_at, updated_at`

func (r *LoadRepo) Create(ctx context.Context, load *repository.Load) (*repository.Load, error) {
	var created repository.Load
	err := r.db.Get(ctx, &created, `
        INSERT INTO loads (`+loadColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
                $15, $16, $17, $18, $19, $20, $21, $22, $23)
        RETURNING *
    `, load.LoadID, load.PickupLocation, load.VehicleYear, load.VehicleMake, load.VehicleModel,
		load.VinLast6, load.CarrierName, load.DriverName, load.DriverLicenseInfo,
		load.DriverPhoto, load.TruckPlate, load.TrailerPlate, load.PickupWindowStart,
		load.PickupWindowEnd, load.PickupInfo, load.PickupContact, load.PIN,
		load.VerificationToken, load.Status, load.CustomFields, load.CreatedBy,
		load.CreatedAt, load.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert load: %w", err)
	}
	return &created, nil
}

func (r *LoadRepo) GetByID(ctx context.Context, id int64) (*repository.Load, error) {
	var load repository.Load
	err := r.db.Get(ctx, &load, "SELECT * FROM loads WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLoadNotFound
		}
		return nil, err
	}
	return &load, nil
}

func (r *LoadRepo) GetByToken(ctx context.Context, token string) (*repository.LoadWithDispatcher, error) {
	var load repository.LoadWithDispatcher
	err := r.db.Get(ctx, &load, `
        SELECT l.*, u.email AS dispatcher_email, u.full_name AS dispatcher_name
        FROM loads l
        LEFT JOIN app_users u ON l.created_by = u.id
        WHERE l.verification_token = $1
    `, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLoadNotFound
		}
		return nil, err
	}
	return &load, nil
}

func (r *LoadRepo) GetAll(ctx context.Context) ([]*repository.Load, error) {
	var loads []*repository.Load
	err := r.db.Select(ctx, &loads, "SELECT * FROM loads ORDER BY created_at DESC")
	return loads, err
}

// GetActive returns the non-terminal loads used to warm the token cache.
func (r *LoadRepo) GetActive(ctx context.Context) ([]*repository.Load, error) {
	var loads []*repository.Load
	err := r.db.Select(ctx, &loads, `
        SELECT * FROM loads
        WHERE status IN ('DRAFT', 'VALID')
        ORDER BY created_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to get active loads: %w", err)
	}
	return loads, nil
}

// Update overwrites the editable attributes. Status, pin and the
// verification token are immutable here.
func (r *LoadRepo) Update(ctx context.Context, load *repository.Load) (*repository.Load, error) {
	var updated repository.Load
	err := r.db.Get(ctx, &updated, `
        UPDATE loads
        SET
            load_id = $1,
            pickup_location = $2,
            vehicle_year = $3,
            vehicle_make = $4,
            vehicle_model = $5,
            vin_last_6 = $6,
            carrier_name = $7,
            driver_name = $8,
            driver_license_info = $9,
            truck_plate = $10,
            trailer_plate = $11,
            pickup_window_start = $12,
            pickup_window_end = $13,
            pickup_info = $14,
            pickup_contact = $15,
            custom_fields = $16,
            updated_at = NOW()
        WHERE id = $17
        RETURNING *
    `, load.LoadID, load.PickupLocation, load.VehicleYear, load.VehicleMake, load.VehicleModel,
		load.VinLast6, load.CarrierName, load.DriverName, load.DriverLicenseInfo,
		load.TruckPlate, load.TrailerPlate, load.PickupWindowStart, load.PickupWindowEnd,
		load.PickupInfo, load.PickupContact, load.CustomFields, load.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLoadNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus writes the status unconditionally. Transition rules live
// in the release service.
func (r *LoadRepo) UpdateStatus(ctx context.Context, id int64, status string) (*repository.Load, error) {
	var updated repository.Load
	err := r.db.Get(ctx, &updated, `
        UPDATE loads SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING *
    `, status, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrLoadNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// MarkUsedTx performs the compare-and-swap to USED. It reports whether
// this call won the row; a concurrent confirmation that already flipped
// the status makes the update match zero rows.
func (r *LoadRepo) MarkUsedTx(ctx context.Context, tx db.Tx, id int64) (bool, error) {
	tag, err := tx.Exec(ctx, `
        UPDATE loads SET status = 'USED', updated_at = NOW()
        WHERE id = $1 AND status = 'VALID'
    `, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark load %d used: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *LoadRepo) DeleteTx(ctx context.Context, tx db.Tx, id int64) error {
	tag, err := tx.Exec(ctx, "DELETE FROM loads WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrLoadNotFound
	}
	return nil
}

// LoadIDExists backs the collision check of the identifier generator.
func (r *LoadRepo) LoadIDExists(ctx context.Context, loadID string) (bool, error) {
	var count int
	err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM loads WHERE load_id = $1", loadID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
