package repository

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrLoadNotFound = errors.New("load not found")
	ErrUserNotFound = errors.New("user not found")
)

// Load statuses. Transitions are owned by the release service; the
// repository only stores the strings.
const (
	StatusDraft = "DRAFT"
	StatusValid = "VALID"
	StatusUsed  = "USED"
	StatusVoid  = "VOID"
)

// ActionReleaseConfirmed is the only action currently written to load_logs.
const ActionReleaseConfirmed = "RELEASE_CONFIRMED"

// Load maps one row of the loads table. The db tags are the complete
// field mapping between the domain model and the schema.
type Load struct {
	ID                int64           `db:"id" json:"id"`
	LoadID            string          `db:"load_id" json:"loadId"`
	PickupLocation    string          `db:"pickup_location" json:"pickupLocation"`
	VehicleYear       string          `db:"vehicle_year" json:"vehicleYear"`
	VehicleMake       string          `db:"vehicle_make" json:"vehicleMake"`
	VehicleModel      string          `db:"vehicle_model" json:"vehicleModel"`
	VinLast6          string          `db:"vin_last_6" json:"vinLast6"`
	CarrierName       string          `db:"carrier_name" json:"carrierName"`
	DriverName        string          `db:"driver_name" json:"driverName"`
	DriverLicenseInfo string          `db:"driver_license_info" json:"driverLicenseInfo"`
	DriverPhoto       string          `db:"driver_photo" json:"driverPhoto"`
	TruckPlate        string          `db:"truck_plate" json:"truckPlate"`
	TrailerPlate      string          `db:"trailer_plate" json:"trailerPlate"`
	PickupWindowStart *time.Time      `db:"pickup_window_start" json:"pickupWindowStart"`
	PickupWindowEnd   *time.Time      `db:"pickup_window_end" json:"pickupWindowEnd"`
	PickupInfo        string          `db:"pickup_info" json:"pickupInfo"`
	PickupContact     string          `db:"pickup_contact" json:"pickupContact"`
	PIN               string          `db:"pin" json:"pin"`
	VerificationToken string          `db:"verification_token" json:"verificationToken"`
	Status            string          `db:"status" json:"status"`
	CustomFields      json.RawMessage `db:"custom_fields" json:"customFields"`
	CreatedBy         *int64          `db:"created_by" json:"createdBy"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}

// LoadWithDispatcher is the token-keyed projection joined with the
// creator's identity, used to resolve the notification recipient. The
// public gateway never exposes the dispatcher fields.
type LoadWithDispatcher struct {
	Load
	DispatcherEmail *string `db:"dispatcher_email" json:"dispatcherEmail,omitempty"`
	DispatcherName  *string `db:"dispatcher_name" json:"dispatcherName,omitempty"`
}

// LoadLog is an append-only audit row. Rows are never updated and only
// removed as a cascade of load deletion.
type LoadLog struct {
	ID        int64           `db:"id"`
	LoadID    int64           `db:"load_id"`
	Action    string          `db:"action"`
	Details   json.RawMessage `db:"details"`
	UserID    *int64          `db:"user_id"`
	CreatedAt time.Time       `db:"created_at"`
}

// ConfirmationDetails is the structured payload stored in
// LoadLog.Details for RELEASE_CONFIRMED.
type ConfirmationDetails struct {
	ConfirmedBy string    `json:"confirmedBy"`
	Timestamp   time.Time `json:"timestamp"`
}

// Confirmation augments a USED load with its latest confirmation entry.
type Confirmation struct {
	ConfirmedBy string    `db:"confirmed_by" json:"confirmedBy"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
}

// ReleaseLogEntry is one row of the audit listing, joined with the load.
type ReleaseLogEntry struct {
	ID             int64     `db:"id" json:"id"`
	LoadID         string    `db:"load_id" json:"loadId"`
	LoadRawID      int64     `db:"load_raw_id" json:"loadRawId"`
	PickupLocation string    `db:"pickup_location" json:"pickupLocation"`
	ConfirmedBy    string    `db:"confirmed_by" json:"confirmedBy"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
}

// User backs basic auth and dispatcher identity resolution.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
	Email    string `db:"email" json:"email"`
	FullName string `db:"full_name" json:"fullName"`
	Role     string `db:"role" json:"role"`
}
