package release

import (
	"time"

	"github.com/dthlogistics/release-portal/internal/repository"
)

// LoadPayload is the editable shape accepted on create and update.
// Status, pin and the verification token are never part of it.
type LoadPayload struct {
	LoadID            string                 `json:"loadId"`
	PickupLocation    string                 `json:"pickupLocation"`
	VehicleYear       string                 `json:"vehicleYear"`
	VehicleMake       string                 `json:"vehicleMake"`
	VehicleModel      string                 `json:"vehicleModel"`
	VinLast6          string                 `json:"vinLast6"`
	CarrierName       string                 `json:"carrierName"`
	DriverName        string                 `json:"driverName"`
	DriverLicenseInfo string                 `json:"driverLicenseInfo"`
	DriverPhoto       string                 `json:"driverPhoto"`
	TruckPlate        string                 `json:"truckPlate"`
	TrailerPlate      string                 `json:"trailerPlate"`
	PickupWindowStart *time.Time             `json:"pickupWindowStart"`
	PickupWindowEnd   *time.Time             `json:"pickupWindowEnd"`
	PickupInfo        string                 `json:"pickupInfo"`
	PickupContact     string                 `json:"pickupContact"`
	CustomFields      map[string]interface{} `json:"customFields"`
}

// ConfirmRequest is what the dealer submits through the public gateway.
type ConfirmRequest struct {
	Token       string `json:"-"`
	PIN         string `json:"pin"`
	ConfirmedBy string `json:"confirmedBy"`
}

// LoadDetails is a load augmented with its confirmation entry when USED.
type LoadDetails struct {
	*repository.Load
	Confirmation *repository.Confirmation `json:"confirmation,omitempty"`
}
