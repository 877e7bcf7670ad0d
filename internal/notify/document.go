package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dthlogistics/release-portal/internal/repository"
)

// SheetGenerator renders the vehicle release sheet as plain text. A PDF
// renderer satisfies the same interface; the portal only needs bytes it
// can attach and serve for download.
type SheetGenerator struct{}

func NewSheetGenerator() *SheetGenerator {
	return &SheetGenerator{}
}

func (g *SheetGenerator) Generate(load *repository.Load, timezone string) ([]byte, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "DTH LOGISTICS - VEHICLE RELEASE\n")
	fmt.Fprintf(&buf, "================================\n\n")
	fmt.Fprintf(&buf, "Load ID:          %s\n", load.LoadID)
	fmt.Fprintf(&buf, "Status:           %s\n", load.Status)
	fmt.Fprintf(&buf, "Pickup Location:  %s\n", load.PickupLocation)
	fmt.Fprintf(&buf, "Vehicle:          %s %s %s\n", load.VehicleYear, load.VehicleMake, load.VehicleModel)
	fmt.Fprintf(&buf, "VIN (last 6):     %s\n", load.VinLast6)
	fmt.Fprintf(&buf, "Carrier:          %s\n", load.CarrierName)
	fmt.Fprintf(&buf, "Driver:           %s\n", load.DriverName)
	fmt.Fprintf(&buf, "License Info:     %s\n", load.DriverLicenseInfo)
	fmt.Fprintf(&buf, "Truck Plate:      %s\n", load.TruckPlate)
	fmt.Fprintf(&buf, "Trailer Plate:    %s\n", load.TrailerPlate)

	if load.PickupWindowStart != nil {
		fmt.Fprintf(&buf, "Window Start:     %s\n", load.PickupWindowStart.In(loc).Format("Jan 2, 2006, 3:04 PM"))
	}
	if load.PickupWindowEnd != nil {
		fmt.Fprintf(&buf, "Window End:       %s\n", load.PickupWindowEnd.In(loc).Format("Jan 2, 2006, 3:04 PM"))
	}
	if load.PickupInfo != "" {
		fmt.Fprintf(&buf, "Pickup Info:      %s\n", load.PickupInfo)
	}
	if load.PickupContact != "" {
		fmt.Fprintf(&buf, "Pickup Contact:   %s\n", load.PickupContact)
	}

	if len(load.CustomFields) > 0 && string(load.CustomFields) != "{}" {
		var fields map[string]interface{}
		if err := json.Unmarshal(load.CustomFields, &fields); err == nil && len(fields) > 0 {
			fmt.Fprintf(&buf, "\nAdditional Fields\n-----------------\n")
			for key, value := range fields {
				fmt.Fprintf(&buf, "%s: %v\n", key, value)
			}
		}
	}

	fmt.Fprintf(&buf, "\nRelease PIN:      %s\n", load.PIN)
	fmt.Fprintf(&buf, "Verification URL token: %s\n", load.VerificationToken)

	return buf.Bytes(), nil
}
