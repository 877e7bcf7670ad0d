package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dthlogistics/release-portal/internal/release"
	"github.com/dthlogistics/release-portal/internal/repository"
)

// dealerView is the sanitized projection shown on the dealer's
// verification page. It carries the live PIN for on-screen display but
// never the internal id, creator identity or audit history.
type dealerView struct {
	LoadID         string `json:"loadId"`
	PickupLocation string `json:"pickupLocation"`
	Vehicle        struct {
		Year     string `json:"year"`
		Make     string `json:"make"`
		Model    string `json:"model"`
		VinLast6 string `json:"vinLast6"`
	} `json:"vehicle"`
	Driver struct {
		Name string `json:"name"`
	} `json:"driver"`
	Carrier struct {
		Name string `json:"name"`
	} `json:"carrier"`
	Plates struct {
		Truck   string `json:"truck"`
		Trailer string `json:"trailer"`
	} `json:"plates"`
	Status       string `json:"status"`
	PickupWindow struct {
		Start *time.Time `json:"start"`
		End   *time.Time `json:"end"`
	} `json:"pickupWindow"`
	PIN           string `json:"pin"`
	PickupInfo    string `json:"pickupInfo"`
	PickupContact string `json:"pickupContact"`
}

func newDealerView(load *repository.Load) dealerView {
	view := dealerView{
		LoadID:         load.LoadID,
		PickupLocation: load.PickupLocation,
		Status:         load.Status,
		PIN:            load.PIN,
		PickupInfo:     load.PickupInfo,
		PickupContact:  load.PickupContact,
	}
	view.Vehicle.Year = load.VehicleYear
	view.Vehicle.Make = load.VehicleMake
	view.Vehicle.Model = load.VehicleModel
	view.Vehicle.VinLast6 = load.VinLast6
	view.Driver.Name = load.DriverName
	view.Carrier.Name = load.CarrierName
	view.Plates.Truck = load.TruckPlate
	view.Plates.Trailer = load.TrailerPlate
	view.PickupWindow.Start = load.PickupWindowStart
	view.PickupWindow.End = load.PickupWindowEnd
	return view
}

func (s *Server) handleVerifyGet(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	load, err := s.service.GetLoadByToken(r.Context(), token)
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Verification details retrieved",
		"payload": newDealerView(&load.Load),
	})
}

func (s *Server) handleVerifyConfirm(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var confirmRequest struct {
		PIN         string `json:"pin"`
		ConfirmedBy string `json:"confirmedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&confirmRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	load, err := s.service.ConfirmRelease(r.Context(), release.ConfirmRequest{
		Token:       token,
		PIN:         confirmRequest.PIN,
		ConfirmedBy: confirmRequest.ConfirmedBy,
	})
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "VEHICLE RELEASE CONFIRMED",
		"payload": map[string]string{
			"status":              load.Status,
			"confirmationMessage": "This vehicle has been officially released by DTH Logistics.",
		},
	})
}
