package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dthlogistics/release-portal/internal/release"
)

func loadIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) handleCreateLoad(w http.ResponseWriter, r *http.Request) {
	var payload release.LoadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	load, err := s.service.CreateLoad(r.Context(), payload, currentUser(r.Context()))
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Load created successfully",
		"payload": load,
	})
}

func (s *Server) handleListLoads(w http.ResponseWriter, r *http.Request) {
	loads, err := s.service.GetLoads(r.Context())
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"payload": loads})
}

func (s *Server) handleGetLoad(w http.ResponseWriter, r *http.Request) {
	id, err := loadIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid load ID")
		return
	}

	load, err := s.service.GetLoadByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"payload": load})
}

func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := loadIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid load ID")
		return
	}

	details, err := s.service.GetLoadByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}

	document, err := s.docs.Generate(details.Load, s.timezone)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate release document")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=DTH_Release_%s.txt", details.Load.LoadID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}

func (s *Server) handleUpdateLoad(w http.ResponseWriter, r *http.Request) {
	id, err := loadIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid load ID")
		return
	}

	var payload release.LoadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	load, err := s.service.UpdateLoad(r.Context(), id, payload)
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Load updated successfully",
		"payload": load,
	})
}

func (s *Server) handleValidateLoad(w http.ResponseWriter, r *http.Request) {
	id, err := loadIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid load ID")
		return
	}

	load, err := s.service.Validate(r.Context(), id)
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Load validated successfully",
		"payload": load,
	})
}

func (s *Server) handleVoidLoad(w http.ResponseWriter, r *http.Request) {
	id, err := loadIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid load ID")
		return
	}

	load, err := s.service.Void(r.Context(), id)
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Load voided successfully",
		"payload": load,
	})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := loadIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid load ID")
		return
	}

	var statusRequest struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if statusRequest.Status == "" {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}

	load, err := s.service.UpdateStatus(r.Context(), id, statusRequest.Status)
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Status updated to %s", load.Status),
		"payload": load,
	})
}

func (s *Server) handleDeleteLoad(w http.ResponseWriter, r *http.Request) {
	id, err := loadIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid load ID")
		return
	}

	if err := s.service.DeleteLoad(r.Context(), id); err != nil {
		respondServiceError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Load deleted successfully"})
}

func (s *Server) handleReleaseLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.service.GetReleaseLogs(r.Context())
	if err != nil {
		respondServiceError(w, s.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"payload": logs})
}
