package http

import (
	"encoding/json"
	"net/http"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/service"
)

// MissionHandler serves mission request submission and review.
type MissionHandler struct {
	missions service.MissionService
}

func NewMissionHandler(missions service.MissionService) *MissionHandler {
	return &MissionHandler{missions: missions}
}

type submitMissionRequest struct {
	VehicleID int32  `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

func (h *MissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req submitMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		writeError(w, err)
		return
	}

	mission, err := h.missions.Submit(r.Context(), p.UserID, req.VehicleID, start, end, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mission)
}

func (h *MissionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	mission, err := h.missions.Decide(r.Context(), id, domain.MissionDecision(req.Decision), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mission)
}

func (h *MissionHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	missions, err := h.missions.ListAll(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, missions)
}

func (h *MissionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	missions, err := h.missions.ListMine(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, missions)
}

// ListUncontracted lists approved missions that have no contract yet, the
// admin's work queue for opening offers or signing directly.
func (h *MissionHandler) ListUncontracted(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	missions, err := h.missions.ListApprovedWithoutContract(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, missions)
}
