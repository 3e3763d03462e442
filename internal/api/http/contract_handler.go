package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/service"
)

// ContractHandler serves contract generation, lookup and documents.
type ContractHandler struct {
	contracts service.ContractService
	documents service.DocumentService
}

func NewContractHandler(contracts service.ContractService, documents service.DocumentService) *ContractHandler {
	return &ContractHandler{contracts: contracts, documents: documents}
}

type fromOfferRequest struct {
	OfferID int32 `json:"offer_id"`
}

type fromMissionRequest struct {
	MissionID int32 `json:"mission_id"`
	VehicleID int32 `json:"vehicle_id"`
}

func (h *ContractHandler) GenerateFromOffer(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req fromOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	contract, err := h.contracts.GenerateFromOffer(r.Context(), req.OfferID, p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (h *ContractHandler) GenerateFromMission(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req fromMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	contract, err := h.contracts.GenerateFromMission(r.Context(), req.MissionID, req.VehicleID, p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (h *ContractHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.contracts.Finalize(r.Context(), id, p.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ContractHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	details, err := h.contracts.GetDetails(r.Context(), id, p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	contracts, err := h.contracts.List(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

func (h *ContractHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	contracts, err := h.contracts.ListMine(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

// Search filters contracts by status, user_id, supplier_id, start_from
// and end_until query parameters.
func (h *ContractHandler) Search(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	filter, err := contractFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	contracts, err := h.contracts.Search(r.Context(), p.UserID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

// Document renders the contract sheet and streams it back.
func (h *ContractHandler) Document(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	path, err := h.documents.RenderContract(r.Context(), id, p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, path)
}

func contractFilterFromQuery(r *http.Request) (domain.ContractFilter, error) {
	var filter domain.ContractFilter
	q := r.URL.Query()

	filter.Status = q.Get("status")
	if raw := q.Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || id <= 0 {
			return filter, apperr.Validation("invalid user_id %q", raw)
		}
		v := int32(id)
		filter.UserID = &v
	}
	if raw := q.Get("supplier_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || id <= 0 {
			return filter, apperr.Validation("invalid supplier_id %q", raw)
		}
		v := int32(id)
		filter.SupplierID = &v
	}
	if raw := q.Get("start_from"); raw != "" {
		t, err := parseDate(raw, "start_from")
		if err != nil {
			return filter, err
		}
		filter.StartFrom = &t
	}
	if raw := q.Get("end_until"); raw != "" {
		t, err := parseDate(raw, "end_until")
		if err != nil {
			return filter, err
		}
		filter.EndUntil = &t
	}
	return filter, nil
}
