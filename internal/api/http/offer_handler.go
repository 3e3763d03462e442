package http

import (
	"encoding/json"
	"net/http"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/service"
)

// OfferHandler serves rental offer opening and supplier decisions.
type OfferHandler struct {
	offers service.OfferService
}

func NewOfferHandler(offers service.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

type openOfferRequest struct {
	MissionID int32 `json:"mission_id"`
}

func (h *OfferHandler) Open(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req openOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	offer, err := h.offers.Open(r.Context(), req.MissionID, p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

func (h *OfferHandler) Decide(w http.ResponseWriter, r *http.Request) {
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

	offer, err := h.offers.Decide(r.Context(), id, domain.OfferDecision(req.Decision), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *OfferHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	offers, err := h.offers.ListReceived(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}
