package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/domain"
	"fleetrental-backend/internal/service"
)

// VehicleHandler serves fleet management and catalog browsing.
type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type vehicleRequest struct {
	Make            string `json:"make"`
	Model           string `json:"model"`
	FuelType        string `json:"fuel_type"`
	Mileage         int32  `json:"mileage"`
	DailyPriceCents int32  `json:"daily_price_cents"`
	ImagePath       string `json:"image_path"`
}

func (h *VehicleHandler) Add(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	vehicle := &domain.Vehicle{
		Make:            req.Make,
		Model:           req.Model,
		FuelType:        domain.FuelType(req.FuelType),
		Mileage:         req.Mileage,
		DailyPriceCents: req.DailyPriceCents,
		ImagePath:       req.ImagePath,
	}
	if err := h.vehicles.AddVehicle(r.Context(), p.UserID, vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicles.GetVehicle(r.Context(), p.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	vehicle := &domain.Vehicle{
		ID:              id,
		Make:            req.Make,
		Model:           req.Model,
		FuelType:        domain.FuelType(req.FuelType),
		Mileage:         req.Mileage,
		DailyPriceCents: req.DailyPriceCents,
		ImagePath:       req.ImagePath,
	}
	if err := h.vehicles.UpdateVehicle(r.Context(), p.UserID, vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), p.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	vehicles, err := h.vehicles.ListVehicles(r.Context(), p.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// ListAvailable browses unassigned vehicles, optionally narrowed by
// max_price_cents, fuel_type and make query parameters.
func (h *VehicleHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var filter domain.VehicleFilter
	q := r.URL.Query()
	if raw := q.Get("max_price_cents"); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || price < 0 {
			writeError(w, apperr.Validation("invalid max_price_cents %q", raw))
			return
		}
		p32 := int32(price)
		filter.MaxPriceCents = &p32
	}
	filter.FuelType = q.Get("fuel_type")
	filter.Make = q.Get("make")

	vehicles, err := h.vehicles.ListAvailable(r.Context(), p.UserID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}
