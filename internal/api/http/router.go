package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleetrental-backend/internal/security"
)

// Handlers bundles everything the router exposes.
type Handlers struct {
	Auth      *AuthHandler
	Vehicles  *VehicleHandler
	Missions  *MissionHandler
	Offers    *OfferHandler
	Contracts *ContractHandler
	Dashboard *DashboardHandler
}

// NewRouter wires all routes. Everything under /api/v1 except the auth
// endpoints requires a valid access token.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods("POST")

	// Authenticated
	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))

	protected.HandleFunc("/profile", h.Auth.Profile).Methods("GET")

	protected.HandleFunc("/vehicles", h.Vehicles.Add).Methods("POST")
	protected.HandleFunc("/vehicles", h.Vehicles.List).Methods("GET")
	protected.HandleFunc("/vehicles/available", h.Vehicles.ListAvailable).Methods("GET")
	protected.HandleFunc("/vehicles/{id:[0-9]+}", h.Vehicles.Get).Methods("GET")
	protected.HandleFunc("/vehicles/{id:[0-9]+}", h.Vehicles.Update).Methods("PUT")
	protected.HandleFunc("/vehicles/{id:[0-9]+}", h.Vehicles.Delete).Methods("DELETE")

	protected.HandleFunc("/missions", h.Missions.Submit).Methods("POST")
	protected.HandleFunc("/missions", h.Missions.ListAll).Methods("GET")
	protected.HandleFunc("/missions/mine", h.Missions.ListMine).Methods("GET")
	protected.HandleFunc("/missions/uncontracted", h.Missions.ListUncontracted).Methods("GET")
	protected.HandleFunc("/missions/{id:[0-9]+}/decision", h.Missions.Decide).Methods("POST")

	protected.HandleFunc("/offers", h.Offers.Open).Methods("POST")
	protected.HandleFunc("/offers/received", h.Offers.ListReceived).Methods("GET")
	protected.HandleFunc("/offers/{id:[0-9]+}/decision", h.Offers.Decide).Methods("POST")

	protected.HandleFunc("/contracts/from-offer", h.Contracts.GenerateFromOffer).Methods("POST")
	protected.HandleFunc("/contracts/from-mission", h.Contracts.GenerateFromMission).Methods("POST")
	protected.HandleFunc("/contracts", h.Contracts.List).Methods("GET")
	protected.HandleFunc("/contracts/mine", h.Contracts.ListMine).Methods("GET")
	protected.HandleFunc("/contracts/search", h.Contracts.Search).Methods("GET")
	protected.HandleFunc("/contracts/{id:[0-9]+}", h.Contracts.GetDetails).Methods("GET")
	protected.HandleFunc("/contracts/{id:[0-9]+}/finalize", h.Contracts.Finalize).Methods("POST")
	protected.HandleFunc("/contracts/{id:[0-9]+}/document", h.Contracts.Document).Methods("GET")

	protected.HandleFunc("/dashboard", h.Dashboard.Summary).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return router
}
