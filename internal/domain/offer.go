package domain

import "time"

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusRejected OfferStatus = "REJECTED"
)

type OfferDecision string

const (
	OfferDecisionAccept OfferDecision = "ACCEPT"
	OfferDecisionReject OfferDecision = "REJECT"
)

// RentalOffer is an admin-initiated proposal routed to the vehicle's owning
// supplier. At most one offer exists per mission (unique constraint on
// mission_id). Only the addressed supplier may decide it, exactly once.
type RentalOffer struct {
	ID         int32       `json:"id"`
	MissionID  int32       `json:"mission_id"`
	VehicleID  int32       `json:"vehicle_id"`
	SupplierID int32       `json:"supplier_id"`
	Status     OfferStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}
