package domain

import "time"

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "ACTIVE"
	ContractStatusTerminated ContractStatus = "TERMINATED"
)

// Contract binds a vehicle to a user for a date range. OfferID is nil when
// the contract was generated directly from an approved mission. ACTIVE
// contracts for the same vehicle never have overlapping date ranges.
type Contract struct {
	ID        int32          `json:"id"`
	MissionID int32          `json:"mission_id"`
	OfferID   *int32         `json:"offer_id,omitempty"`
	UserID    int32          `json:"user_id"`
	VehicleID int32          `json:"vehicle_id"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Status    ContractStatus `json:"status"`
	SignedAt  time.Time      `json:"signed_at"`
}

// ContractFilter narrows admin contract searches.
type ContractFilter struct {
	Status     string
	UserID     *int32
	SupplierID *int32
	StartFrom  *time.Time
	EndUntil   *time.Time
}

// ContractDetails bundles a contract with its related reference data for
// detail views and document rendering.
type ContractDetails struct {
	Contract Contract `json:"contract"`
	Vehicle  Vehicle  `json:"vehicle"`
	User     User     `json:"user"`
	Supplier *User    `json:"supplier,omitempty"`
}
