package domain

import "time"

type MissionStatus string

const (
	MissionStatusPending  MissionStatus = "PENDING"
	MissionStatusApproved MissionStatus = "APPROVED"
	MissionStatusRejected MissionStatus = "REJECTED"
)

type MissionDecision string

const (
	MissionDecisionApprove MissionDecision = "APPROVE"
	MissionDecisionReject  MissionDecision = "REJECT"
)

// MissionRequest is a user's ask to use a specific vehicle for a date range.
// Status moves from PENDING to APPROVED or REJECTED exactly once; a decided
// mission is terminal.
type MissionRequest struct {
	ID        int32         `json:"id"`
	UserID    int32         `json:"user_id"`
	VehicleID int32         `json:"vehicle_id"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Reason    string        `json:"reason,omitempty"`
	Status    MissionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
