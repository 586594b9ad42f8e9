package domain

import "time"

// PointsGranted is emitted after a grant commits.
type PointsGranted struct {
	EventID        string      `json:"event_id"`
	CustomerID     uint        `json:"customer_id"`
	Action         PointAction `json:"action"`
	Amount         int64       `json:"amount"`
	PreviousPoints int64       `json:"previous_points"`
	Points         int64       `json:"points"`
	Tiers          []string    `json:"tiers"`
	NewTiers       []string    `json:"new_tiers,omitempty"`
	Title          string      `json:"title"`
	OccurredAt     time.Time   `json:"occurred_at"`
}
