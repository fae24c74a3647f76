package domain

import "time"

type BroadcastStatus string

const (
	BroadcastQueued BroadcastStatus = "QUEUED"
	BroadcastSent   BroadcastStatus = "SENT"
)

// Broadcast is a message queued for delivery to every customer with a
// phone number. Delivery itself is an external worker's job.
type Broadcast struct {
	ID         string          `json:"id"`
	Message    string          `json:"message"`
	Recipients int             `json:"recipients"`
	Status     BroadcastStatus `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}
