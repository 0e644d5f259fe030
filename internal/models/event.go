package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventType string

const (
	EventJobCreated       EventType = "job.created"
	EventJobClaimed       EventType = "job.claimed"
	EventJobStatusChanged EventType = "job.status_changed"
	EventJobCompleted     EventType = "job.completed"
	EventJobCancelled     EventType = "job.cancelled"
)

// JobEvent is the logical notification emitted on lifecycle changes.
// Delivery is best-effort; the engine never depends on it succeeding.
type JobEvent struct {
	Type      EventType           `json:"type"`
	JobID     primitive.ObjectID  `json:"job_id"`
	JobType   ServiceType         `json:"job_type"`
	Status    JobStatus           `json:"status"`
	DriverID  *primitive.ObjectID `json:"driver_id,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}
