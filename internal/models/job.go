package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobStatus string
type CancelActor string

const (
	JobStatusSearching JobStatus = "searching"
	JobStatusAccepted  JobStatus = "accepted"
	JobStatusPickedUp  JobStatus = "picked_up"
	JobStatusInTransit JobStatus = "in_transit"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"

	CancelledByCustomer CancelActor = "customer"
	CancelledByDriver   CancelActor = "driver"
	CancelledBySystem   CancelActor = "system"
)

// jobTransitions is the forward edge of the lifecycle. Cancellation is
// handled separately: it is legal from every non-terminal state.
var jobTransitions = map[JobStatus]JobStatus{
	JobStatusSearching: JobStatusAccepted,
	JobStatusAccepted:  JobStatusPickedUp,
	JobStatusPickedUp:  JobStatusInTransit,
	JobStatusInTransit: JobStatusCompleted,
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// IsActive reports whether a job in this status occupies its driver.
func (s JobStatus) IsActive() bool {
	return s == JobStatusAccepted || s == JobStatusPickedUp || s == JobStatusInTransit
}

// CanTransition reports whether from → to is a legal lifecycle step.
func CanTransition(from, to JobStatus) bool {
	if to == JobStatusCancelled {
		return !from.IsTerminal()
	}
	return jobTransitions[from] == to
}

func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusSearching, JobStatusAccepted, JobStatusPickedUp,
		JobStatusInTransit, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

type Job struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	JobType    ServiceType         `json:"job_type" bson:"job_type"`
	CustomerID primitive.ObjectID  `json:"customer_id" bson:"customer_id"`
	DriverID   *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	Status     JobStatus           `json:"status" bson:"status"`

	PickupLocation  Location `json:"pickup_location" bson:"pickup_location"`
	DropoffLocation Location `json:"dropoff_location" bson:"dropoff_location"`

	BasePrice       float64 `json:"base_price" bson:"base_price"`
	SurgeMultiplier float64 `json:"surge_multiplier" bson:"surge_multiplier"`
	TipAmount       float64 `json:"tip_amount" bson:"tip_amount"`

	// Frozen at claim time; never recomputed even if the driver's tier
	// changes mid-job.
	TotalPrice         float64 `json:"total_price" bson:"total_price"`
	CommissionRate     float64 `json:"commission_rate" bson:"commission_rate"`
	PlatformCommission float64 `json:"platform_commission" bson:"platform_commission"`
	DriverEarnings     float64 `json:"driver_earnings" bson:"driver_earnings"`

	PaymentMethod string `json:"payment_method" bson:"payment_method"`
	PackageType   string `json:"package_type,omitempty" bson:"package_type,omitempty"`
	OrderDetails  string `json:"order_details,omitempty" bson:"order_details,omitempty"`

	CancelReason string      `json:"cancel_reason,omitempty" bson:"cancel_reason,omitempty"`
	CancelledBy  CancelActor `json:"cancelled_by,omitempty" bson:"cancelled_by,omitempty"`

	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at" bson:"accepted_at"`
	PickedUpAt  *time.Time `json:"picked_up_at" bson:"picked_up_at"`
	InTransitAt *time.Time `json:"in_transit_at" bson:"in_transit_at"`
	CompletedAt *time.Time `json:"completed_at" bson:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at" bson:"cancelled_at"`
}
