package validators

import (
	"gigdispatch/internal/models"
)

type CreateJobRequest struct {
	JobType         string          `json:"job_type" binding:"required"`
	PickupLocation  models.Location `json:"pickup_location" binding:"required"`
	DropoffLocation models.Location `json:"dropoff_location" binding:"required"`
	BasePrice       float64         `json:"base_price" binding:"required"`
	SurgeMultiplier float64         `json:"surge_multiplier"`
	PaymentMethod   string          `json:"payment_method"`
	PackageType     string          `json:"package_type"`
	OrderDetails    string          `json:"order_details"`
}

type AdvanceJobRequest struct {
	Status string `json:"status" binding:"required"`
}

type CompleteJobRequest struct {
	TipAmount float64 `json:"tip_amount"`
}

type CancelJobRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func ValidateCreateJob(req *CreateJobRequest) map[string]string {
	errors := make(map[string]string)

	if !models.ValidServiceType(models.ServiceType(req.JobType)) {
		errors["job_type"] = "must be one of rideshare, delivery, courier"
	}
	if req.BasePrice <= 0 {
		errors["base_price"] = "must be positive"
	}
	if req.SurgeMultiplier != 0 && req.SurgeMultiplier < 1.0 {
		errors["surge_multiplier"] = "must be at least 1.0"
	}
	if req.PickupLocation.Address == "" {
		errors["pickup_location"] = "address is required"
	}
	if req.DropoffLocation.Address == "" {
		errors["dropoff_location"] = "address is required"
	}

	return errors
}

func ValidateAdvanceJob(req *AdvanceJobRequest) map[string]string {
	errors := make(map[string]string)

	if !models.ValidJobStatus(models.JobStatus(req.Status)) {
		errors["status"] = "unknown job status"
	}

	return errors
}

func ValidateCompleteJob(req *CompleteJobRequest) map[string]string {
	errors := make(map[string]string)

	if req.TipAmount < 0 {
		errors["tip_amount"] = "must not be negative"
	}

	return errors
}
