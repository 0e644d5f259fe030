package services

import (
	"context"
	"fmt"

	"gigdispatch/internal/models"
	"gigdispatch/internal/repositories/interfaces"
	"gigdispatch/internal/utils"
	"gigdispatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobService owns the job lifecycle: creation, the driver-side
// transitions, completion with earnings aggregation, and cancellation.
type JobService struct {
	jobs     interfaces.JobRepository
	drivers  interfaces.DriverRepository
	earnings *EarningsService
	notifier NotificationService
	logger   *logger.Logger
}

func NewJobService(jobs interfaces.JobRepository, drivers interfaces.DriverRepository, earnings *EarningsService, notifier NotificationService, log *logger.Logger) *JobService {
	return &JobService{
		jobs:     jobs,
		drivers:  drivers,
		earnings: earnings,
		notifier: notifier,
		logger:   log,
	}
}

type CreateJobInput struct {
	JobType         models.ServiceType
	CustomerID      primitive.ObjectID
	PickupLocation  models.Location
	DropoffLocation models.Location
	BasePrice       float64
	SurgeMultiplier float64
	PaymentMethod   string
	PackageType     string
	OrderDetails    string
}

// Create opens a job in searching state. The stored pricing fields are
// an estimate against the standard rate; the real commission is frozen
// when a driver claims.
func (s *JobService) Create(ctx context.Context, input CreateJobInput) (*models.Job, error) {
	if !models.ValidServiceType(input.JobType) {
		return nil, utils.NewValidationError("job_type", "unknown job type")
	}
	if input.CustomerID.IsZero() {
		return nil, utils.NewValidationError("customer_id", "required")
	}
	if input.PickupLocation.Address == "" {
		return nil, utils.NewValidationError("pickup_location", "required")
	}
	if input.DropoffLocation.Address == "" {
		return nil, utils.NewValidationError("dropoff_location", "required")
	}
	if input.SurgeMultiplier == 0 {
		input.SurgeMultiplier = 1.0
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = "cash"
	}

	estimate, err := s.earnings.Calculate(input.BasePrice, input.JobType, false, models.TierFree, input.SurgeMultiplier, 0)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		JobType:            input.JobType,
		CustomerID:         input.CustomerID,
		Status:             models.JobStatusSearching,
		PickupLocation:     input.PickupLocation,
		DropoffLocation:    input.DropoffLocation,
		BasePrice:          input.BasePrice,
		SurgeMultiplier:    input.SurgeMultiplier,
		TotalPrice:         estimate.TotalPrice,
		CommissionRate:     estimate.CommissionRate,
		PlatformCommission: estimate.PlatformCommission,
		DriverEarnings:     estimate.DriverEarnings,
		PaymentMethod:      input.PaymentMethod,
		PackageType:        input.PackageType,
		OrderDetails:       input.OrderDetails,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"job_id":   job.ID.Hex(),
		"job_type": string(job.JobType),
	}).Info("job created")

	s.notifier.PublishJobEvent(ctx, models.JobEvent{
		Type:    models.EventJobCreated,
		JobID:   job.ID,
		JobType: job.JobType,
		Status:  job.Status,
	})
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// Advance moves the job one step forward: accepted → picked_up or
// picked_up → in_transit. Claiming and completing have their own
// entry points; anything else is an invalid transition.
func (s *JobService) Advance(ctx context.Context, jobID, driverID primitive.ObjectID, next models.JobStatus) (*models.Job, error) {
	var from models.JobStatus
	switch next {
	case models.JobStatusPickedUp:
		from = models.JobStatusAccepted
	case models.JobStatusInTransit:
		from = models.JobStatusPickedUp
	default:
		if !models.ValidJobStatus(next) {
			return nil, utils.NewValidationError("status", "unknown job status")
		}
		return nil, utils.ErrInvalidTransition
	}

	job, err := s.jobs.AdvanceStatus(ctx, jobID, driverID, from, next)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishJobEvent(ctx, models.JobEvent{
		Type:     models.EventJobStatusChanged,
		JobID:    job.ID,
		JobType:  job.JobType,
		Status:   job.Status,
		DriverID: job.DriverID,
	})
	return job, nil
}

// Complete finalizes the job and rolls the payout into the driver's
// totals. The in_transit → completed conditional write succeeds at most
// once per job, which is what makes the aggregation idempotent: a
// replayed completion fails the write and never reaches the increment.
func (s *JobService) Complete(ctx context.Context, jobID, driverID primitive.ObjectID, tipAmount float64) (*models.Job, error) {
	if tipAmount < 0 {
		return nil, utils.NewValidationError("tip_amount", "must not be negative")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.DriverID == nil || *job.DriverID != driverID {
		return nil, utils.ErrInvalidTransition
	}

	// Commission fields were frozen at claim time and are immutable
	// afterward, so the payout can be computed outside the write.
	finalEarnings := utils.RoundCurrency(job.TotalPrice - job.PlatformCommission + tipAmount)

	completed, err := s.jobs.Complete(ctx, jobID, driverID, tipAmount, finalEarnings)
	if err != nil {
		return nil, err
	}

	if err := s.drivers.RecordCompletion(ctx, driverID, completed.DriverEarnings, completed.JobType); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"job_id":    jobID.Hex(),
			"driver_id": driverID.Hex(),
		}).Error("failed to record driver earnings")
	}

	s.logger.WithFields(map[string]interface{}{
		"job_id":          completed.ID.Hex(),
		"driver_id":       driverID.Hex(),
		"driver_earnings": completed.DriverEarnings,
	}).Info("job completed")

	s.notifier.PublishJobEvent(ctx, models.JobEvent{
		Type:     models.EventJobCompleted,
		JobID:    completed.ID,
		JobType:  completed.JobType,
		Status:   completed.Status,
		DriverID: completed.DriverID,
	})
	return completed, nil
}

// Cancel terminates a non-terminal job. The customer, the assigned
// driver, or the system (zero actor id) may cancel; anyone else is
// rejected. An assigned driver is released back to online.
func (s *JobService) Cancel(ctx context.Context, jobID, actorID primitive.ObjectID, reason string) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var actor models.CancelActor
	switch {
	case actorID.IsZero():
		actor = models.CancelledBySystem
	case actorID == job.CustomerID:
		actor = models.CancelledByCustomer
	case job.DriverID != nil && actorID == *job.DriverID:
		actor = models.CancelledByDriver
	default:
		return nil, utils.ErrInvalidTransition
	}

	cancelled, err := s.jobs.Cancel(ctx, jobID, actor, reason)
	if err != nil {
		return nil, err
	}

	if cancelled.DriverID != nil {
		if err := s.drivers.SetStatusIf(ctx, *cancelled.DriverID, models.DriverStatusBusy, models.DriverStatusOnline); err != nil {
			s.logger.WithError(err).WithField("driver_id", cancelled.DriverID.Hex()).Warn("failed to release driver after cancel")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"job_id": cancelled.ID.Hex(),
		"actor":  string(actor),
		"reason": reason,
	}).Info("job cancelled")

	s.notifier.PublishJobEvent(ctx, models.JobEvent{
		Type:     models.EventJobCancelled,
		JobID:    cancelled.ID,
		JobType:  cancelled.JobType,
		Status:   cancelled.Status,
		DriverID: cancelled.DriverID,
	})
	return cancelled, nil
}
