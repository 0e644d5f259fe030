package services

import (
	"context"

	"gigdispatch/internal/models"
	"gigdispatch/internal/repositories/interfaces"
	"gigdispatch/internal/utils"
	"gigdispatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const claimableLimit = 10

// DispatchService matches online drivers to searching jobs and performs
// the exclusive claim.
type DispatchService struct {
	drivers  interfaces.DriverRepository
	jobs     interfaces.JobRepository
	earnings *EarningsService
	notifier NotificationService
	logger   *logger.Logger
}

func NewDispatchService(drivers interfaces.DriverRepository, jobs interfaces.JobRepository, earnings *EarningsService, notifier NotificationService, log *logger.Logger) *DispatchService {
	return &DispatchService{
		drivers:  drivers,
		jobs:     jobs,
		earnings: earnings,
		notifier: notifier,
		logger:   log,
	}
}

// ListClaimable returns the searching jobs matching the driver's
// enabled services, oldest first. An offline driver gets an empty list,
// not an error.
func (s *DispatchService) ListClaimable(ctx context.Context, driverID primitive.ObjectID) ([]*models.Job, error) {
	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Status != models.DriverStatusOnline {
		return []*models.Job{}, nil
	}
	return s.jobs.ListClaimable(ctx, driver.Services.EnabledTypes(), claimableLimit)
}

// Claim assigns the job to the driver. The driver is flipped
// online → busy first, then the job itself is claimed with a single
// conditional write; under contention the store commits exactly one
// winner and every loser gets ErrJobAlreadyClaimed. If the job write
// loses, the driver flip is rolled back.
//
// The commission rate is computed here, from the driver's tier and
// premium flag at claim time, and frozen onto the job.
func (s *DispatchService) Claim(ctx context.Context, driverID, jobID primitive.ObjectID) (*models.Job, error) {
	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return nil, utils.ErrInvalidTransition
	}
	if job.Status != models.JobStatusSearching || job.DriverID != nil {
		return nil, utils.ErrJobAlreadyClaimed
	}
	if !driver.Services.Enabled(job.JobType) {
		return nil, utils.ErrDriverUnavailable
	}

	pricing, err := s.earnings.Calculate(job.BasePrice, job.JobType, driver.IsPremiumVehicle, driver.SubscriptionTier, job.SurgeMultiplier, 0)
	if err != nil {
		return nil, err
	}

	// The profile read above may be stale; this conditional flip is the
	// authoritative liveness check. A busy or offline driver fails here.
	if err := s.drivers.SetStatusIf(ctx, driverID, models.DriverStatusOnline, models.DriverStatusBusy); err != nil {
		return nil, err
	}

	claimed, err := s.jobs.Claim(ctx, jobID, driverID, *pricing)
	if err != nil {
		if rbErr := s.drivers.SetStatusIf(ctx, driverID, models.DriverStatusBusy, models.DriverStatusOnline); rbErr != nil {
			s.logger.WithError(rbErr).WithField("driver_id", driverID.Hex()).Error("failed to release driver after lost claim")
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"job_id":          claimed.ID.Hex(),
		"driver_id":       driverID.Hex(),
		"commission_rate": claimed.CommissionRate,
	}).Info("job claimed")

	s.notifier.PublishJobEvent(ctx, models.JobEvent{
		Type:     models.EventJobClaimed,
		JobID:    claimed.ID,
		JobType:  claimed.JobType,
		Status:   claimed.Status,
		DriverID: claimed.DriverID,
	})
	return claimed, nil
}
