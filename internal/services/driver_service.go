package services

import (
	"context"
	"errors"
	"fmt"

	"gigdispatch/internal/models"
	"gigdispatch/internal/repositories/interfaces"
	"gigdispatch/internal/utils"
	"gigdispatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverService owns driver registration, status, service toggles and
// the earnings read side.
type DriverService struct {
	drivers interfaces.DriverRepository
	jobs    interfaces.JobRepository
	logger  *logger.Logger
}

func NewDriverService(drivers interfaces.DriverRepository, jobs interfaces.JobRepository, log *logger.Logger) *DriverService {
	return &DriverService{
		drivers: drivers,
		jobs:    jobs,
		logger:  log,
	}
}

type RegisterDriverInput struct {
	// UserID becomes the driver id, so drivers are addressed by their
	// account identity. A zero value lets the store mint one.
	UserID           primitive.ObjectID
	Vehicle          models.Vehicle
	LicenseNumber    string
	Services         models.ServiceFlags
	IsPremiumVehicle bool
	SubscriptionTier models.SubscriptionTier
}

func (s *DriverService) Register(ctx context.Context, input RegisterDriverInput) (*models.Driver, error) {
	if input.SubscriptionTier == "" {
		input.SubscriptionTier = models.TierFree
	}
	if !models.ValidSubscriptionTier(input.SubscriptionTier) {
		return nil, utils.NewValidationError("subscription_tier", "unknown subscription tier")
	}

	driver := &models.Driver{
		ID:               input.UserID,
		Status:           models.DriverStatusOffline,
		Services:         input.Services,
		IsPremiumVehicle: input.IsPremiumVehicle,
		SubscriptionTier: input.SubscriptionTier,
		Vehicle:          input.Vehicle,
		LicenseNumber:    input.LicenseNumber,
	}

	if err := s.drivers.Create(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to register driver: %w", err)
	}

	s.logger.WithField("driver_id", driver.ID.Hex()).Info("driver registered")
	return driver, nil
}

func (s *DriverService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	return s.drivers.GetByID(ctx, id)
}

// SetStatus applies a driver-initiated status change. A driver holding
// an active job cannot flip themselves out of busy; the job has to
// finish or cancel first.
func (s *DriverService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.DriverStatus) error {
	if !models.ValidDriverStatus(status) {
		return utils.NewValidationError("status", "unknown driver status")
	}

	if status != models.DriverStatusBusy {
		if _, err := s.jobs.GetActiveByDriver(ctx, id); err == nil {
			return utils.ErrDriverUnavailable
		} else if !errors.Is(err, utils.ErrNotFound) {
			return err
		}
	}

	if err := s.drivers.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"driver_id": id.Hex(),
		"status":    string(status),
	}).Info("driver status updated")
	return nil
}

// ToggleService flips one service flag. Enabling a service while a job
// is active is refused; the claim path re-validates against the stored
// flags anyway.
func (s *DriverService) ToggleService(ctx context.Context, id primitive.ObjectID, service models.ServiceType, enabled bool) error {
	if !models.ValidServiceType(service) {
		return utils.NewValidationError("service", "unknown service type")
	}

	if enabled {
		if _, err := s.jobs.GetActiveByDriver(ctx, id); err == nil {
			return utils.ErrDriverUnavailable
		} else if !errors.Is(err, utils.ErrNotFound) {
			return err
		}
	}

	return s.drivers.ToggleService(ctx, id, service, enabled)
}

// UpdateSubscription changes the driver's tier. A job already claimed
// keeps its claim-time commission rate; the new tier applies from the
// next claim onward.
func (s *DriverService) UpdateSubscription(ctx context.Context, id primitive.ObjectID, tier models.SubscriptionTier) error {
	if !models.ValidSubscriptionTier(tier) {
		return utils.NewValidationError("subscription_tier", "unknown subscription tier")
	}
	return s.drivers.UpdateSubscription(ctx, id, tier)
}

func (s *DriverService) UpdateLocation(ctx context.Context, id primitive.ObjectID, lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return utils.NewValidationError("latitude", "out of range")
	}
	if lng < -180 || lng > 180 {
		return utils.NewValidationError("longitude", "out of range")
	}
	return s.drivers.UpdateLocation(ctx, id, lat, lng)
}

func (s *DriverService) GetActiveJob(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	return s.jobs.GetActiveByDriver(ctx, id)
}

func (s *DriverService) GetEarningsSummary(ctx context.Context, id primitive.ObjectID) (*models.EarningsSummary, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts := driver.CompletedJobs
	return &models.EarningsSummary{
		Today:     driver.Earnings.Today,
		Weekly:    driver.Earnings.Weekly,
		Monthly:   driver.Earnings.Monthly,
		Lifetime:  driver.Earnings.Lifetime,
		Rating:    driver.Rating,
		TotalJobs: counts.Rides + counts.Deliveries + counts.CourierJobs,
		Counts:    counts,
	}, nil
}
