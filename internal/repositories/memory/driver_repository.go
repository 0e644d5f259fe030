package memory

import (
	"context"
	"sync"
	"time"

	"gigdispatch/internal/models"
	"gigdispatch/internal/repositories/interfaces"
	"gigdispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverRepository is an in-memory store with the same conditional
// update semantics as the mongo implementation. Used by tests and
// local development.
type DriverRepository struct {
	mu      sync.RWMutex
	drivers map[primitive.ObjectID]*models.Driver
}

func NewDriverRepository() *DriverRepository {
	return &DriverRepository{
		drivers: make(map[primitive.ObjectID]*models.Driver),
	}
}

var _ interfaces.DriverRepository = (*DriverRepository)(nil)

func (r *DriverRepository) Create(ctx context.Context, driver *models.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if driver.ID.IsZero() {
		driver.ID = primitive.NewObjectID()
	}
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = driver.CreatedAt

	clone := *driver
	r.drivers[driver.ID] = &clone
	return nil
}

func (r *DriverRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	driver, ok := r.drivers[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	clone := *driver
	return &clone, nil
}

func (r *DriverRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.DriverStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return utils.ErrNotFound
	}
	now := time.Now()
	driver.Status = status
	driver.LastActiveAt = &now
	driver.UpdatedAt = now
	return nil
}

func (r *DriverRepository) SetStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.DriverStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return utils.ErrNotFound
	}
	if driver.Status != from {
		return utils.ErrDriverUnavailable
	}
	now := time.Now()
	driver.Status = to
	driver.LastActiveAt = &now
	driver.UpdatedAt = now
	return nil
}

func (r *DriverRepository) ToggleService(ctx context.Context, id primitive.ObjectID, service models.ServiceType, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return utils.ErrNotFound
	}
	switch service {
	case models.ServiceTypeRideshare:
		driver.Services.Rideshare = enabled
	case models.ServiceTypeDelivery:
		driver.Services.Delivery = enabled
	case models.ServiceTypeCourier:
		driver.Services.Courier = enabled
	}
	driver.UpdatedAt = time.Now()
	return nil
}

func (r *DriverRepository) UpdateSubscription(ctx context.Context, id primitive.ObjectID, tier models.SubscriptionTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return utils.ErrNotFound
	}
	driver.SubscriptionTier = tier
	driver.UpdatedAt = time.Now()
	return nil
}

func (r *DriverRepository) UpdateLocation(ctx context.Context, id primitive.ObjectID, lat, lng float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return utils.ErrNotFound
	}
	driver.CurrentLocation = &models.DriverLocation{
		Latitude:  lat,
		Longitude: lng,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (r *DriverRepository) RecordCompletion(ctx context.Context, id primitive.ObjectID, amount float64, jobType models.ServiceType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return utils.ErrNotFound
	}

	driver.Earnings.Today += amount
	driver.Earnings.Weekly += amount
	driver.Earnings.Monthly += amount
	driver.Earnings.Lifetime += amount

	switch jobType {
	case models.ServiceTypeDelivery:
		driver.CompletedJobs.Deliveries++
	case models.ServiceTypeCourier:
		driver.CompletedJobs.CourierJobs++
	default:
		driver.CompletedJobs.Rides++
	}

	now := time.Now()
	driver.Status = models.DriverStatusOnline
	driver.LastActiveAt = &now
	driver.UpdatedAt = now
	return nil
}
