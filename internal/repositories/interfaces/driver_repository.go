package interfaces

import (
	"context"

	"gigdispatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)

	// UpdateStatus sets the status unconditionally. Guarding against
	// illegal flips (e.g. busy → online while a job is active) is the
	// service's job.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.DriverStatus) error

	// SetStatusIf flips the status only when the current value matches
	// from. Returns utils.ErrDriverUnavailable when the driver exists in
	// a different status, utils.ErrNotFound when it does not exist.
	SetStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.DriverStatus) error

	ToggleService(ctx context.Context, id primitive.ObjectID, service models.ServiceType, enabled bool) error
	UpdateSubscription(ctx context.Context, id primitive.ObjectID, tier models.SubscriptionTier) error
	UpdateLocation(ctx context.Context, id primitive.ObjectID, lat, lng float64) error

	// RecordCompletion atomically adds the payout to all four earnings
	// rollups, bumps the per-type completion counter and returns the
	// driver to online. Called once per job, gated by the job's own
	// completion transition.
	RecordCompletion(ctx context.Context, id primitive.ObjectID, amount float64, jobType models.ServiceType) error
}
