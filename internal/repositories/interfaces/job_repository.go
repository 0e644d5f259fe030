package interfaces

import (
	"context"

	"gigdispatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)

	// ListClaimable returns unassigned searching jobs whose type is in
	// services, oldest first.
	ListClaimable(ctx context.Context, services []models.ServiceType, limit int64) ([]*models.Job, error)

	// GetActiveByDriver returns the driver's accepted/picked_up/in_transit
	// job, or utils.ErrNotFound.
	GetActiveByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Job, error)

	// Claim is the conditional assignment write: it sets the driver and
	// the frozen commission fields only if the job is still searching
	// with no driver. A miss returns utils.ErrJobAlreadyClaimed (or
	// utils.ErrNotFound when the job does not exist); the caller reads
	// the job back to distinguish a lost race from a terminal state.
	Claim(ctx context.Context, id, driverID primitive.ObjectID, pricing models.EarningsBreakdown) (*models.Job, error)

	// AdvanceStatus moves from → to only when the job is currently in
	// from and assigned to driverID. A miss returns
	// utils.ErrInvalidTransition (utils.ErrNotFound for unknown ids).
	AdvanceStatus(ctx context.Context, id, driverID primitive.ObjectID, from, to models.JobStatus) (*models.Job, error)

	// Complete finalizes in_transit → completed with the tip folded into
	// the payout. Same conditional semantics as AdvanceStatus; it
	// succeeds at most once per job.
	Complete(ctx context.Context, id, driverID primitive.ObjectID, tipAmount, driverEarnings float64) (*models.Job, error)

	// Cancel terminates any non-terminal job. A miss on a terminal job
	// returns utils.ErrInvalidTransition.
	Cancel(ctx context.Context, id primitive.ObjectID, actor models.CancelActor, reason string) (*models.Job, error)
}
