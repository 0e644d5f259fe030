package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gigdispatch/internal/models"
	"gigdispatch/internal/repositories/interfaces"
	"gigdispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobRepository mirrors the mongo job store: every transition is a
// compare-and-set under one lock, so concurrent claims resolve to a
// single winner here exactly as they do against the real store.
type JobRepository struct {
	mu   sync.Mutex
	jobs map[primitive.ObjectID]*models.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{
		jobs: make(map[primitive.ObjectID]*models.Job),
	}
}

var _ interfaces.JobRepository = (*JobRepository)(nil)

func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	job.CreatedAt = time.Now()

	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	clone := *job
	return &clone, nil
}

func (r *JobRepository) ListClaimable(ctx context.Context, services []models.ServiceType, limit int64) ([]*models.Job, error) {
	if len(services) == 0 {
		return []*models.Job{}, nil
	}
	enabled := make(map[models.ServiceType]bool, len(services))
	for _, s := range services {
		enabled[s] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	matches := []*models.Job{}
	for _, job := range r.jobs {
		if job.Status == models.JobStatusSearching && job.DriverID == nil && enabled[job.JobType] {
			clone := *job
			matches = append(matches, &clone)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})

	if limit > 0 && int64(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *JobRepository) GetActiveByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, job := range r.jobs {
		if job.DriverID != nil && *job.DriverID == driverID && job.Status.IsActive() {
			clone := *job
			return &clone, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *JobRepository) Claim(ctx context.Context, id, driverID primitive.ObjectID, pricing models.EarningsBreakdown) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if job.Status != models.JobStatusSearching || job.DriverID != nil {
		return nil, utils.ErrJobAlreadyClaimed
	}

	now := time.Now()
	assigned := driverID
	job.DriverID = &assigned
	job.Status = models.JobStatusAccepted
	job.AcceptedAt = &now
	job.TotalPrice = pricing.TotalPrice
	job.CommissionRate = pricing.CommissionRate
	job.PlatformCommission = pricing.PlatformCommission
	job.DriverEarnings = pricing.DriverEarnings

	clone := *job
	return &clone, nil
}

func (r *JobRepository) AdvanceStatus(ctx context.Context, id, driverID primitive.ObjectID, from, to models.JobStatus) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if job.Status != from || job.DriverID == nil || *job.DriverID != driverID {
		return nil, utils.ErrInvalidTransition
	}

	now := time.Now()
	job.Status = to
	switch to {
	case models.JobStatusPickedUp:
		job.PickedUpAt = &now
	case models.JobStatusInTransit:
		job.InTransitAt = &now
	}

	clone := *job
	return &clone, nil
}

func (r *JobRepository) Complete(ctx context.Context, id, driverID primitive.ObjectID, tipAmount, driverEarnings float64) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if job.Status != models.JobStatusInTransit || job.DriverID == nil || *job.DriverID != driverID {
		return nil, utils.ErrInvalidTransition
	}

	now := time.Now()
	job.Status = models.JobStatusCompleted
	job.CompletedAt = &now
	job.TipAmount = tipAmount
	job.DriverEarnings = driverEarnings

	clone := *job
	return &clone, nil
}

func (r *JobRepository) Cancel(ctx context.Context, id primitive.ObjectID, actor models.CancelActor, reason string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if job.Status.IsTerminal() {
		return nil, utils.ErrInvalidTransition
	}

	now := time.Now()
	job.Status = models.JobStatusCancelled
	job.CancelledAt = &now
	job.CancelledBy = actor
	job.CancelReason = reason

	clone := *job
	return &clone, nil
}
