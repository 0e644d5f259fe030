package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gigdispatch/internal/models"
	"gigdispatch/internal/repositories/interfaces"
	"gigdispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type jobRepository struct {
	collection *mongo.Collection
}

func NewJobRepository(db *mongo.Database) interfaces.JobRepository {
	return &jobRepository{
		collection: db.Collection("gig_jobs"),
	}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	job.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) ListClaimable(ctx context.Context, services []models.ServiceType, limit int64) ([]*models.Job, error) {
	if len(services) == 0 {
		return []*models.Job{}, nil
	}

	filter := bson.M{
		"status":    models.JobStatusSearching,
		"driver_id": nil,
		"job_type":  bson.M{"$in": services},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list claimable jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []*models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode claimable jobs: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) GetActiveByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Job, error) {
	filter := bson.M{
		"driver_id": driverID,
		"status": bson.M{"$in": []models.JobStatus{
			models.JobStatusAccepted,
			models.JobStatusPickedUp,
			models.JobStatusInTransit,
		}},
	}

	var job models.Job
	err := r.collection.FindOne(ctx, filter).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active job: %w", err)
	}
	return &job, nil
}

// Claim performs the assignment as a single conditional write. Two
// concurrent claims race on the same filter; the store commits exactly
// one of them.
func (r *jobRepository) Claim(ctx context.Context, id, driverID primitive.ObjectID, pricing models.EarningsBreakdown) (*models.Job, error) {
	now := time.Now()
	filter := bson.M{
		"_id":       id,
		"status":    models.JobStatusSearching,
		"driver_id": nil,
	}
	update := bson.M{"$set": bson.M{
		"driver_id":           driverID,
		"status":              models.JobStatusAccepted,
		"accepted_at":         now,
		"total_price":         pricing.TotalPrice,
		"commission_rate":     pricing.CommissionRate,
		"platform_commission": pricing.PlatformCommission,
		"driver_earnings":     pricing.DriverEarnings,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job models.Job
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
			if countErr != nil {
				return nil, fmt.Errorf("failed to check job: %w", countErr)
			}
			if count == 0 {
				return nil, utils.ErrNotFound
			}
			return nil, utils.ErrJobAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) AdvanceStatus(ctx context.Context, id, driverID primitive.ObjectID, from, to models.JobStatus) (*models.Job, error) {
	set := bson.M{"status": to}
	switch to {
	case models.JobStatusPickedUp:
		set["picked_up_at"] = time.Now()
	case models.JobStatusInTransit:
		set["in_transit_at"] = time.Now()
	}

	filter := bson.M{"_id": id, "driver_id": driverID, "status": from}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job models.Job
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.transitionMiss(ctx, id)
		}
		return nil, fmt.Errorf("failed to advance job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) Complete(ctx context.Context, id, driverID primitive.ObjectID, tipAmount, driverEarnings float64) (*models.Job, error) {
	filter := bson.M{
		"_id":       id,
		"driver_id": driverID,
		"status":    models.JobStatusInTransit,
	}
	update := bson.M{"$set": bson.M{
		"status":          models.JobStatusCompleted,
		"completed_at":    time.Now(),
		"tip_amount":      tipAmount,
		"driver_earnings": driverEarnings,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job models.Job
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.transitionMiss(ctx, id)
		}
		return nil, fmt.Errorf("failed to complete job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) Cancel(ctx context.Context, id primitive.ObjectID, actor models.CancelActor, reason string) (*models.Job, error) {
	filter := bson.M{
		"_id": id,
		"status": bson.M{"$nin": []models.JobStatus{
			models.JobStatusCompleted,
			models.JobStatusCancelled,
		}},
	}
	update := bson.M{"$set": bson.M{
		"status":        models.JobStatusCancelled,
		"cancelled_at":  time.Now(),
		"cancelled_by":  actor,
		"cancel_reason": reason,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job models.Job
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.transitionMiss(ctx, id)
		}
		return nil, fmt.Errorf("failed to cancel job: %w", err)
	}
	return &job, nil
}

// transitionMiss classifies a conditional-update miss: unknown id or a
// job that is not in the required state.
func (r *jobRepository) transitionMiss(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check job: %w", err)
	}
	if count == 0 {
		return utils.ErrNotFound
	}
	return utils.ErrInvalidTransition
}
