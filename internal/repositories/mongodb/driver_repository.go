package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gigdispatch/internal/models"
	"gigdispatch/internal/repositories/interfaces"
	"gigdispatch/internal/utils"
	"gigdispatch/pkg/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const driverCacheTTL = 5 * time.Minute

type driverRepository struct {
	collection *mongo.Collection
	cache      *cache.Client
}

func NewDriverRepository(db *mongo.Database, cacheClient *cache.Client) interfaces.DriverRepository {
	return &driverRepository{
		collection: db.Collection("drivers"),
		cache:      cacheClient,
	}
}

func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	if driver.ID.IsZero() {
		driver.ID = primitive.NewObjectID()
	}
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = driver.CreatedAt

	if _, err := r.collection.InsertOne(ctx, driver); err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	if driver := r.getFromCache(ctx, id); driver != nil {
		return driver, nil
	}

	var driver models.Driver
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	r.putInCache(ctx, &driver)
	return &driver, nil
}

func (r *driverRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.DriverStatus) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":         status,
			"last_active_at": now,
			"updated_at":     now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *driverRepository) SetStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.DriverStatus) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{
			"status":         to,
			"last_active_at": now,
			"updated_at":     now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing driver from one in the wrong status.
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr != nil {
			return fmt.Errorf("failed to check driver: %w", countErr)
		}
		if count == 0 {
			return utils.ErrNotFound
		}
		return utils.ErrDriverUnavailable
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *driverRepository) ToggleService(ctx context.Context, id primitive.ObjectID, service models.ServiceType, enabled bool) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"services." + string(service): enabled,
			"updated_at":                  time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to toggle service: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *driverRepository) UpdateSubscription(ctx context.Context, id primitive.ObjectID, tier models.SubscriptionTier) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"subscription_tier": tier,
			"updated_at":        time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *driverRepository) UpdateLocation(ctx context.Context, id primitive.ObjectID, lat, lng float64) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"current_location": models.DriverLocation{
				Latitude:  lat,
				Longitude: lng,
				UpdatedAt: time.Now(),
			},
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *driverRepository) RecordCompletion(ctx context.Context, id primitive.ObjectID, amount float64, jobType models.ServiceType) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{
				"earnings.today":    amount,
				"earnings.weekly":   amount,
				"earnings.monthly":  amount,
				"earnings.lifetime": amount,
				completionCounter(jobType): 1,
			},
			"$set": bson.M{
				"status":         models.DriverStatusOnline,
				"last_active_at": now,
				"updated_at":     now,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func completionCounter(jobType models.ServiceType) string {
	switch jobType {
	case models.ServiceTypeDelivery:
		return "completed_jobs.deliveries"
	case models.ServiceTypeCourier:
		return "completed_jobs.courier_jobs"
	default:
		return "completed_jobs.rides"
	}
}

func driverCacheKey(id primitive.ObjectID) string {
	return "driver:" + id.Hex()
}

func (r *driverRepository) getFromCache(ctx context.Context, id primitive.ObjectID) *models.Driver {
	if r.cache == nil {
		return nil
	}
	var driver models.Driver
	if err := r.cache.Get(ctx, driverCacheKey(id), &driver); err != nil {
		return nil
	}
	return &driver
}

func (r *driverRepository) putInCache(ctx context.Context, driver *models.Driver) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, driverCacheKey(driver.ID), driver, driverCacheTTL)
}

func (r *driverRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, driverCacheKey(id))
}
