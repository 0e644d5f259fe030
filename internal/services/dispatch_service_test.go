package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gigdispatch/internal/models"
	"gigdispatch/internal/repositories/memory"
	"gigdispatch/internal/utils"
	"gigdispatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testEngine struct {
	drivers  *DriverService
	dispatch *DispatchService
	jobs     *JobService
	earnings *EarningsService

	driverRepo *memory.DriverRepository
	jobRepo    *memory.JobRepository
}

func newTestEngine() *testEngine {
	log := logger.NewLogger(&logger.Config{Level: "error", Format: "text"})
	driverRepo := memory.NewDriverRepository()
	jobRepo := memory.NewJobRepository()
	earnings := NewEarningsService(models.DefaultRateTable())
	notifier := NewNoopNotifier()

	return &testEngine{
		drivers:    NewDriverService(driverRepo, jobRepo, log),
		dispatch:   NewDispatchService(driverRepo, jobRepo, earnings, notifier, log),
		jobs:       NewJobService(jobRepo, driverRepo, earnings, notifier, log),
		earnings:   earnings,
		driverRepo: driverRepo,
		jobRepo:    jobRepo,
	}
}

func (e *testEngine) onlineDriver(t *testing.T, services models.ServiceFlags, premium bool, tier models.SubscriptionTier) *models.Driver {
	t.Helper()
	ctx := context.Background()

	driver, err := e.drivers.Register(ctx, RegisterDriverInput{
		Vehicle:          models.Vehicle{Type: "sedan", Plate: "PCX-1234"},
		LicenseNumber:    "DL-99887",
		Services:         services,
		IsPremiumVehicle: premium,
		SubscriptionTier: tier,
	})
	if err != nil {
		t.Fatalf("failed to register driver: %v", err)
	}
	if err := e.drivers.SetStatus(ctx, driver.ID, models.DriverStatusOnline); err != nil {
		t.Fatalf("failed to set driver online: %v", err)
	}
	return driver
}

func (e *testEngine) searchingJob(t *testing.T, jobType models.ServiceType, basePrice, surge float64) *models.Job {
	t.Helper()

	job, err := e.jobs.Create(context.Background(), CreateJobInput{
		JobType:         jobType,
		CustomerID:      primitive.NewObjectID(),
		PickupLocation:  models.Location{Address: "12 Frederick St"},
		DropoffLocation: models.Location{Address: "48 Ariapita Ave"},
		BasePrice:       basePrice,
		SurgeMultiplier: surge,
	})
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	return job
}

func allServices() models.ServiceFlags {
	return models.ServiceFlags{Rideshare: true, Delivery: true, Courier: true}
}

func TestDispatchService_Claim_Exclusive(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	job := e.searchingJob(t, models.ServiceTypeRideshare, 100, 1.0)

	const contenders = 16
	drivers := make([]*models.Driver, contenders)
	for i := range drivers {
		drivers[i] = e.onlineDriver(t, allServices(), false, models.TierFree)
	}

	var wg sync.WaitGroup
	results := make([]error, contenders)
	start := make(chan struct{})

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = e.dispatch.Claim(ctx, drivers[i].ID, job.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	var winnerID primitive.ObjectID
	for i, err := range results {
		if err == nil {
			winners++
			winnerID = drivers[i].ID
			continue
		}
		if !errors.Is(err, utils.ErrJobAlreadyClaimed) {
			t.Errorf("loser %d: expected ErrJobAlreadyClaimed, got %v", i, err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", winners)
	}

	stored, err := e.jobs.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("failed to read job: %v", err)
	}
	if stored.Status != models.JobStatusAccepted {
		t.Errorf("job status = %s, want accepted", stored.Status)
	}
	if stored.DriverID == nil || *stored.DriverID != winnerID {
		t.Errorf("job driver does not match the winner")
	}

	// Winner is busy, every loser was rolled back to online.
	for i, d := range drivers {
		profile, err := e.drivers.GetProfile(ctx, d.ID)
		if err != nil {
			t.Fatalf("failed to read driver: %v", err)
		}
		want := models.DriverStatusOnline
		if d.ID == winnerID {
			want = models.DriverStatusBusy
		}
		if profile.Status != want {
			t.Errorf("driver %d status = %s, want %s", i, profile.Status, want)
		}
	}
}

func TestDispatchService_Claim_BusyDriverRejected(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	driver := e.onlineDriver(t, allServices(), false, models.TierFree)
	first := e.searchingJob(t, models.ServiceTypeDelivery, 30, 1.0)
	second := e.searchingJob(t, models.ServiceTypeDelivery, 45, 1.0)

	if _, err := e.dispatch.Claim(ctx, driver.ID, first.ID); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}

	_, err := e.dispatch.Claim(ctx, driver.ID, second.ID)
	if !errors.Is(err, utils.ErrDriverUnavailable) {
		t.Fatalf("expected ErrDriverUnavailable, got %v", err)
	}

	// The second job is untouched.
	stored, _ := e.jobs.Get(ctx, second.ID)
	if stored.Status != models.JobStatusSearching || stored.DriverID != nil {
		t.Errorf("losing claim mutated the job: status=%s", stored.Status)
	}
}

func TestDispatchService_Claim_ServiceNotEnabled(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	driver := e.onlineDriver(t, models.ServiceFlags{Delivery: true}, false, models.TierFree)
	job := e.searchingJob(t, models.ServiceTypeRideshare, 60, 1.0)

	_, err := e.dispatch.Claim(ctx, driver.ID, job.ID)
	if !errors.Is(err, utils.ErrDriverUnavailable) {
		t.Fatalf("expected ErrDriverUnavailable, got %v", err)
	}
}

func TestDispatchService_Claim_OfflineDriver(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	driver, err := e.drivers.Register(ctx, RegisterDriverInput{
		Vehicle:       models.Vehicle{Type: "sedan", Plate: "PCX-2222"},
		LicenseNumber: "DL-11111",
		Services:      allServices(),
	})
	if err != nil {
		t.Fatalf("failed to register driver: %v", err)
	}
	job := e.searchingJob(t, models.ServiceTypeRideshare, 60, 1.0)

	if _, err := e.dispatch.Claim(ctx, driver.ID, job.ID); !errors.Is(err, utils.ErrDriverUnavailable) {
		t.Fatalf("expected ErrDriverUnavailable, got %v", err)
	}
}

func TestDispatchService_Claim_UnknownIDs(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	driver := e.onlineDriver(t, allServices(), false, models.TierFree)
	job := e.searchingJob(t, models.ServiceTypeRideshare, 60, 1.0)

	if _, err := e.dispatch.Claim(ctx, driver.ID, primitive.NewObjectID()); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("unknown job: expected ErrNotFound, got %v", err)
	}
	if _, err := e.dispatch.Claim(ctx, primitive.NewObjectID(), job.ID); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("unknown driver: expected ErrNotFound, got %v", err)
	}
}

func TestDispatchService_Claim_FreezesCommissionRate(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	driver := e.onlineDriver(t, allServices(), true, models.TierPro)
	job := e.searchingJob(t, models.ServiceTypeRideshare, 100, 1.0)

	claimed, err := e.dispatch.Claim(ctx, driver.ID, job.ID)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	// Premium rideshare 10% minus pro discount 5pt.
	if !almostEqual(claimed.CommissionRate, 0.05) {
		t.Errorf("commission rate = %v, want 0.05", claimed.CommissionRate)
	}
	if !almostEqual(claimed.PlatformCommission, 5.00) {
		t.Errorf("platform commission = %v, want 5.00", claimed.PlatformCommission)
	}
	if !almostEqual(claimed.DriverEarnings, 95.00) {
		t.Errorf("driver earnings = %v, want 95.00", claimed.DriverEarnings)
	}
}

func TestDispatchService_ListClaimable(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	driver := e.onlineDriver(t, models.ServiceFlags{Rideshare: true, Courier: true}, false, models.TierFree)

	first := e.searchingJob(t, models.ServiceTypeRideshare, 20, 1.0)
	time.Sleep(2 * time.Millisecond)
	e.searchingJob(t, models.ServiceTypeDelivery, 25, 1.0) // not enabled for this driver
	time.Sleep(2 * time.Millisecond)
	third := e.searchingJob(t, models.ServiceTypeCourier, 30, 1.0)

	jobs, err := e.dispatch.ListClaimable(ctx, driver.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 claimable jobs, got %d", len(jobs))
	}
	if jobs[0].ID != first.ID || jobs[1].ID != third.ID {
		t.Errorf("jobs not in oldest-first order")
	}
}

func TestDispatchService_ListClaimable_OfflineDriverGetsNothing(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	driver := e.onlineDriver(t, allServices(), false, models.TierFree)
	e.searchingJob(t, models.ServiceTypeRideshare, 20, 1.0)

	if err := e.drivers.SetStatus(ctx, driver.ID, models.DriverStatusOffline); err != nil {
		t.Fatalf("failed to set driver offline: %v", err)
	}

	jobs, err := e.dispatch.ListClaimable(ctx, driver.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs for offline driver, got %d", len(jobs))
	}
}

func TestDispatchService_ListClaimable_ExcludesClaimedJobs(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	claimer := e.onlineDriver(t, allServices(), false, models.TierFree)
	viewer := e.onlineDriver(t, allServices(), false, models.TierFree)

	job := e.searchingJob(t, models.ServiceTypeRideshare, 20, 1.0)
	if _, err := e.dispatch.Claim(ctx, claimer.ID, job.ID); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	jobs, err := e.dispatch.ListClaimable(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("claimed job still listed as claimable")
	}
}
