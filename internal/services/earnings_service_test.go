package services

import (
	"errors"
	"math"
	"testing"

	"gigdispatch/internal/models"
	"gigdispatch/internal/utils"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEarningsService_Calculate(t *testing.T) {
	svc := NewEarningsService(models.DefaultRateTable())

	tests := []struct {
		name           string
		basePrice      float64
		jobType        models.ServiceType
		premium        bool
		tier           models.SubscriptionTier
		surge          float64
		tip            float64
		wantRate       float64
		wantTotal      float64
		wantCommission float64
		wantEarnings   float64
	}{
		{
			name:      "standard rideshare free tier",
			basePrice: 100, jobType: models.ServiceTypeRideshare,
			tier: models.TierFree, surge: 1.0,
			wantRate: 0.15, wantTotal: 100, wantCommission: 15.00, wantEarnings: 85.00,
		},
		{
			name:      "premium vehicle rideshare",
			basePrice: 100, jobType: models.ServiceTypeRideshare, premium: true,
			tier: models.TierFree, surge: 1.0,
			wantRate: 0.10, wantTotal: 100, wantCommission: 10.00, wantEarnings: 90.00,
		},
		{
			name:      "delivery pro tier with surge and tip",
			basePrice: 50, jobType: models.ServiceTypeDelivery,
			tier: models.TierPro, surge: 1.5, tip: 10,
			wantRate: 0.15, wantTotal: 75, wantCommission: 11.25, wantEarnings: 73.75,
		},
		{
			name:      "courier elite tier",
			basePrice: 40, jobType: models.ServiceTypeCourier,
			tier: models.TierElite, surge: 1.0,
			wantRate: 0.07, wantTotal: 40, wantCommission: 2.80, wantEarnings: 37.20,
		},
		{
			name:      "premium rideshare elite tier stacks additively",
			basePrice: 100, jobType: models.ServiceTypeRideshare, premium: true,
			tier: models.TierElite, surge: 1.0,
			wantRate: 0.02, wantTotal: 100, wantCommission: 2.00, wantEarnings: 98.00,
		},
		{
			name:      "premium flag ignored for delivery",
			basePrice: 100, jobType: models.ServiceTypeDelivery, premium: true,
			tier: models.TierFree, surge: 1.0,
			wantRate: 0.20, wantTotal: 100, wantCommission: 20.00, wantEarnings: 80.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Calculate(tt.basePrice, tt.jobType, tt.premium, tt.tier, tt.surge, tt.tip)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got.CommissionRate, tt.wantRate) {
				t.Errorf("commission rate = %v, want %v", got.CommissionRate, tt.wantRate)
			}
			if !almostEqual(got.TotalPrice, tt.wantTotal) {
				t.Errorf("total price = %v, want %v", got.TotalPrice, tt.wantTotal)
			}
			if !almostEqual(got.PlatformCommission, tt.wantCommission) {
				t.Errorf("platform commission = %v, want %v", got.PlatformCommission, tt.wantCommission)
			}
			if !almostEqual(got.DriverEarnings, tt.wantEarnings) {
				t.Errorf("driver earnings = %v, want %v", got.DriverEarnings, tt.wantEarnings)
			}
		})
	}
}

func TestEarningsService_Calculate_InvalidInput(t *testing.T) {
	svc := NewEarningsService(models.DefaultRateTable())

	tests := []struct {
		name      string
		basePrice float64
		jobType   models.ServiceType
		surge     float64
		tip       float64
	}{
		{name: "zero base price", basePrice: 0, jobType: models.ServiceTypeRideshare, surge: 1.0},
		{name: "negative base price", basePrice: -10, jobType: models.ServiceTypeRideshare, surge: 1.0},
		{name: "surge below one", basePrice: 50, jobType: models.ServiceTypeDelivery, surge: 0.5},
		{name: "negative tip", basePrice: 50, jobType: models.ServiceTypeDelivery, surge: 1.0, tip: -1},
		{name: "unknown job type", basePrice: 50, jobType: "scooter", surge: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Calculate(tt.basePrice, tt.jobType, false, models.TierFree, tt.surge, tt.tip)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !utils.IsValidationError(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestEarningsService_RateClampedAtZero(t *testing.T) {
	rates := models.RateTable{
		Commission: map[models.ServiceType]float64{
			models.ServiceTypeRideshare: 0.15,
		},
		PremiumRideshare: 0.05,
		TierDiscount: map[models.SubscriptionTier]float64{
			models.TierElite: 0.08,
		},
	}
	svc := NewEarningsService(rates)

	got, err := svc.Calculate(100, models.ServiceTypeRideshare, true, models.TierElite, 1.0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CommissionRate != 0 {
		t.Errorf("commission rate = %v, want 0", got.CommissionRate)
	}
	if !almostEqual(got.DriverEarnings, 100) {
		t.Errorf("driver earnings = %v, want 100", got.DriverEarnings)
	}
}

func TestEarningsService_RoundsHalfUpToCents(t *testing.T) {
	svc := NewEarningsService(models.DefaultRateTable())

	// 33.33 * 0.15 = 4.9995 → 5.00
	got, err := svc.Calculate(33.33, models.ServiceTypeRideshare, false, models.TierFree, 1.0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got.PlatformCommission, 5.00) {
		t.Errorf("platform commission = %v, want 5.00", got.PlatformCommission)
	}
	if !almostEqual(got.DriverEarnings, 28.33) {
		t.Errorf("driver earnings = %v, want 28.33", got.DriverEarnings)
	}
}

func TestEarningsService_UnknownTierGetsNoDiscount(t *testing.T) {
	svc := NewEarningsService(models.DefaultRateTable())

	rate, err := svc.CommissionRate(models.ServiceTypeCourier, false, "platinum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 0.15 {
		t.Errorf("rate = %v, want 0.15", rate)
	}
}

func TestEarningsService_ErrorTaxonomy(t *testing.T) {
	svc := NewEarningsService(models.DefaultRateTable())

	_, err := svc.Calculate(-1, models.ServiceTypeRideshare, false, models.TierFree, 1.0, 0)
	var ve *utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != "base_price" {
		t.Errorf("field = %q, want base_price", ve.Field)
	}
}
