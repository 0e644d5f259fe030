package services

import (
	"gigdispatch/internal/models"
	"gigdispatch/internal/utils"
)

// EarningsService computes commission breakdowns. It is pure: the rate
// table is fixed at construction and no call has side effects.
type EarningsService struct {
	rates models.RateTable
}

func NewEarningsService(rates models.RateTable) *EarningsService {
	return &EarningsService{rates: rates}
}

// CommissionRate resolves the rate for one job: base rate by job type,
// the premium override for premium-vehicle rideshare, then the
// subscription discount subtracted from whichever rate was selected.
// The result never goes below zero.
func (s *EarningsService) CommissionRate(jobType models.ServiceType, isPremiumVehicle bool, tier models.SubscriptionTier) (float64, error) {
	rate, ok := s.rates.Commission[jobType]
	if !ok {
		return 0, utils.NewValidationError("job_type", "unknown job type")
	}

	if jobType == models.ServiceTypeRideshare && isPremiumVehicle {
		rate = s.rates.PremiumRideshare
	}

	rate -= s.rates.TierDiscount[tier]
	if rate < 0 {
		rate = 0
	}
	return rate, nil
}

// Calculate produces the full breakdown. Monetary outputs are rounded
// half-up to cents; the rate itself is kept exact.
func (s *EarningsService) Calculate(basePrice float64, jobType models.ServiceType, isPremiumVehicle bool, tier models.SubscriptionTier, surgeMultiplier, tipAmount float64) (*models.EarningsBreakdown, error) {
	if basePrice <= 0 {
		return nil, utils.NewValidationError("base_price", "must be positive")
	}
	if surgeMultiplier < 1.0 {
		return nil, utils.NewValidationError("surge_multiplier", "must be at least 1.0")
	}
	if tipAmount < 0 {
		return nil, utils.NewValidationError("tip_amount", "must not be negative")
	}

	rate, err := s.CommissionRate(jobType, isPremiumVehicle, tier)
	if err != nil {
		return nil, err
	}

	totalPrice := basePrice * surgeMultiplier
	commission := totalPrice * rate
	driverEarnings := totalPrice - commission + tipAmount

	return &models.EarningsBreakdown{
		BasePrice:          basePrice,
		SurgeMultiplier:    surgeMultiplier,
		TotalPrice:         utils.RoundCurrency(totalPrice),
		CommissionRate:     rate,
		PlatformCommission: utils.RoundCurrency(commission),
		DriverEarnings:     utils.RoundCurrency(driverEarnings),
		TipAmount:          tipAmount,
	}, nil
}
