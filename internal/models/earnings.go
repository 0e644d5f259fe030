package models

// RateTable carries the commission and discount schedule. It is built
// once at startup and passed into the earnings service, so tests can
// swap schedules without touching globals.
type RateTable struct {
	Commission       map[ServiceType]float64
	PremiumRideshare float64
	TierDiscount     map[SubscriptionTier]float64
}

// DefaultRateTable returns the production schedule: rideshare 15%,
// delivery 20%, courier 15%, premium rideshare 10%; pro tier takes 5
// points off the rate, elite 8.
func DefaultRateTable() RateTable {
	return RateTable{
		Commission: map[ServiceType]float64{
			ServiceTypeRideshare: 0.15,
			ServiceTypeDelivery:  0.20,
			ServiceTypeCourier:   0.15,
		},
		PremiumRideshare: 0.10,
		TierDiscount: map[SubscriptionTier]float64{
			TierFree:  0,
			TierPro:   0.05,
			TierElite: 0.08,
		},
	}
}

// EarningsBreakdown is the full commission split for one job.
type EarningsBreakdown struct {
	BasePrice          float64 `json:"base_price"`
	SurgeMultiplier    float64 `json:"surge_multiplier"`
	TotalPrice         float64 `json:"total_price"`
	CommissionRate     float64 `json:"commission_rate"`
	PlatformCommission float64 `json:"platform_commission"`
	DriverEarnings     float64 `json:"driver_earnings"`
	TipAmount          float64 `json:"tip_amount"`
}
