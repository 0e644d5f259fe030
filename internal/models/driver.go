package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverStatus string
type ServiceType string
type SubscriptionTier string

const (
	DriverStatusOffline DriverStatus = "offline"
	DriverStatusOnline  DriverStatus = "online"
	DriverStatusBusy    DriverStatus = "busy"
	DriverStatusOnBreak DriverStatus = "on_break"

	ServiceTypeRideshare ServiceType = "rideshare"
	ServiceTypeDelivery  ServiceType = "delivery"
	ServiceTypeCourier   ServiceType = "courier"

	TierFree  SubscriptionTier = "free"
	TierPro   SubscriptionTier = "pro"
	TierElite SubscriptionTier = "elite"
)

func ValidDriverStatus(s DriverStatus) bool {
	switch s {
	case DriverStatusOffline, DriverStatusOnline, DriverStatusBusy, DriverStatusOnBreak:
		return true
	}
	return false
}

func ValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceTypeRideshare, ServiceTypeDelivery, ServiceTypeCourier:
		return true
	}
	return false
}

func ValidSubscriptionTier(t SubscriptionTier) bool {
	switch t {
	case TierFree, TierPro, TierElite:
		return true
	}
	return false
}

// ServiceFlags holds the per-service enablement toggles. Each flag is
// independently toggleable; a driver needs at least one enabled to
// receive matches while online.
type ServiceFlags struct {
	Rideshare bool `json:"rideshare" bson:"rideshare"`
	Delivery  bool `json:"delivery" bson:"delivery"`
	Courier   bool `json:"courier" bson:"courier"`
}

func (f ServiceFlags) Enabled(service ServiceType) bool {
	switch service {
	case ServiceTypeRideshare:
		return f.Rideshare
	case ServiceTypeDelivery:
		return f.Delivery
	case ServiceTypeCourier:
		return f.Courier
	}
	return false
}

func (f ServiceFlags) EnabledTypes() []ServiceType {
	types := make([]ServiceType, 0, 3)
	if f.Rideshare {
		types = append(types, ServiceTypeRideshare)
	}
	if f.Delivery {
		types = append(types, ServiceTypeDelivery)
	}
	if f.Courier {
		types = append(types, ServiceTypeCourier)
	}
	return types
}

func (f ServiceFlags) Any() bool {
	return f.Rideshare || f.Delivery || f.Courier
}

// EarningsTotals are incremented by the engine only; today/weekly resets
// are an external periodic concern.
type EarningsTotals struct {
	Today    float64 `json:"today" bson:"today"`
	Weekly   float64 `json:"weekly" bson:"weekly"`
	Monthly  float64 `json:"monthly" bson:"monthly"`
	Lifetime float64 `json:"lifetime" bson:"lifetime"`
}

type JobCounts struct {
	Rides       int64 `json:"rides" bson:"rides"`
	Deliveries  int64 `json:"deliveries" bson:"deliveries"`
	CourierJobs int64 `json:"courier_jobs" bson:"courier_jobs"`
}

type Vehicle struct {
	Type  string `json:"type" bson:"type"`
	Make  string `json:"make" bson:"make"`
	Model string `json:"model" bson:"model"`
	Year  int    `json:"year" bson:"year"`
	Plate string `json:"plate" bson:"plate"`
	Color string `json:"color" bson:"color"`
}

type Driver struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Status           DriverStatus       `json:"status" bson:"status"`
	Services         ServiceFlags       `json:"services" bson:"services"`
	IsPremiumVehicle bool               `json:"is_premium_vehicle" bson:"is_premium_vehicle"`
	SubscriptionTier SubscriptionTier   `json:"subscription_tier" bson:"subscription_tier"`
	Rating           float64            `json:"rating" bson:"rating"`
	Vehicle          Vehicle            `json:"vehicle" bson:"vehicle"`
	LicenseNumber    string             `json:"license_number" bson:"license_number"`
	LicenseExpiry    *time.Time         `json:"license_expiry" bson:"license_expiry"`
	Earnings         EarningsTotals     `json:"earnings" bson:"earnings"`
	CompletedJobs    JobCounts          `json:"completed_jobs" bson:"completed_jobs"`
	CurrentLocation  *DriverLocation    `json:"current_location" bson:"current_location"`
	LastActiveAt     *time.Time         `json:"last_active_at" bson:"last_active_at"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// EarningsSummary is the read model returned to the driver app.
type EarningsSummary struct {
	Today     float64   `json:"today"`
	Weekly    float64   `json:"weekly"`
	Monthly   float64   `json:"monthly"`
	Lifetime  float64   `json:"lifetime"`
	Rating    float64   `json:"rating"`
	TotalJobs int64     `json:"total_jobs"`
	Counts    JobCounts `json:"counts"`
}
