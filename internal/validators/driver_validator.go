package validators

import (
	"gigdispatch/internal/models"
)

type DriverRegistrationRequest struct {
	VehicleType      string              `json:"vehicle_type" binding:"required"`
	VehicleMake      string              `json:"vehicle_make"`
	VehicleModel     string              `json:"vehicle_model"`
	VehicleYear      int                 `json:"vehicle_year"`
	VehiclePlate     string              `json:"vehicle_plate" binding:"required"`
	VehicleColor     string              `json:"vehicle_color"`
	LicenseNumber    string              `json:"license_number" binding:"required"`
	Services         models.ServiceFlags `json:"services"`
	IsPremiumVehicle bool                `json:"is_premium_vehicle"`
	SubscriptionTier string              `json:"subscription_tier"`
}

type DriverStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type ServiceToggleRequest struct {
	Service string `json:"service" binding:"required"`
	Enabled bool   `json:"enabled"`
}

type SubscriptionUpdateRequest struct {
	Tier string `json:"tier" binding:"required"`
}

type DriverLocationUpdateRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

func ValidateDriverRegistration(req *DriverRegistrationRequest) map[string]string {
	errors := make(map[string]string)

	if req.LicenseNumber == "" {
		errors["license_number"] = "license number is required"
	}
	if req.VehiclePlate == "" {
		errors["vehicle_plate"] = "vehicle plate is required"
	}
	if !req.Services.Any() {
		errors["services"] = "at least one service must be enabled"
	}
	if req.SubscriptionTier != "" && !models.ValidSubscriptionTier(models.SubscriptionTier(req.SubscriptionTier)) {
		errors["subscription_tier"] = "must be one of free, pro, elite"
	}

	return errors
}

func ValidateDriverStatusUpdate(req *DriverStatusUpdateRequest) map[string]string {
	errors := make(map[string]string)

	if !models.ValidDriverStatus(models.DriverStatus(req.Status)) {
		errors["status"] = "must be one of offline, online, busy, on_break"
	}

	return errors
}

func ValidateServiceToggle(req *ServiceToggleRequest) map[string]string {
	errors := make(map[string]string)

	if !models.ValidServiceType(models.ServiceType(req.Service)) {
		errors["service"] = "must be one of rideshare, delivery, courier"
	}

	return errors
}

func ValidateDriverLocationUpdate(req *DriverLocationUpdateRequest) map[string]string {
	errors := make(map[string]string)

	if req.Latitude < -90 || req.Latitude > 90 {
		errors["latitude"] = "must be between -90 and 90"
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		errors["longitude"] = "must be between -180 and 180"
	}

	return errors
}
