package models

import "time"

// Location is an opaque place descriptor. Coordinates are optional; the
// engine never computes distances or routes from them.
type Location struct {
	Address   string   `json:"address" bson:"address"`
	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

// DriverLocation is the advisory last-known position of a driver.
// Last write wins; only the timestamp is required to be monotonic.
type DriverLocation struct {
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
