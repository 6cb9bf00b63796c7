// Package models holds the client-side view of API payloads.
package models

import "time"

// Reading is a stored sensor reading as returned by the API.
type Reading struct {
	ID        int64     `json:"id"`
	SensorID  string    `json:"sensorId"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReading is the payload for adding a reading. A nil Timestamp lets the
// server use the current time.
type NewReading struct {
	SensorID  string     `json:"sensorId"`
	Value     float64    `json:"value"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}
