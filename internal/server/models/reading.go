package models

import "time"

// Reading is one measurement reported by a sensor. ID is assigned by storage.
type Reading struct {
	ID        int64
	SensorID  string
	Value     float64
	Timestamp time.Time
}
