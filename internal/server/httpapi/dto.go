package httpapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"notblank,min=3,max=100"`
	Password string `json:"password" binding:"notblank,min=6,max=72"`
}

type loginRequest struct {
	Username string `json:"username" binding:"notblank"`
	Password string `json:"password" binding:"notblank"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type readingRequest struct {
	SensorID  string     `json:"sensorId" binding:"notblank"`
	Value     float64    `json:"value"`
	Timestamp *Timestamp `json:"timestamp"`
}

type readingResponse struct {
	ID        int64     `json:"id"`
	SensorID  string    `json:"sensorId"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

func toReadingResponse(r models.Reading) readingResponse {
	return readingResponse{ID: r.ID, SensorID: r.SensorID, Value: r.Value, Timestamp: r.Timestamp}
}

func toReadingResponses(items []models.Reading) []readingResponse {
	out := make([]readingResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReadingResponse(r))
	}
	return out
}

// timestampLayouts are tried in order. Layouts without a zone parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Timestamp accepts RFC 3339 or zone-less ISO local date-times.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
