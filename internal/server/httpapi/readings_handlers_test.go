package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/dmitrijs2005/sensorhub/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadings_RequireBearer(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/readings", "", map[string]any{"sensorId": "s1", "value": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())

	for _, h := range []string{"Basic abc", "Bearer", "Bearer   "} {
		rec := f.doRaw(t, http.MethodGet, "/api/readings", h)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", h)
		assert.Equal(t, common.BearerScheme, rec.Header().Get("WWW-Authenticate"), "header %q", h)
	}
	assert.Empty(t, f.readings.items)
}

func TestReadings_InvalidAndExpiredToken(t *testing.T) {
	f := newFixture()
	f.token(t, "alice")

	rec := f.do(t, http.MethodGet, "/api/readings", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())

	past := time.Now().Add(-2 * time.Hour)
	old, err := auth.NewTokenService([]byte(testSecret), time.Hour).WithClock(func() time.Time { return past }).Issue("alice")
	require.NoError(t, err)

	rec = f.do(t, http.MethodGet, "/api/readings", old, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"token expired"}`, rec.Body.String())
}

func TestReadings_TokenForDeletedAccount(t *testing.T) {
	f := newFixture()
	tok, err := f.auth.tokens.Issue("nobody")
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/api/readings", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReading(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")

	rec := f.do(t, http.MethodPost, "/api/readings", tok, map[string]any{
		"sensorId":  "s1",
		"value":     21.5,
		"timestamp": "2025-01-01T12:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/readings/s1/1", rec.Header().Get("Location"))

	var got readingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "s1", got.SensorID)
	assert.Equal(t, 21.5, got.Value)
	assert.True(t, got.Timestamp.Equal(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestCreateReading_TimestampForms(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")

	cases := map[string]time.Time{
		"2025-01-01T12:00:00+02:00": time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		"2025-01-01T12:00:00":       time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		"2025-01-01T12:00:00.250":   time.Date(2025, 1, 1, 12, 0, 0, 250_000_000, time.UTC),
		"2025-01-01T12:00":          time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		rec := f.do(t, http.MethodPost, "/api/readings", tok, map[string]any{"sensorId": "s1", "value": 1, "timestamp": in})
		require.Equal(t, http.StatusCreated, rec.Code, in)
		var got readingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Timestamp.Equal(want), "%s -> %s", in, got.Timestamp)
	}
}

func TestCreateReading_DefaultTimestamp(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")

	before := time.Now().Add(-time.Second)
	rec := f.do(t, http.MethodPost, "/api/readings", tok, map[string]any{"sensorId": "s1", "value": 3})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got readingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Timestamp.After(before))
}

func TestCreateReading_BadTimestamp(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")

	rec := f.do(t, http.MethodPost, "/api/readings", tok, map[string]any{"sensorId": "s1", "value": 1, "timestamp": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.readings.items)
}

func TestCreateReading_BlankSensor(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")

	for _, body := range []map[string]any{{"value": 1}, {"sensorId": "  ", "value": 1}} {
		rec := f.do(t, http.MethodPost, "/api/readings", tok, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []common.FieldError{{Field: "sensorId", Message: "sensorId must not be blank"}},
			decodeFieldErrors(t, rec.Body.Bytes()))
	}
	assert.Empty(t, f.readings.items)
}

func TestListReadings(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")

	rec := f.do(t, http.MethodGet, "/api/readings", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for _, id := range []string{"s1", "s2", "s1"} {
		rec := f.do(t, http.MethodPost, "/api/readings", tok, map[string]any{"sensorId": id, "value": 1})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/api/readings", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []readingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 3)

	rec = f.do(t, http.MethodGet, "/api/readings/s1", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var s1 []readingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s1))
	require.Len(t, s1, 2)
	assert.Equal(t, []int64{1, 3}, []int64{s1[0].ID, s1[1].ID})
}

func TestListSensorReadings_NotFound(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")

	rec := f.do(t, http.MethodGet, "/api/readings/unknown", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReadings_InternalError(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")
	f.readings.err = errors.New("db down")

	rec := f.do(t, http.MethodGet, "/api/readings", tok, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		in    string
		token string
		ok    bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		tok, ok := bearerToken(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.token, tok, tc.in)
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := errors.Join(common.ErrorNotFound)
	assert.Equal(t, "not found", notFoundMessage(err))
	assert.Equal(t, "no readings found for sensor ID: x",
		notFoundMessage(errors.New("not found: no readings found for sensor ID: x")))
}

func TestCreateReading_LocationResolves(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")

	rec := f.do(t, http.MethodPost, "/api/readings", tok, map[string]any{"sensorId": "room 1", "value": 4.5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	loc := rec.Header().Get("Location")
	assert.Equal(t, "/api/readings/room%201/1", loc)

	rec = f.do(t, http.MethodGet, loc, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got readingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "room 1", got.SensorID)
	assert.Equal(t, 4.5, got.Value)
}

func TestGetReading_NotFound(t *testing.T) {
	f := newFixture()
	tok := f.token(t, "alice")
	rec := f.do(t, http.MethodPost, "/api/readings", tok, map[string]any{"sensorId": "s1", "value": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		path string
		want string
	}{
		{"/api/readings/s2/1", `{"error":"no reading 1 found for sensor ID: s2"}`},
		{"/api/readings/s1/99", `{"error":"no reading 99 found for sensor ID: s1"}`},
		{"/api/readings/s1/abc", `{"error":"no reading abc found for sensor ID: s1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.path, tok, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestGetReading_RequiresBearer(t *testing.T) {
	f := newFixture()
	rec := f.do(t, http.MethodGet, "/api/readings/s1/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
