package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"meetsched/internal/config"
	"meetsched/internal/service"
	"meetsched/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func newTestServer(t *testing.T) http.Handler {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	cfg.Host.Name = "Sandesh"
	cfg.Host.Email = "host@example.com"

	logger := testLogger()
	svc := service.New(cfg, store.NewMem(), nil, nil, logger)
	return NewRouter(NewHandler(cfg, svc, logger), logger)
}

// futureWeekday returns the next non-Saturday date, formatted YYYY-MM-DD.
func futureWeekday() string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func bookingBody(date, timeOfDay string, duration int) string {
	return fmt.Sprintf(`{
		"name": "Asha Rai",
		"email": "asha@example.com",
		"date": %q,
		"time": %q,
		"duration": %d,
		"purpose": "project kickoff"
	}`, date, timeOfDay, duration)
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		System  struct {
			Mode           string `json:"mode"`
			Host           string `json:"host"`
			Timezone       string `json:"timezone"`
			OperatingHours string `json:"operatingHours"`
			EmailEnabled   bool   `json:"emailEnabled"`
			TotalBookings  int    `json:"totalBookings"`
		} `json:"system"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Personal Meeting Room", resp.System.Mode)
	assert.Equal(t, "Asia/Kathmandu", resp.System.Timezone)
	assert.Equal(t, "14:00 - 20:00", resp.System.OperatingHours)
	assert.False(t, resp.System.EmailEnabled)
	assert.Equal(t, 0, resp.System.TotalBookings)
}

func TestBookEndpoint(t *testing.T) {
	srv := newTestServer(t)
	date := futureWeekday()

	rec := doRequest(t, srv, http.MethodPost, "/api/book", bookingBody(date, "14:00", 30))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Booking struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"booking"`
		EmailSent    bool `json:"emailSent"`
		HostNotified bool `json:"hostNotified"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Booking.ID, 9)
	assert.Equal(t, "scheduled", resp.Booking.Status)
	// No notifier wired in this test server.
	assert.False(t, resp.EmailSent)
	assert.False(t, resp.HostNotified)
}

func TestBookEndpointConflict(t *testing.T) {
	srv := newTestServer(t)
	date := futureWeekday()

	rec := doRequest(t, srv, http.MethodPost, "/api/book", bookingBody(date, "14:00", 30))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/book", bookingBody(date, "14:15", 30))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CONFLICT", resp.Code)
}

func TestBookEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/book", bookingBody(futureWeekday(), "14:00", 45))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Equal(t, "duration must be 30, 60 or 90 minutes", resp.Message)
}

func TestBookEndpointBadBody(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/book", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Code)
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	date := futureWeekday()

	rec := doRequest(t, srv, http.MethodGet, "/api/available-slots?date="+date, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp slotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Count)
	assert.Equal(t, "14:00", resp.Slots[0])

	// Book a slot and it disappears from the listing.
	rec = doRequest(t, srv, http.MethodPost, "/api/book", bookingBody(date, "14:00", 30))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/available-slots?date="+date, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Count)
	assert.NotContains(t, resp.Slots, "14:00")
}

func TestAvailableSlotsEndpointMissingDate(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/available-slots", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListBookingsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	date := futureWeekday()

	rec := doRequest(t, srv, http.MethodPost, "/api/book", bookingBody(date, "15:00", 60))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp bookingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "15:00", resp.Bookings[0].Time)
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/bookings/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, rec.Body.Len())
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := testLogger()
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	srv := recovery(logger, panicking)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
}
