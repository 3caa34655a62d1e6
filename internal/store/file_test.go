package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"meetsched/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func sampleBooking(id, timeOfDay string) model.Booking {
	return model.Booking{
		ID:        id,
		Name:      "Asha Rai",
		Email:     "asha@example.com",
		Purpose:   "project kickoff",
		Date:      "2026-09-08",
		Time:      timeOfDay,
		Duration:  30,
		Status:    model.StatusScheduled,
		Timezone:  "Asia/Kathmandu",
		CreatedAt: "2026-08-31T10:00:00Z",
	}
}

func TestOpenFileMissing(t *testing.T) {
	s := OpenFile(filepath.Join(t.TempDir(), "bookings.json"), testLogger())
	assert.Empty(t, s.All())
}

func TestOpenFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := OpenFile(path, testLogger())
	assert.Empty(t, s.All())
}

func TestAppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.json")
	s := OpenFile(path, testLogger())

	first := sampleBooking("100000001", "14:00")
	second := sampleBooking("100000002", "15:00")
	require.NoError(t, s.Append(context.Background(), first))
	require.NoError(t, s.Append(context.Background(), second))

	// Reloading the file yields the identical ordered sequence.
	reloaded := OpenFile(path, testLogger())
	assert.Equal(t, []model.Booking{first, second}, reloaded.All())
}

func TestAppendSurvivesWriteFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "bookings.json")

	// The parent directory does not exist, so every flush fails.
	s := OpenFile(path, testLogger())
	require.NoError(t, s.Append(context.Background(), sampleBooking("100000001", "14:00")))

	// The in-memory ledger is still authoritative.
	assert.Len(t, s.All(), 1)

	// Once writes can succeed, the next append persists everything.
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, s.Append(context.Background(), sampleBooking("100000002", "15:00")))

	reloaded := OpenFile(path, testLogger())
	assert.Len(t, reloaded.All(), 2)
}

func TestAllReturnsSnapshot(t *testing.T) {
	s := OpenFile(filepath.Join(t.TempDir(), "bookings.json"), testLogger())
	require.NoError(t, s.Append(context.Background(), sampleBooking("100000001", "14:00")))

	snapshot := s.All()
	snapshot[0].Name = "mutated"

	assert.Equal(t, "Asha Rai", s.All()[0].Name)
}
