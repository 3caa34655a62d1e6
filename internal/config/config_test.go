package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Server.Port)
	assert.Equal(t, "Asia/Kathmandu", cfg.Booking.Timezone)
	assert.Equal(t, 14, cfg.Booking.MinStartHour)
	assert.Equal(t, 20, cfg.Booking.MaxEndHour)
	assert.Equal(t, "bookings.json", cfg.Booking.DataFile)
	assert.False(t, cfg.EmailConfigured())
	assert.False(t, cfg.TelegramConfigured())
	assert.Equal(t, "14:00 - 20:00", cfg.OperatingHours())
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SMTP_PASS", "s3cret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
booking:
  min_start_hour: 9
  max_end_hour: 17
email:
  smtp_host: smtp.example.com
  username: host@example.com
  password: ${TEST_SMTP_PASS}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Booking.MinStartHour)
	assert.Equal(t, 17, cfg.Booking.MaxEndHour)
	assert.Equal(t, "s3cret", cfg.Email.Password)
	assert.True(t, cfg.EmailConfigured())
	// From falls back to the SMTP username.
	assert.Equal(t, "host@example.com", cfg.Email.From)
}

func TestLoadRejectsInvertedHours(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
booking:
  min_start_hour: 20
  max_end_hour: 14
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
