package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Booking struct {
		Timezone     string `yaml:"timezone"`
		MinStartHour int    `yaml:"min_start_hour"`
		MaxEndHour   int    `yaml:"max_end_hour"`
		DataFile     string `yaml:"data_file"`
	} `yaml:"booking"`

	Host struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
		Phone string `yaml:"phone"`
	} `yaml:"host"`

	Meeting struct {
		PersonalMeetingID string `yaml:"personal_meeting_id"`
		Password          string `yaml:"password"`
	} `yaml:"meeting"`

	Email struct {
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"email"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

// Load reads the YAML config at path, falling back to defaults when the
// file does not exist. A missing file is not an error: the service runs
// with its built-in personal-room defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		// Support ${ENV_VAR} placeholders in YAML config.
		data = []byte(os.ExpandEnv(string(data)))
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()

	if cfg.Booking.MinStartHour >= cfg.Booking.MaxEndHour {
		return nil, fmt.Errorf("booking: min_start_hour %d must be below max_end_hour %d",
			cfg.Booking.MinStartHour, cfg.Booking.MaxEndHour)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 10000
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Asia/Kathmandu"
	}
	if c.Booking.MinStartHour == 0 {
		c.Booking.MinStartHour = 14
	}
	if c.Booking.MaxEndHour == 0 {
		c.Booking.MaxEndHour = 20
	}
	if c.Booking.DataFile == "" {
		c.Booking.DataFile = "bookings.json"
	}
	if c.Host.Name == "" {
		c.Host.Name = "Host"
	}
	if c.Meeting.PersonalMeetingID == "" {
		c.Meeting.PersonalMeetingID = "123456789"
	}
	if c.Meeting.Password == "" {
		c.Meeting.Password = "meeting123"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.From == "" {
		c.Email.From = c.Email.Username
	}
	if c.Backup.IntervalHours == 0 {
		c.Backup.IntervalHours = 24
	}
	if c.Backup.Path == "" {
		c.Backup.Path = "backups"
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
}

// EmailConfigured reports whether SMTP credentials are present. Without
// them notifications fall back to console logging.
func (c *Config) EmailConfigured() bool {
	return c.Email.Username != "" && c.Email.Password != "" && c.Email.SMTPHost != ""
}

// TelegramConfigured reports whether the host alert channel is set up.
func (c *Config) TelegramConfigured() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != 0
}

// OperatingHours renders the bookable window, e.g. "14:00 - 20:00".
func (c *Config) OperatingHours() string {
	return fmt.Sprintf("%d:00 - %d:00", c.Booking.MinStartHour, c.Booking.MaxEndHour)
}
