package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meetsched/internal/api"
	"meetsched/internal/backup"
	"meetsched/internal/config"
	"meetsched/internal/metrics"
	"meetsched/internal/notify"
	"meetsched/internal/service"
	"meetsched/internal/store"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	// Optional .env for local development; the YAML config reads the
	// environment through ${VAR} placeholders.
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("MEETSCHED_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger := store.OpenFile(cfg.Booking.DataFile, &logger)

	attendee, host := buildNotifiers(cfg, &logger)
	svc := service.New(cfg, ledger, attendee, host, &logger)

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	backupSvc := backup.NewService(cfg.Booking.DataFile, backup.Config{
		Enabled:       cfg.Backup.Enabled,
		IntervalHours: cfg.Backup.IntervalHours,
		Path:          cfg.Backup.Path,
		RetentionDays: cfg.Backup.RetentionDays,
	}, &logger)
	go backupSvc.Start(ctx)

	handler := api.NewHandler(cfg, svc, &logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(handler, &logger),
	}

	go func() {
		logger.Info().
			Int("port", cfg.Server.Port).
			Str("host", cfg.Host.Name).
			Str("timezone", cfg.Booking.Timezone).
			Str("operating_hours", cfg.OperatingHours()).
			Bool("email_enabled", cfg.EmailConfigured()).
			Int("bookings", len(ledger.All())).
			Msg("meeting booking system started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}
	logger.Info().Msg("server shut down gracefully")
}

// buildNotifiers picks the outbound channels. Without SMTP credentials
// the attendee channel is disabled and confirmations are reported as not
// sent; host alerts fall back to the console.
func buildNotifiers(cfg *config.Config, logger *zerolog.Logger) (attendee, host notify.Notifier) {
	var hostChannels notify.Multi

	if cfg.EmailConfigured() {
		email := notify.NewEmail(notify.EmailConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		}, logger)
		attendee = email
		hostChannels = append(hostChannels, email)
	} else {
		logger.Warn().Msg("email credentials not configured, confirmations will not be sent")
	}

	if cfg.TelegramConfigured() {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Error().Err(err).Msg("telegram channel unavailable")
		} else {
			hostChannels = append(hostChannels, tg)
		}
	}

	if len(hostChannels) == 0 {
		return attendee, notify.NewConsole(logger)
	}
	return attendee, hostChannels
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Int("port", port).Msg("metrics server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
