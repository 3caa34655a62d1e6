package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"meetsched/internal/apperrors"
	"meetsched/internal/config"
	"meetsched/internal/metrics"
	"meetsched/internal/model"
	"meetsched/internal/notify"
	"meetsched/internal/schedule"
	"meetsched/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Minutes is a duration-in-minutes field that accepts both a JSON number
// and a quoted number on the wire.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("duration must be a number of minutes")
	}
	*m = Minutes(v)
	return nil
}

// Request is an inbound booking request.
type Request struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone"`
	Date     string  `json:"date" validate:"required"`
	Time     string  `json:"time" validate:"required"`
	Duration Minutes `json:"duration" validate:"required"`
	Purpose  string  `json:"purpose" validate:"required"`
}

func (r *Request) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Purpose = strings.TrimSpace(r.Purpose)
}

// Confirmation is the result of an accepted booking. The notification
// flags tell the caller whether each outbound message was delivered.
type Confirmation struct {
	Booking      model.Booking
	EmailSent    bool
	HostNotified bool
}

var allowedDurations = map[int]bool{30: true, 60: true, 90: true}

// Service orchestrates validation, conflict detection, persistence and
// notification for booking requests.
type Service struct {
	cfg      *config.Config
	store    store.Store
	window   *schedule.Window
	detector *schedule.Detector
	slots    *schedule.Enumerator
	attendee notify.Notifier
	host     notify.Notifier
	validate *validator.Validate
	logger   *zerolog.Logger
	rng      *rand.Rand
	now      func() time.Time

	// mu serializes the conflict-check-then-append path so two
	// concurrent requests cannot both claim the same slot.
	mu sync.Mutex
}

// New builds the service. attendee may be nil when no mail transport is
// configured; confirmations are then reported as not sent.
func New(cfg *config.Config, st store.Store, attendee, host notify.Notifier, logger *zerolog.Logger) *Service {
	rules := schedule.Rules{
		MinStartHour: cfg.Booking.MinStartHour,
		MaxEndHour:   cfg.Booking.MaxEndHour,
	}
	detector := schedule.NewDetector(st)

	return &Service{
		cfg:      cfg,
		store:    st,
		window:   schedule.NewWindow(rules),
		detector: detector,
		slots:    schedule.NewEnumerator(rules, detector),
		attendee: attendee,
		host:     host,
		validate: validator.New(),
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// BookMeeting runs the booking gates in order; the first failure wins
// and its reason reaches the caller verbatim. Notification failures are
// reported but never roll anything back.
func (s *Service) BookMeeting(ctx context.Context, req Request) (*Confirmation, error) {
	req.normalize()

	if err := s.validate.Struct(&req); err != nil {
		appErr := apperrors.Validation(fieldMessage(err))
		metrics.IncBookingRejected(appErr.Code)
		return nil, appErr
	}

	if err := s.window.Check(req.Date, req.Time); err != nil {
		metrics.IncBookingRejected(apperrors.CodeValidation)
		return nil, apperrors.Validation(err.Error())
	}

	if !allowedDurations[int(req.Duration)] {
		metrics.IncBookingRejected(apperrors.CodeValidation)
		return nil, apperrors.Validation("duration must be 30, 60 or 90 minutes")
	}

	booking, err := s.reserve(ctx, req)
	if err != nil {
		metrics.IncBookingRejected(apperrors.AsAppError(err).Code)
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("date", booking.Date).
		Str("time", booking.Time).
		Int("duration", booking.Duration).
		Msg("booking created")

	return &Confirmation{
		Booking:      booking,
		EmailSent:    s.notifyAttendee(ctx, booking),
		HostNotified: s.notifyHost(ctx, booking),
	}, nil
}

// reserve is the critical section: the conflict check and the append
// must not interleave with another request for the same slot.
func (s *Service) reserve(ctx context.Context, req Request) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	free, err := s.detector.IsAvailable(req.Date, req.Time, int(req.Duration))
	if err != nil {
		return model.Booking{}, apperrors.Validation("invalid date or time")
	}
	if !free {
		return model.Booking{}, apperrors.Conflict("this time slot is not available, please choose another")
	}

	id := s.newBookingID()
	booking := model.Booking{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Purpose:       req.Purpose,
		Date:          req.Date,
		Time:          req.Time,
		Duration:      int(req.Duration),
		Status:        model.StatusScheduled,
		Timezone:      s.cfg.Booking.Timezone,
		JoinURL:       fmt.Sprintf("https://zoom.us/j/%s?pwd=%s", s.cfg.Meeting.PersonalMeetingID, s.cfg.Meeting.Password),
		Password:      s.cfg.Meeting.Password,
		ZoomMeetingID: id,
		CreatedAt:     s.now().UTC().Format(time.RFC3339),
	}

	if err := s.store.Append(ctx, booking); err != nil {
		return model.Booking{}, apperrors.Internal("could not store the booking", err)
	}

	return booking, nil
}

// newBookingID draws random 9-digit ids until one does not collide with
// an existing booking. Caller holds s.mu.
func (s *Service) newBookingID() string {
	existing := make(map[string]bool)
	for _, b := range s.store.All() {
		existing[b.ID] = true
	}

	for {
		id := strconv.Itoa(100000000 + s.rng.Intn(900000000))
		if !existing[id] {
			return id
		}
	}
}

func (s *Service) notifyAttendee(ctx context.Context, b model.Booking) bool {
	if s.attendee == nil {
		s.logger.Debug().Str("booking_id", b.ID).Msg("mail transport disabled, skipping confirmation")
		return false
	}

	body, err := notify.RenderConfirmation(b, s.cfg.Host.Name)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("render confirmation failed")
		return false
	}

	err = s.attendee.Send(ctx, b.Email, notify.ConfirmationSubject(b), body)
	metrics.IncNotificationSent("attendee", err == nil)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("confirmation not delivered")
		return false
	}
	return true
}

func (s *Service) notifyHost(ctx context.Context, b model.Booking) bool {
	if s.host == nil {
		return false
	}

	body, err := notify.RenderHostAlert(b)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("render host alert failed")
		return false
	}

	err = s.host.Send(ctx, s.cfg.Host.Email, notify.HostAlertSubject(b), body)
	metrics.IncNotificationSent("host", err == nil)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("host alert not delivered")
		return false
	}
	return true
}

// AvailableSlots lists the free 30-minute grid slots for a date.
func (s *Service) AvailableSlots(date string) ([]string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}

	slots, err := s.slots.Available(date)
	if err != nil {
		return nil, apperrors.Internal("could not enumerate slots", err)
	}
	return slots, nil
}

// Bookings returns the full ledger in insertion order.
func (s *Service) Bookings() []model.Booking {
	return s.store.All()
}

// fieldMessage maps the first validator failure to its user-facing
// reason.
func fieldMessage(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return "invalid request"
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	if fe.Tag() == "email" {
		return "email address is not valid"
	}
	return field + " is required"
}
