package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"meetsched/internal/apperrors"
	"meetsched/internal/config"
	"meetsched/internal/export"
	"meetsched/internal/model"
	"meetsched/internal/service"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// Handler exposes the booking service over HTTP.
type Handler struct {
	cfg    *config.Config
	svc    *service.Service
	logger *zerolog.Logger
}

func NewHandler(cfg *config.Config, svc *service.Service, logger *zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, logger: logger}
}

type healthSystem struct {
	Mode           string `json:"mode"`
	Host           string `json:"host"`
	Timezone       string `json:"timezone"`
	OperatingHours string `json:"operatingHours"`
	EmailEnabled   bool   `json:"emailEnabled"`
	TotalBookings  int    `json:"totalBookings"`
}

type healthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	System  healthSystem `json:"system"`
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, healthResponse{
		Success: true,
		Message: "Meeting Booking System is running",
		System: healthSystem{
			Mode:           "Personal Meeting Room",
			Host:           h.cfg.Host.Name,
			Timezone:       h.cfg.Booking.Timezone,
			OperatingHours: h.cfg.OperatingHours(),
			EmailEnabled:   h.cfg.EmailConfigured(),
			TotalBookings:  len(h.svc.Bookings()),
		},
	})
}

type bookResponse struct {
	Success      bool          `json:"success"`
	Booking      model.Booking `json:"booking"`
	EmailSent    bool          `json:"emailSent"`
	HostNotified bool          `json:"hostNotified"`
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	conf, err := h.svc.BookMeeting(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookResponse{
		Success:      true,
		Booking:      conf.Booking,
		EmailSent:    conf.EmailSent,
		HostNotified: conf.HostNotified,
	})
}

type slotsResponse struct {
	Success bool     `json:"success"`
	Date    string   `json:"date"`
	Slots   []string `json:"slots"`
	Count   int      `json:"count"`
}

func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, apperrors.InvalidInput("date query parameter is required"))
		return
	}

	slots, err := h.svc.AvailableSlots(date)
	if err != nil {
		writeError(w, err)
		return
	}

	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, slotsResponse{
		Success: true,
		Date:    date,
		Slots:   slots,
		Count:   len(slots),
	})
}

type bookingsResponse struct {
	Success  bool            `json:"success"`
	Bookings []model.Booking `json:"bookings"`
	Count    int             `json:"count"`
}

func (h *Handler) ListBookings(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	bookings := h.svc.Bookings()
	writeJSON(w, http.StatusOK, bookingsResponse{
		Success:  true,
		Bookings: bookings,
		Count:    len(bookings),
	})
}

func (h *Handler) ExportBookings(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	workbook, err := export.Workbook(h.svc.Bookings())
	if err != nil {
		writeError(w, apperrors.Internal("could not build export", err))
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := workbook.Write(w); err != nil {
		h.logger.Error().Err(err).Msg("failed to stream export")
	}
}
