package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// NewRouter wires the API routes behind logging and panic recovery.
func NewRouter(h *Handler, logger *zerolog.Logger) http.Handler {
	router := httprouter.New()

	router.GET("/api/health", h.Health)
	router.POST("/api/book", h.Book)
	router.GET("/api/available-slots", h.AvailableSlots)
	router.GET("/api/bookings", h.ListBookings)
	router.GET("/api/bookings/export", h.ExportBookings)

	return recovery(logger, requestLogging(logger, router))
}
