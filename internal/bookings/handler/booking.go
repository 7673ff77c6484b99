package handler

import (
	"net/http"

	"slotlink/internal/bookings/service"
	"slotlink/pkg/calendar"
	"slotlink/pkg/civil"
	httputil "slotlink/pkg/http"
	"slotlink/pkg/logger"
	"slotlink/pkg/model"
	"slotlink/pkg/slots"

	"github.com/julienschmidt/httprouter"
)

const basePath = "/api/v1/bookings"

type FreeSlotsResponse struct {
	Date  civil.Date   `json:"date"`
	Slots []slots.Slot `json:"slots"`
}

type AvailableDatesResponse struct {
	AvailableDates []civil.Date `json:"availableDates"`
}

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET(basePath, h.Availability)
	router.POST(basePath, h.Claim)
	router.GET(basePath+"/calendar", h.Calendar)
}

// Availability returns the free slots of a date, or the upcoming dates that
// have a window when no date is given.
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	linkID := query.Get("linkId")

	if date := query.Get("date"); date != "" {
		free, err := h.service.FreeSlots(r.Context(), linkID, date)
		if err != nil {
			if writeErr := httputil.WriteError(w, err); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		d, _ := civil.ParseDate(date)
		if err := httputil.WriteSuccess(w, FreeSlotsResponse{Date: d, Slots: free}); err != nil {
			h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
		}
		return
	}

	dates, err := h.service.AvailableDates(r.Context(), linkID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if err := httputil.WriteSuccess(w, AvailableDatesResponse{AvailableDates: dates}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Claim(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ClaimRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Claim", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.ClaimSlot(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Claim", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Claim", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	link, bookings, err := h.service.Upcoming(r.Context(), r.URL.Query().Get("linkId"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Calendar", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	feed := calendar.Feed(link, bookings)
	w.Header().Set("Content-Disposition", `attachment; filename="`+link.LinkID+`.ics"`)
	if err := httputil.WriteRaw(w, http.StatusOK, httputil.ContentTypeCalendar, []byte(feed)); err != nil {
		h.log.Error("failed to write calendar response", "handler", "Calendar", "operation", "WriteRaw", "error", err)
	}
}
