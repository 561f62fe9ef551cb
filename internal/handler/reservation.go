package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/queue"
	"github.com/iliyamo/court-reserve/internal/repository"
	"github.com/iliyamo/court-reserve/internal/schedule"
	"github.com/iliyamo/court-reserve/internal/service"
)

// BookingHandler exposes the booking ledger over HTTP. All methods
// assume JWT authentication ran; the actor is rebuilt from the request
// context and passed explicitly into the core.
type BookingHandler struct {
	Ledger          *booking.Ledger
	ReservationRepo *repository.ReservationRepo
	SeriesRepo      *repository.SeriesRepo
}

// NewBookingHandler constructs a BookingHandler; the ledger and the
// reservation repo must be non-nil.
func NewBookingHandler(ledger *booking.Ledger, reservations *repository.ReservationRepo, series *repository.SeriesRepo) *BookingHandler {
	if ledger == nil || reservations == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Ledger: ledger, ReservationRepo: reservations, SeriesRepo: series}
}

// reservationView is the wire shape of a reservation. Owner, notes and
// color are omitted on redacted (private, not-yours) views.
type reservationView struct {
	ID         uint64  `json:"id"`
	CourtID    uint64  `json:"court_id"`
	Date       string  `json:"date"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Visibility string  `json:"visibility"`
	OwnerID    uint64  `json:"owner_id,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Color      *string `json:"color,omitempty"`
	SeriesID   *uint64 `json:"series_id,omitempty"`
	Occurrence *int    `json:"occurrence,omitempty"`
}

// fullReservation renders every field; for owners, admins and public
// bookings.
func fullReservation(r *model.Reservation) reservationView {
	return reservationView{
		ID:         r.ID,
		CourtID:    r.CourtID,
		Date:       r.DateString(),
		Start:      r.StartMin.String(),
		End:        r.EndMin.String(),
		Visibility: string(r.Visibility),
		OwnerID:    r.OwnerID,
		Notes:      r.Notes,
		Color:      r.Color,
		SeriesID:   r.SeriesID,
		Occurrence: r.OccurrenceIdx,
	}
}

// redactedReservation hides who holds a private booking while still
// marking the range as taken. Public bookings keep their display
// fields.
func redactedReservation(r *model.Reservation) reservationView {
	if r.Visibility == model.VisibilityPublic {
		return fullReservation(r)
	}
	return reservationView{
		ID:         r.ID,
		CourtID:    r.CourtID,
		Date:       r.DateString(),
		Start:      r.StartMin.String(),
		End:        r.EndMin.String(),
		Visibility: string(r.Visibility),
	}
}

// viewFor picks the full or redacted rendering depending on who is
// looking.
func viewFor(r *model.Reservation, actor booking.Actor) reservationView {
	if r.OwnerID == actor.ID || actor.IsAdmin() {
		return fullReservation(r)
	}
	return redactedReservation(r)
}

type createReservationReq struct {
	CourtID         uint64  `json:"court_id"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Time            string  `json:"time"` // HH:MM
	DurationMinutes int     `json:"duration_minutes"`
	Visibility      string  `json:"visibility"`
	Notes           *string `json:"notes"`
	Color           *string `json:"color"`
}

// CreateReservation handles POST /v1/reservations. The ledger enforces
// the constraint order; this handler only translates the wire format
// and publishes the created event after success.
func (h *BookingHandler) CreateReservation(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "rejected", "reason": "validation_error"})
	}
	start, err := schedule.ParseTimeOfDay(req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "rejected", "reason": "validation_error"})
	}
	visibility := model.Visibility(req.Visibility)
	if req.Visibility == "" {
		visibility = model.VisibilityPrivate
	}

	res, err := h.Ledger.CreateReservation(c.Request().Context(), actor, booking.CreateRequest{
		CourtID:     req.CourtID,
		Date:        date,
		Start:       start,
		DurationMin: req.DurationMinutes,
		Visibility:  visibility,
		Notes:       req.Notes,
		Color:       req.Color,
	})
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	go publishCreated(res)

	return c.JSON(http.StatusCreated, echo.Map{
		"status":      "created",
		"reservation": fullReservation(res),
	})
}

// CancelReservation handles DELETE /v1/reservations/:id. Cancelling an
// already-cancelled reservation yields 404, never a second side effect.
func (h *BookingHandler) CancelReservation(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Ledger.CancelReservation(c.Request().Context(), actor, id); err != nil {
		return bookingErrorResponse(c, err)
	}
	go publishCancelled(id, actor.ID)
	return c.NoContent(http.StatusNoContent)
}

// GetReservation handles GET /v1/reservations/:id, redacting private
// bookings that belong to somebody else.
func (h *BookingHandler) GetReservation(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.ReservationRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": viewFor(res, actor)})
}

// ListCourtReservations handles GET /v1/courts/:id/reservations?date=.
// All reservations of the day are returned; private ones not owned by
// the caller are redacted.
func (h *BookingHandler) ListCourtReservations(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || courtID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	items, err := h.Ledger.ListReservations(c.Request().Context(), courtID, date)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	out := make([]reservationView, 0, len(items))
	for _, r := range items {
		out = append(out, viewFor(r, actor))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListMyReservations handles GET /v1/my-reservations.
func (h *BookingHandler) ListMyReservations(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.ReservationRepo.ListByOwner(c.Request().Context(), actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	out := make([]reservationView, 0, len(items))
	for _, r := range items {
		out = append(out, fullReservation(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// publishCreated emits the reservation.created event. Publish failures
// are logged inside the publisher and never surface to the client.
func publishCreated(r *model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishReservationEvent(ctx, queue.ReservationEvent{
		Kind:          queue.EventReservationCreated,
		ReservationID: r.ID,
		CourtID:       r.CourtID,
		OwnerID:       r.OwnerID,
		Date:          r.DateString(),
		Start:         r.StartMin.String(),
		End:           r.EndMin.String(),
		Visibility:    string(r.Visibility),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

func publishCancelled(reservationID, actorID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishReservationEvent(ctx, queue.ReservationEvent{
		Kind:          queue.EventReservationCancelled,
		ReservationID: reservationID,
		OwnerID:       actorID,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}
