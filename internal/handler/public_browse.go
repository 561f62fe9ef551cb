// Public browse endpoints: unauthenticated club/court listings and the
// slot calendar the clients poll. Responses are sanitized — owner ids
// and notes of private reservations never leave the server here.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/repository"
	"github.com/iliyamo/court-reserve/internal/schedule"
)

// PublicHandler aggregates what the unauthenticated browse surface
// needs.
type PublicHandler struct {
	ClubRepo        *repository.ClubRepo
	CourtRepo       *repository.CourtRepo
	ReservationRepo *repository.ReservationRepo
}

// PublicClub is the safe subset of a club.
type PublicClub struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CourtView is the court shape shared by public browsing and the admin
// endpoints.
type CourtView struct {
	ID           uint64 `json:"id"`
	ClubID       uint64 `json:"club_id"`
	Name         string `json:"name"`
	Surface      string `json:"surface,omitempty"`
	BookableFrom string `json:"bookable_from"`
	BookableTo   string `json:"bookable_to"`
	Durations    []int  `json:"allowed_durations"`
}

func courtResponse(c *model.Court) CourtView {
	w := c.Window()
	return CourtView{
		ID:           c.ID,
		ClubID:       c.ClubID,
		Name:         c.Name,
		Surface:      c.Surface,
		BookableFrom: w.From.String(),
		BookableTo:   w.To.String(),
		Durations:    c.Durations,
	}
}

// slotView is one cell of the calendar grid.
type slotView struct {
	Time        string           `json:"time"`
	State       string           `json:"state"`
	Reservation *reservationView `json:"reservation,omitempty"`
}

// GetPublicClubs handles GET /v1/clubs.
func (h *PublicHandler) GetPublicClubs(c echo.Context) error {
	clubs, err := h.ClubRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicClub, 0, len(clubs))
	for _, club := range clubs {
		out = append(out, PublicClub{ID: club.ID, Name: club.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetClubCourts handles GET /v1/clubs/:id/courts.
func (h *PublicHandler) GetClubCourts(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.ClubRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "club not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	courts, err := h.CourtRepo.ListByClub(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]CourtView, 0, len(courts))
	for _, court := range courts {
		out = append(out, courtResponse(court))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetCourtSlots handles GET /v1/courts/:id/slots?date=YYYY-MM-DD. It
// renders the tri-state grid the calendar polls: every 30-minute slot
// of the court's operating window tagged free, booked or blocked.
// Private reservations appear as busy markers without owner details.
func (h *PublicHandler) GetCourtSlots(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	court, err := h.CourtRepo.GetCourt(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reservations, err := h.ReservationRepo.ListByCourtDate(ctx, id, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	entries := make([]schedule.Occupancy, 0, len(reservations))
	for _, r := range reservations {
		entries = append(entries, r)
	}
	// The calendar always shows at least the default range; slots the
	// court does not open appear as blocked rather than vanishing.
	window := court.Window()
	display := schedule.DefaultWindow()
	if window.From < display.From {
		display.From = window.From
	}
	if window.To > display.To {
		display.To = window.To
	}
	slots := make([]slotView, 0, len(schedule.Slots(display)))
	for _, t := range schedule.Slots(display) {
		s := schedule.Evaluate(window, entries, t)
		v := slotView{Time: s.Time.String(), State: string(s.State)}
		if s.State == schedule.SlotBooked {
			res := s.Entry.(*model.Reservation)
			view := redactedReservation(res)
			v.Reservation = &view
		}
		slots = append(slots, v)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"court_id": court.ID,
		"date":     date.Format("2006-01-02"),
		"slots":    slots,
	})
}
