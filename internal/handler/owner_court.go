package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/schedule"
)

// courtBody is the JSON payload for court create/update. The operating
// window is optional as a pair: both bounds set or both empty (empty
// means the system default applies).
type courtBody struct {
	Name         string `json:"name"`
	Surface      string `json:"surface"`
	BookableFrom string `json:"bookable_from"` // "HH:MM", optional
	BookableTo   string `json:"bookable_to"`   // "HH:MM", optional
	Durations    []int  `json:"allowed_durations"`
}

// courtFromBody validates the payload and builds a court. It enforces
// the registry invariants: a window, when given, must be a non-empty
// range (from < to) and every allowed duration must be positive.
func courtFromBody(body courtBody) (*model.Court, string) {
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return nil, "name is required"
	}
	court := &model.Court{
		Name:    name,
		Surface: strings.TrimSpace(body.Surface),
	}
	hasFrom := strings.TrimSpace(body.BookableFrom) != ""
	hasTo := strings.TrimSpace(body.BookableTo) != ""
	if hasFrom != hasTo {
		return nil, "bookable_from and bookable_to must be set together"
	}
	if hasFrom {
		from, err := schedule.ParseTimeOfDay(body.BookableFrom)
		if err != nil {
			return nil, "invalid bookable_from"
		}
		to, err := schedule.ParseTimeOfDay(body.BookableTo)
		if err != nil {
			return nil, "invalid bookable_to"
		}
		if from >= to {
			return nil, "bookable_from must be before bookable_to"
		}
		court.BookableFrom = &from
		court.BookableTo = &to
	}
	if len(body.Durations) == 0 {
		return nil, "allowed_durations is required"
	}
	for _, d := range body.Durations {
		if d <= 0 {
			return nil, "durations must be positive"
		}
	}
	court.Durations = body.Durations
	return court, ""
}

// CreateCourt handles POST /v1/admin/clubs/:id/courts.
func (h *OwnerHandler) CreateCourt(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	clubID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid club id"})
	}
	// only the club's administrator may add courts to it
	if _, err := h.ClubRepo.GetByIDAndOwner(c.Request().Context(), clubID, ownerID); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "club not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body courtBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	court, msg := courtFromBody(body)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	court.ClubID = clubID
	if err := h.CourtRepo.Create(c.Request().Context(), court); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "court name already exists in this club"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create court"})
	}
	return c.JSON(http.StatusCreated, courtResponse(court))
}

// UpdateCourt handles PATCH /v1/admin/courts/:id. The full mutable
// field set is replaced; bookings already made are untouched even when
// the window shrinks (the invariant binds at booking time).
func (h *OwnerHandler) UpdateCourt(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	var body courtBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	court, msg := courtFromBody(body)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	court.ID = courtID
	if err := h.CourtRepo.Update(c.Request().Context(), ownerID, court); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.CourtRepo.GetCourt(c.Request().Context(), courtID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, courtResponse(updated))
}

// DeleteCourt handles DELETE /v1/admin/courts/:id by deactivating the
// court: existing reservations stay readable, new bookings are refused.
func (h *OwnerHandler) DeleteCourt(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	if err := h.CourtRepo.Deactivate(c.Request().Context(), ownerID, courtID); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
