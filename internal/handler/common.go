package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reserve/internal/booking"
)

// getUserID extracts the authenticated user's id from the Echo context.
// JWTAuth stores the raw claim value, so every plausible numeric
// representation is accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getActor builds the booking.Actor for the current request from the
// JWT claims injected by middleware. Every core call receives the actor
// explicitly; handlers never let the core read ambient session state.
func getActor(c echo.Context) (booking.Actor, error) {
	id, err := getUserID(c)
	if err != nil {
		return booking.Actor{}, err
	}
	role, _ := c.Get("role").(string)
	return booking.Actor{ID: id, Role: role}, nil
}

// parseDate parses the wire date format (YYYY-MM-DD) into a UTC day.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// bookingErrorResponse maps the booking error taxonomy onto HTTP
// responses with a stable machine-readable reason, so "already booked"
// and "not open yet" are never conflated downstream.
func bookingErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"status": "rejected", "reason": "not_found"})
	case errors.Is(err, booking.ErrOutOfWindow):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"status": "rejected", "reason": "out_of_window"})
	case errors.Is(err, booking.ErrInvalidDuration):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"status": "rejected", "reason": "invalid_duration"})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"status": "rejected", "reason": "forbidden"})
	case errors.Is(err, booking.ErrSlotTaken):
		return c.JSON(http.StatusConflict, echo.Map{"status": "rejected", "reason": "slot_taken"})
	case errors.Is(err, booking.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "rejected", "reason": "validation_error"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
