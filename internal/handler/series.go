package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/queue"
	"github.com/iliyamo/court-reserve/internal/schedule"
	"github.com/iliyamo/court-reserve/internal/service"
)

type createSeriesReq struct {
	CourtID         uint64  `json:"court_id"`
	Name            string  `json:"name"`
	StartDate       string  `json:"start_date"` // YYYY-MM-DD
	Time            string  `json:"time"`       // HH:MM
	DurationMinutes int     `json:"duration_minutes"`
	Visibility      string  `json:"visibility"`
	Weeks           int     `json:"weeks"`
	Notes           *string `json:"notes"`
	Color           *string `json:"color"`
}

// occurrenceView is one week's outcome in the series response.
type occurrenceView struct {
	Index       int              `json:"index"`
	Date        string           `json:"date"`
	Status      string           `json:"status"`
	Reservation *reservationView `json:"reservation,omitempty"`
}

func seriesResultResponse(result *booking.SeriesResult) echo.Map {
	occs := make([]occurrenceView, 0, len(result.Occurrences))
	for _, o := range result.Occurrences {
		v := occurrenceView{
			Index:  o.Index,
			Date:   o.Date.Format("2006-01-02"),
			Status: string(o.Status),
		}
		if o.Reservation != nil {
			rv := fullReservation(o.Reservation)
			v.Reservation = &rv
		}
		occs = append(occs, v)
	}
	return echo.Map{
		"series_id":     result.Series.PublicID.String(),
		"name":          result.Series.Name,
		"created_count": result.CreatedCount,
		"failed_count":  result.FailedCount,
		"occurrences":   occs,
	}
}

// CreateSeries handles POST /v1/series. A weekly recurring request is
// expanded into individual reservations; the response reports every
// occurrence so partially booked series are visible to the client.
func (h *BookingHandler) CreateSeries(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createSeriesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	startDate, err := parseDate(req.StartDate)
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

	result, err := h.Ledger.CreateSeries(c.Request().Context(), actor, booking.SeriesRequest{
		CourtID:     req.CourtID,
		Name:        req.Name,
		StartDate:   startDate,
		Start:       start,
		DurationMin: req.DurationMinutes,
		Visibility:  visibility,
		Weeks:       req.Weeks,
		Notes:       req.Notes,
		Color:       req.Color,
	})
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	go publishSeriesCreated(result)

	status := http.StatusCreated
	if result.CreatedCount == 0 {
		// nothing was booked; the series row still exists for inspection
		status = http.StatusConflict
	}
	return c.JSON(status, seriesResultResponse(result))
}

// GetSeries handles GET /v1/series/:id where :id is the public uuid. It
// returns the series metadata plus the reservations that still belong
// to it, in occurrence order.
func (h *BookingHandler) GetSeries(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	publicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid series id"})
	}
	s, err := h.SeriesRepo.GetByPublicID(c.Request().Context(), publicID)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	items, err := h.SeriesRepo.ListReservations(c.Request().Context(), s.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	out := make([]reservationView, 0, len(items))
	for _, r := range items {
		out = append(out, viewFor(r, actor))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"series_id":        s.PublicID.String(),
		"name":             s.Name,
		"court_id":         s.CourtID,
		"start_date":       s.StartDate.Format("2006-01-02"),
		"time":             s.StartMin.String(),
		"duration_minutes": s.DurationMin,
		"weeks":            s.Weeks,
		"reservations":     out,
	})
}

func publishSeriesCreated(result *booking.SeriesResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s := result.Series
	_ = queue_publisher.PublishReservationEvent(ctx, queue.ReservationEvent{
		Kind:       queue.EventSeriesCreated,
		CourtID:    s.CourtID,
		OwnerID:    s.OwnerID,
		Date:       s.StartDate.Format("2006-01-02"),
		Start:      s.StartMin.String(),
		SeriesID:   s.PublicID.String(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
