package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/repository"
)

// OwnerHandler groups the repositories behind the ADMIN-only club and
// court management endpoints. Administrative mutation sits outside the
// booking core, but it is the place where the resource invariants
// (non-empty operating window, positive durations) are enforced on the
// way in.
type OwnerHandler struct {
	ClubRepo  *repository.ClubRepo
	CourtRepo *repository.CourtRepo
}

// NewOwnerHandler constructs an OwnerHandler; both repositories must be
// non-nil.
func NewOwnerHandler(clubs *repository.ClubRepo, courts *repository.CourtRepo) *OwnerHandler {
	if clubs == nil || courts == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{ClubRepo: clubs, CourtRepo: courts}
}

// CreateClub handles POST /v1/admin/clubs.
func (h *OwnerHandler) CreateClub(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	club := &model.Club{OwnerID: ownerID, Name: name}
	if err := h.ClubRepo.Create(c.Request().Context(), club); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "club name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create club"})
	}
	return c.JSON(http.StatusCreated, club)
}

// UpdateClub handles PATCH /v1/admin/clubs/:id and renames the club.
func (h *OwnerHandler) UpdateClub(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.ClubRepo.UpdateName(c.Request().Context(), id, ownerID, name); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "club not found"})
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "club name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.ClubRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteClub handles DELETE /v1/admin/clubs/:id. Courts and their
// reservations cascade away with the club.
func (h *OwnerHandler) DeleteClub(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ClubRepo.Delete(c.Request().Context(), id, ownerID); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "club not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListClubs handles GET /v1/admin/clubs and returns the caller's clubs.
func (h *OwnerHandler) ListClubs(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.ClubRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
