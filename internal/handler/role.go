package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/limoncello/reservation-api/internal/model"
	"github.com/limoncello/reservation-api/internal/repository"
)

// RoleHandler manages venue-scoped staff roles.
type RoleHandler struct {
	Roles *repository.RoleRepo
}

func NewRoleHandler(roles *repository.RoleRepo) *RoleHandler {
	if roles == nil {
		panic("nil repository passed to NewRoleHandler")
	}
	return &RoleHandler{Roles: roles}
}

type roleResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	VenueID     uint64 `json:"venue_id"`
}

// List returns all roles, optionally filtered by ?venue_id=.
func (h *RoleHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		roles []model.Role
		err   error
	)
	if v := c.QueryParam("venue_id"); v != "" {
		venueID, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil || venueID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue_id"})
		}
		roles, err = h.Roles.ListByVenue(ctx, venueID)
	} else {
		roles, err = h.Roles.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roleResp, 0, len(roles))
	for _, ro := range roles {
		out = append(out, roleResp{ID: ro.ID, Name: ro.Name, Description: ro.Description, VenueID: ro.VenueID})
	}
	return c.JSON(http.StatusOK, echo.Map{"roles": out})
}

type createRoleReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VenueID     uint64 `json:"venue_id"`
}

// Create adds a role for a venue.
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.VenueID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and venue_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	role := model.Role{Name: req.Name, Description: req.Description, VenueID: req.VenueID}
	if err := h.Roles.Create(ctx, &role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create role failed"})
	}
	return c.JSON(http.StatusCreated, roleResp{ID: role.ID, Name: role.Name, Description: role.Description, VenueID: role.VenueID})
}

type assignRoleReq struct {
	UserID uint64 `json:"user_id"`
	RoleID uint64 `json:"role_id"`
}

// Assign links a role to a user; re-assigning is a no-op.
func (h *RoleHandler) Assign(c echo.Context) error {
	var req assignRoleReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 || req.RoleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and role_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Roles.Assign(ctx, req.UserID, req.RoleID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign role failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
