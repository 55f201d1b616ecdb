package queue

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/filad/filad/internal/platform/auth"
	"github.com/filad/filad/pkg/pagination"
)

// PhysicianDirectory resolves the authenticated user to their physician
// profile. It reports ErrProfileNotFound when the user has none.
type PhysicianDirectory interface {
	PhysicianIDForUser(ctx context.Context, userID string) (uuid.UUID, error)
}

type Handler struct {
	svc       *Service
	directory PhysicianDirectory
}

func NewHandler(svc *Service, directory PhysicianDirectory) *Handler {
	return &Handler{svc: svc, directory: directory}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints – receptionist, physician
	readGroup := api.Group("", auth.RequireRole(auth.RoleReceptionist, auth.RolePhysician))
	readGroup.GET("/queue/waiting", h.ListWaiting)
	readGroup.GET("/queue/:id", h.GetEntry)
	readGroup.GET("/queue/physician/:id", h.ListPhysicianQueue)
	readGroup.POST("/queue/:id/cancel", h.CancelEntry)

	// Reception desk endpoints
	deskGroup := api.Group("", auth.RequireRole(auth.RoleReceptionist))
	deskGroup.POST("/queue", h.Enqueue)
	deskGroup.POST("/queue/:id/call", h.CallEntry)

	// Consultation room endpoints
	roomGroup := api.Group("", auth.RequireRole(auth.RolePhysician))
	roomGroup.POST("/queue/:id/finalize", h.FinalizeEntry)
	roomGroup.PUT("/queue/:id/clinical-data", h.RecordClinicalData)
	roomGroup.GET("/queue/poll", h.Poll)
}

type enqueueRequest struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PhysicianID uuid.UUID `json:"physician_id"`
	Notes       string    `json:"notes"`
}

func (h *Handler) Enqueue(c echo.Context) error {
	var req enqueueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.Enqueue(c.Request().Context(), req.PatientID, req.PhysicianID, req.Notes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) GetEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) ListWaiting(c echo.Context) error {
	pg := pagination.FromContext(c)

	var physicianID *uuid.UUID
	if raw := c.QueryParam("physician_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid physician_id")
		}
		physicianID = &pid
	}

	entries, total, err := h.svc.ListWaiting(c.Request().Context(), physicianID, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListPhysicianQueue(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var exclude *uuid.UUID
	if raw := c.QueryParam("exclude"); raw != "" {
		ex, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid exclude")
		}
		exclude = &ex
	}

	entries, err := h.svc.ListPhysicianQueue(c.Request().Context(), id, exclude)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) CallEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Call(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) FinalizeEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Finalize(c.Request().Context(), id)
	if errors.Is(err, ErrAlreadyFinalized) {
		// Repeated finalize is a no-op, report the settled entry.
		return c.JSON(http.StatusOK, map[string]interface{}{
			"notice": "entry already finalized",
			"entry":  e,
		})
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) CancelEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) RecordClinicalData(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	physicianID, err := h.physicianOf(c)
	if err != nil {
		return httpError(err)
	}

	var data ClinicalData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.RecordClinicalData(c.Request().Context(), id, physicianID, data)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) Poll(c echo.Context) error {
	physicianID, err := h.physicianOf(c)
	if err != nil {
		return httpError(err)
	}
	result, err := h.svc.PollStatus(c.Request().Context(), physicianID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// physicianOf resolves the authenticated user's physician profile.
func (h *Handler) physicianOf(c echo.Context) (uuid.UUID, error) {
	userID := auth.UserIDFromContext(c.Request().Context())
	if userID == "" {
		return uuid.Nil, ErrProfileNotFound
	}
	return h.directory.PhysicianIDForUser(c.Request().Context(), userID)
}

// httpError maps domain errors onto HTTP status codes.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "entry not found")
	case errors.Is(err, ErrInvalidReference), errors.Is(err, ErrInvalidExam):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConcurrentModification):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrNotAssigned):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
