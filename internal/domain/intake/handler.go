package intake

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicflow/intake/internal/platform/auth"
	"github.com/clinicflow/intake/pkg/pagination"
)

// Priorities accepted over HTTP. The core itself takes any integer.
const (
	MinPriority = 1
	MaxPriority = DefaultPriority
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	desk := api.Group("", auth.RequireRole(auth.RoleStaff))
	desk.GET("/patients", h.ListPatients)
	desk.POST("/patients", h.CreatePatient)
	desk.GET("/patients/search", h.SearchPatients)
	desk.GET("/patients/:id", h.GetPatient)

	desk.GET("/queue", h.GetQueue)
	desk.POST("/queue/add", h.AddToQueue)
	desk.POST("/queue/next", h.NextPatient)

	desk.POST("/scheduler/assign", h.Assign)
	desk.GET("/dashboard/stats", h.Stats)

	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.DELETE("/patients/:id", h.DeletePatient)
}

// -- Patients --

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if p.Priority != 0 && (p.Priority < MinPriority || p.Priority > MaxPriority) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("priority must be between %d and %d", MinPriority, MaxPriority))
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrDuplicatePatient) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset).WithLinks(c.Request().URL.Path))
}

func (h *Handler) SearchPatients(c echo.Context) error {
	items := h.svc.SearchPatients(c.Request().Context(), c.QueryParam("q"))
	return c.JSON(http.StatusOK, map[string]interface{}{"patients": items})
}

// -- Queue --

type enqueueRequest struct {
	PatientID   string `json:"patient_id"`
	IsEmergency bool   `json:"is_emergency"`
	Priority    int    `json:"priority"`
}

func (h *Handler) AddToQueue(c echo.Context) error {
	var req enqueueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}
	if req.IsEmergency && req.Priority != 0 && (req.Priority < MinPriority || req.Priority > MaxPriority) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("priority must be between %d and %d", MinPriority, MaxPriority))
	}
	p, err := h.svc.EnqueuePatient(c.Request().Context(), req.PatientID, req.IsEmergency, req.Priority)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	queue := QueueRoutine
	if req.IsEmergency {
		queue = QueueUrgent
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "patient added to queue",
		"patient":    p,
		"queue_type": queue,
	})
}

func (h *Handler) GetQueue(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.QueueStatus(c.Request().Context()))
}

func (h *Handler) NextPatient(c echo.Context) error {
	p, kind, err := h.svc.Next(c.Request().Context())
	if errors.Is(err, ErrEmptyCollection) {
		return c.JSON(http.StatusOK, map[string]string{"message": "queue is empty"})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"patient":    p,
		"queue_type": kind,
	})
}

// -- Scheduler --

func (h *Handler) Assign(c echo.Context) error {
	result, err := h.svc.Assign(c.Request().Context())
	if err != nil {
		if errors.Is(err, ErrInvalidAssignmentInput) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "patients assigned successfully",
		"assignments": result.ByDoctor,
		"workload":    result.Workload,
		"order":       result.Order,
		"total":       result.Total(),
	})
}

func (h *Handler) Stats(c echo.Context) error {
	st, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stats": st})
}
