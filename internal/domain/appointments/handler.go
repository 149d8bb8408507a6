package appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dentalx/clinic-api/internal/platform/auth"
	"github.com/dentalx/clinic-api/internal/platform/calendar"
	"github.com/dentalx/clinic-api/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleManager, auth.RoleDoctor, auth.RoleReceptionist))
	g.GET("/appointments", h.List)
	g.GET("/appointments/calendar", h.Calendar)
	g.GET("/appointments/day", h.Day)
	g.GET("/appointments/today", h.Today)
	g.GET("/appointments/upcoming", h.Upcoming)
	g.GET("/appointments/availability", h.Availability)
	g.GET("/appointments/stats", h.Stats)
	g.GET("/appointments/:id", h.Get)
	g.GET("/appointments/:id/history", h.History)
	g.POST("/appointments", h.Create)
	g.PUT("/appointments/:id", h.Update)
	g.PATCH("/appointments/:id/status", h.ChangeStatus)

	api.DELETE("/appointments/:id", h.Delete, auth.RequireRole(auth.RoleManager))
}

// conflictPayload is the 409 body, naming the bookings that hold the slot.
type conflictPayload struct {
	Message        string  `json:"message"`
	ConflictingIDs []int64 `json:"conflicting_ids"`
}

func mapServiceError(c echo.Context, err error) error {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, conflictPayload{
			Message:        err.Error(),
			ConflictingIDs: conflict.IDs,
		})
	case errors.Is(err, calendar.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, calendar.ErrBadFormat),
		errors.Is(err, calendar.ErrBadCalendarDate),
		errors.Is(err, calendar.ErrBadClock):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func (h *Handler) Create(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&a); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := ListFilter{
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
		Search: c.QueryParam("search"),
	}
	var err error
	if f.DoctorID, err = optionalID(c, "doctor_id"); err != nil {
		return err
	}
	if f.BranchID, err = optionalID(c, "branch_id"); err != nil {
		return err
	}
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&a); err != nil {
		return err
	}
	a.ID = id
	if err := h.svc.Update(c.Request().Context(), &a); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ChangeStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var change StatusChange
	if err := c.Bind(&change); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&change); err != nil {
		return err
	}
	changedBy, _ := c.Get("user_id").(string)
	a, err := h.svc.ChangeStatus(c.Request().Context(), id, change, changedBy)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidTransition) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) History(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.History(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Calendar(c echo.Context) error {
	doctorID, err := optionalID(c, "doctor_id")
	if err != nil {
		return err
	}
	branchID, err := optionalID(c, "branch_id")
	if err != nil {
		return err
	}
	view, err := h.svc.CalendarView(c.Request().Context(),
		c.QueryParam("start"), c.QueryParam("end"), doctorID, branchID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Day(c echo.Context) error {
	doctorID, err := optionalID(c, "doctor_id")
	if err != nil {
		return err
	}
	branchID, err := optionalID(c, "branch_id")
	if err != nil {
		return err
	}
	view, err := h.svc.DayView(c.Request().Context(), c.QueryParam("date"), doctorID, branchID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Today(c echo.Context) error {
	doctorID, err := optionalID(c, "doctor_id")
	if err != nil {
		return err
	}
	branchID, err := optionalID(c, "branch_id")
	if err != nil {
		return err
	}
	items, err := h.svc.Today(c.Request().Context(), doctorID, branchID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Upcoming(c echo.Context) error {
	doctorID, err := optionalID(c, "doctor_id")
	if err != nil {
		return err
	}
	branchID, err := optionalID(c, "branch_id")
	if err != nil {
		return err
	}
	items, err := h.svc.Upcoming(c.Request().Context(), doctorID, branchID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Availability(c echo.Context) error {
	doctorID, err := optionalID(c, "doctor_id")
	if err != nil {
		return err
	}
	duration := 0
	if d := c.QueryParam("duration"); d != "" {
		if duration, err = strconv.Atoi(d); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid duration")
		}
	}
	avail, err := h.svc.Availability(c.Request().Context(), doctorID,
		c.QueryParam("date"), c.QueryParam("time"), duration)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, avail)
}

func (h *Handler) Stats(c echo.Context) error {
	st, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

func optionalID(c echo.Context, name string) (int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
