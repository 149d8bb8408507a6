package reports

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalx/clinic-api/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the report endpoints. Reports are read-heavy and
// change slowly, so the caller passes caching middleware (ETag headers,
// response cache) to layer over them.
func (h *Handler) RegisterRoutes(api *echo.Group, cache ...echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{auth.RequireRole(auth.RoleManager, auth.RoleDoctor, auth.RoleReceptionist)}
	for _, mw := range cache {
		if mw != nil {
			mws = append(mws, mw)
		}
	}
	g := api.Group("", mws...)
	g.GET("/reports/revenue", h.Revenue)
	g.GET("/reports/appointments", h.Appointments)
	g.GET("/reports/customers", h.Customers)
	g.GET("/reports/expenses", h.Expenses)
	g.GET("/dashboard", h.Dashboard)
}

func (h *Handler) Revenue(c echo.Context) error {
	r, err := h.svc.Revenue(c.Request().Context(), c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Appointments(c echo.Context) error {
	r, err := h.svc.Appointments(c.Request().Context(),
		c.QueryParam("start"), c.QueryParam("end"), c.QueryParam("group_by"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Customers(c echo.Context) error {
	r, err := h.svc.Customers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Expenses(c echo.Context) error {
	r, err := h.svc.Expenses(c.Request().Context(), c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}
