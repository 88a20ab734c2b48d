package reporting

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/labdesk/labdesk/internal/domain/visit"
)

type Handler struct {
	svc *visit.Service
	loc *time.Location
	now func() time.Time
}

func NewHandler(svc *visit.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc, now: time.Now}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/visits/reports/daily", h.Daily)
	api.GET("/visits/reports/monthly", h.Monthly)
	api.GET("/visits/reports/range", h.Range)

	// Short aliases kept for older clients.
	api.GET("/visits/daily", h.Daily)
	api.GET("/visits/monthly", h.Monthly)
	api.GET("/visits/range", h.Range)
}

// Daily reports on one calendar day, today unless ?date=YYYY-MM-DD says
// otherwise.
func (h *Handler) Daily(c echo.Context) error {
	day := h.now().In(h.loc)
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.ParseInLocation(dayLayout, raw, h.loc)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		day = parsed
	}
	w := Daily(day, h.loc)
	records, err := h.svc.ListByDate(c.Request().Context(), w.Start, w.End, w.EndExclusive)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"date":    w.Start.Format(dayLayout),
		"stats":   Compute(records),
		"records": records,
	})
}

// Monthly reports on one calendar month, the current one unless ?month= and
// ?year= say otherwise.
func (h *Handler) Monthly(c echo.Context) error {
	ref := h.now().In(h.loc)
	if rawMonth, rawYear := c.QueryParam("month"), c.QueryParam("year"); rawMonth != "" || rawYear != "" {
		month, err := strconv.Atoi(rawMonth)
		if err != nil || month < 1 || month > 12 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
		}
		year, err := strconv.Atoi(rawYear)
		if err != nil || year < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		ref = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, h.loc)
	}
	w := Monthly(ref, h.loc)
	records, err := h.svc.ListByDate(c.Request().Context(), w.Start, w.End, w.EndExclusive)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"month":   int(w.Start.Month()),
		"year":    w.Start.Year(),
		"stats":   Compute(records),
		"records": records,
	})
}

// Range reports across an inclusive span of days given by ?start= and
// ?end= in YYYY-MM-DD form.
func (h *Handler) Range(c echo.Context) error {
	start, end := c.QueryParam("start"), c.QueryParam("end")
	if start == "" || end == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "start and end dates are required")
	}
	w, err := Range(start, end, h.loc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	records, err := h.svc.ListByDate(c.Request().Context(), w.Start, w.End, w.EndExclusive)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"start":   start,
		"end":     end,
		"stats":   Compute(records),
		"records": records,
	})
}
