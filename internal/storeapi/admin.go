package storeapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/streamstore/internal/catalog"
	"github.com/talkincode/streamstore/internal/domain"
	"github.com/talkincode/streamstore/internal/export"
	"github.com/talkincode/streamstore/internal/webserver"
	"github.com/talkincode/streamstore/pkg/metrics"
)

const (
	mimeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultWindow = time.Hour
)

type statusResult struct {
	Time   time.Time                  `json:"time"`
	Gauges map[string]int64           `json:"gauges"`
	Series map[string][]metrics.Point `json:"series,omitempty"`
}

func registerAdminRoutes() {
	webserver.AdminGET("/admin/summary", catalogSummary)
	webserver.AdminGET("/admin/export/products", exportProducts)
	webserver.AdminGET("/admin/audit", listOperations)
	webserver.AdminGET("/admin/status", systemStatus)
}

// catalogSummary returns catalog totals and per-service price statistics
//
// @Summary catalog summary
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} catalog.Summary
// @Router /api/admin/summary [get]
func catalogSummary(c echo.Context) error {
	sum, err := GetCatalog(c).Summary(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, sum)
}

// exportProducts downloads the price list as csv (default) or xlsx
func exportProducts(c echo.Context) error {
	format := strings.ToLower(strings.TrimSpace(c.QueryParam("format")))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		return fail(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx", format)
	}

	var (
		services []domain.Service
		products []domain.Product
	)
	store := GetCatalog(c)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		services, err = store.ListServices(ctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = store.ListProducts(ctx, catalog.ProductFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return storeError(c, err)
	}
	rows := export.Rows(services, products)

	filename := fmt.Sprintf("products-%s.%s", time.Now().Format("20060102"), format)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	recordOperation(c, "export_products", "exported %d products as %s", len(rows), format)
	if format == "xlsx" {
		c.Response().Header().Set(echo.HeaderContentType, mimeXLSX)
		c.Response().WriteHeader(http.StatusOK)
		return export.WriteXLSX(c.Response(), rows)
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteCSV(c.Response(), rows)
}

// listOperations returns the operation log, newest first. since accepts
// any common date layout.
func listOperations(c echo.Context) error {
	var since time.Time
	if raw := strings.TrimSpace(c.QueryParam("since")); raw != "" {
		t, err := dateparse.ParseLocal(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_SINCE", "Unrecognized date", raw)
		}
		since = t
	}
	limit := 0
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer", raw)
		}
		limit = n
	}
	rows, err := GetAppContext(c).Auditor().List(c.Request().Context(), since, limit)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, rows)
}

// systemStatus returns the current gauges, and the stored series of the
// metrics named in ?metric= over ?window= (default 1h).
func systemStatus(c echo.Context) error {
	res := statusResult{Time: time.Now(), Gauges: metrics.Snapshot()}
	names := c.QueryParams()["metric"]
	if len(names) == 0 {
		return ok(c, res)
	}
	window := defaultWindow
	if raw := c.QueryParam("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return fail(c, http.StatusBadRequest, "INVALID_WINDOW", "window must be a duration such as 30m", raw)
		}
		window = d
	}
	res.Series = make(map[string][]metrics.Point, len(names))
	for _, name := range names {
		points, err := metrics.Series(name, window)
		if err != nil {
			return err
		}
		res.Series[name] = points
	}
	return ok(c, res)
}
