package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/streamstore/internal/catalog"
	"github.com/talkincode/streamstore/internal/webserver"
)

type serviceCreatePayload struct {
	Name string `json:"name" validate:"required,max=200"`
	Logo string `json:"logo" validate:"required"`
}

type serviceUpdatePayload struct {
	Name *string `json:"name" validate:"omitempty,max=200"`
	Logo *string `json:"logo"`
}

type serviceDeleteResult struct {
	Success         bool  `json:"success"`
	ID              int64 `json:"id"`
	DeletedProducts int64 `json:"deleted_products"`
}

func registerServiceRoutes() {
	webserver.ApiGET("/services", listServices)
	webserver.ApiGET("/services/:id", getService)
	webserver.AdminPOST("/services", createService)
	webserver.AdminPUT("/services/:id", updateService)
	webserver.AdminDELETE("/services/:id", deleteService)
}

// listServices returns every service
//
// @Summary list services
// @Tags Catalog
// @Success 200 {array} domain.Service
// @Router /api/services [get]
func listServices(c echo.Context) error {
	rows, err := GetCatalog(c).ListServices(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, rows)
}

func getService(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	s, err := GetCatalog(c).GetService(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, s)
}

// createService adds a service
//
// @Summary create a service
// @Tags Catalog
// @Security BearerAuth
// @Success 201 {object} writeResult
// @Router /api/services [post]
func createService(c echo.Context) error {
	var payload serviceCreatePayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	s, err := GetCatalog(c).CreateService(c.Request().Context(), catalog.ServiceInput{
		Name: payload.Name,
		Logo: payload.Logo,
	})
	if err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "service_create", "created service %d %q", s.ID, s.Name)
	return written(c, http.StatusCreated, s.ID, s)
}

func updateService(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var payload serviceUpdatePayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	s, err := GetCatalog(c).UpdateService(c.Request().Context(), id, catalog.ServicePatch{
		Name: payload.Name,
		Logo: payload.Logo,
	})
	if err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "service_update", "updated service %d", id)
	return written(c, http.StatusOK, s.ID, s)
}

// deleteService removes a service together with all of its products
//
// @Summary delete a service and its products
// @Tags Catalog
// @Security BearerAuth
// @Param id path int true "Service ID"
// @Success 200 {object} serviceDeleteResult
// @Router /api/services/{id} [delete]
func deleteService(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	removed, err := GetCatalog(c).DeleteService(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "service_delete", "deleted service %d and %d products", id, removed)
	return ok(c, serviceDeleteResult{Success: true, ID: id, DeletedProducts: removed})
}
