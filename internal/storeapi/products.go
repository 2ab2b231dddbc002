package storeapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/streamstore/internal/catalog"
	"github.com/talkincode/streamstore/internal/webserver"
)

type productCreatePayload struct {
	ServiceID    int64    `json:"service_id" validate:"required,gt=0"`
	Name         string   `json:"name" validate:"required,max=200"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Description  string   `json:"description"`
	Observations string   `json:"observations"`
	Image        string   `json:"image"`
}

type productUpdatePayload struct {
	ServiceID    *int64   `json:"service_id" validate:"omitempty,gt=0"`
	Name         *string  `json:"name" validate:"omitempty,max=200"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Description  *string  `json:"description"`
	Observations *string  `json:"observations"`
	Image        *string  `json:"image"`
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminPUT("/products/:id", updateProduct)
	webserver.AdminDELETE("/products/:id", deleteProduct)
}

// productFilter reads serviceId (or service_id) from the query string.
func productFilter(c echo.Context) (catalog.ProductFilter, error) {
	raw := strings.TrimSpace(c.QueryParam("serviceId"))
	if raw == "" {
		raw = strings.TrimSpace(c.QueryParam("service_id"))
	}
	if raw == "" {
		return catalog.ProductFilter{}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return catalog.ProductFilter{}, apiError(http.StatusBadRequest, "INVALID_FILTER", "Invalid serviceId", raw)
	}
	return catalog.ProductFilter{ServiceID: &id}, nil
}

// listProducts returns products, optionally only those of one service
//
// @Summary list products
// @Tags Catalog
// @Param serviceId query int false "Service ID"
// @Success 200 {array} domain.Product
// @Router /api/products [get]
func listProducts(c echo.Context) error {
	filter, err := productFilter(c)
	if err != nil {
		return err
	}
	rows, err := GetCatalog(c).ListProducts(c.Request().Context(), filter)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, rows)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	p, err := GetCatalog(c).GetProduct(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productCreatePayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	p, err := GetCatalog(c).CreateProduct(c.Request().Context(), catalog.ProductInput{
		ServiceID:    payload.ServiceID,
		Name:         payload.Name,
		Price:        *payload.Price,
		Description:  payload.Description,
		Observations: payload.Observations,
		Image:        payload.Image,
	})
	if err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "product_create", "created product %d %q under service %d", p.ID, p.Name, p.ServiceID)
	return written(c, http.StatusCreated, p.ID, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var payload productUpdatePayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	p, err := GetCatalog(c).UpdateProduct(c.Request().Context(), id, catalog.ProductPatch{
		ServiceID:    payload.ServiceID,
		Name:         payload.Name,
		Price:        payload.Price,
		Description:  payload.Description,
		Observations: payload.Observations,
		Image:        payload.Image,
	})
	if err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "product_update", "updated product %d", id)
	return written(c, http.StatusOK, p.ID, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := GetCatalog(c).DeleteProduct(c.Request().Context(), id); err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "product_delete", "deleted product %d", id)
	return written(c, http.StatusOK, id, nil)
}
