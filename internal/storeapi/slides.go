package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/streamstore/internal/catalog"
	"github.com/talkincode/streamstore/internal/webserver"
)

type slideCreatePayload struct {
	Message string `json:"message" validate:"required,max=500"`
	Image   string `json:"image" validate:"required"`
}

type slideUpdatePayload struct {
	Message *string `json:"message" validate:"omitempty,max=500"`
	Image   *string `json:"image"`
}

func registerSlideRoutes() {
	webserver.ApiGET("/slides", listSlides)
	webserver.ApiGET("/slides/:id", getSlide)
	webserver.AdminPOST("/slides", createSlide)
	webserver.AdminPUT("/slides/:id", updateSlide)
	webserver.AdminDELETE("/slides/:id", deleteSlide)
}

func listSlides(c echo.Context) error {
	rows, err := GetCatalog(c).ListSlides(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, rows)
}

func getSlide(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	s, err := GetCatalog(c).GetSlide(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, s)
}

func createSlide(c echo.Context) error {
	var payload slideCreatePayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	s, err := GetCatalog(c).CreateSlide(c.Request().Context(), catalog.SlideInput{
		Message: payload.Message,
		Image:   payload.Image,
	})
	if err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "slide_create", "created slide %d", s.ID)
	return written(c, http.StatusCreated, s.ID, s)
}

func updateSlide(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var payload slideUpdatePayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	s, err := GetCatalog(c).UpdateSlide(c.Request().Context(), id, catalog.SlidePatch{
		Message: payload.Message,
		Image:   payload.Image,
	})
	if err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "slide_update", "updated slide %d", id)
	return written(c, http.StatusOK, s.ID, s)
}

func deleteSlide(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := GetCatalog(c).DeleteSlide(c.Request().Context(), id); err != nil {
		return storeError(c, err)
	}
	recordOperation(c, "slide_delete", "deleted slide %d", id)
	return written(c, http.StatusOK, id, nil)
}
