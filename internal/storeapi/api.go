package storeapi

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/streamstore/internal/app"
	"github.com/talkincode/streamstore/internal/audit"
	"github.com/talkincode/streamstore/internal/catalog"
	"github.com/talkincode/streamstore/internal/webserver"
)

// Init registers every storefront route on the current web server.
func Init() {
	registerServiceRoutes()
	registerProductRoutes()
	registerSlideRoutes()
	registerCartRoutes()
	registerAuthRoutes()
	registerAdminRoutes()
}

// writeResult is returned by every admin mutation.
type writeResult struct {
	Success bool        `json:"success"`
	ID      int64       `json:"id"`
	Data    interface{} `json:"data,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, webserver.ErrorBody{Code: code, Message: message, Detail: detail})
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// apiError is returned by helpers that fail before a handler can respond;
// the server error handler renders the body as is.
func apiError(status int, code, message string, detail interface{}) error {
	return &echo.HTTPError{
		Code:    status,
		Message: webserver.ErrorBody{Code: code, Message: message, Detail: detail},
	}
}

func written(c echo.Context, status int, id int64, data interface{}) error {
	return c.JSON(status, writeResult{Success: true, ID: id, Data: data})
}

func GetAppContext(c echo.Context) app.AppContext {
	return webserver.GetAppContext(c)
}

func GetCatalog(c echo.Context) *catalog.Store {
	return GetAppContext(c).Catalog()
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, apiError(http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("Invalid %s", name), c.Param(name))
	}
	return id, nil
}

// decodePayload reads a JSON object body and decodes it into dst with weak
// typing ("24.90" is a valid price), then runs struct validation. Keys that
// are absent leave pointer fields nil.
func decodePayload(c echo.Context, dst interface{}) error {
	var raw map[string]interface{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return apiError(http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request body", errorDetail(err))
	}
	// weak typing would turn "" into 0 for numbers
	if blank := blankNumbers(raw, dst); len(blank) > 0 {
		return apiError(http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", blank)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           dst,
	})
	if err != nil {
		return errors.Wrap(err, "payload decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return apiError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid field type", err.Error())
	}
	if err := c.Validate(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			detail := make([]fieldError, 0, len(verrs))
			for _, fe := range verrs {
				detail = append(detail, fieldError{Field: fe.Field(), Rule: fe.Tag()})
			}
			return apiError(http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", detail)
		}
		return apiError(http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	}
	return nil
}

func errorDetail(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}

// storeError maps catalog errors onto HTTP responses.
func storeError(c echo.Context, err error) error {
	var (
		verr *catalog.ValidationError
		nerr *catalog.NotFoundError
		rerr *catalog.ReferentialError
	)
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(),
			[]fieldError{{Field: verr.Field, Rule: verr.Reason}})
	case errors.As(err, &nerr):
		return fail(c, http.StatusNotFound, "NOT_FOUND", nerr.Error(), nil)
	case errors.As(err, &rerr):
		return fail(c, http.StatusUnprocessableEntity, "INVALID_REFERENCE", rerr.Error(),
			map[string]int64{"service_id": rerr.ServiceID})
	default:
		zap.L().Error("store operation failed",
			zap.String("path", c.Path()),
			zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Store operation failed", nil)
	}
}

// recordOperation appends an entry to the operation log.
func recordOperation(c echo.Context, action, format string, args ...interface{}) {
	operator := ""
	if s := webserver.GetAdmin(c); s != nil {
		operator = s.Username
	}
	GetAppContext(c).Auditor().Record(audit.Entry{
		Operator:    operator,
		IP:          c.RealIP(),
		Action:      action,
		Description: fmt.Sprintf(format, args...),
	})
}

// blankNumbers reports keys of raw holding a blank string where dst expects
// a number.
func blankNumbers(raw map[string]interface{}, dst interface{}) []fieldError {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var out []fieldError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		v, ok := raw[name].(string)
		if !ok || strings.TrimSpace(v) != "" {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		switch ft.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			out = append(out, fieldError{Field: name, Rule: "number"})
		}
	}
	return out
}
