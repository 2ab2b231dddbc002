package storeapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/streamstore/internal/auth"
	"github.com/talkincode/streamstore/internal/webserver"
)

// loginRate is the sustained login attempts per second allowed per client.
const loginRate = 5

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

func registerAuthRoutes() {
	limiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(loginRate))
	webserver.ApiPOST("/admin/login", login, limiter)
	webserver.AdminPOST("/admin/logout", logout)
	webserver.AdminGET("/admin/session", currentSession)
}

// login exchanges the admin credential for a bearer token
//
// @Summary admin login
// @Tags Auth
// @Success 200 {object} loginResult
// @Failure 401 {object} webserver.ErrorBody
// @Router /api/admin/login [post]
func login(c echo.Context) error {
	var payload loginPayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	s, err := GetAppContext(c).Auth().Login(payload.Username, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		zap.L().Warn("admin login rejected",
			zap.String("username", payload.Username),
			zap.String("ip", c.RealIP()))
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}
	if err != nil {
		return err
	}
	c.Set(webserver.AdminContextKey, s)
	recordOperation(c, "login", "admin login")
	return ok(c, loginResult{Token: s.Token, Username: s.Username, ExpiresAt: s.ExpiresAt})
}

func logout(c echo.Context) error {
	s := webserver.GetAdmin(c)
	if err := GetAppContext(c).Auth().Logout(s); err != nil {
		return errors.Wrap(err, "logout")
	}
	recordOperation(c, "logout", "admin logout")
	return ok(c, map[string]bool{"success": true})
}

func currentSession(c echo.Context) error {
	return ok(c, webserver.GetAdmin(c))
}
