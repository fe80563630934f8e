package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mineboard/mineboard/internal/domain"
	"github.com/mineboard/mineboard/internal/service"
)

const contextSessionKey = "session"

// GateMode is a route's static auth classification. Pages and APIs fail
// differently on a missing session, and the login page inverts the check.
type GateMode int

const (
	// GateRedirect sends unauthenticated visitors to the login page.
	GateRedirect GateMode = iota
	// GateAPI answers unauthenticated API calls with a 200 payload so
	// clients can render a login prompt instead of treating it as a fault.
	GateAPI
	// RedirectAuthenticated forwards already-authenticated visitors away
	// from the login page.
	RedirectAuthenticated
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// RequireSession gates a route on cookie-session validity. Session storage
// failures surface as 500s rather than silently treating the caller as
// anonymous.
func RequireSession(auth *service.AuthService, mode GateMode) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := auth.Authenticate(c.Request().Context(), c.Request())
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session validation failed"})
			}

			switch mode {
			case RedirectAuthenticated:
				if session != nil {
					return c.Redirect(http.StatusFound, homePath)
				}
				return next(c)
			case GateAPI:
				if session == nil {
					return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
				}
			default:
				if session == nil {
					return c.Redirect(http.StatusFound, loginPath)
				}
			}

			c.Set(contextSessionKey, session)
			return next(c)
		}
	}
}

// CurrentSession returns the session placed in context by RequireSession.
func CurrentSession(c echo.Context) (*domain.SessionInfo, bool) {
	session, ok := c.Get(contextSessionKey).(*domain.SessionInfo)
	return session, ok && session != nil
}
