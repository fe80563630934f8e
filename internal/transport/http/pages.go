package http

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/mineboard/mineboard/internal/service"
)

// RegisterPages wires the HTML pages and static assets. Every page route is
// statically classified: the home and dashboard pages require a session, the
// login page bounces authenticated visitors forward, and /mine stays public
// as the read-only status page.
func RegisterPages(e *echo.Echo, auth *service.AuthService, staticDir string) {
	page := func(name string) echo.HandlerFunc {
		path := filepath.Join(staticDir, name)
		return func(c echo.Context) error {
			return c.File(path)
		}
	}

	e.GET("/", page("mine.html"), RequireSession(auth, GateRedirect))
	e.GET("/inicio", page("index.html"), RequireSession(auth, GateRedirect))
	e.GET("/login", page("login.html"), RequireSession(auth, RedirectAuthenticated))
	e.GET("/mine", page("mine.html"))

	e.Static("/imagens", filepath.Join(staticDir, "imagens"))
	e.Static("/downloads", filepath.Join(staticDir, "downloads"))
	e.Static("/assets", filepath.Join(staticDir, "assets"))

	// Unknown API paths get a structured 404; everything else falls back to
	// the public status page.
	e.RouteNotFound("/api/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "API endpoint not found"})
	})
	e.RouteNotFound("/*", page("mine.html"))
}
