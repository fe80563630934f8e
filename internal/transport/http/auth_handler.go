package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mineboard/mineboard/internal/service"
	"github.com/mineboard/mineboard/internal/util"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionService
	broker   *service.DiscordAuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, sessions *service.SessionService, broker *service.DiscordAuthService) {
	handler := &AuthHandler{
		auth:     auth,
		sessions: sessions,
		broker:   broker,
	}

	e.GET("/api/check-auth", handler.checkAuth)
	e.GET("/api/user-info", handler.userInfo)
	e.POST("/api/create-session", handler.createSession)
	e.POST("/api/logout", handler.logout)
	e.POST("/api/discord/request-auth", handler.requestAuth)
	e.POST("/api/discord/verify-auth", handler.verifyAuth)
}

func (h *AuthHandler) checkAuth(c echo.Context) error {
	session, err := h.auth.Authenticate(c.Request().Context(), c.Request())
	if err != nil {
		c.Logger().Errorf("check-auth: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"authenticated": false, "error": "session validation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"authenticated": session != nil})
}

func (h *AuthHandler) userInfo(c echo.Context) error {
	info, err := h.auth.UserInfo(c.Request().Context(), c.Request())
	if err != nil {
		c.Logger().Errorf("user-info: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"authenticated": false, "error": "session validation failed"})
	}
	return c.JSON(http.StatusOK, info)
}

// createSession exchanges an already-verified handshake token for a session
// cookie. The token itself is only checked for presence here: the trusted
// verification happened in the verify-auth flow that produced it.
func (h *AuthHandler) createSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}
	if strings.TrimSpace(req.Token) == "" || strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.UserName) == "" {
		return c.JSON(http.StatusBadRequest, util.Fail("token, userId and userName are required"))
	}

	session, err := h.sessions.Create(c.Request().Context(), req.UserID, req.UserName)
	if err != nil {
		c.Logger().Errorf("create-session: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to create session"))
	}

	h.setSessionCookie(c, session.SessionID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "session_id": session.SessionID})
}

func (h *AuthHandler) logout(c echo.Context) error {
	if cookie, err := c.Cookie(service.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Logout(c.Request().Context(), cookie.Value); err != nil {
			// Logout is always a success from the client's point of view;
			// the cookie is cleared regardless.
			c.Logger().Errorf("logout: %v", err)
		}
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, util.OK())
}

func (h *AuthHandler) requestAuth(c echo.Context) error {
	var req requestAuthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	payload, err := h.broker.RequestAuth(c.Request().Context(), req.UserID, req.UserName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthValidation):
			return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
		default:
			c.Logger().Errorf("request-auth: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Fail("identity service unavailable"))
		}
	}
	return c.JSONBlob(http.StatusOK, payload)
}

func (h *AuthHandler) verifyAuth(c echo.Context) error {
	var req verifyAuthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	result, err := h.broker.PollVerify(c.Request().Context(), req.Token, req.UserID, req.UserName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthValidation):
			return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
		default:
			c.Logger().Errorf("verify-auth: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"verified": false, "error": "identity service unavailable"})
		}
	}

	if !result.Verified {
		// Still pending or expired upstream: hand the bot's answer back
		// unchanged so the client keeps polling.
		return c.JSONBlob(http.StatusOK, result.Payload)
	}

	h.setSessionCookie(c, result.SessionID)
	return c.JSON(http.StatusOK, echo.Map{"verified": true, "session_id": result.SessionID})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     service.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL() / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     service.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}
