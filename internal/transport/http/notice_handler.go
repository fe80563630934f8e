package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mineboard/mineboard/internal/service"
	"github.com/mineboard/mineboard/internal/util"
)

type NoticeHandler struct {
	auth    *service.AuthService
	notices *service.NoticeService
}

func RegisterNotices(e *echo.Echo, auth *service.AuthService, notices *service.NoticeService) {
	handler := &NoticeHandler{auth: auth, notices: notices}

	e.GET("/api/notices", handler.listActive)
	e.GET("/api/notices/dismissed/:userId", handler.listDismissed)
	e.POST("/api/notices/dismiss", handler.dismiss)
}

// listActive returns the notice catalog, filtered by the caller's dismissals
// when a valid session cookie is present.
func (h *NoticeHandler) listActive(c echo.Context) error {
	var userID string
	if session, err := h.auth.Authenticate(c.Request().Context(), c.Request()); err == nil && session != nil {
		userID = session.UserID
	}

	active, err := h.notices.ActiveFor(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("list notices: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to load notices"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "notices": active})
}

func (h *NoticeHandler) listDismissed(c echo.Context) error {
	dismissed, err := h.notices.Dismissed(c.Request().Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrNoticeValidation) {
			return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
		}
		c.Logger().Errorf("list dismissed notices: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to load dismissed notices"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "dismissed": dismissed})
}

func (h *NoticeHandler) dismiss(c echo.Context) error {
	var req dismissNoticeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	if err := h.notices.Dismiss(c.Request().Context(), req.UserID, req.NoticeID); err != nil {
		if errors.Is(err, service.ErrNoticeValidation) {
			return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
		}
		c.Logger().Errorf("dismiss notice: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to dismiss notice"))
	}
	return c.JSON(http.StatusOK, util.OK())
}
