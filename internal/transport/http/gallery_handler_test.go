package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mineboard/mineboard/internal/service"
)

func TestGalleryMutationsRequireSession(t *testing.T) {
	sessions := service.NewSessionService(newMemSessionRepo(), time.Hour)
	auth := service.NewAuthService(sessions, &stubGateway{})
	gallery := service.NewGalleryService(nil, nil, service.GalleryServiceConfig{Bucket: "gallery"})

	e := echo.New()
	RegisterGallery(e, auth, gallery)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/images", nil),
		httptest.NewRequest(http.MethodPost, "/api/images/caption", nil),
		httptest.NewRequest(http.MethodDelete, "/api/images/spawn.png", nil),
	}
	for _, req := range requests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		// Gated APIs answer anonymous callers with a 200 login prompt
		// payload, never a 401.
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d", req.Method, req.URL.Path, rec.Code)
		}
		body := decodeBody(t, rec)
		if body["authenticated"] != false {
			t.Fatalf("%s %s: expected authenticated false, got %v", req.Method, req.URL.Path, body)
		}
	}
}
