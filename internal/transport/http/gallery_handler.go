package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mineboard/mineboard/internal/service"
	"github.com/mineboard/mineboard/internal/util"
)

type GalleryHandler struct {
	gallery *service.GalleryService
}

func RegisterGallery(e *echo.Echo, auth *service.AuthService, gallery *service.GalleryService) {
	handler := &GalleryHandler{gallery: gallery}

	e.GET("/api/images", handler.list)

	protected := e.Group("/api/images", RequireSession(auth, GateAPI))
	protected.POST("", handler.upload)
	protected.POST("/caption", handler.setCaption)
	protected.DELETE("/:filename", handler.remove)
}

func (h *GalleryHandler) list(c echo.Context) error {
	images, err := h.gallery.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list images: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to load gallery"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "images": images})
}

func (h *GalleryHandler) upload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read image file"))
	}
	defer file.Close()

	image, err := h.gallery.Upload(c.Request().Context(), service.ImageUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	}, c.FormValue("caption"))
	if err != nil {
		if errors.Is(err, service.ErrImageValidation) {
			return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
		}
		c.Logger().Errorf("upload image: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to store image"))
	}
	if session, ok := CurrentSession(c); ok {
		c.Logger().Infof("image %s uploaded by %s", image.FileName, session.UserName)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "image": image})
}

func (h *GalleryHandler) setCaption(c echo.Context) error {
	var req captionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	if err := h.gallery.SetCaption(c.Request().Context(), req.FileName, req.Caption); err != nil {
		if errors.Is(err, service.ErrImageValidation) {
			return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
		}
		c.Logger().Errorf("set caption: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to store caption"))
	}
	return c.JSON(http.StatusOK, util.OK())
}

func (h *GalleryHandler) remove(c echo.Context) error {
	if err := h.gallery.Delete(c.Request().Context(), c.Param("filename")); err != nil {
		if errors.Is(err, service.ErrImageValidation) {
			return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
		}
		c.Logger().Errorf("delete image: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to delete image"))
	}
	return c.JSON(http.StatusOK, util.OK())
}
