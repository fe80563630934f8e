package http

import (
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mineboard/mineboard/internal/util"
)

var swaggerSpecPath = filepath.Join("docs", "swagger.yaml")

// RegisterSwagger serves the API reference under /swagger. The YAML spec is
// converted to JSON once and cached for the process lifetime.
func RegisterSwagger(e *echo.Echo) {
	var (
		once    sync.Once
		spec    []byte
		loadErr error
	)
	load := func() ([]byte, error) {
		once.Do(func() {
			data, err := os.ReadFile(swaggerSpecPath)
			if err != nil {
				loadErr = err
				return
			}
			spec, loadErr = yaml.YAMLToJSON(data)
		})
		return spec, loadErr
	}

	e.GET("/swagger/doc.json", func(c echo.Context) error {
		jsonSpec, err := load()
		if err != nil {
			c.Logger().Errorf("swagger spec: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
