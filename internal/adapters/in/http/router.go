package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"foodtruck/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewEcho builds the HTTP application: health and metrics endpoints, the
// documentation UI and the validated, authenticated API routes.
func NewEcho(server *Server, auth TokenAuthenticator, metrics *Metrics, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := NewRequestValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("request validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", metrics.Handler())
	RegisterSwagger(e)

	api := e.Group("", auth.Middleware(), validator)
	servers.RegisterHandlers(api, server)

	return e, nil
}
