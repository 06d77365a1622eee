package http

import (
	"errors"
	"log/slog"
	"net/http"

	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/generated/servers"
	"foodtruck/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps an application error to the HTTP status it is reported with.
// Unknown errors are treated as infrastructure failures.
func statusFor(err error, role kernel.Role) int {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		if role == kernel.RoleNone {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderNotFulfilled),
		errors.Is(err, order.ErrOrderNotDeletable),
		errors.Is(err, ports.ErrLocatorTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrLocatorExhausted):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrInfrastructure):
		return http.StatusInternalServerError
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrRatingOutOfRange),
		errors.Is(err, commands.ErrProductNotFound),
		errors.Is(err, commands.ErrProductUnavailable),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// problem writes err as a servers.Error body. Internal failures are logged and
// reported without their cause.
func (s *Server) problem(ctx echo.Context, err error) error {
	code := statusFor(err, s.identity.CurrentRole(ctx.Request().Context()))
	message := err.Error()
	if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// NewHTTPErrorHandler renders errors escaping the handlers, such as binding,
// validation, authentication and routing failures, in the servers.Error shape.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_error_handler")
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		} else {
			logger.ErrorContext(ctx.Request().Context(), "unhandled error", "path", ctx.Path(), "error", err)
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, servers.Error{Code: code, Message: message})
		}
		if err != nil {
			logger.ErrorContext(ctx.Request().Context(), "write error response", "error", err)
		}
	}
}
