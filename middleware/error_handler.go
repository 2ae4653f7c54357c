package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
)

// ErrorHandler renders every error as the JSON envelope. Server error causes
// are logged and only shown to clients when verbose is set.
func ErrorHandler(verbose bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		appErr := toAppError(err)
		status := appErr.StatusCode()

		var he *echo.HTTPError
		if errors.As(err, &he) && appErr.Kind == apperror.KindValidation && he.Internal == nil {
			status = he.Code
		}

		if appErr.Kind == apperror.KindServer {
			zerolog.Ctx(c.Request().Context()).Error().Err(err).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		body := models.Failure(appErr)
		if appErr.Kind == apperror.KindServer && verbose && appErr.Err != nil {
			body.Message = appErr.Message + ": " + appErr.Err.Error()
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("failed to write error response")
		}
	}
}

func toAppError(err error) *apperror.Error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if inner, ok := he.Internal.(*apperror.Error); ok {
			return inner
		}
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		switch he.Code {
		case http.StatusNotFound:
			return apperror.NotFound("Route not found")
		case http.StatusUnauthorized:
			return apperror.Unauthorized(msg)
		case http.StatusForbidden:
			return apperror.Forbidden(msg)
		case http.StatusRequestEntityTooLarge:
			return apperror.PayloadTooLarge("File too large. Max size is 5MB.")
		case http.StatusInternalServerError:
			return apperror.Internal("Server Error", err)
		}
		if he.Code >= 400 && he.Code < 500 {
			return &apperror.Error{Kind: apperror.KindValidation, Message: msg}
		}
		return apperror.Internal("Server Error", err)
	}

	return apperror.From(err)
}
