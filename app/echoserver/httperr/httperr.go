// Package httperr converts business errors into the flat JSON error envelope.
package httperr

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/util/apperr"
)

// Write maps the error kind to 404/400/409 and emits {"error": "<message>"}.
// Anything without a kind is a 500 with details only in the logs.
func Write(c echo.Context, log *slog.Logger, err error) error {
	switch apperr.Code(err) {
	case apperr.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case apperr.KindValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case apperr.KindAlreadyExists:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		log.Error("request failed",
			"err", err,
			"req_id", rid,
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// BadRequest reports a request-shape problem (bad body, bad param) in the
// same envelope the business errors use.
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
