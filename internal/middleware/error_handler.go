package middleware

import (
	"net/http"

	"marketSearch/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: it logs the failure and returns
// a neutral message so internal error detail never reaches end users.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}

	logger.Error("request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"status", code,
		"error", err,
	)

	message := http.StatusText(code)
	if err := c.JSON(code, map[string]string{"message": message}); err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
