package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sunsetfest/booking-backend/internal/dto"
)

// NewErrorHandler renders every unhandled error in the API's ErrorResponse
// shape. Client errors pass through quietly; server-side failures are logged
// with the request that triggered them.
func NewErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}

		if code >= http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			}).Error("request failed")
			msg = "internal server error"
		}

		_ = c.JSON(code, dto.ErrorResponse{Message: msg})
	}
}
