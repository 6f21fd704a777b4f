// Package respond maps service error codes onto HTTP responses so every
// controller answers failures the same way.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"libraryms/errs"
)

func status(code errs.Code) int {
	switch code {
	case errs.CodeValidation:
		return http.StatusBadRequest
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeDuplicate, errs.CodeReferential, errs.CodeUnavailable:
		return http.StatusConflict
	case errs.CodeLoanLimit:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as JSON. Storage errors are logged with the request id
// and answered with a generic message so internals never leak.
func Error(c echo.Context, log *slog.Logger, err error) error {
	code := errs.CodeOf(err)
	st := status(code)
	if st == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed",
				"err", err,
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"path", c.Path(),
				"method", c.Request().Method,
			)
		}
		return c.JSON(st, echo.Map{"message": "internal error"})
	}
	return c.JSON(st, echo.Map{"message": err.Error()})
}
