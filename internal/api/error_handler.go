package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zakatkuy/amil/internal/domain/dto"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/logger"
)

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	msg := err.Error()
	code := http.StatusInternalServerError

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		for e := err; e != nil; e = errors.Unwrap(e) {
			if ce, ok := e.(*constants.CodedError); ok {
				code = ce.Code()
				break
			}
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Path(), err.Error())
	}

	_ = c.JSON(code, dto.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}
