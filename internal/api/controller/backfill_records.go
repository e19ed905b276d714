package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zakatkuy/amil/internal/domain/dto"
)

func (c *Controller) BackfillRecords(ctx echo.Context) error {
	if c.backfill == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "backfill is not configured")
	}

	n, err := c.backfill(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.ImportResponse{Imported: n})
}
