package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/domain/dto"
)

type yearQuery struct {
	Year domain.Year `query:"year" validate:"required"`
}

func (c *Controller) GetYears(ctx echo.Context) error {
	years, err := c.zakat.Years(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, years)
}

func (c *Controller) GetProvinces(ctx echo.Context) error {
	provinces, err := c.zakat.Provinces(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, provinces)
}

func (c *Controller) GetSummary(ctx echo.Context) error {
	var q yearQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}

	summary, err := c.zakat.Summary(ctx.Request().Context(), q.Year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.NewSummaryResponse(summary))
}

func (c *Controller) GetMap(ctx echo.Context) error {
	var q yearQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}

	rows, err := c.zakat.MapView(ctx.Request().Context(), q.Year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.NewMapFeatureCollection(rows))
}

func (c *Controller) GetDistribution(ctx echo.Context) error {
	var q yearQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}

	dist, err := c.zakat.Distribution(ctx.Request().Context(), q.Year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dist)
}

// GetTrend takes repeated province params; none at all means every province.
func (c *Controller) GetTrend(ctx echo.Context) error {
	selection, ok := ctx.QueryParams()["province"]
	if !ok {
		selection = []string{domain.AllProvinces}
	}

	points, err := c.zakat.Trend(ctx.Request().Context(), selection)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, points)
}

func (c *Controller) GetProvinceTrend(ctx echo.Context) error {
	points, err := c.zakat.ProvinceTrend(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, points)
}
