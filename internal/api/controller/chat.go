package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zakatkuy/amil/internal/domain/dto"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

func sessionID(ctx echo.Context) (string, error) {
	id, ok := ctx.Get(constants.CtxKeySessionID).(string)
	if !ok || id == "" {
		return "", constants.ErrUnauthorized
	}
	return id, nil
}

func (c *Controller) GetChat(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.ChatHistoryResponse{
		Messages: c.assistant.History(ctx.Request().Context(), id),
	})
}

func (c *Controller) PostChat(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}

	reply, err := c.assistant.Send(ctx.Request().Context(), id, req.Backend, req.Message)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.ChatReplyResponse{
		Reply:    reply,
		Messages: c.assistant.History(ctx.Request().Context(), id),
	})
}

func (c *Controller) DeleteChat(ctx echo.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	c.assistant.Reset(ctx.Request().Context(), id)

	return ctx.NoContent(http.StatusNoContent)
}

func (c *Controller) GetChatBackends(ctx echo.Context) error {
	def, names := c.assistant.Backends()

	return ctx.JSON(http.StatusOK, dto.BackendsResponse{Default: def, Backends: names})
}
