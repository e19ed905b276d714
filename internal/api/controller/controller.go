package controller

import (
	"context"

	"github.com/zakatkuy/amil/internal/service/assistant"
	"github.com/zakatkuy/amil/internal/service/zakat"
)

// BackfillFunc copies the configured record file into the database.
type BackfillFunc func(ctx context.Context) (int64, error)

type Controller struct {
	zakat     *zakat.Service
	assistant *assistant.Service
	backfill  BackfillFunc
}

func NewController(zakatService *zakat.Service, assistantService *assistant.Service, backfill BackfillFunc) *Controller {
	return &Controller{zakat: zakatService, assistant: assistantService, backfill: backfill}
}
