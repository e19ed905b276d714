package store

import (
	"context"

	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	EnsureSchema(ctx context.Context) error
	ListRecords(ctx context.Context, opts ListRecordsOpts) ([]domain.ZakatRecord, error)
	UpsertRecords(ctx context.Context, records []domain.ZakatRecord) (int64, error)
	// Load returns every record in insertion order, so the store can act as a record source.
	Load(ctx context.Context) ([]domain.ZakatRecord, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
