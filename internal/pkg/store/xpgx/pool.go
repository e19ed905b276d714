package xpgx

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool runs squirrel queries against Postgres.
type Pool interface {
	Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error)
	Queryx(ctx context.Context, query squirrel.Sqlizer) (pgx.Rows, error)
	Close()
}

type pool struct {
	*pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (Pool, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}
	return &pool{p}, nil
}

func (p *pool) Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}
	return p.Exec(ctx, sql, args...)
}

func (p *pool) Queryx(ctx context.Context, query squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql: %w", err)
	}
	return p.Query(ctx, sql, args...)
}
