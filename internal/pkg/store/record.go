package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/logger"
)

type ListRecordsOpts struct {
	Years     []domain.Year
	Provinces []string
}

var recordColumns = []string{"id", "provinsi", "tahun", "jumlah_pengumpulan", "jumlah_penyaluran", "created_at", "updated_at"}

func (s *store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Execx(ctx, sq.Expr(schema)); err != nil {
		return fmt.Errorf("create table %s: %w", tableZakatRecords, err)
	}
	return nil
}

func (s *store) Load(ctx context.Context) ([]domain.ZakatRecord, error) {
	return s.ListRecords(ctx, ListRecordsOpts{})
}

func (s *store) ListRecords(ctx context.Context, opts ListRecordsOpts) ([]domain.ZakatRecord, error) {
	rows, err := s.pool.Queryx(ctx, listRecordsQuery(opts))
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, fmt.Errorf("pool.Queryx: %w", wrapErr(err))
	}

	stored, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.StoredRecord])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", wrapErr(err))
	}

	records := make([]domain.ZakatRecord, 0, len(stored))
	for _, r := range stored {
		records = append(records, r.ZakatRecord)
	}
	return records, nil
}

func listRecordsQuery(opts ListRecordsOpts) sq.SelectBuilder {
	query := builder().Select(recordColumns...).
		From(tableZakatRecords).
		OrderBy("id")

	if len(opts.Years) > 0 {
		query = query.Where(sq.Eq{"tahun": opts.Years})
	}
	if len(opts.Provinces) > 0 && !domain.IsAllProvinces(opts.Provinces) {
		query = query.Where(sq.Eq{"provinsi": opts.Provinces})
	}

	return query
}

// UpsertRecords writes records keyed by (provinsi, tahun); the last duplicate in the batch wins.
func (s *store) UpsertRecords(ctx context.Context, records []domain.ZakatRecord) (int64, error) {
	records = dedupe(records)
	if len(records) == 0 {
		return 0, nil
	}

	tag, err := s.pool.Execx(ctx, upsertRecordsQuery(records))
	if err != nil {
		logger.Errorf(ctx, "upsert %d records: %s", len(records), err.Error())
		return 0, fmt.Errorf("pool.Execx: %w", err)
	}

	return tag.RowsAffected(), nil
}

func upsertRecordsQuery(records []domain.ZakatRecord) sq.InsertBuilder {
	query := builder().Insert(tableZakatRecords).
		Columns("provinsi", "tahun", "jumlah_pengumpulan", "jumlah_penyaluran")

	for _, r := range records {
		query = query.Values(r.Province, r.Year, r.Collected, r.Distributed)
	}

	return query.Suffix(`
on conflict (provinsi, tahun)
do update
set
	jumlah_pengumpulan = excluded.jumlah_pengumpulan,
	jumlah_penyaluran = excluded.jumlah_penyaluran,
	updated_at = now()`)
}

func dedupe(records []domain.ZakatRecord) []domain.ZakatRecord {
	type key struct {
		province string
		year     domain.Year
	}

	pos := make(map[key]int, len(records))
	out := make([]domain.ZakatRecord, 0, len(records))
	for _, r := range records {
		k := key{r.Province, r.Year}
		if i, ok := pos[k]; ok {
			out[i] = r
			continue
		}
		pos[k] = len(out)
		out = append(out, r)
	}
	return out
}
