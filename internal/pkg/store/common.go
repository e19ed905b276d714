package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

const tableZakatRecords = "zakat_records"

const schema = `
create table if not exists zakat_records (
	id                 bigserial primary key,
	provinsi           text not null,
	tahun              integer not null,
	jumlah_pengumpulan numeric not null check (jumlah_pengumpulan >= 0),
	jumlah_penyaluran  numeric not null check (jumlah_penyaluran >= 0),
	created_at         timestamptz not null default now(),
	updated_at         timestamptz not null default now(),
	unique (provinsi, tahun)
)`

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel SQL builder with Postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
