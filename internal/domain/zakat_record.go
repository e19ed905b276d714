package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Year = int

const (
	ColumnProvince    = "provinsi"
	ColumnYear        = "tahun"
	ColumnCollected   = "jumlah_pengumpulan"
	ColumnDistributed = "jumlah_penyaluran"
)

// RequiredColumns lists the input columns every record source must provide.
var RequiredColumns = []string{ColumnProvince, ColumnYear, ColumnCollected, ColumnDistributed}

// ZakatRecord is one province-year observation. Amounts are in rupiah and never negative.
type ZakatRecord struct {
	Province    string          `db:"provinsi" json:"provinsi"`
	Year        Year            `db:"tahun" json:"tahun"`
	Collected   decimal.Decimal `db:"jumlah_pengumpulan" json:"jumlah_pengumpulan"`
	Distributed decimal.Decimal `db:"jumlah_penyaluran" json:"jumlah_penyaluran"`
}

// StoredRecord is a ZakatRecord as persisted in the records table.
type StoredRecord struct {
	ZakatRecord
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type RatedRecord struct {
	ZakatRecord
	Rating Rating
}

func Rate(records []ZakatRecord) []RatedRecord {
	rated := make([]RatedRecord, 0, len(records))
	for _, r := range records {
		rated = append(rated, RatedRecord{ZakatRecord: r, Rating: Classify(r)})
	}
	return rated
}
