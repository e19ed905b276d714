package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Boundary is one province shape from the boundary collaborator, already name-corrected.
type Boundary struct {
	Province   string
	Properties map[string]interface{}
	Geometry   json.RawMessage
}

type MapRow struct {
	Boundary Boundary
	// Record is nil when the province has no record for the selected year.
	Record *ZakatRecord
	Rating Rating
}

func (r MapRow) Status() RatingStatus {
	if r.Record == nil {
		return StatusNoData
	}
	return r.Rating.Status
}

type DistributionRow struct {
	Label            Label  `json:"label"`
	Name             string `json:"name"`
	Color            string `json:"color"`
	CollectedCount   int    `json:"jumlah_pengumpulan"`
	DistributedCount int    `json:"jumlah_penyaluran"`
}

type Distribution struct {
	Year       Year              `json:"tahun"`
	Rows       []DistributionRow `json:"rows"`
	Unrated    int               `json:"unrated"`
	OutOfRange int               `json:"out_of_range"`
}

// Total is the number of records the distribution was built from.
func (d Distribution) Total() int {
	total := d.Unrated + d.OutOfRange
	for _, r := range d.Rows {
		total += r.CollectedCount
	}
	return total
}

type TrendCategory string

const (
	TrendCollected   TrendCategory = ColumnCollected
	TrendDistributed TrendCategory = ColumnDistributed
)

type TrendPoint struct {
	Year     Year            `json:"tahun"`
	Category TrendCategory   `json:"jenis_zakat"`
	Amount   decimal.Decimal `json:"jumlah"`
}

type ProvinceTrendPoint struct {
	Province  string          `json:"provinsi"`
	Year      Year            `json:"tahun"`
	Collected decimal.Decimal `json:"jumlah_pengumpulan"`
}

type Summary struct {
	Year        Year
	Collected   decimal.Decimal
	Distributed decimal.Decimal
	// Ratio is nil when nothing was collected that year.
	Ratio *decimal.Decimal
}
