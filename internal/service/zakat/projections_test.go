package zakat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakatkuy/amil/internal/domain"
)

func rec(province string, year int, collected, distributed int64) domain.ZakatRecord {
	return domain.ZakatRecord{
		Province:    province,
		Year:        year,
		Collected:   decimal.NewFromInt(collected),
		Distributed: decimal.NewFromInt(distributed),
	}
}

func fixture() []domain.RatedRecord {
	return domain.Rate([]domain.ZakatRecord{
		rec("ACEH", 2022, 80000000, 60000000),
		rec("BALI", 2022, 10000000, 1000000),
		rec("ACEH", 2023, 100000000, 85000000),
		rec("BALI", 2023, 20000000, 19000000),
		rec("RIAU", 2023, 0, 500),
		rec("JAMBI", 2023, 100, 900),
		rec("JAWA BARAT", 2023, 50000000, 10000000),
	})
}

func boundaries(names ...string) []domain.Boundary {
	out := make([]domain.Boundary, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Boundary{Province: n, Properties: map[string]interface{}{"Propinsi": n}})
	}
	return out
}

func sumAmounts(points []domain.TrendPoint) map[domain.TrendCategory]map[int]decimal.Decimal {
	out := map[domain.TrendCategory]map[int]decimal.Decimal{
		domain.TrendCollected:   {},
		domain.TrendDistributed: {},
	}
	for _, p := range points {
		out[p.Category][p.Year] = out[p.Category][p.Year].Add(p.Amount)
	}
	return out
}

func TestMapView(t *testing.T) {
	rows := MapView(boundaries("ACEH", "RIAU", "PAPUA", "JAMBI"), fixture(), 2023)
	require.Len(t, rows, 4)

	aceh := rows[0]
	require.NotNil(t, aceh.Record)
	assert.Equal(t, domain.StatusRated, aceh.Status())
	code, ok := aceh.Rating.Code()
	require.True(t, ok)
	assert.Equal(t, 4, code)

	riau := rows[1]
	require.NotNil(t, riau.Record)
	assert.Equal(t, domain.StatusUnrated, riau.Status())

	papua := rows[2]
	assert.Nil(t, papua.Record, "province without a record carries no zakat fields")
	assert.Equal(t, domain.StatusNoData, papua.Status())
	_, ok = papua.Rating.Code()
	assert.False(t, ok, "no data must not be coloured as NOT_EFFECTIVE")
	assert.Equal(t, domain.NoDataColor, papua.Rating.Color())

	assert.Equal(t, domain.StatusOutOfRange, rows[3].Status())
}

func TestMapView_OtherYearIsNoData(t *testing.T) {
	rows := MapView(boundaries("JAWA BARAT"), fixture(), 2022)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Record)
	assert.Equal(t, domain.StatusNoData, rows[0].Status())
}

func TestDistributionView(t *testing.T) {
	dist := DistributionView(fixture(), 2023)

	require.Len(t, dist.Rows, 5)
	assert.Equal(t, domain.VeryEffective, dist.Rows[0].Label)
	assert.Equal(t, domain.NotEffective, dist.Rows[4].Label)

	counts := map[domain.Label]int{}
	for _, r := range dist.Rows {
		assert.Equal(t, r.CollectedCount, r.DistributedCount)
		counts[r.Label] = r.CollectedCount
	}
	// BALI 0.95, ACEH 0.85, JAWA BARAT 0.2
	assert.Equal(t, 1, counts[domain.VeryEffective])
	assert.Equal(t, 1, counts[domain.Effective])
	assert.Equal(t, 1, counts[domain.NotEffective])
	assert.Equal(t, 0, counts[domain.FairlyEffective])
	assert.Equal(t, 1, dist.Unrated)
	assert.Equal(t, 1, dist.OutOfRange)

	assert.Equal(t, 5, dist.Total(), "all of the year's records are accounted for")
}

func TestDistributionView_SumsToRecordCount(t *testing.T) {
	rated := fixture()
	for _, year := range Years(rated) {
		n := 0
		for _, r := range rated {
			if r.Year == year {
				n++
			}
		}
		assert.Equal(t, n, DistributionView(rated, year).Total(), "year %d", year)
	}
}

func TestTrendView_LongFormOrder(t *testing.T) {
	points := TrendView(fixture(), []string{domain.AllProvinces})
	require.Len(t, points, 4)

	assert.Equal(t, 2022, points[0].Year)
	assert.Equal(t, domain.TrendCollected, points[0].Category)
	assert.Equal(t, 2023, points[1].Year)
	assert.Equal(t, domain.TrendCollected, points[1].Category)
	assert.Equal(t, domain.TrendDistributed, points[2].Category)
	assert.Equal(t, 2022, points[2].Year)

	assert.True(t, points[0].Amount.Equal(decimal.NewFromInt(90000000)))
	assert.True(t, points[1].Amount.Equal(decimal.NewFromInt(170000100)))
	assert.True(t, points[3].Amount.Equal(decimal.NewFromInt(114001400)))
}

func TestTrendView_WildcardEqualsSumOfProvinces(t *testing.T) {
	rated := fixture()
	all := sumAmounts(TrendView(rated, []string{domain.AllProvinces}))

	perProvince := map[domain.TrendCategory]map[int]decimal.Decimal{
		domain.TrendCollected:   {},
		domain.TrendDistributed: {},
	}
	for _, p := range Provinces(rated)[1:] {
		for cat, years := range sumAmounts(TrendView(rated, []string{p})) {
			for y, v := range years {
				perProvince[cat][y] = perProvince[cat][y].Add(v)
			}
		}
	}

	for cat, years := range all {
		require.Len(t, perProvince[cat], len(years))
		for y, v := range years {
			assert.True(t, v.Equal(perProvince[cat][y]), "%s %d: %s != %s", cat, y, v, perProvince[cat][y])
		}
	}
}

func TestTrendView_Selection(t *testing.T) {
	points := TrendView(fixture(), []string{"BALI"})
	require.Len(t, points, 4)
	assert.True(t, points[1].Amount.Equal(decimal.NewFromInt(20000000)))

	assert.Empty(t, TrendView(fixture(), nil))
	assert.Empty(t, TrendView(fixture(), []string{"NOWHERE"}))
}

func TestProvinceTrendView(t *testing.T) {
	points := ProvinceTrendView(fixture())
	require.Len(t, points, 7)

	assert.Equal(t, "ACEH", points[0].Province)
	assert.Equal(t, 2022, points[0].Year)
	assert.Equal(t, "ACEH", points[1].Province)
	assert.Equal(t, 2023, points[1].Year)
	assert.Equal(t, "RIAU", points[6].Province)
}

func TestProvinceTrendView_SumsDuplicates(t *testing.T) {
	rated := domain.Rate([]domain.ZakatRecord{rec("ACEH", 2023, 10, 1), rec("ACEH", 2023, 5, 1)})
	points := ProvinceTrendView(rated)
	require.Len(t, points, 1)
	assert.True(t, points[0].Collected.Equal(decimal.NewFromInt(15)))
}

func TestSummaryView(t *testing.T) {
	s := SummaryView(fixture(), 2022)
	assert.True(t, s.Collected.Equal(decimal.NewFromInt(90000000)))
	assert.True(t, s.Distributed.Equal(decimal.NewFromInt(61000000)))
	require.NotNil(t, s.Ratio)

	empty := SummaryView(fixture(), 1999)
	assert.Nil(t, empty.Ratio, "no collection means no ratio, not zero")
}

func TestYearsAndProvinces(t *testing.T) {
	rated := fixture()
	assert.Equal(t, []int{2022, 2023}, Years(rated))
	assert.Equal(t, []string{domain.AllProvinces, "ACEH", "BALI", "JAMBI", "JAWA BARAT", "RIAU"}, Provinces(rated))
}
