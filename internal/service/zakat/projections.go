package zakat

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/zakatkuy/amil/internal/domain"
)

// MapView joins every boundary with its province's record for the year.
// Provinces without a record keep a nil Record and report StatusNoData.
func MapView(boundaries []domain.Boundary, rated []domain.RatedRecord, year domain.Year) []domain.MapRow {
	byProvince := make(map[string]domain.RatedRecord)
	for _, r := range rated {
		if r.Year != year {
			continue
		}
		if _, ok := byProvince[r.Province]; !ok {
			byProvince[r.Province] = r
		}
	}

	rows := make([]domain.MapRow, 0, len(boundaries))
	for _, b := range boundaries {
		row := domain.MapRow{Boundary: b, Rating: domain.Rating{Status: domain.StatusNoData}}
		if r, ok := byProvince[b.Province]; ok {
			record := r.ZakatRecord
			row.Record = &record
			row.Rating = r.Rating
		}
		rows = append(rows, row)
	}

	return rows
}

// DistributionView counts the year's records per effectiveness label, in display order.
func DistributionView(rated []domain.RatedRecord, year domain.Year) domain.Distribution {
	counts := make(map[domain.Label]int, len(domain.DisplayOrder))
	dist := domain.Distribution{Year: year}

	for _, r := range rated {
		if r.Year != year {
			continue
		}
		switch r.Rating.Status {
		case domain.StatusRated:
			label, _ := r.Rating.Label()
			counts[label]++
		case domain.StatusOutOfRange:
			dist.OutOfRange++
		default:
			dist.Unrated++
		}
	}

	dist.Rows = make([]domain.DistributionRow, 0, len(domain.DisplayOrder))
	for _, l := range domain.DisplayOrder {
		dist.Rows = append(dist.Rows, domain.DistributionRow{
			Label:            l,
			Name:             l.String(),
			Color:            l.Color(),
			CollectedCount:   counts[l],
			DistributedCount: counts[l],
		})
	}

	return dist
}

type yearTotals struct {
	collected   decimal.Decimal
	distributed decimal.Decimal
}

// TrendView sums collected and distributed per year over the selected provinces and
// returns long-form points: every collected point by year, then every distributed point.
// A selection containing domain.AllProvinces is not filtered.
func TrendView(rated []domain.RatedRecord, selection []string) []domain.TrendPoint {
	all := domain.IsAllProvinces(selection)
	selected := make(map[string]struct{}, len(selection))
	for _, p := range selection {
		selected[p] = struct{}{}
	}

	totals := make(map[domain.Year]*yearTotals)
	for _, r := range rated {
		if !all {
			if _, ok := selected[r.Province]; !ok {
				continue
			}
		}
		t, ok := totals[r.Year]
		if !ok {
			t = &yearTotals{}
			totals[r.Year] = t
		}
		t.collected = t.collected.Add(r.Collected)
		t.distributed = t.distributed.Add(r.Distributed)
	}

	years := make([]domain.Year, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	points := make([]domain.TrendPoint, 0, 2*len(years))
	for _, y := range years {
		points = append(points, domain.TrendPoint{Year: y, Category: domain.TrendCollected, Amount: totals[y].collected})
	}
	for _, y := range years {
		points = append(points, domain.TrendPoint{Year: y, Category: domain.TrendDistributed, Amount: totals[y].distributed})
	}

	return points
}

// ProvinceTrendView sums collected per province and year over all records.
func ProvinceTrendView(rated []domain.RatedRecord) []domain.ProvinceTrendPoint {
	type key struct {
		province string
		year     domain.Year
	}

	sums := make(map[key]decimal.Decimal)
	for _, r := range rated {
		k := key{r.Province, r.Year}
		sums[k] = sums[k].Add(r.Collected)
	}

	points := make([]domain.ProvinceTrendPoint, 0, len(sums))
	for k, v := range sums {
		points = append(points, domain.ProvinceTrendPoint{Province: k.province, Year: k.year, Collected: v})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Province != points[j].Province {
			return points[i].Province < points[j].Province
		}
		return points[i].Year < points[j].Year
	})

	return points
}

// SummaryView totals the year. Ratio stays nil when nothing was collected.
func SummaryView(rated []domain.RatedRecord, year domain.Year) domain.Summary {
	s := domain.Summary{Year: year}
	for _, r := range rated {
		if r.Year != year {
			continue
		}
		s.Collected = s.Collected.Add(r.Collected)
		s.Distributed = s.Distributed.Add(r.Distributed)
	}

	if !s.Collected.IsZero() {
		ratio := s.Distributed.Div(s.Collected)
		s.Ratio = &ratio
	}

	return s
}

func Years(rated []domain.RatedRecord) []domain.Year {
	seen := make(map[domain.Year]struct{})
	years := make([]domain.Year, 0)
	for _, r := range rated {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Ints(years)
	return years
}

// Provinces lists the picker options: the wildcard first, then provinces sorted by name.
func Provinces(rated []domain.RatedRecord) []string {
	seen := make(map[string]struct{})
	provinces := make([]string, 0)
	for _, r := range rated {
		if _, ok := seen[r.Province]; ok {
			continue
		}
		seen[r.Province] = struct{}{}
		provinces = append(provinces, r.Province)
	}
	sort.Strings(provinces)
	return append([]string{domain.AllProvinces}, provinces...)
}
