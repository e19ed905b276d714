package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

// FileSource reads records from a CSV or XLSX file on every Load.
type FileSource struct {
	path  string
	sheet string
}

func NewFileSource(path, sheet string) *FileSource {
	return &FileSource{path: path, sheet: sheet}
}

func (s *FileSource) Load(_ context.Context) ([]domain.ZakatRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open, path-%s: %w", s.path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".xlsx", ".xlsm":
		records, err := ReadXLSX(f, s.sheet)
		if err != nil {
			return nil, fmt.Errorf("ReadXLSX, path-%s: %w", s.path, err)
		}
		return records, nil
	default:
		records, err := ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("ReadCSV, path-%s: %w", s.path, err)
		}
		return records, nil
	}
}

// FromRows turns a header row plus data rows into records, keeping row order.
func FromRows(rows [][]string) ([]domain.ZakatRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", constants.ErrSchema)
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.ZakatRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		// header is line 1
		record, err := parseRow(row, index, i+2)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", constants.ErrSchema, col)
		}
	}

	return index, nil
}

func parseRow(row []string, index map[string]int, line int) (domain.ZakatRecord, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	yearStr := cell(domain.ColumnYear)
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return domain.ZakatRecord{}, fmt.Errorf("%w: line %d, column %s: %q", constants.ErrMalformedValue, line, domain.ColumnYear, yearStr)
	}

	collected, err := parseAmount(cell(domain.ColumnCollected))
	if err != nil {
		return domain.ZakatRecord{}, fmt.Errorf("%w: line %d, column %s: %s", constants.ErrMalformedValue, line, domain.ColumnCollected, err.Error())
	}

	distributed, err := parseAmount(cell(domain.ColumnDistributed))
	if err != nil {
		return domain.ZakatRecord{}, fmt.Errorf("%w: line %d, column %s: %s", constants.ErrMalformedValue, line, domain.ColumnDistributed, err.Error())
	}

	return domain.ZakatRecord{
		Province:    cell(domain.ColumnProvince),
		Year:        year,
		Collected:   collected,
		Distributed: distributed,
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a number: %q", s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount: %q", s)
	}

	return d, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
