package loader

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/zakatkuy/amil/internal/domain"
)

// ReadXLSX reads the named sheet, or the first sheet when sheet is empty.
func ReadXLSX(r io.Reader, sheet string) ([]domain.ZakatRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenReader: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("GetRows, sheet-%s: %w", sheet, err)
	}

	return FromRows(rows)
}
