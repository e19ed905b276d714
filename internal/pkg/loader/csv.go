package loader

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/zakatkuy/amil/internal/domain"
)

func ReadCSV(r io.Reader) ([]domain.ZakatRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.ReadAll: %w", err)
	}

	return FromRows(rows)
}
