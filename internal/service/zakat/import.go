package zakat

import (
	"context"
	"fmt"

	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/logger"
)

type RecordSink interface {
	EnsureSchema(ctx context.Context) error
	UpsertRecords(ctx context.Context, records []domain.ZakatRecord) (int64, error)
}

// Import copies every record of src into sink. Out-of-range rows are imported and logged.
func Import(ctx context.Context, src RecordSource, sink RecordSink) (int64, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("src.Load: %w", err)
	}

	for _, r := range domain.Rate(records) {
		if err := r.Rating.Err(); err != nil {
			logger.Warnf(ctx, "import: province %s, year %d: %s", r.Province, r.Year, err.Error())
		}
	}

	if err = sink.EnsureSchema(ctx); err != nil {
		return 0, fmt.Errorf("sink.EnsureSchema: %w", err)
	}

	n, err := sink.UpsertRecords(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("sink.UpsertRecords: %w", err)
	}

	logger.Infof(ctx, "imported %d of %d records", n, len(records))
	return n, nil
}
