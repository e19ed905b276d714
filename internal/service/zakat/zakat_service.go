package zakat

import (
	"context"
	"fmt"

	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/logger"
	"github.com/zakatkuy/amil/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

type RecordSource interface {
	Load(ctx context.Context) ([]domain.ZakatRecord, error)
}

// RecordQuerier is a RecordSource that can narrow the records on its side.
// Projections still filter, so a querier only saves work.
type RecordQuerier interface {
	ListRecords(ctx context.Context, opts store.ListRecordsOpts) ([]domain.ZakatRecord, error)
}

type BoundarySource interface {
	Fetch(ctx context.Context) ([]domain.Boundary, error)
}

// Service recomputes every view from freshly loaded records on each call.
type Service struct {
	records    RecordSource
	boundaries BoundarySource
}

func NewZakatService(records RecordSource, boundaries BoundarySource) *Service {
	return &Service{records: records, boundaries: boundaries}
}

func (s *Service) rated(ctx context.Context, opts store.ListRecordsOpts) ([]domain.RatedRecord, error) {
	var (
		records []domain.ZakatRecord
		err     error
	)
	if q, ok := s.records.(RecordQuerier); ok {
		records, err = q.ListRecords(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("records.ListRecords: %w", err)
		}
	} else {
		records, err = s.records.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("records.Load: %w", err)
		}
	}

	rated := domain.Rate(records)
	for _, r := range rated {
		if err := r.Rating.Err(); err != nil {
			logger.Warnf(ctx, "province %s, year %d: %s", r.Province, r.Year, err.Error())
		}
	}

	return rated, nil
}

func (s *Service) Years(ctx context.Context) ([]domain.Year, error) {
	rated, err := s.rated(ctx, store.ListRecordsOpts{})
	if err != nil {
		return nil, err
	}
	return Years(rated), nil
}

func (s *Service) Provinces(ctx context.Context) ([]string, error) {
	rated, err := s.rated(ctx, store.ListRecordsOpts{})
	if err != nil {
		return nil, err
	}
	return Provinces(rated), nil
}

func (s *Service) Summary(ctx context.Context, year domain.Year) (domain.Summary, error) {
	rated, err := s.rated(ctx, yearOpts(year))
	if err != nil {
		return domain.Summary{}, err
	}
	return SummaryView(rated, year), nil
}

// MapView loads records and boundary shapes concurrently, then joins them.
func (s *Service) MapView(ctx context.Context, year domain.Year) ([]domain.MapRow, error) {
	var (
		rated      []domain.RatedRecord
		boundaries []domain.Boundary
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		rated, err = s.rated(egCtx, yearOpts(year))
		return err
	})
	eg.Go(func() error {
		var err error
		boundaries, err = s.boundaries.Fetch(egCtx)
		if err != nil {
			return fmt.Errorf("boundaries.Fetch: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		logger.Errorf(ctx, "map view, year %d: %s", year, err.Error())
		return nil, err
	}

	return MapView(boundaries, rated, year), nil
}

func (s *Service) Distribution(ctx context.Context, year domain.Year) (domain.Distribution, error) {
	rated, err := s.rated(ctx, yearOpts(year))
	if err != nil {
		return domain.Distribution{}, err
	}
	return DistributionView(rated, year), nil
}

func (s *Service) Trend(ctx context.Context, selection []string) ([]domain.TrendPoint, error) {
	if len(selection) == 0 {
		return []domain.TrendPoint{}, nil
	}

	rated, err := s.rated(ctx, store.ListRecordsOpts{Provinces: selection})
	if err != nil {
		return nil, err
	}
	return TrendView(rated, selection), nil
}

func (s *Service) ProvinceTrend(ctx context.Context) ([]domain.ProvinceTrendPoint, error) {
	rated, err := s.rated(ctx, store.ListRecordsOpts{})
	if err != nil {
		return nil, err
	}
	return ProvinceTrendView(rated), nil
}

func yearOpts(year domain.Year) store.ListRecordsOpts {
	return store.ListRecordsOpts{Years: []domain.Year{year}}
}
