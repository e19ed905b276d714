package zakat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakatkuy/amil/internal/domain"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

type memorySink struct {
	schema    bool
	records   []domain.ZakatRecord
	upsertErr error
}

func (m *memorySink) EnsureSchema(context.Context) error {
	m.schema = true
	return nil
}

func (m *memorySink) UpsertRecords(_ context.Context, records []domain.ZakatRecord) (int64, error) {
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	m.records = append(m.records, records...)
	return int64(len(records)), nil
}

func TestImport(t *testing.T) {
	src := &staticRecords{records: []domain.ZakatRecord{
		rec("ACEH", 2023, 10, 9),
		rec("BALI", 2023, 10, 90),
	}}
	sink := &memorySink{}

	n, err := Import(context.Background(), src, sink)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.True(t, sink.schema)
	assert.Len(t, sink.records, 2, "out-of-range rows are still imported")
}

func TestImport_Errors(t *testing.T) {
	_, err := Import(context.Background(), &staticRecords{err: constants.ErrSchema}, &memorySink{})
	assert.True(t, errors.Is(err, constants.ErrSchema))

	sink := &memorySink{upsertErr: errors.New("boom")}
	_, err = Import(context.Background(), &staticRecords{records: []domain.ZakatRecord{rec("ACEH", 2023, 1, 1)}}, sink)
	assert.Error(t, err)
}
