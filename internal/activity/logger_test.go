package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinisys/labreports/internal/store"
)

func TestRecordUsesTemplate(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	l := NewLogger(m, "reception", zerolog.Nop())
	l.now = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }

	require.NoError(t, l.Record(ctx, "cbc_add", ""))

	docs, err := m.List(ctx, Collection)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "reception", docs[0].Data["firstname"])
	assert.Equal(t, "Added new CBC record", docs[0].Data["report"])
}

func TestRecordCustomReportWins(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	l := NewLogger(m, "reception", zerolog.Nop())

	require.NoError(t, l.Record(ctx, "bulk_import", "Imported 5 of 6 CBC reports"))

	docs, err := m.List(ctx, Collection)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Imported 5 of 6 CBC reports", docs[0].Data["report"])
}

func TestRecordUnknownTypeGetsGenericNarrative(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	l := NewLogger(m, "reception", zerolog.Nop())

	require.NoError(t, l.Record(ctx, "mystery_op", ""))

	docs, err := m.List(ctx, Collection)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Data["report"], "mystery_op")
}

type failingStore struct {
	store.Store
}

func (f *failingStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	return "", errors.New("store unavailable")
}

func TestRecordSurfacesStoreError(t *testing.T) {
	l := NewLogger(&failingStore{}, "reception", zerolog.Nop())
	err := l.Record(context.Background(), "cbc_add", "")
	assert.Error(t, err)
}
