package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vbonduro/gardenlog/internal/db"
	"github.com/vbonduro/gardenlog/internal/store"
	"github.com/vbonduro/gardenlog/internal/validation"
)

var errInjected = errors.New("injected failure")

// failing wraps a repository and fails the selected operations.
type failing[T any] struct {
	repository[T]
	failInsert bool
	failRemove bool
	removes    int
}

func (f *failing[T]) Insert(ctx context.Context, id string, doc *T) error {
	if f.failInsert {
		return errInjected
	}
	return f.repository.Insert(ctx, id, doc)
}

func (f *failing[T]) RemoveMany(ctx context.Context, filter store.Filter) (int, error) {
	f.removes++
	if f.failRemove {
		return 0, errInjected
	}
	return f.repository.RemoveMany(ctx, filter)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	st := store.New(store.NewSQLiteBackend(d), testLogger())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

type testServices struct {
	store    *store.Store
	cultures *CultureService
	journal  *JournalService
	stats    *StatisticsService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	st := newTestStore(t)
	v := validation.New()
	logger := testLogger()
	return &testServices{
		store:    st,
		cultures: NewCultureService(st.Cultures, st.Notes, st.Harvests, v, logger),
		journal:  NewJournalService(st.Cultures, st.Notes, st.Harvests, v, logger),
		stats:    NewStatisticsService(st.Cultures, st.Harvests, logger),
	}
}
