package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/gardenlog/internal/config"
	"github.com/vbonduro/gardenlog/internal/domain"
	"github.com/vbonduro/gardenlog/internal/service"
	"github.com/vbonduro/gardenlog/internal/store"
)

func testConfig(t *testing.T, backend string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		ListenAddr:   "127.0.0.1:0",
		StoreBackend: backend,
		DBPath:       filepath.Join(dir, "garden.db"),
		BadgerDir:    filepath.Join(dir, "badger"),
		LogLevel:     "error",
	}
}

func TestContainerWiresServices(t *testing.T) {
	for _, backend := range []string{store.BackendSQLite, store.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			injector := NewContainer(testConfig(t, backend))
			ctx := context.Background()

			cultures := do.MustInvoke[*service.CultureService](injector)
			c, err := cultures.CreateCulture(ctx, &domain.CultureFields{Name: domain.String("Pepper")})
			require.NoError(t, err)

			journal := do.MustInvoke[*service.JournalService](injector)
			_, _, err = journal.RecordHarvest(ctx, c.ID, &domain.HarvestFields{Count: domain.Qty(2)})
			require.NoError(t, err)

			handle := do.MustInvoke[*HTTPServerHandle](injector)
			rec := httptest.NewRecorder()
			handle.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cultures/"+c.ID, nil))
			assert.Equal(t, http.StatusOK, rec.Code)

			_ = injector.Shutdown()
		})
	}
}

func TestContainerReportsBadBackend(t *testing.T) {
	injector := NewContainer(testConfig(t, "mongo"))

	_, err := do.Invoke[*StoreHandle](injector)
	assert.Error(t, err)
}
