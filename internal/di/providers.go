package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/vbonduro/gardenlog/internal/config"
	"github.com/vbonduro/gardenlog/internal/logging"
	"github.com/vbonduro/gardenlog/internal/service"
	"github.com/vbonduro/gardenlog/internal/store"
	"github.com/vbonduro/gardenlog/internal/validation"
	"github.com/vbonduro/gardenlog/internal/web"
)

// shutdownTimeout is the maximum time to wait for in-flight requests.
const shutdownTimeout = 15 * time.Second

// LoggerHandle owns the log file, if any.
type LoggerHandle struct {
	*slog.Logger
	cleanup func()
}

// Shutdown implements do.Shutdownable.
func (h *LoggerHandle) Shutdown() error {
	h.cleanup()
	return nil
}

func ProvideLogger(i do.Injector) (*LoggerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &LoggerHandle{Logger: logger, cleanup: cleanup}, nil
}

// ProvideSlogLogger provides the underlying slog.Logger.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	return do.MustInvoke[*LoggerHandle](i).Logger, nil
}

func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*slog.Logger](i)

	st, err := store.Open(store.Options{
		Backend:   cfg.StoreBackend,
		DBPath:    cfg.DBPath,
		BadgerDir: cfg.BadgerDir,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &StoreHandle{Store: st}, nil
}

func ProvideCultureService(i do.Injector) (*service.CultureService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	return service.NewCultureService(
		st.Cultures,
		st.Notes,
		st.Harvests,
		do.MustInvoke[*validation.Validator](i),
		do.MustInvoke[*slog.Logger](i),
	), nil
}

func ProvideJournalService(i do.Injector) (*service.JournalService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	return service.NewJournalService(
		st.Cultures,
		st.Notes,
		st.Harvests,
		do.MustInvoke[*validation.Validator](i),
		do.MustInvoke[*slog.Logger](i),
	), nil
}

func ProvideStatisticsService(i do.Injector) (*service.StatisticsService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	return service.NewStatisticsService(st.Cultures, st.Harvests, do.MustInvoke[*slog.Logger](i)), nil
}

// HTTPServerHandle wraps http.Server with Shutdownable. The server is not
// started until Run is called.
type HTTPServerHandle struct {
	*http.Server
	logger *slog.Logger
}

// Run serves until the server is shut down. It returns nil after a clean
// shutdown.
func (h *HTTPServerHandle) Run() error {
	h.logger.Info("starting server", "addr", h.Addr)
	if err := h.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*slog.Logger](i)

	services := &web.Services{
		Cultures:   do.MustInvoke[*service.CultureService](i),
		Journal:    do.MustInvoke[*service.JournalService](i),
		Statistics: do.MustInvoke[*service.StatisticsService](i),
	}
	server := web.NewServer(services, cfg.CORSOrigins, logger)

	return &HTTPServerHandle{Server: server.NewHTTPServer(cfg.ListenAddr), logger: logger}, nil
}
