package store

import (
	"fmt"
	"log/slog"

	"github.com/vbonduro/gardenlog/internal/db"
	"github.com/vbonduro/gardenlog/internal/domain"
)

// Backend kinds accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Store holds the three garden collections over one backend.
type Store struct {
	backend Backend
	logger  *slog.Logger

	Cultures *Collection[domain.Culture]
	Notes    *Collection[domain.Note]
	Harvests *Collection[domain.Harvest]
}

func New(b Backend, logger *slog.Logger) *Store {
	return &Store{
		backend:  b,
		logger:   logger,
		Cultures: NewCollection[domain.Culture](b, Cultures),
		Notes:    NewCollection[domain.Note](b, Notes),
		Harvests: NewCollection[domain.Harvest](b, Harvests),
	}
}

// Options selects and locates the storage backend.
type Options struct {
	Backend   string
	DBPath    string
	BadgerDir string
}

// Open creates the configured backend, creating its files on first use.
func Open(opts Options, logger *slog.Logger) (*Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		database, err := db.Open(opts.DBPath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened", "path", opts.DBPath)
		return New(NewSQLiteBackend(database), logger), nil
	case BackendBadger:
		b, err := OpenBadger(opts.BadgerDir)
		if err != nil {
			return nil, err
		}
		logger.Info("badger store opened", "path", opts.BadgerDir)
		return New(b, logger), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// Close flushes and closes the backend.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing store")
	}
	return s.backend.Close()
}
