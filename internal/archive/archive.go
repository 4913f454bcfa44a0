// Package archive moves collections in and out of the store as NeDB data
// files, one line-delimited JSON file per collection. Files written by Export
// can be loaded by NeDB and by Import.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/gardenlog/internal/filestore"
	"github.com/vbonduro/gardenlog/internal/store"
)

// FileName returns the data file name for a collection.
func FileName(collection string) string {
	return collection + ".db"
}

// Result reports what happened to one collection.
type Result struct {
	Collection string `json:"collection"`
	Written    int    `json:"written,omitempty"`
	Imported   int    `json:"imported,omitempty"`
	Skipped    int    `json:"skipped,omitempty"`
	Missing    bool   `json:"missing,omitempty"`
}

type Archiver struct {
	store  *store.Store
	files  filestore.FileStore
	logger *slog.Logger
}

func New(st *store.Store, files filestore.FileStore, logger *slog.Logger) *Archiver {
	return &Archiver{store: st, files: files, logger: logger}
}

// Export writes every collection to its data file, replacing earlier exports.
func (a *Archiver) Export(ctx context.Context) ([]Result, error) {
	a.logger.Info("export started")

	results := make([]Result, 0, 3)
	for _, run := range []func(context.Context) (Result, error){
		func(ctx context.Context) (Result, error) { return exportCollection(ctx, a.files, a.store.Cultures) },
		func(ctx context.Context) (Result, error) { return exportCollection(ctx, a.files, a.store.Notes) },
		func(ctx context.Context) (Result, error) { return exportCollection(ctx, a.files, a.store.Harvests) },
	} {
		r, err := run(ctx)
		if err != nil {
			return results, err
		}
		a.logger.Debug("collection exported", "collection", r.Collection, "documents", r.Written)
		results = append(results, r)
	}

	a.logger.Info("export complete")
	return results, nil
}

// Import loads each collection's data file. Documents whose id is already
// stored are skipped, so importing the same files twice is harmless. A
// missing data file is reported and skipped.
func (a *Archiver) Import(ctx context.Context) ([]Result, error) {
	a.logger.Info("import started")

	results := make([]Result, 0, 3)
	for _, run := range []func(context.Context) (Result, error){
		func(ctx context.Context) (Result, error) { return importCollection(ctx, a.files, a.store.Cultures) },
		func(ctx context.Context) (Result, error) { return importCollection(ctx, a.files, a.store.Notes) },
		func(ctx context.Context) (Result, error) { return importCollection(ctx, a.files, a.store.Harvests) },
	} {
		r, err := run(ctx)
		if err != nil {
			return results, err
		}
		if r.Missing {
			a.logger.Warn("data file not found", "collection", r.Collection)
		} else {
			a.logger.Debug("collection imported", "collection", r.Collection, "imported", r.Imported, "skipped", r.Skipped)
		}
		results = append(results, r)
	}

	a.logger.Info("import complete")
	return results, nil
}

func exportCollection[T any](ctx context.Context, files filestore.FileStore, coll *store.Collection[T]) (Result, error) {
	result := Result{Collection: coll.Name()}

	docs, err := coll.Find(ctx, nil)
	if err != nil {
		return result, err
	}

	var buf bytes.Buffer
	for _, doc := range docs {
		line, err := encodeLine(doc)
		if err != nil {
			return result, fmt.Errorf("failed to encode %s document: %w", coll.Name(), err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if err := files.Save(ctx, FileName(coll.Name()), &buf); err != nil {
		return result, fmt.Errorf("failed to save %s: %w", FileName(coll.Name()), err)
	}
	result.Written = len(docs)
	return result, nil
}

// encodeLine renders doc as a NeDB line: _id mirrors id and createdAt uses
// the {"$$date": ms} form.
func encodeLine(doc any) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if id, ok := m["id"].(string); ok {
		m["_id"] = id
	}
	if s, ok := m["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			m["createdAt"] = nedbDate{Date: t.UnixMilli()}
		}
	}
	return json.Marshal(m)
}

func importCollection[T any](ctx context.Context, files filestore.FileStore, coll *store.Collection[T]) (Result, error) {
	result := Result{Collection: coll.Name()}

	rc, err := files.Open(ctx, FileName(coll.Name()))
	if errors.Is(err, filestore.ErrNotFound) {
		result.Missing = true
		return result, nil
	}
	if err != nil {
		return result, err
	}
	defer rc.Close()

	docs, err := ReadNeDB(rc)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", FileName(coll.Name()), err)
	}

	for _, raw := range docs {
		id, _ := raw["id"].(string)
		if id == "" {
			id, _ = raw["_id"].(string)
			raw["id"] = id
		}

		data, err := json.Marshal(raw)
		if err != nil {
			return result, fmt.Errorf("failed to encode %s document %s: %w", coll.Name(), id, err)
		}
		doc := new(T)
		if err := json.Unmarshal(data, doc); err != nil {
			result.Skipped++
			continue
		}

		err = coll.Insert(ctx, id, doc)
		if errors.Is(err, store.ErrDuplicateKey) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, err
		}
		result.Imported++
	}
	return result, nil
}
