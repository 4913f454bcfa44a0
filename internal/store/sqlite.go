package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// SQLiteBackend keeps each collection in its own table of (id, body) rows,
// body holding the JSON document. Tables are created by the db package
// migrations.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (b *SQLiteBackend) Insert(ctx context.Context, collection, id string, doc []byte) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	result, err := b.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, body) VALUES (?, ?) ON CONFLICT(id) DO NOTHING
	`, collection), id, string(doc))
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, id)
	}

	return nil
}

func (b *SQLiteBackend) Find(ctx context.Context, collection string, filter Filter) ([][]byte, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	where, args, err := whereClause(filter)
	if err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT body FROM %s%s ORDER BY rowid ASC
	`, collection, where), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var docs [][]byte
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, []byte(body))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

func (b *SQLiteBackend) Update(ctx context.Context, collection string, filter Filter, patch []byte) (int, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	where, args, err := whereClause(filter)
	if err != nil {
		return 0, err
	}

	// json_patch implements RFC 7396 merge patch.
	result, err := b.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s SET body = json_patch(body, ?)%s
	`, collection, where), append([]any{string(patch)}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("failed to update documents: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rowsAffected), nil
}

func (b *SQLiteBackend) Remove(ctx context.Context, collection string, filter Filter) (int, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	where, args, err := whereClause(filter)
	if err != nil {
		return 0, err
	}

	result, err := b.db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s%s
	`, collection, where), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rowsAffected), nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// whereClause renders filter as a WHERE clause. The id field uses the
// primary key column; other fields are read from the JSON body.
func whereClause(filter Filter) (string, []any, error) {
	keys, err := filter.keys()
	if err != nil {
		return "", nil, err
	}
	if len(keys) == 0 {
		return "", nil, nil
	}

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		if k == "id" {
			conds = append(conds, "id = ?")
			args = append(args, filter[k])
			continue
		}
		// k is a checked identifier, so the path can be inlined, which
		// lets SQLite use the json_extract expression indexes.
		conds = append(conds, fmt.Sprintf("json_extract(body, '$.%s') = ?", k))
		args = append(args, filter[k])
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
