package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// protectedFields can never be changed by Update.
var protectedFields = []string{"id", "_id", "createdAt"}

// Collection provides typed access to one collection of a Backend.
type Collection[T any] struct {
	backend Backend
	name    string
}

func NewCollection[T any](b Backend, name string) *Collection[T] {
	return &Collection[T]{backend: b, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

// Insert stores doc under id. Returns ErrDuplicateKey if id is taken.
func (c *Collection[T]) Insert(ctx context.Context, id string, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", c.name, err)
	}
	if err := c.backend.Insert(ctx, c.name, id, data); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.name, err)
	}
	return nil
}

// Find returns every document matching filter.
func (c *Collection[T]) Find(ctx context.Context, filter Filter) ([]*T, error) {
	raw, err := c.backend.Find(ctx, c.name, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", c.name, err)
	}

	docs := make([]*T, 0, len(raw))
	for _, data := range raw {
		doc := new(T)
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", c.name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Get returns the document with the given id, or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	docs, err := c.Find(ctx, ByID(id))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0], nil
}

// Update merges patch into every document matching filter and returns the
// number of documents matched. Identity fields in patch are ignored, and a
// patch with nothing left to change is a no-op.
func (c *Collection[T]) Update(ctx context.Context, filter Filter, patch map[string]any) (int, error) {
	clean := make(map[string]any, len(patch))
	for k, v := range patch {
		clean[k] = v
	}
	for _, k := range protectedFields {
		delete(clean, k)
	}
	if len(clean) == 0 {
		return 0, nil
	}

	data, err := json.Marshal(clean)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal %s patch: %w", c.name, err)
	}
	n, err := c.backend.Update(ctx, c.name, filter, data)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", c.name, err)
	}
	return n, nil
}

// RemoveMany deletes every document matching filter and returns how many
// were removed.
func (c *Collection[T]) RemoveMany(ctx context.Context, filter Filter) (int, error) {
	n, err := c.backend.Remove(ctx, c.name, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to remove from %s: %w", c.name, err)
	}
	return n, nil
}
