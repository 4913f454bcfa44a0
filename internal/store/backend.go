package store

import (
	"context"
	"fmt"
	"regexp"
	"sort"
)

// Collection names.
const (
	Cultures = "cultures"
	Notes    = "notes"
	Harvests = "harvests"
)

var knownCollections = map[string]bool{
	Cultures: true,
	Notes:    true,
	Harvests: true,
}

func checkCollection(name string) error {
	if !knownCollections[name] {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return nil
}

// Backend stores JSON documents in named collections keyed by id.
//
// Find, Update and Remove select documents with an equality Filter; an empty
// filter selects every document. Update merges patch into each selected
// document (RFC 7396: supplied keys overwrite, absent keys are kept) and
// reports how many matched. Neither Update nor Remove treats zero matches as
// an error. No operation spans more than one collection.
type Backend interface {
	Insert(ctx context.Context, collection, id string, doc []byte) error
	Find(ctx context.Context, collection string, filter Filter) ([][]byte, error)
	Update(ctx context.Context, collection string, filter Filter, patch []byte) (int, error)
	Remove(ctx context.Context, collection string, filter Filter) (int, error)
	Close() error
}

// Filter matches documents whose top-level string field equals the value
// for every entry.
type Filter map[string]string

// ByID selects the document with the given id.
func ByID(id string) Filter { return Filter{"id": id} }

// ByCulture selects documents belonging to a culture.
func ByCulture(cultureID string) Filter { return Filter{"cultureId": cultureID} }

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// keys returns the filter's field names in a stable order, rejecting names
// that are not plain identifiers.
func (f Filter) keys() ([]string, error) {
	keys := make([]string, 0, len(f))
	for k := range f {
		if !fieldName.MatchString(k) {
			return nil, fmt.Errorf("invalid filter field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// matches reports whether a decoded document satisfies the filter.
func (f Filter) matches(doc map[string]any) bool {
	for k, want := range f {
		got, ok := doc[k].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}
