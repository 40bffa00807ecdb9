// Package store is the record store boundary: a keyed collection of
// JSON-like documents per report type, with insert, equality-filtered
// lookup, delete and full-scan listing.
package store

import "context"

// Document is a stored record together with its store-assigned ID.
type Document struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// Store abstracts the document database. The duplicate guard relies on
// ExistsByField; note that Insert after an Exists check is not atomic, so
// concurrent sessions can race past the guard (accepted for the system's
// single-operator upload pattern).
type Store interface {
	// Insert adds a document and returns its store-assigned ID.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// ExistsByField reports whether any document in the collection has
	// the given value in the given field.
	ExistsByField(ctx context.Context, collection, field, value string) (bool, error)
	// List returns every document in the collection.
	List(ctx context.Context, collection string) ([]Document, error)
	// Delete removes a document by its store-assigned ID. Deleting a
	// missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
}
