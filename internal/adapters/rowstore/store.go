// Package rowstore reads and appends rows of the remote tables that hold
// evaluations and self-assessments.
package rowstore

import "context"

// RawRow is a row as decoded from the store, keyed by field name.
type RawRow = map[string]any

// Page is one chunk of a table listing. An empty Next means the listing is
// exhausted; a page may be empty while Next is still set.
type Page struct {
	Rows []RawRow
	Next string
}

// Lister pages through a table.
type Lister interface {
	// ListPage returns the page addressed by token. The empty token
	// addresses the first page.
	ListPage(ctx context.Context, table, token string) (Page, error)
}

// Inserter appends rows. Only the submission pathway writes.
type Inserter interface {
	Insert(ctx context.Context, table string, row RawRow) error
}

// Store is a table that can be both read and appended to.
type Store interface {
	Lister
	Inserter
}
