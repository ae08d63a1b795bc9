package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the task index. It caches parsed records keyed by their
// stable source-location id so other tooling can query a vault without
// rescanning it.
type Repository interface {
	PutRecord(ctx context.Context, in Record) error
	GetRecord(ctx context.Context, id string) (Record, error)
	DeleteRecord(ctx context.Context, id string) error
	ListRecords(ctx context.Context, filter RecordListFilter) ([]Record, error)

	// ReplacePath atomically swaps every record of one source document for
	// the given set, so a rescan of a file never leaves stale rows behind.
	ReplacePath(ctx context.Context, path string, records []Record) error
}
