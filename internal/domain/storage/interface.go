package storage

import (
	"context"
	"errors"
)

// Fixed record names used by the console.
const (
	RecordSelectedRegions   = "selected_regions"
	RecordSelectedInstances = "selected_instances"
	RecordInstanceCache     = "connect_instances_cache"
)

// ErrNotFound is returned by Read when the named record has never been written.
var ErrNotFound = errors.New("record not found")

// Row is one flat row keyed by column name.
type Row map[string]string

// FlatStore persists small named tables of rows.
type FlatStore interface {
	// Read returns the rows of the named record in write order.
	Read(ctx context.Context, name string) ([]Row, error)

	// Write replaces the named record. Columns fixes the column order;
	// values missing from a row are written empty.
	Write(ctx context.Context, name string, columns []string, rows []Row) error
}
