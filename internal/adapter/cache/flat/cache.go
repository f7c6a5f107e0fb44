// Package flat stores the instance directory cache as a flat record.
package flat

import (
	"context"
	"errors"
	"fmt"

	"github.com/photosphere/connect-admin-console/internal/domain/instance"
	"github.com/photosphere/connect-admin-console/internal/domain/storage"
)

const (
	ColumnInstanceID    = "Instance ID"
	ColumnRegion        = "Region"
	ColumnInstanceAlias = "Instance Alias"
)

var columns = []string{ColumnInstanceID, ColumnRegion, ColumnInstanceAlias}

// Cache implements instance.DirectoryCache on top of a FlatStore.
type Cache struct {
	store storage.FlatStore
	name  string
}

var _ instance.DirectoryCache = (*Cache)(nil)

func NewCache(store storage.FlatStore) *Cache {
	return &Cache{store: store, name: storage.RecordInstanceCache}
}

func (c *Cache) Read(ctx context.Context, regions []string) ([]instance.Record, error) {
	rows, err := c.store.Read(ctx, c.name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read instance cache: %w", err)
	}

	records := make([]instance.Record, 0, len(rows))
	for i, row := range rows {
		id := row[ColumnInstanceID]
		region := row[ColumnRegion]
		if id == "" || region == "" {
			return nil, fmt.Errorf("instance cache row %d: missing %q or %q", i+1, ColumnInstanceID, ColumnRegion)
		}
		records = append(records, instance.NewRecord(region, instance.Summary{
			ID:    id,
			Alias: row[ColumnInstanceAlias],
		}))
	}

	return instance.FilterByRegions(records, regions), nil
}

func (c *Cache) Write(ctx context.Context, records []instance.Record) error {
	rows := make([]storage.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, storage.Row{
			ColumnInstanceID:    rec.ID,
			ColumnRegion:        rec.Region,
			ColumnInstanceAlias: rec.Alias,
		})
	}
	if err := c.store.Write(ctx, c.name, columns, rows); err != nil {
		return fmt.Errorf("write instance cache: %w", err)
	}
	return nil
}
