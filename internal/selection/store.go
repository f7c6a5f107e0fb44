package selection

import (
	"context"
	"errors"
	"strings"

	"github.com/photosphere/connect-admin-console/internal/domain/storage"
	"go.uber.org/zap"
)

const (
	columnRegion     = "region"
	columnInstanceID = "instance_id"
)

// Store persists the operator's last region and instance selection.
// Every method fails soft: errors are logged and replaced by defaults.
type Store struct {
	flat          storage.FlatStore
	defaultRegion string
	logger        *zap.Logger
}

func NewStore(flat storage.FlatStore, defaultRegion string, logger *zap.Logger) *Store {
	return &Store{
		flat:          flat,
		defaultRegion: defaultRegion,
		logger:        logger.Named("selection.store"),
	}
}

// LoadRegions returns the saved region codes, or the default region when
// nothing usable is stored.
func (s *Store) LoadRegions(ctx context.Context) []string {
	codes, err := s.loadColumn(ctx, storage.RecordSelectedRegions, columnRegion)
	if err != nil {
		s.logger.Warn("load_regions_failed", zap.Error(err))
	}
	if len(codes) == 0 {
		return []string{s.defaultRegion}
	}
	return codes
}

// SaveRegions replaces the saved region codes.
func (s *Store) SaveRegions(ctx context.Context, codes []string) {
	if err := s.saveColumn(ctx, storage.RecordSelectedRegions, columnRegion, codes); err != nil {
		s.logger.Warn("save_regions_failed", zap.Error(err), zap.Strings("regions", codes))
	}
}

// LoadInstances returns the saved instance ids, or an empty slice.
func (s *Store) LoadInstances(ctx context.Context) []string {
	ids, err := s.loadColumn(ctx, storage.RecordSelectedInstances, columnInstanceID)
	if err != nil {
		s.logger.Warn("load_instances_failed", zap.Error(err))
		return []string{}
	}
	return ids
}

// SaveInstances replaces the saved instance ids.
func (s *Store) SaveInstances(ctx context.Context, ids []string) {
	if err := s.saveColumn(ctx, storage.RecordSelectedInstances, columnInstanceID, ids); err != nil {
		s.logger.Warn("save_instances_failed", zap.Error(err), zap.Int("count", len(ids)))
	}
}

func (s *Store) loadColumn(ctx context.Context, name, column string) ([]string, error) {
	rows, err := s.flat.Read(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []string{}, nil
		}
		return []string{}, err
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		v := strings.TrimSpace(row[column])
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Store) saveColumn(ctx context.Context, name, column string, values []string) error {
	rows := make([]storage.Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, storage.Row{column: v})
	}
	return s.flat.Write(ctx, name, []string{column}, rows)
}
