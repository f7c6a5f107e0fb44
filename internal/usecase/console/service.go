// Package console coordinates the region and instance pickers: it restores
// the persisted selection, resolves instances and stores what changed.
package console

import (
	"context"
	"slices"

	"github.com/photosphere/connect-admin-console/internal/domain/instance"
	"github.com/photosphere/connect-admin-console/internal/domain/region"
	"github.com/photosphere/connect-admin-console/internal/notify"
	"github.com/photosphere/connect-admin-console/internal/selection"
	"github.com/photosphere/connect-admin-console/internal/usecase/resolver"
	"go.uber.org/zap"
)

// Option is one entry of the instance picker.
type Option struct {
	instance.Record
	DisplayName string `json:"display_name"`
}

// Selection is the state of both pickers.
type Selection struct {
	Regions             []string `json:"regions"`
	Instances           []Option `json:"instances"`
	SelectedInstanceIDs []string `json:"selected_instance_ids"`
}

type Service struct {
	catalog  *region.Catalog
	store    *selection.Store
	resolver *resolver.Resolver
	logger   *zap.Logger
}

func NewService(
	catalog *region.Catalog,
	store *selection.Store,
	resolver *resolver.Resolver,
	logger *zap.Logger,
) *Service {
	return &Service{
		catalog:  catalog,
		store:    store,
		resolver: resolver,
		logger:   logger.Named("console"),
	}
}

// Catalog returns the regions the console offers.
func (s *Service) Catalog() []region.Region {
	return s.catalog.All()
}

// Defaults restores the persisted selection. Saved instance ids that are not
// among the resolved instances are dropped.
func (s *Service) Defaults(ctx context.Context, sink notify.Sink) Selection {
	regions := s.catalog.Known(s.store.LoadRegions(ctx))
	if len(regions) == 0 {
		regions = []string{region.DefaultCode}
	}

	records := s.resolver.Resolve(ctx, regions, sink)
	selected := keepResolved(s.store.LoadInstances(ctx), records)

	return Selection{
		Regions:             regions,
		Instances:           s.options(records),
		SelectedInstanceIDs: selected,
	}
}

// Update applies a picker change. Unknown region codes are rejected with
// region.ErrUnknownRegion; only values that differ from the stored ones are
// written back.
func (s *Service) Update(ctx context.Context, regions, instanceIDs []string, sink notify.Sink) (Selection, error) {
	if err := s.catalog.Validate(regions); err != nil {
		return Selection{}, err
	}
	regions = s.catalog.Known(regions)

	records := s.resolver.Resolve(ctx, regions, sink)
	selected := keepResolved(instanceIDs, records)

	if !slices.Equal(regions, s.store.LoadRegions(ctx)) {
		s.store.SaveRegions(ctx, regions)
	}
	if !slices.Equal(selected, s.store.LoadInstances(ctx)) {
		s.store.SaveInstances(ctx, selected)
	}

	s.logger.Debug("selection_updated",
		zap.Strings("regions", regions),
		zap.Int("instances", len(records)),
		zap.Int("selected", len(selected)),
	)

	return Selection{
		Regions:             regions,
		Instances:           s.options(records),
		SelectedInstanceIDs: selected,
	}, nil
}

// Instances resolves regions without touching the persisted selection.
func (s *Service) Instances(ctx context.Context, regions []string, sink notify.Sink) ([]Option, error) {
	if err := s.catalog.Validate(regions); err != nil {
		return nil, err
	}
	return s.options(s.resolver.Resolve(ctx, regions, sink)), nil
}

// DisplayName renders rec the way the instance picker shows it.
func (s *Service) DisplayName(rec instance.Record) string {
	return rec.DisplayName(s.catalog.Label(rec.Region))
}

func (s *Service) options(records []instance.Record) []Option {
	out := make([]Option, 0, len(records))
	for _, rec := range records {
		out = append(out, Option{Record: rec, DisplayName: s.DisplayName(rec)})
	}
	return out
}

func keepResolved(ids []string, records []instance.Record) []string {
	known := make(map[string]struct{}, len(records))
	for _, rec := range records {
		known[rec.ID] = struct{}{}
	}
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
