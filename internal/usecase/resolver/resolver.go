// Package resolver turns a region selection into the instance records shown
// to the operator, consulting the directory cache before the directory.
package resolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/photosphere/connect-admin-console/internal/domain/instance"
	"github.com/photosphere/connect-admin-console/internal/notify"
	"go.uber.org/zap"
)

type Policy string

const (
	// PolicyPerRegion serves cached regions from the cache and fetches the rest.
	PolicyPerRegion Policy = "per_region"
	// PolicyAllOrNothing returns the cache whenever it holds any requested
	// region and otherwise fetches every region.
	PolicyAllOrNothing Policy = "all_or_nothing"
)

// ParsePolicy maps a configuration value to a Policy. Empty means PolicyPerRegion.
func ParsePolicy(v string) (Policy, error) {
	switch Policy(v) {
	case "", PolicyPerRegion:
		return PolicyPerRegion, nil
	case PolicyAllOrNothing:
		return PolicyAllOrNothing, nil
	}
	return "", fmt.Errorf("unknown cache policy %q", v)
}

type Options struct {
	Policy       Policy
	MockFallback bool
	// NewID generates placeholder instance ids. Defaults to random UUIDs.
	NewID func() string
}

type Resolver struct {
	directory instance.Directory
	cache     instance.DirectoryCache
	opts      Options
	metrics   *Metrics
	logger    *zap.Logger
}

func NewResolver(
	directory instance.Directory,
	cache instance.DirectoryCache,
	opts Options,
	metrics *Metrics,
	logger *zap.Logger,
) *Resolver {
	if opts.Policy == "" {
		opts.Policy = PolicyPerRegion
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Resolver{
		directory: directory,
		cache:     cache,
		opts:      opts,
		metrics:   metrics,
		logger:    logger.Named("resolver"),
	}
}

// Resolve returns the instance records for regions. It never fails: lookup
// and cache problems are reported to sink and degrade to placeholders or
// fewer records.
func (r *Resolver) Resolve(ctx context.Context, regions []string, sink notify.Sink) []instance.Record {
	if sink == nil {
		sink = notify.Discard
	}
	regions = dedup(regions)
	if len(regions) == 0 {
		return []instance.Record{}
	}

	cached, err := r.cache.Read(ctx, regions)
	if err != nil {
		r.logger.Warn("cache_read_failed", zap.Error(err), zap.Strings("regions", regions))
		sink.Warn(ctx, fmt.Sprintf("Instance cache could not be read: %v", err))
		cached = nil
	}
	cached = instance.FilterByRegions(cached, regions)

	var missing []string
	switch r.opts.Policy {
	case PolicyAllOrNothing:
		if len(cached) > 0 {
			r.metrics.cache.WithLabelValues(cacheHit).Inc()
			return cached
		}
		missing = regions
	default:
		byRegion := instance.GroupByRegion(cached)
		for _, code := range regions {
			if len(byRegion[code]) == 0 {
				missing = append(missing, code)
			}
		}
		if len(missing) == 0 {
			r.metrics.cache.WithLabelValues(cacheHit).Inc()
			return ordered(regions, byRegion)
		}
	}

	if len(missing) == len(regions) {
		r.metrics.cache.WithLabelValues(cacheMiss).Inc()
	} else {
		r.metrics.cache.WithLabelValues(cachePartial).Inc()
	}

	byRegion := instance.GroupByRegion(cached)
	for _, code := range missing {
		byRegion[code] = r.fetch(ctx, code, sink)
	}
	result := ordered(regions, byRegion)

	if len(result) > 0 {
		if err := r.cache.Write(ctx, result); err != nil {
			r.logger.Warn("cache_write_failed", zap.Error(err), zap.Int("records", len(result)))
			sink.Warn(ctx, fmt.Sprintf("Instance cache could not be updated: %v", err))
		}
	}
	return result
}

func (r *Resolver) fetch(ctx context.Context, region string, sink notify.Sink) []instance.Record {
	summaries, err := r.directory.ListInstances(ctx, region)
	if err == nil {
		r.metrics.lookups.WithLabelValues("success").Inc()
		out := make([]instance.Record, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, instance.NewRecord(region, s))
		}
		return out
	}

	r.metrics.lookups.WithLabelValues("failure").Inc()
	r.logger.Warn("directory_lookup_failed",
		zap.String("region", region),
		zap.Bool("mock_fallback", r.opts.MockFallback),
		zap.Error(err),
	)

	if !r.opts.MockFallback {
		sink.Warn(ctx, fmt.Sprintf("Could not list instances in %s: %v", region, err))
		return nil
	}
	r.metrics.fallback.Inc()
	sink.Warn(ctx, fmt.Sprintf("Could not list instances in %s: %v. Showing placeholder instances.", region, err))
	return instance.NewPlaceholders(region, r.opts.NewID)
}

func ordered(regions []string, byRegion map[string][]instance.Record) []instance.Record {
	out := make([]instance.Record, 0)
	for _, code := range regions {
		out = append(out, byRegion[code]...)
	}
	return out
}

func dedup(regions []string) []string {
	seen := make(map[string]struct{}, len(regions))
	out := make([]string, 0, len(regions))
	for _, code := range regions {
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
