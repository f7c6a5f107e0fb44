// Package connect serves the instance directory from Amazon Connect.
package connect

import (
	"context"
	"fmt"

	"github.com/photosphere/connect-admin-console/internal/domain/instance"
	"github.com/photosphere/connect-admin-console/pkg/connectclient"
)

// Lister is the part of connectclient.Client the adapter needs.
type Lister interface {
	ListInstances(ctx context.Context, region string) ([]connectclient.InstanceSummary, error)
}

type Adapter struct {
	client Lister
}

var _ instance.Directory = (*Adapter)(nil)

func NewAdapter(client Lister) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) ListInstances(ctx context.Context, region string) ([]instance.Summary, error) {
	list, err := a.client.ListInstances(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", instance.ErrLookupFailed, region, err)
	}

	out := make([]instance.Summary, 0, len(list))
	for _, s := range list {
		out = append(out, instance.Summary{ID: s.ID, Alias: s.Alias})
	}
	return out, nil
}
