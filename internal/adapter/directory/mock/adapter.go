// Package mock is an offline instance directory for demos and local runs.
// Regions it does not know fail, so the placeholder path stays observable.
package mock

import (
	"context"
	"fmt"

	"github.com/photosphere/connect-admin-console/internal/domain/instance"
)

// DemoInstances is the directory content served by NewDemoAdapter.
var DemoInstances = map[string][]instance.Summary{
	"us-east-1": {
		{ID: "instance-56a4e02c", Alias: "Primary"},
	},
	"us-west-2": {
		{ID: "instance-8b1f3d90", Alias: "West Support"},
		{ID: "instance-c27e44a1", Alias: ""},
	},
	"eu-west-2": {
		{ID: "instance-4d9a0b6e", Alias: "London Sales"},
	},
}

type Adapter struct {
	instances map[string][]instance.Summary
}

var _ instance.Directory = (*Adapter)(nil)

func NewAdapter(instances map[string][]instance.Summary) *Adapter {
	return &Adapter{instances: instances}
}

func NewDemoAdapter() *Adapter {
	return NewAdapter(DemoInstances)
}

func (a *Adapter) ListInstances(ctx context.Context, region string) ([]instance.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, ok := a.instances[region]
	if !ok {
		return nil, fmt.Errorf("%w: region %s is not served by the demo directory", instance.ErrLookupFailed, region)
	}
	out := make([]instance.Summary, len(list))
	copy(out, list)
	return out, nil
}
