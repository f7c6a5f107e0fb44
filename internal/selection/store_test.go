package selection

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/photosphere/connect-admin-console/internal/adapter/storage/csvfile"
	"github.com/photosphere/connect-admin-console/internal/domain/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// failingStore always errors
type failingStore struct{}

func (failingStore) Read(ctx context.Context, name string) ([]storage.Row, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) Write(ctx context.Context, name string, columns []string, rows []storage.Row) error {
	return errors.New("disk on fire")
}

func newTestStore(t *testing.T) (*Store, *csvfile.Store) {
	flat := csvfile.NewStore(t.TempDir())
	return NewStore(flat, "us-east-1", zap.NewNop()), flat
}

func TestStore_RegionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	tests := [][]string{
		{"us-east-1"},
		{"eu-west-2", "us-east-1"},
		{"ap-northeast-1", "ap-southeast-2", "ca-central-1"},
	}

	for _, codes := range tests {
		s.SaveRegions(ctx, codes)
		assert.Equal(t, codes, s.LoadRegions(ctx))
	}
}

func TestStore_LoadRegionsDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		s, _ := newTestStore(t)
		assert.Equal(t, []string{"us-east-1"}, s.LoadRegions(ctx))
	})

	t.Run("corrupt", func(t *testing.T) {
		s, flat := newTestStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(flat.Path(storage.RecordSelectedRegions)), 0o755))
		require.NoError(t, os.WriteFile(flat.Path(storage.RecordSelectedRegions), []byte("region\n\"eu-west-2\n"), 0o644))
		assert.Equal(t, []string{"us-east-1"}, s.LoadRegions(ctx))
	})

	t.Run("empty", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.SaveRegions(ctx, nil)
		assert.Equal(t, []string{"us-east-1"}, s.LoadRegions(ctx))
	})

	t.Run("wrong column", func(t *testing.T) {
		s, flat := newTestStore(t)
		require.NoError(t, flat.Write(ctx, storage.RecordSelectedRegions, []string{"code"}, []storage.Row{{"code": "eu-west-2"}}))
		assert.Equal(t, []string{"us-east-1"}, s.LoadRegions(ctx))
	})

	t.Run("read error", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		s := NewStore(failingStore{}, "eu-central-1", zap.New(core))
		assert.Equal(t, []string{"eu-central-1"}, s.LoadRegions(ctx))
		assert.Equal(t, 1, logs.FilterMessage("load_regions_failed").Len())
	})
}

func TestStore_InstancesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	assert.Equal(t, []string{}, s.LoadInstances(ctx))

	s.SaveInstances(ctx, []string{"instance-123", "instance-456"})
	assert.Equal(t, []string{"instance-123", "instance-456"}, s.LoadInstances(ctx))

	s.SaveInstances(ctx, []string{})
	assert.Equal(t, []string{}, s.LoadInstances(ctx))
}

func TestStore_SavesFailSoft(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	s := NewStore(failingStore{}, "us-east-1", zap.New(core))

	assert.NotPanics(t, func() {
		s.SaveRegions(ctx, []string{"us-west-2"})
		s.SaveInstances(ctx, []string{"instance-1"})
	})
	assert.Equal(t, []string{}, s.LoadInstances(ctx))

	assert.Equal(t, 1, logs.FilterMessage("save_regions_failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("save_instances_failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("load_instances_failed").Len())
}
