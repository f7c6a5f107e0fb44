package connect

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/photosphere/connect-admin-console/internal/domain/instance"
	"github.com/photosphere/connect-admin-console/pkg/connectclient"
	"github.com/photosphere/connect-admin-console/pkg/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, endpoint string) *connectclient.Client {
	t.Helper()
	client, err := connectclient.New(context.Background(), connectclient.Config{
		Endpoint:        endpoint,
		AccessKeyID:     "AKIDTEST",
		SecretAccessKey: "secret",
		Timeout:         5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestAdapter_ListInstances(t *testing.T) {
	server := testhelper.NewMockConnectServer(t)
	server.Instances = []testhelper.ConnectInstance{
		{ID: "instance-123", Alias: "Primary"},
		{ID: "instance-456"},
	}

	adapter := NewAdapter(newClient(t, server.URL()))

	got, err := adapter.ListInstances(context.Background(), "us-east-1")

	require.NoError(t, err)
	assert.Equal(t, []instance.Summary{
		{ID: "instance-123", Alias: "Primary"},
		{ID: "instance-456", Alias: ""},
	}, got)
}

func TestAdapter_ListInstances_Failure(t *testing.T) {
	server := testhelper.NewMockConnectServer(t)
	server.FailWith = http.StatusForbidden

	adapter := NewAdapter(newClient(t, server.URL()))

	_, err := adapter.ListInstances(context.Background(), "eu-west-2")

	require.Error(t, err)
	assert.True(t, errors.Is(err, instance.ErrLookupFailed))
	assert.Contains(t, err.Error(), "eu-west-2")

	var apiErr *connectclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}
