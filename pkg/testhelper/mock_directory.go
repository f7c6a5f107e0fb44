package testhelper

import (
	"context"
	"fmt"
	"sync"

	"github.com/photosphere/connect-admin-console/internal/domain/instance"
)

// MockDirectory is a mock implementation of instance.Directory for testing
type MockDirectory struct {
	mu        sync.Mutex
	Instances map[string][]instance.Summary
	FailFor   map[string]bool
	Calls     []string
}

// NewMockDirectory creates an empty mock directory
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{
		Instances: make(map[string][]instance.Summary),
		FailFor:   make(map[string]bool),
	}
}

// ListInstances mocks the ListInstances method
func (m *MockDirectory) ListInstances(ctx context.Context, region string) ([]instance.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, region)
	if m.FailFor[region] {
		return nil, fmt.Errorf("mock directory: %w for %s", instance.ErrLookupFailed, region)
	}
	return m.Instances[region], nil
}

// CallCount returns how many lookups were made
func (m *MockDirectory) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockDirectoryCache is an in-memory instance.DirectoryCache for testing
type MockDirectoryCache struct {
	mu         sync.Mutex
	Records    []instance.Record
	ReadErr    error
	WriteErr   error
	WriteCalls int
}

// Read mocks the Read method
func (m *MockDirectoryCache) Read(ctx context.Context, regions []string) ([]instance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return instance.FilterByRegions(m.Records, regions), nil
}

// Write mocks the Write method
func (m *MockDirectoryCache) Write(ctx context.Context, records []instance.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCalls++
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Records = append([]instance.Record(nil), records...)
	return nil
}
