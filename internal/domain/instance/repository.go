package instance

import "context"

// Directory answers which instances exist in a region.
type Directory interface {
	// ListInstances returns every instance visible in region.
	ListInstances(ctx context.Context, region string) ([]Summary, error)
}

// DirectoryCache persists the last observed directory content.
type DirectoryCache interface {
	// Read returns the cached records whose region is in regions.
	// An absent cache yields an empty slice and no error.
	Read(ctx context.Context, regions []string) ([]Record, error)

	// Write replaces the cached content with records.
	Write(ctx context.Context, records []Record) error
}
