package instance

import (
	"errors"
	"fmt"
	"strings"
)

// PlaceholderAlias is shown when the directory does not supply an alias.
const PlaceholderAlias = "N/A"

// MockAliasPrefix prefixes the aliases of synthesized placeholder records.
const MockAliasPrefix = "MockInstance-"

// MockRecordsPerRegion is the number of placeholder records synthesized for a
// region whose lookup failed.
const MockRecordsPerRegion = 3

var ErrLookupFailed = errors.New("directory lookup failed")

// Record is a contact-center instance discovered in one region.
// It carries no storage or transport details.
type Record struct {
	ID     string `json:"id"`
	Region string `json:"region"`
	Alias  string `json:"alias"`
}

// Summary is what the directory reports for one instance.
type Summary struct {
	ID    string
	Alias string
}

// NewRecord builds a record from a directory summary, defaulting the alias.
func NewRecord(region string, s Summary) Record {
	return Record{
		ID:     s.ID,
		Region: region,
		Alias:  aliasOrPlaceholder(s.Alias),
	}
}

// NewPlaceholders synthesizes the placeholder records for region.
// newID must return a fresh unique identifier on every call.
func NewPlaceholders(region string, newID func() string) []Record {
	out := make([]Record, 0, MockRecordsPerRegion)
	for i := 1; i <= MockRecordsPerRegion; i++ {
		out = append(out, Record{
			ID:     newID(),
			Region: region,
			Alias:  fmt.Sprintf("%s%d", MockAliasPrefix, i),
		})
	}
	return out
}

// IsPlaceholder reports whether r was synthesized after a failed lookup.
func (r Record) IsPlaceholder() bool {
	return strings.HasPrefix(r.Alias, MockAliasPrefix)
}

// DisplayName renders the record for pickers as "<id>,<alias>, <region label>".
func (r Record) DisplayName(regionLabel string) string {
	return fmt.Sprintf("%s,%s, %s", r.ID, aliasOrPlaceholder(r.Alias), regionLabel)
}

// FilterByRegions keeps records whose region is in regions, preserving order.
func FilterByRegions(records []Record, regions []string) []Record {
	wanted := make(map[string]struct{}, len(regions))
	for _, code := range regions {
		wanted[code] = struct{}{}
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if _, ok := wanted[rec.Region]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// GroupByRegion indexes records by region code, preserving order within a region.
func GroupByRegion(records []Record) map[string][]Record {
	out := make(map[string][]Record)
	for _, rec := range records {
		out[rec.Region] = append(out[rec.Region], rec)
	}
	return out
}

// IDs returns the identifiers of records in order.
func IDs(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID)
	}
	return out
}

func aliasOrPlaceholder(alias string) string {
	if strings.TrimSpace(alias) == "" {
		return PlaceholderAlias
	}
	return alias
}
