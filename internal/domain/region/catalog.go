package region

import (
	"errors"
	"fmt"
)

// DefaultCode is the region offered when nothing else is known.
const DefaultCode = "us-east-1"

var ErrUnknownRegion = errors.New("unknown region")

// Region is a deployment locality of the contact-center service.
type Region struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Catalog is the fixed, ordered set of regions where the service is offered.
// It is immutable after construction.
type Catalog struct {
	regions []Region
	index   map[string]int
}

var connectRegions = []Region{
	{Code: "us-east-1", Label: "us-east-1 (N. Virginia)"},
	{Code: "us-west-2", Label: "us-west-2 (Oregon)"},
	{Code: "ap-northeast-1", Label: "ap-northeast-1 (Tokyo)"},
	{Code: "ap-northeast-2", Label: "ap-northeast-2 (Seoul)"},
	{Code: "ap-southeast-1", Label: "ap-southeast-1 (Singapore)"},
	{Code: "ap-southeast-2", Label: "ap-southeast-2 (Sydney)"},
	{Code: "eu-central-1", Label: "eu-central-1 (Frankfurt)"},
	{Code: "eu-west-2", Label: "eu-west-2 (London)"},
	{Code: "af-south-1", Label: "af-south-1 (Cape Town)"},
	{Code: "ca-central-1", Label: "ca-central-1 (Canada Central)"},
}

// NewCatalog returns the catalog of regions where Amazon Connect is available.
func NewCatalog() *Catalog {
	return newCatalog(connectRegions)
}

func newCatalog(regions []Region) *Catalog {
	c := &Catalog{
		regions: make([]Region, len(regions)),
		index:   make(map[string]int, len(regions)),
	}
	copy(c.regions, regions)
	for i, r := range c.regions {
		c.index[r.Code] = i
	}
	return c
}

// All returns the regions in catalog order.
func (c *Catalog) All() []Region {
	out := make([]Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// Codes returns the region codes in catalog order.
func (c *Catalog) Codes() []string {
	out := make([]string, 0, len(c.regions))
	for _, r := range c.regions {
		out = append(out, r.Code)
	}
	return out
}

// Lookup returns the region for code.
func (c *Catalog) Lookup(code string) (Region, bool) {
	i, ok := c.index[code]
	if !ok {
		return Region{}, false
	}
	return c.regions[i], true
}

// Contains reports whether code is a known region.
func (c *Catalog) Contains(code string) bool {
	_, ok := c.index[code]
	return ok
}

// Label returns the display label for code, or the code itself when unknown.
func (c *Catalog) Label(code string) string {
	if r, ok := c.Lookup(code); ok {
		return r.Label
	}
	return code
}

// Validate returns an error naming the first unknown code.
func (c *Catalog) Validate(codes []string) error {
	for _, code := range codes {
		if !c.Contains(code) {
			return fmt.Errorf("%w: %q", ErrUnknownRegion, code)
		}
	}
	return nil
}

// Known keeps the known codes of codes, preserving order and dropping duplicates.
func (c *Catalog) Known(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if !c.Contains(code) {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
