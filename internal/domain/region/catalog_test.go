package region

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCatalog(t *testing.T) {
	c := NewCatalog()

	codes := c.Codes()
	assert.Len(t, codes, 10)
	assert.Equal(t, DefaultCode, codes[0])
	assert.True(t, c.Contains(DefaultCode))
}

func TestCatalog_Label(t *testing.T) {
	c := NewCatalog()

	assert.Equal(t, "ap-northeast-1 (Tokyo)", c.Label("ap-northeast-1"))
	assert.Equal(t, "mars-north-1", c.Label("mars-north-1"))
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := NewCatalog()

	all := c.All()
	all[0].Label = "changed"

	assert.Equal(t, "us-east-1 (N. Virginia)", c.Label("us-east-1"))
}

func TestCatalog_Validate(t *testing.T) {
	c := NewCatalog()

	assert.NoError(t, c.Validate([]string{"us-east-1", "eu-west-2"}))
	assert.NoError(t, c.Validate(nil))

	err := c.Validate([]string{"us-east-1", "nowhere-1"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRegion))
	assert.Contains(t, err.Error(), "nowhere-1")
}

func TestCatalog_Known(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"keeps order", []string{"eu-west-2", "us-east-1"}, []string{"eu-west-2", "us-east-1"}},
		{"drops unknown", []string{"nowhere-1", "us-west-2"}, []string{"us-west-2"}},
		{"drops duplicates", []string{"us-west-2", "us-west-2"}, []string{"us-west-2"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Known(tt.input))
		})
	}
}
