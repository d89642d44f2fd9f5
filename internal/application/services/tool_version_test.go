package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"pylint", "pylint 3.2.7\nastroid 3.2.4\nPython 3.12.3", "3.2.7", false},
		{"prefixed", "ruff v0.6.9", "0.6.9", false},
		{"two components", "tool 2.1", "2.1.0", false},
		{"prerelease", "mypy 1.12.0-dev+abc", "1.12.0-dev+abc", false},
		{"none", "command not understood", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ExtractVersion(tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestParseMinVersion(t *testing.T) {
	tests := []struct {
		min     string
		version string
		ok      bool
	}{
		{"3.0", "3.2.7", true},
		{"3.0", "2.17.0", false},
		{">= 3.0, < 4", "3.2.7", true},
		{">= 3.0, < 4", "4.0.0", false},
		{"~2.17", "2.17.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.min+" "+tt.version, func(t *testing.T) {
			c, err := ParseMinVersion(tt.min)
			require.NoError(t, err)
			v, err := ExtractVersion(tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, c.Check(v))
		})
	}

	_, err := ParseMinVersion("not a constraint")
	assert.Error(t, err)
}
