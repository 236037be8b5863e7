package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected Locator
	}{
		{
			name:     "compute v1 self-link",
			uri:      "https://www.googleapis.com/compute/v1/projects/p1/regions/us-central1/subnetworks/sub-a",
			expected: Locator{Project: "p1", Region: "us-central1", Name: "sub-a"},
		},
		{
			name:     "compute.googleapis.com host",
			uri:      "https://compute.googleapis.com/compute/v1/projects/host-project-42/regions/europe-west1/subnetworks/shared",
			expected: Locator{Project: "host-project-42", Region: "europe-west1", Name: "shared"},
		},
		{
			name:     "query string is ignored",
			uri:      "https://www.googleapis.com/compute/v1/projects/p1/regions/asia-east1/subnetworks/sub-b?alt=json",
			expected: Locator{Project: "p1", Region: "asia-east1", Name: "sub-b"},
		},
		{
			name:     "absolute URI without host",
			uri:      "file:///compute/v1/projects/p1/regions/us-central1/subnetworks/sub-a",
			expected: Locator{Project: "p1", Region: "us-central1", Name: "sub-a"},
		},
		{
			name:     "extra trailing segments",
			uri:      "https://www.googleapis.com/compute/beta/projects/p2/regions/us-east4/subnetworks/sub-c/extra",
			expected: Locator{Project: "p2", Region: "us-east4", Name: "sub-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := Resolve(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestResolve_Malformed(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{name: "empty", uri: ""},
		{name: "relative path", uri: "projects/p1/regions/us-central1/subnetworks/sub-a"},
		{name: "too few segments", uri: "https://www.googleapis.com/compute/v1/projects/p1/regions/us-central1"},
		{name: "bad escape", uri: "https://www.googleapis.com/compute/v1/projects/%zz/regions/r/subnetworks/n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.uri)
			assert.ErrorIs(t, err, ErrMalformedLocator)
		})
	}
}

func TestLocatorString(t *testing.T) {
	loc := Locator{Project: "p1", Region: "us-central1", Name: "sub-a"}
	assert.Equal(t, "projects/p1/regions/us-central1/subnetworks/sub-a", loc.String())
}
