package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnchorEntry(t *testing.T) {
	tests := []struct {
		name    string
		req     *AnchorEntryRequest
		wantErr string
	}{
		{"valid", &AnchorEntryRequest{ID: "ua-3f9c2e", Name: "Lobby", Type: "waypoint"}, ""},
		{"nil", nil, "cannot be nil"},
		{"missing id", &AnchorEntryRequest{Name: "Lobby", Type: "waypoint"}, "ID: field is required"},
		{"missing type", &AnchorEntryRequest{ID: "a1"}, "Type: field is required"},
		{"long name", &AnchorEntryRequest{ID: "a1", Type: "waypoint", Name: strings.Repeat("x", 65)}, "Name: must not exceed 64"},
		{"bad characters", &AnchorEntryRequest{ID: "a 1", Type: "waypoint"}, "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnchorEntry(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePairEntry(t *testing.T) {
	tests := []struct {
		name    string
		req     *PairEntryRequest
		wantErr string
	}{
		{"valid", &PairEntryRequest{ID1: "1", ID2: "2"}, ""},
		{"nil", nil, "cannot be nil"},
		{"missing second", &PairEntryRequest{ID1: "1"}, "ID2: field is required"},
		{"self pair", &PairEntryRequest{ID1: "1", ID2: "1"}, "ID2: must differ from ID1"},
		{"bad id", &PairEntryRequest{ID1: "1", ID2: "two words"}, "ID2: anchor id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePairEntry(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAnchorID(t *testing.T) {
	assert.NoError(t, ValidateAnchorID("ua-1234_abcd.ef:9"))
	assert.Error(t, ValidateAnchorID(""))
	assert.Error(t, ValidateAnchorID(strings.Repeat("a", MaxAnchorIDLength+1)))
	assert.Error(t, ValidateAnchorID("semi;colon"))
}
