package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "eyecandy/pkg/domain-errors"
)

func TestCheckSliceCount(t *testing.T) {
	assert.NoError(t, CheckSliceCount("location_rules", MaxLocationRules, MaxLocationRules))

	err := CheckSliceCount("location_rules", MaxLocationRules+1, MaxLocationRules)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "too many location_rules")
}

func TestCheckStringLength(t *testing.T) {
	assert.NoError(t, CheckStringLength("notes", strings.Repeat("a", MaxBlockNotesLength), MaxBlockNotesLength))

	err := CheckStringLength("notes", strings.Repeat("a", MaxBlockNotesLength+1), MaxBlockNotesLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes exceeds max length of 1000")
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", MaxTeaserDurationSeconds, false},
		{"zero", 0, true},
		{"negative", -5, true},
		{"above max", MaxTeaserDurationSeconds + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRange("duration_seconds", tt.n, 1, MaxTeaserDurationSeconds)
			if tt.wantErr {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
